package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoggerLevels проверяет уровень записи в зависимости от статуса ответа
func TestLoggerLevels(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hook := test.NewGlobal()
	logrus.SetOutput(io.Discard)
	t.Cleanup(func() { logrus.StandardLogger().ReplaceHooks(make(logrus.LevelHooks)) })

	router := gin.New()
	router.Use(Logger())
	router.GET("/status/:code", func(c *gin.Context) {
		switch c.Param("code") {
		case "404":
			c.Status(http.StatusNotFound)
		case "422":
			c.String(http.StatusUnprocessableEntity, "Error: broken")
		default:
			c.Status(http.StatusOK)
		}
	})

	tests := []struct {
		path      string
		status    int
		wantLevel logrus.Level
		wantMsg   string
	}{
		{path: "/status/200", status: http.StatusOK, wantLevel: logrus.InfoLevel, wantMsg: "Request processed"},
		{path: "/status/404", status: http.StatusNotFound, wantLevel: logrus.ErrorLevel, wantMsg: "Request failed"},
		{path: "/status/422", status: http.StatusUnprocessableEntity, wantLevel: logrus.ErrorLevel, wantMsg: "Request failed"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			hook.Reset()
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			req.Header.Set("User-Agent", "tryon-test")

			router.ServeHTTP(httptest.NewRecorder(), req)

			entry := hook.LastEntry()
			require.NotNil(t, entry)
			require.Len(t, hook.AllEntries(), 1)
			assert.Equal(t, tt.wantLevel, entry.Level)
			assert.Equal(t, tt.wantMsg, entry.Message)
			assert.Equal(t, tt.status, entry.Data["status"])
			assert.Equal(t, http.MethodGet, entry.Data["method"])
			assert.Equal(t, tt.path, entry.Data["path"])
			assert.Equal(t, "tryon-test", entry.Data["user_agent"])
			assert.Contains(t, entry.Data, "duration")
		})
	}
}

func TestBodyLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		limit    int64
		body     string
		wantRead int
		wantErr  bool
	}{
		{name: "under limit", limit: 16, body: "small", wantRead: 5},
		{name: "over limit", limit: 4, body: "too large", wantErr: true},
		{name: "disabled", limit: 0, body: "anything goes", wantRead: 13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var read int
			var readErr error
			router := gin.New()
			router.Use(BodyLimit(tt.limit))
			router.POST("/", func(c *gin.Context) {
				data, err := io.ReadAll(c.Request.Body)
				read, readErr = len(data), err
				c.Status(http.StatusOK)
			})

			router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body)))

			if tt.wantErr {
				var tooLarge *http.MaxBytesError
				assert.ErrorAs(t, readErr, &tooLarge)
				return
			}
			require.NoError(t, readErr)
			assert.Equal(t, tt.wantRead, read)
		})
	}
}
