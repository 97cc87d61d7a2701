// Initializing common application configuration
package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const EnvPrefix = "TRYON"

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Compositor CompositorConfig `mapstructure:"compositor"`
}

type ServerConfig struct {
	AppVersion     string        `mapstructure:"app_version"`
	Host           string        `mapstructure:"host" validate:"required"`
	Port           int           `mapstructure:"port" validate:"min=1,max=65535"`
	Timeout        time.Duration `mapstructure:"timeout" validate:"gt=0"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout" validate:"gt=0"`
	Env            string        `mapstructure:"environment"`
	Mode           string        `mapstructure:"mode" validate:"oneof=debug release test"`
	LogLevel       string        `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	MaxUploadBytes int64         `mapstructure:"max_upload_bytes" validate:"gt=0"`
}

type CompositorConfig struct {
	Filter       string `mapstructure:"filter" validate:"oneof=lanczos catmullrom linear box nearest"`
	OutputFormat string `mapstructure:"output_format" validate:"oneof=png jpeg jpg"`
	JPEGQuality  int    `mapstructure:"jpeg_quality" validate:"min=1,max=100"`
	MaxPixels    int64  `mapstructure:"max_pixels" validate:"gt=0"`
}

// NewFlagSet declares the command line overrides. Flags win over environment
// variables, which win over the config file.
func NewFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.StringP("config", "c", "", "path to a yaml config file (default ./config/config.yaml)")
	fs.String("host", "0.0.0.0", "address to bind the http server to")
	fs.IntP("port", "p", 7860, "port to bind the http server to")
	return fs
}

func LoadConfig(flags *pflag.FlagSet) (*viper.Viper, error) {

	viperInstance := viper.New()
	setDefaults(viperInstance)

	viperInstance.SetEnvPrefix(EnvPrefix)
	viperInstance.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viperInstance.AutomaticEnv()

	var path string
	if flags != nil {
		path, _ = flags.GetString("config")
		if err := bindFlags(viperInstance, flags); err != nil {
			return nil, err
		}
	}

	if path != "" {
		viperInstance.SetConfigFile(path)
	} else {
		viperInstance.AddConfigPath("./config")
		viperInstance.SetConfigName("config")
		viperInstance.SetConfigType("yaml")
	}

	err := viperInstance.ReadInConfig()

	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return viperInstance, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return viperInstance, nil
}

func ParseConfig(v *viper.Viper) (*Config, error) {

	var c Config

	err := v.Unmarshal(&c)
	if err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// ServerAddress returns the host:port pair the http server listens on.
func (c *Config) ServerAddress() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	bindings := map[string]string{
		"server.host": "host",
		"server.port": "port",
	}
	for key, name := range bindings {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.app_version", "1.0.0")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 7860)
	v.SetDefault("server.timeout", 60*time.Second)
	v.SetDefault("server.idle_timeout", 120*time.Second)
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.max_upload_bytes", 32<<20)

	// Compositor defaults
	v.SetDefault("compositor.filter", "lanczos")
	// the mobile client labels the result as image/jpeg
	v.SetDefault("compositor.output_format", "jpeg")
	v.SetDefault("compositor.jpeg_quality", 90)
	v.SetDefault("compositor.max_pixels", 2*89478485)
}
