package main

import (
	"errors"
	"os"

	"github.com/ds124wfegd/tryon-compositor/config"
	"github.com/ds124wfegd/tryon-compositor/internal/appServer"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

func main() {
	flags := config.NewFlagSet(os.Args[0])
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		logrus.Fatalf("error parsing flags: %s", err.Error())
	}

	v, err := config.LoadConfig(flags)
	if err != nil {
		logrus.Fatalf("error loading config: %s", err.Error())
	}

	cfg, err := config.ParseConfig(v)
	if err != nil {
		logrus.Fatalf("error parsing config: %s", err.Error())
	}

	appServer.NewServer(cfg)
}
