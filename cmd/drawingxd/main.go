// Command drawingxd serves the construction-drawing extraction pipeline
// over HTTP.
//
// Usage:
//
//	drawingxd -config /etc/drawingx/config.yaml
//
// All settings have working defaults; DRAWINGX_* environment variables
// override the file.
package main

import (
	"flag"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/tsawler/drawingx/internal/config"
	"github.com/tsawler/drawingx/internal/server"
)

func main() {
	configPath := flag.String("config", "", "path to YAML configuration file")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.WithError(err).Fatal("loading configuration")
	}

	if level, err := logrus.ParseLevel(cfg.Server.LogLevel); err == nil {
		log.SetLevel(level)
	} else {
		log.WithField("level", cfg.Server.LogLevel).Warn("unknown log level, using info")
	}

	handler := server.NewHandler(*cfg, log)
	router := server.SetupRouter(handler, log)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.WithField("addr", addr).Info("drawingxd listening")
	if err := router.Run(addr); err != nil {
		log.WithError(err).Fatal("server exited")
	}
}
