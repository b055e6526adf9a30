package main

import (
	"os"

	"github.com/emrgen/doctrack/internal/config"
	"github.com/emrgen/doctrack/internal/server"
	"github.com/sirupsen/logrus"
)

// runs the server with debug logging, on an in-memory store unless
// DOCTRACK_STORE_DRIVER is set
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	if os.Getenv("DOCTRACK_STORE_DRIVER") == "" {
		cfg.Store.Driver = "memory"
	}
	cfg.Log.Level = "debug"
	cfg.Jobs.Stats = "@every 10s"

	if err := config.SetupLogger(cfg.Log); err != nil {
		logrus.Fatal(err)
	}

	server.NewServer(cfg).Start()
}
