package main

import (
	stdlog "log"

	"github.com/joho/godotenv"

	"cvscan/cmd"
	"cvscan/internal/config"
	"cvscan/internal/logger"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		stdlog.Printf("Warning: Could not load .env file: %v", err)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		stdlog.Printf("Warning: Could not load configuration: %v", err)
		// Use default logger config if main config fails
		if err := logger.Setup(logger.DefaultConfig()); err != nil {
			stdlog.Fatalf("Failed to initialize logger: %v", err)
		}
	} else {
		if err := logger.Setup(cfg.GetLoggerConfig()); err != nil {
			stdlog.Fatalf("Failed to initialize logger: %v", err)
		}
	}

	log := logger.WithComponent("main")
	log.Debug().Msg("Starting CV Scanner CLI")

	cmd.Execute()
}
