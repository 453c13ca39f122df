package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/actuallystonmai/stylist-kiosk/internal/config"
	"github.com/actuallystonmai/stylist-kiosk/internal/logging"
)

var cfg *config.Config

func main() {
	// .env is optional; real env vars win
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "stylist-kiosk",
		Usage: "Evol Jewels stylist kiosk recommendation API",
		Before: func(c *cli.Context) error {
			var err error
			cfg, err = config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
			return nil
		},
		Action: runServe,
		Commands: []*cli.Command{
			serveCommand(),
			migrateUpCommand(),
			migrateDownCommand(),
			seedCommand(),
			importCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
