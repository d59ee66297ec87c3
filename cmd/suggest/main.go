package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"suggest/internal/logging"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "suggest: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "suggest",
		Usage: "Type-ahead search input for the terminal",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the TOML config file",
				EnvVars: []string{"SUGGEST_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "File to write logs to",
				Value: "suggest.log",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		}, runFlags()...),
		Before: setupLogger,
		After: func(*cli.Context) error {
			logging.Close()
			return nil
		},
		Action: runCommand,
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "Open the interactive input (default)",
				Action: runCommand,
				Flags:  runFlags(),
			},
			{
				Name:      "index",
				Usage:     "Load YAML seed files into the SQLite index",
				ArgsUsage: "SEED.yaml...",
				Action:    indexCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Path to the SQLite index (overrides search.db_path)",
					},
				},
			},
			{
				Name:      "query",
				Usage:     "Run one search and print the titles",
				ArgsUsage: "TEXT",
				Action:    queryCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "Maximum number of suggestions (overrides search.limit)",
					},
					&cli.StringFlag{
						Name:  "seed",
						Usage: "YAML seed file for the static backend (overrides search.seed_file)",
					},
				},
			},
			{
				Name:   "init-config",
				Usage:  "Write the default configuration",
				Action: initConfigCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Overwrite an existing file",
					},
				},
			},
		},
	}
}

func runFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "once",
			Usage: "Exit after the first confirmed search",
		},
		&cli.StringFlag{
			Name:  "seed",
			Usage: "YAML seed file for the static backend (overrides search.seed_file)",
		},
	}
}

func setupLogger(c *cli.Context) error {
	if err := logging.Init(c.String("log-file"), c.String("log-level")); err != nil {
		return cli.Exit(err.Error(), 1)
	}
	return nil
}
