package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v3"

	"github.com/equinor/ecl3/internal/logger"
)

// Shared flag variables, filled from CLI flags with config-file fallback.
var (
	separator = ":"
	format    = "table"
	logLevel  = "warn"
	logFormat = "auto"
)

func main() {
	app := &cli.Command{
		Name:  "eclsum",
		Usage: "Inspect Eclipse binary summary and keyword files",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
		Commands: []*cli.Command{
			dumpCmd(),
			columnsCmd(),
			rowsCmd(),
			versionCmd(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func sharedFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level (debug, info, warn, error)",
			Value:       logLevel,
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "Log format (auto, pretty, text, json)",
			Value:       logFormat,
			Destination: &logFormat,
		},
	}
}

func newLogger() logger.Logger {
	level := logger.ParseLevel(logLevel)
	switch logFormat {
	case "json":
		return logger.JSON(os.Stderr, level)
	case "pretty":
		return logger.Pretty(os.Stderr, level)
	case "text":
		return logger.New(newTextHandler(level))
	default:
		if isatty.IsTerminal(os.Stderr.Fd()) {
			return logger.Pretty(os.Stderr, level)
		}
		return logger.New(newTextHandler(level))
	}
}

func newTextHandler(level slog.Level) slog.Handler {
	return slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
}
