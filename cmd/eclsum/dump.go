package main

import (
	"context"
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"github.com/equinor/ecl3/internal/eclarray"
	"github.com/equinor/ecl3/internal/eclfmt"
)

func dumpCmd() *cli.Command {
	var verbose bool
	var limit int64
	var mmap bool

	return &cli.Command{
		Name:      "dump",
		Usage:     "List every array in an Eclipse binary file",
		ArgsUsage: "<file>",
		Flags: append(sharedFlags(),
			&cli.BoolFlag{
				Name:        "verbose",
				Aliases:     []string{"v"},
				Usage:       "Dump decoded array bodies",
				Destination: &verbose,
			},
			&cli.Int64Flag{
				Name:        "limit",
				Usage:       "Max elements to dump per array with --verbose (0 = all)",
				Value:       16,
				Destination: &limit,
			},
			&cli.BoolFlag{
				Name:        "mmap",
				Usage:       "Map the file instead of streaming it",
				Destination: &mmap,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return fmt.Errorf("dump takes exactly one file argument")
			}
			applyConfig(cmd, LoadConfig())

			opts := []eclarray.Option{eclarray.WithLogger(newLogger())}
			if mmap {
				opts = append(opts, eclarray.WithMmap())
			}
			r, err := eclarray.Open(cmd.Args().First(), opts...)
			if err != nil {
				return err
			}
			defer r.Close()

			kwStyle := color.New(color.FgCyan, color.Bold)
			tagStyle := color.New(color.FgYellow)
			for {
				a, err := r.Next()
				if err == io.EOF {
					return nil
				}
				if err != nil {
					return err
				}
				fmt.Printf("%s %s %d\n",
					kwStyle.Sprint(a.Keyword()),
					tagStyle.Sprint(a.Tag.String()),
					a.Count,
				)
				if verbose {
					dumpBody(a, int(limit))
				}
			}
		},
	}
}

func dumpBody(a *eclarray.RawArray, limit int) {
	var body any
	switch a.Tag {
	case eclfmt.INTE, eclfmt.LOGI:
		body = clamp(a.Ints(), limit)
	case eclfmt.REAL:
		body = clamp(a.Floats(), limit)
	case eclfmt.DOUB:
		body = clamp(a.Doubles(), limit)
	case eclfmt.MESS:
		return
	default:
		body = clamp(a.Strings(), limit)
	}
	fmt.Print(spew.Sdump(body))
}

func clamp[T any](vals []T, limit int) []T {
	if limit > 0 && len(vals) > limit {
		return vals[:limit]
	}
	return vals
}
