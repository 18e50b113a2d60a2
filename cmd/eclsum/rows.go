package main

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/equinor/ecl3/pkg/eclsummary"
)

func rowsCmd() *cli.Command {
	var mmap bool

	return &cli.Command{
		Name:      "rows",
		Usage:     "Read a summary into rows and print them",
		ArgsUsage: "<case.SMSPEC> <case.UNSMRY | case.Snnnn>",
		Flags: append(sharedFlags(),
			&cli.StringFlag{
				Name:        "separator",
				Usage:       "Qualifier separator in column names",
				Value:       separator,
				Destination: &separator,
			},
			&cli.StringFlag{
				Name:        "format",
				Usage:       "Output format (table, csv, ndjson)",
				Value:       format,
				Destination: &format,
			},
			&cli.BoolFlag{
				Name:        "mmap",
				Usage:       "Map the data file instead of streaming it",
				Destination: &mmap,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 2 {
				return fmt.Errorf("rows takes a .SMSPEC and a data file argument")
			}
			applyConfig(cmd, LoadConfig())
			log := newLogger()

			plan, err := eclsummary.NewColumnPlan(cmd.Args().First(), eclsummary.PlanOptions{
				Separator: separator,
				Logger:    log,
			})
			if err != nil {
				return err
			}

			var matrix []byte
			alloc := func(rows int) ([]byte, error) {
				matrix = make([]byte, rows*plan.RowSize())
				return matrix, nil
			}

			opts := []eclsummary.AssemblerOption{eclsummary.WithAssemblerLogger(log)}
			if mmap {
				opts = append(opts, eclsummary.WithAssemblerMmap())
			}
			a := eclsummary.NewAssembler(plan, opts...)
			if err := a.Run(ctx, cmd.Args().Get(1), alloc); err != nil {
				return err
			}

			switch format {
			case "ndjson":
				return printNDJSON(plan, matrix)
			case "csv":
				return printCSV(plan, matrix)
			default:
				return printTable(plan, matrix)
			}
		},
	}
}

func eachRow(plan *eclsummary.ColumnPlan, matrix []byte, fn func(report, ministep int32, values []float32)) {
	rowSize := plan.RowSize()
	values := make([]float32, len(plan.Columns))
	for off := 0; off+rowSize <= len(matrix); off += rowSize {
		report := int32(binary.NativeEndian.Uint32(matrix[off:]))
		ministep := int32(binary.NativeEndian.Uint32(matrix[off+4:]))
		for c := range values {
			values[c] = math.Float32frombits(binary.NativeEndian.Uint32(matrix[off+8+c*4:]))
		}
		fn(report, ministep, values)
	}
}

func printNDJSON(plan *eclsummary.ColumnPlan, matrix []byte) error {
	enc := json.NewEncoder(os.Stdout)
	type doc struct {
		Report   int32              `json:"report"`
		Ministep int32              `json:"ministep"`
		Values   map[string]float32 `json:"values"`
	}
	var err error
	eachRow(plan, matrix, func(report, ministep int32, values []float32) {
		if err != nil {
			return
		}
		d := doc{Report: report, Ministep: ministep, Values: make(map[string]float32, len(values))}
		for i, col := range plan.Columns {
			d.Values[col.Name] = values[i]
		}
		err = enc.Encode(d)
	})
	return err
}

func printCSV(plan *eclsummary.ColumnPlan, matrix []byte) error {
	header := make([]string, 0, 2+len(plan.Columns))
	header = append(header, "report", "ministep")
	for _, col := range plan.Columns {
		header = append(header, col.Name)
	}
	fmt.Println(strings.Join(header, ","))

	eachRow(plan, matrix, func(report, ministep int32, values []float32) {
		fields := make([]string, 0, len(header))
		fields = append(fields, fmt.Sprint(report), fmt.Sprint(ministep))
		for _, v := range values {
			fields = append(fields, fmt.Sprintf("%g", v))
		}
		fmt.Println(strings.Join(fields, ","))
	})
	return nil
}

func printTable(plan *eclsummary.ColumnPlan, matrix []byte) error {
	fmt.Printf("%-8s %-8s", "report", "ministep")
	for _, col := range plan.Columns {
		fmt.Printf(" %14s", col.Name)
	}
	fmt.Println()

	eachRow(plan, matrix, func(report, ministep int32, values []float32) {
		fmt.Printf("%-8d %-8d", report, ministep)
		for _, v := range values {
			fmt.Printf(" %14g", v)
		}
		fmt.Println()
	})
	return nil
}
