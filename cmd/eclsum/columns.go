package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	json "github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/equinor/ecl3/pkg/eclsummary"
)

func columnsCmd() *cli.Command {
	return &cli.Command{
		Name:      "columns",
		Usage:     "Show the column plan of a summary specification",
		ArgsUsage: "<case.SMSPEC>",
		Flags: append(sharedFlags(),
			&cli.StringFlag{
				Name:        "separator",
				Usage:       "Qualifier separator in column names",
				Value:       separator,
				Destination: &separator,
			},
			&cli.StringFlag{
				Name:        "format",
				Usage:       "Output format (table, json)",
				Value:       format,
				Destination: &format,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return fmt.Errorf("columns takes exactly one .SMSPEC argument")
			}
			applyConfig(cmd, LoadConfig())

			plan, err := eclsummary.NewColumnPlan(cmd.Args().First(), eclsummary.PlanOptions{
				Separator: separator,
				Logger:    newLogger(),
			})
			if err != nil {
				return err
			}

			if format == "json" {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(planJSON(plan))
			}

			printPlanHeader(plan)
			nameStyle := color.New(color.FgCyan)
			for _, col := range plan.Columns {
				if col.Unit != "" {
					fmt.Printf("%4d  %s [%s]\n", col.Pos, nameStyle.Sprint(col.Name), col.Unit)
				} else {
					fmt.Printf("%4d  %s\n", col.Pos, nameStyle.Sprint(col.Name))
				}
			}
			return nil
		},
	}
}

func printPlanHeader(plan *eclsummary.ColumnPlan) {
	dim := color.New(color.FgHiBlack)
	fmt.Println(dim.Sprintf("nlist: %d, selected: %d", plan.NList, len(plan.Columns)))
	if name := plan.UnitSystem.String(); name != "" {
		fmt.Println(dim.Sprint("units: " + name))
	}
	if name := plan.Simulator.String(); name != "" {
		fmt.Println(dim.Sprint("simulator: " + name))
	}
	if !plan.StartDate.IsZero() {
		fmt.Println(dim.Sprint("start: " + plan.StartDate.Format("2006-01-02 15:04:05")))
	}
}

type planDoc struct {
	NList      int                 `json:"nlist"`
	UnitSystem string              `json:"unit_system,omitempty"`
	Simulator  string              `json:"simulator,omitempty"`
	StartDate  string              `json:"start_date,omitempty"`
	Columns    []eclsummary.Column `json:"columns"`
}

func planJSON(plan *eclsummary.ColumnPlan) planDoc {
	doc := planDoc{
		NList:      plan.NList,
		UnitSystem: plan.UnitSystem.String(),
		Simulator:  plan.Simulator.String(),
		Columns:    plan.Columns,
	}
	if !plan.StartDate.IsZero() {
		doc.StartDate = plan.StartDate.Format("2006-01-02T15:04:05Z")
	}
	return doc
}
