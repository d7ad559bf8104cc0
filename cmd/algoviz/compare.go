package main

import (
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/san-kum/algoviz/internal/automation"
	"github.com/san-kum/algoviz/internal/input"
	"github.com/san-kum/algoviz/internal/sim"
)

var compareColumns = []string{"comparisons", "swaps", "writes", "visits"}

// compareAlgorithms generates every named algorithm on one input and ranks
// them by step count.
func compareAlgorithms(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args[0])
	if err != nil {
		return err
	}

	var kind input.Kind
	jobs := make([]sim.Job, 0, len(args))
	for i, name := range args {
		entry, err := registry.Get(name)
		if err != nil {
			return err
		}
		if i == 0 {
			kind = entry.InputKind
		} else if entry.InputKind != kind {
			return fmt.Errorf("%s takes %s input, %s takes %s", name, entry.InputKind, args[0], kind)
		}
		jobs = append(jobs, sim.Job{Generator: entry.Generator, Metrics: registry.DefaultMetrics()})
	}

	in, err := input.NewNormalizer(kind, cfg.NormalizerOptions()).Normalize(cfg.Input)
	if err != nil {
		return fmt.Errorf("load %s input: %w", kind, err)
	}
	for i := range jobs {
		jobs[i].Input = in
	}

	results, err := sim.GenerateAll(cmd.Context(), jobs)
	if err != nil {
		return err
	}
	slices.SortStableFunc(results, func(a, b *sim.Result) int {
		return a.Trace.Len() - b.Trace.Len()
	})

	fmt.Printf("comparing %d algorithms on %s\n\n", len(results), ellipsis(in.String(), maxCellWidth*2))

	header := table.Row{"ALGORITHM", "STEPS"}
	for _, c := range compareColumns {
		header = append(header, c)
	}
	header = append(header, "TIME")

	tbl := newTable()
	tbl.AppendHeader(header)
	for i, res := range results {
		name := res.Algorithm
		if i == 0 {
			name = color.New(color.FgGreen, color.Bold).Sprint(name)
		}
		row := table.Row{name, humanize.Comma(int64(res.Trace.Len()))}
		for _, c := range compareColumns {
			row = append(row, humanize.Comma(int64(res.Metrics[c])))
		}
		row = append(row, res.Elapsed.Round(time.Microsecond))
		tbl.AppendRow(row)
	}
	tbl.Render()
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	if err := st.Init(); err != nil {
		return err
	}

	if sc.Name != "" {
		color.New(color.FgCyan, color.Bold).Fprintf(os.Stdout, "%s\n", sc.Name)
	}
	if sc.Description != "" {
		fmt.Println(sc.Description)
	}

	results, runErr := automation.RunScenario(cmd.Context(), sc, registry, logger, collector)

	tbl := newTable()
	tbl.AppendHeader(table.Row{"#", "ALGORITHM", "INPUT", "STEPS", "RUN"})
	for i, r := range results {
		runID := "-"
		if r.Step.Save {
			runID, err = st.Save(r.Result, time.Duration(r.Tick)*time.Millisecond)
			if err != nil {
				return err
			}
		}
		tbl.AppendRow(table.Row{
			i + 1,
			r.Result.Algorithm,
			ellipsis(r.Result.Input.String(), maxCellWidth),
			humanize.Comma(int64(r.Result.Trace.Len())),
			runID,
		})
	}
	tbl.AppendFooter(table.Row{fmt.Sprintf("%d/%d steps", len(results), len(sc.Steps))})
	tbl.Render()

	if runErr != nil {
		color.New(color.FgRed).Fprintf(os.Stdout, "scenario stopped: %v\n", runErr)
		return runErr
	}
	return nil
}
