package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/guptarohit/asciigraph"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/san-kum/algoviz/internal/config"
	"github.com/san-kum/algoviz/internal/experiment"
	"github.com/san-kum/algoviz/internal/metrics"
	"github.com/san-kum/algoviz/internal/playback"
	"github.com/san-kum/algoviz/internal/sim"
	"github.com/san-kum/algoviz/internal/storage"
	"github.com/san-kum/algoviz/internal/trace"
)

const maxCellWidth = 40

func newTable() table.Writer {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.SetOutputMirror(os.Stdout)
	return tbl
}

func printResult(res *sim.Result) {
	color.New(color.FgCyan, color.Bold).Fprintf(os.Stdout, "%s", res.Algorithm)
	fmt.Printf(" on %s\n", ellipsis(res.Input.String(), maxCellWidth*2))
	fmt.Printf("steps: %s  generated in %s\n", humanize.Comma(int64(res.Trace.Len())), res.Elapsed.Round(time.Microsecond))
	fmt.Printf("final: %s\n\n", res.Trace.Last().Message)
	printMetrics(res.Metrics)
}

func printMetrics(m map[string]float64) {
	if len(m) == 0 {
		return
	}
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	slices.Sort(names)

	tbl := newTable()
	tbl.AppendHeader(table.Row{"METRIC", "VALUE"})
	for _, name := range names {
		tbl.AppendRow(table.Row{name, humanize.Comma(int64(m[name]))})
	}
	tbl.Render()
}

func printRuns(runs []storage.RunMetadata) {
	tbl := newTable()
	tbl.AppendHeader(table.Row{"ID", "ALGORITHM", "TIME", "INPUT", "STEPS", "TICK"})
	for _, run := range runs {
		tbl.AppendRow(table.Row{
			run.ID,
			run.Algorithm,
			humanize.Time(run.Timestamp),
			ellipsis(run.Input, maxCellWidth),
			humanize.Comma(int64(run.Steps)),
			fmt.Sprintf("%dms", run.TickMs),
		})
	}
	tbl.AppendFooter(table.Row{fmt.Sprintf("Total: %d runs", len(runs))})
	tbl.Render()
}

func printRunMetadata(meta *storage.RunMetadata) {
	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("algorithm: %s\n", meta.Algorithm)
	fmt.Printf("time: %s (%s)\n", meta.Timestamp.Format("2006-01-02 15:04:05"), humanize.Time(meta.Timestamp))
	fmt.Printf("input (%s): %s\n", meta.InputKind, meta.Input)
	fmt.Printf("steps: %s  tick: %dms  generated in %s\n\n",
		humanize.Comma(int64(meta.Steps)), meta.TickMs, time.Duration(meta.ElapsedNs).Round(time.Microsecond))
	printMetrics(meta.Metrics)
	fmt.Println()
}

func printSteps(steps []storage.StepRecord) {
	tbl := newTable()
	tbl.AppendHeader(table.Row{"#", "PHASE", "KIND", "MESSAGE"})
	for _, s := range steps {
		tbl.AppendRow(table.Row{s.Index, s.Phase, s.Kind, ellipsis(s.Message, maxCellWidth*2)})
	}
	tbl.Render()
}

// printStep prints one step with its indented JSON state.
func printStep(s storage.StepRecord) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(s.Payload), "", "  "); err != nil {
		return fmt.Errorf("step %d: %w", s.Index, err)
	}
	fmt.Printf("step %d [%s] %s\n", s.Index, s.Phase, s.Kind)
	fmt.Printf("message: %s\n", s.Message)
	fmt.Println(buf.String())
	return nil
}

func printHeadlessStep(st playback.Status, ev metrics.Event) {
	c := color.New(color.FgWhite)
	switch ev {
	case metrics.EventSwap, metrics.EventWrite:
		c = color.New(color.FgRed)
	case metrics.EventCompare:
		c = color.New(color.FgYellow)
	case metrics.EventVisit:
		c = color.New(color.FgCyan)
	}
	if st.Step.Phase == trace.PhaseDone {
		c = color.New(color.FgGreen, color.Bold)
	}
	fmt.Printf("%5d %3d%% ", st.Position, st.Percent)
	c.Fprintf(os.Stdout, "%s\n", st.Step.Message)
}

type eventCounts struct {
	event  metrics.Event
	values []float64
}

// eventSeries returns the running count of each event kind that occurs in tr.
func eventSeries(tr *trace.Trace) []eventCounts {
	kinds := []metrics.Event{metrics.EventCompare, metrics.EventSwap, metrics.EventWrite, metrics.EventVisit}
	series := make([]eventCounts, len(kinds))
	for i, ev := range kinds {
		series[i] = eventCounts{event: ev, values: make([]float64, tr.Len())}
	}

	var cls metrics.Classifier
	for i := range tr.Len() {
		ev := cls.Next(tr.At(i))
		for j := range series {
			if i > 0 {
				series[j].values[i] = series[j].values[i-1]
			}
			if series[j].event == ev {
				series[j].values[i]++
			}
		}
	}

	return slices.DeleteFunc(series, func(s eventCounts) bool {
		return len(s.values) == 0 || s.values[len(s.values)-1] == 0
	})
}

func printPlot(values []float64, caption string) {
	graph := asciigraph.Plot(values,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
	fmt.Println(graph)
	fmt.Println()
}

func printPresets(names []string, presets []*config.Config) {
	tbl := newTable()
	tbl.AppendHeader(table.Row{"PRESET", "INPUT", "TARGET", "START"})
	for i, p := range presets {
		tbl.AppendRow(table.Row{names[i], p.Input, p.Target, p.Start})
	}
	tbl.Render()
}

func printAlgorithms(entries []experiment.Entry) {
	tbl := newTable()
	tbl.AppendHeader(table.Row{"NAME", "INPUT", "TICK", "DESCRIPTION"})
	for _, e := range entries {
		tbl.AppendRow(table.Row{e.Name, e.InputKind, e.Tick, e.Description})
	}
	tbl.AppendFooter(table.Row{fmt.Sprintf("Total: %d algorithms", len(entries))})
	tbl.Render()
}

func ellipsis(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
