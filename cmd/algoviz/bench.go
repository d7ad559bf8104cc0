package main

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/san-kum/algoviz/internal/algorithms"
	"github.com/san-kum/algoviz/internal/input"
	"github.com/san-kum/algoviz/internal/sim"
)

// maxMatrixVertices bounds Floyd-Warshall inputs; its trace holds n³ steps
// with an n×n snapshot each.
const maxMatrixVertices = 16

type benchCase struct {
	algorithm string
	size      int
}

func benchAlgorithms(cmd *cobra.Command, args []string) error {
	names := args
	if len(names) == 0 {
		names = registry.List()
	}

	var cases []benchCase
	var jobs []sim.Job
	var skipped []benchCase
	for _, name := range names {
		entry, err := registry.Get(name)
		if err != nil {
			return err
		}
		for _, n := range benchSizes {
			if n < 1 {
				return fmt.Errorf("invalid size %d", n)
			}
			if name == algorithms.NameFloydWarshall && n > maxMatrixVertices {
				skipped = append(skipped, benchCase{name, n})
				continue
			}
			rng := rand.New(rand.NewPCG(uint64(benchSeed), uint64(n)))
			cases = append(cases, benchCase{name, n})
			jobs = append(jobs, sim.Job{
				Generator: entry.Generator,
				Input:     randomInput(rng, entry.InputKind, n),
				Metrics:   registry.DefaultMetrics(),
			})
		}
	}

	fmt.Printf("benchmarking %d algorithms on sizes %v\n\n", len(names), benchSizes)
	start := time.Now()
	results, err := sim.GenerateAll(cmd.Context(), jobs)
	if err != nil {
		return err
	}
	wall := time.Since(start)

	tbl := newTable()
	tbl.AppendHeader(table.Row{"ALGORITHM", "N", "STEPS", "OPS", "TIME", "STEPS/SEC"})
	total := 0
	for i, res := range results {
		steps := res.Trace.Len()
		total += steps
		collector.ObserveGeneration(res.Algorithm, steps, res.Elapsed)

		ops := res.Metrics["comparisons"] + res.Metrics["swaps"] + res.Metrics["writes"] + res.Metrics["visits"]
		rate := float64(steps) / max(res.Elapsed.Seconds(), 1e-9)
		tbl.AppendRow(table.Row{
			cases[i].algorithm,
			cases[i].size,
			humanize.Comma(int64(steps)),
			humanize.Comma(int64(ops)),
			res.Elapsed.Round(time.Microsecond),
			humanize.CommafWithDigits(rate, 0),
		})
	}
	tbl.AppendFooter(table.Row{fmt.Sprintf("Total: %d traces", len(results)), "", humanize.Comma(int64(total)), "", wall.Round(time.Millisecond), ""})
	tbl.Render()

	for _, c := range skipped {
		color.New(color.FgYellow).Printf("skipped %s at n=%d (limit %d vertices)\n", c.algorithm, c.size, maxMatrixVertices)
	}

	if showMetrics {
		snap, err := collector.Snapshot()
		if err != nil {
			return err
		}
		fmt.Println()
		printMetrics(snap)
	}
	return nil
}

// randomInput builds an input of kind with n values, nodes or vertices.
// Graphs are connected: a random spanning chain plus about n extra edges.
func randomInput(rng *rand.Rand, kind input.Kind, n int) input.Input {
	switch kind {
	case input.KindGraph:
		perm := rng.Perm(n)
		edges := make([]input.Edge, 0, 2*n)
		for i := 1; i < n; i++ {
			edges = append(edges, input.Edge{From: perm[i-1], To: perm[i]})
		}
		for range n {
			a, b := rng.IntN(n), rng.IntN(n)
			if a != b {
				edges = append(edges, input.Edge{From: a, To: b})
			}
		}
		if len(edges) == 0 {
			edges = append(edges, input.Edge{From: 0, To: 0})
		}
		return input.NewGraph(edges, perm[0])
	case input.KindWeighted:
		edges := make([]input.WeightedEdge, 0, 2*n)
		for i := 1; i < n; i++ {
			edges = append(edges, input.WeightedEdge{From: rng.IntN(i), To: i, Weight: 1 + rng.IntN(20)})
		}
		for range n {
			a, b := rng.IntN(n), rng.IntN(n)
			if a != b {
				edges = append(edges, input.WeightedEdge{From: a, To: b, Weight: 1 + rng.IntN(20)})
			}
		}
		if len(edges) == 0 {
			edges = append(edges, input.WeightedEdge{From: 0, To: 0, Weight: 1})
		}
		return input.NewWeighted(edges, 0, n-1)
	default:
		values := make([]int, n)
		for i := range values {
			values[i] = rng.IntN(1000)
		}
		sorted := slices.Clone(values)
		slices.Sort(sorted)
		return input.Array{Values: values, Target: sorted[rng.IntN(n)]}
	}
}
