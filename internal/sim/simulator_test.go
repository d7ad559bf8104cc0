package sim_test

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/algoviz/internal/algorithms"
	"github.com/san-kum/algoviz/internal/input"
	"github.com/san-kum/algoviz/internal/metrics"
	"github.com/san-kum/algoviz/internal/playback"
	"github.com/san-kum/algoviz/internal/sim"
	"github.com/san-kum/algoviz/internal/view"
)

func generatorNamed(name string) algorithms.Generator {
	for _, g := range algorithms.All() {
		if g.Name() == name {
			return g
		}
	}
	Fail("no generator " + name)
	return nil
}

var _ = Describe("Simulator", func() {
	var (
		sched *playback.ManualScheduler
		logs  *bytes.Buffer
		s     *sim.Simulator
	)

	BeforeEach(func() {
		sched = &playback.ManualScheduler{}
		logs = &bytes.Buffer{}
		s = sim.New(
			generatorNamed(algorithms.NameLinearSearch),
			input.NewNormalizer(input.KindArray, input.Options{Target: 22}),
			sim.WithScheduler(sched),
			sim.WithLogger(slog.New(slog.NewTextHandler(logs, nil))),
			sim.WithCollector(metrics.NewCollector()),
		)
		s.AddMetric(metrics.NewComparisons())
		s.AddMetric(metrics.NewSteps())
	})

	It("generates a trace and resets playback on new input", func() {
		changed, err := s.Load("64,34,25,12,22,11,90,88,76,45")
		Expect(err).NotTo(HaveOccurred())
		Expect(changed).To(BeTrue())
		Expect(s.Mode()).To(Equal(playback.Idle))
		Expect(s.CurrentStep()).To(BeNil())
		Expect(s.Len()).To(Equal(s.Result().Trace.Len()))
		Expect(s.Result().Metrics).To(HaveKeyWithValue("comparisons", 5.0))
		Expect(logs.String()).To(ContainSubstring("trace generated"))
	})

	It("ignores input that normalizes to the same value", func() {
		_, err := s.Load("1,2,3")
		Expect(err).NotTo(HaveOccurred())
		s.StepForward()

		changed, err := s.Load(" 1, 2 ,3,oops")
		Expect(err).NotTo(HaveOccurred())
		Expect(changed).To(BeFalse())
		Expect(s.Status().Position).To(Equal(0))
	})

	It("keeps the previous trace when input is invalid", func() {
		_, err := s.Load("5,6,7")
		Expect(err).NotTo(HaveOccurred())
		before := s.Trace()
		s.StepForward()

		changed, err := s.Load("a,b,c")
		Expect(err).To(MatchError(input.ErrInvalidInput))
		Expect(changed).To(BeFalse())
		Expect(s.Trace()).To(BeIdenticalTo(before))
		Expect(s.Status().Position).To(Equal(0))
		Expect(logs.String()).To(ContainSubstring("input rejected"))
	})

	It("stops autoplay before swapping in a new trace", func() {
		_, err := s.Load("1,2,3,4,5,6")
		Expect(err).NotTo(HaveOccurred())
		s.Play()
		sched.Tick()
		sched.Tick()

		_, err = s.Load("9,8")
		Expect(err).NotTo(HaveOccurred())
		sched.FireStale()
		Expect(s.Mode()).To(Equal(playback.Idle))
		Expect(s.Status().Position).To(Equal(-1))
	})

	It("notifies observers of each transition", func() {
		var mu sync.Mutex
		var seen []playback.Mode
		s.AddObserver(sim.ObserverFunc(func(st playback.Status) {
			mu.Lock()
			seen = append(seen, st.Mode)
			mu.Unlock()
		}))
		_, err := s.Load("1,22")
		Expect(err).NotTo(HaveOccurred())
		s.Play()
		for s.Mode() == playback.Playing {
			sched.Tick()
		}

		mu.Lock()
		defer mu.Unlock()
		Expect(seen[0]).To(Equal(playback.Idle))
		Expect(seen).To(ContainElement(playback.Playing))
		Expect(seen[len(seen)-1]).To(Equal(playback.Finished))
	})

	It("projects the current step", func() {
		_, err := s.Load("64,34,25,12,22")
		Expect(err).NotTo(HaveOccurred())
		Expect(s.VisualTag(4)).To(Equal(view.Default))

		s.Seek(s.Len() - 1)
		Expect(s.VisualTag(4)).To(Equal(view.Matched))
		Expect(s.ProgressPercent()).To(Equal(100))
	})
})

var _ = Describe("GenerateAll", func() {
	It("returns results in job order", func() {
		var jobs []sim.Job
		for _, g := range algorithms.All() {
			var in input.Input
			switch g.InputKind() {
			case input.KindArray:
				in = input.Array{Values: []int{5, 3, 9, 1}, Target: 9}
			case input.KindGraph:
				in = input.NewGraph([]input.Edge{{1, 2}, {2, 3}}, 1)
			case input.KindWeighted:
				in = input.NewWeighted([]input.WeightedEdge{{0, 1, 2}, {1, 2, 3}}, 0, 2)
			}
			jobs = append(jobs, sim.Job{Generator: g, Input: in, Metrics: []sim.Metric{metrics.NewSteps()}})
		}

		results, err := sim.GenerateAll(context.Background(), jobs)
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(len(jobs)))
		for i, r := range results {
			Expect(r.Algorithm).To(Equal(jobs[i].Generator.Name()))
			Expect(r.Metrics["steps"]).To(BeNumerically("==", r.Trace.Len()))
		}
	})

	It("fails on a mismatched input", func() {
		jobs := []sim.Job{{
			Generator: generatorNamed(algorithms.NameBFS),
			Input:     input.Array{Values: []int{1}},
		}}
		_, err := sim.GenerateAll(context.Background(), jobs)
		Expect(err).To(MatchError(algorithms.ErrInputKind))
	})

	It("honours a cancelled context", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		jobs := []sim.Job{{Generator: generatorNamed(algorithms.NameBubbleSort), Input: input.Array{Values: []int{2, 1}}}}
		_, err := sim.GenerateAll(ctx, jobs)
		Expect(err).To(MatchError(context.Canceled))
	})
})

var _ = Describe("TickerScheduler through the simulator", func() {
	It("plays to the end in real time", func() {
		s := sim.New(
			generatorNamed(algorithms.NameBFS),
			input.NewNormalizer(input.KindGraph, input.DefaultOptions()),
			sim.WithInterval(2*time.Millisecond),
		)
		_, err := s.Load("1-2,1-3,2-4,2-5,3-5")
		Expect(err).NotTo(HaveOccurred())
		s.Play()
		Eventually(s.Mode).WithTimeout(5 * time.Second).Should(Equal(playback.Finished))
	})
})
