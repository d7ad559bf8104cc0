package playback_test

import (
	"math/rand"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/algoviz/internal/algorithms"
	"github.com/san-kum/algoviz/internal/input"
	"github.com/san-kum/algoviz/internal/playback"
	"github.com/san-kum/algoviz/internal/trace"
)

func traceOf(n int) *trace.Trace {
	rec := trace.NewRecorder("test")
	rec.Start(trace.LinearScanState{Index: trace.None}, "start")
	for i := 0; i < n-2; i++ {
		rec.Emit(trace.LinearScanState{Index: i}, "step %d", i)
	}
	return rec.Done(trace.LinearScanState{Index: trace.None}, "done")
}

var _ = Describe("Controller", func() {
	var (
		sched *playback.ManualScheduler
		c     *playback.Controller
	)

	BeforeEach(func() {
		sched = &playback.ManualScheduler{}
		c = playback.New(time.Second, sched)
		c.Load(traceOf(5))
	})

	It("starts idle before the first step", func() {
		Expect(c.Mode()).To(Equal(playback.Idle))
		Expect(c.Position()).To(Equal(-1))
		Expect(c.CurrentStep()).To(BeNil())
		Expect(c.Percent()).To(Equal(0))
	})

	It("advances one step per tick and finishes past the end", func() {
		Expect(c.Play()).To(BeTrue())
		Expect(sched.Active()).To(Equal(1))

		for i := 0; i < 5; i++ {
			sched.Tick()
			Expect(c.Position()).To(Equal(i))
			Expect(c.Mode()).To(Equal(playback.Playing))
		}
		sched.Tick()
		Expect(c.Mode()).To(Equal(playback.Finished))
		Expect(c.Position()).To(Equal(4))
		Expect(c.Percent()).To(Equal(100))
		Expect(sched.Active()).To(BeZero())
	})

	It("treats Play while playing as a no-op", func() {
		Expect(c.Play()).To(BeTrue())
		Expect(c.Play()).To(BeFalse())
		Expect(sched.Active()).To(Equal(1))
	})

	It("pauses only while playing", func() {
		Expect(c.Pause()).To(BeFalse())
		c.Play()
		sched.Tick()
		Expect(c.Pause()).To(BeTrue())
		Expect(c.Mode()).To(Equal(playback.Paused))
		Expect(c.Position()).To(Equal(0))
		Expect(sched.Active()).To(BeZero())
	})

	It("ignores a tick that fires after stop", func() {
		c.Play()
		c.Stop()
		sched.FireStale()
		Expect(c.Position()).To(Equal(-1))
		Expect(c.Mode()).To(Equal(playback.Idle))
	})

	It("ignores a stale tick from an earlier play", func() {
		c.Play()
		sched.Tick()
		c.Pause()
		c.Play()
		sched.FireStale()
		Expect(c.Position()).To(Equal(0))
		sched.Tick()
		Expect(c.Position()).To(Equal(1))
	})

	It("stops idempotently", func() {
		c.Play()
		sched.Tick()
		c.Stop()
		first := c.Status()
		c.Stop()
		Expect(c.Status()).To(Equal(first))
		Expect(first.Mode).To(Equal(playback.Idle))
		Expect(first.Position).To(Equal(-1))
	})

	It("replays identically from Finished", func() {
		var first []int
		c.OnChange(func(st playback.Status) { first = append(first, st.Position) })
		c.Play()
		for i := 0; i < 6; i++ {
			sched.Tick()
		}
		Expect(c.Mode()).To(Equal(playback.Finished))

		var second []int
		c.OnChange(func(st playback.Status) { second = append(second, st.Position) })
		Expect(c.Play()).To(BeTrue())
		Expect(c.Position()).To(Equal(-1))
		for i := 0; i < 6; i++ {
			sched.Tick()
		}
		Expect(second).To(Equal(first))
	})

	It("rejects manual steps while playing", func() {
		c.Play()
		Expect(c.StepForward()).To(BeFalse())
		Expect(c.StepBackward()).To(BeFalse())
		Expect(c.Position()).To(Equal(-1))
	})

	It("recomputes mode when stepping", func() {
		Expect(c.StepBackward()).To(BeFalse())
		Expect(c.StepForward()).To(BeTrue())
		Expect(c.Mode()).To(Equal(playback.Paused))
		for c.StepForward() {
		}
		Expect(c.Position()).To(Equal(4))
		Expect(c.Mode()).To(Equal(playback.Finished))
		Expect(c.StepForward()).To(BeFalse())

		Expect(c.StepBackward()).To(BeTrue())
		Expect(c.Mode()).To(Equal(playback.Paused))
		for c.StepBackward() {
		}
		Expect(c.Position()).To(Equal(-1))
		Expect(c.Mode()).To(Equal(playback.Idle))
	})

	It("clamps seek and cancels autoplay", func() {
		c.Play()
		c.Seek(100)
		Expect(c.Position()).To(Equal(4))
		Expect(c.Mode()).To(Equal(playback.Finished))
		Expect(sched.Active()).To(BeZero())

		c.Seek(-7)
		Expect(c.Mode()).To(Equal(playback.Idle))
		c.Seek(2)
		Expect(c.Mode()).To(Equal(playback.Paused))
		Expect(c.CurrentStep().Index).To(Equal(2))
	})

	It("resets when a new trace is loaded mid-play", func() {
		c.Play()
		sched.Tick()
		sched.Tick()
		c.Load(traceOf(3))
		sched.FireStale()
		sched.Tick()
		Expect(c.Mode()).To(Equal(playback.Idle))
		Expect(c.Position()).To(Equal(-1))
		Expect(c.Len()).To(Equal(3))
	})

	It("keeps the position in range under any operation sequence", func() {
		rng := rand.New(rand.NewSource(7))
		ops := []func(){
			func() { c.Play() },
			func() { c.Pause() },
			func() { c.Stop() },
			func() { c.StepForward() },
			func() { c.StepBackward() },
			func() { c.Seek(rng.Intn(12) - 4) },
			sched.Tick,
			sched.FireStale,
		}
		for i := 0; i < 2000; i++ {
			ops[rng.Intn(len(ops))]()
			st := c.Status()
			Expect(st.Position).To(BeNumerically(">=", -1))
			Expect(st.Position).To(BeNumerically("<=", st.Len-1))
			if st.Mode == playback.Finished {
				Expect(st.Position).To(Equal(st.Len - 1))
			}
			if st.Mode == playback.Playing {
				Expect(sched.Active()).To(Equal(1))
			}
		}
	})

	It("rejects play without a trace", func() {
		empty := playback.New(0, sched)
		Expect(empty.Play()).To(BeFalse())
		Expect(empty.Percent()).To(Equal(0))
		Expect(empty.StepForward()).To(BeFalse())
	})

	It("finishes an empty-input trace at 100 percent", func() {
		tr, err := algorithms.All()[0].Generate(input.Array{})
		Expect(err).NotTo(HaveOccurred())
		c.Load(tr)
		Expect(c.Len()).To(Equal(2))

		c.Play()
		for c.Mode() == playback.Playing {
			sched.Tick()
		}
		Expect(c.Mode()).To(Equal(playback.Finished))
		Expect(c.Percent()).To(Equal(100))
	})
})

var _ = Describe("Percent", func() {
	DescribeTable("rounds progress",
		func(pos, n, want int) {
			Expect(playback.Percent(pos, n)).To(Equal(want))
		},
		Entry("empty trace", -1, 0, 0),
		Entry("before start", -1, 4, 0),
		Entry("first of three", 0, 3, 33),
		Entry("second of three", 1, 3, 67),
		Entry("last", 9, 10, 100),
	)
})

var _ = Describe("TickerScheduler", func() {
	It("drives autoplay to completion", func() {
		c := playback.New(5*time.Millisecond, nil)
		c.Load(traceOf(4))
		c.Play()
		Eventually(c.Mode).WithTimeout(2 * time.Second).Should(Equal(playback.Finished))
		Expect(c.Position()).To(Equal(3))
	})

	It("stops ticking after cancel", func() {
		var mu sync.Mutex
		count := 0
		cancel := playback.TickerScheduler{}.Every(time.Millisecond, func() {
			mu.Lock()
			count++
			mu.Unlock()
		})
		Eventually(func() int {
			mu.Lock()
			defer mu.Unlock()
			return count
		}).Should(BeNumerically(">", 0))
		cancel()
		cancel()

		mu.Lock()
		seen := count
		mu.Unlock()
		Consistently(func() int {
			mu.Lock()
			defer mu.Unlock()
			return count
		}, 30*time.Millisecond).Should(BeNumerically("<=", seen+1))
	})
})
