package anim

import (
	"context"
	"io"
	"log"
	"net/url"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/flakesim/internal/config"
	"github.com/san-kum/flakesim/internal/flake"
)

var _ = Describe("Run", func() {
	var (
		rec     *flake.Recorder
		loc     *recordingLocation
		c       *Controller
		ticks   chan time.Time
		submits chan config.Form
		errCh   chan error
		base    time.Time
		ctx     context.Context
		cancel  context.CancelFunc
	)

	start := func(s flake.Surface) {
		var err error
		c, err = New(s, loc, config.DefaultParams(), DefaultOptions(400, 400), log.New(io.Discard, "", 0))
		Expect(err).NotTo(HaveOccurred())
		go func() { errCh <- Run(ctx, c, ticks, submits) }()
	}

	BeforeEach(func() {
		rec = flake.NewRecorder()
		loc = &recordingLocation{}
		ticks = make(chan time.Time)
		submits = make(chan config.Form)
		errCh = make(chan error, 1)
		base = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		ctx, cancel = context.WithCancel(context.Background())
		DeferCleanup(cancel)
	})

	It("stamps frames relative to the first tick", func() {
		start(rec)
		for _, d := range []time.Duration{0, 20, 40, 60, 80, 120} {
			ticks <- base.Add(d * time.Millisecond)
		}
		close(ticks)

		Eventually(errCh).Should(Receive(BeNil()))
		Expect(c.State().Frames).To(Equal(3))
		Expect(c.State().LastFrame).To(Equal(120 * time.Millisecond))
		Expect(rec.Segments).To(HaveLen(flake.Count(3, 5)))
	})

	It("applies submissions between frames", func() {
		start(rec)
		ticks <- base
		submits <- url.Values{"branches": {"4"}, "layers": {"2"}, "direction": {"on"}}
		ticks <- base.Add(40 * time.Millisecond)
		close(ticks)

		Eventually(errCh).Should(Receive(BeNil()))
		Expect(rec.Segments).To(HaveLen(flake.Count(4, 2)))
		Expect(loc.queries).To(HaveLen(1))
		Expect(loc.queries[0]).To(ContainSubstring("direction=true"))
		Expect(c.Params().Direction).To(BeTrue())
	})

	It("stops with ErrHalted when a frame fails", func() {
		start(panicSurface{})
		ticks <- base
		ticks <- base.Add(time.Second)

		var err error
		Eventually(errCh).Should(Receive(&err))
		Expect(err).To(MatchError(ErrHalted))
		Expect(err).To(MatchError(ErrPanic))
		Expect(c.Halted()).To(BeTrue())
	})

	It("returns the context error on cancel", func() {
		start(rec)
		ticks <- base
		cancel()

		Eventually(errCh).Should(Receive(MatchError(context.Canceled)))
	})

	It("keeps running after the submit channel closes", func() {
		start(rec)
		close(submits)
		ticks <- base
		ticks <- base.Add(40 * time.Millisecond)
		close(ticks)

		Eventually(errCh).Should(Receive(BeNil()))
		Expect(c.State().Frames).To(Equal(1))
	})
})

var _ = Describe("RunTicker", func() {
	It("renders on a real ticker until cancelled", func() {
		rec := flake.NewRecorder()
		c, err := New(rec, LocationFunc(func(string) error { return nil }), config.DefaultParams(), DefaultOptions(100, 100), log.New(io.Discard, "", 0))
		Expect(err).NotTo(HaveOccurred())

		frames := make(chan int, 64)
		c.OnFrame(func(st RenderState) error {
			select {
			case frames <- st.Frames:
			default:
			}
			return nil
		})

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- RunTicker(ctx, c, 5*time.Millisecond, nil) }()

		Eventually(frames, time.Second).Should(Receive(BeNumerically(">=", 2)))
		cancel()
		Eventually(done).Should(Receive(MatchError(context.Canceled)))
	})
})
