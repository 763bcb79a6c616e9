package sim_test

import (
	"image/color"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/skillwall/internal/config"
	"github.com/san-kum/skillwall/internal/show"
	"github.com/san-kum/skillwall/internal/sim"
	"github.com/san-kum/skillwall/internal/survey"
)

type stubFields struct{}

func (stubFields) Field(i int) show.PointField {
	return show.PointField{{X: float64(10 * i), Y: float64(10 * i)}}
}

type countingCanvas struct {
	clears  int
	circles []color.RGBA
}

func (c *countingCanvas) Clear() {
	c.clears++
	c.circles = nil
}

func (c *countingCanvas) FillCircle(x, y, r float64, col color.RGBA) {
	c.circles = append(c.circles, col)
}

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Seed = 7
	cfg.Phases = []config.PhaseConfig{
		{Key: show.KeyIntro, Label: "Hello", DurationMs: 1000},
		{Key: "Fabrication", DurationMs: 2000},
		{Key: "Machining", DurationMs: 2000},
		{Key: show.KeyQR, Label: "QR", DurationMs: 1000},
	}
	cfg.Morph.TextPoints = 50
	cfg.Morph.QRPoints = 80
	return cfg
}

func testBuckets() show.Buckets {
	return show.Buckets{
		"Fabrication": {Teach: 2, Learn: 1},
		"Machining":   {Teach: 0, Learn: 3},
	}
}

var _ = Describe("Session", func() {
	var s *sim.Session

	BeforeEach(func() {
		var err error
		s, err = sim.New(testConfig(), stubFields{}, nil)
		Expect(err).NotTo(HaveOccurred())
	})

	It("rejects an invalid config", func() {
		cfg := testConfig()
		cfg.Phases = nil
		_, err := sim.New(cfg, stubFields{}, nil)
		Expect(err).To(MatchError(show.ErrNoPhases))
	})

	It("starts on the intro with a fetching status and no bubbles", func() {
		snap := s.Snapshot()
		Expect(snap.Index).To(Equal(0))
		Expect(snap.Status).To(Equal(survey.StatusFetching))
		Expect(snap.Teach + snap.Learn).To(BeZero())
	})

	It("shows no bubbles on the intro even with data", func() {
		s.ApplyUpdate(survey.Update{Buckets: testBuckets(), Rows: 3, Status: "Loaded 3 responses"})
		s.Step(16 * time.Millisecond)
		Expect(s.Snapshot().Status).To(Equal("Loaded 3 responses"))
		Expect(s.Bubbles()).To(BeEmpty())
	})

	Context("with survey data", func() {
		BeforeEach(func() {
			s.ApplyUpdate(survey.Update{Buckets: testBuckets(), Rows: 3, Status: "Loaded 3 responses"})
		})

		It("renders the skill phase's bubbles on entry", func() {
			s.Step(time.Second)
			snap := s.Snapshot()
			Expect(snap.Phase.Key).To(Equal("Fabrication"))
			Expect(snap.Teach).To(Equal(2))
			Expect(snap.Learn).To(Equal(1))
		})

		It("fades the old bubbles before laying out the next phase", func() {
			s.Step(time.Second)
			s.Step(1990 * time.Millisecond)
			s.Step(10 * time.Millisecond)

			snap := s.Snapshot()
			Expect(snap.Phase.Key).To(Equal("Machining"))
			Expect(snap.Fading).To(BeTrue())
			Expect(snap.Teach).To(Equal(2))
			Expect(snap.Opacity).To(BeNumerically("<", 1))

			s.Step(590 * time.Millisecond)
			snap = s.Snapshot()
			Expect(snap.Fading).To(BeFalse())
			Expect(snap.Teach).To(Equal(0))
			Expect(snap.Learn).To(Equal(3))
		})

		It("keeps the previous buckets when a refresh fails", func() {
			s.Step(time.Second)
			s.ApplyUpdate(survey.Update{Status: survey.StatusRefreshFailed})
			s.Step(time.Second)

			Expect(s.Status()).To(Equal(survey.StatusRefreshFailed))
			Expect(s.Buckets()).To(Equal(testBuckets()))
			Expect(s.Snapshot().Teach).To(Equal(2))
		})

		It("rebuilds the current phase on refresh without touching timing", func() {
			s.Step(time.Second)
			s.Step(500 * time.Millisecond)
			before := s.Snapshot()

			s.ApplyUpdate(survey.Update{
				Buckets: show.Buckets{"Fabrication": {Teach: 5}, "Machining": {}},
				Rows:    5,
				Status:  survey.StatusUpdated,
			})
			Expect(s.Snapshot().Elapsed).To(Equal(before.Elapsed))
			Expect(s.Snapshot().Fading).To(BeTrue())

			s.Step(600 * time.Millisecond)
			snap := s.Snapshot()
			Expect(snap.Index).To(Equal(before.Index))
			Expect(snap.Teach).To(Equal(5))
			Expect(snap.Learn).To(Equal(0))
		})
	})

	It("applies updates delivered on the channel at the next step", func() {
		s.Updates() <- survey.Update{Buckets: testBuckets(), Rows: 3, Status: "Loaded 3 responses"}
		Expect(s.Status()).To(Equal(survey.StatusFetching))

		s.Step(time.Millisecond)
		Expect(s.Status()).To(Equal("Loaded 3 responses"))
		Expect(s.Buckets()).To(HaveKey("Fabrication"))
	})

	It("morphs from the previous shape after a phase change", func() {
		Expect(s.Snapshot().MorphT).To(BeZero())
		s.Step(time.Second)
		Expect(s.Snapshot().MorphT).To(BeZero())

		s.Step(450 * time.Millisecond)
		mid := s.Snapshot().MorphT
		Expect(mid).To(BeNumerically(">", 0))
		Expect(mid).To(BeNumerically("<", 1))

		s.Step(time.Second)
		Expect(s.Snapshot().MorphT).To(BeNumerically("~", 1, 1e-9))
	})

	It("draws the cloud and then the bubbles on a cleared canvas", func() {
		s.ApplyUpdate(survey.Update{Buckets: testBuckets(), Rows: 3})
		s.Step(time.Second)

		c := &countingCanvas{}
		s.Draw(c)
		Expect(c.clears).To(Equal(1))
		Expect(c.circles).To(HaveLen(50 + 3))

		teach, learn := s.Colors()
		Expect(c.circles[50]).To(Equal(teach))
		Expect(c.circles[52]).To(Equal(learn))
	})

	It("draws the QR point budget on the QR phase", func() {
		for i := 0; i < 3; i++ {
			s.Step(2 * time.Second)
		}
		Expect(s.Snapshot().Phase.Key).To(Equal(show.KeyQR))

		c := &countingCanvas{}
		s.Draw(c)
		Expect(c.circles).To(HaveLen(80))
	})

	It("keeps bubbles inside resized regions", func() {
		s.ApplyUpdate(survey.Update{Buckets: testBuckets(), Rows: 3})
		s.Step(time.Second)

		s.Resize(640, 360)
		for i := 0; i < 200; i++ {
			s.Step(16 * time.Millisecond)
		}

		cfg := testConfig()
		teach, learn := cfg.Regions(640, 360)
		regions := map[show.Side]show.Rect{show.Teach: teach, show.Learn: learn}
		for _, b := range s.Bubbles() {
			r := regions[b.Side]
			Expect(b.X).To(BeNumerically(">=", 0))
			Expect(b.Y).To(BeNumerically(">=", 0))
			Expect(b.X + b.Size).To(BeNumerically("<=", r.W+1e-9))
			Expect(b.Y + b.Size).To(BeNumerically("<=", r.H+1e-9))
		}
		w, h := s.Size()
		Expect(w).To(Equal(640.0))
		Expect(h).To(Equal(360.0))
	})

	It("tracks kinetic energy of the bubble field", func() {
		s.ApplyUpdate(survey.Update{Buckets: testBuckets(), Rows: 3})
		s.Step(time.Second)
		Expect(s.Snapshot().Energy).To(BeNumerically(">", 0))
	})

	It("reports peak energy and overlap alongside the named metrics", func() {
		s.ApplyUpdate(survey.Update{Buckets: testBuckets(), Rows: 3})
		for i := 0; i < 20; i++ {
			s.Step(50 * time.Millisecond)
		}
		snap := s.Snapshot()
		Expect(snap.PeakEnergy).To(BeNumerically(">=", snap.Energy))
		Expect(snap.PeakEnergy).To(BeNumerically(">", 0))
		Expect(snap.Overlap).To(BeNumerically(">=", 0))
		Expect(snap.Overlap).To(BeNumerically("<=", 1))

		Expect(s.Metrics()).To(Equal(map[string]float64{
			"kinetic_energy": snap.Energy,
			"overlap":        snap.Overlap,
		}))
	})
})

var _ = Describe("Build", func() {
	It("generates one field per phase", func() {
		cfg := testConfig()
		cfg.Canvas = config.CanvasConfig{Width: 320, Height: 180}
		s, err := sim.Build(cfg, nil, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(s.Phases()).To(HaveLen(4))

		c := &countingCanvas{}
		s.Draw(c)
		Expect(c.circles).To(HaveLen(50))
	})
})
