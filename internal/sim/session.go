package sim

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"math/rand"
	"time"

	"github.com/san-kum/skillwall/internal/config"
	"github.com/san-kum/skillwall/internal/metrics"
	"github.com/san-kum/skillwall/internal/morph"
	"github.com/san-kum/skillwall/internal/physics"
	"github.com/san-kum/skillwall/internal/pointfield"
	"github.com/san-kum/skillwall/internal/show"
	"github.com/san-kum/skillwall/internal/survey"
)

const updateBuffer = 4

// Session is one running display. It is driven from a single goroutine;
// survey updates from other goroutines go through Updates.
type Session struct {
	cfg      *config.Config
	logger   *slog.Logger
	sched    *Scheduler
	renderer *morph.Renderer
	bubbles  *physics.Bubbles
	energy   *metrics.KineticEnergy
	overlap  *metrics.Overlap
	metrics  []metrics.Metric

	buckets show.Buckets
	status  string
	clock   time.Duration
	width   float64
	height  float64

	teachColor color.RGBA
	learnColor color.RGBA

	updates chan survey.Update
}

// Snapshot is a read-only view of the session for frontends and tests.
type Snapshot struct {
	Index   int
	Phase   show.Phase
	Elapsed time.Duration
	Clock   time.Duration
	MorphT  float64
	Teach   int
	Learn   int
	Fading  bool
	Opacity float64
	Status  string

	Energy     float64
	// PeakEnergy is the largest Energy seen so far.
	PeakEnergy float64
	// Overlap is the fraction of frames with an intersecting same-side pair.
	Overlap    float64
}

// Build generates the point fields for cfg and returns a ready session.
// qr may be nil.
func Build(cfg *config.Config, qr image.Image, logger *slog.Logger) (*Session, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	rng := rand.New(rand.NewSource(cfg.Seed))
	start := time.Now()
	cache, err := pointfield.Build(cfg.PhaseList(), cfg.Canvas.Width, cfg.Canvas.Height, FieldOptions(cfg), qr, rng, logger)
	if err != nil {
		return nil, fmt.Errorf("build point fields: %w", err)
	}
	logger.Info("point fields ready", "phases", cache.Len(), "took", time.Since(start))
	return New(cfg, cache, logger)
}

// New wires a session around prebuilt fields.
func New(cfg *config.Config, fields morph.Fields, logger *slog.Logger) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	phases := cfg.PhaseList()
	sched, err := NewScheduler(phases)
	if err != nil {
		return nil, err
	}

	w, h := float64(cfg.Canvas.Width), float64(cfg.Canvas.Height)
	teach, learn := cfg.Regions(w, h)
	// Offset the bubble stream so it does not replay the field sampling.
	rng := rand.New(rand.NewSource(cfg.Seed + 1))

	s := &Session{
		cfg:        cfg,
		logger:     logger,
		sched:      sched,
		renderer:   morph.NewRenderer(phases, fields, MorphConfig(cfg)),
		bubbles:    physics.New(BubbleParams(cfg), teach, learn, rng),
		energy:     metrics.NewKineticEnergy(),
		overlap:    metrics.NewOverlap(),
		status:     survey.StatusFetching,
		width:      w,
		height:     h,
		teachColor: config.MustColor(cfg.Bubbles.TeachColor),
		learnColor: config.MustColor(cfg.Bubbles.LearnColor),
		updates:    make(chan survey.Update, updateBuffer),
	}
	s.metrics = []metrics.Metric{s.energy, s.overlap}
	sched.AddObserver(ObserverFunc(s.onPhaseChange))
	return s, nil
}

// Updates is where survey loads are delivered. They are applied at the
// start of the next Step.
func (s *Session) Updates() chan<- survey.Update { return s.updates }

func (s *Session) onPhaseChange(c PhaseChange) {
	s.logger.Debug("phase change", "from", c.From, "to", c.To, "key", c.Phase.Key)
	s.bubbles.FadeOut(s.rebuild)
}

// rebuild lays out bubbles for whatever phase is current when the fade ends.
func (s *Session) rebuild() {
	s.bubbles.Render(s.sched.Phase().Key, s.buckets)
}

// Step advances the session by one frame of dt.
func (s *Session) Step(dt time.Duration) {
	s.drain()
	if dt < 0 {
		dt = 0
	}
	s.clock += dt
	s.sched.Advance(dt)
	s.bubbles.Step(dt)

	all := s.bubbles.All()
	for _, m := range s.metrics {
		m.Observe(all, s.clock)
	}
}

func (s *Session) drain() {
	for {
		select {
		case u := <-s.updates:
			s.ApplyUpdate(u)
		default:
			return
		}
	}
}

// ApplyUpdate installs a survey load. A failed refresh only changes the
// status; a successful one swaps the buckets and fades the current phase's
// bubbles into the new counts. Phase timing is untouched.
func (s *Session) ApplyUpdate(u survey.Update) {
	if u.Status != "" {
		s.status = u.Status
	}
	if u.Buckets == nil {
		return
	}
	s.buckets = u.Buckets
	s.bubbles.FadeOut(s.rebuild)
}

// Draw paints the particle cloud and then the bubbles.
func (s *Session) Draw(dst show.Canvas) {
	s.renderer.Draw(dst, s.sched.State(), s.clock)
	s.bubbles.Draw(dst, s.teachColor, s.learnColor)
}

// Resize moves the bubble regions to a new canvas size. Point fields keep
// the coordinates they were sampled at.
func (s *Session) Resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	s.width, s.height = float64(w), float64(h)
	teach, learn := s.cfg.Regions(s.width, s.height)
	s.bubbles.SetRegions(teach, learn)
	s.logger.Debug("resized", "width", w, "height", h)
}

func (s *Session) Snapshot() Snapshot {
	st := s.sched.State()
	return Snapshot{
		Index:      st.Current,
		Phase:      s.sched.Phase(),
		Elapsed:    st.Elapsed,
		Clock:      s.clock,
		MorphT:     s.renderer.Blend(st),
		Teach:      s.bubbles.Count(show.Teach),
		Learn:      s.bubbles.Count(show.Learn),
		Fading:     s.bubbles.Fading(),
		Opacity:    s.bubbles.Opacity(),
		Status:     s.status,
		Energy:     s.energy.Value(),
		PeakEnergy: s.energy.Peak(),
		Overlap:    s.overlap.Value(),
	}
}

// Metrics returns the latest value of every observed metric by name.
func (s *Session) Metrics() map[string]float64 {
	out := make(map[string]float64, len(s.metrics))
	for _, m := range s.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

func (s *Session) Status() string { return s.status }

func (s *Session) Buckets() show.Buckets { return s.buckets }

func (s *Session) Phases() []show.Phase { return s.sched.Phases() }

func (s *Session) Bubbles() []physics.Bubble { return s.bubbles.All() }

// Size is the logical canvas size the session draws in.
func (s *Session) Size() (w, h float64) { return s.width, s.height }

// Colors returns the teach and learn bubble colours.
func (s *Session) Colors() (teach, learn color.RGBA) { return s.teachColor, s.learnColor }
