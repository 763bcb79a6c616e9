package sim_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/skillwall/internal/show"
	"github.com/san-kum/skillwall/internal/sim"
)

var _ = Describe("Scheduler", func() {
	var (
		phases []show.Phase
		s      *sim.Scheduler
	)

	BeforeEach(func() {
		phases = []show.Phase{
			{Key: show.KeyIntro, Label: "Hello", Duration: time.Second},
			{Key: "fabrication", Label: "Fabrication", Duration: 2 * time.Second},
			{Key: show.KeyQR, Label: "QR", Duration: 3 * time.Second},
		}
		var err error
		s, err = sim.NewScheduler(phases)
		Expect(err).NotTo(HaveOccurred())
	})

	It("rejects an empty phase list", func() {
		_, err := sim.NewScheduler(nil)
		Expect(err).To(MatchError(show.ErrNoPhases))
	})

	It("starts at the first phase with nothing to morph from", func() {
		st := s.State()
		Expect(st.Current).To(Equal(0))
		Expect(st.Previous).To(Equal(0))
		Expect(st.Elapsed).To(BeZero())
		Expect(st.Morphing()).To(BeFalse())
	})

	It("accumulates time below the phase duration", func() {
		Expect(s.Advance(400 * time.Millisecond)).To(BeFalse())
		Expect(s.Advance(500 * time.Millisecond)).To(BeFalse())
		Expect(s.State().Elapsed).To(Equal(900 * time.Millisecond))
		Expect(s.State().Current).To(Equal(0))
	})

	It("advances exactly one phase per full duration and resets elapsed", func() {
		Expect(s.Advance(time.Second)).To(BeTrue())
		st := s.State()
		Expect(st.Current).To(Equal(1))
		Expect(st.Previous).To(Equal(0))
		Expect(st.Elapsed).To(BeZero())
	})

	It("never advances more than one phase per call", func() {
		Expect(s.Advance(time.Hour)).To(BeTrue())
		Expect(s.State().Current).To(Equal(1))
		Expect(s.State().Elapsed).To(BeZero())
	})

	It("wraps around to the first phase", func() {
		for _, p := range phases {
			Expect(s.Advance(p.Duration)).To(BeTrue())
		}
		st := s.State()
		Expect(st.Current).To(Equal(0))
		Expect(st.Previous).To(Equal(2))
	})

	It("ignores negative time", func() {
		s.Advance(-time.Second)
		Expect(s.State().Elapsed).To(BeZero())
	})

	It("notifies observers synchronously on every change", func() {
		var changes []sim.PhaseChange
		s.AddObserver(sim.ObserverFunc(func(c sim.PhaseChange) {
			changes = append(changes, c)
			Expect(s.State().Current).To(Equal(c.To))
		}))

		s.Advance(500 * time.Millisecond)
		Expect(changes).To(BeEmpty())

		s.Advance(500 * time.Millisecond)
		Expect(changes).To(HaveLen(1))
		Expect(changes[0].From).To(Equal(0))
		Expect(changes[0].To).To(Equal(1))
		Expect(changes[0].Phase.Key).To(Equal("fabrication"))
	})
})
