package lifecycle_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/harmonia/internal/lifecycle"
)

func kinds(effects []lifecycle.Effect) []lifecycle.EffectKind {
	out := make([]lifecycle.EffectKind, len(effects))
	for i, e := range effects {
		out[i] = e.Kind
	}
	return out
}

var _ = Describe("Machine", func() {
	var (
		m      *lifecycle.Machine
		timing *lifecycle.Timing
	)

	BeforeEach(func() {
		m = lifecycle.New()
		timing = &lifecycle.Timing{EndTime: 10}
	})

	Context("while the configuration is loading", func() {
		It("stays in Building and emits nothing", func() {
			for _, t := range []float32{0, 1, 50} {
				Expect(m.Step(t, nil)).To(BeEmpty())
			}
			Expect(m.State()).To(Equal(lifecycle.Building))
		})
	})

	Context("once the configuration is available", func() {
		It("spawns the scene exactly once", func() {
			Expect(kinds(m.Step(0.5, timing))).To(Equal([]lifecycle.EffectKind{lifecycle.SpawnScene}))
			Expect(m.State()).To(Equal(lifecycle.Running))

			Expect(m.Step(0.6, timing)).To(BeEmpty())
			Expect(m.Step(1.0, timing)).To(BeEmpty())
		})
	})

	Context("running a show that ends at t=10", func() {
		BeforeEach(func() {
			m.Step(0, timing)
		})

		It("fades at the first tick past 5s and exits at the first tick past 10s", func() {
			Expect(m.Step(4.9, timing)).To(BeEmpty())
			Expect(m.State()).To(Equal(lifecycle.Running))

			Expect(m.Step(5.0, timing)).To(BeEmpty())

			fade := m.Step(5.1, timing)
			Expect(kinds(fade)).To(Equal([]lifecycle.EffectKind{lifecycle.FadeOut}))
			Expect(fade[0].Fade).To(Equal(lifecycle.FadeLead))
			Expect(m.State()).To(Equal(lifecycle.Quitting))

			Expect(m.Step(7, timing)).To(BeEmpty())
			Expect(m.Step(10, timing)).To(BeEmpty())

			Expect(kinds(m.Step(10.1, timing))).To(Equal([]lifecycle.EffectKind{lifecycle.Exit}))
			Expect(m.State()).To(Equal(lifecycle.Terminated))

			Expect(m.Step(10.2, timing)).To(BeEmpty())
			Expect(m.State()).To(Equal(lifecycle.Terminated))
		})

		It("issues fade before exit when both thresholds pass in one tick", func() {
			Expect(kinds(m.Step(12, timing))).To(Equal([]lifecycle.EffectKind{lifecycle.FadeOut, lifecycle.Exit}))
			Expect(m.State()).To(Equal(lifecycle.Terminated))
		})
	})

	Context("with an end time shorter than the fade lead", func() {
		It("fades on the first running tick and never exits before fading", func() {
			short := &lifecycle.Timing{EndTime: 3}
			Expect(kinds(m.Step(0, short))).To(Equal([]lifecycle.EffectKind{lifecycle.SpawnScene, lifecycle.FadeOut}))
			Expect(m.State()).To(Equal(lifecycle.Quitting))

			Expect(m.Step(0.1, short)).To(BeEmpty())
			Expect(kinds(m.Step(3.1, short))).To(Equal([]lifecycle.EffectKind{lifecycle.Exit}))
		})
	})

	Context("when the configuration arrives late", func() {
		It("fades on the spawn tick once past the fade start", func() {
			Expect(m.Step(6.0, nil)).To(BeEmpty())

			effects := m.Step(6.1, timing)
			Expect(kinds(effects)).To(Equal([]lifecycle.EffectKind{lifecycle.SpawnScene, lifecycle.FadeOut}))
			Expect(effects[1].Fade).To(Equal(lifecycle.FadeLead))
			Expect(m.State()).To(Equal(lifecycle.Quitting))

			Expect(m.Step(6.2, timing)).To(BeEmpty())
		})

		It("spawns, fades and exits in one tick once past the end", func() {
			Expect(kinds(m.Step(11, timing))).To(Equal([]lifecycle.EffectKind{
				lifecycle.SpawnScene, lifecycle.FadeOut, lifecycle.Exit,
			}))
			Expect(m.State()).To(Equal(lifecycle.Terminated))
			Expect(m.Step(12, timing)).To(BeEmpty())
		})
	})

	Context("after a configuration error", func() {
		It("halts in Building", func() {
			boom := errors.New("bad settings")
			m.Halt(boom)
			Expect(m.Err()).To(MatchError(boom))
			Expect(m.Step(1, timing)).To(BeEmpty())
			Expect(m.State()).To(Equal(lifecycle.Building))
		})

		It("ignores Halt once running", func() {
			m.Step(0, timing)
			m.Halt(errors.New("late"))
			Expect(m.Err()).NotTo(HaveOccurred())
		})
	})
})

var _ = DescribeTable("State.Animating",
	func(s lifecycle.State, want bool) {
		Expect(s.Animating()).To(Equal(want))
	},
	Entry("building", lifecycle.Building, false),
	Entry("running", lifecycle.Running, true),
	Entry("quitting", lifecycle.Quitting, true),
	Entry("terminated", lifecycle.Terminated, false),
)
