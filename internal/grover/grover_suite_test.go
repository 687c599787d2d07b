package grover

import (
	"context"
	"math"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestGrover(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Grover Suite")
}

var _ = Describe("Simulator", func() {
	Context("with N=100 and the marked index at 20", func() {
		var res *Result

		BeforeEach(func() {
			s, err := New(100, 20)
			Expect(err).NotTo(HaveOccurred())
			res, err = s.Run(context.Background(), 2500)
			Expect(err).NotTo(HaveOccurred())
		})

		It("peaks near the optimal iteration count", func() {
			first, ok := FirstPeak(res.Amplitudes)
			Expect(ok).To(BeTrue())
			Expect(first.Index).To(Equal(0))
			Expect(first.Step).To(BeNumerically(">=", 5))
			Expect(first.Step).To(BeNumerically("<=", 20))
			Expect(math.Abs(first.Value)).To(BeNumerically(">", 0.9))
		})

		It("keeps oscillating for the whole run", func() {
			Expect(len(res.Peaks)).To(BeNumerically(">", 50))
			for _, p := range res.Peaks {
				Expect(p.Value).To(BeNumerically("<=", 1+1e-9))
			}
		})

		It("stays bounded by the unit norm", func() {
			for _, a := range res.Amplitudes {
				Expect(math.Abs(a)).To(BeNumerically("<=", 1+1e-9))
			}
		})
	})

	Context("with a single entry", func() {
		It("alternates sign and peaks on every other step after warm-up", func() {
			s, err := New(1, 0)
			Expect(err).NotTo(HaveOccurred())
			res, err := s.Run(context.Background(), 10)
			Expect(err).NotTo(HaveOccurred())
			for i, a := range res.Amplitudes {
				if i%2 == 0 {
					Expect(a).To(Equal(-1.0))
				} else {
					Expect(a).To(Equal(1.0))
				}
			}
			Expect(res.Peaks).To(Equal([]Peak{
				{Index: 0, Step: 3, Value: 1},
				{Index: 1, Step: 5, Value: 1},
				{Index: 2, Step: 7, Value: 1},
			}))
		})
	})
})
