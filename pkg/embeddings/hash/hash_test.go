package hash_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/researchpilot/pkg/embeddings/hash"
)

func dot(a, b []float32) float64 {
	var s float64
	for i := range a {
		s += float64(a[i]) * float64(b[i])
	}
	return s
}

var _ = Describe("Embedder", func() {
	var (
		e   *hash.Embedder
		ctx context.Context
	)

	BeforeEach(func() {
		var err error
		e, err = hash.NewEmbedder(hash.Config{Dimensions: 64})
		Expect(err).NotTo(HaveOccurred())
		ctx = context.Background()
	})

	It("defaults the dimensions", func() {
		d, err := hash.NewEmbedder(hash.Config{})
		Expect(err).NotTo(HaveOccurred())
		Expect(d.Dimensions()).To(Equal(uint(hash.DefaultDimensions)))
	})

	It("rejects oversized vectors", func() {
		_, err := hash.NewEmbedder(hash.Config{Dimensions: 1 << 20})
		Expect(err).To(HaveOccurred())
	})

	It("is deterministic", func() {
		a, err := e.Embed(ctx, "Electric vehicle battery chemistry")
		Expect(err).NotTo(HaveOccurred())
		b, err := e.Embed(ctx, "Electric vehicle battery chemistry")
		Expect(err).NotTo(HaveOccurred())
		Expect(a).To(Equal(b))
		Expect(a).To(HaveLen(64))
	})

	It("produces unit vectors", func() {
		v, err := e.Embed(ctx, "solid state batteries")
		Expect(err).NotTo(HaveOccurred())
		Expect(math.Sqrt(dot(v, v))).To(BeNumerically("~", 1.0, 1e-5))
	})

	It("ignores case and punctuation", func() {
		a, _ := e.Embed(ctx, "Quantum Computing!")
		b, _ := e.Embed(ctx, "quantum, computing")
		Expect(a).To(Equal(b))
	})

	It("scores overlapping text above unrelated text", func() {
		q, _ := e.Embed(ctx, "battery recycling")
		near, _ := e.Embed(ctx, "advances in battery recycling plants")
		far, _ := e.Embed(ctx, "medieval poetry anthology")
		Expect(dot(q, near)).To(BeNumerically(">", dot(q, far)))
	})

	It("returns the zero vector for empty text", func() {
		v, err := e.Embed(ctx, "   ")
		Expect(err).NotTo(HaveOccurred())
		Expect(dot(v, v)).To(BeZero())
	})
})
