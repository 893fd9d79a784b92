package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("IDGenerator", func() {
	It("should generate increasing sequential IDs", func() {
		g := &sequentialIDGenerator{}

		Expect(g.Generate()).To(Equal("1"))
		Expect(g.Generate()).To(Equal("2"))
	})

	It("should generate unique parallel IDs", func() {
		g := parallelIDGenerator{}

		Expect(g.Generate()).NotTo(Equal(g.Generate()))
	})

	It("should not allow switching generators after use", func() {
		GetIDGenerator()

		Expect(func() { UseParallelIDGenerator() }).To(Panic())
	})
})
