package phb

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/pnvpec/devicetree"
	"github.com/sarchlab/pnvpec/pec"
)

var _ = Describe("Bridge", func() {
	var factory *Factory

	BeforeEach(func() {
		factory = NewFactory(pec.Phb4Profile.NumBridges())
	})

	newBridge := func(index uint32, version uint64) *Bridge {
		return factory.NewBridge(pec.BridgeConfig{
			Name:    "Chip[0].PEC[1].Stack[0].PHB",
			ChipID:  0,
			Index:   index,
			Version: version,
			Stack:   pec.StackRef{ChipID: 0, PECIndex: 1, StackNo: 0},
		}).(*Bridge)
	}

	It("should realize a valid bridge", func() {
		b := newBridge(1, pec.Phb4Profile.Version)

		Expect(b.Realize()).To(Succeed())
		Expect(b.Realized()).To(BeTrue())
		Expect(b.Spec.Major()).To(Equal(uint8(VersionPHB4)))
		Expect(b.Stack().PECIndex).To(Equal(uint32(1)))
		Expect(factory.Bridges()).To(ConsistOf(b))
	})

	It("should accept POWER10 versions", func() {
		b := newBridge(5, pec.Phb5Profile.Version)

		Expect(b.Realize()).To(Succeed())
	})

	It("should reject indexes beyond the chip", func() {
		b := newBridge(6, pec.Phb4Profile.Version)

		err := b.Realize()

		Expect(err).To(MatchError(ErrInvalidIndex))
		Expect(b.Realized()).To(BeFalse())
		Expect(factory.Bridges()).To(BeEmpty())
	})

	It("should reject unknown versions", func() {
		b := newBridge(0, 0xa300000001)

		Expect(b.Realize()).To(MatchError(ErrUnknownVersion))
	})

	It("should not realize twice", func() {
		b := newBridge(0, pec.Phb4Profile.Version)
		Expect(b.Realize()).To(Succeed())

		Expect(b.Realize()).NotTo(Succeed())
	})

	It("should describe itself", func() {
		b := newBridge(2, pec.Phb4Profile.Version)
		Expect(b.Realize()).To(Succeed())
		root := devicetree.NewNode("")

		node, err := b.AppendDeviceTree(root)

		Expect(err).NotTo(HaveOccurred())
		Expect(node.Name).To(Equal("pciex@0,2"))

		index, _ := node.Prop("ibm,phb-index")
		Expect(index.Cells()).To(Equal([]uint32{2}))

		version, _ := node.Prop("ibm,phb-version")
		Expect(version.Cells()).To(Equal([]uint32{0xa4, 0x2}))

		stack, _ := node.Prop("ibm,pec-stack")
		Expect(stack.Cells()).To(Equal([]uint32{1, 0}))
	})
})
