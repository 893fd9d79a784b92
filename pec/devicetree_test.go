package pec

import (
	"log"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/sarchlab/pnvpec/devicetree"
	"github.com/sarchlab/pnvpec/xscom"
)

func propNames(n *devicetree.Node) []string {
	names := make([]string, 0, len(n.Properties))
	for _, p := range n.Properties {
		names = append(names, p.Name)
	}

	return names
}

func childNames(n *devicetree.Node) []string {
	names := make([]string, 0, len(n.Children))
	for _, c := range n.Children {
		names = append(names, c.Name)
	}

	return names
}

var _ = Describe("Device tree", func() {
	var (
		mockCtrl *gomock.Controller
		chip     *MockChip
		bus      *xscom.Bus
		builder  Builder
		root     *devicetree.Node
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		chip = NewMockChip(mockCtrl)
		chip.EXPECT().NumPECs().Return(3).AnyTimes()
		bus = xscom.NewBus("Chip[0].XSCOM")
		root = devicetree.NewNode("")

		builder = MakeBuilder().
			WithChip(chip).
			WithBus(bus).
			WithDefaultDevices(false).
			WithLogger(log.New(GinkgoWriter, "", 0))
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	realize := func(b Builder, name string) *Controller {
		c := b.Build(name)
		Expect(c.Realize()).To(Succeed())

		return c
	}

	It("should describe the PEC and its stacks", func() {
		c := realize(builder.WithIndex(1), "Chip[0].PEC[1]")

		node, err := c.AppendDeviceTree(root)

		Expect(err).NotTo(HaveOccurred())
		Expect(root.Children).To(ConsistOf(node))
		Expect(node.Name).To(Equal("pbcq@4011000"))
		Expect(propNames(node)).To(Equal([]string{
			"reg", "ibm,pec-index", "#address-cells", "#size-cells",
			"compatible",
		}))

		reg, _ := node.Prop("reg")
		Expect(reg.Cells()).To(Equal([]uint32{
			0x4011000, 0x100, 0xe010800, 0x200,
		}))

		index, _ := node.Prop("ibm,pec-index")
		Expect(index.Cells()).To(Equal([]uint32{1}))

		compat, _ := node.Prop("compatible")
		Expect(compat.Value).To(Equal([]byte("ibm,power9-pbcq\x00")))

		Expect(childNames(node)).To(Equal([]string{"stack@0", "stack@1"}))
		for i, stk := range node.Children {
			Expect(propNames(stk)).To(Equal([]string{
				"compatible", "reg", "ibm,phb-index",
			}))

			compat, _ := stk.Prop("compatible")
			Expect(compat.Value).
				To(Equal([]byte("ibm,power9-phb-stack\x00")))

			reg, _ := stk.Prop("reg")
			Expect(reg.Cells()).To(Equal([]uint32{uint32(i)}))

			phb, _ := stk.Prop("ibm,phb-index")
			Expect(phb.Cells()).To(Equal([]uint32{uint32(1 + i)}))
		}
	})

	It("should describe the windows that are mapped", func() {
		c := realize(builder.WithIndex(2), "Chip[0].PEC[2]")

		node, err := c.AppendDeviceTree(root)
		Expect(err).NotTo(HaveOccurred())

		reg, _ := node.Prop("reg")
		cells := reg.Cells()

		nest, ok := bus.FindRegion(cells[0])
		Expect(ok).To(BeTrue())
		Expect(nest.Base).To(Equal(cells[0]))
		Expect(nest.Size).To(Equal(cells[1]))

		pci, ok := bus.FindRegion(cells[2])
		Expect(ok).To(BeTrue())
		Expect(pci.Base).To(Equal(cells[2]))
		Expect(pci.Size).To(Equal(cells[3]))
	})

	It("should follow the profile for sizes and strides", func() {
		p := Phb4Profile
		p.NestSize = 0x400
		p.NestBase = StridedBase(0x4010c00, 0x400)
		c := realize(builder.WithProfile(p).WithIndex(2), "Chip[0].PEC[2]")

		node, err := c.AppendDeviceTree(root)

		Expect(err).NotTo(HaveOccurred())
		Expect(node.Name).To(Equal("pbcq@4011400"))

		reg, _ := node.Prop("reg")
		Expect(reg.Cells()[:2]).To(Equal([]uint32{0x4011400, 0x400}))
		Expect(node.Children).To(HaveLen(3))
	})

	It("should describe POWER10 PECs", func() {
		c := realize(
			builder.WithProfile(Phb5Profile).WithChipID(1).WithIndex(1),
			"Chip[1].PEC[1]")

		node, err := c.AppendDeviceTree(root)

		Expect(err).NotTo(HaveOccurred())
		Expect(node.Name).To(Equal("pbcq@2011800"))

		compat, _ := node.Prop("compatible")
		Expect(compat.Value).To(Equal([]byte("ibm,power10-pbcq\x00")))

		Expect(childNames(node)).
			To(Equal([]string{"stack@0", "stack@1", "stack@2"}))

		phb, _ := node.Children[2].Prop("ibm,phb-index")
		Expect(phb.Cells()).To(Equal([]uint32{5}))
	})

	It("should refuse to describe the same PEC twice", func() {
		c := realize(builder.WithIndex(0), "Chip[0].PEC[0]")

		_, err := c.AppendDeviceTree(root)
		Expect(err).NotTo(HaveOccurred())

		_, err = c.AppendDeviceTree(root)
		Expect(err).To(MatchError(devicetree.ErrNodeExists))
	})
})
