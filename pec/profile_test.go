package pec

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Profile", func() {
	It("should accept the built-in profiles", func() {
		Expect(Phb4Profile.Validate()).To(Succeed())
		Expect(Phb5Profile.Validate()).To(Succeed())
	})

	It("should lay out POWER9 windows", func() {
		Expect(Phb4Profile.NestBase(0)).To(Equal(uint32(0x4010c00)))
		Expect(Phb4Profile.NestBase(2)).To(Equal(uint32(0x4011400)))
		Expect(Phb4Profile.PCIBase(0)).To(Equal(uint32(0xd010800)))
		Expect(Phb4Profile.PCIBase(2)).To(Equal(uint32(0xf010800)))
	})

	It("should lay out POWER10 nest windows downwards", func() {
		Expect(Phb5Profile.NestBase(0)).To(Equal(uint32(0x3011800)))
		Expect(Phb5Profile.NestBase(1)).To(Equal(uint32(0x2011800)))
		Expect(Phb5Profile.PCIBase(1)).To(Equal(uint32(0x9010800)))
	})

	It("should end compatible strings with a terminator", func() {
		Expect(Phb4Profile.Compat).To(Equal([]byte("ibm,power9-pbcq\x00")))
		Expect(Phb5Profile.StackCompat).
			To(Equal([]byte("ibm,power10-phb-stack\x00")))
	})

	It("should look up stack counts", func() {
		n, err := Phb4Profile.StackCount(1)

		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(2))
	})

	It("should fail to look up stack counts past the table", func() {
		_, err := Phb4Profile.StackCount(3)

		Expect(err).To(HaveOccurred())
	})

	It("should reject more stacks than slots", func() {
		p := Phb4Profile
		p.NumStacks = []uint32{1, 4}

		Expect(p.Validate()).To(MatchError(ContainSubstring("max is 3")))
	})

	It("should reject writable registers outside of the window", func() {
		p := Phb4Profile
		p.PCISize = 1

		Expect(p.Validate()).To(HaveOccurred())
	})

	It("should reject missing address functions", func() {
		p := Phb4Profile
		p.NestBase = nil

		Expect(p.Validate()).To(HaveOccurred())
	})
})
