package devs

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Name", func() {
	It("should parse name", func() {
		name := ParseName("gpu[0].core[0]")
		Expect(name.Tokens[0].ElemName).To(Equal("gpu"))
		Expect(name.Tokens[0].Index).To(Equal([]int{0}))
		Expect(name.Tokens[1].ElemName).To(Equal("core"))
		Expect(name.Tokens[1].Index).To(Equal([]int{0}))
	})

	It("should parse multi-dimensional index", func() {
		name := ParseName("gpu[0][1].core[0][1]")
		Expect(name.Tokens[0].ElemName).To(Equal("gpu"))
		Expect(name.Tokens[0].Index).To(Equal([]int{0, 1}))
		Expect(name.Tokens[1].ElemName).To(Equal("core"))
		Expect(name.Tokens[1].Index).To(Equal([]int{0, 1}))
	})

	It("should panic if the name is empty", func() {
		Expect(func() { NameMustBeValid("") }).To(Panic())
	})

	It("should accept underscores and lowercase names", func() {
		Expect(func() { NameMustBeValid("traffic_light") }).NotTo(Panic())
	})

	It("should panic if name includes a quote", func() {
		Expect(func() { NameMustBeValid(`gpu"0`) }).To(Panic())
	})

	It("should have paired square brackets", func() {
		Expect(func() { NameMustBeValid("gpu[0") }).To(Panic())
	})

	It("should have paired square brackets", func() {
		Expect(func() { NameMustBeValid("gpu0]") }).To(Panic())
	})

	It("should panic if an element name is empty", func() {
		Expect(func() { NameMustBeValid("gpu..0") }).To(Panic())
	})

	It("should build name", func() {
		Expect(BuildName("", "gpu")).To(Equal("gpu"))
		Expect(BuildName("gpu", "core")).To(Equal("gpu.core"))
	})

	It("should reject an invalid model name at construction", func() {
		Expect(func() { NewPortOwnerBase(`gpu"0`) }).To(Panic())
	})

	It("should accept a valid model name at construction", func() {
		Expect(NewPortOwnerBase("traffic_light").name).To(Equal("traffic_light"))
	})
})
