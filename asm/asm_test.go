package asm

import (
	"errors"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/softmc/instr"
)

func must(i instr.Instruction, err error) instr.Instruction {
	Expect(err).NotTo(HaveOccurred())
	return i
}

var _ = Describe("ParseLine", func() {
	DescribeTable("should call the matching encoder",
		func(line string, want instr.Instruction) {
			i, ok, err := ParseLine(line)

			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())
			Expect(i).To(Equal(want))
		},
		Entry("activate", "ACT 3 0x10", must(instr.Activate(3, 16))),
		Entry("precharge", "pre 2", must(instr.Precharge(2, instr.PrechargeSingle))),
		Entry("precharge all", "PREA", must(instr.Precharge(0, instr.PrechargeAll))),
		Entry("pattern write with defaults", "WR 1 2 0xAA",
			must(instr.Write(1, 2, 0xAA, instr.NoAutoPrecharge, instr.BurstFixed))),
		Entry("pattern write with flags", "wr 1 2 0b1010 bl4 ap",
			must(instr.Write(1, 2, 0xA, instr.WithAutoPrecharge, instr.BurstChop))),
		Entry("burst write", "WRB 7 1023 AP",
			must(instr.WriteBurst(7, 1023, instr.WithAutoPrecharge))),
		Entry("read", "RD 3 5",
			must(instr.Read(3, 5, instr.NoAutoPrecharge, instr.BurstFixed))),
		Entry("read with chop", "RD 3 5 BL4",
			must(instr.Read(3, 5, instr.NoAutoPrecharge, instr.BurstChop))),
		Entry("wait", "WAIT 1023", must(instr.Wait(1023))),
		Entry("bus direction", "BUSDIR write", must(instr.SetBusDirection(instr.BusWrite))),
		Entry("end", "END", instr.EndOfSequence()),
		Entry("zq", "ZQ", instr.ZQCalibration()),
		Entry("refresh", "REF", instr.Refresh()),
		Entry("refresh config", "REFCFG TRFC 208",
			must(instr.ConfigureRefresh(instr.RegisterTRFC, 208))),
		Entry("trailing comment", "  ACT 0 0 ; open row 0", must(instr.Activate(0, 0))),
	)

	It("should skip blank and comment lines", func() {
		for _, line := range []string{"", "   ", "# header", "; note"} {
			_, ok, err := ParseLine(line)

			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeFalse())
		}
	})

	DescribeTable("should reject malformed lines",
		func(line, msg string) {
			_, ok, err := ParseLine(line)

			Expect(ok).To(BeFalse())
			Expect(errors.Is(err, ErrSyntax)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring(msg))
		},
		Entry("unknown mnemonic", "NOP", "unknown mnemonic NOP"),
		Entry("missing argument", "ACT 1", "ACT takes 2 arguments, got 1"),
		Entry("too many arguments", "RD 1 2 AP BL4 X", "RD takes 2 to 4 arguments"),
		Entry("not a number", "WAIT ten", `cycles "ten" is not a number`),
		Entry("unknown flag", "RD 0 0 XP", "unknown flag XP"),
		Entry("duplicate flag", "RD 0 0 BL4 BL8", "duplicate flag BL8"),
		Entry("burst length on a burst write", "WRB 0 0 BL4", "unknown flag BL4"),
		Entry("unknown direction", "BUSDIR up", "unknown bus direction up"),
		Entry("unknown register", "REFCFG TRAS 1", "unknown refresh register TRAS"),
	)

	DescribeTable("should report numbers outside their field as range errors",
		func(line, field string, lo, hi uint64) {
			_, ok, err := ParseLine(line)

			Expect(ok).To(BeFalse())
			Expect(err).To(MatchError(ErrSyntax))
			Expect(err).To(MatchError(instr.ErrOutOfRange))

			var rangeErr *instr.RangeError
			Expect(errors.As(err, &rangeErr)).To(BeTrue())
			Expect(rangeErr.Field).To(Equal(field))
			Expect(rangeErr.Min).To(Equal(lo))
			Expect(rangeErr.Max).To(Equal(hi))
		},
		Entry("pattern wider than a byte", "WR 0 0 256", "pattern",
			uint64(0), uint64(0xFF)),
		Entry("wait of zero cycles", "WAIT 0", "cycles",
			uint64(1), uint64(1023)),
		Entry("wait wider than 32 bits", "WAIT 4294967296", "cycles",
			uint64(1), uint64(1023)),
		Entry("bank", "ACT 8 0", "bank", uint64(0), uint64(7)),
		Entry("row", "ACT 0 0x10000", "row", uint64(0), uint64(0xFFFF)),
		Entry("column", "RD 0 1024", "column", uint64(0), uint64(1023)),
		Entry("burst write column", "WRB 0 4096", "column",
			uint64(0), uint64(1023)),
		Entry("refresh value", "REFCFG TREFI 0x10000000", "value",
			uint64(0), uint64(1<<28-1)),
	)

	It("should report numbers wider than 64 bits as out of range", func() {
		_, _, err := ParseLine("WAIT 18446744073709551616")

		Expect(err).To(MatchError(instr.ErrOutOfRange))
		Expect(err.Error()).To(ContainSubstring("does not fit in 64 bits"))
	})

	It("should parse what the disassembler prints", func() {
		words := []instr.Instruction{
			must(instr.Activate(6, 0xBEEF)),
			must(instr.Precharge(2, instr.PrechargeSingle)),
			must(instr.Precharge(0, instr.PrechargeAll)),
			must(instr.Write(5, 1000, 0xC3, instr.WithAutoPrecharge, instr.BurstChop)),
			must(instr.WriteBurst(7, 1, instr.NoAutoPrecharge)),
			must(instr.Read(3, 5, instr.WithAutoPrecharge, instr.BurstFixed)),
			must(instr.Wait(77)),
			must(instr.SetBusDirection(instr.BusRead)),
			instr.EndOfSequence(),
			instr.ZQCalibration(),
			instr.Refresh(),
			must(instr.ConfigureRefresh(instr.RegisterTREFI, 6240)),
		}

		for _, w := range words {
			i, ok, err := ParseLine(w.String())

			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())
			Expect(i).To(Equal(w), w.String())
		}
	})
})

var _ = Describe("Assemble", func() {
	It("should encode lines in order", func() {
		src := `
# write then read back row 16 of bank 1
ACT 1 16
WAIT 10
BUSDIR WRITE
WR 1 0 0xFF
WAIT 10
BUSDIR READ
RD 1 0
PREA
END
`
		words, err := Assemble(strings.NewReader(src))

		Expect(err).NotTo(HaveOccurred())
		Expect(words).To(Equal([]instr.Instruction{
			must(instr.Activate(1, 16)),
			must(instr.Wait(10)),
			must(instr.SetBusDirection(instr.BusWrite)),
			must(instr.Write(1, 0, 0xFF, instr.NoAutoPrecharge, instr.BurstFixed)),
			must(instr.Wait(10)),
			must(instr.SetBusDirection(instr.BusRead)),
			must(instr.Read(1, 0, instr.NoAutoPrecharge, instr.BurstFixed)),
			must(instr.Precharge(0, instr.PrechargeAll)),
			instr.EndOfSequence(),
		}))
	})

	It("should not add an end marker", func() {
		words, err := Assemble(strings.NewReader("REF\n"))

		Expect(err).NotTo(HaveOccurred())
		Expect(words).To(Equal([]instr.Instruction{instr.Refresh()}))
	})

	It("should report the failing line number", func() {
		_, err := Assemble(strings.NewReader("REF\n\nACT 8 0\n"))

		var syntaxErr *SyntaxError
		Expect(errors.As(err, &syntaxErr)).To(BeTrue())
		Expect(syntaxErr.Line).To(Equal(3))
		Expect(err.Error()).To(HavePrefix("line 3:"))
		Expect(errors.Is(err, instr.ErrOutOfRange)).To(BeTrue())
	})
})
