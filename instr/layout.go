// Package instr encodes SoftMC memory-controller instructions.
//
// Each function in this package packs one instruction kind into the 32-bit
// payload the controller's instruction decoder expects. Fields are packed
// MSB-first: the type tag is the most significant field and every later
// field is shifted in below it. The field widths below are fixed by the
// controller RTL and are shared by every encoder.
package instr

// Field widths of the instruction payload, in bits.
const (
	PayloadWidth = 32
	TypeWidth    = 4
	BankWidth    = 3
	RowWidth     = 16
	ColumnWidth  = 10
	SignalWidth  = 6

	// ArgWidth is the payload below the type tag.
	ArgWidth = PayloadWidth - TypeWidth

	// CommandWidth is the command-signal field of a device command. The
	// signal code occupies its low SignalWidth bits.
	CommandWidth = PayloadWidth - TypeWidth - BankWidth - RowWidth
)

// Column-command control bits. Read and write commands split the row
// region into these fields below the bank id.
const (
	writePatternLowWidth = 2
	burstFieldWidth      = 2
	apFieldWidth         = 2

	// The pattern write shifts the tag by only writeTagShift bits before
	// pushing the writePatternHighWidth high pattern bits, so pattern bits
	// 7..5 share payload bits 28..30 with the tag. The controller decodes
	// device commands from bit 31.
	writeTagShift = PayloadWidth - TypeWidth - SignalWidth -
		BankWidth - RowWidth

	writePatternHighWidth = 8 - writePatternLowWidth

	readBurstFieldWidth  = 4
	burstWriteFieldWidth = 4
	longWriteFieldWidth  = 1
	burstAPFieldWidth    = 1

	prechargeAllFieldWidth = BankWidth + RowWidth - ColumnWidth
)

// Bounds derived from the field widths.
const (
	MaxBank         = 1<<BankWidth - 1
	MaxRow          = 1<<RowWidth - 1
	MaxColumn       = 1<<ColumnWidth - 1
	MinWaitCycles   = 1
	MaxWaitCycles   = 1023
	MaxRefreshValue = 1<<ArgWidth - 1
)

// Geometry of the DDR3 module the SoftMC prototype drives. The encoder
// bounds are the field widths above; these are for callers that walk the
// device.
const (
	NumChips     = 8
	NumBanks     = 8
	NumRows      = 32768
	NumCols      = 1024
	SubarraySize = 512
	NumSubarrays = NumRows / SubarraySize
)

// WordsPerInstruction is the number of 32-bit transfer words used to carry
// one instruction. The payload is 32 bits wide, but the PCIe endpoint moves
// 64-bit words faster, so each instruction occupies two.
const WordsPerInstruction = 2
