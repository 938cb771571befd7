package instr

import (
	"fmt"
	"strings"

	"github.com/sarchlab/softmc/internal/bitfield"
)

// Op identifies one of the instruction kinds the encoders produce.
type Op uint8

// Instruction kinds.
const (
	OpUnknown Op = iota
	OpEndOfSequence
	OpSetBusDirection
	OpWait
	OpActivate
	OpPrecharge
	OpWrite
	OpWriteBurst
	OpRead
	OpZQCalibration
	OpRefresh
	OpConfigureRefresh
)

// String returns the mnemonic of the op.
func (o Op) String() string {
	switch o {
	case OpEndOfSequence:
		return "END"
	case OpSetBusDirection:
		return "BUSDIR"
	case OpWait:
		return "WAIT"
	case OpActivate:
		return "ACT"
	case OpPrecharge:
		return "PRE"
	case OpWrite:
		return "WR"
	case OpWriteBurst:
		return "WRB"
	case OpRead:
		return "RD"
	case OpZQCalibration:
		return "ZQ"
	case OpRefresh:
		return "REF"
	case OpConfigureRefresh:
		return "REFCFG"
	default:
		return "UNKNOWN"
	}
}

// Decoded holds the parameters recovered from an instruction. Only the
// fields used by Op are meaningful.
type Decoded struct {
	Op            Op
	Bank          uint
	Row           uint
	Column        uint
	Pattern       uint8
	Scope         PrechargeScope
	AutoPrecharge AutoPrecharge
	BurstLength   BurstLength
	Cycles        uint
	Direction     BusDirection
	Register      Register
	Value         uint
}

// Decode recovers the parameters of an instruction. A word that the
// encoders cannot have produced, including one with stray bits in unused
// fields, returns ErrUnknownInstruction.
func Decode(i Instruction) (Decoded, error) {
	if uint64(i)>>PayloadWidth != 0 {
		return Decoded{}, unknown(i)
	}

	d, ok := decodeFields(i)
	if !ok {
		return Decoded{}, unknown(i)
	}

	enc, err := d.Encode()
	if err != nil || enc != i {
		return Decoded{}, unknown(i)
	}

	return d, nil
}

func unknown(i Instruction) error {
	return fmt.Errorf("%w: 0x%08x", ErrUnknownInstruction, uint64(i))
}

func decodeFields(i Instruction) (Decoded, bool) {
	if i.Type() == TypeDeviceCommand {
		return decodeDeviceCommand(i.Payload())
	}

	arg := uint(i.Arg())

	switch i.Tag() {
	case uint8(TypeEndOfSequence):
		return Decoded{Op: OpEndOfSequence}, true
	case uint8(TypeSetBusDirection):
		return Decoded{Op: OpSetBusDirection, Direction: BusDirection(arg)}, true
	case uint8(TypeWait):
		return Decoded{Op: OpWait, Cycles: arg}, true
	case uint8(RegisterTREFI), uint8(RegisterTRFC):
		return Decoded{
			Op:       OpConfigureRefresh,
			Register: Register(i.Tag()),
			Value:    arg,
		}, true
	default:
		return Decoded{}, false
	}
}

func decodeDeviceCommand(payload uint32) (Decoded, bool) {
	sig := Signal(payload >> (BankWidth + RowWidth) & (1<<SignalWidth - 1))
	u := bitfield.NewUnpacker(uint64(payload))

	switch sig {
	case SignalActivate:
		row := u.Pop(RowWidth)
		bank := u.Pop(BankWidth)

		return Decoded{Op: OpActivate, Bank: uint(bank), Row: uint(row)}, true
	case SignalPrecharge:
		if payload&(1<<ColumnWidth) != 0 {
			return Decoded{Op: OpPrecharge, Scope: PrechargeAll}, true
		}

		u.Pop(RowWidth)
		bank := u.Pop(BankWidth)

		return Decoded{Op: OpPrecharge, Bank: uint(bank), Scope: PrechargeSingle}, true
	case SignalWrite:
		if payload&(1<<(ColumnWidth+burstAPFieldWidth)) != 0 {
			return decodeWriteBurst(u), true
		}

		return decodeWrite(u), true
	case SignalRead:
		col := u.Pop(ColumnWidth)
		ap := u.Pop(apFieldWidth)
		bl := u.Pop(readBurstFieldWidth)
		bank := u.Pop(BankWidth)

		return Decoded{
			Op:            OpRead,
			Bank:          uint(bank),
			Column:        uint(col),
			AutoPrecharge: AutoPrecharge(ap),
			BurstLength:   BurstLength(bl),
		}, true
	case SignalZQ:
		return Decoded{Op: OpZQCalibration}, true
	case SignalRefresh:
		return Decoded{Op: OpRefresh}, true
	default:
		return Decoded{}, false
	}
}

func decodeWrite(u bitfield.Unpacker) Decoded {
	col := u.Pop(ColumnWidth)
	ap := u.Pop(apFieldWidth)
	bl := u.Pop(burstFieldWidth)
	low := u.Pop(writePatternLowWidth)
	bank := u.Pop(BankWidth)
	u.Pop(SignalWidth)
	high := u.Pop(writePatternHighWidth)

	return Decoded{
		Op:            OpWrite,
		Bank:          uint(bank),
		Column:        uint(col),
		Pattern:       uint8(high<<writePatternLowWidth | low),
		AutoPrecharge: AutoPrecharge(ap),
		BurstLength:   BurstLength(bl),
	}
}

func decodeWriteBurst(u bitfield.Unpacker) Decoded {
	col := u.Pop(ColumnWidth)
	ap := u.Pop(burstAPFieldWidth)
	u.Pop(longWriteFieldWidth)
	u.Pop(burstWriteFieldWidth)
	bank := u.Pop(BankWidth)

	return Decoded{
		Op:            OpWriteBurst,
		Bank:          uint(bank),
		Column:        uint(col),
		AutoPrecharge: AutoPrecharge(ap),
	}
}

// Encode encodes the decoded parameters again.
func (d Decoded) Encode() (Instruction, error) {
	switch d.Op {
	case OpEndOfSequence:
		return EndOfSequence(), nil
	case OpSetBusDirection:
		return SetBusDirection(d.Direction)
	case OpWait:
		return Wait(d.Cycles)
	case OpActivate:
		return Activate(d.Bank, d.Row)
	case OpPrecharge:
		return Precharge(d.Bank, d.Scope)
	case OpWrite:
		return Write(d.Bank, d.Column, d.Pattern, d.AutoPrecharge, d.BurstLength)
	case OpWriteBurst:
		return WriteBurst(d.Bank, d.Column, d.AutoPrecharge)
	case OpRead:
		return Read(d.Bank, d.Column, d.AutoPrecharge, d.BurstLength)
	case OpZQCalibration:
		return ZQCalibration(), nil
	case OpRefresh:
		return Refresh(), nil
	case OpConfigureRefresh:
		return ConfigureRefresh(d.Register, d.Value)
	default:
		return 0, ErrUnknownInstruction
	}
}

// String renders the decoded instruction in the mnemonic syntax accepted by
// the asm package.
func (d Decoded) String() string {
	var b strings.Builder

	switch d.Op {
	case OpSetBusDirection:
		fmt.Fprintf(&b, "BUSDIR %s", d.Direction)
	case OpWait:
		fmt.Fprintf(&b, "WAIT %d", d.Cycles)
	case OpActivate:
		fmt.Fprintf(&b, "ACT %d %d", d.Bank, d.Row)
	case OpPrecharge:
		if d.Scope == PrechargeAll {
			return "PREA"
		}

		fmt.Fprintf(&b, "PRE %d", d.Bank)
	case OpWrite:
		fmt.Fprintf(&b, "WR %d %d 0x%02x", d.Bank, d.Column, d.Pattern)
		writeColumnFlags(&b, d.AutoPrecharge, d.BurstLength)
	case OpWriteBurst:
		fmt.Fprintf(&b, "WRB %d %d", d.Bank, d.Column)

		if d.AutoPrecharge == WithAutoPrecharge {
			b.WriteString(" AP")
		}
	case OpRead:
		fmt.Fprintf(&b, "RD %d %d", d.Bank, d.Column)
		writeColumnFlags(&b, d.AutoPrecharge, d.BurstLength)
	case OpConfigureRefresh:
		fmt.Fprintf(&b, "REFCFG %s %d", d.Register, d.Value)
	default:
		return d.Op.String()
	}

	return b.String()
}

func writeColumnFlags(b *strings.Builder, ap AutoPrecharge, bl BurstLength) {
	if ap == WithAutoPrecharge {
		b.WriteString(" AP")
	}

	b.WriteString(" ")
	b.WriteString(bl.String())
}

// String disassembles the instruction.
func (i Instruction) String() string {
	d, err := Decode(i)
	if err != nil {
		return fmt.Sprintf("UNKNOWN(0x%08x)", uint64(i))
	}

	return d.String()
}
