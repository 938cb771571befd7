package instr

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// CarrierSize is the number of bytes one instruction occupies in an
// instruction buffer.
const CarrierSize = 8

// ErrBadCarrier is returned when a byte slice cannot hold an instruction.
var ErrBadCarrier = errors.New("invalid instruction carrier")

// Instruction is an encoded controller instruction. The payload is the low
// 32 bits; the high 32 bits are always zero.
type Instruction uint64

// Payload returns the 32-bit payload.
func (i Instruction) Payload() uint32 {
	return uint32(i)
}

// Tag returns the top four payload bits.
func (i Instruction) Tag() uint8 {
	return uint8(i.Payload() >> ArgWidth)
}

// Type returns the instruction class. Device commands are recognized from
// bit 31 alone, the way the controller does. Refresh-timer configuration
// words carry a register selector in the tag and have no class of their
// own; Type reports their raw tag.
func (i Instruction) Type() Type {
	if i.Payload()>>(PayloadWidth-1) == 1 {
		return TypeDeviceCommand
	}

	return Type(i.Tag())
}

// Arg returns the payload below the type tag.
func (i Instruction) Arg() uint32 {
	return i.Payload() & (1<<ArgWidth - 1)
}

// AppendBinary appends the little-endian carrier to b.
func (i Instruction) AppendBinary(b []byte) ([]byte, error) {
	return binary.LittleEndian.AppendUint64(b, uint64(i)), nil
}

// MarshalBinary returns the little-endian carrier.
func (i Instruction) MarshalBinary() ([]byte, error) {
	return i.AppendBinary(make([]byte, 0, CarrierSize))
}

// UnmarshalBinary reads a little-endian carrier. The high half of the
// carrier must be zero.
func (i *Instruction) UnmarshalBinary(data []byte) error {
	if len(data) != CarrierSize {
		return fmt.Errorf("%w: %d bytes, want %d",
			ErrBadCarrier, len(data), CarrierSize)
	}

	v := binary.LittleEndian.Uint64(data)
	if v>>PayloadWidth != 0 {
		return fmt.Errorf("%w: high half 0x%08x is not zero",
			ErrBadCarrier, v>>PayloadWidth)
	}

	*i = Instruction(v)

	return nil
}
