package instr

import "fmt"

// Type is the instruction class stored in the top four payload bits.
type Type uint8

// Instruction classes understood by the controller. Do not renumber without
// changing the RTL.
const (
	TypeEndOfSequence   Type = 0
	TypeSetBusDirection Type = 1
	TypeWait            Type = 4
	TypeDeviceCommand   Type = 8
)

func (t Type) String() string {
	switch t {
	case TypeEndOfSequence:
		return "END_OF_SEQUENCE"
	case TypeSetBusDirection:
		return "SET_BUS_DIRECTION"
	case TypeWait:
		return "WAIT"
	case TypeDeviceCommand:
		return "DEVICE_COMMAND"
	default:
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
}

// Signal is the level pattern of the CKE, CS, RAS, CAS and WE pins that
// selects a DDR3 command. Bit 5 is CKE, bit 4 is CS, bits 3..0 are RAS, CAS
// and WE (active low) plus the command discriminator the RTL uses.
type Signal uint8

// Command-signal codes.
const (
	SignalRefresh   Signal = 0x21 // CKE(1) CS(0) RAS(0) CAS(0) WE(1)
	SignalPrecharge Signal = 0x22 // CKE(1) CS(0) RAS(0) CAS(1) WE(0)
	SignalActivate  Signal = 0x23 // CKE(1) CS(0) RAS(0) CAS(1) WE(1)
	SignalWrite     Signal = 0x24 // CKE(1) CS(0) RAS(1) CAS(0) WE(0)
	SignalRead      Signal = 0x25 // CKE(1) CS(0) RAS(1) CAS(0) WE(1)
	SignalZQ        Signal = 0x26 // CKE(1) CS(0) RAS(1) CAS(1) WE(0)
)

func (s Signal) String() string {
	switch s {
	case SignalRefresh:
		return "REF"
	case SignalPrecharge:
		return "PRE"
	case SignalActivate:
		return "ACT"
	case SignalWrite:
		return "WR"
	case SignalRead:
		return "RD"
	case SignalZQ:
		return "ZQ"
	default:
		return fmt.Sprintf("Signal(0x%02x)", uint8(s))
	}
}

// PrechargeScope selects between a single-bank and an all-bank precharge.
type PrechargeScope uint8

// Precharge scopes.
const (
	PrechargeSingle PrechargeScope = 0
	PrechargeAll    PrechargeScope = 1
)

func (s PrechargeScope) String() string {
	switch s {
	case PrechargeSingle:
		return "SINGLE"
	case PrechargeAll:
		return "ALL"
	default:
		return fmt.Sprintf("PrechargeScope(%d)", uint8(s))
	}
}

// AutoPrecharge asks the device to close the row after a column command.
type AutoPrecharge uint8

// Auto-precharge options.
const (
	NoAutoPrecharge   AutoPrecharge = 0
	WithAutoPrecharge AutoPrecharge = 1
)

func (a AutoPrecharge) String() string {
	switch a {
	case NoAutoPrecharge:
		return "NO_AP"
	case WithAutoPrecharge:
		return "AP"
	default:
		return fmt.Sprintf("AutoPrecharge(%d)", uint8(a))
	}
}

// BurstLength selects an on-the-fly burst length. MR0 must enable
// on-the-fly selection for the chop option to take effect.
type BurstLength uint8

// Burst lengths.
const (
	BurstChop  BurstLength = 0 // BL4
	BurstFixed BurstLength = 1 // BL8
)

func (b BurstLength) String() string {
	switch b {
	case BurstChop:
		return "BL4"
	case BurstFixed:
		return "BL8"
	default:
		return fmt.Sprintf("BurstLength(%d)", uint8(b))
	}
}

// BusDirection is the mode of the DQ pins.
type BusDirection uint8

// Bus directions.
const (
	BusRead  BusDirection = 0
	BusWrite BusDirection = 2
)

func (d BusDirection) String() string {
	switch d {
	case BusRead:
		return "READ"
	case BusWrite:
		return "WRITE"
	default:
		return fmt.Sprintf("BusDirection(%d)", uint8(d))
	}
}

// Register selects the auto-refresh timing register to configure. The
// selector takes the place of the type tag.
type Register uint8

// Auto-refresh registers.
const (
	RegisterTREFI Register = 2
	RegisterTRFC  Register = 3
)

func (r Register) String() string {
	switch r {
	case RegisterTREFI:
		return "TREFI"
	case RegisterTRFC:
		return "TRFC"
	default:
		return fmt.Sprintf("Register(%d)", uint8(r))
	}
}
