package instr

import "github.com/sarchlab/softmc/internal/bitfield"

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}

	return nil
}

func deviceCommand(sig Signal) *bitfield.Packer {
	p := bitfield.NewPacker(uint64(TypeDeviceCommand))

	return p.Push(CommandWidth, uint64(sig))
}

func argInstruction(head uint8, arg uint64) Instruction {
	p := bitfield.NewPacker(uint64(head))

	return Instruction(p.Push(ArgWidth, arg).Word())
}

// Activate opens a row in a bank.
func Activate(bank, row uint) (Instruction, error) {
	const op = "activate"

	err := firstError(
		checkBank(op, bank),
		checkRange(op, "row", uint64(row), 0, MaxRow),
	)
	if err != nil {
		return 0, err
	}

	p := deviceCommand(SignalActivate).
		Push(BankWidth, uint64(bank)).
		Push(RowWidth, uint64(row))

	return Instruction(p.Word()), nil
}

// Precharge closes the open row of a bank, or of every bank when the scope
// is PrechargeAll. The bank is ignored for an all-bank precharge but must
// still be a valid bank id.
func Precharge(bank uint, scope PrechargeScope) (Instruction, error) {
	const op = "precharge"

	err := firstError(
		checkBank(op, bank),
		checkOneOf(op, "scope", uint64(scope),
			uint64(PrechargeSingle), uint64(PrechargeAll)),
	)
	if err != nil {
		return 0, err
	}

	p := deviceCommand(SignalPrecharge)

	if scope == PrechargeAll {
		// A10 high selects all banks.
		p.Push(prechargeAllFieldWidth, 1).Push(ColumnWidth, 0)
	} else {
		p.Push(BankWidth, uint64(bank)).Push(RowWidth, 0)
	}

	return Instruction(p.Word()), nil
}

// Write writes one byte pattern to the whole column burst at bank/col.
//
// The pattern is split: its six high bits are packed ahead of the write
// signal and its two low bits right after the bank. That is how the
// controller routes the pattern to its data pins.
func Write(
	bank, col uint,
	pattern uint8,
	ap AutoPrecharge,
	bl BurstLength,
) (Instruction, error) {
	const op = "write"

	err := firstError(
		checkBank(op, bank),
		checkColumn(op, col),
		checkAutoPrecharge(op, ap),
		checkBurstLength(op, bl),
	)
	if err != nil {
		return 0, err
	}

	p := bitfield.NewPacker(uint64(TypeDeviceCommand))
	p.Push(writeTagShift, uint64(pattern>>writePatternLowWidth)).
		Push(SignalWidth, uint64(SignalWrite)).
		Push(BankWidth, uint64(bank)).
		Push(writePatternLowWidth, uint64(pattern&0x3)).
		Push(burstFieldWidth, uint64(bl)).
		Push(apFieldWidth, uint64(ap)).
		Push(ColumnWidth, uint64(col))

	return Instruction(p.Word()), nil
}

// WriteBurst issues a long write with burst length 8 that takes its data
// from the controller's write buffer instead of a pattern.
func WriteBurst(bank, col uint, ap AutoPrecharge) (Instruction, error) {
	const op = "write burst"

	err := firstError(
		checkBank(op, bank),
		checkColumn(op, col),
		checkAutoPrecharge(op, ap),
	)
	if err != nil {
		return 0, err
	}

	p := deviceCommand(SignalWrite).
		Push(BankWidth, uint64(bank)).
		Push(burstWriteFieldWidth, uint64(BurstFixed)).
		Push(longWriteFieldWidth, 1).
		Push(burstAPFieldWidth, uint64(ap)).
		Push(ColumnWidth, uint64(col))

	return Instruction(p.Word()), nil
}

// Read reads the column burst at bank/col.
func Read(
	bank, col uint,
	ap AutoPrecharge,
	bl BurstLength,
) (Instruction, error) {
	const op = "read"

	err := firstError(
		checkBank(op, bank),
		checkColumn(op, col),
		checkAutoPrecharge(op, ap),
		checkBurstLength(op, bl),
	)
	if err != nil {
		return 0, err
	}

	p := deviceCommand(SignalRead).
		Push(BankWidth, uint64(bank)).
		Push(readBurstFieldWidth, uint64(bl)).
		Push(apFieldWidth, uint64(ap)).
		Push(ColumnWidth, uint64(col))

	return Instruction(p.Word()), nil
}

// Wait stalls command issue for the given number of controller cycles. The
// controller's wait counter is 10 bits wide.
func Wait(cycles uint) (Instruction, error) {
	err := checkRange("wait", "cycles", uint64(cycles),
		MinWaitCycles, MaxWaitCycles)
	if err != nil {
		return 0, err
	}

	return argInstruction(uint8(TypeWait), uint64(cycles)), nil
}

// SetBusDirection switches the DQ pins between read and write mode.
func SetBusDirection(dir BusDirection) (Instruction, error) {
	err := checkOneOf("set bus direction", "direction", uint64(dir),
		uint64(BusRead), uint64(BusWrite))
	if err != nil {
		return 0, err
	}

	return argInstruction(uint8(TypeSetBusDirection), uint64(dir)), nil
}

// EndOfSequence marks the end of an instruction stream.
func EndOfSequence() Instruction {
	return argInstruction(uint8(TypeEndOfSequence), 0)
}

// ZQCalibration starts a DDR3 short ZQ calibration.
func ZQCalibration() Instruction {
	p := deviceCommand(SignalZQ).Push(BankWidth+RowWidth, 0)

	return Instruction(p.Word())
}

// Refresh issues a DDR3 refresh.
func Refresh() Instruction {
	p := deviceCommand(SignalRefresh).Push(BankWidth+RowWidth, 0)

	return Instruction(p.Word())
}

// ConfigureRefresh sets one of the controller's auto-refresh registers. A
// tREFI of zero disables auto-refresh, which is the power-on state.
func ConfigureRefresh(r Register, value uint) (Instruction, error) {
	const op = "configure refresh"

	err := firstError(
		checkOneOf(op, "register", uint64(r),
			uint64(RegisterTREFI), uint64(RegisterTRFC)),
		checkRange(op, "value", uint64(value), 0, MaxRefreshValue),
	)
	if err != nil {
		return 0, err
	}

	return argInstruction(uint8(r), uint64(value)), nil
}
