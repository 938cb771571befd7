package asm

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/sarchlab/softmc/instr"
)

// parseField parses a numeric argument of op and checks it against the
// bounds of its instruction field before it is narrowed.
func parseField(op, field, s string, lo, hi uint64) (uint64, error) {
	v, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return 0, fmt.Errorf("%s: %s %s does not fit in 64 bits: %w",
				op, field, s, instr.ErrOutOfRange)
		}

		return 0, fmt.Errorf("%s %q is not a number", field, s)
	}

	if v < lo || v > hi {
		return 0, &instr.RangeError{
			Op:    op,
			Field: field,
			Value: v,
			Min:   lo,
			Max:   hi,
		}
	}

	return v, nil
}

func parseBank(op, s string) (uint, error) {
	v, err := parseField(op, "bank", s, 0, instr.MaxBank)

	return uint(v), err
}

type columnFlags struct {
	ap instr.AutoPrecharge
	bl instr.BurstLength
}

// parseColumnFlags reads the optional AP and BL4/BL8 flags of a column
// command. The burst length defaults to BL8.
func parseColumnFlags(flags []string, allowBL bool) (columnFlags, error) {
	f := columnFlags{
		ap: instr.NoAutoPrecharge,
		bl: instr.BurstFixed,
	}

	seen := map[string]bool{}

	for _, flag := range flags {
		flag = strings.ToUpper(flag)

		kind := flag
		if flag == "BL4" || flag == "BL8" {
			kind = "BL"
		}

		if seen[kind] {
			return f, fmt.Errorf("duplicate flag %s", flag)
		}
		seen[kind] = true

		switch {
		case flag == "AP":
			f.ap = instr.WithAutoPrecharge
		case flag == "BL4" && allowBL:
			f.bl = instr.BurstChop
		case flag == "BL8" && allowBL:
			f.bl = instr.BurstFixed
		default:
			return f, fmt.Errorf("unknown flag %s", flag)
		}
	}

	return f, nil
}

func parseBankCol(op string, args []string) (bank, col uint, err error) {
	bank, err = parseBank(op, args[0])
	if err != nil {
		return 0, 0, err
	}

	v, err := parseField(op, "column", args[1], 0, instr.MaxColumn)
	if err != nil {
		return 0, 0, err
	}

	return bank, uint(v), nil
}

func parseActivate(args []string) (instr.Instruction, error) {
	bank, err := parseBank("activate", args[0])
	if err != nil {
		return 0, err
	}

	row, err := parseField("activate", "row", args[1], 0, instr.MaxRow)
	if err != nil {
		return 0, err
	}

	return instr.Activate(bank, uint(row))
}

func parsePrecharge(args []string) (instr.Instruction, error) {
	bank, err := parseBank("precharge", args[0])
	if err != nil {
		return 0, err
	}

	return instr.Precharge(bank, instr.PrechargeSingle)
}

func parsePrechargeAll([]string) (instr.Instruction, error) {
	return instr.Precharge(0, instr.PrechargeAll)
}

func parseWrite(args []string) (instr.Instruction, error) {
	bank, col, err := parseBankCol("write", args)
	if err != nil {
		return 0, err
	}

	pattern, err := parseField("write", "pattern", args[2], 0, math.MaxUint8)
	if err != nil {
		return 0, err
	}

	f, err := parseColumnFlags(args[3:], true)
	if err != nil {
		return 0, err
	}

	return instr.Write(bank, col, uint8(pattern), f.ap, f.bl)
}

func parseWriteBurst(args []string) (instr.Instruction, error) {
	bank, col, err := parseBankCol("write burst", args)
	if err != nil {
		return 0, err
	}

	f, err := parseColumnFlags(args[2:], false)
	if err != nil {
		return 0, err
	}

	return instr.WriteBurst(bank, col, f.ap)
}

func parseRead(args []string) (instr.Instruction, error) {
	bank, col, err := parseBankCol("read", args)
	if err != nil {
		return 0, err
	}

	f, err := parseColumnFlags(args[2:], true)
	if err != nil {
		return 0, err
	}

	return instr.Read(bank, col, f.ap, f.bl)
}

func parseWait(args []string) (instr.Instruction, error) {
	cycles, err := parseField("wait", "cycles", args[0],
		instr.MinWaitCycles, instr.MaxWaitCycles)
	if err != nil {
		return 0, err
	}

	return instr.Wait(uint(cycles))
}

func parseBusDirection(args []string) (instr.Instruction, error) {
	switch strings.ToUpper(args[0]) {
	case "READ":
		return instr.SetBusDirection(instr.BusRead)
	case "WRITE":
		return instr.SetBusDirection(instr.BusWrite)
	default:
		return 0, fmt.Errorf("unknown bus direction %s", args[0])
	}
}

func parseRefreshConfig(args []string) (instr.Instruction, error) {
	var r instr.Register

	switch strings.ToUpper(args[0]) {
	case "TREFI":
		r = instr.RegisterTREFI
	case "TRFC":
		r = instr.RegisterTRFC
	default:
		return 0, fmt.Errorf("unknown refresh register %s", args[0])
	}

	value, err := parseField("configure refresh", "value", args[1],
		0, instr.MaxRefreshValue)
	if err != nil {
		return 0, err
	}

	return instr.ConfigureRefresh(r, uint(value))
}

func noArgs(f func() instr.Instruction) encodeFunc {
	return func([]string) (instr.Instruction, error) {
		return f(), nil
	}
}
