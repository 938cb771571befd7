// Package asm turns SoftMC mnemonics into encoded instructions.
//
// Each line names one encoder and its arguments:
//
//	ACT    <bank> <row>
//	PRE    <bank>
//	PREA
//	WR     <bank> <col> <pattern> [AP] [BL4|BL8]
//	WRB    <bank> <col> [AP]
//	RD     <bank> <col> [AP] [BL4|BL8]
//	WAIT   <cycles>
//	BUSDIR READ|WRITE
//	END
//	ZQ
//	REF
//	REFCFG TREFI|TRFC <value>
//
// Mnemonics and flags are case-insensitive. Numbers use Go literal syntax
// (0x.., 0b.., 0o..). Text after '#' or ';' is a comment. Lines are
// encoded in order and nothing is added between them.
package asm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sarchlab/softmc/instr"
)

// ErrSyntax is matched by every SyntaxError.
var ErrSyntax = errors.New("syntax error")

// A SyntaxError reports a line that could not be encoded. Err is the
// underlying cause, possibly an *instr.RangeError.
type SyntaxError struct {
	Line int
	Text string
	Err  error
}

func (e *SyntaxError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %q: %v", e.Line, e.Text, e.Err)
	}

	return fmt.Sprintf("%q: %v", e.Text, e.Err)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrSyntax) true for syntax errors.
func (e *SyntaxError) Is(target error) bool {
	return target == ErrSyntax
}

type encodeFunc func(args []string) (instr.Instruction, error)

type mnemonic struct {
	minArgs int
	maxArgs int
	encode  encodeFunc
}

var mnemonics = map[string]mnemonic{
	"ACT":    {2, 2, parseActivate},
	"PRE":    {1, 1, parsePrecharge},
	"PREA":   {0, 0, parsePrechargeAll},
	"WR":     {3, 5, parseWrite},
	"WRB":    {2, 3, parseWriteBurst},
	"RD":     {2, 4, parseRead},
	"WAIT":   {1, 1, parseWait},
	"BUSDIR": {1, 1, parseBusDirection},
	"END":    {0, 0, noArgs(instr.EndOfSequence)},
	"ZQ":     {0, 0, noArgs(instr.ZQCalibration)},
	"REF":    {0, 0, noArgs(instr.Refresh)},
	"REFCFG": {2, 2, parseRefreshConfig},
}

// ParseLine encodes a single line. A line holding only a comment or
// whitespace returns ok == false and no error.
func ParseLine(line string) (i instr.Instruction, ok bool, err error) {
	fields := strings.Fields(stripComment(line))
	if len(fields) == 0 {
		return 0, false, nil
	}

	name := strings.ToUpper(fields[0])
	args := fields[1:]

	m, found := mnemonics[name]
	if !found {
		return 0, false, &SyntaxError{
			Text: line,
			Err:  fmt.Errorf("unknown mnemonic %s", fields[0]),
		}
	}

	if len(args) < m.minArgs || len(args) > m.maxArgs {
		return 0, false, &SyntaxError{
			Text: line,
			Err:  argCountError(name, m, len(args)),
		}
	}

	i, err = m.encode(args)
	if err != nil {
		return 0, false, &SyntaxError{Text: line, Err: err}
	}

	return i, true, nil
}

// Assemble encodes every line read from r, in order.
func Assemble(r io.Reader) ([]instr.Instruction, error) {
	var out []instr.Instruction

	scanner := bufio.NewScanner(r)
	lineNo := 0

	for scanner.Scan() {
		lineNo++

		i, ok, err := ParseLine(scanner.Text())
		if err != nil {
			var syntaxErr *SyntaxError
			if errors.As(err, &syntaxErr) {
				syntaxErr.Line = lineNo
			}

			return nil, err
		}

		if ok {
			out = append(out, i)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading line %d: %w", lineNo+1, err)
	}

	return out, nil
}

func stripComment(line string) string {
	if idx := strings.IndexAny(line, "#;"); idx >= 0 {
		return line[:idx]
	}

	return line
}

func argCountError(name string, m mnemonic, n int) error {
	if m.minArgs == m.maxArgs {
		return fmt.Errorf("%s takes %d arguments, got %d", name, m.minArgs, n)
	}

	return fmt.Errorf("%s takes %d to %d arguments, got %d",
		name, m.minArgs, m.maxArgs, n)
}
