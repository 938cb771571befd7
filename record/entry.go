package record

import (
	"fmt"
	"slices"

	"github.com/sarchlab/softmc/instr"
)

// InstructionTable is the table encoded words are recorded into.
const InstructionTable = "instructions"

// Entry is one recorded instruction. Type is the instruction class, or the
// register name (TREFI, TRFC) for a refresh-timer configuration word.
type Entry struct {
	Position int
	Word     uint64
	Hex      string
	Type     string
	Mnemonic string
}

// EntryFor builds the entry for the index-th word of a stream.
func EntryFor(index int, i instr.Instruction) Entry {
	return Entry{
		Position: index,
		Word:     uint64(i),
		Hex:      fmt.Sprintf("0x%08x", i.Payload()),
		Type:     typeName(i),
		Mnemonic: i.String(),
	}
}

func typeName(i instr.Instruction) string {
	d, err := instr.Decode(i)
	if err == nil && d.Op == instr.OpConfigureRefresh {
		return d.Register.String()
	}

	return i.Type().String()
}

// Instructions records words in order, creating the instruction table on
// first use. It does not flush.
func Instructions(r Recorder, words []instr.Instruction) {
	if !slices.Contains(r.ListTables(), InstructionTable) {
		r.CreateTable(InstructionTable, Entry{})
	}

	for idx, w := range words {
		r.InsertData(InstructionTable, EntryFor(idx, w))
	}
}
