package cmd

import (
	"bufio"
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"

	"github.com/sarchlab/softmc/asm"
	"github.com/sarchlab/softmc/instr"
	"github.com/sarchlab/softmc/record"
)

type encodeOptions struct {
	format     string
	outPath    string
	recordPath string
}

func newEncodeCmd() *cobra.Command {
	opts := encodeOptions{}

	cmd := &cobra.Command{
		Use:   "encode [file]",
		Short: "Encode a mnemonic program into instruction words.",
		Long: "`encode program.txt` reads one mnemonic per line and writes " +
			"the encoded words in the same order. Reads standard input " +
			"when no file is given. No END is appended.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.format = envOr(envFormat, formatHex)
			if cmd.Flags().Changed("format") {
				opts.format, _ = cmd.Flags().GetString("format")
			}

			if !cmd.Flags().Changed("record") {
				opts.recordPath = envOr(envRecord, "")
			}

			return runEncode(cmd, args, opts)
		},
	}

	cmd.Flags().String("format", formatHex,
		"Output format, hex or bin (default from "+envFormat+")")
	cmd.Flags().StringVarP(&opts.outPath, "out", "o", "",
		"Output file (default standard output)")
	cmd.Flags().StringVar(&opts.recordPath, "record", "",
		"Also record the words into <record>.sqlite3 (default from "+
			envRecord+")")

	return cmd
}

func runEncode(cmd *cobra.Command, args []string, opts encodeOptions) error {
	if err := checkFormat(opts.format); err != nil {
		return err
	}

	in, closeIn, err := openInput(args, cmd.InOrStdin())
	if err != nil {
		return err
	}
	defer closeIn()

	words, err := asm.Assemble(in)
	if err != nil {
		return err
	}

	e := encoder{format: opts.format}

	if opts.recordPath != "" {
		w, err := record.MakeBuilder().
			WithPath(opts.recordPath).
			WithoutFlushAtExit().
			Build()
		if err != nil {
			return err
		}
		defer w.Close()

		log.Printf("recording into %s", w.Filename())
		e.recorder = w
	}

	out, finish, err := openOutput(opts.outPath, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	e.out = out

	err = e.emit(words)
	if finishErr := finish(err == nil); err == nil {
		err = finishErr
	}

	return err
}

// encoder writes assembled words in one output format and optionally
// records them.
type encoder struct {
	format   string
	out      io.Writer
	recorder record.Recorder
}

func (e encoder) emit(words []instr.Instruction) error {
	if err := writeWords(e.out, e.format, words); err != nil {
		return err
	}

	if e.recorder != nil {
		record.Instructions(e.recorder, words)
		e.recorder.Flush()
	}

	return nil
}

func writeWords(w io.Writer, format string, words []instr.Instruction) error {
	bw := bufio.NewWriter(w)

	switch format {
	case formatBin:
		buf := make([]byte, 0, instr.CarrierSize)
		for _, word := range words {
			buf, _ = word.AppendBinary(buf[:0])
			if _, err := bw.Write(buf); err != nil {
				return err
			}
		}
	default:
		for _, word := range words {
			if _, err := fmt.Fprintf(bw, "0x%016x\n", uint64(word)); err != nil {
				return err
			}
		}
	}

	return bw.Flush()
}
