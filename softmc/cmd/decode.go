package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sarchlab/softmc/instr"
)

func newDecodeCmd() *cobra.Command {
	var useColor bool

	cmd := &cobra.Command{
		Use:   "decode [file]",
		Short: "List the instructions in an instruction file.",
		Long: "`decode words.hex` prints one line per instruction word " +
			"with its index, payload and mnemonic. Reads standard input " +
			"when no file is given.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format := envOr(envFormat, formatHex)
			if cmd.Flags().Changed("format") {
				format, _ = cmd.Flags().GetString("format")
			}

			if err := checkFormat(format); err != nil {
				return err
			}

			in, closeIn, err := openInput(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			defer closeIn()

			words, err := readWords(in, format)
			if err != nil {
				return err
			}

			return printListing(cmd.OutOrStdout(), words, useColor)
		},
	}

	cmd.Flags().String("format", formatHex,
		"Input format, hex or bin (default from "+envFormat+")")
	cmd.Flags().BoolVar(&useColor, "color", false,
		"Highlight mnemonics")

	return cmd
}

func readWords(r io.Reader, format string) ([]instr.Instruction, error) {
	if format == formatBin {
		return readBinaryWords(r)
	}

	return readHexWords(r)
}

func readBinaryWords(r io.Reader) ([]instr.Instruction, error) {
	var words []instr.Instruction

	br := bufio.NewReader(r)
	buf := make([]byte, instr.CarrierSize)

	for {
		_, err := io.ReadFull(br, buf)
		if errors.Is(err, io.EOF) {
			return words, nil
		}

		if err != nil {
			return nil, fmt.Errorf("word %d: %w", len(words), err)
		}

		var w instr.Instruction
		if err := w.UnmarshalBinary(buf); err != nil {
			return nil, fmt.Errorf("word %d: %w", len(words), err)
		}

		words = append(words, w)
	}
}

func readHexWords(r io.Reader) ([]instr.Instruction, error) {
	var words []instr.Instruction

	scanner := bufio.NewScanner(r)
	lineNo := 0

	for scanner.Scan() {
		lineNo++

		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		v, err := strconv.ParseUint(text, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %q is not a word", lineNo, text)
		}

		words = append(words, instr.Instruction(v))
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return words, nil
}

func printListing(w io.Writer, words []instr.Instruction, useColor bool) error {
	known := color.New(color.FgCyan)
	bad := color.New(color.FgRed)

	if useColor {
		known.EnableColor()
		bad.EnableColor()
	} else {
		known.DisableColor()
		bad.DisableColor()
	}

	bw := bufio.NewWriter(w)

	for idx, word := range words {
		text := word.String()

		painter := known
		if _, err := instr.Decode(word); err != nil {
			painter = bad
		}

		_, err := fmt.Fprintf(bw, "%4d  0x%08x  %s\n",
			idx, word.Payload(), painter.Sprint(text))
		if err != nil {
			return err
		}
	}

	return bw.Flush()
}
