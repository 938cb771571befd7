// Package cmd provides the command-line interface for SoftMC.
package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

// Environment variables that provide flag defaults.
const (
	envFormat = "SOFTMC_FORMAT"
	envRecord = "SOFTMC_RECORD"
)

const (
	formatHex = "hex"
	formatBin = "bin"
)

func newRootCmd() *cobra.Command {
	var envFile string

	rootCmd := &cobra.Command{
		Use: "softmc",
		Short: "SoftMC tool can encode and decode memory controller " +
			"instructions.",
		Long: `SoftMC tool can encode and decode memory controller ` +
			`instructions. It turns mnemonic programs into the 64-bit ` +
			`instruction words the controller reads, and lists existing ` +
			`instruction files.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadEnvFile(envFile)
		},
	}

	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env",
		"File to load "+envFormat+" and "+envRecord+" defaults from")

	rootCmd.AddCommand(
		newEncodeCmd(),
		newDecodeCmd(),
		newLayoutCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

// loadEnvFile loads variables from path. A missing file is not an error.
// Variables already set in the environment win.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}

	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading %s: %w", path, err)
	}

	return nil
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}

	return fallback
}

func checkFormat(format string) error {
	switch format {
	case formatHex, formatBin:
		return nil
	default:
		return fmt.Errorf("unknown format %q, want %s or %s",
			format, formatHex, formatBin)
	}
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := newRootCmd().Execute()
	if err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
