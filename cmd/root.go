package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cvscan/internal/logger"
)

var version = "1.2.0"

var rootCmd = &cobra.Command{
	Use:   "cvscan",
	Short: "CV Scanner CLI - turn scanned resumes into structured data",
	Long: `CV Scanner CLI processes scanned resume documents through a two-stage
pipeline: OCR text is first split into typed sections (personal, experience,
education, skills, ...), then each section is mined for structured fields.

Every result carries heuristic confidence scores and a list of issues so a
human reviewer knows which fields to double-check.`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.WithComponent("root")
		log.Info().
			Str("version", version).
			Msg("CV Scanner CLI executed")

		fmt.Println("Welcome to CV Scanner CLI!")
		fmt.Println("Use --help to see available commands and options.")
	},
}

func Execute() {
	log := logger.WithComponent("cmd")

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print version information")
}
