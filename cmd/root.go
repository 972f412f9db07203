package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/bwx/bwx/pkg/log"
	"github.com/bwx/bwx/pkg/style"
)

var (
	quiet   bool
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "bwx",
	Short: "A CLI for blog-writing workflows powered by AI",
	Long: `bwx drafts blog posts with AI writers like Claude and Gemini.

Every post goes through an automated review loop and a final human
approval before it lands in your content store. Posts are kept as plain
markdown files, so the store stays greppable and versionable.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetQuiet(quiet)
		log.SetVerbose(verbose)
	},
}

func Execute() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Setup Typer-style help formatting
	style.SetupHelp(rootCmd)

	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}
