package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bwx/bwx/pkg/ai"
	"github.com/bwx/bwx/pkg/config"
	"github.com/bwx/bwx/pkg/persona"
	"github.com/bwx/bwx/pkg/style"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check system setup for bwx write",
	Long:  `Verify credentials, configuration, and the content store.`,
	RunE:  runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	fmt.Printf("%s Checking bwx setup\n\n", style.C(style.Blue, "→"))

	allGood := true

	// Check 1: Configured agent is supported
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("%s Config unreadable: %v\n", style.C(style.Red, "✗"), err)
		return fmt.Errorf("setup issues detected")
	}

	if ai.IsAgentSupported(cfg.Agent) {
		fmt.Printf("%s Agent %s supported\n", style.C(style.Green, "✓"), cfg.Agent)
	} else {
		fmt.Printf("%s Agent %s not supported\n", style.C(style.Red, "✗"), cfg.Agent)
		fmt.Printf("  Supported: %s\n", strings.Join(ai.SupportedAgents(), ", "))
		allGood = false
	}

	// Check 2: Content store writable
	if err := os.MkdirAll(cfg.StorePath, 0755); err != nil {
		fmt.Printf("%s Content store %s not writable: %v\n", style.C(style.Red, "✗"), cfg.StorePath, err)
		allGood = false
	} else {
		marker := filepath.Join(cfg.StorePath, ".bwx-doctor")
		if err := os.WriteFile(marker, nil, 0644); err != nil {
			fmt.Printf("%s Content store %s not writable: %v\n", style.C(style.Red, "✗"), cfg.StorePath, err)
			allGood = false
		} else {
			os.Remove(marker)
			fmt.Printf("%s Content store %s writable\n", style.C(style.Green, "✓"), cfg.StorePath)
		}
	}

	// Check 3: Persona files
	writerSrc := "embedded default"
	if cfg.WriterPersona != "" {
		writerSrc = cfg.WriterPersona
	} else if _, err := os.Stat(persona.WriterPath); err == nil {
		writerSrc = persona.WriterPath
	}
	if _, err := persona.LoadWriter(cfg.WriterPersona); err != nil {
		fmt.Printf("%s Writer persona unreadable: %v\n", style.C(style.Red, "✗"), err)
		allGood = false
	} else {
		fmt.Printf("%s Writer persona (%s)\n", style.C(style.Green, "✓"), writerSrc)
	}

	reviewerSrc := "embedded default"
	if cfg.ReviewerPersona != "" {
		reviewerSrc = cfg.ReviewerPersona
	} else if _, err := os.Stat(persona.ReviewerPath); err == nil {
		reviewerSrc = persona.ReviewerPath
	}
	if _, err := persona.LoadReviewer(cfg.ReviewerPersona); err != nil {
		fmt.Printf("%s Reviewer persona unreadable: %v\n", style.C(style.Red, "✗"), err)
		allGood = false
	} else {
		fmt.Printf("%s Reviewer persona (%s)\n", style.C(style.Green, "✓"), reviewerSrc)
	}

	fmt.Println()

	// Check environment variables
	fmt.Printf("%s Checking API credentials\n\n", style.C(style.Blue, "→"))

	hasAnthropicKey := os.Getenv("ANTHROPIC_API_KEY") != ""
	hasGeminiKey := os.Getenv("GEMINI_API_KEY") != ""

	if hasAnthropicKey {
		fmt.Printf("%s ANTHROPIC_API_KEY set\n", style.C(style.Green, "✓"))
	} else {
		fmt.Printf("%s ANTHROPIC_API_KEY not set (required for Claude)\n", style.C(style.Yellow, "⚠"))
	}

	if hasGeminiKey {
		fmt.Printf("%s GEMINI_API_KEY set\n", style.C(style.Green, "✓"))
	} else {
		fmt.Printf("%s GEMINI_API_KEY not set (required for Gemini)\n", style.C(style.Yellow, "⚠"))
	}

	credential := ai.CredentialVar(cfg.Agent)
	if credential != "" && os.Getenv(credential) == "" {
		fmt.Printf("%s Configured agent %s needs %s\n", style.C(style.Red, "✗"), cfg.Agent, credential)
		allGood = false
	}

	fmt.Println()

	if allGood {
		fmt.Printf("%s Setup OK\n", style.C(style.Green, "✓"))
		return nil
	}
	return fmt.Errorf("setup issues detected")
}
