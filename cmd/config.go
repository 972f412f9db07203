package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bwx/bwx/pkg/ai"
	"github.com/bwx/bwx/pkg/config"
	"github.com/bwx/bwx/pkg/persona"
	"github.com/bwx/bwx/pkg/style"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage bwx configuration",
	Long: `Interactive setup wizard or direct config access.

Run without subcommand for interactive setup:
  bwx config

Or use subcommands:
  bwx config list
  bwx config get <key>
  bwx config set <key> <value>`,
	RunE: runConfigWizard,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value",
	Long: `Set a configuration value.

Keys:
  store_path       Directory for stored posts
  state_dir        Directory for journals and snapshots
  agent            AI agent (claude-sonnet-4-5, gemini-2.5-flash, ...)
  author           Default author name
  max_iterations   Automated review iteration budget
  writer_persona   Path to a writer persona file
  reviewer_persona Path to a reviewer persona file

Examples:
  bwx config set agent gemini-2.5-pro
  bwx config set author "Ana"
  bwx config set max_iterations 3`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		if err := config.Set(key, value); err != nil {
			return err
		}
		fmt.Printf("Set %s = %s\n", key, value)
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a config value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := config.Get(args[0])
		if err != nil {
			return err
		}
		if value == "" {
			fmt.Println("(not set)")
		} else {
			fmt.Println(value)
		}
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all config values",
	RunE: func(cmd *cobra.Command, args []string) error {
		values, err := config.All()
		if err != nil {
			return err
		}

		fmt.Printf("\n%s\n", style.B(style.C(style.Cyan, "bwx config")))
		fmt.Printf("%s%s%s\n\n", style.Gray, config.Path(), style.Reset)

		keys := make([]string, 0, len(values))
		for k := range values {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, key := range keys {
			if values[key] == "" {
				fmt.Printf("  %-17s %s(not set)%s\n", key, style.Gray, style.Reset)
			} else {
				fmt.Printf("  %-17s %s\n", key, style.C(style.Green, values[key]))
			}
		}

		fmt.Println()
		return nil
	},
}

var configResetPersonasCmd = &cobra.Command{
	Use:   "reset-personas",
	Short: "Restore the default writer and reviewer personas",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := persona.Reset(); err != nil {
			return err
		}
		fmt.Printf("%s Personas restored to defaults in %s\n", style.C(style.Green, "✓"), filepath.Dir(persona.WriterPath))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configResetPersonasCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigWizard(cmd *cobra.Command, args []string) error {
	reader := bufio.NewReader(os.Stdin)

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	fmt.Printf("\n%s\n\n", style.B(style.C(style.Cyan, "bwx setup")))

	// Step 1: AI agent
	agents := ai.SupportedAgents()
	currentIdx := 0
	for i, a := range agents {
		if a == cfg.Agent {
			currentIdx = i
			break
		}
	}

	fmt.Printf("%s AI Agent\n", style.C(style.Green, "?"))
	for i, a := range agents {
		marker := "   "
		if i == currentIdx {
			marker = fmt.Sprintf("  %s→%s", style.Green, style.Reset)
		}
		note := "requires GEMINI_API_KEY"
		if strings.HasPrefix(a, "claude") {
			note = "requires ANTHROPIC_API_KEY"
		}
		fmt.Printf("%s%s%d)%s %s %s(%s)%s\n", marker, style.Cyan, i+1, style.Reset, a, style.Gray, note, style.Reset)
	}
	fmt.Printf("\n  Choice %s(%d)%s: ", style.Cyan, currentIdx+1, style.Reset)

	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	agent := cfg.Agent
	if input != "" {
		if idx, err := strconv.Atoi(input); err == nil && idx >= 1 && idx <= len(agents) {
			agent = agents[idx-1]
		}
	}
	config.Set("agent", agent)
	fmt.Printf("  Using %s\n\n", style.C(style.Cyan, agent))

	// Step 2: Author
	fmt.Printf("%s Author name %s(%s)%s: ", style.C(style.Green, "?"), style.Cyan, cfg.Author, style.Reset)
	input, _ = reader.ReadString('\n')
	if input = strings.TrimSpace(input); input != "" {
		config.Set("author", input)
	}

	// Step 3: Store path
	fmt.Printf("%s Content store directory %s(%s)%s: ", style.C(style.Green, "?"), style.Cyan, cfg.StorePath, style.Reset)
	input, _ = reader.ReadString('\n')
	if input = strings.TrimSpace(input); input != "" {
		config.Set("store_path", input)
	}

	// Step 4: Iteration budget
	fmt.Printf("%s Max automated review iterations %s(%d)%s: ", style.C(style.Green, "?"), style.Cyan, cfg.MaxIterations, style.Reset)
	input, _ = reader.ReadString('\n')
	if input = strings.TrimSpace(input); input != "" {
		if err := config.Set("max_iterations", input); err != nil {
			fmt.Printf("  %s\n", err)
		}
	}
	fmt.Println()

	// Write editable persona files so they can be customized
	if err := persona.Init(); err != nil {
		fmt.Printf("  Warning: Could not write persona files: %v\n", err)
	} else {
		fmt.Printf("%s Personas written to %s (edit to customize)\n", style.C(style.Green, "✓"), style.C(style.Cyan, filepath.Dir(persona.WriterPath)))
	}

	fmt.Printf("\n%s Try: %s\n\n", style.B(style.C(style.Green, "Ready!")), style.C(style.Cyan, `bwx write "My first post"`))
	return nil
}
