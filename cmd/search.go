package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bwx/bwx/pkg/config"
	"github.com/bwx/bwx/pkg/store"
	"github.com/bwx/bwx/pkg/style"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search stored blog posts",
	Long: `Search posts by title, body, or tags (case-insensitive).

Examples:
  bwx search generics
  bwx search "error handling"`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	st := store.NewFileStore(cfg.StorePath)
	matches, err := st.Search(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(matches) == 0 {
		fmt.Printf("No posts matching %q\n", args[0])
		return nil
	}

	fmt.Printf("%s%s%-17s | %-40s | %-15s | Tags%s\n",
		style.Bold, style.Cyan, "ID", "Title", "Author", style.Reset)
	fmt.Printf("%s------------------+------------------------------------------+-----------------+-----%s\n",
		style.Cyan, style.Reset)

	for _, meta := range matches {
		fmt.Printf("%-17s | %-40s | %-15s | %s\n",
			meta.ID,
			truncate(meta.Title, 40),
			truncate(meta.Author, 15),
			strings.Join(meta.Tags, ", "))
	}

	fmt.Printf("\n%d match(es)\n", len(matches))
	return nil
}
