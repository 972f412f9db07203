package cmd

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/bwx/bwx/pkg/config"
	"github.com/bwx/bwx/pkg/store"
	"github.com/bwx/bwx/pkg/style"
)

var (
	listTag    string
	listAuthor string
	listLimit  int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored blog posts",
	Long: `List posts in the content store, newest first.

Examples:
  bwx list
  bwx list --tag golang
  bwx list --author Ana --limit 10`,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVar(&listTag, "tag", "", "Filter by tag")
	listCmd.Flags().StringVar(&listAuthor, "author", "", "Filter by author name")
	listCmd.Flags().IntVar(&listLimit, "limit", 50, "Max posts to list")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	st := store.NewFileStore(cfg.StorePath)
	posts, err := st.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("could not list posts: %w", err)
	}

	filtered := make([]store.Meta, 0, len(posts))
	for _, meta := range posts {
		if listAuthor != "" && !strings.EqualFold(meta.Author, listAuthor) {
			continue
		}
		if listTag != "" && !hasTag(meta.Tags, listTag) {
			continue
		}
		filtered = append(filtered, meta)
		if len(filtered) >= listLimit {
			break
		}
	}

	if len(filtered) == 0 {
		fmt.Println("No posts found")
		return nil
	}

	fmt.Printf("%s%s%-17s | %-40s | %-15s | %-12s | Tags%s\n",
		style.Bold, style.Cyan, "ID", "Title", "Author", "Date", style.Reset)
	fmt.Printf("%s------------------+------------------------------------------+-----------------+--------------+-----%s\n",
		style.Cyan, style.Reset)

	for _, meta := range filtered {
		fmt.Printf("%-17s | %-40s | %-15s | %-12s | %s\n",
			meta.ID,
			truncate(meta.Title, 40),
			truncate(meta.Author, 15),
			meta.Date.Format("2006-01-02"),
			strings.Join(meta.Tags, ", "))
	}

	fmt.Printf("\n%d post(s)\n", len(filtered))
	return nil
}

func hasTag(tags []string, want string) bool {
	for _, t := range tags {
		if strings.EqualFold(t, want) {
			return true
		}
	}
	return false
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max-3]) + "..."
}
