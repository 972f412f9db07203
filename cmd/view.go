package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bwx/bwx/pkg/config"
	"github.com/bwx/bwx/pkg/store"
	"github.com/bwx/bwx/pkg/style"
	"github.com/bwx/bwx/pkg/workflow"
)

var viewMetaOnly bool

var viewCmd = &cobra.Command{
	Use:   "view <post-id>",
	Short: "Show a stored blog post",
	Long: `Show a post's metadata and body.

Examples:
  bwx view 20250708_143022
  bwx view 20250708_143022 --meta`,
	Args: cobra.ExactArgs(1),
	RunE: runView,
}

func init() {
	viewCmd.Flags().BoolVar(&viewMetaOnly, "meta", false, "Show metadata only")
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	st := store.NewFileStore(cfg.StorePath)
	post, err := st.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("could not load post %s: %w", args[0], err)
	}

	fmt.Printf("%s\n", style.B(post.Title))
	fmt.Printf("%sID:     %s%s\n", style.Gray, post.ID, style.Reset)
	fmt.Printf("%sAuthor: %s%s\n", style.Gray, post.Author, style.Reset)
	fmt.Printf("%sDate:   %s%s\n", style.Gray, post.Date.Format("2006-01-02 15:04"), style.Reset)
	if len(post.Tags) > 0 {
		fmt.Printf("%sTags:   %s%s\n", style.Gray, strings.Join(post.Tags, ", "), style.Reset)
	}
	analysis := workflow.Analyze(post.Body)
	fmt.Printf("%s%d words · %d min read%s\n", style.Gray, analysis.WordCount, analysis.ReadingMinutes, style.Reset)

	if viewMetaOnly {
		return nil
	}

	fmt.Println()
	fmt.Println(post.Body)
	return nil
}
