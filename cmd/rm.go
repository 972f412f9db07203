package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bwx/bwx/pkg/config"
	"github.com/bwx/bwx/pkg/store"
	"github.com/bwx/bwx/pkg/style"
)

var rmForce bool

var rmCmd = &cobra.Command{
	Use:   "rm <post-id>",
	Short: "Delete a stored blog post",
	Long: `Delete a post and its metadata from the content store.

Examples:
  bwx rm 20250708_143022
  bwx rm 20250708_143022 --force`,
	Args: cobra.ExactArgs(1),
	RunE: runRm,
}

func init() {
	rmCmd.Flags().BoolVarP(&rmForce, "force", "f", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(rmCmd)
}

func runRm(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	st := store.NewFileStore(cfg.StorePath)
	post, err := st.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("could not load post %s: %w", args[0], err)
	}

	if !rmForce {
		fmt.Printf("Delete %s (%s)? (y/N): ", post.ID, style.C(style.Cyan, post.Title))
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		answer = strings.ToLower(strings.TrimSpace(answer))
		if answer != "y" && answer != "yes" {
			fmt.Println("Aborted")
			return nil
		}
	}

	if err := st.Delete(cmd.Context(), post.ID); err != nil {
		return fmt.Errorf("could not delete post: %w", err)
	}

	fmt.Printf("%s Deleted %s\n", style.C(style.Green, "✓"), post.ID)
	return nil
}
