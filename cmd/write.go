package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/bwx/bwx/pkg/ai"
	"github.com/bwx/bwx/pkg/cache"
	"github.com/bwx/bwx/pkg/config"
	"github.com/bwx/bwx/pkg/fetch"
	"github.com/bwx/bwx/pkg/log"
	"github.com/bwx/bwx/pkg/persona"
	"github.com/bwx/bwx/pkg/signal"
	"github.com/bwx/bwx/pkg/store"
	"github.com/bwx/bwx/pkg/style"
	"github.com/bwx/bwx/pkg/utils"
	"github.com/bwx/bwx/pkg/workflow"
)

var (
	writeAuthor          string
	writeTags            []string
	writeAgent           string
	writeWriterPersona   string
	writeReviewerPersona string
	writeMaxIterations   int
	writeFromURL         string
	writeStateDir        string
	writeYes             bool
	writeTimeout         time.Duration
)

var writeCmd = &cobra.Command{
	Use:   "write <topic>",
	Short: "Draft a blog post through the review workflow",
	Long: `Draft a blog post on a topic, iterate on automated reviewer feedback,
and publish to the content store after your approval.

The writer drafts, the reviewer critiques, and the draft is revised until
the reviewer approves or the iteration budget runs out. Either way the
post comes to you for the final call.

Examples:
  bwx write "The future of Go generics"
  bwx write "Intro to eBPF" --author "Ana" --tags linux,kernel
  bwx write "Release notes" --from-url https://example.com/changelog
  bwx write "Weekly digest" --yes --max-iterations 3`,
	Args: cobra.ExactArgs(1),
	RunE: runWrite,
}

func init() {
	writeCmd.Flags().StringVar(&writeAuthor, "author", "", "Author name (overrides config)")
	writeCmd.Flags().StringSliceVarP(&writeTags, "tags", "t", nil, "Comma-separated tags")
	writeCmd.Flags().StringVarP(&writeAgent, "agent", "a", "", "AI agent to use (overrides config)")
	writeCmd.Flags().StringVar(&writeStateDir, "state-dir", "", "Directory for journals and snapshots (overrides config)")
	writeCmd.Flags().StringVar(&writeWriterPersona, "writer-persona", "", "Path to a writer persona file")
	writeCmd.Flags().StringVar(&writeReviewerPersona, "reviewer-persona", "", "Path to a reviewer persona file")
	writeCmd.Flags().IntVarP(&writeMaxIterations, "max-iterations", "n", -1, "Max automated review iterations (overrides config)")
	writeCmd.Flags().StringVar(&writeFromURL, "from-url", "", "Fetch a web page as background material for the draft")
	writeCmd.Flags().BoolVarP(&writeYes, "yes", "y", false, "Skip the interactive approval prompt")
	writeCmd.Flags().DurationVar(&writeTimeout, "review-timeout", 0, "Abort the workflow after this duration (e.g. 10m)")
	rootCmd.AddCommand(writeCmd)
}

func runWrite(cmd *cobra.Command, args []string) error {
	topic := strings.TrimSpace(args[0])
	if topic == "" {
		return fmt.Errorf("topic must not be empty")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	agent := cfg.Agent
	if writeAgent != "" {
		agent = writeAgent
	}
	author := cfg.Author
	if writeAuthor != "" {
		author = writeAuthor
	}
	maxIterations := cfg.MaxIterations
	if writeMaxIterations >= 0 {
		maxIterations = writeMaxIterations
	}
	stateDir := cfg.StateDir
	if writeStateDir != "" {
		stateDir = writeStateDir
	}

	if !ai.IsAgentSupported(agent) {
		return fmt.Errorf("unsupported agent: %s (supported: %s)", agent, strings.Join(ai.SupportedAgents(), ", "))
	}
	if credential := ai.CredentialVar(agent); os.Getenv(credential) == "" {
		return fmt.Errorf("%s environment variable not set (required for %s)", credential, agent)
	}

	ctx, cancel := signal.WithInterrupt(context.Background())
	defer cancel()
	if writeTimeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, writeTimeout)
		defer cancel()
	}

	writerPath := writeWriterPersona
	if writerPath == "" {
		writerPath = cfg.WriterPersona
	}
	writerPersona, err := persona.LoadWriter(writerPath)
	if err != nil {
		return fmt.Errorf("error loading writer persona: %w", err)
	}
	reviewerPath := writeReviewerPersona
	if reviewerPath == "" {
		reviewerPath = cfg.ReviewerPersona
	}
	reviewerPersona, err := persona.LoadReviewer(reviewerPath)
	if err != nil {
		return fmt.Errorf("error loading reviewer persona: %w", err)
	}

	client, err := ai.NewClient(agent)
	if err != nil {
		return fmt.Errorf("error creating AI client: %w", err)
	}
	defer client.Close()

	gen := workflow.NewAIGenerator(client, writerPersona)
	if writeFromURL != "" {
		brief, err := loadTopicBrief(ctx, writeFromURL)
		if err != nil {
			return fmt.Errorf("error fetching %s: %w", writeFromURL, err)
		}
		gen.Brief = brief
	}

	var gate workflow.Gate = workflow.NewHumanGate(os.Stdin, os.Stdout)
	if writeYes {
		gate = workflow.AutoGate{}
	}

	if err := utils.EnsureStateGitignore(stateDir); err != nil {
		log.Warn("could not write state gitignore", "error", err)
	}

	startedAt := time.Now()
	journal := workflow.NewJournal()
	engine := workflow.NewEngine(
		gen,
		workflow.NewAIReviewer(client, reviewerPersona),
		gate,
		store.NewFileStore(cfg.StorePath),
		journal,
		workflow.Options{
			MaxAutomatedIterations: maxIterations,
			SnapshotPath:           filepath.Join(stateDir, "state", "current_workflow.json"),
		},
	)

	fmt.Printf("%s Writing post on %s with %s\n", style.C(style.Blue, "→"), style.C(style.Cyan, topic), agent)

	result, err := engine.Run(ctx, workflow.Request{
		Topic:  topic,
		Author: author,
		Tags:   writeTags,
	})

	journalPath := filepath.Join(stateDir, "logs",
		fmt.Sprintf("workflow_%s.json", startedAt.Format("20060102_150405")))
	if saveErr := journal.Save(journalPath); saveErr != nil {
		log.Warn("could not save workflow journal", "error", saveErr)
	}

	if err != nil {
		if result != nil {
			fmt.Fprintf(os.Stderr, "\nWorkflow stopped in state %s\n", result.State)
		}
		return err
	}

	printWriteSummary(result, journal, journalPath)
	return nil
}

// loadTopicBrief fetches a page as background material, caching the
// cleaned text so repeated runs on the same URL skip the network
func loadTopicBrief(ctx context.Context, url string) (string, error) {
	key := cache.Key(url)
	if brief, err := cache.Read(key); err == nil {
		log.Debug("using cached brief", "url", url)
		return brief, nil
	}

	fmt.Printf("%s Fetching background material from %s\n", style.C(style.Blue, "→"), url)
	brief, err := fetch.TopicBrief(ctx, url, "bwx/"+Version)
	if err != nil {
		return "", err
	}
	if err := cache.Write(key, brief); err != nil {
		log.Warn("could not cache brief", "error", err)
	}
	return brief, nil
}

func printWriteSummary(result *workflow.Result, journal *workflow.Journal, journalPath string) {
	metrics := journal.Metrics()

	fmt.Println()
	fmt.Printf("%s %s\n", style.C(style.Green, "✓"), style.B("Post approved and published"))
	fmt.Printf("  Title:     %s\n", style.C(style.Cyan, result.Post.Title))
	if result.Post.ID != "" {
		fmt.Printf("  Post ID:   %s\n", result.Post.ID)
	} else {
		fmt.Printf("  Post ID:   %s\n", style.C(style.Yellow, "(not stored)"))
	}
	fmt.Printf("  Version:   %d\n", result.Post.Version)
	analysis := workflow.Analyze(result.Post.Body)
	fmt.Printf("  Length:    %d words, ~%d min read\n", analysis.WordCount, analysis.ReadingMinutes)
	fmt.Printf("  Reviews:   %d automated, %d human\n", metrics.AutomatedReviews, metrics.HumanReviews)
	fmt.Printf("  Revisions: %d\n", metrics.Revisions)
	fmt.Printf("  Journal:   %s\n", journalPath)

	if len(result.Warnings) > 0 {
		fmt.Println()
		for _, w := range result.Warnings {
			fmt.Printf("%s %s\n", style.C(style.Yellow, "⚠"), w)
		}
	}
}
