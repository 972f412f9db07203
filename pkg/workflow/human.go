package workflow

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/bwx/bwx/pkg/style"
)

// HumanGate solicits an approve/reject decision on a terminal. Invalid
// input re-prompts; an I/O failure (closed stdin) is returned as an error.
type HumanGate struct {
	in  *bufio.Reader
	out io.Writer
}

func NewHumanGate(in io.Reader, out io.Writer) *HumanGate {
	return &HumanGate{in: bufio.NewReader(in), out: out}
}

func (g *HumanGate) Confirm(ctx context.Context, post *Post) (Review, error) {
	divider := strings.Repeat("=", 70)

	fmt.Fprintln(g.out)
	fmt.Fprintln(g.out, divider)
	fmt.Fprintln(g.out, style.B("HUMAN REVIEW REQUIRED"))
	fmt.Fprintln(g.out, divider)
	fmt.Fprintf(g.out, "Title:      %s\n", style.C(style.Cyan, post.Title))
	analysis := Analyze(post.Body)
	fmt.Fprintf(g.out, "Version:    %d\n", post.Version)
	fmt.Fprintf(g.out, "Length:     %d words, ~%d min read\n", analysis.WordCount, analysis.ReadingMinutes)
	fmt.Fprintln(g.out, strings.Repeat("-", 70))
	fmt.Fprintln(g.out, post.Body)
	fmt.Fprintln(g.out, divider)

	for {
		if err := ctx.Err(); err != nil {
			return Review{}, err
		}

		fmt.Fprint(g.out, "Do you approve this post? (approve/reject): ")
		answer, err := g.readLine()
		if err != nil {
			return Review{}, fmt.Errorf("could not read decision: %w", err)
		}

		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "approve", "a", "yes", "y":
			return Review{Decision: DecisionApprove, Source: SourceHuman}, nil
		case "reject", "r", "no", "n":
			fmt.Fprint(g.out, "Please provide specific feedback for revision: ")
			feedback, err := g.readLine()
			if err != nil {
				return Review{}, fmt.Errorf("could not read feedback: %w", err)
			}
			return Review{
				Decision: DecisionReject,
				Feedback: strings.TrimSpace(feedback),
				Source:   SourceHuman,
			}, nil
		default:
			fmt.Fprintln(g.out, "Please enter 'approve' or 'reject'")
		}
	}
}

func (g *HumanGate) readLine() (string, error) {
	line, err := g.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return line, nil
}

// AutoGate approves every post without prompting. It backs the --yes flag
// for non-interactive runs.
type AutoGate struct{}

func (AutoGate) Confirm(ctx context.Context, post *Post) (Review, error) {
	return Review{Decision: DecisionApprove, Source: SourceHuman}, nil
}
