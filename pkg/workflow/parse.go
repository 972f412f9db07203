package workflow

import "strings"

const (
	titleMarker    = "TITLE:"
	contentMarker  = "CONTENT:"
	decisionMarker = "DECISION:"
	feedbackMarker = "FEEDBACK:"
)

// FallbackTitle is used when a draft response carries no title marker
const FallbackTitle = "Untitled"

// ParseDraft extracts a title and body from raw generator output.
//
// The generator is asked to respond with TITLE: and CONTENT: markers. When
// no title marker is found the whole response becomes the body under a
// fallback title. When a content marker is present the body is everything
// after it; otherwise the body starts at the first non-blank line after the
// title.
func ParseDraft(text string) (title, body string) {
	lines := strings.Split(strings.TrimSpace(text), "\n")

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, titleMarker) {
			continue
		}
		title = strings.TrimSpace(strings.TrimPrefix(trimmed, titleMarker))
		if title == "" {
			title = FallbackTitle
		}

		// Skip blank lines after the title
		j := i + 1
		for j < len(lines) && strings.TrimSpace(lines[j]) == "" {
			j++
		}

		var rest []string
		if j < len(lines) && strings.HasPrefix(strings.TrimSpace(lines[j]), contentMarker) {
			// Text trailing the marker on the same line belongs to the body
			if after := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(lines[j]), contentMarker)); after != "" {
				rest = append(rest, after)
			}
			j++
		}
		rest = append(rest, lines[j:]...)
		body = strings.TrimSpace(strings.Join(rest, "\n"))
		return title, body
	}

	return FallbackTitle, strings.TrimSpace(text)
}

// ParseReview converts raw evaluator output into a Review.
//
// The decision defaults to REJECT: a response is an approval only when a
// DECISION: line contains APPROVE (case-insensitive) and not REJECT, so a
// garbled or ambiguous verdict never ships content. Feedback is the text
// after a FEEDBACK: marker plus all following non-marker lines, joined
// with single spaces.
func ParseReview(text string) Review {
	review := Review{Decision: DecisionReject}

	lines := strings.Split(strings.TrimSpace(text), "\n")
	for i, line := range lines {
		upper := strings.ToUpper(line)
		switch {
		case strings.Contains(upper, decisionMarker):
			approve := strings.Contains(upper, "APPROVE")
			reject := strings.Contains(upper, "REJECT")
			if approve && !reject {
				review.Decision = DecisionApprove
			} else {
				review.Decision = DecisionReject
			}
		case strings.Contains(upper, feedbackMarker):
			_, after, _ := strings.Cut(line, ":")
			parts := []string{strings.TrimSpace(after)}
			for _, next := range lines[i+1:] {
				trimmed := strings.TrimSpace(next)
				if trimmed == "" {
					continue
				}
				nextUpper := strings.ToUpper(trimmed)
				if strings.HasPrefix(nextUpper, decisionMarker) || strings.HasPrefix(nextUpper, feedbackMarker) {
					continue
				}
				parts = append(parts, trimmed)
			}
			review.Feedback = strings.TrimSpace(strings.Join(parts, " "))
		}
	}

	return review
}
