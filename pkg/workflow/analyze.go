package workflow

import (
	"math"
	"strings"
)

// readingWPM is the words-per-minute assumption for reading time
const readingWPM = 200

// Analysis summarizes a post body: length, reading time, markdown
// structure, and rough readability averages.
type Analysis struct {
	WordCount      int
	ReadingMinutes int
	Lines          int
	Paragraphs     int
	Headings       int
	BulletPoints   int
	NumberedItems  int

	AvgWordsPerSentence float64
	AvgCharsPerWord     float64
}

// Analyze computes content metrics for a post body
func Analyze(content string) Analysis {
	words := strings.Fields(content)
	lines := strings.Split(content, "\n")

	a := Analysis{
		WordCount: len(words),
		Lines:     len(lines),
	}
	a.ReadingMinutes = int(math.Max(1, math.Round(float64(a.WordCount)/readingWPM)))

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
		case strings.HasPrefix(trimmed, "#"):
			a.Headings++
		case strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") || strings.HasPrefix(trimmed, "+ "):
			a.BulletPoints++
			a.Paragraphs++
		default:
			if trimmed[0] >= '0' && trimmed[0] <= '9' {
				a.NumberedItems++
			}
			a.Paragraphs++
		}
	}

	if len(words) == 0 {
		return a
	}

	sentences := 0
	for _, s := range strings.Split(content, ".") {
		if strings.TrimSpace(s) != "" {
			sentences++
		}
	}
	if sentences == 0 {
		sentences = 1
	}
	a.AvgWordsPerSentence = round2(float64(len(words)) / float64(sentences))

	chars := 0
	for _, w := range words {
		chars += len(w)
	}
	a.AvgCharsPerWord = round2(float64(chars) / float64(len(words)))

	return a
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
