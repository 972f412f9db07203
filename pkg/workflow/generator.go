package workflow

import (
	"context"
	"fmt"

	"github.com/bwx/bwx/pkg/ai"
)

const draftPromptFormat = `Create a blog post on the topic: %q

Requirements:
- Write a complete, engaging blog post
- Include a compelling title
- Structure: introduction, main content sections, conclusion
- Target length: 800-1200 words
- Make it informative and valuable to readers
- Use a professional yet approachable tone

Format your response as:
TITLE: [Your title here]

CONTENT:
[Your blog post content here]`

const revisePromptFormat = `Revise this blog post based on the following feedback:

FEEDBACK: %s

CURRENT TITLE: %s

CURRENT CONTENT:
%s

Requirements:
- Address all points in the feedback thoroughly
- Maintain overall quality and readability
- Keep the core topic and message
- Provide a complete, polished revision
- Update the title if needed

Format your response as:
TITLE: [Updated or original title]

CONTENT:
[Your revised blog post content]`

const reviewPromptFormat = `Review this blog post for quality, clarity, relevance, and structure.

Title: %s

Content:
%s

Evaluate based on:
1. Writing quality and clarity
2. Structure and organization
3. Content value and relevance
4. Grammar and style
5. Engagement factor

Provide your decision and feedback in this format:
DECISION: APPROVE or REJECT
FEEDBACK: [If REJECT, provide specific, actionable feedback. If APPROVE, you can omit this or provide brief positive comments.]`

// generate sends a prompt with the persona as system prompt, using prompt
// caching when the provider supports it
func generate(ctx context.Context, client ai.Client, persona, prompt string) (string, error) {
	if caching, ok := client.(ai.CachingClient); ok {
		return caching.GenerateContentWithSystem(ctx, persona, prompt)
	}
	if persona != "" {
		prompt = persona + "\n\n" + prompt
	}
	return client.GenerateContent(ctx, prompt)
}

// AIGenerator produces drafts and revisions through an AI provider using a
// caller-supplied writer persona. The persona content is opaque to it.
type AIGenerator struct {
	client ai.Client
	// Brief is optional background material appended to the draft prompt
	Brief   string
	persona string
}

func NewAIGenerator(client ai.Client, persona string) *AIGenerator {
	return &AIGenerator{client: client, persona: persona}
}

func (g *AIGenerator) Draft(ctx context.Context, topic string) (string, error) {
	prompt := fmt.Sprintf(draftPromptFormat, topic)
	if g.Brief != "" {
		prompt = fmt.Sprintf("%s\n\nBackground material:\n%s", prompt, g.Brief)
	}
	return generate(ctx, g.client, g.persona, prompt)
}

func (g *AIGenerator) Revise(ctx context.Context, title, body, feedback string) (string, error) {
	prompt := fmt.Sprintf(revisePromptFormat, feedback, title, body)
	return generate(ctx, g.client, g.persona, prompt)
}

// AIReviewer evaluates drafts through an AI provider using a
// caller-supplied reviewer persona
type AIReviewer struct {
	client  ai.Client
	persona string
}

func NewAIReviewer(client ai.Client, persona string) *AIReviewer {
	return &AIReviewer{client: client, persona: persona}
}

func (r *AIReviewer) Review(ctx context.Context, title, body string) (Review, error) {
	raw, err := generate(ctx, r.client, r.persona, fmt.Sprintf(reviewPromptFormat, title, body))
	if err != nil {
		return Review{}, err
	}
	review := ParseReview(raw)
	review.Source = SourceAutomated
	return review, nil
}
