package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwx/bwx/pkg/claude"
	"github.com/bwx/bwx/pkg/gemini"
)

// Client is the common interface for AI providers
type Client interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Close()
}

// CachingClient supports system-prompt caching (optional interface)
type CachingClient interface {
	Client
	GenerateContentWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// DefaultAgent returns the default API agent
func DefaultAgent() string {
	return claude.DefaultAgent
}

// NewClient creates an AI client based on agent prefix
func NewClient(agent string) (Client, error) {
	switch {
	case strings.HasPrefix(agent, "claude-"):
		return claude.NewClient(agent)
	case strings.HasPrefix(agent, "gemini-"):
		return gemini.NewClient(agent)
	default:
		return nil, fmt.Errorf("unknown agent: %s (use claude-* or gemini-*)", agent)
	}
}

// IsAgentSupported checks if an agent is supported by any provider
func IsAgentSupported(agent string) bool {
	switch {
	case strings.HasPrefix(agent, "claude-"):
		return claude.IsAgentSupported(agent)
	case strings.HasPrefix(agent, "gemini-"):
		return gemini.IsAgentSupported(agent)
	default:
		return false
	}
}

// CredentialVar returns the environment variable holding the API key for an agent
func CredentialVar(agent string) string {
	if strings.HasPrefix(agent, "gemini-") {
		return "GEMINI_API_KEY"
	}
	return "ANTHROPIC_API_KEY"
}

// SupportedAgents returns all supported API agents
func SupportedAgents() []string {
	agents := []string{}
	agents = append(agents, claude.SupportedAgents...)
	agents = append(agents, gemini.SupportedAgents...)
	return agents
}
