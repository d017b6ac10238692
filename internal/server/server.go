// Package server wires all MCP components and creates the server
// instance.
//
// This is the composition root: it loads the corpus, picks the Base
// provider, and injects it into the tools/prompts/resources that depend
// on the abstraction. No business logic lives here — only wiring.
package server

import (
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/server"
	"github.com/redisguide/redisguide/internal/config"
	"github.com/redisguide/redisguide/internal/corpus"
	"github.com/redisguide/redisguide/internal/knowledge"
	"github.com/redisguide/redisguide/internal/prompts"
	"github.com/redisguide/redisguide/internal/resources"
	"github.com/redisguide/redisguide/internal/tools"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates and configures the MCP server with all tools, prompts,
// and resources registered. The returned cleanup function stops the
// corpus watcher when watch mode is active; it is always non-nil and
// safe to call.
func New(cfg *config.Config, logger *slog.Logger) (*server.MCPServer, func(), error) {
	if logger == nil {
		logger = slog.Default()
	}

	provider, cleanup, err := newProvider(cfg, logger)
	if err != nil {
		return nil, noop, err
	}
	logger.Info("knowledge base loaded",
		"rules", provider.Base().RuleCount(),
		"sections", len(provider.Base().Sections("")))

	s := server.NewMCPServer(
		"redis-best-practices",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- Register query tools ---

	bestPractice := tools.NewBestPracticeTool(provider)
	s.AddTool(bestPractice.Definition(), bestPractice.Handle)

	topics := tools.NewTopicsTool(provider)
	s.AddTool(topics.Definition(), topics.Handle)

	search := tools.NewSearchTool(provider)
	s.AddTool(search.Definition(), search.Handle)

	antiPatterns := tools.NewAntiPatternsTool(provider)
	s.AddTool(antiPatterns.Definition(), antiPatterns.Handle)

	codeExample := tools.NewCodeExampleTool(provider)
	s.AddTool(codeExample.Definition(), codeExample.Handle)

	guide := tools.NewGuideTool(provider)
	s.AddTool(guide.Definition(), guide.Handle)

	// --- Register prompts ---

	review := prompts.NewReviewPrompt()
	s.AddPrompt(review.Definition(), review.Handle)

	// --- Register resources ---

	resourceHandler := resources.NewHandler(provider)
	s.AddResource(resourceHandler.GuideResource(), resourceHandler.HandleGuide)

	return s, cleanup, nil
}

// newProvider selects the corpus source. An on-disk corpus with watch
// enabled gets a reloading provider; everything else loads once.
func newProvider(cfg *config.Config, logger *slog.Logger) (knowledge.Provider, func(), error) {
	opts := []knowledge.Option{
		knowledge.WithRulesGlob(cfg.RulesGlob),
		knowledge.WithLogger(logger),
	}

	if cfg.CorpusDir != "" && cfg.Watch {
		watcher, err := knowledge.NewWatcher(cfg.CorpusDir, logger, opts...)
		if err != nil {
			return nil, noop, fmt.Errorf("watching corpus %s: %w", cfg.CorpusDir, err)
		}
		cleanup := func() {
			if err := watcher.Close(); err != nil {
				logger.Warn("closing corpus watcher", "error", err)
			}
		}
		return watcher, cleanup, nil
	}

	fsys := corpus.Default()
	if cfg.CorpusDir != "" {
		fsys = corpus.Dir(cfg.CorpusDir)
	}
	base, err := knowledge.Load(fsys, opts...)
	if err != nil {
		return nil, noop, fmt.Errorf("loading corpus: %w", err)
	}
	return knowledge.NewStatic(base), noop, nil
}

// noop is the default cleanup when no watcher is running.
func noop() {}

// serverInstructions returns the system instructions that tell the AI
// how to use the knowledge server effectively.
func serverInstructions() string {
	return `You have access to a Redis best-practices knowledge base.

## WHEN TO USE IT

Consult the knowledge base whenever you:
- Write or refactor code that talks to Redis (any client library)
- Choose a Redis data structure, key naming scheme, or TTL strategy
- Configure connections, pools, pipelines, or cluster clients
- Review Redis-related code for performance or security problems

## HOW THE TOOLS FIT TOGETHER

- list_topics — browse the catalogue by category before diving in
- get_best_practice — full guidance for one topic (key-naming,
  connection-pooling, ttl, streams, vector-search, ...)
- search_best_practices — keyword search when you don't know the topic
  name; results link to the exact identifier for a follow-up lookup
- get_anti_patterns — mistakes to scan for during code review
- get_code_example — runnable snippets per pattern and language
  (python, javascript, java)
- get_full_guide — the entire guide; use only when the task spans many
  categories, it is large

## WORKFLOW

1. Before writing Redis code, look up the relevant topic and follow the
   Correct examples — do not invent command usage from memory.
2. Before finishing a review, run get_anti_patterns and check each one
   against the code.
3. Quote the rule's impact level when you recommend a change, so the
   user can prioritize.

The corpus is read-only reference material: tools never modify state
and are always safe to call. The redis-review prompt runs a full guided
review using these tools.`
}
