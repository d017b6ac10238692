// Redisguide: Redis Best Practices MCP Server
//
// Serves a curated knowledge base of Redis best-practice rules to any
// MCP-capable AI tool over stdio, and doubles as a CLI for querying the
// same corpus locally.
//
// Usage:
//
//	redisguide serve              # Start MCP server (stdio transport)
//	redisguide topics             # List topics by category
//	redisguide search <query>     # Ranked keyword search
//	redisguide practice <topic>   # Show one best practice
//	redisguide guide              # Print the full guide
//	redisguide update             # Update to the latest version
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/server"
	"github.com/redisguide/redisguide/internal/config"
	"github.com/redisguide/redisguide/internal/corpus"
	"github.com/redisguide/redisguide/internal/knowledge"
	"github.com/redisguide/redisguide/internal/practices"
	guideserver "github.com/redisguide/redisguide/internal/server"
	"github.com/redisguide/redisguide/internal/updater"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// rootFlags are shared by every subcommand.
type rootFlags struct {
	configPath string
	corpusDir  string
	logLevel   string
}

// load resolves the effective configuration from file, env, and flags.
func (f *rootFlags) load() (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}
	if f.corpusDir != "" {
		cfg.CorpusDir = f.corpusDir
	}
	if f.logLevel != "" {
		cfg.LogLevel = f.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// logger builds the process logger. Everything goes to stderr — stdout
// belongs to the MCP stdio transport.
func newLogger(cfg *config.Config) *slog.Logger {
	level, _ := cfg.SlogLevel()
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func rootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "redisguide",
		Short: "Redis best practices knowledge server",
		Long: `Redisguide serves a curated knowledge base of Redis best practices
over the Model Context Protocol, and answers the same queries directly
from the command line.

The corpus ships embedded in the binary; point --corpus at a directory
containing rules/*.md to serve your own.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to a redisguide.yaml config file")
	cmd.PersistentFlags().StringVar(&flags.corpusDir, "corpus", "", "corpus directory (default: embedded corpus)")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error")

	cmd.AddCommand(
		serveCmd(flags),
		topicsCmd(flags),
		searchCmd(flags),
		practiceCmd(flags),
		guideCmd(flags),
		updateCmd(),
		versionCmd(),
	)

	return cmd
}

func serveCmd(flags *rootFlags) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server on stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			if watch {
				cfg.Watch = true
				if err := cfg.Validate(); err != nil {
					return err
				}
			}

			logger := newLogger(cfg)
			slog.SetDefault(logger)

			s, cleanup, err := guideserver.New(cfg, logger)
			if err != nil {
				return fmt.Errorf("creating server: %w", err)
			}
			defer cleanup()

			// Background version check — prints to stderr so it
			// doesn't interfere with the stdio transport on stdout.
			go checkForUpdates()

			return server.ServeStdio(s)
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "reload the corpus when rule documents change (requires --corpus)")
	return cmd
}

func topicsCmd(flags *rootFlags) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "topics",
		Short: "List best practice topics by category",
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := loadBase(flags)
			if err != nil {
				return err
			}
			fmt.Println(practices.Topics(base, category))
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "filter: data, connection, memory, security, json, streams, clustering, vector, semantic-cache, observability")
	return cmd
}

func searchCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search best practices by keyword",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := loadBase(flags)
			if err != nil {
				return err
			}
			fmt.Println(practices.SearchPractices(base, strings.Join(args, " ")))
			return nil
		},
	}
}

func practiceCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "practice <topic>",
		Short: "Show the best practice for one topic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := loadBase(flags)
			if err != nil {
				return err
			}
			fmt.Println(practices.BestPractice(base, args[0]))
			return nil
		},
	}
}

func guideCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "guide",
		Short: "Print the complete best practices guide",
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := loadBase(flags)
			if err != nil {
				return err
			}
			fmt.Println(practices.FullGuide(base))
			return nil
		},
	}
}

func updateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update",
		Short: "Update redisguide to the latest release",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("Checking for updates...")
			result := updater.CheckVersion(guideserver.Version)
			if !result.UpdateAvailable {
				fmt.Printf("Already up to date (v%s)\n", guideserver.Version)
				return nil
			}
			fmt.Printf("Updating v%s -> v%s...\n", result.CurrentVersion, result.LatestVersion)
			if err := updater.SelfUpdate(guideserver.Version); err != nil {
				return err
			}
			fmt.Println("Updated. Restart any running MCP sessions to pick up the new binary.")
			return nil
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("redisguide v%s\n", guideserver.Version)
		},
	}
}

// loadBase loads the corpus once for the local query commands.
func loadBase(flags *rootFlags) (*knowledge.Base, error) {
	cfg, err := flags.load()
	if err != nil {
		return nil, err
	}
	logger := newLogger(cfg)

	fsys := corpus.Default()
	if cfg.CorpusDir != "" {
		fsys = corpus.Dir(cfg.CorpusDir)
	}
	return knowledge.Load(fsys, knowledge.WithRulesGlob(cfg.RulesGlob), knowledge.WithLogger(logger))
}

// checkForUpdates runs a non-blocking version check and prints a notice
// to stderr when a newer release exists. Network failures are silently
// ignored.
func checkForUpdates() {
	result := updater.CheckVersion(guideserver.Version)
	if result.UpdateAvailable {
		fmt.Fprintf(os.Stderr,
			"\nA new version of redisguide is available: v%s -> v%s\nRun 'redisguide update' to upgrade.\n%s\n\n",
			result.CurrentVersion, result.LatestVersion, result.ReleaseURL)
	}
}
