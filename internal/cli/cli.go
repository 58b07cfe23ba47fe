// Package cli implements the laneweave command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/laneweave/laneweave/pkg/buildinfo"
	"github.com/laneweave/laneweave/pkg/cache"
	"github.com/laneweave/laneweave/pkg/remote"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "laneweave"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "laneweave",
		Short:        "Laneweave parses, diffs, and patches swimlane diagram text",
		Long:         `Laneweave is a toolkit for a small swimlane diagram DSL: it parses diagram text into a typed graph, computes structural diffs between two versions, and applies structured patch operations back onto the text without disturbing anything they don't touch.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Make the logger reachable from any command's context.
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		return nil
	}

	// Register all subcommands
	root.AddCommand(c.parseCommand())
	root.AddCommand(c.diffCommand())
	root.AddCommand(c.patchCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.shareCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Remote Client Factory
// =============================================================================

// newRemoteClient builds the shared HTTP client for the validate and share
// commands. With noCache it skips the file cache entirely.
func (c *CLI) newRemoteClient(noCache bool) *remote.Client {
	store, ttl := newCache(noCache)
	return remote.NewClient(remote.WithCache(store, ttl))
}

func newCache(noCache bool) (cache.Cache, time.Duration) {
	if noCache {
		return cache.NewNullCache(), 0
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), 0
	}
	store, err := cache.NewFileCache(dir)
	if err != nil {
		return cache.NewNullCache(), 0
	}
	return store, 24 * time.Hour
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/laneweave/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
