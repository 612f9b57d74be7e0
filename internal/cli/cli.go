// Package cli implements the timelanes command-line interface.
//
// # Commands
//
//   - layout: assign lanes to a request file and write layout JSON
//   - validate: check a request file without laying it out
//   - cache: manage the local layout cache
//   - completion: generate shell completion scripts
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/timelanes/pkg/buildinfo"
	"github.com/matzehuels/timelanes/pkg/cache"
	"github.com/matzehuels/timelanes/pkg/errors"
	"github.com/matzehuels/timelanes/pkg/pipeline"
)

const (
	// appName is the application name used for directories and display.
	appName = "timelanes"

	// redisPingTimeout bounds the reachability check before falling back to
	// the file cache.
	redisPingTimeout = 2 * time.Second
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// settingsFile is the --config flag.
	settingsFile string
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
		Use:   appName,
		Short: "Timelanes packs timeline intervals into non-overlapping lanes",
		Long: `Timelanes assigns every interval of a timeline to a lane so that no two
overlapping intervals share a row, then stacks category blocks vertically.`,
		Version:      buildinfo.Resolved(),
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.settingsFile, "config", "", "settings file (default: ./timelanes.yaml, then ~/.config/timelanes/)")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// registerCacheFlags declares the cache flags. Their values are read back
// through loadSettings so they can also come from the settings file or the
// environment.
func registerCacheFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("no-cache", false, "disable caching")
	cmd.Flags().String("redis-url", "", "cache layouts in Redis (default: $"+envPrefix+"REDIS_URL)")
}

// settings loads the effective settings for cmd.
func (c *CLI) settings(cmd *cobra.Command) (Settings, error) {
	s, err := loadSettings(c.settingsFile, cmd.Flags())
	if err != nil {
		return Settings{}, err
	}
	if s.File != "" {
		c.Logger.Debug("loaded settings", "file", s.File)
	}
	return s, nil
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, s Settings) (*pipeline.Runner, error) {
	cc, err := c.newCache(ctx, s)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cc, nil, c.Logger), nil
}

// newCache picks the cache backend: none, Redis when a URL is configured
// and reachable, otherwise the file cache.
func (c *CLI) newCache(ctx context.Context, s Settings) (cache.Cache, error) {
	if s.NoCache {
		return cache.NewNullCache(), nil
	}

	if s.RedisURL != "" {
		rc, err := cache.NewRedisCacheFromURL(s.RedisURL)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "redis url")
		}
		err = pingRedis(ctx, rc)
		if err == nil {
			c.Logger.Debug("using redis cache")
			return rc, nil
		}
		c.Logger.Warn("redis unavailable, using file cache", "code", errors.GetCode(err), "error", errors.UserMessage(err))
		_ = rc.Close()
	}

	dir, err := s.cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// pingRedis checks that rc answers within redisPingTimeout. Failures carry
// [errors.ErrCodeNetwork].
func pingRedis(ctx context.Context, rc *cache.RedisCache) error {
	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if err := rc.Ping(pingCtx); err != nil {
		return errors.Wrap(errors.ErrCodeNetwork, err, "redis cache unreachable")
	}
	return nil
}

// cacheDir returns CacheDir if set, else the XDG cache directory.
func (s Settings) cacheDir() (string, error) {
	if s.CacheDir != "" {
		return s.CacheDir, nil
	}
	return cacheDir()
}

// cacheDir returns the cache directory using XDG standard (~/.cache/timelanes/).
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
