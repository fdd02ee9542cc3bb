package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"salience/internal/api"
	"salience/internal/config"
	"salience/internal/digest"
	"salience/internal/logging"
	"salience/internal/source"
	"salience/internal/summarize"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
	}
}

func (c *commandContext) configPath() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(c.configPath())
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) configValue() *config.Config {
	cfg, _ := c.ensureConfig()
	return cfg
}

// log returns the process logger. Logger construction failures fall back to
// the console handler on stderr.
func (c *commandContext) log() *slog.Logger {
	c.loggerOnce.Do(func() {
		logger, err := logging.NewFromConfig(c.configValue())
		if err != nil {
			fmt.Fprintf(os.Stderr, "logging setup failed: %v\n", err)
			logger, _ = logging.New(logging.Options{Level: "info", Format: "console"})
		}
		c.logger = logger
	})
	return c.logger
}

// serviceOptions controls how a command builds its summary service.
type serviceOptions struct {
	stopWordsFile string
	noCache       bool
}

// openService builds the summary service and, when caching is on, the digest
// store behind it. The returned close function releases the store.
func (c *commandContext) openService(opts serviceOptions) (*api.SummaryService, func(), error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}

	effective := *cfg
	if path := strings.TrimSpace(opts.stopWordsFile); path != "" {
		expanded, err := config.ExpandPath(path)
		if err != nil {
			return nil, nil, fmt.Errorf("resolve stop words path: %w", err)
		}
		effective.Summarizer.StopWordsFile = expanded
	}
	base, err := summarize.OptionsFromConfig(&effective)
	if err != nil {
		return nil, nil, err
	}

	var (
		store   api.DigestStore
		closeFn = func() {}
	)
	if cfg.Cache.Enabled && !opts.noCache {
		digests, err := digest.Open(cfg)
		if err != nil {
			return nil, nil, err
		}
		store = digests
		closeFn = func() {
			if err := digests.Close(); err != nil {
				c.log().Warn("close digest store failed", logging.Error(err))
			}
		}
	}

	svc, err := api.NewSummaryService(base, store, c.log())
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	return svc, closeFn, nil
}

// openStore opens the digest store for cache maintenance commands.
func (c *commandContext) openStore() (*digest.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if !cfg.Cache.Enabled {
		return nil, errors.New("digest cache is disabled; set [cache] enabled = true to use it")
	}
	return digest.Open(cfg)
}

func (c *commandContext) reader(cmd *cobra.Command) *source.Reader {
	cfg := c.configValue()
	return source.NewReader(cfg.Fetch, c.log(), source.WithStdin(cmd.InOrStdin()))
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

// isTerminal reports whether r is an interactive terminal.
func isTerminal(r io.Reader) bool {
	file, ok := r.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
