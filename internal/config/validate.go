package config

import (
	"errors"
	"fmt"
	"os"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateSummarizer(); err != nil {
		return err
	}
	if err := c.validateFetch(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateSummarizer() error {
	if err := ensurePositiveMap(map[string]int{
		"summarizer.significant_words": c.Summarizer.SignificantWords,
		"summarizer.cluster_gap":       c.Summarizer.ClusterGap,
	}); err != nil {
		return err
	}
	if c.Summarizer.StopWordsFile != "" {
		info, err := os.Stat(c.Summarizer.StopWordsFile)
		if err != nil {
			return fmt.Errorf("summarizer.stop_words_file: %w", err)
		}
		if info.IsDir() {
			return fmt.Errorf("summarizer.stop_words_file %q is a directory", c.Summarizer.StopWordsFile)
		}
	}
	return nil
}

func (c *Config) validateFetch() error {
	if c.Fetch.TimeoutSeconds <= 0 {
		return errors.New("fetch.timeout_seconds must be positive")
	}
	if c.Fetch.MaxBytes <= 0 {
		return errors.New("fetch.max_bytes must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level %q is not recognized", c.Logging.Level)
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
