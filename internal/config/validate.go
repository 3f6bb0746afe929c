package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateTracklist(); err != nil {
		return err
	}
	if err := c.validateOutput(); err != nil {
		return err
	}
	if err := c.validateTranscode(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateTracklist() error {
	if pattern := c.Tracklist.Pattern; pattern != "" {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return fmt.Errorf("tracklist.pattern: %w", err)
		}
		if re.NumSubexp() < 2 {
			return errors.New("tracklist.pattern must have at least two capture groups (time, title)")
		}
	}
	switch c.Tracklist.Encoding {
	case "auto", "utf-8", "utf8":
	default:
		if _, err := htmlindex.Get(c.Tracklist.Encoding); err != nil {
			return fmt.Errorf("tracklist.encoding: unknown encoding %q", c.Tracklist.Encoding)
		}
	}
	return nil
}

func (c *Config) validateOutput() error {
	ext := c.Output.Extension
	if ext == extensionFromSource {
		return nil
	}
	if strings.ContainsAny(ext, `/\ `) || strings.Contains(ext, "..") {
		return fmt.Errorf("output.extension %q must be a bare extension or %q", ext, extensionFromSource)
	}
	return nil
}

func (c *Config) validateTranscode() error {
	if c.Transcode.TimeoutSeconds > maxTranscodeTimeout {
		return fmt.Errorf("transcode.timeout_seconds must be at most %d", maxTranscodeTimeout)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
}
