// Package config collects the pad's tunables from defaults, the environment
// and command-line flags, in that order of precedence.
package config

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gogpu/gg"

	"MyInkPad/internal/layout"
	inet "MyInkPad/internal/net"
	"MyInkPad/internal/pad"
	"MyInkPad/internal/state"
)

const (
	DefaultPort = 8888
	envPrefix   = "INKPAD_"
)

// Config holds every tunable of the application.
type Config struct {
	Debounce       time.Duration
	RowHeight      float64
	TouchTolerance float64
	StrokeWidth    float64
	StrokeColor    string
	Port           int
	Share          bool
	LogLevel       slog.Level
	PicturesDir    string

	// View opens a read-only viewer instead of a pad. Link is the share
	// link to view; when empty the first host found on the LAN is used.
	View bool
	Link string
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Debounce:       pad.DefaultDebounce,
		RowHeight:      layout.DefaultRowHeight,
		TouchTolerance: state.DefaultTolerance,
		StrokeWidth:    state.DefaultStyle().Width,
		StrokeColor:    state.DefaultStyle().Hex(),
		Port:           DefaultPort,
		LogLevel:       slog.LevelInfo,
		PicturesDir:    defaultPicturesDir(),
	}
}

func defaultPicturesDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, "Pictures")
}

// Load builds a Config from the environment and args (without the program
// name).
func Load(args []string) (Config, error) {
	cfg := Default()
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	fs := flag.NewFlagSet("inkpad", flag.ContinueOnError)
	cfg.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if link := fs.Arg(0); strings.HasPrefix(link, inet.URLScheme) {
		cfg.Link = link
		cfg.View = true
	}
	return cfg, cfg.Validate()
}

// RegisterFlags binds the config fields to fs using the current values as
// defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.DurationVar(&c.Debounce, "debounce", c.Debounce, "pause after which a drawn glyph is committed")
	fs.Float64Var(&c.RowHeight, "row-height", c.RowHeight, "height of one written line in pixels")
	fs.Float64Var(&c.TouchTolerance, "tolerance", c.TouchTolerance, "minimum pointer movement that extends a stroke")
	fs.Float64Var(&c.StrokeWidth, "stroke-width", c.StrokeWidth, "initial pen width")
	fs.StringVar(&c.StrokeColor, "color", c.StrokeColor, "initial pen color as hex")
	fs.IntVar(&c.Port, "port", c.Port, "share server port")
	fs.BoolVar(&c.Share, "share", c.Share, "mirror the page to viewers on the local network")
	fs.TextVar(&c.LogLevel, "log-level", c.LogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&c.PicturesDir, "pictures", c.PicturesDir, "directory PNG snapshots are saved to")
	fs.BoolVar(&c.View, "view", c.View, "view a shared pad instead of writing")
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	get := func(name string) (string, bool) {
		v, ok := lookup(envPrefix + name)
		return strings.TrimSpace(v), ok && strings.TrimSpace(v) != ""
	}
	var err error
	if v, ok := get("DEBOUNCE"); ok {
		if c.Debounce, err = time.ParseDuration(v); err != nil {
			return fmt.Errorf("%sDEBOUNCE: %w", envPrefix, err)
		}
	}
	if v, ok := get("ROW_HEIGHT"); ok {
		if c.RowHeight, err = strconv.ParseFloat(v, 64); err != nil {
			return fmt.Errorf("%sROW_HEIGHT: %w", envPrefix, err)
		}
	}
	if v, ok := get("PORT"); ok {
		if c.Port, err = strconv.Atoi(v); err != nil {
			return fmt.Errorf("%sPORT: %w", envPrefix, err)
		}
	}
	if v, ok := get("SHARE"); ok {
		if c.Share, err = strconv.ParseBool(v); err != nil {
			return fmt.Errorf("%sSHARE: %w", envPrefix, err)
		}
	}
	if v, ok := get("LOG_LEVEL"); ok {
		if err = c.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("%sLOG_LEVEL: %w", envPrefix, err)
		}
	}
	if v, ok := get("COLOR"); ok {
		c.StrokeColor = v
	}
	if v, ok := get("PICTURES"); ok {
		c.PicturesDir = v
	}
	return nil
}

// Validate rejects values the pad cannot work with.
func (c Config) Validate() error {
	switch {
	case c.Debounce <= 0:
		return fmt.Errorf("debounce must be positive, got %s", c.Debounce)
	case c.RowHeight <= 0:
		return fmt.Errorf("row height must be positive, got %g", c.RowHeight)
	case c.TouchTolerance < 0:
		return fmt.Errorf("tolerance must not be negative, got %g", c.TouchTolerance)
	case c.StrokeWidth <= 0:
		return fmt.Errorf("stroke width must be positive, got %g", c.StrokeWidth)
	case c.Port <= 0 || c.Port > 65535:
		return fmt.Errorf("port out of range: %d", c.Port)
	case !isHexColor(c.StrokeColor):
		return fmt.Errorf("color must be #rgb, #rgba, #rrggbb or #rrggbbaa, got %q", c.StrokeColor)
	}
	return nil
}

func isHexColor(s string) bool {
	s = strings.TrimPrefix(s, "#")
	switch len(s) {
	case 3, 4, 6, 8:
	default:
		return false
	}
	for _, r := range s {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return false
		}
	}
	return true
}

// Style returns the initial pen style.
func (c Config) Style() state.Style {
	return state.DefaultStyle().
		WithColor(gg.Hex(c.StrokeColor).Color()).
		WithWidth(c.StrokeWidth)
}

// PadOptions translates the config into pad options.
func (c Config) PadOptions() []pad.Option {
	return []pad.Option{
		pad.WithDebounce(c.Debounce),
		pad.WithRowHeight(c.RowHeight),
		pad.WithTolerance(c.TouchTolerance),
		pad.WithStyle(c.Style()),
	}
}
