package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/viper"

	"slidedeck/internal/catalog"
	"slidedeck/internal/nav"
	"slidedeck/internal/presentation"
)

// Config holds application configuration.
type Config struct {
	Deck DeckConfig
	Show ShowConfig
	UI   UIConfig
	Log  LogConfig
}

// DeckConfig controls how slides are found and ordered.
type DeckConfig struct {
	NotesSuffix        string `mapstructure:"notes_suffix"`
	Ignore             string
	IncludeDirectories bool `mapstructure:"include_directories"`
	Sort               string
	Language           string
	Title              string
	Watch              bool
}

// ShowConfig holds the initial presentation settings.
type ShowConfig struct {
	Preview         bool
	Wrap            bool
	Layout          string
	Interval        float64
	Reverse         bool
	AtomicLandscape bool `mapstructure:"atomic_landscape"`
	Autoplay        bool
}

// UIConfig holds terminal rendering settings.
type UIConfig struct {
	WordWrap int `mapstructure:"word_wrap"`
	Style    string
}

// LogConfig holds logging settings.
type LogConfig struct {
	File  string
	Debug bool
}

// Path returns the config file location: SLIDEDECK_CONFIG if set, else
// ~/.config/slidedeck/config.toml.
func Path() string {
	if p := os.Getenv("SLIDEDECK_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "slidedeck", "config.toml")
}

// Load reads configuration from file and env. Env var overrides use prefix SLIDEDECK_.
// An explicit path overrides Path(); a missing file is not an error.
func Load(path string) (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("deck.notes_suffix", catalog.DefaultNotesSuffix)
	v.SetDefault("deck.ignore", catalog.DefaultIgnore.String())
	v.SetDefault("deck.include_directories", false)
	v.SetDefault("deck.sort", "lexical")
	v.SetDefault("deck.language", "en")
	v.SetDefault("deck.title", "")
	v.SetDefault("deck.watch", true)
	v.SetDefault("show.preview", false)
	v.SetDefault("show.wrap", false)
	v.SetDefault("show.layout", nav.Single.String())
	v.SetDefault("show.interval", 5.0)
	v.SetDefault("show.reverse", false)
	v.SetDefault("show.atomic_landscape", true)
	v.SetDefault("show.autoplay", false)
	v.SetDefault("ui.word_wrap", 80)
	v.SetDefault("ui.style", "auto")
	v.SetDefault("log.file", "")
	v.SetDefault("log.debug", false)

	v.SetConfigType("toml")
	if path == "" {
		path = Path()
	}
	v.SetConfigFile(path)

	v.SetEnvPrefix("SLIDEDECK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !os.IsNotExist(err) && !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// interval converts show.interval seconds to a Duration. Values too small
// to represent truncate to zero.
func (c Config) interval() time.Duration {
	return time.Duration(c.Show.Interval * float64(time.Second))
}

// Validate checks values that would otherwise fail later at session start.
func (c Config) Validate() error {
	if c.interval() <= 0 {
		return fmt.Errorf("show.interval must be positive, got %v", c.Show.Interval)
	}
	if _, err := nav.ParseLayout(c.Show.Layout); err != nil {
		return fmt.Errorf("show.layout: %w", err)
	}
	if _, err := catalog.Comparator(c.Deck.Sort, c.Deck.Language); err != nil {
		return fmt.Errorf("deck.sort: %w", err)
	}
	if _, err := regexp.Compile(c.Deck.Ignore); err != nil {
		return fmt.Errorf("deck.ignore: %w", err)
	}
	return nil
}

// CatalogOptions converts the deck section into catalog options.
func (c Config) CatalogOptions() (catalog.Options, error) {
	less, err := catalog.Comparator(c.Deck.Sort, c.Deck.Language)
	if err != nil {
		return catalog.Options{}, err
	}
	opts := catalog.Options{
		IncludeDirectories: c.Deck.IncludeDirectories,
		NotesSuffix:        c.Deck.NotesSuffix,
		Less:               less,
	}
	if c.Deck.Ignore != "" {
		re, err := regexp.Compile(c.Deck.Ignore)
		if err != nil {
			return catalog.Options{}, fmt.Errorf("deck.ignore: %w", err)
		}
		opts.IgnorePattern = re
	}
	return opts, nil
}

// Settings converts the show section into presentation settings.
func (c Config) Settings() (presentation.Settings, error) {
	layout, err := nav.ParseLayout(c.Show.Layout)
	if err != nil {
		return presentation.Settings{}, err
	}
	return presentation.Settings{
		Preview:         c.Show.Preview,
		Wrap:            c.Show.Wrap,
		Layout:          layout,
		Interval:        c.interval(),
		Reverse:         c.Show.Reverse,
		AtomicLandscape: c.Show.AtomicLandscape,
	}, nil
}
