package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/dgallion1/sitegen/internal/feed"
)

// EnvPrefix prefixes every environment variable, e.g. SITEGEN_CONTENT_DIR.
const EnvPrefix = "SITEGEN"

// MaxSiteFileSize bounds the site file read into memory.
const MaxSiteFileSize = 1 << 20

type Config struct {
	ContentDir string `envconfig:"CONTENT_DIR" default:"posts"`
	OutputDir  string `envconfig:"OUTPUT_DIR" default:"dist"`
	SiteFile   string `envconfig:"SITE_FILE" default:"site.yaml"`

	// Build
	IncludeDrafts  bool   `envconfig:"INCLUDE_DRAFTS" default:"false"`
	Highlight      bool   `envconfig:"HIGHLIGHT" default:"false"`
	HighlightStyle string `envconfig:"HIGHLIGHT_STYLE" default:"monokai"`
	ExcerptLength  int    `envconfig:"EXCERPT_LENGTH" default:"300"`
	FeedLimit      int    `envconfig:"FEED_LIMIT" default:"20"`
	RelatedLimit   int    `envconfig:"RELATED_LIMIT" default:"3"`
	TOCMin         int    `envconfig:"TOC_MIN" default:"4"`

	// Import
	PDFFallbackPdftotext bool `envconfig:"PDF_FALLBACK_PDFTOTEXT" default:"true"`

	// Logging
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`

	Site Site `ignored:"true"`
}

// Site describes the published site. It comes from the YAML site file.
type Site struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	URL         string   `yaml:"url"`
	Language    string   `yaml:"language"`
	Author      string   `yaml:"author"`
	Categories  []string `yaml:"categories"` // Empty means every content sub-directory
}

// DefaultSite is used for any field the site file leaves empty.
func DefaultSite() Site {
	return Site{
		Title:       "Fridays with Faraday",
		Description: "Working with microcontrollers, embedded systems, and performance optimization",
		URL:         "https://your-domain.com",
		Language:    "en-us",
	}
}

// Load reads .env if present, then SITEGEN_* variables, then the site file.
// A missing site file is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("process env config: %w", err)
	}

	site, err := LoadSite(cfg.SiteFile)
	if err != nil {
		return nil, err
	}
	cfg.Site = site
	return &cfg, nil
}

// LoadSite reads a site file over DefaultSite. path may be empty or missing.
func LoadSite(path string) (Site, error) {
	site := DefaultSite()
	if path == "" {
		return site, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return site, nil
	}
	if err != nil {
		return site, fmt.Errorf("read site file: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return site, nil
	}
	if len(data) > MaxSiteFileSize {
		return site, fmt.Errorf("site file %s: %d bytes exceeds %d", path, len(data), MaxSiteFileSize)
	}

	var file Site
	if err := yaml.UnmarshalWithOptions(data, &file, yaml.Strict()); err != nil {
		return site, fmt.Errorf("parse site file %s: %w", path, err)
	}
	return site.merge(file), nil
}

func (s Site) merge(o Site) Site {
	if v := strings.TrimSpace(o.Title); v != "" {
		s.Title = v
	}
	if v := strings.TrimSpace(o.Description); v != "" {
		s.Description = v
	}
	if v := strings.TrimSpace(o.URL); v != "" {
		s.URL = strings.TrimRight(v, "/")
	}
	if v := strings.TrimSpace(o.Language); v != "" {
		s.Language = v
	}
	if v := strings.TrimSpace(o.Author); v != "" {
		s.Author = v
	}
	if len(o.Categories) > 0 {
		s.Categories = append([]string(nil), o.Categories...)
	}
	return s
}

func (s Site) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Title, validation.Required),
		validation.Field(&s.URL, validation.Required, is.URL),
		validation.Field(&s.Language, validation.Required),
		validation.Field(&s.Categories, validation.Each(validation.Required, validation.By(plainName))),
	)
}

// Validate checks the merged configuration, including the site.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.ContentDir, validation.Required),
		validation.Field(&c.OutputDir, validation.Required, validation.By(func(value any) error {
			if cleanPath(value.(string)) == cleanPath(c.ContentDir) {
				return validation.NewError("sitegen.config.output_dir_same", "must differ from the content directory")
			}
			return nil
		})),
		validation.Field(&c.ExcerptLength, validation.Required, validation.Min(1)),
		validation.Field(&c.FeedLimit, validation.Required, validation.Min(1), validation.Max(feed.DefaultLimit)),
		validation.Field(&c.RelatedLimit, validation.Required, validation.Min(1)),
		validation.Field(&c.TOCMin, validation.Required, validation.Min(1)),
		validation.Field(&c.LogLevel, validation.In("debug", "info", "warn", "error")),
		validation.Field(&c.LogFormat, validation.In("json", "text")),
		validation.Field(&c.Site),
	)
}

func plainName(value any) error {
	s, _ := value.(string)
	if strings.ContainsAny(s, `/\`) || s == "." || s == ".." {
		return validation.NewError("sitegen.config.category_invalid", "must be a plain directory name")
	}
	return nil
}

func cleanPath(p string) string {
	return strings.TrimRight(strings.TrimSpace(p), "/")
}
