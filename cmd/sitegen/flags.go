package main

import (
	flag "github.com/spf13/pflag"

	"github.com/dgallion1/sitegen/internal/config"
)

// overrides holds flags that replace loaded configuration when set.
type overrides struct {
	contentDir string
	siteFile   string
	logLevel   string
	logFormat  string

	outputDir string
	drafts    bool
	highlight bool
	style     string
}

func bindGlobalFlags(fs *flag.FlagSet, o *overrides) {
	fs.StringVar(&o.contentDir, "content", "", "Content root (overrides SITEGEN_CONTENT_DIR)")
	fs.StringVar(&o.siteFile, "site", "", "Site YAML file (overrides SITEGEN_SITE_FILE)")
	fs.StringVar(&o.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	fs.StringVar(&o.logFormat, "log-format", "", "Log format: json, text")
}

func bindBuildFlags(fs *flag.FlagSet, o *overrides) {
	fs.StringVarP(&o.outputDir, "out", "o", "", "Output directory (overrides SITEGEN_OUTPUT_DIR)")
	fs.BoolVar(&o.drafts, "drafts", false, "Publish posts marked draft")
	fs.BoolVar(&o.highlight, "highlight", false, "Highlight code blocks server-side")
	fs.StringVar(&o.style, "style", "", "Highlight style name (default monokai)")
}

// apply copies every explicitly set flag into cfg. A new site file is read
// again so its values replace the ones loaded from the environment.
func (o *overrides) apply(fs *flag.FlagSet, cfg *config.Config) error {
	if fs.Changed("content") {
		cfg.ContentDir = o.contentDir
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if fs.Changed("log-format") {
		cfg.LogFormat = o.logFormat
	}
	if fs.Changed("out") {
		cfg.OutputDir = o.outputDir
	}
	if fs.Changed("drafts") {
		cfg.IncludeDrafts = o.drafts
	}
	if fs.Changed("highlight") {
		cfg.Highlight = o.highlight
	}
	if fs.Changed("style") {
		cfg.HighlightStyle = o.style
		cfg.Highlight = true
	}
	if fs.Changed("site") {
		site, err := config.LoadSite(o.siteFile)
		if err != nil {
			return err
		}
		cfg.SiteFile, cfg.Site = o.siteFile, site
	}
	return nil
}
