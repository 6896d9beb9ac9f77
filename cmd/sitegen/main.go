package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dgallion1/sitegen/internal/config"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd(os.Stderr).ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app is the state shared by every command once configuration is loaded.
type app struct {
	cfg    *config.Config
	log    *slog.Logger
	logOut io.Writer
	flags  overrides
}

func newRootCmd(logOut io.Writer) *cobra.Command {
	a := &app{logOut: logOut}

	rootCmd := &cobra.Command{
		Use:   "sitegen",
		Short: "Build a static blog from Markdown posts",
		Long: `sitegen turns {content}/{category}/*.md posts into HTML fragments, a search
index, an RSS feed and a records file for page templates.

Environment variables (also read from .env):
  SITEGEN_CONTENT_DIR   Content root (default: posts)
  SITEGEN_OUTPUT_DIR    Output directory (default: dist)
  SITEGEN_SITE_FILE     Site YAML file (default: site.yaml)
  SITEGEN_LOG_LEVEL     debug, info, warn or error (default: info)
  SITEGEN_LOG_FORMAT    json or text (default: json)`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	bindGlobalFlags(rootCmd.PersistentFlags(), &a.flags)

	rootCmd.AddCommand(buildCmd(a))
	rootCmd.AddCommand(newCmd(a))
	rootCmd.AddCommand(importCmd(a))
	rootCmd.AddCommand(statsCmd(a))
	rootCmd.AddCommand(searchCmd(a))
	rootCmd.AddCommand(lintCmd(a))
	return rootCmd
}

// setup loads configuration, applies flag overrides and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := a.flags.apply(cmd.Flags(), cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	a.cfg = cfg
	a.log = newLogger(a.logOut, cfg.LogLevel, cfg.LogFormat).With("command", cmd.Name())
	return nil
}

func newLogger(w io.Writer, level, format string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if strings.EqualFold(format, "text") {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}
