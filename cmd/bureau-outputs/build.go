// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/outputs/lib/config"
	"github.com/bureau-foundation/outputs/lib/grouping"
	"github.com/bureau-foundation/outputs/lib/manifest"
	"github.com/bureau-foundation/outputs/lib/output"
)

type buildFlags struct {
	session    string
	configPath string
	outputDir  string
	compiled   string
	module     string
	logLevel   string
}

func runBuild(args []string, stdout, stderr io.Writer) error {
	var flags buildFlags
	flagSet := pflag.NewFlagSet(binaryName+" build", pflag.ContinueOnError)
	flagSet.StringVar(&flags.session, "session", "", "session description file (JSON with comments)")
	flagSet.StringVar(&flags.configPath, "config", "", "config file (default: $"+config.EnvConfig+" if set)")
	flagSet.StringVar(&flags.outputDir, "out", "", "output directory (overrides paths.output)")
	flagSet.StringVar(&flags.compiled, "compiled", "", "previous manifest to merge (overrides manifest.compiled)")
	flagSet.StringVar(&flags.module, "module", "", "module name (overrides config and session)")
	flagSet.StringVar(&flags.logLevel, "log-level", "", "debug, info, warn, or error (overrides log.level)")
	if err := parseFlags(flagSet, args, stderr); err != nil {
		return err
	}
	if flagSet.NArg() > 0 {
		return usagef("unexpected argument: %s", flagSet.Arg(0))
	}
	if flags.session == "" {
		return usagef("--session is required")
	}

	cfg, err := loadConfig(flags.configPath)
	if err != nil {
		return err
	}
	if flags.outputDir != "" {
		cfg.Paths.Output = flags.outputDir
	}
	if flags.compiled != "" {
		cfg.Manifest.Compiled = flags.compiled
	}
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	session, err := loadSession(flags.session)
	if err != nil {
		return err
	}

	module := cfg.Module
	if session.Module != "" {
		module = session.Module
	}
	if flags.module != "" {
		module = flags.module
	}
	if module == "" {
		return usagef("module name is required: set it in the config or session, or pass --module")
	}

	compression, err := manifest.ParseCompression(cfg.Manifest.Compression)
	if err != nil {
		return err
	}

	var merger grouping.Merger = grouping.Compiled{Obsolete: session.Obsolete}
	if cfg.Manifest.Compiled != "" {
		compiled, err := manifest.LoadFile(cfg.Manifest.Compiled, session.Obsolete)
		if err != nil {
			return err
		}
		logger.Debug("loaded compiled manifest",
			"path", cfg.Manifest.Compiled,
			"packages", len(compiled.Groups),
		)
		merger = compiled
	}

	store, err := output.New(output.Options{
		Module:            module,
		Factory:           fileFactory{},
		Extension:         cfg.Artifacts.Extension,
		ManifestDirectory: cfg.Manifest.Directory,
		Merger:            merger,
		Encoder:           manifest.Encoder{Compression: compression},
		Logger:            logger,
	})
	if err != nil {
		return err
	}
	defer store.Release()

	session.replay(store)

	written, err := store.WriteAll(cfg.Paths.Output)
	if err != nil {
		return err
	}
	for _, file := range written {
		fmt.Fprintf(stdout, "%s  %8d  %s\n", file.Digest.Short(), file.Size, file.Path)
	}
	return nil
}

// loadConfig loads the --config file, else the OUTPUTS_CONFIG file,
// else the defaults.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	if os.Getenv(config.EnvConfig) != "" {
		return config.Load()
	}
	return config.Default(), nil
}
