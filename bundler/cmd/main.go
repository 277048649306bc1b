// Package main provides the pagebundle CLI that reads the
// documentation pages of a registry and prints them as a
// JavaScript "const embeddedPages = {...};" statement.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/byte4ever/pagebundle/bundler"
	"github.com/byte4ever/pagebundle/digester"
	"github.com/byte4ever/pagebundle/registry"
)

var (
	// ErrStale is returned by -check when the output file
	// differs from the generated bundle.
	ErrStale = errors.New("bundle is out of date")

	// ErrFallback is returned by -strict when a page could
	// not be read.
	ErrFallback = errors.New("pages could not be loaded")
)

type options struct {
	registryFile string
	basePath     string
	output       string
	check        bool
	strict       bool
	serialize    bundler.Options
}

func parseFlags(args []string) (*options, error) {
	const errCtx = "parsing flags"

	opts := options{serialize: bundler.DefaultOptions()}

	fs := flag.NewFlagSet("pagebundle", flag.ContinueOnError)

	fs.StringVar(
		&opts.registryFile, "registry", "",
		"YAML manifest of pages (default: built-in guide registry)",
	)

	fs.StringVar(
		&opts.basePath, "base-path", "",
		"directory page files are relative to"+
			" (default: manifest base_path or "+
			registry.DefaultBasePath+")",
	)

	fs.StringVar(
		&opts.output, "output", "",
		"output file path (default: stdout)",
	)

	fs.BoolVar(
		&opts.check, "check", false,
		"fail if --output differs from the generated bundle",
	)

	fs.BoolVar(
		&opts.strict, "strict", false,
		"fail if any page could not be loaded",
	)

	fs.StringVar(
		&opts.serialize.VarName, "var-name",
		bundler.DefaultVarName,
		"name of the generated constant",
	)

	fs.StringVar(
		&opts.serialize.Prefix, "prefix",
		bundler.DefaultPrefix,
		"text placed before the statement",
	)

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	if opts.check && opts.output == "" {
		return nil, fmt.Errorf(
			"%s: --check requires --output", errCtx,
		)
	}

	return &opts, nil
}

// resolveRegistry returns the pages and base directory
// selected by opts.
func resolveRegistry(
	opts *options,
) (registry.Registry, string, error) {
	reg := registry.Default()
	basePath := registry.DefaultBasePath

	if opts.registryFile != "" {
		mf, err := registry.LoadManifest(opts.registryFile)
		if err != nil {
			return nil, "", err
		}

		reg = mf.Pages
		basePath = mf.BasePath
	}

	if opts.basePath != "" {
		basePath = opts.basePath
	}

	return reg, basePath, nil
}

func run(
	args []string,
	stdout io.Writer,
	logger *slog.Logger,
) error {
	const errCtx = "pagebundle"

	opts, err := parseFlags(args)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	reg, basePath, err := resolveRegistry(opts)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	cm := bundler.BuildContentMap(reg, basePath, logger)

	result, err := bundler.SerializeWith(cm, opts.serialize)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := emit(opts, result, stdout, logger); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if fb := cm.Fallbacks(); opts.strict && len(fb) > 0 {
		return fmt.Errorf(
			"%s: %d of %d: %w",
			errCtx, len(fb), cm.Len(), ErrFallback,
		)
	}

	return nil
}

// emit writes result to stdout or to opts.output. An
// output file already holding result is left untouched.
func emit(
	opts *options,
	result string,
	stdout io.Writer,
	logger *slog.Logger,
) error {
	const errCtx = "writing output"

	if opts.output == "" {
		if _, err := io.WriteString(stdout, result); err != nil {
			return fmt.Errorf(
				"%s: writing to stdout: %w", errCtx, err,
			)
		}

		return nil
	}

	upToDate, err := digester.Matches(
		opts.output, []byte(result),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if opts.check {
		if !upToDate {
			return fmt.Errorf(
				"%s: %s: %w", errCtx, opts.output, ErrStale,
			)
		}

		return nil
	}

	if upToDate {
		logger.Info("bundle up to date", "path", opts.output)
		return nil
	}

	err = os.WriteFile( //nolint:gosec // path from CLI flag
		opts.output, []byte(result), 0o666,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	logger.Info(
		"bundle written",
		"path", opts.output,
		"digest", digester.Sum([]byte(result)),
	)

	return nil
}

func main() {
	if err := run(
		os.Args[1:], os.Stdout, slog.Default(),
	); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}

		slog.Error(err.Error())
		os.Exit(1)
	}
}
