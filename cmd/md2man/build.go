package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	md2man "github.com/alnah/go-md2man"
	"github.com/alnah/go-md2man/internal/config"
	"github.com/alnah/go-md2man/internal/fileutil"
	"github.com/alnah/go-md2man/internal/hints"
	"github.com/alnah/go-md2man/internal/yamlutil"
)

// Sentinel errors for the build command.
var (
	ErrNoInput = errors.New("no input directory specified")
	ErrNoPages = errors.New("no manual pages found")
)

// indexTitle is the level-1 heading of a standalone index page.
const indexTitle = "Manual pages"

// runBuild renders a manual source tree.
func runBuild(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseBuildFlags(args, env.Stderr)
	if err != nil {
		return usageError(err)
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: build takes at most one directory", ErrTooManyArgs)
	}
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	envCfg := loadEnvConfig()
	warnUnknownEnvVars(env.Stderr)

	cfg, err := loadBuildConfig(flags.common.config, envCfg, env)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	inputDir, err := resolveInputDir(positional, cfg)
	if err != nil {
		return err
	}
	if !fileutil.DirExists(inputDir) {
		return fmt.Errorf("%w: %s is not a directory", ErrNoInput, inputDir)
	}
	outputDir := resolveOutputDir(cfg, inputDir)

	pages, err := discoverPages(inputDir, outputDir)
	if err != nil {
		return fmt.Errorf("discovering pages: %w", err)
	}
	if len(pages) == 0 {
		return fmt.Errorf("%w in %s%s", ErrNoPages, inputDir, hints.ForNoPages(inputDir))
	}

	if flags.common.verbose {
		printEffectiveConfig(cfg, env)
	}

	params, err := newBuildParams(cfg, inputDir, outputDir)
	if err != nil {
		return err
	}

	poolSize := resolvePoolSize(cfg.Output.Workers)
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Pool size: %d\n", poolSize)
	}

	results := buildBatch(ctx, poolSize, pages, params)
	failedCount := printResults(results, flags.common.quiet, flags.common.verbose, env)

	if ctx.Err() != nil {
		return fmt.Errorf("build interrupted: %w", ctx.Err())
	}

	if params.html != nil && cfg.Output.IndexEnabled() {
		if err := writeIndex(results, outputDir, params.page, flags.common.quiet, env); err != nil {
			return err
		}
	}

	if failedCount > 0 {
		return fmt.Errorf("%d page(s) failed", failedCount)
	}
	return nil
}

// loadBuildConfig loads the named config, the MD2MAN_CONFIG one, or the
// environment default.
func loadBuildConfig(name string, envCfg *envConfig, env *Environment) (*config.Config, error) {
	if name == "" {
		name = envCfg.ConfigPath
	}
	if name == "" {
		if env.Config == nil {
			return config.DefaultConfig(), nil
		}
		cfg := *env.Config
		return &cfg, nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(configSearchPaths(name)))
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// configSearchPaths lists the user config locations tried for name.
// Explicit paths are not searched.
func configSearchPaths(name string) []string {
	if fileutil.IsFilePath(name) {
		return nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil
	}
	return []string{filepath.Join(dir, config.AppName, name+".yaml")}
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *buildFlags, cfg *config.Config) {
	if flags.output != "" {
		cfg.Output.Dir = flags.output
	}
	if flags.workers > 0 {
		cfg.Output.Workers = flags.workers
	}
	if flags.html.highlight != "" {
		cfg.HTML.Highlight = flags.html.highlight
	}
	if flags.html.standalone {
		cfg.HTML.Standalone = true
	}
	if flags.html.assetPath != "" {
		cfg.Assets.BasePath = flags.html.assetPath
	}

	// Disable flags
	disabled := false
	if flags.outputs.noRoff {
		cfg.Output.Roff = &disabled
	}
	if flags.outputs.noHTML {
		cfg.Output.HTML = &disabled
	}
	if flags.outputs.noIndex {
		cfg.Output.Index = &disabled
	}
}

// resolveInputDir determines the manual source tree from args or config.
func resolveInputDir(args []string, cfg *config.Config) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Input.Dir != "" {
		return cfg.Input.Dir, nil
	}
	return "", ErrNoInput
}

// resolveOutputDir determines the output directory, defaulting to the
// source tree.
func resolveOutputDir(cfg *config.Config, inputDir string) string {
	if cfg.Output.Dir != "" {
		return cfg.Output.Dir
	}
	return inputDir
}

// newBuildParams creates the engines and page builder a build needs.
func newBuildParams(cfg *config.Config, inputDir, outputDir string) (*buildParams, error) {
	params := &buildParams{
		rewritePaths: filepath.Clean(inputDir) != filepath.Clean(outputDir),
	}

	if cfg.Output.RoffEnabled() {
		engine, err := md2man.NewRoffEngine()
		if err != nil {
			return nil, err
		}
		params.roff = engine
	}

	if !cfg.Output.HTMLEnabled() {
		return params, nil
	}

	engine, err := md2man.NewHTMLEngine(md2man.WithHighlighting(cfg.HTML.Highlight))
	if err != nil {
		return nil, withHighlightHint(err)
	}
	params.html = engine

	if cfg.HTML.Standalone {
		builder, err := md2man.NewPageBuilder(
			md2man.WithAssetPath(cfg.Assets.BasePath),
			md2man.WithPageHighlighting(cfg.HTML.Highlight),
		)
		if err != nil {
			if errors.Is(err, md2man.ErrInvalidAssetPath) {
				return nil, fmt.Errorf("%w%s", err, hints.ForAssetsPath())
			}
			return nil, err
		}
		params.page = builder
	}

	return params, nil
}

// writeIndex writes <outputDir>/index.html listing the pages built and a
// redirect index.html in each section directory.
func writeIndex(results []BuildResult, outputDir string, page *md2man.PageBuilder, quiet bool, env *Environment) error {
	sections := indexSections(results)
	if len(sections) == 0 {
		return nil
	}

	var content string
	if page != nil {
		var err error
		if content, err = page.Build(md2man.BuildIndexDocument(indexTitle, sections)); err != nil {
			return fmt.Errorf("building index: %w", err)
		}
	} else {
		content = md2man.BuildIndex(sections)
	}

	written := []string{filepath.Join(outputDir, "index.html")}
	if err := fileutil.WriteFileAtomic(written[0], content); err != nil {
		return fmt.Errorf("%w: %v%s", ErrWriteOutput, err, hints.ForOutputDirectory())
	}
	for _, s := range sections {
		path := filepath.Join(outputDir, s.Dir, "index.html")
		if err := fileutil.WriteFileAtomic(path, md2man.BuildSectionRedirect(s.Dir)); err != nil {
			return fmt.Errorf("%w: %v%s", ErrWriteOutput, err, hints.ForOutputDirectory())
		}
		written = append(written, path)
	}

	if !quiet {
		for _, path := range written {
			fmt.Fprintf(env.Stdout, "Created %s\n", path)
		}
	}
	return nil
}

// indexSections groups successful HTML results by section directory,
// keeping discovery order.
func indexSections(results []BuildResult) []md2man.IndexSection {
	var sections []md2man.IndexSection
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		if n := len(sections); n == 0 || sections[n-1].Dir != r.Page.Section {
			sections = append(sections, md2man.IndexSection{Dir: r.Page.Section})
		}
		last := &sections[len(sections)-1]
		last.Pages = append(last.Pages, md2man.IndexPage{
			File:        filepath.Base(r.Page.HTMLPath),
			Description: r.Description,
		})
	}
	return sections
}

// printEffectiveConfig prints the merged configuration as YAML.
func printEffectiveConfig(cfg *config.Config, env *Environment) {
	data, err := yamlutil.Marshal(cfg)
	if err != nil {
		fmt.Fprintf(env.Stderr, "warning: cannot print config: %v\n", err)
		return
	}
	fmt.Fprintf(env.Stderr, "Effective config:\n%s", data)
}
