package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	md2man "github.com/alnah/go-md2man"
	"github.com/alnah/go-md2man/internal/fileutil"
)

// ErrWriteOutput is returned when a rendered page cannot be written.
var ErrWriteOutput = errors.New("failed to write output file")

// buildParams groups the renderers shared by all build workers.
// A nil engine disables its output format.
type buildParams struct {
	roff         *md2man.Engine
	html         *md2man.Engine
	page         *md2man.PageBuilder // Non-nil for standalone HTML pages
	rewritePaths bool                // Output dir differs from input dir
}

// BuildResult holds the outcome of a single page build.
type BuildResult struct {
	Page        PageToBuild
	Outputs     []string
	Description string // NAME summary, set when HTML was rendered
	Err         error
	Duration    time.Duration
}

// buildBatch renders pages concurrently with the given number of workers.
// Pages not yet started when ctx is canceled fail with ctx.Err().
func buildBatch(ctx context.Context, workers int, pages []PageToBuild, params *buildParams) []BuildResult {
	if len(pages) == 0 {
		return nil
	}

	concurrency := workers
	if concurrency < 1 {
		concurrency = 1
	}
	if concurrency > len(pages) {
		concurrency = len(pages)
	}

	results := make([]BuildResult, len(pages))
	var wg sync.WaitGroup
	jobs := make(chan int, len(pages))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = BuildResult{Page: pages[idx], Err: ctx.Err()}
					continue
				}
				results[idx] = buildPage(pages[idx], params)
			}
		}()
	}

	for i := range pages {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// buildPage renders one source to every enabled format.
func buildPage(p PageToBuild, params *buildParams) BuildResult {
	start := time.Now()
	result := BuildResult{Page: p}
	finish := func(err error) BuildResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	content, err := os.ReadFile(p.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		return finish(fmt.Errorf("%w: %v", ErrReadSource, err))
	}
	source := string(content)

	if params.roff != nil {
		out, err := params.roff.Render(source)
		if err != nil {
			return finish(err)
		}
		if err := fileutil.WriteFileAtomic(p.RoffPath, out); err != nil {
			return finish(fmt.Errorf("%w: %v", ErrWriteOutput, err))
		}
		result.Outputs = append(result.Outputs, p.RoffPath)
	}

	if params.html != nil {
		out, desc, err := renderHTMLPage(p, source, params)
		if err != nil {
			return finish(err)
		}
		if err := fileutil.WriteFileAtomic(p.HTMLPath, out); err != nil {
			return finish(fmt.Errorf("%w: %v", ErrWriteOutput, err))
		}
		result.Outputs = append(result.Outputs, p.HTMLPath)
		result.Description = desc
	}

	return finish(nil)
}

// renderHTMLPage renders the HTML output of a page and its NAME summary.
func renderHTMLPage(p PageToBuild, source string, params *buildParams) (string, string, error) {
	doc, err := params.html.RenderDocument(source)
	if err != nil {
		return "", "", err
	}
	desc := md2man.ExtractDescription(doc.Output)

	if params.rewritePaths {
		doc.Output, err = md2man.RewriteRelativePaths(doc.Output, filepath.Dir(p.InputPath), filepath.Dir(p.HTMLPath))
		if err != nil {
			return "", "", fmt.Errorf("rewriting paths: %w", err)
		}
	}

	if params.page == nil {
		return doc.Output, desc, nil
	}
	page, err := params.page.Build(doc)
	if err != nil {
		return "", "", err
	}
	return page, desc, nil
}

// ResultSummary holds the count of succeeded and failed pages.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed pages.
func countResults(results []BuildResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printResults outputs build results and returns the failure count.
func printResults(results []BuildResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.Page.InputPath, r.Err)
			continue
		}

		if quiet {
			continue
		}

		for _, out := range r.Outputs {
			if verbose {
				fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.Page.InputPath, out, r.Duration.Round(time.Millisecond))
			} else {
				fmt.Fprintf(env.Stdout, "Created %s\n", out)
			}
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed
}
