package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/huangsam/codequal/core/plugin"
	"github.com/huangsam/codequal/internal/contract"
	"github.com/huangsam/codequal/schema"
	"golang.org/x/sync/errgroup"
)

// Analyzer drives analysis runs. The zero value is not usable; build one
// with NewAnalyzer and adjust the exported fields before calling Run.
type Analyzer struct {
	Registry *plugin.Registry
	Runner   contract.ToolRunner

	// Observer is notified as units finish. With Workers > 1 it is called
	// from several goroutines.
	Observer contract.Observer

	// Cache stores per-file scores. Nil disables caching.
	Cache contract.CacheStore

	// Workers bounds concurrent PerFile invocations.
	Workers int

	// Excludes are patterns matched against paths relative to the root.
	Excludes []string

	// Tools overrides the external tool per language id.
	Tools map[string]contract.ToolOverride
}

// fileResult is the outcome of scoring one file.
type fileResult struct {
	score float64
	found bool
	lines int
}

// NewAnalyzer returns a sequential analyzer over the built-in plugins.
func NewAnalyzer(runner contract.ToolRunner) *Analyzer {
	return &Analyzer{
		Registry: plugin.Default(),
		Runner:   runner,
		Observer: noopObserver{},
		Workers:  1,
	}
}

// Analyze runs one analysis with the local tool runner and default settings.
func Analyze(ctx context.Context, language, root string) (*schema.Report, error) {
	return NewAnalyzer(contract.NewLocalToolRunner()).Run(ctx, language, root)
}

// Plugin resolves the plugin for language with any tool override applied.
func (a *Analyzer) Plugin(language string) (*plugin.Plugin, error) {
	p, err := a.Registry.Lookup(language)
	if err != nil {
		return nil, err
	}
	if override, ok := a.Tools[p.ID]; ok {
		p = p.WithTool(override)
	}
	return p, nil
}

// Run analyzes the project at root as the given language.
// Any tool failure aborts the run and no partial report is returned.
func (a *Analyzer) Run(ctx context.Context, language, root string) (*schema.Report, error) {
	// Fail fast, before touching the file system
	p, err := a.Plugin(language)
	if err != nil {
		return nil, err
	}

	var (
		entries  []schema.ScoreEntry
		totalLOC int
	)
	switch p.Mode {
	case schema.PerFileMode:
		entries, totalLOC, err = a.runPerFile(ctx, p, root)
	case schema.WholeProjectMode:
		entries, totalLOC, err = a.runWholeProject(ctx, p, root)
	default:
		err = fmt.Errorf("%w: %q", contract.ErrUnknownAnalysisMode, p.Mode)
	}
	if err != nil {
		return nil, err
	}

	summary := Summarize(entries, totalLOC)
	RankEntries(entries)

	return &schema.Report{
		Language:   p.ID,
		Root:       root,
		Mode:       p.Mode,
		Tool:       p.Command(),
		Bands:      p.Bands,
		Summary:    summary,
		FileScores: entries,
	}, nil
}

// locate finds the plugin's files under root, minus excluded paths.
func (a *Analyzer) locate(p *plugin.Plugin, root string) []string {
	files := p.Locate(root)
	if len(a.Excludes) == 0 {
		return files
	}
	kept := files[:0]
	for _, f := range files {
		if !contract.ShouldIgnore(relativePath(root, f), a.Excludes) {
			kept = append(kept, f)
		}
	}
	return kept
}

// runPerFile invokes the tool once per file. Results land in discovery-order
// slots, so the outcome matches a sequential run for any worker count.
func (a *Analyzer) runPerFile(ctx context.Context, p *plugin.Plugin, root string) ([]schema.ScoreEntry, int, error) {
	files := a.locate(p, root)
	if len(files) == 0 {
		return nil, 0, contract.ErrNoSourceFiles
	}
	contract.LogDebug("scoring files", "language", p.ID, "files", len(files), "workers", a.workers())

	obs := a.observer()
	obs.OnStart(len(files))
	defer obs.OnFinish()

	results := make([]fileResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers())
	for i, f := range files {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := a.scoreFile(gctx, p, f)
			if err != nil {
				return err
			}
			results[i] = res
			obs.OnUnitProcessed(f)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	// A cancellation before the first slot started leaves g.Wait with nothing to report
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	var (
		entries  []schema.ScoreEntry
		totalLOC int
	)
	for i, res := range results {
		if !res.found {
			contract.LogDebug("no score in tool output", "file", files[i])
			continue
		}
		entries = append(entries, schema.ScoreEntry{Path: files[i], Score: res.score, Lines: res.lines})
		totalLOC += res.lines
	}
	return entries, totalLOC, nil
}

// scoreFile returns the score of one file, from the cache when possible.
func (a *Analyzer) scoreFile(ctx context.Context, p *plugin.Plugin, path string) (fileResult, error) {
	content, readErr := os.ReadFile(path)

	var key string
	if a.Cache != nil && readErr == nil {
		key = scoreCacheKey(p, content)
		if cached, ok := checkScoreCache(a.Cache, key); ok {
			return newFileResult(cached, content, readErr), nil
		}
	}

	raw, err := p.Invoke(ctx, a.Runner, path)
	if err != nil {
		return fileResult{}, err
	}
	score, found := p.ParseFile(raw)
	cached := schema.CachedScore{Score: score, Found: found}
	if key != "" {
		storeScore(a.Cache, key, cached)
	}
	return newFileResult(cached, content, readErr), nil
}

// newFileResult pairs a score with the line count of the file it came from.
// Files without a score contribute no lines.
func newFileResult(cached schema.CachedScore, content []byte, readErr error) fileResult {
	res := fileResult{score: cached.Score, found: cached.Found}
	if res.found && readErr == nil {
		res.lines = countLines(content)
	}
	return res
}

// runWholeProject invokes the tool once for the whole root. Total LOC comes
// from the locator, independent of which paths the tool reported.
func (a *Analyzer) runWholeProject(ctx context.Context, p *plugin.Plugin, root string) ([]schema.ScoreEntry, int, error) {
	files := a.locate(p, root)
	if len(files) == 0 {
		return nil, 0, contract.ErrNoSourceFiles
	}
	contract.LogDebug("scoring project", "language", p.ID, "root", root)

	obs := a.observer()
	obs.OnStart(1)
	defer obs.OnFinish()

	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	raw, err := p.Invoke(ctx, a.Runner, root)
	if err != nil {
		return nil, 0, err
	}
	obs.OnUnitProcessed(root)

	linesByPath := make(map[string]int, len(files))
	totalLOC := 0
	for _, f := range files {
		lines := CountLines(f)
		linesByPath[relativePath(root, f)] = lines
		totalLOC += lines
	}

	reported := p.ParseProject(raw)
	entries := make([]schema.ScoreEntry, 0, len(reported))
	for _, e := range reported {
		rel := reportedPath(root, e.Path)
		if contract.ShouldIgnore(rel, a.Excludes) {
			continue
		}
		if lines, ok := linesByPath[rel]; ok {
			e.Lines = lines
		} else {
			contract.LogDebug("reported path not among located files", "path", e.Path)
		}
		entries = append(entries, e)
	}
	return entries, totalLOC, nil
}

// workers returns the effective worker count.
func (a *Analyzer) workers() int {
	if a.Workers < 1 {
		return 1
	}
	return a.Workers
}

// observer returns the configured observer or a no-op one.
func (a *Analyzer) observer() contract.Observer {
	if a.Observer == nil {
		return noopObserver{}
	}
	return a.Observer
}

// relativePath expresses a located path relative to root with forward slashes.
func relativePath(root, path string) string {
	if rel, err := filepath.Rel(root, path); err == nil {
		path = rel
	}
	return filepath.ToSlash(path)
}

// reportedPath normalizes a tool-reported path. Tools run inside root, so
// relative paths are already relative to it.
func reportedPath(root, path string) string {
	if filepath.IsAbs(path) {
		return relativePath(root, path)
	}
	return filepath.ToSlash(filepath.Clean(path))
}

// noopObserver ignores all progress notifications.
type noopObserver struct{}

func (noopObserver) OnStart(int)            {}
func (noopObserver) OnUnitProcessed(string) {}
func (noopObserver) OnFinish()              {}
