package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/desertthunder/ytspin/internal/models"
	"github.com/desertthunder/ytspin/internal/shared"
	"github.com/desertthunder/ytspin/internal/spinner"
	"golang.org/x/time/rate"
)

const (
	defaultWorkers   = 4
	maxWorkers       = 16
	defaultFileRate  = 50.0
	DefaultFilesGlob = "**/*.txt"
)

// FilesOpts contains configuration for bulk file expansion.
type FilesOpts struct {
	Kind      models.Kind // Decides the delimiter files are split with
	Seed      uint64      // Base seed; file i uses Seed+i so output does not depend on scheduling
	Workers   int         // Concurrent workers (default: 4, max: 16)
	RateLimit float64     // Files read per second (default: 50)
}

// FileResult is the outcome of expanding one file.
type FileResult struct {
	Path     string
	Variants []string
	Err      error
}

// FilesResult holds per-file results in the order the paths were given.
type FilesResult struct {
	Files     []FileResult
	Succeeded int
	Failed    int
}

type fileJob struct {
	index int
	path  string
}

// LoadFiles returns the regular files under root matching a doublestar pattern such as "**/*.txt", sorted.
func LoadFiles(root, pattern string) ([]string, error) {
	if root == "" {
		root = "."
	}
	if pattern == "" {
		pattern = DefaultFilesGlob
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("%w: bad glob pattern %q", shared.ErrInvalidArgument, pattern)
	}

	matches, err := doublestar.Glob(os.DirFS(root), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("failed to glob %s in %s: %w", pattern, root, err)
	}
	slices.Sort(matches)

	paths := make([]string, len(matches))
	for i, m := range matches {
		paths[i] = filepath.Join(root, filepath.FromSlash(m))
	}
	return paths, nil
}

// ExpandFiles expands every file in paths concurrently with rate limiting and progress tracking.
//
// A file that cannot be read or expanded is recorded as failed; the others still complete.
func (g *Generator) ExpandFiles(ctx context.Context, progress chan<- ProgressUpdate, paths []string, opts FilesOpts) (*FilesResult, error) {
	if opts.Workers <= 0 {
		opts.Workers = defaultWorkers
	}
	if opts.Workers > maxWorkers {
		opts.Workers = maxWorkers
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = defaultFileRate
	}
	if opts.Kind == "" {
		opts.Kind = models.Titles
	}

	result := &FilesResult{Files: make([]FileResult, len(paths))}
	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	jobs := make(chan fileJob, len(paths))
	results := make(chan fileJob, len(paths))

	var wg sync.WaitGroup
	for range opts.Workers {
		wg.Add(1)
		go g.fileWorker(ctx, &wg, jobs, results, result.Files, opts)
	}

	go func() {
		defer close(jobs)
		for i, path := range paths {
			if err := limiter.Wait(ctx); err != nil {
				return
			}
			jobs <- fileJob{index: i, path: path}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for job := range results {
		completed++
		res := result.Files[job.index]
		if res.Err != nil {
			result.Failed++
		} else {
			result.Succeeded++
		}
		g.sendProgress(progress, fileExpandedUpdate(completed, len(paths), res))
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// fileWorker writes each result into its own slot of out, then reports the job as done.
func (g *Generator) fileWorker(ctx context.Context, wg *sync.WaitGroup, jobs <-chan fileJob, done chan<- fileJob, out []FileResult, opts FilesOpts) {
	defer wg.Done()

	for job := range jobs {
		if ctx.Err() != nil {
			return
		}
		out[job.index] = expandFile(job, opts)
		done <- job
	}
}

func expandFile(job fileJob, opts FilesOpts) FileResult {
	res := FileResult{Path: job.path}

	data, err := os.ReadFile(job.path)
	if err != nil {
		res.Err = fmt.Errorf("failed to read file: %w", err)
		return res
	}

	src := spinner.DefaultSource()
	if opts.Seed != 0 {
		src = spinner.NewSource(opts.Seed + uint64(job.index))
	}

	res.Variants, res.Err = spinner.ExpandBatch(string(data), opts.Kind.Delimiter(), src)
	return res
}
