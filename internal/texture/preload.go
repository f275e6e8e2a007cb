package texture

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"scenery/internal/logging"
	"scenery/internal/profiling"
)

// Preload loads a batch of raw paths, decoding the new files in parallel.
// Uploads and pool bookkeeping happen on the calling goroutine in the order
// the paths were given, so IDs match what sequential Load calls would assign.
// Paths that are already pooled are skipped. It returns the number of newly
// pooled textures and the joined errors of the paths that failed; a failed
// path leaves the pool unchanged.
func (p *Pool) Preload(ctx context.Context, rawPaths []string) (int, error) {
	defer profiling.Track("texture.Preload")()

	type pending struct {
		normalized, resolved string
	}

	var errs []error
	var todo []pending
	queued := make(map[string]bool)

	p.mu.Lock()
	dir := p.directory
	for _, raw := range rawPaths {
		normalized := NormalizePath(raw)
		if normalized == "" {
			continue
		}
		if _, ok := p.aliases[normalized]; ok {
			continue
		}
		resolved, err := Resolve(dir, normalized)
		if err != nil {
			errs = append(errs, fmt.Errorf("resolve %q: %w", raw, err))
			continue
		}
		if tex, ok := p.byPath[resolved]; ok {
			p.aliases[normalized] = tex
			continue
		}
		todo = append(todo, pending{normalized: normalized, resolved: resolved})
	}
	loader := p.loader
	p.mu.Unlock()

	if len(todo) == 0 {
		return 0, errors.Join(errs...)
	}

	decoder := NewDecoder(loader, min(runtime.NumCPU(), len(todo)), len(todo))

	results := make(chan DecodeResult, len(todo))
	submitted := 0
	for _, t := range todo {
		if queued[t.resolved] {
			continue
		}
		if err := decoder.Submit(ctx, DecodeJob{Path: t.resolved, Result: results}); err != nil {
			errs = append(errs, err)
			break
		}
		queued[t.resolved] = true
		submitted++
	}

	decoded := make(map[string]DecodeResult, submitted)
	for range submitted {
		select {
		case r := <-results:
			decoded[r.Path] = r
		case <-ctx.Done():
			// workers may still be inside the loader
			go decoder.Shutdown()
			errs = append(errs, ctx.Err())
			return 0, errors.Join(errs...)
		}
	}
	decoder.Shutdown()

	p.mu.Lock()
	defer p.mu.Unlock()

	log := logging.Logger()
	loaded := 0
	for _, t := range todo {
		if tex, ok := p.byPath[t.resolved]; ok {
			p.aliases[t.normalized] = tex
			continue
		}
		r, ok := decoded[t.resolved]
		if !ok {
			continue
		}
		if r.Err != nil {
			log.Warn("texture load failed", "path", t.resolved, "err", r.Err)
			errs = append(errs, r.Err)
			continue
		}
		if _, err := p.register(t.resolved, t.normalized, r.Image); err != nil {
			errs = append(errs, err)
			continue
		}
		loaded++
	}
	return loaded, errors.Join(errs...)
}
