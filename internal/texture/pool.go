package texture

import (
	"errors"
	"fmt"
	"sync"

	"scenery/internal/logging"
	"scenery/internal/profiling"
)

var (
	// ErrNotFound is returned when no suffix of a path exists under the pool directory.
	ErrNotFound = errors.New("texture: no matching file")
	// ErrNotImage is returned when a resolved file is not a recognised image.
	ErrNotImage = errors.New("texture: not an image")
	// ErrEmptyPath is returned for blank raw paths.
	ErrEmptyPath = errors.New("texture: empty path")
)

// Uploader creates and releases backend resources for pooled textures.
type Uploader interface {
	Upload(tex *Texture) error
	Release(tex *Texture)
}

// Pool deduplicates texture loads. Textures are indexed by resolved absolute
// path; raw paths seen before are remembered per normalized form so repeated
// requests skip the filesystem search. At most one Texture exists per resolved
// path. Failed loads are not remembered.
type Pool struct {
	mu sync.Mutex

	directory string
	textures  []*Texture
	byPath    map[string]*Texture
	aliases   map[string]*Texture
	nextID    uint32

	loader   Loader
	uploader Uploader
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithDirectory sets the base directory searched by Load.
func WithDirectory(dir string) PoolOption {
	return func(p *Pool) { p.directory = dir }
}

// WithLoader replaces the default FileLoader.
func WithLoader(l Loader) PoolOption {
	return func(p *Pool) { p.loader = l }
}

// WithUploader sets the backend that receives each newly loaded texture.
func WithUploader(u Uploader) PoolOption {
	return func(p *Pool) { p.uploader = u }
}

// NewPool creates an empty pool.
func NewPool(opts ...PoolOption) *Pool {
	p := &Pool{
		byPath:  make(map[string]*Texture),
		aliases: make(map[string]*Texture),
		loader:  FileLoader{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SetDirectory changes the base directory. Remembered raw-path aliases are
// dropped since they may resolve differently; loaded textures are kept.
func (p *Pool) SetDirectory(dir string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.directory = dir
	clear(p.aliases)
}

// Directory returns the base directory.
func (p *Pool) Directory() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.directory
}

// SetUploader sets the backend used for subsequent loads.
func (p *Pool) SetUploader(u Uploader) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.uploader = u
}

// Load resolves rawPath against the pool directory and returns the pooled
// texture for it, loading it on first use.
//
// rawPath is normalized first; a previously seen normalized path is served
// from the cache without touching the filesystem. Otherwise successively
// shorter suffixes of the path are tried under the directory and the first
// existing file wins. A texture already loaded from that file is returned as
// is. On any failure the pool is left unchanged and (nil, err) is returned.
func (p *Pool) Load(rawPath string) (*Texture, error) {
	defer profiling.Track("texture.Load")()

	normalized := NormalizePath(rawPath)
	if normalized == "" {
		return nil, ErrEmptyPath
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	log := logging.Logger()
	if tex, ok := p.aliases[normalized]; ok {
		log.Debug("texture cache hit", "path", normalized, "id", tex.ID)
		return tex, nil
	}

	resolved, err := Resolve(p.directory, normalized)
	if err != nil {
		log.Warn("texture not found", "path", rawPath, "directory", p.directory)
		return nil, fmt.Errorf("resolve %q: %w", rawPath, err)
	}

	if tex, ok := p.byPath[resolved]; ok {
		log.Debug("texture cache hit", "path", resolved, "id", tex.ID)
		p.aliases[normalized] = tex
		return tex, nil
	}

	img, err := p.loader.Load(resolved)
	if err != nil {
		log.Warn("texture load failed", "path", resolved, "err", err)
		return nil, err
	}
	return p.register(resolved, normalized, img)
}

// register uploads img and indexes it under resolved and normalized.
// The caller holds p.mu.
func (p *Pool) register(resolved, normalized string, img *Image) (*Texture, error) {
	tex := &Texture{
		ID:     p.nextID + 1,
		Path:   resolved,
		Width:  img.Width,
		Height: img.Height,
		Format: FormatForChannels(img.Channels),
		Pixels: img.Pix,
	}
	if p.uploader != nil {
		if err := p.uploader.Upload(tex); err != nil {
			logging.Logger().Warn("texture upload failed", "path", resolved, "err", err)
			return nil, fmt.Errorf("upload %s: %w", resolved, err)
		}
	}

	p.nextID++
	p.textures = append(p.textures, tex)
	p.byPath[resolved] = tex
	p.aliases[normalized] = tex
	logging.Logger().Info("texture loaded", "path", resolved, "id", tex.ID, "width", tex.Width, "height", tex.Height, "format", tex.Format)
	return tex, nil
}

// Get returns the texture loaded from a resolved absolute path, or nil.
func (p *Pool) Get(resolved string) *Texture {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.byPath[resolved]
}

// Textures returns the pooled textures in load order.
func (p *Pool) Textures() []*Texture {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]*Texture, len(p.textures))
	copy(out, p.textures)
	return out
}

// Len returns the number of pooled textures.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.textures)
}

// Remove releases and forgets the texture loaded from a resolved path.
// It reports whether a texture was removed.
func (p *Pool) Remove(resolved string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	tex, ok := p.byPath[resolved]
	if !ok {
		return false
	}
	delete(p.byPath, resolved)
	for k, v := range p.aliases {
		if v == tex {
			delete(p.aliases, k)
		}
	}
	for i, t := range p.textures {
		if t == tex {
			p.textures = append(p.textures[:i], p.textures[i+1:]...)
			break
		}
	}
	if p.uploader != nil {
		p.uploader.Release(tex)
	}
	return true
}

// Release frees every pooled texture through the uploader and empties the pool.
func (p *Pool) Release() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.uploader != nil {
		for _, tex := range p.textures {
			p.uploader.Release(tex)
		}
	}
	p.textures = nil
	clear(p.byPath)
	clear(p.aliases)
}
