// Package tilemap turns Tiled TMX maps into drawable layers and collisions.
//
// A [Parser] decodes TMX files with go-tiled and keeps recently used maps,
// and the loaders built from them, in LRUs. A [Loader] buckets the tile layers into background, foreground and
// above-character drawings, groups connected foreground tiles so a tall tree
// sorts against characters as one unit, and collects collision areas from
// tile colliders and collision objects.
package tilemap

import (
	"fmt"
	"io/fs"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/lafriks/go-tiled"

	"github.com/phanxgames/thicket/config"
	"github.com/phanxgames/thicket/draw"
)

// Parser decodes TMX files from a file system.
type Parser struct {
	fsys    fs.FS
	cache   *lru.Cache[string, *tiled.Map]
	loaders *lru.Cache[loaderKey, Loader]
}

// loaderKey identifies a built loader. The same map built with other layer
// names or another image loader is a different loader.
type loaderKey struct {
	path   string
	cfg    config.Map
	images *draw.Loader
}

// NewParser reads maps from fsys, or the working directory when fsys is nil,
// keeping up to size parsed maps and size built loaders.
func NewParser(fsys fs.FS, size int) (*Parser, error) {
	cache, err := lru.New[string, *tiled.Map](max(size, 1))
	if err != nil {
		return nil, fmt.Errorf("tilemap: parser cache: %w", err)
	}
	loaders, err := lru.New[loaderKey, Loader](max(size, 1))
	if err != nil {
		return nil, fmt.Errorf("tilemap: loader cache: %w", err)
	}
	return &Parser{fsys: fsys, cache: cache, loaders: loaders}, nil
}

// Parse returns the map at path, decoding it on first use.
func (p *Parser) Parse(path string) (*tiled.Map, error) {
	if m, ok := p.cache.Get(path); ok {
		return m, nil
	}
	var opts []tiled.LoaderOption
	if p.fsys != nil {
		opts = append(opts, tiled.WithFileSystem(p.fsys))
	}
	m, err := tiled.LoadFile(path, opts...)
	if err != nil {
		return nil, fmt.Errorf("tilemap: parse %s: %w", path, err)
	}
	p.cache.Add(path, m)
	return m, nil
}

// Cached reports whether path is in the cache.
func (p *Parser) Cached(path string) bool { return p.cache.Contains(path) }

// CachedLoader reports whether a loader for path built with cfg and images
// is in the cache.
func (p *Parser) CachedLoader(path string, images *draw.Loader, cfg config.Map) bool {
	return p.loaders.Contains(loaderKey{path, cfg, images})
}
