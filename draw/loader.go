package draw

import (
	"fmt"
	"io/fs"

	// Register the PNG decoder for tileset and character sheets.
	_ "image/png"

	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	lru "github.com/hashicorp/golang-lru/v2"
)

// Loader decodes image files from a file system and keeps the most recently
// used ones in memory.
type Loader struct {
	fsys  fs.FS
	cache *lru.Cache[string, Drawing]
}

// NewLoader returns a loader over fsys holding up to size decoded surfaces.
func NewLoader(fsys fs.FS, size int) (*Loader, error) {
	cache, err := lru.New[string, Drawing](size)
	if err != nil {
		return nil, fmt.Errorf("draw: loader cache: %w", err)
	}
	return &Loader{fsys: fsys, cache: cache}, nil
}

// Load returns the drawing stored at path, decoding it on a cache miss.
func (l *Loader) Load(path string) (Drawing, error) {
	if d, ok := l.cache.Get(path); ok {
		return d, nil
	}
	img, src, err := ebitenutil.NewImageFromFileSystem(l.fsys, path)
	if err != nil {
		return Drawing{}, fmt.Errorf("draw: load %s: %w", path, err)
	}
	d := Drawing{img: img, src: src, alpha: 255}
	l.cache.Add(path, d)
	return d, nil
}

// MustLoad is Load for assets that ship with the game.
func (l *Loader) MustLoad(path string) Drawing {
	d, err := l.Load(path)
	if err != nil {
		panic("thicket: " + err.Error())
	}
	return d
}

// Cached reports whether path is currently held in memory.
func (l *Loader) Cached(path string) bool { return l.cache.Contains(path) }

// Len returns the number of cached surfaces.
func (l *Loader) Len() int { return l.cache.Len() }
