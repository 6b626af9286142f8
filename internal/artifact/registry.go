package artifact

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// DirRegistry loads <dir>/<name>.json artifacts and caches the parsed result.
type DirRegistry struct {
	dir string

	mu    sync.RWMutex
	cache map[string]Artifact
}

func NewDirRegistry(dir string) *DirRegistry {
	return &DirRegistry{dir: dir, cache: make(map[string]Artifact)}
}

func (r *DirRegistry) Resolve(name string) (Artifact, error) {
	r.mu.RLock()
	art, ok := r.cache[name]
	r.mu.RUnlock()
	if ok {
		return art, nil
	}

	path := filepath.Join(r.dir, name+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Artifact{}, fmt.Errorf("%s in %s: %w", name, r.dir, ErrArtifactNotFound)
		}
		return Artifact{}, fmt.Errorf("read artifact: %w", err)
	}

	art, err = Parse(name, data)
	if err != nil {
		return Artifact{}, err
	}

	r.mu.Lock()
	r.cache[name] = art
	r.mu.Unlock()

	return art, nil
}

// StaticRegistry serves artifacts held in memory.
type StaticRegistry map[string]Artifact

func (r StaticRegistry) Resolve(name string) (Artifact, error) {
	art, ok := r[name]
	if !ok {
		return Artifact{}, fmt.Errorf("%s: %w", name, ErrArtifactNotFound)
	}
	return art, nil
}
