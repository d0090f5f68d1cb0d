package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spaghettifunk/ember/engine/core"
	"golang.org/x/exp/slices"
)

var (
	ErrServerClosed  = errors.New("asset server closed")
	ErrAssetNotFound = errors.New("asset not found")
	ErrNoLoader      = errors.New("no loader registered")
)

// Loader turns the file at path into an in-memory asset.
type Loader interface {
	Load(path string) (any, error)
	Unload(data any) error
}

type Info struct {
	Path       string
	Type       ResourceType
	ModifiedAt time.Time
}

// Asset is a loaded index entry. Data is whatever the loader returned.
type Asset struct {
	Info
	LoadedAt time.Time
	Data     any
}

// Server indexes the files under a root directory and loads them on demand
// through the loader registered for their type. Paths are relative to the
// root and slash separated.
type Server struct {
	root string

	mutex   sync.RWMutex
	index   map[string]Info
	loaded  map[string]*Asset
	loaders map[ResourceType]Loader
	changes []Change

	watcher  *fsnotify.Watcher
	done     chan struct{}
	wg       sync.WaitGroup
	isClosed bool
}

// NewServer indexes every file under root with a known resource type.
func NewServer(root string) (*Server, error) {
	fi, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("asset root: %w", err)
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("asset root %s is not a directory", root)
	}

	s := &Server{
		root:    root,
		index:   make(map[string]Info),
		loaded:  make(map[string]*Asset),
		loaders: make(map[ResourceType]Loader),
		done:    make(chan struct{}),
	}
	if err := s.walk(root, func(path string) error { s.indexFile(path); return nil }); err != nil {
		return nil, err
	}
	core.LogDebug("indexed %d assets under %s", len(s.index), root)
	return s, nil
}

func (s *Server) Root() string {
	return s.root
}

func (s *Server) RegisterLoader(t ResourceType, loader Loader) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.loaders[t] = loader
}

// Watch starts reindexing the root as files change. Changes are queued and
// handed out by Poll.
func (s *Server) Watch() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.isClosed {
		return ErrServerClosed
	}
	if s.watcher != nil {
		return nil
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	s.watcher = w

	if err := s.walk(s.root, nil); err != nil {
		w.Close()
		s.watcher = nil
		return err
	}

	s.wg.Add(1)
	go s.start()
	return nil
}

// Info returns the index entry of path.
func (s *Server) Info(path string) (Info, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	info, ok := s.index[filepath.ToSlash(path)]
	return info, ok
}

// Paths lists the indexed paths in lexical order.
func (s *Server) Paths() []string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	paths := make([]string, 0, len(s.index))
	for path := range s.index {
		paths = append(paths, path)
	}
	slices.Sort(paths)
	return paths
}

// Load returns the asset at path, loading it if it was never loaded or the
// file changed since.
func (s *Server) Load(path string) (*Asset, error) {
	path = filepath.ToSlash(path)

	s.mutex.RLock()
	info, exists := s.index[path]
	cached := s.loaded[path]
	loader := s.loaders[info.Type]
	s.mutex.RUnlock()

	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, path)
	}
	if cached != nil && !cached.ModifiedAt.Before(info.ModifiedAt) {
		return cached, nil
	}
	if loader == nil {
		return nil, fmt.Errorf("%w for %s assets: %s", ErrNoLoader, info.Type, path)
	}

	data, err := loader.Load(filepath.Join(s.root, filepath.FromSlash(path)))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	asset := &Asset{Info: info, LoadedAt: time.Now(), Data: data}

	s.mutex.Lock()
	s.loaded[path] = asset
	s.mutex.Unlock()

	if cached != nil {
		_ = loader.Unload(cached.Data)
	}
	core.LogDebug("loaded %s %s", info.Type, path)
	return asset, nil
}

// Unload drops the cached asset at path.
func (s *Server) Unload(path string) error {
	path = filepath.ToSlash(path)

	s.mutex.Lock()
	asset, ok := s.loaded[path]
	delete(s.loaded, path)
	loader := s.loaders[asset.typeOrNone()]
	s.mutex.Unlock()

	if !ok || loader == nil {
		return nil
	}
	return loader.Unload(asset.Data)
}

// IsLoaded reports whether path has a cached asset.
func (s *Server) IsLoaded(path string) bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	_, ok := s.loaded[filepath.ToSlash(path)]
	return ok
}

// Poll returns the changes observed since the last call, oldest first.
func (s *Server) Poll() []Change {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	changes := s.changes
	s.changes = nil
	return changes
}

// Close stops the watcher and unloads every cached asset.
func (s *Server) Close() error {
	s.mutex.Lock()
	if s.isClosed {
		s.mutex.Unlock()
		return nil
	}
	s.isClosed = true
	close(s.done)
	s.mutex.Unlock()

	s.wg.Wait()

	s.mutex.Lock()
	defer s.mutex.Unlock()

	var errs []error
	if s.watcher != nil {
		errs = append(errs, s.watcher.Close())
	}
	for path, asset := range s.loaded {
		if loader := s.loaders[asset.Type]; loader != nil {
			errs = append(errs, loader.Unload(asset.Data))
		}
		delete(s.loaded, path)
	}
	return errors.Join(errs...)
}

func (s *Server) start() {
	defer s.wg.Done()

	for {
		select {
		case e, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			s.handleEvent(e)

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			core.LogError("asset watcher: %s", err)

		case <-s.done:
			return
		}
	}
}

func (s *Server) handleEvent(e fsnotify.Event) {
	if e.Op&fsnotify.Create != 0 {
		if fi, err := os.Stat(e.Name); err == nil && fi.IsDir() {
			s.mutex.Lock()
			err := s.walk(e.Name, func(path string) error {
				s.record(path)
				return nil
			})
			s.mutex.Unlock()
			if err != nil {
				core.LogWarn("watch %s: %s", e.Name, err)
			}
			return
		}
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	switch {
	case e.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Chmod) != 0:
		s.record(e.Name)
	case e.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		s.forget(e.Name)
	}
}

// walk visits the files under dir, adding every directory to the watcher
// when one is running. Callers hold the mutex or own s exclusively.
func (s *Server) walk(dir string, visit func(path string) error) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if s.watcher != nil {
				return s.watcher.Add(path)
			}
			return nil
		}
		if visit != nil {
			return visit(path)
		}
		return nil
	})
}

func (s *Server) rel(path string) (string, bool) {
	rel, err := filepath.Rel(s.root, path)
	if err != nil {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

func (s *Server) indexFile(path string) (Info, bool) {
	t := DetermineType(path)
	if t == ResourceTypeNone {
		return Info{}, false
	}
	rel, ok := s.rel(path)
	if !ok {
		return Info{}, false
	}
	fi, err := os.Stat(path)
	if err != nil {
		return Info{}, false
	}
	info := Info{Path: rel, Type: t, ModifiedAt: fi.ModTime()}
	s.index[rel] = info
	return info, true
}

func (s *Server) record(path string) {
	rel, ok := s.rel(path)
	if !ok {
		return
	}
	_, existed := s.index[rel]
	info, ok := s.indexFile(path)
	if !ok {
		return
	}
	op := Created
	if existed {
		op = Modified
	}
	s.changes = append(s.changes, Change{Path: info.Path, Type: info.Type, Op: op})
}

func (s *Server) forget(path string) {
	rel, ok := s.rel(path)
	if !ok {
		return
	}
	info, ok := s.index[rel]
	if !ok {
		return
	}
	delete(s.index, rel)
	s.changes = append(s.changes, Change{Path: rel, Type: info.Type, Op: Removed})
}

func (a *Asset) typeOrNone() ResourceType {
	if a == nil {
		return ResourceTypeNone
	}
	return a.Type
}
