package assets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

type textLoader struct {
	loads    int
	unloaded []string
}

func (l *textLoader) Load(path string) (any, error) {
	l.loads++
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *textLoader) Unload(data any) error {
	l.unloaded = append(l.unloaded, data.(string))
	return nil
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "hello.txt"), "hello")
	writeFile(t, filepath.Join(root, "nested", "deep", "notes.txt"), "notes")
	writeFile(t, filepath.Join(root, "nested", "ignored.bin"), "\x00")
	writeFile(t, filepath.Join(root, "models", "cube.obj"), "v 0 0 0")

	s, err := NewServer(root)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, root
}

func TestServerIndexesKnownTypes(t *testing.T) {
	s, _ := newTestServer(t)

	want := []string{"hello.txt", "models/cube.obj", "nested/deep/notes.txt"}
	got := s.Paths()
	if len(got) != len(want) {
		t.Fatalf("paths = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("paths = %v, want %v", got, want)
		}
	}
	if info, ok := s.Info("models/cube.obj"); !ok || info.Type != ResourceTypeModel {
		t.Fatalf("info = %+v, %v", info, ok)
	}
}

func TestNewServerRejectsBadRoot(t *testing.T) {
	if _, err := NewServer(filepath.Join(t.TempDir(), "missing")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v", err)
	}
	file := filepath.Join(t.TempDir(), "file.txt")
	writeFile(t, file, "x")
	if _, err := NewServer(file); err == nil {
		t.Fatal("a file root should be rejected")
	}
}

func TestServerLoadCachesAndUnloads(t *testing.T) {
	s, _ := newTestServer(t)
	loader := &textLoader{}
	s.RegisterLoader(ResourceTypeText, loader)

	a, err := s.Load("nested/deep/notes.txt")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if a.Data.(string) != "notes" || a.Type != ResourceTypeText {
		t.Fatalf("asset = %+v", a)
	}
	again, err := s.Load("nested/deep/notes.txt")
	if err != nil || again != a || loader.loads != 1 {
		t.Fatalf("second load should hit the cache (loads=%d, err=%v)", loader.loads, err)
	}
	if !s.IsLoaded("nested/deep/notes.txt") {
		t.Fatal("IsLoaded")
	}

	if err := s.Unload("nested/deep/notes.txt"); err != nil {
		t.Fatal(err)
	}
	if s.IsLoaded("nested/deep/notes.txt") || len(loader.unloaded) != 1 {
		t.Fatal("unload did not drop the cached asset")
	}
	if err := s.Unload("never/loaded.txt"); err != nil {
		t.Fatalf("unloading an unknown path: %v", err)
	}
}

func TestServerLoadErrors(t *testing.T) {
	s, _ := newTestServer(t)

	if _, err := s.Load("missing.txt"); !errors.Is(err, ErrAssetNotFound) {
		t.Fatalf("err = %v", err)
	}
	if _, err := s.Load("models/cube.obj"); !errors.Is(err, ErrNoLoader) {
		t.Fatalf("err = %v", err)
	}
}

func TestServerCloseUnloadsEverything(t *testing.T) {
	s, _ := newTestServer(t)
	loader := &textLoader{}
	s.RegisterLoader(ResourceTypeText, loader)
	if _, err := s.Load("hello.txt"); err != nil {
		t.Fatal(err)
	}

	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if len(loader.unloaded) != 1 || loader.unloaded[0] != "hello" {
		t.Fatalf("unloaded = %v", loader.unloaded)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	if err := s.Watch(); !errors.Is(err, ErrServerClosed) {
		t.Fatalf("watch after close: %v", err)
	}
}

func waitForChanges(t *testing.T, s *Server, match func(Change) bool) []Change {
	t.Helper()
	var seen []Change
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		for _, c := range s.Poll() {
			seen = append(seen, c)
			if match(c) {
				return seen
			}
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("change not observed, saw %v", seen)
	return nil
}

func TestServerWatchTracksChanges(t *testing.T) {
	s, root := newTestServer(t)
	if err := s.Watch(); err != nil {
		t.Fatalf("watch: %v", err)
	}

	writeFile(t, filepath.Join(root, "fresh.txt"), "fresh")
	waitForChanges(t, s, func(c Change) bool { return c.Path == "fresh.txt" })
	if _, ok := s.Info("fresh.txt"); !ok {
		t.Fatal("created file was not indexed")
	}

	writeFile(t, filepath.Join(root, "added", "inner.txt"), "inner")
	waitForChanges(t, s, func(c Change) bool { return c.Path == "added/inner.txt" })

	if err := os.Remove(filepath.Join(root, "hello.txt")); err != nil {
		t.Fatal(err)
	}
	waitForChanges(t, s, func(c Change) bool { return c.Path == "hello.txt" && c.Op == Removed })
	if _, ok := s.Info("hello.txt"); ok {
		t.Fatal("removed file still indexed")
	}
}

func TestServerReloadsModifiedFiles(t *testing.T) {
	s, root := newTestServer(t)
	loader := &textLoader{}
	s.RegisterLoader(ResourceTypeText, loader)
	if err := s.Watch(); err != nil {
		t.Fatalf("watch: %v", err)
	}
	if _, err := s.Load("hello.txt"); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(root, "hello.txt")
	writeFile(t, path, "hello again")
	later := time.Now().Add(time.Hour)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatal(err)
	}
	waitForChanges(t, s, func(c Change) bool {
		info, _ := s.Info("hello.txt")
		return c.Path == "hello.txt" && c.Op == Modified && !info.ModifiedAt.Before(later)
	})

	a, err := s.Load("hello.txt")
	if err != nil {
		t.Fatal(err)
	}
	if a.Data.(string) != "hello again" {
		t.Fatalf("stale asset %q", a.Data)
	}
	if loader.loads != 2 || len(loader.unloaded) != 1 {
		t.Fatalf("loads=%d unloaded=%v", loader.loads, loader.unloaded)
	}
}
