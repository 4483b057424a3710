package asset

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/edwinsyarief/combine/app"
	"github.com/edwinsyarief/combine/ecs"
)

type mesh struct{ N int }

func TestAssets(t *testing.T) {
	a := NewAssets[mesh]()
	h1 := a.Add(mesh{N: 1})
	h2 := a.Add(mesh{N: 2})

	if !h1.IsValid() || h1 == h2 {
		t.Fatalf("expected distinct valid handles, got %v %v", h1, h2)
	}
	if got := a.Get(h2); got == nil || got.N != 2 {
		t.Errorf("expected 2, got %+v", got)
	}
	if !a.Set(h1, mesh{N: 10}) || a.Get(h1).N != 10 {
		t.Error("Set did not replace the value")
	}
	a.Remove(h1)
	if a.Get(h1) != nil || a.Set(h1, mesh{}) {
		t.Error("removed handle still resolves")
	}
	if hs := a.Handles(); len(hs) != 1 || hs[0] != h2 {
		t.Errorf("expected [%v], got %v", h2, hs)
	}
	if h3 := a.Add(mesh{}); h3 == h1 {
		t.Error("handles must not be reused")
	}
	var zero Handle[mesh]
	if zero.IsValid() || a.Get(zero) != nil {
		t.Error("zero handle must be invalid")
	}
}

// pollUntil polls s until want shows up or two seconds pass, and returns
// everything seen.
func pollUntil(t *testing.T, s *AssetServer, want string) []string {
	t.Helper()
	var seen []string
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		seen = append(seen, s.Poll()...)
		if slices.Contains(seen, want) {
			return seen
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("expected %s to be reported, got %v", want, seen)
	return nil
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ball.txt")
	if err := os.WriteFile(path, []byte("a"), 0o644); err != nil {
		t.Fatal(err)
	}
	s := NewAssetServer(AssetServerSettings{AssetFolder: dir})
	if got := s.Poll(); got != nil {
		t.Errorf("expected nothing before Watch, got %v", got)
	}
	if err := s.Watch(); err != nil {
		t.Fatalf("watch: %v", err)
	}
	defer s.Close()

	t.Run("write", func(t *testing.T) {
		if err := os.WriteFile(path, []byte("b"), 0o644); err != nil {
			t.Fatal(err)
		}
		seen := pollUntil(t, s, path)
		if n := len(slices.Compact(slices.Sorted(slices.Values(seen)))); n != 1 {
			t.Errorf("expected only %s, got %v", path, seen)
		}
	})
	t.Run("new directory", func(t *testing.T) {
		sub := filepath.Join(dir, "sub")
		if err := os.Mkdir(sub, 0o755); err != nil {
			t.Fatal(err)
		}
		added := filepath.Join(sub, "ground.txt")
		if err := os.WriteFile(added, []byte("c"), 0o644); err != nil {
			t.Fatal(err)
		}
		pollUntil(t, s, added)

		// the directory is watched now, so later writes are seen as well
		if err := os.WriteFile(added, []byte("d"), 0o644); err != nil {
			t.Fatal(err)
		}
		pollUntil(t, s, added)
	})
	t.Run("nested folder present before Watch", func(t *testing.T) {
		root := t.TempDir()
		deep := filepath.Join(root, "a", "b")
		if err := os.MkdirAll(deep, 0o755); err != nil {
			t.Fatal(err)
		}
		ns := NewAssetServer(AssetServerSettings{AssetFolder: root})
		if err := ns.Watch(); err != nil {
			t.Fatalf("watch: %v", err)
		}
		defer ns.Close()
		file := filepath.Join(deep, "cube.txt")
		if err := os.WriteFile(file, []byte("e"), 0o644); err != nil {
			t.Fatal(err)
		}
		pollUntil(t, ns, file)
	})
}

func TestWatchMissingFolder(t *testing.T) {
	s := NewAssetServer(AssetServerSettings{AssetFolder: filepath.Join(t.TempDir(), "nope")})
	if err := s.Watch(); err != nil {
		t.Fatalf("missing folder must not fail: %v", err)
	}
	if s.Watching() || s.Poll() != nil {
		t.Error("expected no watcher for a missing folder")
	}
	if err := s.Close(); err != nil {
		t.Errorf("close: %v", err)
	}
}

func TestPluginWatchSendsEvents(t *testing.T) {
	dir := t.TempDir()
	a := app.New().
		InsertResource(&AssetServerSettings{AssetFolder: dir, WatchForChanges: true}).
		AddPlugin(Plugin{})
	server := ecs.Resource[AssetServer](a.World())
	if !server.Watching() {
		t.Fatal("expected the plugin to start watching")
	}

	var got []string
	ecs.Subscribe(a.World().Events(), func(e AssetModified) { got = append(got, e.Path) })

	path := filepath.Join(dir, "sphere.txt")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	deadline := time.Now().Add(2 * time.Second)
	for !slices.Contains(got, path) && time.Now().Before(deadline) {
		a.Step(10 * time.Millisecond)
		time.Sleep(10 * time.Millisecond)
	}
	if !slices.Contains(got, path) {
		t.Errorf("expected AssetModified for %s, got %v", path, got)
	}

	if err := a.SetRunner(app.FixedRunner(1, 0)).Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	if server.Watching() {
		t.Error("expected the watcher to close when the app stops")
	}
}

func TestPluginWithoutWatching(t *testing.T) {
	a := app.New().
		InsertResource(&AssetServerSettings{AssetFolder: t.TempDir()}).
		AddPlugin(Plugin{})
	if ecs.Resource[AssetServer](a.World()).Watching() {
		t.Error("expected no watcher unless WatchForChanges is set")
	}
}
