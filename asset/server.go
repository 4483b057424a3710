package asset

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"slices"

	"github.com/fsnotify/fsnotify"

	"github.com/edwinsyarief/combine/app"
	"github.com/edwinsyarief/combine/ecs"
)

// AssetServerSettings configures where assets live and whether edits are
// picked up while the app runs.
type AssetServerSettings struct {
	AssetFolder     string
	WatchForChanges bool
}

// DefaultSettings reads from ./assets without watching.
func DefaultSettings() AssetServerSettings {
	return AssetServerSettings{AssetFolder: "assets"}
}

// AssetModified is sent when a file under the asset folder was created or
// changed.
type AssetModified struct {
	Path string
}

// AssetServer resolves asset paths and reports file changes under the asset
// folder once Watch was called.
type AssetServer struct {
	settings AssetServerSettings
	watcher  *fsnotify.Watcher
}

// NewAssetServer returns a server for settings.
func NewAssetServer(settings AssetServerSettings) *AssetServer {
	return &AssetServer{settings: settings}
}

// Settings returns the server configuration.
func (s *AssetServer) Settings() AssetServerSettings {
	return s.settings
}

// Path resolves name relative to the asset folder.
func (s *AssetServer) Path(name string) string {
	return filepath.Join(s.settings.AssetFolder, name)
}

// Watching reports whether a watcher is open.
func (s *AssetServer) Watching() bool {
	return s.watcher != nil
}

// Watch starts watching the asset folder and every directory below it. A
// missing folder is not an error; nothing is watched.
func (s *AssetServer) Watch() error {
	if s.watcher != nil {
		return nil
	}
	if _, err := os.Stat(s.settings.AssetFolder); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch %s: %w", s.settings.AssetFolder, err)
	}
	s.watcher = w
	if _, err := s.addTree(s.settings.AssetFolder); err != nil {
		w.Close()
		s.watcher = nil
		return fmt.Errorf("watch %s: %w", s.settings.AssetFolder, err)
	}
	return nil
}

// addTree watches root and its subdirectories and returns the files found.
func (s *AssetServer) addTree(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, path)
			return nil
		}
		return s.watcher.Add(path)
	})
	return files, err
}

// Poll drains pending watcher events without blocking and returns the files
// created or written since the last call, sorted and without duplicates. A
// new directory is watched and the files already in it are reported.
func (s *AssetServer) Poll() []string {
	if s.watcher == nil {
		return nil
	}
	var changed []string
	for {
		select {
		case ev, ok := <-s.watcher.Events:
			if !ok {
				return tidy(changed)
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
				continue
			}
			info, err := os.Stat(ev.Name)
			if err != nil {
				continue
			}
			if !info.IsDir() {
				changed = append(changed, ev.Name)
				continue
			}
			files, err := s.addTree(ev.Name)
			if err != nil {
				log.Printf("asset: watch %s: %v", ev.Name, err)
			}
			changed = append(changed, files...)
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return tidy(changed)
			}
			log.Printf("asset: %v", err)
		default:
			return tidy(changed)
		}
	}
}

func tidy(paths []string) []string {
	slices.Sort(paths)
	return slices.Compact(paths)
}

// Close stops watching. It is safe to call on a server that never watched.
func (s *AssetServer) Close() error {
	if s.watcher == nil {
		return nil
	}
	err := s.watcher.Close()
	s.watcher = nil
	return err
}

// Plugin inserts the asset server and, when watching, forwards file changes as
// AssetModified events.
type Plugin struct{}

// Build implements app.Plugin.
func (Plugin) Build(a *app.App) {
	def := DefaultSettings()
	settings := app.InitResource(a, &def)
	server := NewAssetServer(*settings)
	a.InsertResource(server)
	if !settings.WatchForChanges {
		return
	}
	if err := server.Watch(); err != nil {
		log.Printf("asset: %v", err)
		return
	}
	a.OnStop(func() {
		if err := server.Close(); err != nil {
			log.Printf("asset: %v", err)
		}
	})
	a.AddSystem(app.PreUpdate, watchAssets)
}

func watchAssets(w *ecs.World) {
	for _, path := range ecs.Resource[AssetServer](w).Poll() {
		log.Printf("asset: %s modified", path)
		ecs.Send(w.Events(), AssetModified{Path: path})
	}
}
