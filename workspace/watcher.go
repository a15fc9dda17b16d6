package workspace

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dhamidi/blocks/forest"
)

// FileWatcher polls the workspace root and reconciles files whose
// modification time moved forward.
type FileWatcher struct {
	workspace    *Workspace
	stopCh       chan struct{}
	pollInterval time.Duration
	modTimes     map[string]time.Time

	// OnUpdate, when set, is called after each file the watcher reloads or
	// drops. Dropped files report a nil patch and nil error.
	OnUpdate func(path string, p *forest.Patch, err error)
}

func NewFileWatcher(w *Workspace, pollInterval time.Duration) *FileWatcher {
	if pollInterval <= 0 {
		pollInterval = time.Second
	}
	return &FileWatcher{
		workspace:    w,
		stopCh:       make(chan struct{}),
		pollInterval: pollInterval,
		modTimes:     make(map[string]time.Time),
	}
}

func (fw *FileWatcher) Start() {
	go fw.run()
}

func (fw *FileWatcher) Stop() {
	close(fw.stopCh)
}

func (fw *FileWatcher) run() {
	ticker := time.NewTicker(fw.pollInterval)
	defer ticker.Stop()

	fw.Scan()

	for {
		select {
		case <-fw.stopCh:
			return
		case <-ticker.C:
			fw.Scan()
		}
	}
}

// Scan runs one polling pass. It is called by the watcher loop and may be
// called directly when no loop is running.
func (fw *FileWatcher) Scan() {
	currentFiles := make(map[string]bool)

	filepath.Walk(fw.workspace.RootDir(), func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if path != fw.workspace.RootDir() && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !fw.workspace.Handles(path) {
			return nil
		}

		currentFiles[path] = true

		lastMod, known := fw.modTimes[path]
		if !known || info.ModTime().After(lastMod) {
			fw.modTimes[path] = info.ModTime()
			p, err := fw.workspace.ScanFile(path)
			fw.notify(path, p, err)
		}
		return nil
	})

	for path := range fw.modTimes {
		if !currentFiles[path] {
			delete(fw.modTimes, path)
			fw.workspace.RemoveFile(path)
			fw.notify(path, nil, nil)
		}
	}
}

func (fw *FileWatcher) notify(path string, p *forest.Patch, err error) {
	if fw.OnUpdate != nil {
		fw.OnUpdate(path, p, err)
	}
}
