package app

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"github.com/shaunwen/myprs/internal/config"
	"github.com/shaunwen/myprs/internal/log"
)

// ConfigWatchDebounce is the debounce window for config file events.
const ConfigWatchDebounce = 600 * time.Millisecond

// ConfigWatchService watches the config file for external edits. The parent
// directory is watched rather than the file itself so atomic editor saves
// (write to temp, rename over) are still seen.
type ConfigWatchService struct {
	Started     bool
	Waiting     bool
	Path        string
	Events      chan struct{}
	Done        chan struct{}
	Mu          sync.Mutex
	Watcher     *fsnotify.Watcher
	LastRefresh time.Time
}

// NewConfigWatchService creates a watcher for the given config file path.
func NewConfigWatchService(path string) *ConfigWatchService {
	return &ConfigWatchService{Path: path}
}

// Start initialises the watcher and starts the background goroutine.
func (w *ConfigWatchService) Start() (bool, error) {
	if w.Started || w.Path == "" {
		return false, nil
	}
	dir := filepath.Dir(w.Path)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return false, nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return false, err
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return false, err
	}

	w.Started = true
	w.Watcher = watcher
	w.Events = make(chan struct{}, 1)
	w.Done = make(chan struct{})

	go w.run()
	return true, nil
}

// Stop stops the watcher and closes channels.
func (w *ConfigWatchService) Stop() {
	if !w.Started {
		return
	}
	close(w.Done)
	w.Started = false
	if w.Watcher != nil {
		_ = w.Watcher.Close()
	}
}

// NextEvent returns the event channel if waiting is not already active.
func (w *ConfigWatchService) NextEvent() <-chan struct{} {
	if w.Events == nil || w.Waiting {
		return nil
	}
	w.Waiting = true
	return w.Events
}

// ResetWaiting clears the waiting flag after an event is processed.
func (w *ConfigWatchService) ResetWaiting() {
	w.Waiting = false
}

// ShouldReload checks debounce timing for watcher events.
func (w *ConfigWatchService) ShouldReload(now time.Time) bool {
	if !w.LastRefresh.IsZero() && now.Sub(w.LastRefresh) < ConfigWatchDebounce {
		return false
	}
	w.LastRefresh = now
	return true
}

// Signal notifies listeners of watcher activity.
func (w *ConfigWatchService) Signal() {
	select {
	case <-w.Done:
		return
	default:
	}
	select {
	case w.Events <- struct{}{}:
	default:
	}
}

func (w *ConfigWatchService) run() {
	for {
		select {
		case <-w.Done:
			return
		case event, ok := <-w.Watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.Path) {
				continue
			}
			w.Signal()
		case err, ok := <-w.Watcher.Errors:
			if !ok {
				return
			}
			log.Printf("config watcher error: %v", err)
		}
	}
}

// startConfigWatcher begins watching the config file and returns a command
// that blocks on the next change event.
func (m *Model) startConfigWatcher() tea.Cmd {
	if m.watch == nil {
		m.watch = NewConfigWatchService(m.config.Path())
	}
	started, err := m.watch.Start()
	if err != nil {
		log.Printf("config watcher start failed: %v", err)
		return nil
	}
	if !started {
		return nil
	}
	return m.waitForConfigEvent()
}

func (m *Model) stopConfigWatcher() {
	if m.watch != nil {
		m.watch.Stop()
	}
}

// waitForConfigEvent blocks on the watcher channel and converts the next
// event into a message.
func (m *Model) waitForConfigEvent() tea.Cmd {
	if m.watch == nil {
		return nil
	}
	events := m.watch.NextEvent()
	if events == nil {
		return nil
	}
	done := m.watch.Done
	return func() tea.Msg {
		select {
		case <-done:
			return nil
		case _, ok := <-events:
			if !ok {
				return nil
			}
			return configWatchEventMsg{}
		}
	}
}

// handleConfigWatchEvent reloads the config off the event loop, debounced.
func (m *Model) handleConfigWatchEvent() (tea.Model, tea.Cmd) {
	m.watch.ResetWaiting()
	if !m.watch.ShouldReload(time.Now()) {
		return m, m.waitForConfigEvent()
	}
	path := m.config.Path()
	return m, func() tea.Msg {
		cfg, err := config.Load(path)
		return configReloadedMsg{cfg: cfg, err: err}
	}
}
