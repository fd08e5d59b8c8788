package prefabs

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ReloadKind names which prefab changed.
type ReloadKind int

const (
	ReloadTuning ReloadKind = iota
	ReloadObstacles
	ReloadRules
	ReloadScript
)

func (k ReloadKind) String() string {
	switch k {
	case ReloadTuning:
		return "tuning"
	case ReloadObstacles:
		return "obstacles"
	case ReloadRules:
		return "rules"
	case ReloadScript:
		return "script"
	default:
		return "unknown"
	}
}

// Reload is one edited prefab file.
type Reload struct {
	Kind ReloadKind
	Name string
}

// ClassifyReload reports which prefab path refers to. Unrelated files
// return false.
func ClassifyReload(path string) (Reload, bool) {
	name := filepath.Base(path)
	switch name {
	case TuningFile:
		return Reload{Kind: ReloadTuning, Name: name}, true
	case ObstaclesFile:
		return Reload{Kind: ReloadObstacles, Name: name}, true
	case RulesFile:
		return Reload{Kind: ReloadRules, Name: name}, true
	}
	if strings.EqualFold(filepath.Ext(name), ".tengo") {
		return Reload{Kind: ReloadScript, Name: name}, true
	}
	return Reload{}, false
}

const reloadSettle = 100 * time.Millisecond

// Watcher turns file system notifications on the prefab directories into
// Reload values. Editors often write a file several times in a row, so
// repeats inside reloadSettle are folded into one.
type Watcher struct {
	fsw     *fsnotify.Watcher
	Events  chan Reload
	Errors  chan error
	done    chan struct{}
	stopped sync.WaitGroup
	close   sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			_ = fsw.Close()
			return nil, err
		}
	}

	w := &Watcher{
		fsw:    fsw,
		Events: make(chan Reload, 16),
		Errors: make(chan error, 1),
		done:   make(chan struct{}),
	}
	w.stopped.Add(1)
	go w.loop()
	return w, nil
}

// Close stops the watcher and closes Events and Errors. It is safe to call
// more than once.
func (w *Watcher) Close() error {
	var err error
	w.close.Do(func() {
		close(w.done)
		err = w.fsw.Close()
		w.stopped.Wait()
		close(w.Events)
		close(w.Errors)
	})
	return err
}

func (w *Watcher) loop() {
	defer w.stopped.Done()
	seen := make(map[string]time.Time)
	for {
		select {
		case <-w.done:
			return
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			r, ok := ClassifyReload(ev.Name)
			if !ok {
				continue
			}
			now := time.Now()
			if prev, ok := seen[ev.Name]; ok && now.Sub(prev) < reloadSettle {
				continue
			}
			seen[ev.Name] = now
			select {
			case w.Events <- r:
			case <-w.done:
				return
			}
		}
	}
}
