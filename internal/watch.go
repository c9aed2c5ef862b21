package internal

import (
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// StartWatching recompiles the rule registry whenever one of the engine's rule
// files is written. The previous registry stays active while a broken edit is
// being fixed.
func (e *Engine) StartWatching() error {
	if e.isWatching {
		return fmt.Errorf("already watching")
	}
	if len(e.rulePaths) == 0 {
		return fmt.Errorf("engine has no rule files to watch")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	e.watcher = watcher

	for _, path := range e.rulePaths {
		if err := e.watcher.Add(path); err != nil {
			e.watcher.Close()
			return fmt.Errorf("error adding rule file to watcher: %w", err)
		}
	}

	e.isWatching = true
	go e.watchLoop()
	return nil
}

// StopWatching closes the watcher.
func (e *Engine) StopWatching() error {
	if !e.isWatching {
		return nil
	}
	e.isWatching = false
	return e.watcher.Close()
}

func (e *Engine) watchLoop() {
	for e.isWatching {
		select {
		case event, ok := <-e.watcher.Events:
			if !ok {
				return
			}
			e.handleFileEvent(event)
		case err, ok := <-e.watcher.Errors:
			if !ok {
				return
			}
			if e.logger != nil {
				e.logger.Error("watcher error", zap.Error(err))
			}
		}
	}
}

func (e *Engine) handleFileEvent(event fsnotify.Event) {
	if event.Op&fsnotify.Write != fsnotify.Write {
		return
	}
	if !strings.HasSuffix(event.Name, ".vrules") && !isRulePath(e.rulePaths, event.Name) {
		return
	}
	// editors often produce bursts of writes; let them settle
	time.Sleep(100 * time.Millisecond)
	if err := e.Reload(); err != nil {
		if e.logger != nil {
			e.logger.Error("rule reload failed, keeping previous rules",
				zap.String("file", event.Name), zap.Error(err))
		}
		return
	}
	if e.logger != nil {
		e.logger.Info("rules reloaded",
			zap.String("file", event.Name), zap.Int("rules", len(e.Rules())))
	}
	if e.onReload != nil {
		e.onReload()
	}
}

func isRulePath(paths []string, name string) bool {
	for _, p := range paths {
		if p == name {
			return true
		}
	}
	return false
}
