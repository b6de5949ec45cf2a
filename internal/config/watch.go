package config

import (
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/quillnotes/quill/internal/logging"
)

// Watch reloads the configuration whenever a quill config file in the
// given directory changes, invoking onReload with the fresh config.
// The returned stop function releases the watcher.
func Watch(directory string, onReload func(*Config)) (func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(directory); err != nil {
		watcher.Close()
		return nil, err
	}

	log := logging.Component("config")

	go func() {
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !isConfigFile(ev.Name) {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove) == 0 {
					continue
				}
				cfg, err := Load(directory)
				if err != nil {
					log.Error().Err(err).Str("file", ev.Name).Msg("config reload failed")
					continue
				}
				log.Info().Str("file", ev.Name).Msg("config reloaded")
				onReload(cfg)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Error().Err(err).Msg("config watcher error")
			}
		}
	}()

	return func() { _ = watcher.Close() }, nil
}

func isConfigFile(path string) bool {
	name := filepath.Base(path)
	return strings.HasPrefix(name, "quill.") &&
		(strings.HasSuffix(name, ".json") || strings.HasSuffix(name, ".jsonc") ||
			strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml"))
}
