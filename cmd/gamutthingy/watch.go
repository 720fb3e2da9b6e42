/*
NAME
  watch.go

DESCRIPTION
  watch.go implements -watch: re-running the configured pipeline every
  time the input image is rewritten, for iterating on a config file
  against a live screenshot/export pipeline without re-invoking the
  binary by hand.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package main

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/ausocean/utils/logging"
)

// watchAndRun watches inputPath's directory and calls run(inputPath) once
// immediately and again every time inputPath is written or created.
// Returns only on a watcher error.
func watchAndRun(inputPath string, log logging.Logger, run func(string) error) error {
	if err := run(inputPath); err != nil {
		log.Error("watch: initial run failed", "error", err.Error())
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	dir := filepath.Dir(inputPath)
	if err := watcher.Add(dir); err != nil {
		return err
	}
	target := filepath.Clean(inputPath)

	log.Info("watch: watching for changes", "path", inputPath)
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			log.Info("watch: input changed, re-running", "path", inputPath)
			if err := run(inputPath); err != nil {
				log.Error("watch: run failed", "error", err.Error())
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error("watch: watcher error", "error", err.Error())
		}
	}
}
