// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package watch reruns an action whenever a file changes on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce groups the bursts of events editors emit on save.
const DefaultDebounce = 300 * time.Millisecond

// Watch calls fn each time path is written, created, or renamed into place,
// until ctx is done. Events arriving while fn runs or within debounce of
// each other are coalesced into one call. An error from fn stops the watch
// only if onError returns it.
func Watch(ctx context.Context, path string, debounce time.Duration, fn func(context.Context) error, onError func(error) error) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer w.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", path, err)
	}
	// Watch the directory so atomic-rename saves are still seen.
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	var (
		timer   *time.Timer
		timerC  <-chan time.Time
		trigger = fsnotify.Write | fsnotify.Create | fsnotify.Rename
	)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || ev.Op&trigger == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			timerC = timer.C
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			if err := onError(fmt.Errorf("file watcher: %w", err)); err != nil {
				return err
			}
		case <-timerC:
			timerC = nil
			if err := fn(ctx); err != nil {
				if err := onError(err); err != nil {
					return err
				}
			}
		}
	}
}
