// Package source provides access to tag documents on disk or in any fs.FS,
// and a watcher that reports when tag files change.
//
// Package: source
// Title: Tag Document Sources
// Description: The store reads documents through the Source interface. Dir
//              resolves names against an OS directory, FS against an fs.FS.
//              Read failures are coded errors: CodeNotFound for missing
//              files and CodeIOError for everything else.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation
//
// Watching:
//
//	w, err := source.NewWatcher([]string{"intro.tag"}, source.WatcherOptions{})
//	if err != nil {
//		return err
//	}
//	return w.Run(ctx, func(ctx context.Context, c source.Change) {
//		_ = st.LoadFile(ctx, c.Name)
//	})
//
// Events for the same file that arrive within the debounce period are
// reported once, after the period has passed without further events.
package source
