// ============================================================================
// tagscript - Tag Document Toolkit
// ============================================================================
//
// Package:     cmd
// Description: CLI command that checks documents again when they change
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/msto63/tagscript/foundation/tag/source"
	"github.com/msto63/tagscript/foundation/tag/store"
	"github.com/msto63/tagscript/pkg/core/cache"
)

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch FILE...",
		Short: "Checks documents again whenever they change",
		Long: `Checks every file once, then watches the files and checks each one
again after it was written. Bursts of writes are collapsed into one check
after the debounce period (watch.debounce in the config file). Saves that
leave the content unchanged are not checked again.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			return a.watch(ctx, cmd.OutOrStdout(), args)
		},
	}
}

// watcher tracks the state shared by the checks of one watch session
type watcher struct {
	a       *app
	out     io.Writer
	st      *store.Store
	src     source.Source
	digests *cache.DigestCache
}

// watch runs the initial check and then re-checks changed files until ctx ends
func (a *app) watch(ctx context.Context, out io.Writer, files []string) error {
	w := &watcher{
		a:       a,
		out:     out,
		st:      a.newStore(),
		src:     source.NewDir(""),
		digests: cache.NewDigestCache(len(files)),
	}

	for _, file := range files {
		w.check(ctx, file, false)
	}

	fw, err := source.NewWatcher(files, source.WatcherOptions{
		Debounce: a.cfg.Watch.Debounce.Duration,
		Logger:   a.logger.Foundation(),
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(out, a.catalog.T("cli.watching", map[string]interface{}{"Count": len(files)}))

	err = fw.Run(ctx, func(ctx context.Context, change source.Change) {
		w.check(ctx, change.Name, true)
	})
	a.logger.Debug("watch stopped", "stats", w.digests.Stats())
	return err
}

// check reads file and checks it unless its content is unchanged
func (w *watcher) check(ctx context.Context, file string, announce bool) {
	data, err := w.src.ReadFile(ctx, file)
	if err != nil {
		w.digests.Forget(file)
		if announce {
			fmt.Fprintln(w.out, w.a.catalog.T("cli.changed", map[string]interface{}{"File": file}))
		}
		_ = w.a.report(w.out, w.st, file, err)
		return
	}

	if !w.digests.Changed(file, data) {
		w.a.logger.Debug("content unchanged", "file", file)
		return
	}

	if announce {
		fmt.Fprintln(w.out, w.a.catalog.T("cli.changed", map[string]interface{}{"File": file}))
	}
	_ = w.a.report(w.out, w.st, file, w.st.Load(file, string(data)))
}
