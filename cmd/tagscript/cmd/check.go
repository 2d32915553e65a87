// ============================================================================
// tagscript - Tag Document Toolkit
// ============================================================================
//
// Package:     cmd
// Description: CLI command that validates tag documents
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	mdwerror "github.com/msto63/tagscript/foundation/core/error"
	"github.com/msto63/tagscript/foundation/tag/store"
)

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE...",
		Short: "Validates tag documents",
		Long: `Parses every file and prints one line per file: the tag count on
success or the diagnostic "file:line: message" on failure.

Exit codes:
  0  all files are valid
  1  at least one file has a syntax or capacity error
  3  a file could not be read`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := a.newStore()
			var firstErr error
			failed := 0
			for _, file := range args {
				if err := a.checkFile(cmd.Context(), cmd.OutOrStdout(), st, file); err != nil {
					if firstErr == nil {
						firstErr = err
					}
					failed++
				}
			}
			if failed == 0 {
				return nil
			}

			summary := a.catalog.Plural("cli.failed", failed, nil)
			fmt.Fprintln(cmd.OutOrStdout(), summary)
			return mdwerror.Wrap(errReported, summary).WithCode(mdwerror.GetCode(firstErr))
		},
	}
}

// checkFile loads one file and prints its result line
func (a *app) checkFile(ctx context.Context, out io.Writer, st *store.Store, file string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	return a.report(out, st, file, st.LoadFile(ctx, file))
}

// report prints the result line of one load
func (a *app) report(out io.Writer, st *store.Store, file string, err error) error {
	if err != nil {
		fmt.Fprintln(out, st.Diagnostic(file, err))
		return err
	}

	tags := a.catalog.Plural("cli.tags", st.Len(), nil)
	fmt.Fprintln(out, a.catalog.T("cli.ok", map[string]interface{}{"File": file, "Tags": tags}))
	return nil
}
