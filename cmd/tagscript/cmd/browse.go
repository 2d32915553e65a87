// ============================================================================
// tagscript - Tag Document Toolkit
// ============================================================================
//
// Package:     cmd
// Description: CLI command for the interactive tag browser
// Author:      Mike Stoffels
// Created:     2025-12-07
// License:     MIT
// ============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	mdwerror "github.com/msto63/tagscript/foundation/core/error"
	"github.com/msto63/tagscript/internal/tui/browser"
)

func newBrowseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "browse FILE",
		Aliases: []string{"walk"},
		Short:   "Walks the tags of a document interactively",
		Long: `Loads FILE and shows one tag at a time, starting with the first.

Keys:
  n / Space   next tag
  r           back to the first tag
  R           reload the file
  q / Ctrl+C  quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := a.newStore()
			if err := st.LoadFile(cmd.Context(), args[0]); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), st.Diagnostic(args[0], err))
				return mdwerror.Wrap(errReported, "browse failed").WithCode(mdwerror.GetCode(err))
			}

			return browser.Run(browser.Config{
				Store:      st,
				File:       args[0],
				Translator: a.catalog,
			})
		},
	}
}
