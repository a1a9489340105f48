package main

import (
	"github.com/Ramsey-B/bramble/pkg/editor"
	"github.com/Ramsey-B/bramble/pkg/schema"
	"github.com/spf13/cobra"
)

type submission struct {
	Summary  editor.Summary `json:"summary"`
	Result   schema.Result  `json:"result"`
	Document map[string]any `json:"document,omitempty"`
}

func newSubmitCmd(a *app) *cobra.Command {
	var showDocument bool

	cmd := &cobra.Command{
		Use:   "submit [draft]",
		Short: "Reconcile an item draft with its attributes and validate it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var draft editor.Draft
			if err := decodeFile(args[0], &draft); err != nil {
				return err
			}

			ed, err := editor.New(cmd.Context(), draft, editor.Options{
				Logger:          a.logger,
				Metrics:         a.metrics,
				MaxCombinations: a.cfg.MaxCombinations,
				Schema:          a.schemaOptions(),
			})
			if err != nil {
				return err
			}

			out := submission{
				Summary: ed.Summary(),
				Result:  ed.Submit(cmd.Context()),
			}
			if showDocument {
				out.Document = ed.Document()
			}

			if err := writeJSON(cmd.OutOrStdout(), out); err != nil {
				return err
			}
			if !out.Result.Valid {
				return errInvalid
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showDocument, "document", false, "include the reconciled document in the output")
	return cmd
}
