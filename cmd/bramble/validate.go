package main

import (
	"errors"

	catalogerrors "github.com/Ramsey-B/bramble/pkg/errors"
	"github.com/Ramsey-B/bramble/pkg/metrics"
	"github.com/Ramsey-B/bramble/pkg/paths"
	"github.com/Ramsey-B/bramble/pkg/schema"
	"github.com/spf13/cobra"
)

var errInvalid = errors.New("document is invalid")

func newValidateCmd(a *app) *cobra.Command {
	var field string

	cmd := &cobra.Command{
		Use:   "validate [schema] [document]",
		Short: "Validate a document against a path schema",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if paths.Parse(field).HasWildcard() {
				return catalogerrors.NewCatalogError("--field must be a concrete path").AddPath(field)
			}

			s, err := readSchema(args[0], a.schemaOptions())
			if err != nil {
				return err
			}

			var doc map[string]any
			if err := decodeFile(args[1], &doc); err != nil {
				return err
			}

			var result schema.Result
			if field != "" {
				patch := schema.ValidateChange(s, field, doc, true)
				result.Errors = schema.Errors{}.Apply(patch)
				result.Valid = len(result.Errors) == 0
				switch {
				case result.Errors.Has(field):
					result.FirstError = field
				case !result.Valid:
					result.FirstError = result.Errors.Paths()[0]
				}
				a.metrics.ObserveValidation(metrics.KindChange, len(result.Errors))
			} else {
				result = schema.ValidateForm(s, doc)
				a.metrics.ObserveValidation(metrics.KindForm, len(result.Errors))
			}

			if err := writeJSON(cmd.OutOrStdout(), result); err != nil {
				return err
			}
			if !result.Valid {
				return errInvalid
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&field, "field", "", "only validate this path and its declared children")
	return cmd
}
