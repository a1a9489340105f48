package main

import (
	"github.com/Ramsey-B/bramble/pkg/combinations"
	catalogerrors "github.com/Ramsey-B/bramble/pkg/errors"
	"github.com/Ramsey-B/bramble/pkg/models"
	"github.com/Ramsey-B/bramble/pkg/variants"
	"github.com/spf13/cobra"
)

type reconciledRow struct {
	models.Combination
	Match  variants.Match `json:"match"`
	Fields map[string]any `json:"fields"`
}

func newReconcileCmd(a *app) *cobra.Command {
	var facetName string

	cmd := &cobra.Command{
		Use:   "reconcile [catalog] [records]",
		Short: "Pair a facet's stored records with the catalog's current combinations",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			facet, err := models.ParseFacet(facetName)
			if err != nil {
				return err
			}

			attrs, err := readAttributes(args[0])
			if err != nil {
				return err
			}
			if err := attrs.Validate(); err != nil {
				return err
			}

			var records []models.VariantRecord[map[string]any]
			if err := decodeFile(args[1], &records); err != nil {
				return err
			}

			var rows []reconciledRow
			controlling := attrs.Sorted().Controlling(facet)
			if len(controlling) == 0 {
				row := reconciledRow{
					Combination: models.Combination{Key: models.SingleKey, AttributeValues: map[string]string{}},
					Match:       variants.MatchNone,
				}
				if record, ok := variants.ResolveSingle(records); ok {
					row.Match = variants.MatchExact
					row.Fields = withoutHeader(record.Fields)
				}
				rows = append(rows, row)
			} else {
				combos, err := combinations.GenerateBounded(controlling, a.cfg.MaxCombinations)
				if err != nil {
					return catalogerrors.WrapCatalogError(err).AddFacet(string(facet))
				}

				for _, r := range variants.Reconcile(combos, records, nil) {
					rows = append(rows, reconciledRow{
						Combination: r.Combination,
						Match:       r.Match,
						Fields:      withoutHeader(r.Fields),
					})
				}
			}

			for _, row := range rows {
				a.metrics.ObserveResolution(string(facet), string(row.Match))
			}

			return writeJSON(cmd.OutOrStdout(), rows)
		},
	}

	cmd.Flags().StringVar(&facetName, "facet", string(models.FacetPricing), "facet the records belong to")
	return cmd
}

// withoutHeader drops the record header keys that decoding leaves in an
// untyped field map.
func withoutHeader(fields map[string]any) map[string]any {
	if fields == nil {
		return nil
	}
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		if k == "key" || k == "attributeValues" {
			continue
		}
		out[k] = v
	}
	return out
}
