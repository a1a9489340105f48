package main

import (
	"github.com/Ramsey-B/bramble/pkg/combinations"
	catalogerrors "github.com/Ramsey-B/bramble/pkg/errors"
	"github.com/Ramsey-B/bramble/pkg/models"
	"github.com/spf13/cobra"
)

func newCombinationsCmd(a *app) *cobra.Command {
	var facetName string

	cmd := &cobra.Command{
		Use:   "combinations [catalog]",
		Short: "List the combinations each facet is edited by",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			attrs, err := readAttributes(args[0])
			if err != nil {
				return err
			}
			if err := attrs.Validate(); err != nil {
				return err
			}
			sorted := attrs.Sorted()

			facets := models.Facets
			if facetName != "" {
				facet, err := models.ParseFacet(facetName)
				if err != nil {
					return err
				}
				facets = []models.Facet{facet}
			}

			result := make(map[models.Facet][]models.Combination, len(facets))
			for _, facet := range facets {
				controlling := sorted.Controlling(facet)
				if len(controlling) == 0 {
					result[facet] = []models.Combination{{Key: models.SingleKey, AttributeValues: map[string]string{}}}
					continue
				}

				combos, err := combinations.GenerateBounded(controlling, a.cfg.MaxCombinations)
				if err != nil {
					return catalogerrors.WrapCatalogError(err).AddFacet(string(facet))
				}
				a.metrics.ObserveCombinations(string(facet), len(combos))
				result[facet] = combos
			}

			a.logger.WithContext(cmd.Context()).WithFields(map[string]any{
				"catalog": args[0],
				"facets":  len(facets),
			}).Debug("Generated combinations")

			return writeJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVar(&facetName, "facet", "", "only list this facet (pricing, dimensions, media, stock)")
	return cmd
}
