package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amaumene/dsnparr/internal/app"
	"github.com/amaumene/dsnparr/internal/models"
)

func newRegionsCommand(ctx *commandContext) *cobra.Command {
	var variantFlag string
	var refresh bool

	cmd := &cobra.Command{
		Use:   "regions",
		Short: "List the regions a check sweeps",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			variant, err := models.ParseSiteVariant(variantFlag)
			if err != nil {
				return err
			}

			cfg, logger, err := ctx.ensure()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}

			cli := app.InitializeCLI(cfg, logger)
			if refresh {
				if err := cli.Catalog.Refresh(cmd.Context()); err != nil {
					logger.WithError(err).Warn("Using compiled-in region list")
				}
			}

			regions := cli.Catalog.Regions(variant)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d regions (%s)\n", len(regions), variant)
			fmt.Fprintln(out, strings.Join(regions, ", "))
			return nil
		},
	}

	cmd.Flags().StringVar(&variantFlag, "variant", string(models.VariantDisney), "Site variant (disney or star)")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "Fetch the current list from the site configuration first")

	return cmd
}
