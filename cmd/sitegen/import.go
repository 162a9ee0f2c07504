package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/diva3322/SSBuy-web/internal/catalog"
	"github.com/diva3322/SSBuy-web/internal/importer"
)

func newImportGiftCodesCmd(a *app) *cobra.Command {
	var sheet, data string
	cmd := &cobra.Command{
		Use:   "giftcodes",
		Short: "Merge a gift-code workbook into " + catalog.GiftCodesFile,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := importer.ImportGiftCodesFile(a.context(cmd.Context()), sheet, data)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), report)
		},
	}
	cmd.Flags().StringVar(&sheet, "sheet", "giftcodes.xlsx", "workbook to import")
	cmd.Flags().StringVar(&data, "data", catalog.GiftCodesFile, "gift-code data file to update")
	return cmd
}

func (a *app) searcher() importer.Searcher {
	if a.search != nil {
		return a.search
	}
	if !a.cfg.Search.Enabled() {
		a.logger.Warn("search credentials missing; new games get no social links")
		return importer.NoSearch
	}
	return importer.NewWebSearch(a.cfg.Search, a.logger.Named("search"))
}

func newImportGamesCmd(a *app) *cobra.Command {
	var sheet, data string
	cmd := &cobra.Command{
		Use:   "games",
		Short: "Merge a games workbook into " + catalog.GamesFile,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			im := importer.NewGamesImporter(a.searcher(), a.cfg.Search.Delay, a.cfg.Search.RowDelay)
			report, err := im.ImportFile(a.context(cmd.Context()), sheet, data)
			if err != nil {
				return err
			}
			if len(report.PriceChanged) > 0 {
				a.logger.Info("product prices changed", zap.Strings("games", report.PriceChanged))
			}
			return printJSON(cmd.OutOrStdout(), report)
		},
	}
	cmd.Flags().StringVar(&sheet, "sheet", "games.xlsx", "workbook to import")
	cmd.Flags().StringVar(&data, "data", catalog.GamesFile, "games data file to update")
	return cmd
}
