package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/diva3322/SSBuy-web/internal/sitemap"
)

type sitemapFlags struct {
	config    string
	pagesDir  string
	baseURL   string
	output    string
	gamesData string
	giftCodes string
}

func newSitemapCmd(a *app) *cobra.Command {
	var f sitemapFlags
	cmd := &cobra.Command{
		Use:   "sitemap",
		Short: "Generate sitemap.xml from the site pages and the game catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := sitemap.LoadConfig(f.config)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("pages-dir") {
				cfg.PagesDir = f.pagesDir
			}
			switch {
			case flags.Changed("base-url"):
				cfg.BaseURL = f.baseURL
			case f.config == "":
				cfg.BaseURL = a.cfg.Site.BaseURL
			}
			if flags.Changed("output") {
				cfg.Output = f.output
			}
			if flags.Changed("games-data") {
				cfg.GamesData = f.gamesData
			}
			if flags.Changed("gift-codes-data") {
				cfg.GiftCodesData = f.giftCodes
			}
			if cfg, err = cfg.Normalize(); err != nil {
				return err
			}

			n, err := sitemap.New(cfg).Generate(a.context(cmd.Context()))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "sitemap: %d urls written to %s\n", n, cfg.Output)
			return nil
		},
	}
	cmd.Flags().StringVar(&f.config, "config", "", "YAML config file")
	cmd.Flags().StringVar(&f.pagesDir, "pages-dir", "", "directory crawled for pages")
	cmd.Flags().StringVar(&f.baseURL, "base-url", "", "public site origin")
	cmd.Flags().StringVar(&f.output, "output", "", "sitemap output path")
	cmd.Flags().StringVar(&f.gamesData, "games-data", "", "games.json path")
	cmd.Flags().StringVar(&f.giftCodes, "gift-codes-data", "", "gift-codes-data.json path; adds gift-code pages")
	return cmd
}
