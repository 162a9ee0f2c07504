// Command sitegen runs the build-time jobs of the static site: sitemap
// generation and the spreadsheet imports that refresh the data files.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/diva3322/SSBuy-web/internal/config"
	"github.com/diva3322/SSBuy-web/internal/importer"
	"github.com/diva3322/SSBuy-web/internal/observability"
)

// app carries the state shared by every subcommand.
type app struct {
	envFile string
	logger  *zap.Logger
	cfg     config.Config
	// search replaces the configured web search when set.
	search importer.Searcher
}

func main() {
	a := &app{}
	if err := newRootCmd(a).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:          "sitegen",
		Short:        "Build-time tooling for the ssbuy.tw static site",
		SilenceUsage: true,

		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd.Context())
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "dotenv file read before the environment")

	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Merge spreadsheets into the site data files",
	}
	importCmd.AddCommand(newImportGiftCodesCmd(a), newImportGamesCmd(a))

	root.AddCommand(newSitemapCmd(a), importCmd)
	return root
}

func (a *app) init(ctx context.Context) error {
	cfg, err := config.Load(ctx, config.WithEnvFile(a.envFile))
	if err != nil {
		return err
	}
	a.cfg = cfg
	if a.logger == nil {
		logger, err := observability.NewLogger(cfg.Log.Level)
		if err != nil {
			return fmt.Errorf("initialise logger: %w", err)
		}
		a.logger = logger.Named("sitegen")
	}
	return nil
}

// context returns ctx carrying the app logger.
func (a *app) context(ctx context.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return observability.WithLogger(ctx, a.logger)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
