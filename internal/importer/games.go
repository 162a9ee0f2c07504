package importer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"
	"slices"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/diva3322/SSBuy-web/internal/catalog"
	"github.com/diva3322/SSBuy-web/internal/nav"
	"github.com/diva3322/SSBuy-web/internal/observability"
)

// Game sheet columns by position; the first row is a header.
const (
	GameColumnName        = 0
	GameColumnGiftURL     = 5
	GameColumnDescription = 7
	GameColumnProducts    = 8
)

// Social link names written for new games, in display order.
const (
	LinkFacebook = "Facebook"
	LinkWebsite  = "官方網站"
	LinkAppStore = "App Store"
	LinkBahamut  = "巴哈姆特"
)

var unsafeFilename = regexp.MustCompile(`[\\/*?:"<>|!:：！]`)

// CleanFilename strips characters that are not allowed in image file names.
func CleanFilename(name string) string {
	return unsafeFilename.ReplaceAllString(name, "")
}

// LogoPath is the logo location assumed for a game new to the data file.
func LogoPath(name string) string {
	return "images/" + CleanFilename(name) + ".jpg"
}

// GamesImporter merges the games sheet into games.json. New games get their
// external links from Search, throttled by Delay after each game's lookups
// and RowDelay after each new game.
type GamesImporter struct {
	Search   Searcher
	Delay    time.Duration
	RowDelay time.Duration
	// Sleep waits for d or until ctx is done. Tests replace it.
	Sleep func(ctx context.Context, d time.Duration) error

	validate *validator.Validate
}

// NewGamesImporter constructs an importer. A nil searcher records every
// external link as missing.
func NewGamesImporter(search Searcher, delay, rowDelay time.Duration) *GamesImporter {
	if search == nil {
		search = NoSearch
	}
	return &GamesImporter{
		Search:   search,
		Delay:    delay,
		RowDelay: rowDelay,
		Sleep:    sleepContext,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Merge applies the sheet to existing. Known games get their products,
// description and gift-code link replaced and keep everything else. New
// games are appended with a logo path and searched social links.
func (im *GamesImporter) Merge(ctx context.Context, sheet Sheet, existing *catalog.GameSet) (*catalog.GameSet, Report, error) {
	logger := observability.FromContext(ctx)
	var report Report

	out := catalog.NewGameSet()
	if existing != nil {
		for _, g := range existing.All() {
			out.Put(g)
		}
	}

	for i, row := range sheet.Rows {
		name := cell(row, GameColumnName)
		if name == "" {
			continue
		}
		report.Rows++
		line := i + 2

		giftURL := cell(row, GameColumnGiftURL)
		if giftURL == "" {
			giftURL = nav.GiftCodeURL(name)
		}
		products := im.products(logger, &report, name, line, row)
		description := cell(row, GameColumnDescription)

		if game, ok := out.Lookup(name); ok {
			if !sameProducts(game.Products, products) {
				report.PriceChanged = append(report.PriceChanged, name)
				logger.Info("game prices changed", zap.String("game", name))
			}
			game.Products = products
			game.Description = description
			game.Social = withLink(game.Social, catalog.GiftCodeLink, giftURL)
			out.Put(game)
			report.Updated = append(report.Updated, name)
			continue
		}

		logger.Info("searching external links", zap.String("game", name))
		facebook := im.lookup(ctx, logger, name+" FB")
		website := im.lookup(ctx, logger, name+" 官方")
		appStore := im.lookup(ctx, logger, name+" site:apps.apple.com/tw")
		bahamut := im.lookup(ctx, logger, name+" 巴哈")
		if err := im.Sleep(ctx, im.Delay); err != nil {
			return nil, report, err
		}

		out.Put(catalog.Game{
			Name:     name,
			Logo:     LogoPath(name),
			Products: products,
			Social: []catalog.SocialLink{
				{Name: LinkFacebook, URL: facebook},
				{Name: LinkWebsite, URL: website},
				{Name: catalog.GiftCodeLink, URL: giftURL},
				{Name: LinkAppStore, URL: appStore},
				{Name: LinkBahamut, URL: bahamut},
			},
			Description: description,
		})
		report.Added = append(report.Added, name)
		logger.Info("game added", zap.String("game", name))
		if err := im.Sleep(ctx, im.RowDelay); err != nil {
			return nil, report, err
		}
	}
	return out, report, nil
}

// products reads name/price pairs from GameColumnProducts onwards and stops
// at the first pair with both cells empty. Pairs without a valid price are
// skipped with a warning.
func (im *GamesImporter) products(logger *zap.Logger, report *Report, game string, line int, row []string) []catalog.Product {
	products := []catalog.Product{}
	for c := GameColumnProducts; c < len(row); c += 2 {
		pname, rawPrice := cell(row, c), cell(row, c+1)
		if pname == "" && rawPrice == "" {
			break
		}
		if pname == "" {
			report.warn(logger, fmt.Sprintf("%s row %d: price %q without product name skipped", game, line, rawPrice),
				zap.String("game", game), zap.Int("row", line), zap.Int("column", c+1))
			continue
		}
		price, err := strconv.Atoi(rawPrice)
		p := catalog.Product{Name: pname, Price: price}
		if err == nil {
			err = im.validate.Struct(p)
		}
		if err != nil {
			report.warn(logger, fmt.Sprintf("%s row %d: product %q has invalid price %q", game, line, pname, rawPrice),
				zap.String("game", game), zap.Int("row", line), zap.String("product", pname), zap.Error(err))
			continue
		}
		products = append(products, p)
	}
	return products
}

func (im *GamesImporter) lookup(ctx context.Context, logger *zap.Logger, query string) string {
	link, err := im.Search.Search(ctx, query)
	if err != nil || link == "" {
		if err != nil && !errors.Is(err, ErrNoResult) {
			logger.Warn("search failed", zap.String("query", query), zap.Error(err))
		}
		return catalog.MissingLink
	}
	return link
}

func withLink(links []catalog.SocialLink, name, url string) []catalog.SocialLink {
	out := slices.Clone(links)
	for i := range out {
		if out[i].Name == name {
			out[i].URL = url
			return out
		}
	}
	return append(out, catalog.SocialLink{Name: name, URL: url})
}

func sameProducts(a, b []catalog.Product) bool {
	if len(a) != len(b) {
		return false
	}
	cmp := func(x, y catalog.Product) int {
		if x.Name != y.Name {
			if x.Name < y.Name {
				return -1
			}
			return 1
		}
		return x.Price - y.Price
	}
	sa, sb := slices.Clone(a), slices.Clone(b)
	slices.SortFunc(sa, cmp)
	slices.SortFunc(sb, cmp)
	return slices.Equal(sa, sb)
}

// ImportFile merges the workbook at sheetPath into the games data file at
// dataPath. A missing data file starts from scratch; a malformed one aborts
// the import so no games are lost.
func (im *GamesImporter) ImportFile(ctx context.Context, sheetPath, dataPath string) (report Report, err error) {
	ctx, span := observability.StartSpan(ctx, "importer.Games", attribute.String("importer.sheet", sheetPath))
	defer func() { observability.EndSpan(span, err) }()
	logger := observability.FromContext(ctx)

	sheet, err := ReadSheetFile(sheetPath)
	if err != nil {
		return report, err
	}
	existing, err := readGames(dataPath)
	if err != nil {
		return report, fmt.Errorf("importer: read %s: %w", dataPath, err)
	}

	merged, report, err := im.Merge(ctx, sheet, existing)
	if err != nil {
		return report, err
	}
	if err := catalog.WriteFile(dataPath, merged); err != nil {
		return report, err
	}
	logger.Info("games imported",
		zap.String("output", dataPath),
		zap.Int("rows", report.Rows),
		zap.Int("added", len(report.Added)),
		zap.Int("updated", len(report.Updated)),
		zap.Int("warnings", len(report.Warnings)),
	)
	return report, nil
}

func readGames(path string) (*catalog.GameSet, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return catalog.NewGameSet(), nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return catalog.DecodeGames(f)
}
