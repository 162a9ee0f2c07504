package importer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/diva3322/SSBuy-web/internal/catalog"
	"github.com/diva3322/SSBuy-web/internal/observability"
)

// Gift-code sheet columns, matched by header text.
const (
	GiftColumnName   = "遊戲名稱"
	GiftColumnBanner = "橫幅圖片檔名"
	GiftColumnIntro  = "介紹"
	GiftColumnHowTo  = "兌換方式"
	GiftColumnCode   = "禮包碼"
	GiftColumnReward = "內容物"

	// MaxGiftCodes is the number of code/reward column pairs read per row.
	MaxGiftCodes = 19
)

// ErrMissingColumn is returned when a required header is absent.
var ErrMissingColumn = errors.New("importer: missing column")

// DefaultGiftBanner is the banner path assumed for games new to the data file.
func DefaultGiftBanner(name string) string {
	return "giftcodesbanner/" + name + "-禮包碼.jpg"
}

// MergeGiftCodes applies the gift-code sheet to existing. Rows replace the
// description, redemption steps and codes of their game; the banner comes
// from the sheet, else the existing entry, else DefaultGiftBanner. Existing
// entries keep their position and new games are appended in sheet order.
func MergeGiftCodes(ctx context.Context, sheet Sheet, existing *catalog.GiftCodeSet) (*catalog.GiftCodeSet, Report, error) {
	logger := observability.FromContext(ctx)
	var report Report

	nameCol := sheet.Column(GiftColumnName)
	if nameCol < 0 {
		return nil, report, fmt.Errorf("%w: %s", ErrMissingColumn, GiftColumnName)
	}
	bannerCol := sheet.Column(GiftColumnBanner)
	introCol := sheet.Column(GiftColumnIntro)
	var howToCols []int
	for i, h := range sheet.Header {
		if strings.HasPrefix(h, GiftColumnHowTo) {
			howToCols = append(howToCols, i)
		}
	}
	type pair struct{ code, reward int }
	codeCols := make([]pair, 0, MaxGiftCodes)
	for i := 1; i <= MaxGiftCodes; i++ {
		n := strconv.Itoa(i)
		codeCols = append(codeCols, pair{sheet.Column(GiftColumnCode + n), sheet.Column(GiftColumnReward + n)})
	}

	out := catalog.NewGiftCodeSet()
	if existing != nil {
		for _, g := range existing.All() {
			out.Put(g)
		}
	}

	for _, row := range sheet.Rows {
		name := cell(row, nameCol)
		if name == "" {
			continue
		}
		report.Rows++

		entry, known := out.Lookup(name)
		entry.Name = name
		switch banner := cell(row, bannerCol); {
		case banner != "":
			entry.Banner = banner
		case known && entry.Banner != "":
			// keep the banner already on file
		default:
			entry.Banner = DefaultGiftBanner(name)
		}
		entry.Description = cell(row, introCol)

		entry.HowTo = make([]string, 0, len(howToCols))
		for _, c := range howToCols {
			if step := cell(row, c); step != "" {
				entry.HowTo = append(entry.HowTo, step)
			}
		}

		entry.Codes = make([]catalog.GiftCode, 0, len(codeCols))
		for _, p := range codeCols {
			code, reward := cell(row, p.code), cell(row, p.reward)
			if code == "" || reward == "" {
				continue
			}
			entry.Codes = append(entry.Codes, catalog.GiftCode{Code: code, Reward: reward})
		}

		if known {
			report.Updated = append(report.Updated, name)
		} else {
			report.Added = append(report.Added, name)
		}
		out.Put(entry)
		logger.Debug("gift codes merged", zap.String("game", name), zap.Int("codes", len(entry.Codes)))
	}
	return out, report, nil
}

// ImportGiftCodesFile merges the workbook at sheetPath into the data file at
// dataPath. A missing, empty or unreadable data file starts from scratch.
func ImportGiftCodesFile(ctx context.Context, sheetPath, dataPath string) (report Report, err error) {
	ctx, span := observability.StartSpan(ctx, "importer.GiftCodes", attribute.String("importer.sheet", sheetPath))
	defer func() { observability.EndSpan(span, err) }()
	logger := observability.FromContext(ctx)

	sheet, err := ReadSheetFile(sheetPath)
	if err != nil {
		return report, err
	}

	existing, err := readGiftCodes(dataPath)
	if err != nil {
		logger.Warn("gift code data unreadable, starting fresh", zap.String("path", dataPath), zap.Error(err))
		existing = catalog.NewGiftCodeSet()
	}

	merged, report, err := MergeGiftCodes(ctx, sheet, existing)
	if err != nil {
		return report, err
	}
	if err := catalog.WriteFile(dataPath, merged); err != nil {
		return report, err
	}
	logger.Info("gift codes imported",
		zap.String("output", dataPath),
		zap.Int("rows", report.Rows),
		zap.Int("added", len(report.Added)),
		zap.Int("updated", len(report.Updated)),
	)
	return report, nil
}

func readGiftCodes(path string) (*catalog.GiftCodeSet, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return catalog.NewGiftCodeSet(), nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if info, err := f.Stat(); err == nil && info.Size() == 0 {
		return catalog.NewGiftCodeSet(), nil
	}
	return catalog.DecodeGiftCodes(f)
}
