package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/diva3322/SSBuy-web/internal/catalog"
	"github.com/diva3322/SSBuy-web/internal/importer"
)

func run(t *testing.T, a *app, args ...string) (string, error) {
	t.Helper()
	if a.logger == nil {
		a.logger = zap.NewNop()
	}
	cmd := newRootCmd(a)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--env-file", filepath.Join(t.TempDir(), "missing.env")}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeWorkbook(t *testing.T, path string, rows [][]any) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	for i := range rows {
		cellName, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cellName, &rows[i]))
	}
	require.NoError(t, f.SaveAs(path))
}

func TestSitemapCommand(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html><head></head></html>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "contact.html"), []byte("<html></html>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "draft.html"), []byte(`<html><head><meta name="robots" content="noindex"></head></html>`), 0o644))
	games := filepath.Join(dir, catalog.GamesFile)
	require.NoError(t, os.WriteFile(games, []byte(`{"原神":{"logo":"images/原神.jpg","last_updated":"2024-05-01"}}`), 0o644))
	output := filepath.Join(dir, "sitemap.xml")

	out, err := run(t, &app{}, "sitemap",
		"--pages-dir", dir,
		"--games-data", games,
		"--output", output,
		"--base-url", "https://example.test",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "3 urls")

	xml, err := os.ReadFile(output)
	require.NoError(t, err)
	body := string(xml)
	assert.True(t, strings.HasPrefix(body, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, body, "<loc>https://example.test/</loc>")
	assert.Contains(t, body, "<loc>https://example.test/contact.html</loc>")
	assert.Contains(t, body, "<loc>https://example.test/game-detail.html?game=%E5%8E%9F%E7%A5%9E</loc>")
	assert.Contains(t, body, "<lastmod>2024-05-01</lastmod>")
	assert.NotContains(t, body, "draft.html")
}

func TestSitemapCommandRejectsBadConfig(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "sitemap.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("base_url: \"not a url\"\n"), 0o644))

	_, err := run(t, &app{}, "sitemap", "--config", cfgPath)
	require.Error(t, err)
}

func TestImportGiftCodesCommand(t *testing.T) {
	dir := t.TempDir()
	sheet := filepath.Join(dir, "giftcodes.xlsx")
	writeWorkbook(t, sheet, [][]any{
		{"遊戲名稱", "橫幅圖片檔名", "介紹", "兌換方式1", "禮包碼1", "內容物1"},
		{"原神", "", "開放世界", "登入遊戲", "GENSHINGIFT", "原石x60"},
	})
	data := filepath.Join(dir, catalog.GiftCodesFile)

	out, err := run(t, &app{}, "import", "giftcodes", "--sheet", sheet, "--data", data)
	require.NoError(t, err)

	var report importer.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, []string{"原神"}, report.Added)

	f, err := os.Open(data)
	require.NoError(t, err)
	defer f.Close()
	set, err := catalog.DecodeGiftCodes(f)
	require.NoError(t, err)
	g, ok := set.Lookup("原神")
	require.True(t, ok)
	assert.Equal(t, "giftcodesbanner/原神-禮包碼.jpg", g.Banner)
	assert.Equal(t, []catalog.GiftCode{{Code: "GENSHINGIFT", Reward: "原石x60"}}, g.Codes)
}

func TestImportGamesCommandUsesSearcher(t *testing.T) {
	t.Setenv("SSBUY_SEARCH_DELAY", "0s")
	t.Setenv("SSBUY_IMPORT_ROW_DELAY", "0s")

	dir := t.TempDir()
	sheet := filepath.Join(dir, "games.xlsx")
	writeWorkbook(t, sheet, [][]any{
		{"遊戲名稱", "", "", "", "", "禮包碼", "", "介紹", "商品1", "價格1"},
		{"新遊戲", "", "", "", "", "", "", "好玩", "月卡", "150"},
	})
	data := filepath.Join(dir, catalog.GamesFile)

	var queries []string
	a := &app{search: importer.SearcherFunc(func(_ context.Context, q string) (string, error) {
		queries = append(queries, q)
		return "https://found.example/" + q, nil
	})}
	out, err := run(t, a, "import", "games", "--sheet", sheet, "--data", data)
	require.NoError(t, err)

	var report importer.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, []string{"新遊戲"}, report.Added)
	assert.Len(t, queries, 4)

	f, err := os.Open(data)
	require.NoError(t, err)
	defer f.Close()
	set, err := catalog.DecodeGames(f)
	require.NoError(t, err)
	g, ok := set.Lookup("新遊戲")
	require.True(t, ok)
	assert.Equal(t, "images/新遊戲.jpg", g.Logo)
	assert.Equal(t, []catalog.Product{{Name: "月卡", Price: 150}}, g.Products)
}
