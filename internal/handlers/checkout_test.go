package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diva3322/SSBuy-web/internal/checkout"
)

func TestCheckoutTotal(t *testing.T) {
	router := newTestRouter(newTestStore(t))

	rec := do(t, router, http.MethodPost, "/api/checkout/total", `{"game":"天堂W","selected":["鑽石 x300","鑽石 x1000"]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	summary := decode[checkout.Summary](t, rec)
	assert.Equal(t, 1240, summary.Total)
	assert.Equal(t, "鑽石 x300 + 鑽石 x1000", summary.Label)
	assert.Equal(t, "結帳總金額: NT$1240", summary.Display)

	rec = do(t, router, http.MethodPost, "/api/checkout/total", `{"game":"天堂W","selected":[]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	summary = decode[checkout.Summary](t, rec)
	assert.Equal(t, 0, summary.Total)
	assert.Equal(t, checkout.EmptyLabel, summary.Label)
	assert.Equal(t, "結帳總金額: NT$0", summary.Display)
}

func TestCheckoutTotalByIndex(t *testing.T) {
	router := newTestRouter(newTestStore(t))

	rec := do(t, router, http.MethodPost, "/api/checkout/total", `{"game":"天堂W","indexes":[1,0]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	summary := decode[checkout.Summary](t, rec)
	assert.Equal(t, 1240, summary.Total)
	assert.Equal(t, "鑽石 x300 + 鑽石 x1000", summary.Label)

	rec = do(t, router, http.MethodPost, "/api/checkout/total", `{"game":"天堂W","indexes":[2]}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "unknown_product", decode[map[string]any](t, rec)["error"])
}

func TestCheckoutTotalErrors(t *testing.T) {
	router := newTestRouter(newTestStore(t))

	cases := []struct {
		name    string
		body    string
		status  int
		message string
	}{
		{"unknown product", `{"game":"天堂W","selected":["鑽石 x9999"]}`, http.StatusUnprocessableEntity, "所選商品不存在，請重新選擇。"},
		{"unknown game", `{"game":"不存在","selected":[]}`, http.StatusNotFound, "找不到遊戲"},
		{"missing game", `{"selected":[]}`, http.StatusBadRequest, "未提供遊戲名稱"},
		{"malformed", `{"game":`, http.StatusBadRequest, "請求格式錯誤。"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, router, http.MethodPost, "/api/checkout/total", tc.body)
			require.Equal(t, tc.status, rec.Code, rec.Body.String())
			assert.Equal(t, tc.message, decode[map[string]any](t, rec)["message"])
		})
	}

	rec := do(t, newTestRouter(newFailingStore()), http.MethodPost, "/api/checkout/total", `{"game":"天堂W","selected":[]}`)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "載入商品失敗", decode[map[string]any](t, rec)["message"])
}
