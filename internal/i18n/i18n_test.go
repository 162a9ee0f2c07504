package i18n

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultBundle(t *testing.T) {
	b := Default()
	assert.Equal(t, "zh-TW", b.Fallback())
	assert.Equal(t, "載入遊戲列表失敗，請稍後再試。", b.T("", "carousel.unavailable"))
	assert.Equal(t, "目前沒有公開的禮包碼。", b.T("zh-TW", "giftcode.no_codes"))
	assert.Equal(t, "missing.key", b.T("zh-TW", "missing.key"))
}

func TestTf(t *testing.T) {
	b := Default()
	assert.Equal(t, "❌ 找不到 原神 的禮包碼資料。", b.Tf("zh-TW", "giftcode.not_found", "原神"))
	assert.Equal(t, "天堂W 代儲值", b.Tf("zh-TW", "game.title", "天堂W"))
	intro := b.Tf("zh-TW", "giftcode.intro", "原神", 2025)
	assert.Contains(t, intro, "小編今天來分享原神在2025年")
	assert.Contains(t, intro, "玩家分享的原神各式禮包碼")
}

func TestVariants(t *testing.T) {
	subs := Default().Variants("zh-TW", "giftcodes.subtitle")
	require.Len(t, subs, 6)
	assert.Equal(t, "豐富虛寶等你領", subs[0])
	assert.Equal(t, "禮包碼攻略大全", subs[5])
	assert.Empty(t, Default().Variants("zh-TW", "nothing"))
}

func TestResolve(t *testing.T) {
	fsys := fstest.MapFS{
		"l/zh-TW.json": {Data: []byte(`{"hello":"你好"}`)},
		"l/en.json":    {Data: []byte(`{"hello":"hello"}`)},
	}
	b, err := Load(fsys, "l", "zh-TW", []string{"zh-TW", "en", "ja"})
	require.NoError(t, err)

	assert.Equal(t, []string{"en", "zh-TW"}, b.Supported())
	assert.Equal(t, "en", b.Resolve("zh-TW;q=0.8, en;q=0.9"))
	assert.Equal(t, "zh-TW", b.Resolve("zh-Hant-TW"))
	assert.Equal(t, "zh-TW", b.Resolve(""))
	assert.Equal(t, "hello", b.T("en", "hello"))
	assert.Equal(t, "你好", b.T("ja", "hello"))
}

func TestLoadRequiresFallback(t *testing.T) {
	_, err := Load(fstest.MapFS{}, "l", "zh-TW", nil)
	require.Error(t, err)
}
