package content

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, fragment string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<div id=\"root\">" + fragment + "</div>"))
	require.NoError(t, err)
	return doc
}

func TestBlockRendersMarkdown(t *testing.T) {
	r := New()
	out := r.Block("**天堂W** 是一款 MMORPG。\n第二行")

	doc := parse(t, out)
	assert.Equal(t, "天堂W", doc.Find("#root p strong").Text())
	assert.Equal(t, 1, doc.Find("#root p br").Length())
}

func TestBlockStripsScripts(t *testing.T) {
	r := New()
	out := r.Block(`介紹<script>alert(1)</script> <a href="javascript:alert(1)" onclick="x()">連結</a>`)

	doc := parse(t, out)
	assert.Zero(t, doc.Find("script").Length())
	assert.NotContains(t, out, "javascript:")
	assert.NotContains(t, out, "onclick")
	assert.Contains(t, doc.Text(), "連結")
}

func TestBlockLinksAreNofollow(t *testing.T) {
	r := New()
	doc := parse(t, r.Block("官網 https://example.com"))

	a := doc.Find("a")
	require.Equal(t, 1, a.Length())
	rel, _ := a.Attr("rel")
	assert.Contains(t, rel, "nofollow")
	target, _ := a.Attr("target")
	assert.Equal(t, "_blank", target)
}

func TestBlockEmpty(t *testing.T) {
	assert.Empty(t, New().Block("   "))
}

func TestPlainKeepsTextLiteral(t *testing.T) {
	r := New()
	out := r.Plain("# 經典 *MMORPG*\r\n1. <b>多人</b> & 連線\n")
	assert.Equal(t, "# 經典 *MMORPG*<br>1. &lt;b&gt;多人&lt;/b&gt; &amp; 連線", out)

	doc := parse(t, out)
	assert.Equal(t, 0, doc.Find("#root h1, #root em, #root ol, #root b").Length())
	assert.Equal(t, 1, doc.Find("#root br").Length())
	assert.Empty(t, r.Plain("  \n "))
}

func TestInlineDropsParagraph(t *testing.T) {
	assert.Equal(t, "進入遊戲 <strong>設定</strong>", New().Inline("進入遊戲 **設定**"))
}

func TestSteps(t *testing.T) {
	r := New()
	steps := r.Steps([]string{"登入遊戲", "  ", "點選 *兌換*"}, "預設")
	assert.Equal(t, []string{"登入遊戲", "點選 <em>兌換</em>"}, steps)

	assert.Equal(t, []string{"無特別說明，請參考遊戲內指引。"}, r.Steps(nil, "無特別說明，請參考遊戲內指引。"))
	assert.Empty(t, r.Steps(nil, ""))
}
