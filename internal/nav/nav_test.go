package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeURIComponent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "abc", want: "abc"},
		{in: "a b", want: "a%20b"},
		{in: "A&B=C", want: "A%26B%3DC"},
		{in: "it's (new)!*~", want: "it's%20(new)!*~"},
		{in: "原神", want: "%E5%8E%9F%E7%A5%9E"},
		{in: "a+b/c?", want: "a%2Bb%2Fc%3F"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EncodeURIComponent(tt.in), tt.in)
	}
}

func TestGameURLFormat(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "game-detail.html?game=%E5%8E%9F%E7%A5%9E%20Impact", GameURL("原神 Impact"))
	assert.Equal(t, "gift-codes.html?game=A%26B", GiftCodeURL("A&B"))
	assert.Equal(t, "articles.html?game=x", ArticleURL("x"))
}

func TestBuildMarksActivePage(t *testing.T) {
	t.Parallel()

	items := Build("/all-games.html?x=1")
	require.Len(t, items, len(Main))
	for _, it := range items {
		assert.Equal(t, it.Href == AllGamesPage, it.Active, it.Href)
	}

	home := Build("")
	assert.True(t, home[0].Active)
}

func TestBreadcrumbs(t *testing.T) {
	t.Parallel()

	crumbs := Breadcrumbs("", "")
	require.Len(t, crumbs, 1)
	assert.True(t, crumbs[0].Active)

	crumbs = Breadcrumbs(GameDetailPage, "原神")
	require.Len(t, crumbs, 3)
	assert.Equal(t, AllGamesPage, crumbs[1].Href)
	assert.Equal(t, GameURL("原神"), crumbs[2].Href)
	assert.True(t, crumbs[2].Active)

	crumbs = Breadcrumbs("terms-of-service.html", "")
	require.Len(t, crumbs, 2)
	assert.Equal(t, "Terms of service", crumbs[1].Label)
}
