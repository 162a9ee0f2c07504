package sitemap

import (
	"io"
	"os"
	"strings"

	"golang.org/x/net/html"
)

// isNoindex reports whether the page at path carries a robots meta tag with
// noindex. Parsing stops at the end of the head.
func isNoindex(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	return hasNoindex(f)
}

func hasNoindex(r io.Reader) bool {
	z := html.NewTokenizer(r)
	for {
		switch z.Next() {
		case html.ErrorToken:
			return false
		case html.EndTagToken:
			name, _ := z.TagName()
			if string(name) == "head" {
				return false
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			switch string(name) {
			case "body":
				return false
			case "meta":
				if hasAttr && robotsNoindex(z) {
					return true
				}
			}
		}
	}
}

func robotsNoindex(z *html.Tokenizer) bool {
	var isRobots bool
	var content string
	for {
		key, val, more := z.TagAttr()
		switch strings.ToLower(string(key)) {
		case "name":
			isRobots = strings.EqualFold(strings.TrimSpace(string(val)), "robots")
		case "content":
			content = strings.ToLower(string(val))
		}
		if !more {
			break
		}
	}
	return isRobots && strings.Contains(content, "noindex")
}
