// Package content turns catalog text into safe HTML. Descriptions and
// redemption steps are authored in spreadsheets, so they may carry light
// markdown and stray markup.
package content

import (
	"bytes"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// Renderer converts markdown to sanitized HTML. It is safe for concurrent use.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// New constructs a Renderer. Line breaks inside a paragraph are kept.
func New() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.Linkify, extension.Strikethrough),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		),
		policy: newPolicy(),
	}
}

func newPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").OnElements("p", "span", "strong")
	policy.RequireNoFollowOnLinks(true)
	policy.AddTargetBlankToFullyQualifiedLinks(true)
	return policy
}

// Block renders text as one or more sanitized HTML blocks. Empty input
// yields an empty string.
func (r *Renderer) Block(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(text), &buf); err != nil {
		return r.Sanitize(text)
	}
	return r.Sanitize(buf.String())
}

// Plain escapes text for display as written, with markdown and markup shown
// literally. Line breaks become <br>.
func (r *Renderer) Plain(text string) string {
	text = strings.TrimSpace(strings.ReplaceAll(text, "\r\n", "\n"))
	if text == "" {
		return ""
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = string(util.EscapeHTML([]byte(line)))
	}
	return strings.Join(lines, "<br>")
}

// Inline renders a single line without the surrounding paragraph, for use
// inside list items.
func (r *Renderer) Inline(text string) string {
	out := r.Block(text)
	if strings.Count(out, "<p>") == 1 && strings.HasPrefix(out, "<p>") && strings.HasSuffix(out, "</p>") {
		out = strings.TrimSuffix(strings.TrimPrefix(out, "<p>"), "</p>")
	}
	return out
}

// Steps renders each redemption step inline and drops blank steps. When no
// step remains, fallback is returned as the only step.
func (r *Renderer) Steps(steps []string, fallback string) []string {
	out := make([]string, 0, len(steps))
	for _, s := range steps {
		if rendered := r.Inline(s); rendered != "" {
			out = append(out, rendered)
		}
	}
	if len(out) == 0 && fallback != "" {
		out = append(out, r.Sanitize(fallback))
	}
	return out
}

// Sanitize strips markup outside the allowed policy.
func (r *Renderer) Sanitize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(r.policy.Sanitize(trimmed))
}
