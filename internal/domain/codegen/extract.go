package codegen

import (
	"regexp"
	"strings"
)

// Fence labels, in the order every prompt asks for them
const (
	FenceHTML       = "html"
	FenceCSS        = "css"
	FenceJavaScript = "javascript"
)

var (
	htmlFence       = fencePattern(FenceHTML)
	cssFence        = fencePattern(FenceCSS)
	javascriptFence = fencePattern(FenceJavaScript)
)

func fencePattern(label string) *regexp.Regexp {
	return regexp.MustCompile("(?s)```" + regexp.QuoteMeta(label) + `\s*(.*?)\s*` + "```")
}

// Extract pulls the first html, css and javascript fenced block out of text.
// A missing block yields an empty field; later blocks with the same label
// are ignored.
func Extract(text string) CodeSnapshot {
	return CodeSnapshot{
		HTML:       firstFence(htmlFence, text),
		CSS:        firstFence(cssFence, text),
		JavaScript: firstFence(javascriptFence, text),
	}
}

func firstFence(re *regexp.Regexp, text string) string {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}
