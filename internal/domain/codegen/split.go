package codegen

import (
	"regexp"
	"strings"
)

var (
	styleBlock  = regexp.MustCompile(`(?is)<style(?:\s[^>]*)?>(.*?)</style>`)
	scriptBlock = regexp.MustCompile(`(?is)<script(?:\s[^>]*)?>(.*?)</script>`)
	bodyBlock   = regexp.MustCompile(`(?is)<body(?:\s[^>]*)?>(.*)</body>`)
)

// Split breaks a single HTML document back into markup, stylesheet and
// script. The first style and script blocks supply the stylesheet and
// script; markup is the body (or the whole document when there is no body)
// with every style and script block removed. The input is returned as the
// combined document unchanged.
func Split(document string) ExtractionResult {
	markup := document
	if m := bodyBlock.FindStringSubmatch(document); m != nil {
		markup = m[1]
	}
	markup = styleBlock.ReplaceAllString(markup, "")
	markup = scriptBlock.ReplaceAllString(markup, "")

	return ExtractionResult{
		CodeSnapshot: CodeSnapshot{
			HTML:       strings.TrimSpace(markup),
			CSS:        firstFence(styleBlock, document),
			JavaScript: firstFence(scriptBlock, document),
		},
		Combined: document,
	}
}
