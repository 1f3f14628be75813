package codegen

import (
	"regexp"
	"strings"
)

// maxAnalysisItems caps each category of the existing-elements summary
const maxAnalysisItems = 10

var (
	tagPattern      = regexp.MustCompile(`<(\w+)[^>]*>`)
	functionPattern = regexp.MustCompile(`function\s+(\w+)`)
	classPattern    = regexp.MustCompile(`\.(\w+)`)
	cssComment      = regexp.MustCompile(`(?s)/\*.*?\*/`)
	cssSpace        = regexp.MustCompile(`\s+`)
)

// ElementsAnalysis summarizes what already exists in a snapshot. Matching
// is textual; nothing here parses HTML, CSS or JavaScript.
type ElementsAnalysis struct {
	HTMLElements []string
	Functions    []string
	CSSClasses   []string
}

// AnalyzeSnapshot collects up to ten distinct tag names, named function
// declarations and class selectors, in order of first appearance.
func AnalyzeSnapshot(s CodeSnapshot) ElementsAnalysis {
	return ElementsAnalysis{
		HTMLElements: distinctMatches(tagPattern, s.HTML, maxAnalysisItems),
		Functions:    distinctMatches(functionPattern, s.JavaScript, maxAnalysisItems),
		CSSClasses:   distinctMatches(classPattern, s.CSS, maxAnalysisItems),
	}
}

func distinctMatches(re *regexp.Regexp, text string, limit int) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0, limit)
	for _, m := range re.FindAllStringSubmatch(text, -1) {
		if len(out) == limit {
			break
		}
		if _, ok := seen[m[1]]; ok {
			continue
		}
		seen[m[1]] = struct{}{}
		out = append(out, m[1])
	}
	return out
}

// CSSRules maps a selector to its declarations
type CSSRules map[string]map[string]string

// ParseCSSRules splits stylesheet text into top-level rules. Comments are
// dropped and whitespace collapsed; nested blocks (media queries) are kept
// as one rule whose body is parsed as flat declarations.
func ParseCSSRules(css string) CSSRules {
	rules := make(CSSRules)
	css = cssComment.ReplaceAllString(css, "")
	css = cssSpace.ReplaceAllString(strings.TrimSpace(css), " ")

	var (
		depth      int
		selector   strings.Builder
		properties strings.Builder
	)

	for _, ch := range css {
		switch ch {
		case '{':
			depth++
			if depth == 1 {
				continue
			}
		case '}':
			depth--
			if depth == 0 {
				rules[strings.TrimSpace(selector.String())] = parseCSSProperties(strings.TrimSpace(properties.String()))
				selector.Reset()
				properties.Reset()
				continue
			}
			if depth < 0 {
				depth = 0
				continue
			}
		}

		if depth == 0 {
			selector.WriteRune(ch)
		} else {
			properties.WriteRune(ch)
		}
	}

	return rules
}

func parseCSSProperties(text string) map[string]string {
	props := make(map[string]string)
	for _, decl := range strings.Split(text, ";") {
		decl = strings.TrimSpace(decl)
		if decl == "" {
			continue
		}
		key, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		props[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return props
}

// PreservedRules counts selectors of before that are still present in after
func PreservedRules(before, after CSSRules) int {
	n := 0
	for sel := range before {
		if _, ok := after[sel]; ok {
			n++
		}
	}
	return n
}
