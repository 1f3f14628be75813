package codegen

import (
	"strings"
	"text/template"
)

var combinedDocument = template.Must(template.New("combined").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <style>
    {{.CSS}}
    </style>
</head>
<body>
    {{.HTML}}
    <script>
    {{.JavaScript}}
    </script>
</body>
</html>`))

// Assemble builds an ExtractionResult from extracted fragments. With a prior
// snapshot, every fragment that is blank falls back to the prior field. The
// combined document is rendered fresh and embeds fragments unescaped.
func Assemble(fragments CodeSnapshot, prior *CodeSnapshot, title string) ExtractionResult {
	if prior != nil {
		fragments.HTML = fallback(fragments.HTML, prior.HTML)
		fragments.CSS = fallback(fragments.CSS, prior.CSS)
		fragments.JavaScript = fallback(fragments.JavaScript, prior.JavaScript)
	}

	return ExtractionResult{
		CodeSnapshot: fragments,
		Combined:     Combine(fragments, title),
	}
}

// Combine renders the single-document form of a snapshot
func Combine(s CodeSnapshot, title string) string {
	var sb strings.Builder
	// strings.Builder never fails a write
	if err := combinedDocument.Execute(&sb, struct {
		CodeSnapshot
		Title string
	}{s, title}); err != nil {
		panic(err)
	}
	return sb.String()
}

func fallback(value, prior string) string {
	if strings.TrimSpace(value) == "" {
		return prior
	}
	return value
}
