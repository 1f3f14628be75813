package codegen

import (
	"strings"
	"text/template"
)

// OutputFormat is the fence block every prompt ends with. Extract relies on
// these labels.
const OutputFormat = "```html\n[Your HTML code here]\n```\n\n" +
	"```css\n[Your CSS code here]\n```\n\n" +
	"```javascript\n[Your JavaScript code here]\n```"

const (
	roleFraming         = "Act as a web development expert."
	imageMatchPhrase    = "similar to this image"
	standardRequirement = "- Standard implementation"
	exactFormatLead     = "Return the code in the exact format below:\n"
)

const imageMatchTemplate = roleFraming + ` Generate complete website code matching this description:
{{.Prompt}}

Requirements:
- Pixel-perfect layout matching
- Responsive design
- Modern CSS (Flexbox/Grid)
- Semantic HTML
- Interactive elements where appropriate

` + exactFormatLead + OutputFormat

const modificationTemplate = roleFraming + ` Please modify the existing code based on this request: {{.Prompt}}

IMPORTANT GUIDELINES:
1. Preserve ALL existing styles and functionality
2. Only add or modify the specific styles or elements mentioned in the request
3. Return complete, unmodified sections for HTML/JS if they don't need changes
4. For CSS changes:
   - Keep all existing CSS rules intact
   - Only modify the specific properties mentioned
   - Add new rules without removing existing ones

Existing Elements Analysis:
- HTML elements: {{join .Analysis.HTMLElements}}...
- JavaScript functions: {{join .Analysis.Functions}}...
- CSS classes: {{join .Analysis.CSSClasses}}...

Current Code:

` + "```html\n{{.Code.HTML}}\n```\n\n```css\n{{.Code.CSS}}\n```\n\n```javascript\n{{.Code.JavaScript}}\n```" + `

Return the complete code with your specific modifications in clearly marked sections using the exact format below:
` + OutputFormat

const descriptionTemplate = `Convert this web design description into HTML, CSS, and JavaScript code:

Design Description:
{{.}}

Generate complete code with:
1. Semantic HTML5 structure
2. Modern CSS (Flexbox/Grid)
3. Clean JavaScript
4. Responsive design
5. Accessibility features

` + exactFormatLead + OutputFormat

var (
	funcs = template.FuncMap{
		"join": func(items []string) string { return strings.Join(items, ", ") },
	}

	imageMatchPrompt   = template.Must(template.New("image_match").Parse(imageMatchTemplate))
	modificationPrompt = template.Must(template.New("modification").Funcs(funcs).Parse(modificationTemplate))
	descriptionPrompt  = template.Must(template.New("description").Parse(descriptionTemplate))
)

// PromptBuilder renders the instruction text sent to the completion provider
type PromptBuilder struct {
	templates *Templates
}

// NewPromptBuilder creates a builder over the given application templates.
// A nil set uses the built-in web and game templates.
func NewPromptBuilder(templates *Templates) *PromptBuilder {
	if templates == nil {
		templates = DefaultTemplates()
	}
	return &PromptBuilder{templates: templates}
}

// Build picks the modification path when the request carries existing
// code and the new-code path otherwise
func (b *PromptBuilder) Build(req GenerationRequest) (string, error) {
	if req.IsModification() {
		return b.Modification(req.Prompt, *req.ExistingCode)
	}
	return b.NewCode(req)
}

// NewCode builds a prompt for generating an application from scratch
func (b *PromptBuilder) NewCode(req GenerationRequest) (string, error) {
	if strings.Contains(strings.ToLower(req.Prompt), imageMatchPhrase) {
		return render(imageMatchPrompt, req)
	}

	requirements := standardRequirement
	if len(req.Requirements) > 0 {
		items := make([]string, len(req.Requirements))
		for i, r := range req.Requirements {
			items[i] = "- " + r
		}
		requirements = strings.Join(items, "\n")
	}

	var sb strings.Builder
	sb.WriteString(roleFraming)
	sb.WriteString(" Create code for this request: ")
	sb.WriteString(req.Prompt)
	sb.WriteString("\n\nRequirements:\n")
	sb.WriteString(requirements)
	sb.WriteString("\n\n")
	sb.WriteString(b.templates.Base(req.Type))
	sb.WriteString("\n\n")
	sb.WriteString(exactFormatLead)
	sb.WriteString(OutputFormat)
	return sb.String(), nil
}

// Modification builds a prompt asking for a targeted change to existing code
func (b *PromptBuilder) Modification(prompt string, existing CodeSnapshot) (string, error) {
	return render(modificationPrompt, struct {
		Prompt   string
		Analysis ElementsAnalysis
		Code     CodeSnapshot
	}{
		Prompt:   prompt,
		Analysis: AnalyzeSnapshot(existing),
		Code:     existing,
	})
}

// FromDescription builds a prompt turning a vision description into code
func (b *PromptBuilder) FromDescription(description string) (string, error) {
	return render(descriptionPrompt, description)
}

func render(t *template.Template, data interface{}) (string, error) {
	var sb strings.Builder
	if err := t.Execute(&sb, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}
