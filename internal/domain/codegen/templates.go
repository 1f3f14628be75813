package codegen

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
)

const webTemplate = "Create a web application following these guidelines:\n" +
	"1. Semantic HTML5 structure\n" +
	"2. Modern, responsive CSS\n" +
	"3. Clean JavaScript with error handling\n" +
	"4. Cross-browser compatible\n" +
	"5. Performance optimized"

const gameTemplate = "Create a browser game with:\n" +
	"1. Clean JavaScript architecture\n" +
	"2. Game state management\n" +
	"3. User input handling\n" +
	"4. Victory/loss conditions\n" +
	"5. Error handling\n" +
	"6. Responsive design"

// Templates holds the base instruction block per application type
type Templates struct {
	base map[AppType]string
}

// templatesFile is the YAML layout accepted by LoadTemplates
type templatesFile struct {
	Templates map[string]string `yaml:"templates"`
}

// DefaultTemplates returns the built-in web and game templates
func DefaultTemplates() *Templates {
	return &Templates{
		base: map[AppType]string{
			AppTypeWeb:  webTemplate,
			AppTypeGame: gameTemplate,
		},
	}
}

// LoadTemplates reads extra application types from a YAML file and adds
// them to the built-ins. The built-in web and game entries cannot be
// replaced.
func LoadTemplates(path string) (*Templates, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read templates file: %w", err)
	}
	return ParseTemplates(data)
}

// ParseTemplates is LoadTemplates over an in-memory document
func ParseTemplates(data []byte) (*Templates, error) {
	var file templatesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	t := DefaultTemplates()
	for name, body := range file.Templates {
		key := AppType(strings.ToLower(strings.TrimSpace(name)))
		if key == "" {
			return nil, fmt.Errorf("template with empty name")
		}
		if _, builtin := t.base[key]; builtin {
			return nil, fmt.Errorf("template %q is built in and cannot be replaced", key)
		}
		body = strings.TrimSpace(body)
		if body == "" {
			return nil, fmt.Errorf("template %q is empty", key)
		}
		t.base[key] = body
	}
	return t, nil
}

// Base returns the block for appType, falling back to web
func (t *Templates) Base(appType AppType) string {
	if body, ok := t.base[appType]; ok {
		return body
	}
	return t.base[AppTypeWeb]
}

// Types lists the known application types
func (t *Templates) Types() []AppType {
	out := make([]AppType, 0, len(t.base))
	for k := range t.base {
		out = append(out, k)
	}
	return out
}
