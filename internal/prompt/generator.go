// Package prompt builds the instruction prompt sent to the completion API.
package prompt

import (
	"bytes"
	"fmt"
	"os"
	"text/template"
)

// Generator renders the improvement prompt for a paragraph.
type Generator struct {
	template *template.Template
}

// PromptData is the data passed to the prompt template.
type PromptData struct {
	Input string
}

// NewGenerator creates a generator using the built-in template.
func NewGenerator() *Generator {
	return &Generator{
		template: template.Must(template.New("prompt").Parse(DefaultTemplate)),
	}
}

// SetTemplate sets a custom prompt template. The paragraph is available
// as {{ .Input }}.
func (g *Generator) SetTemplate(tmpl string) error {
	t, err := template.New("prompt").Option("missingkey=error").Parse(tmpl)
	if err != nil {
		return fmt.Errorf("parsing template: %w", err)
	}
	g.template = t
	return nil
}

// LoadTemplate reads a custom template from disk.
func (g *Generator) LoadTemplate(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading template file: %w", err)
	}
	return g.SetTemplate(string(data))
}

// Generate embeds input verbatim. Empty input is passed through.
func (g *Generator) Generate(input string) (string, error) {
	var buf bytes.Buffer
	if err := g.template.Execute(&buf, PromptData{Input: input}); err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}
	return buf.String(), nil
}

// SchemaInstruction is the part of the default template that fixes the
// reply format.
const SchemaInstruction = `Return the improved text versions within a JSON object where keys represent the language.
Each language key should have an array of improved text samples (even if it's just one).
The JSON object should have the following structure:
{
  "languages": ["en", "kn"],
  "samples": {
    "en": [
      "Improved English version 1",
      "Improved English version 2"
    ],
    "kn": [
      "Kannada version"
    ]
  }
}

Do not include any extra text or explanation outside of this JSON structure.`

// DefaultTemplate asks for grammar, spelling and clarity improvements.
const DefaultTemplate = `Act as a content expert.
Please improve the following paragraph for grammar, spelling, clarity, and overall quality.
` + SchemaInstruction + `

---
{{ .Input }}
`
