package generator

import (
	"bytes"
	"fmt"
)

// renders Markdown to HTML wrapped in a question-content container.
// raw HTML in the input is not passed through.
func (g *Generator) ToHTML(markdown string) (string, error) {
	if markdown == "" {
		return "", nil
	}

	var buf bytes.Buffer

	buf.WriteString(`<div class="question-content">` + "\n")

	if err := g.markdown.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}

	buf.WriteString("</div>")

	return buf.String(), nil
}
