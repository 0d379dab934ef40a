// Package templates provides the embedded file templates nixstrap materializes.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"
)

//go:embed templates
var files embed.FS

// Read returns the raw embedded template content by name.
func Read(name string) ([]byte, error) {
	data, err := files.ReadFile("templates/" + name)
	if err != nil {
		return nil, fmt.Errorf("read template %s: %w", name, err)
	}
	return data, nil
}

// Render executes the named template with data. Missing keys are errors so a
// generated file can never ship an unresolved placeholder.
func Render(name string, data any) ([]byte, error) {
	raw, err := Read(name)
	if err != nil {
		return nil, err
	}
	tmpl, err := template.New(name).Option("missingkey=error").Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
