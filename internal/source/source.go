// Package source loads prompt template text from files, stdin, JSON
// documents and templates carrying YAML front matter.
package source

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tidwall/gjson"
	"sigs.k8s.io/yaml"
)

// FrontMatter is the optional YAML header of a template file, delimited
// by "---" lines.
type FrontMatter struct {
	Name        string            `json:"name,omitempty"`
	Description string            `json:"description,omitempty"`
	Labels      map[string]string `json:"labels,omitempty"`
}

// Template is one loaded prompt template.
type Template struct {
	Text  string
	Label string
	Meta  FrontMatter
}

const frontMatterDelim = "---"

// Load reads a template from path ("-" reads stdin). When jsonPath is
// non-empty the file is treated as a JSON document and the template
// text is the string at that gjson path. Otherwise a YAML front matter
// block, when present, is stripped into Meta.
func Load(path, jsonPath string) (Template, error) {
	data, label, err := read(path)
	if err != nil {
		return Template{}, err
	}

	if jsonPath != "" {
		value := gjson.GetBytes(data, jsonPath)
		if !value.Exists() {
			return Template{}, fmt.Errorf("json path %q not found in %s", jsonPath, label)
		}
		return Template{Text: value.String(), Label: label}, nil
	}

	text := string(data)
	meta, body, err := splitFrontMatter(text)
	if err != nil {
		return Template{}, fmt.Errorf("parse front matter in %s: %w", label, err)
	}
	return Template{Text: body, Label: label, Meta: meta}, nil
}

func read(path string) ([]byte, string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, "", fmt.Errorf("read stdin: %w", err)
		}
		return data, "stdin", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	return data, path, nil
}

// splitFrontMatter separates an optional leading YAML block from the
// template body. Text without a front matter header passes through
// unchanged.
func splitFrontMatter(text string) (FrontMatter, string, error) {
	var meta FrontMatter
	if !strings.HasPrefix(text, frontMatterDelim+"\n") {
		return meta, text, nil
	}
	rest := text[len(frontMatterDelim)+1:]
	end := strings.Index(rest, "\n"+frontMatterDelim)
	if end < 0 {
		return meta, text, nil
	}
	header := rest[:end]
	body := rest[end+1+len(frontMatterDelim):]
	body = strings.TrimPrefix(body, "\n")

	if err := yaml.Unmarshal([]byte(header), &meta); err != nil {
		return FrontMatter{}, "", err
	}
	return meta, body, nil
}
