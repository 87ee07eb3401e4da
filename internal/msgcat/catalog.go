package msgcat

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	yaml "gopkg.in/yaml.v3"
)

//go:embed messages.en.yaml
var defaultFiles embed.FS

// Catalog holds every user-visible reply string, keyed by flattened
// dot-path. Values are text/template bodies rendered with
// missingkey=error so a bad key fails loudly instead of sending a
// half-rendered message.
type Catalog struct {
	templates map[string]*template.Template
}

// New loads and compiles the embedded default messages.
func New() (*Catalog, error) {
	raw, err := fs.ReadFile(defaultFiles, "messages.en.yaml")
	if err != nil {
		return nil, fmt.Errorf("read embedded messages: %w", err)
	}

	var tree map[string]any
	if err := yaml.Unmarshal(raw, &tree); err != nil {
		return nil, fmt.Errorf("parse messages: %w", err)
	}

	flat := make(map[string]string)
	if err := flattenStrings(tree, "", flat); err != nil {
		return nil, err
	}

	c := &Catalog{templates: make(map[string]*template.Template, len(flat))}
	for key, body := range flat {
		tpl, err := template.New(key).Option("missingkey=error").Parse(body)
		if err != nil {
			return nil, fmt.Errorf("parse template %q: %w", key, err)
		}
		c.templates[key] = tpl
	}
	return c, nil
}

// Render fills the template at key with data.
func (c *Catalog) Render(key string, data any) (string, error) {
	tpl, ok := c.templates[strings.TrimSpace(key)]
	if !ok {
		return "", fmt.Errorf("template not found: %s", key)
	}
	var sb strings.Builder
	if err := tpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("render %s: %w", key, err)
	}
	return sb.String(), nil
}

func flattenStrings(src any, prefix string, out map[string]string) error {
	switch v := src.(type) {
	case map[string]any:
		for k, vv := range v {
			key := k
			if prefix != "" {
				key = prefix + "." + k
			}
			if err := flattenStrings(vv, key, out); err != nil {
				return err
			}
		}
		return nil
	case string:
		if prefix == "" {
			return fmt.Errorf("string value without key prefix")
		}
		out[prefix] = v
		return nil
	case nil:
		return nil
	default:
		// Only string leaves are allowed to avoid type confusion
		return fmt.Errorf("unsupported value at %s: %T", prefix, v)
	}
}
