// Package catalog supplies immutable checklist template definitions.
// Templates come from the built-in set plus optional YAML files; they
// are read-only inputs to instantiation and are never persisted.
package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Item is a single entry in a checklist template.
type Item struct {
	ID          string `yaml:"id"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Category    string `yaml:"category"`
	Required    bool   `yaml:"required"`
}

// Template is an immutable checklist definition. ProjectTypes lists the
// project types the template applies to; empty means all types.
type Template struct {
	ID           string   `yaml:"id"`
	Name         string   `yaml:"name"`
	Description  string   `yaml:"description"`
	ProjectTypes []string `yaml:"project_types"`
	Items        []Item   `yaml:"items"`
}

// Find returns the template with the given ID.
func Find(templates []Template, id string) (Template, bool) {
	for _, t := range templates {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}

// ForProjectType returns the templates applicable to a project type.
// Templates with no ProjectTypes restriction apply to everything.
func ForProjectType(templates []Template, projectType string) []Template {
	var out []Template
	for _, t := range templates {
		if t.AppliesTo(projectType) {
			out = append(out, t)
		}
	}
	return out
}

// AppliesTo reports whether the template applies to a project type.
func (t Template) AppliesTo(projectType string) bool {
	if len(t.ProjectTypes) == 0 {
		return true
	}
	for _, pt := range t.ProjectTypes {
		if pt == projectType {
			return true
		}
	}
	return false
}

// RequiredCount returns the number of required items in the template.
func (t Template) RequiredCount() int {
	n := 0
	for _, item := range t.Items {
		if item.Required {
			n++
		}
	}
	return n
}

// Categories returns the distinct item categories, sorted.
func (t Template) Categories() []string {
	seen := make(map[string]bool)
	for _, item := range t.Items {
		seen[item.Category] = true
	}
	cats := make([]string, 0, len(seen))
	for c := range seen {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	return cats
}

// LoadFile reads and validates a single YAML template file.
func LoadFile(path string) (Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Template{}, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse unmarshals YAML bytes into a validated Template.
func Parse(data []byte) (Template, error) {
	var t Template
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Template{}, fmt.Errorf("catalog: parse: %w", err)
	}
	if err := t.validate(); err != nil {
		return Template{}, err
	}
	return t, nil
}

// LoadDir loads every .yaml/.yml template in a directory and appends
// them to the built-in set. A missing directory is not an error.
func LoadDir(dir string) ([]Template, error) {
	templates := Builtin()
	if dir == "" {
		return templates, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return templates, nil
		}
		return nil, fmt.Errorf("catalog: read dir %s: %w", dir, err)
	}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		t, err := LoadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		if _, exists := Find(templates, t.ID); exists {
			return nil, fmt.Errorf("catalog: duplicate template ID %q in %s", t.ID, e.Name())
		}
		templates = append(templates, t)
	}
	return templates, nil
}

// validate checks that the template is structurally sound.
func (t Template) validate() error {
	var errs []string
	if t.ID == "" {
		errs = append(errs, "id is required")
	}
	if t.Name == "" {
		errs = append(errs, "name is required")
	}
	seen := make(map[string]bool)
	for i, item := range t.Items {
		if item.ID == "" {
			errs = append(errs, fmt.Sprintf("items[%d].id is required", i))
		} else if seen[item.ID] {
			errs = append(errs, fmt.Sprintf("items[%d].id %q is duplicated", i, item.ID))
		}
		seen[item.ID] = true
		if item.Title == "" {
			errs = append(errs, fmt.Sprintf("items[%d].title is required", i))
		}
		if item.Category == "" {
			errs = append(errs, fmt.Sprintf("items[%d].category is required", i))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("catalog: template %q invalid: %s", t.ID, strings.Join(errs, "; "))
	}
	return nil
}
