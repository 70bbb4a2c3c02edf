// catalog/catalog.go - Content catalog file format
package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// File is the on-disk catalog exchanged with the content-authoring
// system: modules in order, each with its lessons.
type File struct {
	Modules []Module `json:"modules"`
}

type Module struct {
	Title      string   `json:"title"`
	OrderIndex int      `json:"order_index"`
	Status     string   `json:"status"`
	Lessons    []Lesson `json:"lessons"`
}

type Lesson struct {
	Title      string `json:"title"`
	OrderIndex int    `json:"order_index"`
	Status     string `json:"status"`
	XPReward   int    `json:"xp_reward"`
}

// Parse reads and decodes a catalog document.
func Parse(r io.Reader) (*File, error) {
	var f File
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("invalid catalog JSON: %w", err)
	}
	return &f, nil
}

// ParseFile reads a catalog from disk.
func ParseFile(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	return Parse(fh)
}

// Validate returns every problem found in the catalog. An empty slice
// means the file is importable.
func (f *File) Validate() []string {
	var problems []string

	seenModules := map[string]bool{}
	for mi, m := range f.Modules {
		where := fmt.Sprintf("modules[%d]", mi)

		if strings.TrimSpace(m.Title) == "" {
			problems = append(problems, where+": title is empty")
		} else if seenModules[m.Title] {
			problems = append(problems, where+": duplicate module title "+quoted(m.Title))
		}
		seenModules[m.Title] = true

		if !validStatus(m.Status) {
			problems = append(problems, where+": status must be draft or published, got "+quoted(m.Status))
		}

		seenLessons := map[string]bool{}
		for li, l := range m.Lessons {
			lwhere := fmt.Sprintf("%s.lessons[%d]", where, li)

			if strings.TrimSpace(l.Title) == "" {
				problems = append(problems, lwhere+": title is empty")
			} else if seenLessons[l.Title] {
				problems = append(problems, lwhere+": duplicate lesson title "+quoted(l.Title))
			}
			seenLessons[l.Title] = true

			if !validStatus(l.Status) {
				problems = append(problems, lwhere+": status must be draft or published, got "+quoted(l.Status))
			}
			if l.XPReward < 0 {
				problems = append(problems, lwhere+": xp_reward must be non-negative")
			}
		}
	}

	return problems
}

func validStatus(s string) bool {
	return s == "draft" || s == "published"
}

func quoted(s string) string {
	return fmt.Sprintf("%q", s)
}
