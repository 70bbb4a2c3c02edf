package catalog

import (
	"strings"
	"testing"
)

const validCatalog = `{
	"modules": [
		{
			"title": "Getting Started",
			"order_index": 1,
			"status": "published",
			"lessons": [
				{"title": "Welcome", "order_index": 1, "status": "published", "xp_reward": 10},
				{"title": "Setup", "order_index": 2, "status": "draft", "xp_reward": 10}
			]
		}
	]
}`

func TestParseValidCatalog(t *testing.T) {
	f, err := Parse(strings.NewReader(validCatalog))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(f.Modules) != 1 {
		t.Fatalf("expected 1 module, got %d", len(f.Modules))
	}
	if len(f.Modules[0].Lessons) != 2 {
		t.Fatalf("expected 2 lessons, got %d", len(f.Modules[0].Lessons))
	}
	if problems := f.Validate(); len(problems) != 0 {
		t.Fatalf("expected clean validation, got %v", problems)
	}
}

func TestParseRejectsMalformedJSON(t *testing.T) {
	if _, err := Parse(strings.NewReader(`{"modules": [`)); err == nil {
		t.Fatal("expected error for truncated JSON")
	}
}

func TestValidateReportsProblems(t *testing.T) {
	f := &File{
		Modules: []Module{
			{
				Title:  "Dup",
				Status: "published",
				Lessons: []Lesson{
					{Title: "L", Status: "published", XPReward: -1},
					{Title: "L", Status: "archived", XPReward: 5},
				},
			},
			{Title: "Dup", Status: "published"},
			{Title: "  ", Status: "published"},
		},
	}

	problems := f.Validate()
	wantFragments := []string{
		"xp_reward must be non-negative",
		"duplicate lesson title",
		"status must be draft or published",
		"duplicate module title",
		"title is empty",
	}
	for _, frag := range wantFragments {
		found := false
		for _, p := range problems {
			if strings.Contains(p, frag) {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("expected a problem containing %q, got %v", frag, problems)
		}
	}
}
