package content

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultPortfolio(t *testing.T) {
	p, err := Default()
	if err != nil {
		t.Fatalf("default content: %v", err)
	}
	if p.Hero.Name != "TNESH" {
		t.Fatalf("unexpected hero name %q", p.Hero.Name)
	}
	if len(p.Projects.Items) != 4 {
		t.Fatalf("expected 4 projects, got %d", len(p.Projects.Items))
	}
	if len(p.Skills.Items) != 10 {
		t.Fatalf("expected 10 skills, got %d", len(p.Skills.Items))
	}
	if len(p.Contact.Socials) != 4 || p.Contact.Email == "" {
		t.Fatalf("unexpected contact block: %+v", p.Contact)
	}
}

func TestLoadEmptyPathUsesDefault(t *testing.T) {
	p, err := Load("  ")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if p.About.Title != "Tevin" {
		t.Fatalf("expected default about title, got %q", p.About.Title)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.toml")
	doc := `
[hero]
name = "ADA"
tagline = "Engines"

[[skills.items]]
name = "Go"
level = 70
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	p, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if p.Hero.Name != "ADA" || len(p.Skills.Items) != 1 || p.Skills.Items[0].Level != 70 {
		t.Fatalf("unexpected portfolio: %+v", p)
	}
}

func TestValidateRejectsBadContent(t *testing.T) {
	cases := map[string]string{
		"missing name": `[[skills.items]]
name = "Go"
level = 10`,
		"no sections": `[hero]
name = "X"`,
		"level range": `[hero]
name = "X"
[[skills.items]]
name = "Go"
level = 120`,
		"empty project title": `[hero]
name = "X"
[[projects.items]]
description = "untitled"`,
	}
	for name, doc := range cases {
		if _, err := Parse(doc); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil || !strings.Contains(err.Error(), "failed to read content") {
		t.Fatalf("expected read error, got %v", err)
	}
}
