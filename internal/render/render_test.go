package render_test

import (
	"strings"
	"testing"

	"github.com/varoOP/bandpix/internal/domain"
	"github.com/varoOP/bandpix/internal/render"
)

func TestListItemRendersSuccessEntry(t *testing.T) {
	entry := &domain.CacheEntry{
		Name:        "Rush",
		ImageURL:    "https://upload.test/rush.jpg",
		FilePageURL: "https://commons.test/wiki/File:Rush.jpg",
		Credit:      "Jane Doe",
		LicenseName: "CC BY-SA 4.0",
		LicenseURL:  "https://creativecommons.org/licenses/by-sa/4.0",
	}

	out, err := render.ListItem(entry, "Rush", 1974)
	if err != nil {
		t.Fatalf("ListItem returned error: %v", err)
	}

	for _, want := range []string{
		`src="https://upload.test/rush.jpg"`,
		"Rush (1974)",
		"Jane Doe",
		"CC BY-SA 4.0",
		`href="https://commons.test/wiki/File:Rush.jpg"`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestListItemEscapesMetadataText(t *testing.T) {
	entry := &domain.CacheEntry{
		Name:        "Evil",
		ImageURL:    "https://upload.test/x.jpg",
		FilePageURL: "https://commons.test/wiki/File:X.jpg",
		Credit:      `<script>alert("x")</script>`,
		LicenseName: "CC0",
	}

	out, err := render.ListItem(entry, `<b>Evil</b>`, 0)
	if err != nil {
		t.Fatalf("ListItem returned error: %v", err)
	}
	if strings.Contains(out, "<script>") || strings.Contains(out, "<b>") {
		t.Fatalf("unescaped markup in output:\n%s", out)
	}
}

func TestListItemMissingVariants(t *testing.T) {
	for name, entry := range map[string]*domain.CacheEntry{
		"nil entry":      nil,
		"absence entry":  {Name: "Ghost", Missing: true},
		"empty imageUrl": {Name: "Ghost"},
	} {
		t.Run(name, func(t *testing.T) {
			out, err := render.ListItem(entry, "Ghost", 0)
			if err != nil {
				t.Fatalf("ListItem returned error: %v", err)
			}
			if !strings.Contains(out, "No freely licensed image found") {
				t.Fatalf("missing not-found message:\n%s", out)
			}
			if strings.Contains(out, "<img") {
				t.Fatalf("not-found variant must not embed an image:\n%s", out)
			}
		})
	}
}
