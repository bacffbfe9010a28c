package storage

import (
	"strings"
	"testing"
)

func TestObjectFileName(t *testing.T) {
	name := ObjectFileName("photo.JPG")
	if !strings.HasSuffix(name, ".JPG") {
		t.Errorf("expected original extension kept, got %q", name)
	}
	if strings.Count(name, "-") != 1 {
		t.Errorf("expected <timestamp>-<suffix> shape, got %q", name)
	}

	if name := ObjectFileName("noextension"); !strings.HasSuffix(name, ".bin") {
		t.Errorf("expected .bin fallback, got %q", name)
	}

	if a, b := ObjectFileName("a.png"), ObjectFileName("a.png"); a == b {
		t.Errorf("expected distinct names for repeated uploads, got %q twice", a)
	}
}
