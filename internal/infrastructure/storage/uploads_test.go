package storage

import (
	"strings"
	"testing"
	"time"
)

func TestStoredName_Format(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	name := StoredName(now, "leaky tap.jpg")
	if !strings.HasSuffix(name, "-leaky_tap.jpg") {
		t.Errorf("unexpected name %q", name)
	}
	if !strings.HasPrefix(name, "1773133200000000000-") {
		t.Errorf("name must start with the unix-nano timestamp, got %q", name)
	}
}

func TestStoredName_StripsPathComponents(t *testing.T) {
	name := StoredName(time.Now(), "../../etc/passwd")
	if strings.Contains(name, "/") || strings.Contains(name, "..") {
		t.Errorf("path components must be stripped, got %q", name)
	}
}

func TestStoredName_EmptyOriginal(t *testing.T) {
	name := StoredName(time.Now(), "")
	if !strings.HasSuffix(name, "-upload") {
		t.Errorf("empty original must fall back to a placeholder, got %q", name)
	}
}
