package brand

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoaderMissingFile(t *testing.T) {
	loader := NewLoader(filepath.Join(t.TempDir(), "missing.yml"))

	text, err := loader.Load()
	if err != nil {
		t.Fatalf("Load should tolerate a missing file, got: %v", err)
	}
	if text != DefaultGuidelines {
		t.Errorf("Expected default guidelines, got %q", text)
	}
}

func TestLoaderReadsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "guidelines.yml")
	content := `voice: "Confident but grounded"
tone: "Friendly"
banned_phrases:
  - "game changer"
  - "synergy"
notes:
  - "Always write platform-native copy."
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	loader := NewLoader(path)

	text, err := loader.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	for _, want := range []string{"Confident but grounded", "Friendly", "game changer", "platform-native"} {
		if !strings.Contains(text, want) {
			t.Errorf("Rendered guidelines should contain %q, got:\n%s", want, text)
		}
	}
}

func TestLoaderCachesUntilReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "guidelines.yml")
	if err := os.WriteFile(path, []byte(`voice: "First"`), 0644); err != nil {
		t.Fatal(err)
	}

	loader := NewLoader(path)
	first, err := loader.Load()
	if err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(path, []byte(`voice: "Second"`), 0644); err != nil {
		t.Fatal(err)
	}

	cached, err := loader.Load()
	if err != nil {
		t.Fatal(err)
	}
	if cached != first {
		t.Error("Load should serve the cached guidelines until Reload is called")
	}

	reloaded, err := loader.Reload()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(reloaded, "Second") {
		t.Errorf("Reload should pick up new file contents, got %q", reloaded)
	}
}

func TestLoaderInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "guidelines.yml")
	if err := os.WriteFile(path, []byte("voice: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}

	loader := NewLoader(path)
	if _, err := loader.Load(); err == nil {
		t.Error("Expected error for invalid YAML")
	}
}
