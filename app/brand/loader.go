package brand

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// DefaultGuidelines is used when no guidelines file is configured or present.
const DefaultGuidelines = "Write in a clear, professional voice. Avoid unverifiable claims, " +
	"hype words, and excessive emoji. Do not disparage competitors."

// Loader reads the brand guidelines file and caches the rendered prompt text.
type Loader struct {
	path     string
	mu       sync.RWMutex
	rendered string
	loaded   bool
}

func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load returns the guidelines as prompt text, reading the file on first use.
// A missing file is not an error: the default guidelines apply.
func (l *Loader) Load() (string, error) {
	l.mu.RLock()
	if l.loaded {
		defer l.mu.RUnlock()
		return l.rendered, nil
	}
	l.mu.RUnlock()

	return l.Reload()
}

// Reload re-reads the guidelines file, replacing the cached text.
func (l *Loader) Reload() (string, error) {
	rendered, err := l.read()
	if err != nil {
		return "", err
	}

	l.mu.Lock()
	l.rendered = rendered
	l.loaded = true
	l.mu.Unlock()

	return rendered, nil
}

func (l *Loader) read() (string, error) {
	if l.path == "" {
		return DefaultGuidelines, nil
	}

	data, err := os.ReadFile(l.path)
	if os.IsNotExist(err) {
		slog.Debug("Guidelines file not found, using defaults", "path", l.path)
		return DefaultGuidelines, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read guidelines file: %w", err)
	}

	var g Guidelines
	if err := yaml.Unmarshal(data, &g); err != nil {
		return "", fmt.Errorf("failed to parse guidelines YAML: %w", err)
	}

	rendered := Render(&g)
	if rendered == "" {
		return DefaultGuidelines, nil
	}

	slog.Debug("Guidelines loaded", "path", l.path, "length", len(rendered))

	return rendered, nil
}

// Render flattens a guidelines configuration into prompt text.
func Render(g *Guidelines) string {
	var parts []string

	if g.Voice != "" {
		parts = append(parts, "Brand voice: "+g.Voice)
	}
	if g.Tone != "" {
		parts = append(parts, "Tone: "+g.Tone)
	}
	if len(g.BannedPhrases) > 0 {
		parts = append(parts, "Never use these phrases: "+strings.Join(g.BannedPhrases, ", "))
	}
	if len(g.RequiredDisclosures) > 0 {
		parts = append(parts, "Required disclosures: "+strings.Join(g.RequiredDisclosures, "; "))
	}
	for _, note := range g.Notes {
		parts = append(parts, note)
	}

	return strings.Join(parts, "\n")
}
