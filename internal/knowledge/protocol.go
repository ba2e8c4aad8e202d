// Package knowledge provides offline retrieval of emergency medical
// protocol text for prompt augmentation. Matching is keyword-based so it
// works without any embedding model on device.
package knowledge

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Section is one titled block of protocol text.
type Section struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Protocol is an offline knowledge unit. Keywords are stored lowercase
// and matched against lowercased queries. Protocols are loaded once at
// startup and never mutated.
type Protocol struct {
	Name     string    `json:"name"`
	Category string    `json:"category,omitempty"`
	Keywords []string  `json:"keywords"`
	Sections []Section `json:"sections"`
}

// Text renders the protocol as plain context text: name, then each
// section as "title:\ncontent".
func (p Protocol) Text() string {
	var b strings.Builder
	b.WriteString(p.Name)
	for _, s := range p.Sections {
		b.WriteString("\n")
		if s.Title != "" {
			b.WriteString(s.Title)
			b.WriteString(":\n")
		}
		b.WriteString(s.Content)
	}
	return b.String()
}

func normalizeKeywords(p *Protocol) {
	for i, k := range p.Keywords {
		p.Keywords[i] = strings.ToLower(strings.TrimSpace(k))
	}
}

// LoadDir reads protocol JSON files from dir. Each file holds either a
// single protocol object or an array of them. A missing directory
// returns (nil, nil) so callers can fall back to the built-in set.
func LoadDir(dir string) ([]Protocol, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read protocols dir: %w", err)
	}

	var protocols []Protocol
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", e.Name(), err)
		}

		var batch []Protocol
		if err := json.Unmarshal(raw, &batch); err != nil {
			var single Protocol
			if err := json.Unmarshal(raw, &single); err != nil {
				return nil, fmt.Errorf("parse %s: %w", e.Name(), err)
			}
			batch = []Protocol{single}
		}
		for i := range batch {
			normalizeKeywords(&batch[i])
		}
		protocols = append(protocols, batch...)
	}
	return protocols, nil
}
