package allocation

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// This file persists catalogs. The canonical format is JSONL, one instrument
// per line, so that catalogs stay human-readable and git-friendly. YAML files
// are accepted for import, which is what catalog maintainers usually write.

// DecodeCatalog reads a JSONL catalog. filename is for error messages only.
func DecodeCatalog(filename string, r io.Reader) (*Catalog, error) {
	c := NewCatalog()
	scanner := bufio.NewScanner(r)
	i := 0
	for scanner.Scan() {
		i++
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}

		var in Instrument
		if err := json.Unmarshal(line, &in); err != nil {
			return nil, fmt.Errorf("format error in %s:%d: %w", filename, i, err)
		}
		if err := c.Add(in); err != nil {
			return nil, fmt.Errorf("format error in %s:%d: %w", filename, i, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", filename, err)
	}
	return c, nil
}

// DecodeCatalogYAML reads a YAML catalog of the form:
//
//	instruments:
//	  - id: uae_bond_2029
//	    category: bonds
//	    ...
func DecodeCatalogYAML(filename string, r io.Reader) (*Catalog, error) {
	var doc struct {
		Instruments []jinstrument `yaml:"instruments"`
	}
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("format error in %s: %w", filename, err)
	}
	c := NewCatalog()
	for n, j := range doc.Instruments {
		in, err := j.instrument()
		if err != nil {
			return nil, fmt.Errorf("format error in %s instrument #%d: %w", filename, n+1, err)
		}
		if err := c.Add(in); err != nil {
			return nil, fmt.Errorf("format error in %s instrument #%d: %w", filename, n+1, err)
		}
	}
	return c, nil
}

// EncodeCatalog writes c as canonical JSONL, sorted by category then id.
func EncodeCatalog(w io.Writer, c *Catalog) error {
	for _, in := range c.All() {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("cannot encode instrument %q: %w", in.ID, err)
		}
		if _, err := fmt.Fprintf(w, "%s\n", b); err != nil {
			return err
		}
	}
	return nil
}

// LoadCatalog opens a catalog file, picking the format from its extension.
func LoadCatalog(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open catalog: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return DecodeCatalogYAML(path, f)
	default:
		return DecodeCatalog(path, f)
	}
}
