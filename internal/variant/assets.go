package variant

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"unicode/utf8"

	"collate/internal/config"
	"collate/internal/services"
)

// Assets bundles the static tables injected into the pipeline.
type Assets struct {
	Catalog Catalog
	Tiers   Tiers
	CharMap CharMap
	Oracle  Oracle
}

// LoadAssets reads every configured table from the asset directory. The
// equivalence group file is optional; tier tables always contribute their
// pairs to the oracle.
func LoadAssets(cfg *config.Config) (*Assets, error) {
	if cfg == nil {
		return nil, services.Wrap(services.ErrConfiguration, "assets", "load", "config is nil", nil)
	}
	catalog, err := readCatalog(cfg.AssetPath(cfg.Assets.Catalog))
	if err != nil {
		return nil, err
	}

	tiers := make(Tiers, len(cfg.Assets.VariantTiers))
	for selector, name := range cfg.Assets.VariantTiers {
		digit, size := utf8.DecodeRuneInString(selector)
		if size != len(selector) || !isSelector(digit) {
			return nil, services.Wrap(services.ErrConfiguration, "assets", "load", fmt.Sprintf("variant tier selector %q is not a digit", selector), nil)
		}
		table, err := readTable(cfg.AssetPath(name))
		if err != nil {
			return nil, err
		}
		tiers[digit] = table
	}

	charMap := CharMap{}
	if strings.TrimSpace(cfg.Assets.CharMap) != "" {
		charMap, err = readCharMap(cfg.AssetPath(cfg.Assets.CharMap))
		if err != nil {
			return nil, err
		}
	}

	groups := NewGroups()
	for _, table := range tiers {
		groups.RegisterTable(table)
	}
	if strings.TrimSpace(cfg.Assets.Equivalence) != "" {
		if err := readGroups(cfg.AssetPath(cfg.Assets.Equivalence), groups); err != nil {
			return nil, err
		}
	}

	return &Assets{Catalog: catalog, Tiers: tiers, CharMap: charMap, Oracle: groups}, nil
}

func readCatalog(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return NewCatalog(string(data)), nil
}

func readTable(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open variant table %s: %w", path, err)
	}
	defer f.Close()
	return DecodeTable(f)
}

// DecodeTable parses a JSON object of single-character keys and values.
func DecodeTable(r io.Reader) (Table, error) {
	var raw map[string]string
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode variant table: %w", err)
	}
	table := make(Table, len(raw))
	for key, value := range raw {
		from, ok := singleRune(key)
		if !ok {
			return nil, fmt.Errorf("variant table key %q is not a single character", key)
		}
		to, ok := singleRune(value)
		if !ok {
			return nil, fmt.Errorf("variant table value %q for %q is not a single character", value, key)
		}
		table[from] = to
	}
	return table, nil
}

func readCharMap(path string) (CharMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open char map %s: %w", path, err)
	}
	defer f.Close()
	return DecodeCharMap(f)
}

// DecodeCharMap parses the tab-separated glyph map. The first line is a
// header and is skipped.
func DecodeCharMap(r io.Reader) (CharMap, error) {
	scanner := bufio.NewScanner(r)
	m := CharMap{}
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if lineNo == 1 {
			continue
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		from, to, ok := strings.Cut(line, "\t")
		if !ok {
			return nil, fmt.Errorf("char map line %d: expected two tab-separated fields", lineNo)
		}
		src, ok := singleRune(strings.TrimSpace(from))
		if !ok {
			return nil, fmt.Errorf("char map line %d: %q is not a single character", lineNo, from)
		}
		m[src] = strings.TrimSpace(to)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read char map: %w", err)
	}
	return m, nil
}

func readGroups(path string, groups *Groups) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open equivalence groups %s: %w", path, err)
	}
	defer f.Close()
	return DecodeGroups(f, groups)
}

// DecodeGroups registers one group per line; every non-space rune on a line
// is equivalent to the others.
func DecodeGroups(r io.Reader, groups *Groups) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		var group []rune
		for _, ch := range scanner.Text() {
			if ch == ' ' || ch == '\t' || ch == '\r' || ch == '　' {
				continue
			}
			group = append(group, ch)
		}
		groups.Register(group...)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read equivalence groups: %w", err)
	}
	return nil
}

func singleRune(s string) (rune, bool) {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || size != len(s) {
		return 0, false
	}
	return r, true
}
