package ingest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Bank is one bundled question file.
type Bank struct {
	Name  string
	Items []any
}

// ParseBank decodes a bank document: either {"items": [...]} or a bare array.
// Items are left as generic JSON values for the normalizer.
func ParseBank(data []byte) ([]any, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return []any{}, nil
	}

	if data[0] == '[' {
		var items []any
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("decode bank array: %w", err)
		}
		return items, nil
	}

	var doc struct {
		Items []any `json:"items"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode bank: %w", err)
	}
	if doc.Items == nil {
		return []any{}, nil
	}
	return doc.Items, nil
}

func LoadBankFile(path string) (Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Bank{}, fmt.Errorf("read bank %s: %w", path, err)
	}
	items, err := ParseBank(data)
	if err != nil {
		return Bank{}, fmt.Errorf("%s: %w", path, err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Bank{Name: name, Items: items}, nil
}

// LoadBankDir loads every *.json file in dir, in name order.
func LoadBankDir(dir string) ([]Bank, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, err
	}
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	banks := make([]Bank, 0, len(paths))
	for _, p := range paths {
		b, err := LoadBankFile(p)
		if err != nil {
			return nil, err
		}
		banks = append(banks, b)
	}
	return banks, nil
}
