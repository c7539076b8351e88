package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-adminkit/pkg/table"
)

// loadRows reads a dataset file. The extension picks the decoder: .csv,
// .yaml/.yml or JSON for anything else.
func loadRows(path string) ([]table.MapRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("data: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return decodeCSV(f)
	case ".yaml", ".yml":
		var rows []table.MapRow
		if err := yaml.NewDecoder(f).Decode(&rows); err != nil {
			return nil, fmt.Errorf("data: decode %s: %w", path, err)
		}
		return rows, nil
	default:
		var rows []table.MapRow
		if err := json.NewDecoder(f).Decode(&rows); err != nil {
			return nil, fmt.Errorf("data: decode %s: %w", path, err)
		}
		return rows, nil
	}
}

// decodeCSV maps every record onto the header line. Numeric cells become
// float64 so they sort numerically.
func decodeCSV(r io.Reader) ([]table.MapRow, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("data: csv header: %w", err)
	}

	var rows []table.MapRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, fmt.Errorf("data: csv: %w", err)
		}
		row := make(table.MapRow, len(header))
		for i, key := range header {
			if i >= len(record) {
				break
			}
			row[key] = csvValue(record[i])
		}
		rows = append(rows, row)
	}
}

func csvValue(raw string) any {
	if raw == "" {
		return nil
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	return raw
}
