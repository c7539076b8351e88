package table

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

// Field is one key/value pair of an exported record.
type Field struct {
	Key   string
	Value any
}

// Record is an exported row with fields in column definition order.
type Record []Field

// Get returns the value stored under key.
func (r Record) Get(key string) (any, bool) {
	for _, f := range r {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Map flattens the record into a map keyed by column key.
func (r Record) Map() map[string]any {
	out := make(map[string]any, len(r))
	for _, f := range r {
		out[f.Key] = f.Value
	}
	return out
}

// Export returns one record per base row, in the original order, covering
// every defined column. Sort and visibility state are ignored.
func (m *Model[T]) Export() []Record {
	out := make([]Record, 0, len(m.data))
	for _, row := range m.data {
		record := make(Record, 0, len(m.columns))
		for _, col := range m.columns {
			record = append(record, Field{Key: col.Key, Value: m.access(col, col.Accessor, row)})
		}
		out = append(out, record)
	}
	return out
}

// ExportKeys returns the column keys in export order.
func (m *Model[T]) ExportKeys() []string {
	keys := make([]string, 0, len(m.columns))
	for _, col := range m.columns {
		keys = append(keys, col.Key)
	}
	return keys
}

// WriteCSV writes a header line of keys followed by one line per record.
// Values are formatted with ExportValue; a value whose formatting panics is
// written as an empty field.
func WriteCSV(w io.Writer, keys []string, records []Record) error {
	return writeCSV(w, keys, records, zerolog.Nop())
}

// WriteCSV exports the model as CSV.
func (m *Model[T]) WriteCSV(w io.Writer) error {
	return writeCSV(w, m.ExportKeys(), m.Export(), m.opts.logger)
}

func writeCSV(w io.Writer, keys []string, records []Record, logger zerolog.Logger) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(keys); err != nil {
		return fmt.Errorf("table: write csv header: %w", err)
	}
	line := make([]string, len(keys))
	for i, record := range records {
		for j, key := range keys {
			value, _ := record.Get(key)
			line[j] = exportText(logger, key, value)
		}
		if err := writer.Write(line); err != nil {
			return fmt.Errorf("table: write csv record %d: %w", i, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("table: flush csv: %w", err)
	}
	return nil
}

func exportText(logger zerolog.Logger, key string, value any) (text string) {
	defer func() {
		if r := recover(); r != nil {
			logger.Debug().
				Str("column", key).
				Interface("panic", r).
				Msg("table: export formatter panicked, writing empty field")
			text = ""
		}
	}()
	return ExportValue(value)
}
