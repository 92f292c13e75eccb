package convert

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyCSV is returned when the input has no header row at all.
var ErrEmptyCSV = errors.New("csv has no header row")

// Row is one data row keyed by header name. Values are whitespace-trimmed;
// a header with no corresponding field maps to "".
type Row map[string]string

const utf8BOM = "\ufeff"

// ReadCSV parses CSV text into its header row and data rows.
func ReadCSV(data []byte) ([]string, []Row, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1

	all, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(all) == 0 {
		return nil, nil, ErrEmptyCSV
	}

	headers := make([]string, len(all[0]))
	for i, h := range all[0] {
		if i == 0 {
			h = strings.TrimPrefix(h, utf8BOM)
		}
		headers[i] = strings.TrimSpace(h)
	}

	rows := make([]Row, 0, len(all)-1)
	for _, fields := range all[1:] {
		row := make(Row, len(headers))
		for i, h := range headers {
			if i < len(fields) {
				row[h] = strings.TrimSpace(fields[i])
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}

	return headers, rows, nil
}
