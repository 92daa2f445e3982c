package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"sort"
)

// ToCSV renders reports as delimited text: one row per report, one
// column per flattened field. Nested objects flatten to dotted key
// paths so no two values share a column. Quoting follows RFC 4180, so
// separators and quote characters inside values survive a round-trip.
func ToCSV(reports ...*Report) ([]byte, error) {
	rows := make([]map[string]string, 0, len(reports))
	keySet := make(map[string]struct{})

	for _, r := range reports {
		row, err := flattenReport(r)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
		for k := range row {
			keySet[k] = struct{}{}
		}
	}

	header := make([]string, 0, len(keySet))
	for k := range keySet {
		header = append(header, k)
	}
	sort.Strings(header)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}

	record := make([]string, len(header))
	for _, row := range rows {
		for i, k := range header {
			record[i] = row[k]
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}

	return buf.Bytes(), nil
}

// flattenReport goes through the report's JSON form so column names
// match the JSON field names clients already know.
func flattenReport(r *Report) (map[string]string, error) {
	raw, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var tree map[string]interface{}
	if err := dec.Decode(&tree); err != nil {
		return nil, fmt.Errorf("failed to decode report: %w", err)
	}

	out := make(map[string]string)
	flattenValue("", tree, out)
	return out, nil
}

func flattenValue(prefix string, v interface{}, out map[string]string) {
	switch val := v.(type) {
	case map[string]interface{}:
		for k, child := range val {
			flattenValue(joinKey(prefix, k), child, out)
		}
	case []interface{}:
		for i, child := range val {
			flattenValue(joinKey(prefix, fmt.Sprintf("%d", i)), child, out)
		}
	case json.Number:
		out[prefix] = val.String()
	case string:
		out[prefix] = val
	case bool:
		out[prefix] = fmt.Sprintf("%t", val)
	case nil:
		out[prefix] = ""
	}
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
