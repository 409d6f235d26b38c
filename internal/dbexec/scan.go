package dbexec

// ScanToMaps drains rows into one map per row, keyed by the given column
// names in scan order. []byte values are converted to string so row maps
// compare and serialize cleanly. The rows are closed before returning.
func ScanToMaps(rows Rows, columns []string) ([]map[string]any, error) {
	defer rows.Close()

	var out []map[string]any
	values := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for i := range values {
		ptrs[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		record := make(map[string]any, len(columns))
		for i, col := range columns {
			record[col] = normalize(values[i])
		}
		out = append(out, record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ScanSingleColumn drains a one-column result set into a slice.
func ScanSingleColumn(rows Rows) ([]any, error) {
	defer rows.Close()

	var out []any
	for rows.Next() {
		var v any
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, normalize(v))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func normalize(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
