package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONMap is a loosely typed key-value map (props, styles, content, settings)
// stored as JSON text. Values are whatever encoding/json produces: string,
// float64, bool, nil, []interface{} or map[string]interface{}.
type JSONMap map[string]interface{}

// Value implements the driver.Valuer interface for JSONMap
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface for JSONMap
func (m *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*m = JSONMap{}
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported JSONMap source type %T", value)
	}

	if len(raw) == 0 || string(raw) == "null" {
		*m = JSONMap{}
		return nil
	}

	out := JSONMap{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return err
	}
	*m = out
	return nil
}

// Clone returns a shallow copy. Nested maps and slices are shared.
func (m JSONMap) Clone() JSONMap {
	out := make(JSONMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Merge returns a copy of m with every top-level key of patch set on it.
// Nested values are replaced wholesale, never merged.
func (m JSONMap) Merge(patch JSONMap) JSONMap {
	out := m.Clone()
	for k, v := range patch {
		out[k] = v
	}
	return out
}
