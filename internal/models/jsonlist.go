package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringList is a JSON array stored in a text column (materials, colors,
// image URLs). A row that fails to parse is a data-integrity error and is
// surfaced, not ignored.
type StringList []string

func (l *StringList) Scan(value any) error {
	if value == nil {
		*l = nil
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("string list: unsupported column type %T", value)
	}

	if len(raw) == 0 {
		*l = nil
		return nil
	}

	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("string list: corrupt json column: %w", err)
	}
	*l = out
	return nil
}

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal([]string(l))
	if err != nil {
		return nil, fmt.Errorf("string list: %w", err)
	}
	return string(data), nil
}
