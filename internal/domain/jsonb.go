package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// JSONBMap is a custom type for handling JSONB data in PostgreSQL.
// It implements sql.Scanner and driver.Valuer interfaces to seamlessly
// convert between Go's map[string]any and PostgreSQL's JSONB type.
type JSONBMap map[string]any

// Scan implements the sql.Scanner interface.
func (j *JSONBMap) Scan(value any) error {
	if value == nil {
		*j = nil
		return nil
	}

	data, err := jsonbBytes(value)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		*j = JSONBMap{}
		return nil
	}

	return json.Unmarshal(data, j)
}

// Value implements the driver.Valuer interface.
func (j JSONBMap) Value() (driver.Value, error) {
	if len(j) == 0 {
		return []byte("{}"), nil
	}
	return json.Marshal(j)
}

// JSONBList handles JSONB array columns the same way JSONBMap handles
// object columns.
type JSONBList []any

// Scan implements the sql.Scanner interface.
func (j *JSONBList) Scan(value any) error {
	if value == nil {
		*j = nil
		return nil
	}

	data, err := jsonbBytes(value)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		*j = JSONBList{}
		return nil
	}

	return json.Unmarshal(data, j)
}

// Value implements the driver.Valuer interface.
func (j JSONBList) Value() (driver.Value, error) {
	if len(j) == 0 {
		return []byte("[]"), nil
	}
	return json.Marshal(j)
}

// jsonbBytes normalizes a scanned JSONB value to raw bytes.
func jsonbBytes(value any) ([]byte, error) {
	switch v := value.(type) {
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	default:
		return nil, errors.New("unsupported type for JSONB column")
	}
}

// ToJSONBList converts a typed slice to a JSONBList for persistence.
func ToJSONBList[T any](items []T) JSONBList {
	list := make(JSONBList, 0, len(items))
	for _, item := range items {
		list = append(list, item)
	}
	return list
}
