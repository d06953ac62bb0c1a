package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RecordMeta carries the identifier and audit columns shared by every
// entity. Embed it first so bun picks up the primary key.
type RecordMeta struct {
	ID        uuid.UUID `bun:",pk,type:uuid" json:"id"`
	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp" json:"updated_at"`
	DeletedAt time.Time `bun:",soft_delete,nullzero" json:"deleted_at,omitempty"`
}

// EnsureID assigns a UUID when the record is about to be persisted.
func (m *RecordMeta) EnsureID() {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
}

// Touch backfills the creation stamp on first write and advances the
// update stamp.
func (m *RecordMeta) Touch(now time.Time) {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = now
}

// jsonColumnBytes coerces the driver value of a JSON column to raw bytes.
// A nil return with nil error means the column was NULL.
func jsonColumnBytes(value any) ([]byte, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("domain: cannot decode %T as a json column", value)
	}
}

// JSONMap persists free-form metadata as a JSON column.
type JSONMap map[string]any

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *JSONMap) Scan(value any) error {
	if m == nil {
		return errors.New("domain: JSONMap scan into nil pointer")
	}
	raw, err := jsonColumnBytes(value)
	if err != nil {
		return err
	}
	if raw == nil {
		*m = nil
		return nil
	}
	return json.Unmarshal(raw, m)
}

// StringList persists a []string as a JSON column.
type StringList []string

func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal([]string(s))
}

func (s *StringList) Scan(value any) error {
	if s == nil {
		return errors.New("domain: StringList scan into nil pointer")
	}
	raw, err := jsonColumnBytes(value)
	if err != nil {
		return err
	}
	if raw == nil {
		*s = nil
		return nil
	}
	return json.Unmarshal(raw, (*[]string)(s))
}
