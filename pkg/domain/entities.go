package domain

import (
	"time"

	"github.com/uptrace/bun"
)

// Delivery statuses stamped on journal records.
const (
	DeliveryStatusDelivered = "delivered"
	DeliveryStatusFailed    = "failed"
)

// DeliveryRecord stores one media event that passed through a sink. The
// payload is either plain JSON or a sealed ciphertext+nonce pair, never
// both.
type DeliveryRecord struct {
	bun.BaseModel `bun:"table:audience_delivery_records"`
	RecordMeta

	ViewerID    string    `bun:",nullzero,notnull" json:"viewer_id"`
	ViewerName  string    `bun:",nullzero" json:"viewer_name"`
	Sink        string    `bun:",nullzero,notnull" json:"sink"`
	Kind        string    `bun:",nullzero,notnull" json:"kind"`
	Locale      string    `bun:",nullzero" json:"locale"`
	Payload     JSONMap   `bun:"type:jsonb,nullzero" json:"payload,omitempty"`
	Ciphertext  []byte    `bun:",nullzero" json:"-"`
	Nonce       []byte    `bun:",nullzero" json:"-"`
	Status      string    `bun:",nullzero" json:"status"`
	Error       string    `bun:",nullzero" json:"error,omitempty"`
	DeliveredAt time.Time `bun:",nullzero" json:"delivered_at,omitempty"`
}

// Encrypted reports whether the payload is stored sealed.
func (r *DeliveryRecord) Encrypted() bool {
	return len(r.Ciphertext) > 0
}

// ViewerProfile stores per-viewer delivery settings consumed by the options
// resolver and the digest sink.
type ViewerProfile struct {
	bun.BaseModel `bun:"table:audience_viewer_profiles"`
	RecordMeta

	ViewerID     string     `bun:",unique,nullzero,notnull" json:"viewer_id"`
	Name         string     `bun:",nullzero" json:"name"`
	Address      string     `bun:",nullzero" json:"address"`
	Locale       string     `bun:",nullzero" json:"locale"`
	Capabilities StringList `bun:"type:jsonb,nullzero" json:"capabilities,omitempty"`
	Muted        StringList `bun:"type:jsonb,nullzero" json:"muted,omitempty"`
	Enabled      bool       `bun:",nullzero" json:"enabled"`
	Metadata     JSONMap    `bun:"type:jsonb,nullzero" json:"metadata,omitempty"`
}
