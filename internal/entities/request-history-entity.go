package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

// RequestHistory - одна запись на каждое решение по заявке.
type RequestHistory struct {
	ID          uint64      `json:"id" db:"id"`
	RequestID   uint64      `json:"requestId" db:"request_id"`
	ActorID     uint64      `json:"actorId" db:"actor_id"`
	ActorName   string      `json:"actorName" db:"actor_name"`
	OldStatus   string      `json:"oldStatus" db:"old_status"`
	NewStatus   string      `json:"newStatus" db:"new_status"`
	AssetStatus null.String `json:"assetStatus" db:"asset_status"`
	CreatedAt   time.Time   `json:"createdAt" db:"created_at"`
}
