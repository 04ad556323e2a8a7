package model

import (
	"time"

	"github.com/google/uuid"
)

// CoverageProfile is the attribute coverage vector of one asset type, built
// over the sorted global attribute vocabulary of a run. Similarity is only
// populated by similarity searches.
type CoverageProfile struct {
	ID         int64     `json:"id,omitempty"`
	RID        uuid.UUID `json:"rid,omitempty"`
	AssetType  string    `json:"asset_type"`
	AssetCount int       `json:"asset_count"`
	Vocabulary []string  `json:"vocabulary"`
	Coverage   []float32 `json:"coverage"`
	Similarity float64   `json:"similarity,omitempty"`
	CreatedAt  time.Time `json:"created_at,omitempty"`
}
