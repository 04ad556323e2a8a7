package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// AttributeSpec describes one attribute of an exported template
type AttributeSpec struct {
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	DataType        string  `json:"data_type"`
	EngineeringUnit string  `json:"engineering_units"`
	PointType       string  `json:"point_type"`
	CoveragePercent float64 `json:"coverage_percentage"`
}

// AttributeSpecList is stored as JSONB in PostgreSQL
type AttributeSpecList []AttributeSpec

// Value implements the driver.Valuer interface for database storage
func (l AttributeSpecList) Value() (driver.Value, error) {
	return json.Marshal(l)
}

// Scan implements the sql.Scanner interface for database retrieval
func (l *AttributeSpecList) Scan(value interface{}) error {
	if value == nil {
		*l = AttributeSpecList{}
		return nil
	}

	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}

	return json.Unmarshal(b, l)
}

// TemplateSpec is one template of the exported template catalog
type TemplateSpec struct {
	ID              int64             `json:"id,omitempty"`
	RID             uuid.UUID         `json:"rid,omitempty"`
	Name            string            `json:"name"`
	Description     string            `json:"description"`
	Category        string            `json:"category"`
	AttributeCount  int               `json:"attribute_count"`
	AssetsMatched   int               `json:"asset_count_matched"`
	TotalAssets     int               `json:"total_asset_count"`
	CoveragePercent float64           `json:"coverage_percentage"`
	Attributes      AttributeSpecList `json:"attributes"`
	CreatedAt       time.Time         `json:"created_at,omitempty"`
}
