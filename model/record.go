package model

import (
	"sort"
	"strings"
)

// TagRecord is one raw row of the flat tag table, immutable once read
type TagRecord struct {
	Identifier      string `json:"identifier"`
	Level2          string `json:"level2"`
	Level3          string `json:"level3"`
	AssetType       string `json:"asset_type"`
	Attribute       string `json:"attribute"`
	PointType       string `json:"point_type"`
	EngineeringUnit string `json:"engineering_unit"`
	Description     string `json:"description"`
	AssetID         string `json:"asset_id"`
	LinkedName      string `json:"linked_name"` // asset name in the linked SCADA system
	SecurityString  string `json:"security_string"`
}

// AssetKey identifies one asset within its hierarchy position
type AssetKey struct {
	Level2  string
	Level3  string
	AssetID string
}

// AssetRecord is one deduplicated asset row
type AssetRecord struct {
	Level2      string `json:"level2"`
	Level3      string `json:"level3"`
	AssetID     string `json:"asset_id"`
	Description string `json:"description"`
	LinkedName  string `json:"linked_name"`
}

// Key returns the asset's hierarchy key
func (a AssetRecord) Key() AssetKey {
	return AssetKey{Level2: a.Level2, Level3: a.Level3, AssetID: a.AssetID}
}

// IsBlank reports whether a level or name field carries no usable value.
// Spreadsheet exports encode missing cells as empty strings or the literal "nan".
func IsBlank(value string) bool {
	trimmed := strings.TrimSpace(value)
	return trimmed == "" || strings.EqualFold(trimmed, "nan")
}

// DeduplicateAssets collapses the tag table to one AssetRecord per AssetKey,
// sorted by (Level2, Level3, AssetID). The first seen description wins, the
// last seen non-blank linked name wins. Rows without an asset identifier are
// skipped.
func DeduplicateAssets(records []TagRecord) []AssetRecord {
	byKey := map[AssetKey]*AssetRecord{}
	linked := map[string]string{}

	for _, record := range records {
		if IsBlank(record.AssetID) {
			continue
		}
		if !IsBlank(record.LinkedName) {
			linked[strings.TrimSpace(record.AssetID)] = strings.TrimSpace(record.LinkedName)
		}

		key := AssetKey{
			Level2:  strings.TrimSpace(record.Level2),
			Level3:  strings.TrimSpace(record.Level3),
			AssetID: strings.TrimSpace(record.AssetID),
		}
		if _, ok := byKey[key]; !ok {
			byKey[key] = &AssetRecord{
				Level2:      key.Level2,
				Level3:      key.Level3,
				AssetID:     key.AssetID,
				Description: strings.TrimSpace(record.Description),
			}
		}
	}

	assets := make([]AssetRecord, 0, len(byKey))
	for _, asset := range byKey {
		asset.LinkedName = linked[asset.AssetID]
		assets = append(assets, *asset)
	}

	sort.Slice(assets, func(i, j int) bool {
		if assets[i].Level2 != assets[j].Level2 {
			return assets[i].Level2 < assets[j].Level2
		}
		if assets[i].Level3 != assets[j].Level3 {
			return assets[i].Level3 < assets[j].Level3
		}
		return assets[i].AssetID < assets[j].AssetID
	})

	return assets
}

// BuildAssetAttributeSets collects the normalized attribute set of every asset
// in the table. The sets are rebuilt fresh on every call.
func BuildAssetAttributeSets(records []TagRecord) AssetAttributeSets {
	sets := AssetAttributeSets{}
	for _, record := range records {
		if IsBlank(record.AssetID) || IsBlank(record.Attribute) {
			continue
		}
		assetID := strings.TrimSpace(record.AssetID)
		if _, ok := sets[assetID]; !ok {
			sets[assetID] = StringSet{}
		}
		sets[assetID].Add(NormalizeAttribute(record.Attribute))
	}
	return sets
}

// GroupAttributeSetsByType groups per-asset attribute sets by asset type.
// Rows without a type, asset or attribute are skipped.
func GroupAttributeSetsByType(records []TagRecord) map[string]AssetAttributeSets {
	grouped := map[string]AssetAttributeSets{}
	for _, record := range records {
		if IsBlank(record.AssetType) || IsBlank(record.AssetID) || IsBlank(record.Attribute) {
			continue
		}
		assetType := strings.TrimSpace(record.AssetType)
		assetID := strings.TrimSpace(record.AssetID)

		if _, ok := grouped[assetType]; !ok {
			grouped[assetType] = AssetAttributeSets{}
		}
		if _, ok := grouped[assetType][assetID]; !ok {
			grouped[assetType][assetID] = StringSet{}
		}
		grouped[assetType][assetID].Add(NormalizeAttribute(record.Attribute))
	}
	return grouped
}
