package model

// AttributeCoverage is one attribute with the percentage of a type's assets
// carrying it
type AttributeCoverage struct {
	Attribute string  `json:"attribute"`
	Percent   float64 `json:"percent"`
}

// TypeTemplate is the discovered attribute structure of one asset type
type TypeTemplate struct {
	AssetType  string              `json:"asset_type"`
	AssetCount int                 `json:"asset_count"`
	Core       StringSet           `json:"-"`
	CoreList   []string            `json:"core"` // Core in ascending order, for serialization
	Common     []AttributeCoverage `json:"common"`
}

// CommonSet returns the common attributes as a set
func (t TypeTemplate) CommonSet() StringSet {
	common := make(StringSet, len(t.Common))
	for _, coverage := range t.Common {
		common.Add(coverage.Attribute)
	}
	return common
}

// TypeSimilarity is the Jaccard similarity between the common attribute sets
// of two asset types
type TypeSimilarity struct {
	TypeA   string  `json:"type_a"`
	TypeB   string  `json:"type_b"`
	Percent float64 `json:"percent"`
	Shared  int     `json:"shared"`
	Union   int     `json:"union"`
}
