package model

import (
	"sort"
	"strings"
)

// StringSet is a set of normalized attribute names
type StringSet map[string]struct{}

// NewStringSet creates a set from the given values
func NewStringSet(values ...string) StringSet {
	s := make(StringSet, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

// Add inserts a value into the set
func (s StringSet) Add(value string) {
	s[value] = struct{}{}
}

// Has reports whether the set contains value
func (s StringSet) Has(value string) bool {
	_, ok := s[value]
	return ok
}

// IsSubsetOf reports whether every element of s is contained in other
func (s StringSet) IsSubsetOf(other StringSet) bool {
	for v := range s {
		if !other.Has(v) {
			return false
		}
	}
	return true
}

// Intersect returns the intersection of s and other
func (s StringSet) Intersect(other StringSet) StringSet {
	result := StringSet{}
	for v := range s {
		if other.Has(v) {
			result.Add(v)
		}
	}
	return result
}

// Union returns the union of s and other
func (s StringSet) Union(other StringSet) StringSet {
	result := make(StringSet, len(s)+len(other))
	for v := range s {
		result.Add(v)
	}
	for v := range other {
		result.Add(v)
	}
	return result
}

// Sorted returns the set elements in ascending order
func (s StringSet) Sorted() []string {
	values := make([]string, 0, len(s))
	for v := range s {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}

// AssetAttributeSets maps an asset identifier to its set of attribute names
type AssetAttributeSets map[string]StringSet

// SortedAssets returns the asset identifiers in ascending order
func (a AssetAttributeSets) SortedAssets() []string {
	assets := make([]string, 0, len(a))
	for asset := range a {
		assets = append(assets, asset)
	}
	sort.Strings(assets)
	return assets
}

// NormalizeAttribute lower-cases and trims an attribute name for set membership
func NormalizeAttribute(attribute string) string {
	return strings.ToLower(strings.TrimSpace(attribute))
}
