package pipeline

import (
	"sort"

	"github.com/siherrmann/tagforge/model"
)

// Discover computes the core and common attribute templates for every asset
// type with strictly more assets than minPopulation.
//
// The core template is the intersection of all the type's asset attribute
// sets. The common template contains every attribute present in strictly more
// than coverageThreshold percent of the type's assets, ranked by percentage
// descending with ties broken by attribute name.
func Discover(byType map[string]model.AssetAttributeSets, minPopulation int, coverageThreshold float64) map[string]model.TypeTemplate {
	discovered := map[string]model.TypeTemplate{}

	for assetType, sets := range byType {
		if len(sets) <= minPopulation {
			continue
		}

		core := coreTemplate(sets)
		discovered[assetType] = model.TypeTemplate{
			AssetType:  assetType,
			AssetCount: len(sets),
			Core:       core,
			CoreList:   core.Sorted(),
			Common:     commonTemplate(sets, coverageThreshold),
		}
	}

	return discovered
}

// coreTemplate intersects all attribute sets. An empty input yields an empty
// set, there is no intersection over zero operands.
func coreTemplate(sets model.AssetAttributeSets) model.StringSet {
	assets := sets.SortedAssets()
	if len(assets) == 0 {
		return model.StringSet{}
	}

	core := sets[assets[0]]
	for _, asset := range assets[1:] {
		core = core.Intersect(sets[asset])
	}
	return core
}

// commonTemplate ranks attributes by the percentage of assets carrying them
func commonTemplate(sets model.AssetAttributeSets, coverageThreshold float64) []model.AttributeCoverage {
	counts := map[string]int{}
	for _, attributes := range sets {
		for attribute := range attributes {
			counts[attribute]++
		}
	}

	total := len(sets)
	var common []model.AttributeCoverage
	for attribute, count := range counts {
		percent := float64(count) / float64(total) * 100
		if percent > coverageThreshold {
			common = append(common, model.AttributeCoverage{Attribute: attribute, Percent: percent})
		}
	}

	sort.Slice(common, func(i, j int) bool {
		if common[i].Percent != common[j].Percent {
			return common[i].Percent > common[j].Percent
		}
		return common[i].Attribute < common[j].Attribute
	})

	return common
}

// Similarity reports the Jaccard similarity between the common attribute sets
// of every asset type pair, restricted to pairs with both sets non-empty and
// similarity strictly above the threshold. Pairs are ordered by type name.
func Similarity(common map[string]model.StringSet, threshold float64) []model.TypeSimilarity {
	types := make([]string, 0, len(common))
	for assetType, attributes := range common {
		if len(attributes) > 0 {
			types = append(types, assetType)
		}
	}
	sort.Strings(types)

	var similarities []model.TypeSimilarity
	for i := 0; i < len(types); i++ {
		for j := i + 1; j < len(types); j++ {
			setA, setB := common[types[i]], common[types[j]]

			union := setA.Union(setB)
			if len(union) == 0 {
				continue
			}

			shared := setA.Intersect(setB)
			percent := float64(len(shared)) / float64(len(union)) * 100
			if percent > threshold {
				similarities = append(similarities, model.TypeSimilarity{
					TypeA:   types[i],
					TypeB:   types[j],
					Percent: percent,
					Shared:  len(shared),
					Union:   len(union),
				})
			}
		}
	}

	return similarities
}

// CoverageVectors turns the discovered common templates into fixed-length
// coverage vectors over the sorted global attribute vocabulary. Two runs over
// the same table produce identical vectors, which makes them usable as stored
// similarity profiles.
func CoverageVectors(discovered map[string]model.TypeTemplate) ([]string, map[string][]float32) {
	vocabulary := model.StringSet{}
	for _, template := range discovered {
		for _, coverage := range template.Common {
			vocabulary.Add(coverage.Attribute)
		}
	}
	sorted := vocabulary.Sorted()

	index := make(map[string]int, len(sorted))
	for i, attribute := range sorted {
		index[attribute] = i
	}

	vectors := make(map[string][]float32, len(discovered))
	for assetType, template := range discovered {
		vector := make([]float32, len(sorted))
		for _, coverage := range template.Common {
			vector[index[coverage.Attribute]] = float32(coverage.Percent)
		}
		vectors[assetType] = vector
	}

	return sorted, vectors
}
