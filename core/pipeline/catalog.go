package pipeline

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/siherrmann/tagforge/model"
)

// BuildTemplateSpecs turns the discovered common templates into exportable
// template specifications. Per type it derives a template description from the
// shared rightmost pattern of the assets' free-text descriptions and collects
// one attribute spec per common attribute with its first observed description,
// point type, engineering unit and the mapped data type.
func BuildTemplateSpecs(records []model.TagRecord, byType map[string]model.AssetAttributeSets, discovered map[string]model.TypeTemplate) []model.TemplateSpec {
	types := make([]string, 0, len(discovered))
	for assetType, template := range discovered {
		if len(template.Common) > 0 {
			types = append(types, assetType)
		}
	}
	sort.Strings(types)

	var specs []model.TemplateSpec
	for _, assetType := range types {
		template := discovered[assetType]

		var typeRecords []model.TagRecord
		for _, record := range records {
			if strings.TrimSpace(record.AssetType) == assetType {
				typeRecords = append(typeRecords, record)
			}
		}

		attributes := make(model.AttributeSpecList, 0, len(template.Common))
		for _, coverage := range template.Common {
			attributes = append(attributes, attributeSpec(assetType, coverage, typeRecords))
		}

		matched := 0
		commonSet := template.CommonSet()
		for _, attributeSet := range byType[assetType] {
			if commonSet.IsSubsetOf(attributeSet) {
				matched++
			}
		}

		coveragePercent := 0.0
		if template.AssetCount > 0 {
			coveragePercent = roundPercent(float64(matched) / float64(template.AssetCount) * 100)
		}

		specs = append(specs, model.TemplateSpec{
			Name:            assetType,
			Description:     commonDescriptionPattern(descriptionsOf(typeRecords)),
			Category:        "Equipment",
			AttributeCount:  len(attributes),
			AssetsMatched:   matched,
			TotalAssets:     template.AssetCount,
			CoveragePercent: coveragePercent,
			Attributes:      attributes,
		})
	}

	return specs
}

// attributeSpec builds one attribute entry from the first rows observed for it
func attributeSpec(assetType string, coverage model.AttributeCoverage, typeRecords []model.TagRecord) model.AttributeSpec {
	description := ""
	pointType := ""
	engineeringUnit := ""

	for _, record := range typeRecords {
		if model.NormalizeAttribute(record.Attribute) != coverage.Attribute {
			continue
		}
		if description == "" && !model.IsBlank(record.Description) {
			description = strings.TrimSpace(record.Description)
		}
		if pointType == "" && !model.IsBlank(record.PointType) {
			pointType = strings.TrimSpace(record.PointType)
		}
		if engineeringUnit == "" && !model.IsBlank(record.EngineeringUnit) {
			engineeringUnit = strings.TrimSpace(record.EngineeringUnit)
		}
		if description != "" && pointType != "" && engineeringUnit != "" {
			break
		}
	}

	if description == "" {
		description = fmt.Sprintf("%s attribute for %s", coverage.Attribute, assetType)
	}

	return model.AttributeSpec{
		Name:            coverage.Attribute,
		Description:     description,
		DataType:        MapDataType(pointType),
		EngineeringUnit: engineeringUnit,
		PointType:       pointType,
		CoveragePercent: roundPercent(coverage.Percent),
	}
}

// MapDataType maps a source point type to the data types the import tooling accepts
func MapDataType(pointType string) string {
	switch strings.ToLower(strings.TrimSpace(pointType)) {
	case "digital", "bool", "boolean":
		return "Boolean"
	case "int16", "int32", "integer", "int":
		return "Int32"
	case "string", "text":
		return "String"
	case "datetime", "timestamp":
		return "DateTime"
	default:
		// float, real, double, single and anything unknown
		return "Float64"
	}
}

var (
	assetIDPrefix = regexp.MustCompile(`^[A-Z]+\d+[A-Z]*\s+`)
	spaceRun      = regexp.MustCompile(`\s+`)
)

// commonDescriptionPattern extracts the description shared by most assets of a
// type. Asset identifiers are stripped from the front, then the most frequent
// rightmost substring carried by at least 80 percent of the descriptions wins,
// with a shared-suffix-words fallback.
func commonDescriptionPattern(descriptions []string) string {
	var valid []string
	for _, description := range descriptions {
		if !model.IsBlank(description) {
			valid = append(valid, strings.TrimSpace(description))
		}
	}
	if len(valid) == 0 {
		return "Asset template"
	}

	threshold := len(valid) * 8 / 10
	if threshold < 1 {
		threshold = 1
	}

	cleaned := make([]string, len(valid))
	maxLength := 0
	for i, description := range valid {
		cleaned[i] = assetIDPrefix.ReplaceAllString(description, "")
		if len(cleaned[i]) > maxLength {
			maxLength = len(cleaned[i])
		}
	}

	best := ""
	bestCount := 0

	longest := maxLength
	if longest > 50 {
		longest = 50
	}
	for length := longest; length > 2; length-- {
		counts := map[string]int{}
		for _, description := range cleaned {
			if len(description) < length {
				continue
			}
			rightmost := spaceRun.ReplaceAllString(strings.TrimSpace(description[len(description)-length:]), " ")
			if len(rightmost) > 3 {
				counts[rightmost]++
			}
		}
		for pattern, count := range counts {
			if count >= threshold && (count > bestCount || (count == bestCount && pattern < best)) {
				best = pattern
				bestCount = count
			}
		}
	}

	if bestCount < threshold {
		counts := map[string]int{}
		for _, description := range cleaned {
			words := strings.Fields(description)
			for take := 1; take <= 4 && take <= len(words); take++ {
				ending := strings.Join(words[len(words)-take:], " ")
				if len(ending) > 3 {
					counts[ending]++
				}
			}
		}
		for pattern, count := range counts {
			if count >= threshold && (count > bestCount || (count == bestCount && pattern < best)) {
				best = pattern
				bestCount = count
			}
		}
	}

	if bestCount == 0 {
		return "Asset control and monitoring"
	}
	return best
}

func descriptionsOf(records []model.TagRecord) []string {
	seen := model.StringSet{}
	var descriptions []string
	for _, record := range records {
		if seen.Has(record.Description) {
			continue
		}
		seen.Add(record.Description)
		descriptions = append(descriptions, record.Description)
	}
	return descriptions
}

func roundPercent(percent float64) float64 {
	return math.Round(percent*10) / 10
}
