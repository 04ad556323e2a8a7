package pipeline

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/siherrmann/tagforge/helper"
	"github.com/siherrmann/tagforge/model"
)

// PairingRule maps an asset identifier to its candidate counterpart
// identifiers, in the order they should be tried. Used by the assembler to
// re-parent controller elements under their sensor.
type PairingRule func(assetID string) []string

// MarkerSubstitution returns the default pairing rule: every position holding
// the marker character yields one candidate with the replacement character
// substituted at that position only.
func MarkerSubstitution(marker, replacement byte) PairingRule {
	return func(assetID string) []string {
		var candidates []string
		for i := 0; i < len(assetID); i++ {
			if assetID[i] == marker {
				candidates = append(candidates, assetID[:i]+string(replacement)+assetID[i+1:])
			}
		}
		return candidates
	}
}

// Pipeline runs the full inference sequence over a tag table
type Pipeline struct {
	Config  model.Config
	Pairing PairingRule
	log     *slog.Logger
}

// NewPipeline creates a pipeline with the marker-substitution pairing rule
// derived from the configuration. A nil logger disables event logging.
func NewPipeline(config model.Config, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Pipeline{
		Config:  config,
		Pairing: MarkerSubstitution(config.Marker, config.Replacement),
		log:     logger,
	}
}

// Result holds everything one pipeline run produces
type Result struct {
	Assets       []model.AssetRecord
	Discovered   map[string]model.TypeTemplate
	Similarities []model.TypeSimilarity
	Resolved     []model.ResolvedTemplate // in matching priority order
	Matches      model.TemplateMatch
	Nodes        []model.HierarchyNode
	Specs        []model.TemplateSpec
	Vocabulary   []string
	Profiles     map[string][]float32
}

// DecomposeRecords fills the asset and attribute columns of every record from
// its identifier where they are blank. The input records are not modified.
func (p *Pipeline) DecomposeRecords(records []model.TagRecord) []model.TagRecord {
	decomposed := make([]model.TagRecord, len(records))
	for i, record := range records {
		asset, attribute := Decompose(record.Identifier, p.Config.PrefixLength, p.Config.Separator)
		if model.IsBlank(record.AssetID) {
			record.AssetID = asset
		}
		if model.IsBlank(record.Attribute) {
			record.Attribute = attribute
		}
		decomposed[i] = record
	}
	return decomposed
}

// Run executes the full pipeline: decomposition, asset deduplication,
// template discovery, inheritance resolution, matching, hierarchy assembly
// and catalog building. The definitions map may be empty, in which case no
// asset is matched and the hierarchy carries no template references.
func (p *Pipeline) Run(records []model.TagRecord, definitions map[string]model.TemplateDefinition) (*Result, error) {
	if p.Config.PrefixLength < 0 {
		return nil, helper.NewError("pipeline configuration", fmt.Errorf("prefix length must not be negative, got %d", p.Config.PrefixLength))
	}

	records = p.DecomposeRecords(records)
	assets := model.DeduplicateAssets(records)
	p.log.Info("Deduplicated tag table", slog.Int("rows", len(records)), slog.Int("assets", len(assets)))

	byType := model.GroupAttributeSetsByType(records)
	discovered := Discover(byType, p.Config.MinPopulation, p.Config.CoverageThreshold)
	for _, assetType := range sortedTypes(discovered) {
		template := discovered[assetType]
		p.log.Info("Discovered type template",
			slog.String("asset_type", assetType),
			slog.Int("assets", template.AssetCount),
			slog.Int("core_attributes", len(template.Core)),
			slog.Int("common_attributes", len(template.Common)),
		)
	}

	commonSets := make(map[string]model.StringSet, len(discovered))
	for assetType, template := range discovered {
		commonSets[assetType] = template.CommonSet()
	}
	similarities := Similarity(commonSets, p.Config.SimilarityThreshold)

	resolved := Resolve(definitions, p.log)
	ordered := PriorityOrder(resolved)
	for _, template := range ordered {
		p.log.Info("Resolved template",
			slog.String("template", template.Name),
			slog.Int("attributes", template.AttributeCount()),
		)
	}

	sets := model.BuildAssetAttributeSets(records)
	matches := Match(ordered, sets)
	for _, template := range ordered {
		count := 0
		for _, name := range matches {
			if name == template.Name {
				count++
			}
		}
		p.log.Info("Matched assets to template",
			slog.String("template", template.Name),
			slog.Int("assets", count),
			slog.Int("required_attributes", len(template.RequiredAttributes())),
		)
	}

	nodes := Assemble(assets, matches, p.Config, p.Pairing, p.log)
	p.log.Info("Assembled hierarchy", slog.Int("nodes", len(nodes)))

	specs := BuildTemplateSpecs(records, byType, discovered)
	vocabulary, profiles := CoverageVectors(discovered)

	return &Result{
		Assets:       assets,
		Discovered:   discovered,
		Similarities: similarities,
		Resolved:     ordered,
		Matches:      matches,
		Nodes:        nodes,
		Specs:        specs,
		Vocabulary:   vocabulary,
		Profiles:     profiles,
	}, nil
}

func sortedTypes(discovered map[string]model.TypeTemplate) []string {
	types := make([]string, 0, len(discovered))
	for assetType := range discovered {
		types = append(types, assetType)
	}
	sort.Strings(types)
	return types
}
