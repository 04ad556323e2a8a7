package retrieval

import (
	"context"

	"github.com/siherrmann/tagforge/model"
)

// Strategy defines a classification strategy
type Strategy interface {
	Classify(ctx context.Context, attributes []string, config *model.QueryConfig) ([]*model.ProfileMatch, error)
}

// CoverageOnlyStrategy performs pure coverage similarity search
type CoverageOnlyStrategy struct {
	engine *Engine
}

// NewCoverageOnlyStrategy creates a new coverage-only strategy
func NewCoverageOnlyStrategy(engine *Engine) *CoverageOnlyStrategy {
	return &CoverageOnlyStrategy{engine: engine}
}

// Classify performs coverage-only classification
func (s *CoverageOnlyStrategy) Classify(ctx context.Context, attributes []string, config *model.QueryConfig) ([]*model.ProfileMatch, error) {
	return s.engine.SimilarProfiles(ctx, attributes, config)
}

// TemplateStrategy enriches coverage matches with the discovered template of
// each matched type
type TemplateStrategy struct {
	engine *Engine
}

// NewTemplateStrategy creates a new template strategy
func NewTemplateStrategy(engine *Engine) *TemplateStrategy {
	return &TemplateStrategy{engine: engine}
}

// Classify performs coverage classification with template enrichment
func (s *TemplateStrategy) Classify(ctx context.Context, attributes []string, config *model.QueryConfig) ([]*model.ProfileMatch, error) {
	return s.engine.Classify(ctx, attributes, config)
}

// HierarchyStrategy enriches coverage matches with the hierarchy instances of
// each matched type
type HierarchyStrategy struct {
	engine *Engine
}

// NewHierarchyStrategy creates a new hierarchy strategy
func NewHierarchyStrategy(engine *Engine) *HierarchyStrategy {
	return &HierarchyStrategy{engine: engine}
}

// Classify performs coverage classification with hierarchy enrichment
func (s *HierarchyStrategy) Classify(ctx context.Context, attributes []string, config *model.QueryConfig) ([]*model.ProfileMatch, error) {
	return s.engine.ClassifyWithInstances(ctx, attributes, config)
}
