package retrieval

import (
	"context"
	"fmt"

	"github.com/siherrmann/tagforge/core/graph"
	"github.com/siherrmann/tagforge/database"
	"github.com/siherrmann/tagforge/model"
)

// Engine answers classification and hierarchy queries against a stored run.
// The vocabulary must be the sorted attribute vocabulary the stored coverage
// profiles were built over.
type Engine struct {
	profiles   *database.ProfilesDBHandler
	templates  *database.TemplatesDBHandler
	nodes      *database.NodesDBHandler
	vocabulary []string
}

// NewEngine creates a new retrieval engine
func NewEngine(profiles *database.ProfilesDBHandler, templates *database.TemplatesDBHandler, nodes *database.NodesDBHandler, vocabulary []string) *Engine {
	return &Engine{
		profiles:   profiles,
		templates:  templates,
		nodes:      nodes,
		vocabulary: vocabulary,
	}
}

// NewEngineFromStore creates a retrieval engine reading the vocabulary from
// the stored profiles
func NewEngineFromStore(profiles *database.ProfilesDBHandler, templates *database.TemplatesDBHandler, nodes *database.NodesDBHandler) (*Engine, error) {
	stored, err := profiles.SelectAllProfiles()
	if err != nil {
		return nil, err
	}
	if len(stored) == 0 {
		return nil, fmt.Errorf("no stored profiles to read the vocabulary from")
	}

	return NewEngine(profiles, templates, nodes, stored[0].Vocabulary), nil
}

// CoverageVector builds the binary membership vector of an attribute set over
// the engine's vocabulary. Attributes outside the vocabulary are ignored.
func (e *Engine) CoverageVector(attributes []string) []float32 {
	present := make(map[string]bool, len(attributes))
	for _, attribute := range attributes {
		present[attribute] = true
	}

	vector := make([]float32, len(e.vocabulary))
	for i, attribute := range e.vocabulary {
		if present[attribute] {
			vector[i] = 1
		}
	}

	return vector
}

// SimilarProfiles performs pure coverage similarity search
func (e *Engine) SimilarProfiles(ctx context.Context, attributes []string, config *model.QueryConfig) ([]*model.ProfileMatch, error) {
	if len(e.vocabulary) == 0 {
		return nil, fmt.Errorf("engine has an empty vocabulary")
	}

	profiles, err := e.profiles.SelectProfilesBySimilarity(e.CoverageVector(attributes), config.TopK, config.SimilarityThreshold)
	if err != nil {
		return nil, err
	}

	results := make([]*model.ProfileMatch, len(profiles))
	for i, profile := range profiles {
		results[i] = &model.ProfileMatch{
			Profile: profile,
			Score:   profile.Similarity,
			Method:  "coverage",
		}
	}

	return results, nil
}

// InstancesOf retrieves the hierarchy elements instantiated from a template
func (e *Engine) InstancesOf(ctx context.Context, template string) ([]*model.HierarchyNode, error) {
	return e.nodes.SelectNodesByTemplate(template)
}

// Subtree retrieves a node and everything below it, bounded by maxDepth
func (e *Engine) Subtree(ctx context.Context, parentPath string, name string, maxDepth int) ([]*graph.TraversalResult, error) {
	return graph.BFS(ctx, e.nodes, parentPath, name, maxDepth)
}
