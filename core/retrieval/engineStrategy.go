package retrieval

import (
	"context"
	"sort"

	"github.com/siherrmann/tagforge/model"
)

// Classify performs coverage similarity search enriched with the discovered
// template of each matched type
func (e *Engine) Classify(ctx context.Context, attributes []string, config *model.QueryConfig) ([]*model.ProfileMatch, error) {
	// Get coverage results
	matches, err := e.SimilarProfiles(ctx, attributes, config)
	if err != nil {
		return nil, err
	}

	// Attach the discovered template of each matched type
	for _, match := range matches {
		template, err := e.templates.SelectTemplateByName(match.Profile.AssetType)
		if err != nil {
			// Types below the discovery thresholds have no template
			continue
		}
		match.Template = template
		match.Method = "coverage_template"
	}

	return e.sortMatches(matches, config.TopK), nil
}

// ClassifyWithInstances performs coverage similarity search and attaches the
// hierarchy instances of each matched type, expanded to the configured depth
func (e *Engine) ClassifyWithInstances(ctx context.Context, attributes []string, config *model.QueryConfig) ([]*model.ProfileMatch, error) {
	// Get coverage and template results
	matches, err := e.Classify(ctx, attributes, config)
	if err != nil {
		return nil, err
	}

	// Attach the hierarchy instances of each matched type
	for _, match := range matches {
		instances, err := e.InstancesOf(ctx, match.Profile.AssetType)
		if err != nil {
			continue
		}

		if config.MaxDepth <= 0 {
			match.Nodes = instances
			continue
		}

		// Expand each instance to the configured depth
		for _, instance := range instances {
			subtree, err := e.Subtree(ctx, instance.ParentPath(), instance.Name, config.MaxDepth)
			if err != nil {
				continue
			}
			for _, result := range subtree {
				match.Nodes = append(match.Nodes, result.Node)
			}
		}
	}

	return matches, nil
}

func (e *Engine) sortMatches(matches []*model.ProfileMatch, topK int) []*model.ProfileMatch {
	// Sort by score
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	// Limit to top-k
	if topK > 0 && len(matches) > topK {
		matches = matches[:topK]
	}

	return matches
}
