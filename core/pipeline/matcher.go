package pipeline

import "github.com/siherrmann/tagforge/model"

// Match assigns at most one template to every asset. Templates are tried in
// the given priority order; an asset is assigned the first template whose
// required attribute set is a subset of the asset's attributes and is never
// reconsidered afterwards. Templates without any required attribute are
// skipped, they can never win a match. Assets matching no template stay
// unmapped.
func Match(ordered []model.ResolvedTemplate, sets model.AssetAttributeSets) model.TemplateMatch {
	matches := model.TemplateMatch{}
	assets := sets.SortedAssets()

	for _, template := range ordered {
		required := template.RequiredAttributes()
		if len(required) == 0 {
			continue
		}

		for _, asset := range assets {
			if _, done := matches[asset]; done {
				continue
			}
			if required.IsSubsetOf(sets[asset]) {
				matches[asset] = template.Name
			}
		}
	}

	return matches
}
