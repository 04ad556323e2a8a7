package pipeline

import (
	"log/slog"
	"sort"

	"github.com/siherrmann/tagforge/model"
)

// Resolve flattens the inheritance chain of every template definition.
//
// Each template is walked iteratively along its base reference with a
// per-walk visited set. Revisiting a name within the same walk truncates the
// walk, so cyclic references resolve to a finite attribute list instead of
// recursing. Direct attributes precede inherited ones and the nearest
// declaration of an attribute name wins.
func Resolve(definitions map[string]model.TemplateDefinition, log *slog.Logger) map[string]model.ResolvedTemplate {
	names := make([]string, 0, len(definitions))
	for name := range definitions {
		names = append(names, name)
	}
	sort.Strings(names)

	resolved := make(map[string]model.ResolvedTemplate, len(definitions))
	for _, name := range names {
		resolved[name] = resolveChain(name, definitions, log)
	}
	return resolved
}

func resolveChain(start string, definitions map[string]model.TemplateDefinition, log *slog.Logger) model.ResolvedTemplate {
	var attributes []model.AttributeDescriptor
	seen := model.StringSet{}
	visited := map[string]bool{}

	current := start
	for current != "" {
		if visited[current] {
			if log != nil {
				log.Warn("Truncated cyclic template inheritance",
					slog.String("template", start),
					slog.String("revisited", current),
				)
			}
			break
		}
		visited[current] = true

		definition, ok := definitions[current]
		if !ok {
			break
		}

		for _, attribute := range definition.Attributes {
			if !seen.Has(attribute.Name) {
				seen.Add(attribute.Name)
				attributes = append(attributes, attribute)
			}
		}

		current = definition.BaseTemplate
	}

	return model.ResolvedTemplate{Name: start, Attributes: attributes}
}

// PriorityOrder sorts resolved templates for matching: attribute count
// descending, so more specific templates are tried first, with a stable
// name tie-break.
func PriorityOrder(resolved map[string]model.ResolvedTemplate) []model.ResolvedTemplate {
	ordered := make([]model.ResolvedTemplate, 0, len(resolved))
	for _, template := range resolved {
		ordered = append(ordered, template)
	}

	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].AttributeCount() != ordered[j].AttributeCount() {
			return ordered[i].AttributeCount() > ordered[j].AttributeCount()
		}
		return ordered[i].Name < ordered[j].Name
	})

	return ordered
}
