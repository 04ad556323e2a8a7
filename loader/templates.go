package loader

import (
	"log/slog"

	"github.com/siherrmann/tagforge/helper"
	"github.com/siherrmann/tagforge/model"
)

// Column names of a template definition table.
const (
	ColumnTemplateName   = "Name"
	ColumnTemplateParent = "Parent"
	ColumnObjectType     = "ObjectType"
	ColumnBaseTemplate   = "BaseTemplate"
	ColumnConfigString   = "AttributeConfigString"
)

// ReadTemplateDefinitions reads declared templates from a CSV or XLSX file.
// ElementTemplate rows declare templates, AttributeTemplate rows attach
// attributes to the template named in their Parent column. A duplicate
// template name overwrites the earlier declaration with a logged warning.
func ReadTemplateDefinitions(path string, log *slog.Logger) (map[string]model.TemplateDefinition, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	rows, err := readRows(path)
	if err != nil {
		return nil, helper.NewError("reading template definitions", err)
	}
	if len(rows) == 0 {
		return nil, helper.NewError("reading template definitions", errNoHeader)
	}

	index := columnIndex(rows[0])
	err = requireColumns(index, []string{ColumnTemplateName, ColumnTemplateParent, ColumnObjectType})
	if err != nil {
		return nil, helper.NewError("reading template definitions", err)
	}

	definitions := map[string]model.TemplateDefinition{}
	for _, row := range rows[1:] {
		if cell(index, row, ColumnObjectType) != string(model.NodeElementTemplate) {
			continue
		}
		name := cell(index, row, ColumnTemplateName)
		if model.IsBlank(name) {
			continue
		}
		if _, ok := definitions[name]; ok {
			log.Warn("Duplicate template name, keeping the later declaration", "template", name)
		}
		definitions[name] = model.TemplateDefinition{
			Name:         name,
			BaseTemplate: cell(index, row, ColumnBaseTemplate),
		}
	}

	for _, row := range rows[1:] {
		if cell(index, row, ColumnObjectType) != string(model.NodeAttributeTemplate) {
			continue
		}
		parent := cell(index, row, ColumnTemplateParent)
		definition, ok := definitions[parent]
		if !ok {
			continue
		}

		config := cell(index, row, ColumnConfigString)
		definition.Attributes = append(definition.Attributes, model.AttributeDescriptor{
			Name:         cell(index, row, ColumnTemplateName),
			TagAttribute: model.ParseTagAttribute(config),
			ConfigString: config,
		})
		definitions[parent] = definition
	}

	return definitions, nil
}
