package loader

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/siherrmann/tagforge/helper"
	"github.com/siherrmann/tagforge/model"
	"github.com/xuri/excelize/v2"
)

var hierarchyHeader = []string{
	"Selected(x)", "Parent", "Name", "ObjectType", "Error",
	"Description", "SecurityString", "Template", "Value",
}

var catalogHeader = []string{
	"Selected(x)", "Parent", "Name", "ObjectType", "Error", "Description", "SecurityString",
	"Type", "AllowElementToExtend", "BaseTemplateOnly", "Categories", "AttributeIsHidden",
	"AttributeIsManualDataEntry", "AttributeIsConfigurationItem", "AttributeIsExcluded",
	"AttributeIsIndexed", "AttributeDefaultUOM", "AttributeType", "AttributeDefaultValue",
	"AttributeDataReference", "AttributeConfigString", "AttributeDisplayDigits",
}

// WriteHierarchy writes assembled hierarchy rows to a CSV or XLSX file in the
// exact order they were assembled.
func WriteHierarchy(path string, nodes []model.HierarchyNode) error {
	rows := make([][]string, 0, len(nodes)+1)
	rows = append(rows, hierarchyHeader)
	for _, node := range nodes {
		rows = append(rows, []string{
			"x",
			node.ParentPath(),
			node.Name,
			string(node.Kind),
			"",
			node.Description,
			node.SecurityString,
			node.Template,
			node.Value,
		})
	}

	err := writeRows(path, rows)
	if err != nil {
		return helper.NewError("writing hierarchy", err)
	}
	return nil
}

// WriteTemplateCatalog writes template specs as flat row pairs for bulk-import
// tooling: one ElementTemplate row per template followed by one
// AttributeTemplate row per attribute.
func WriteTemplateCatalog(path string, specs []model.TemplateSpec) error {
	rows := [][]string{catalogHeader}
	for _, spec := range specs {
		rows = append(rows, elementTemplateRow(spec))
		for _, attribute := range spec.Attributes {
			rows = append(rows, attributeTemplateRow(spec, attribute))
		}
	}

	err := writeRows(path, rows)
	if err != nil {
		return helper.NewError("writing template catalog", err)
	}
	return nil
}

// WriteTemplateSpecs writes the full template specification as indented JSON
func WriteTemplateSpecs(path string, specs []model.TemplateSpec) error {
	document := map[string]any{
		"templates": specs,
	}
	encoded, err := json.MarshalIndent(document, "", "  ")
	if err != nil {
		return helper.NewError("writing template specs", err)
	}

	err = os.WriteFile(path, encoded, 0644)
	if err != nil {
		return helper.NewError("writing template specs", err)
	}
	return nil
}

func elementTemplateRow(spec model.TemplateSpec) []string {
	row := make([]string, len(catalogHeader))
	row[0] = "x"
	row[2] = spec.Name
	row[3] = string(model.NodeElementTemplate)
	row[5] = spec.Description
	row[7] = "None"
	row[8] = "FALSE"
	row[9] = "FALSE"
	row[10] = strings.Join([]string{spec.Category, spec.Name}, ";") + ";"
	return row
}

func attributeTemplateRow(spec model.TemplateSpec, attribute model.AttributeSpec) []string {
	defaultValue := "0"
	if attribute.DataType == "Boolean" {
		defaultValue = "FALSE"
	}

	row := make([]string, len(catalogHeader))
	row[0] = "x"
	row[1] = spec.Name
	row[2] = attribute.Name
	row[3] = string(model.NodeAttributeTemplate)
	row[5] = attribute.Description
	for _, flag := range []int{11, 12, 13, 14, 15} {
		row[flag] = "FALSE"
	}
	row[16] = attribute.EngineeringUnit
	row[17] = attribute.DataType
	row[18] = defaultValue
	row[19] = "PI Point"
	row[20] = model.TagAttributeDelimiter + attribute.Name
	return row
}

// writeRows writes raw rows to the first sheet of an XLSX file or a CSV file,
// chosen by the path extension.
func writeRows(path string, rows [][]string) error {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		file := excelize.NewFile()
		defer file.Close()

		sheet := file.GetSheetName(0)
		for position, row := range rows {
			cellName, err := excelize.CoordinatesToCellName(1, position+1)
			if err != nil {
				return fmt.Errorf("addressing row %v: %w", position+1, err)
			}
			err = file.SetSheetRow(sheet, cellName, &row)
			if err != nil {
				return fmt.Errorf("writing row %v: %w", position+1, err)
			}
		}
		return file.SaveAs(path)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	err = writer.WriteAll(rows)
	if err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	return nil
}
