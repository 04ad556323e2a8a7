package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/siherrmann/tagforge/helper"
	"github.com/siherrmann/tagforge/model"
	"github.com/xuri/excelize/v2"
)

// Column names of the flat tag table export.
const (
	ColumnIdentifier      = "Name"
	ColumnLevel2          = "Level 2"
	ColumnLevel3          = "Level 3"
	ColumnAssetType       = "Asset Type Optimised"
	ColumnAttribute       = "Attribute Optimised"
	ColumnPointType       = "poInttype"
	ColumnEngineeringUnit = "engunits"
	ColumnDescription     = "Description"
	ColumnAssetID         = "P&ID Asset"
	ColumnLinkedName      = "SCADA Asset"
	ColumnSecurityString  = "SecurityString"
)

var errNoHeader = errors.New("table has no header row")

// ReadTagTable reads the flat tag table from a CSV or XLSX file.
// Missing required columns abort the read with an error naming all of them.
func ReadTagTable(path string) ([]model.TagRecord, error) {
	rows, err := readRows(path)
	if err != nil {
		return nil, helper.NewError("reading tag table", err)
	}

	records, err := rowsToTagRecords(rows)
	if err != nil {
		return nil, helper.NewError("reading tag table", err)
	}
	return records, nil
}

// readRows loads all rows of the first sheet (XLSX) or the whole file (CSV)
// as raw string cells.
func readRows(path string) ([][]string, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		file, err := excelize.OpenFile(path)
		if err != nil {
			return nil, fmt.Errorf("opening workbook: %w", err)
		}
		defer file.Close()

		sheet := file.GetSheetName(0)
		rows, err := file.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("reading sheet %v: %w", sheet, err)
		}
		return rows, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	return rows, nil
}

// columnIndex maps trimmed header names to their cell position
func columnIndex(header []string) map[string]int {
	index := map[string]int{}
	for position, name := range header {
		index[strings.TrimSpace(name)] = position
	}
	return index
}

// requireColumns reports all missing required columns in one error
func requireColumns(index map[string]int, required []string) error {
	missing := []string{}
	for _, column := range required {
		if _, ok := index[column]; !ok {
			missing = append(missing, column)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required columns: %v", strings.Join(missing, ", "))
	}
	return nil
}

// cell returns the trimmed value of a named column, empty for absent columns
// and short rows
func cell(index map[string]int, row []string, column string) string {
	position, ok := index[column]
	if !ok || position >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[position])
}

func rowsToTagRecords(rows [][]string) ([]model.TagRecord, error) {
	if len(rows) == 0 {
		return nil, errNoHeader
	}

	index := columnIndex(rows[0])
	err := requireColumns(index, []string{ColumnIdentifier, ColumnLevel2, ColumnLevel3, ColumnAttribute})
	if err != nil {
		return nil, err
	}

	records := make([]model.TagRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := model.TagRecord{
			Identifier:      cell(index, row, ColumnIdentifier),
			Level2:          cell(index, row, ColumnLevel2),
			Level3:          cell(index, row, ColumnLevel3),
			AssetType:       cell(index, row, ColumnAssetType),
			Attribute:       cell(index, row, ColumnAttribute),
			PointType:       cell(index, row, ColumnPointType),
			EngineeringUnit: cell(index, row, ColumnEngineeringUnit),
			Description:     cell(index, row, ColumnDescription),
			AssetID:         cell(index, row, ColumnAssetID),
			LinkedName:      cell(index, row, ColumnLinkedName),
			SecurityString:  cell(index, row, ColumnSecurityString),
		}
		if model.IsBlank(record.Identifier) && model.IsBlank(record.AssetID) {
			continue
		}
		records = append(records, record)
	}
	return records, nil
}
