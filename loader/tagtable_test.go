package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "table.csv")
	err := os.WriteFile(path, []byte(content), 0644)
	require.NoError(t, err, "Expected the test file to be written")
	return path
}

func TestReadTagTable(t *testing.T) {
	t.Run("Reads all mapped columns from a csv table", func(t *testing.T) {
		path := writeTempCSV(t, `Name,Level 2,Level 3,Asset Type Optimised,Attribute Optimised,poInttype,engunits,Description,P&ID Asset,SCADA Asset,SecurityString
TNP_PMP001_RUN,Area1,Zone1,Pump,run,digital,,PMP001 Raw water pump,PMP001,SC_PMP001,World:A(r)
TNP_PMP001_FLOW,Area1,Zone1,Pump,flow,float,l/s,PMP001 Raw water pump,PMP001,SC_PMP001,World:A(r)
`)

		records, err := ReadTagTable(path)

		require.NoError(t, err, "Expected the table to be read")
		require.Len(t, records, 2)
		assert.Equal(t, "TNP_PMP001_RUN", records[0].Identifier)
		assert.Equal(t, "Area1", records[0].Level2)
		assert.Equal(t, "Zone1", records[0].Level3)
		assert.Equal(t, "Pump", records[0].AssetType)
		assert.Equal(t, "run", records[0].Attribute)
		assert.Equal(t, "digital", records[0].PointType)
		assert.Equal(t, "l/s", records[1].EngineeringUnit)
		assert.Equal(t, "PMP001 Raw water pump", records[0].Description)
		assert.Equal(t, "PMP001", records[0].AssetID)
		assert.Equal(t, "SC_PMP001", records[0].LinkedName)
		assert.Equal(t, "World:A(r)", records[0].SecurityString)
	})

	t.Run("Missing required columns are all named in one error", func(t *testing.T) {
		path := writeTempCSV(t, `Name,Asset Type Optimised
TNP_PMP001_RUN,Pump
`)

		_, err := ReadTagTable(path)

		require.Error(t, err, "Expected a column validation error")
		assert.Contains(t, err.Error(), "Level 2")
		assert.Contains(t, err.Error(), "Level 3")
		assert.Contains(t, err.Error(), "Attribute Optimised")
	})

	t.Run("Optional columns may be absent and short rows are tolerated", func(t *testing.T) {
		path := writeTempCSV(t, `Name,Level 2,Level 3,Attribute Optimised
TNP_PMP001_RUN,Area1,Zone1,run
TNP_PMP002_RUN,Area1
`)

		records, err := ReadTagTable(path)

		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Empty(t, records[0].AssetType, "Expected absent columns to read as empty")
		assert.Empty(t, records[1].Level3, "Expected short rows to read as empty cells")
	})

	t.Run("Rows without identifier and asset are skipped", func(t *testing.T) {
		path := writeTempCSV(t, `Name,Level 2,Level 3,Attribute Optimised,P&ID Asset
TNP_PMP001_RUN,Area1,Zone1,run,PMP001
,Area1,Zone1,run,
nan,Area1,Zone1,run,nan
`)

		records, err := ReadTagTable(path)

		require.NoError(t, err)
		assert.Len(t, records, 1, "Expected blank and nan rows skipped")
	})

	t.Run("Empty file is rejected", func(t *testing.T) {
		path := writeTempCSV(t, "")

		_, err := ReadTagTable(path)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "header")
	})

	t.Run("Reads the first sheet of a workbook", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "table.xlsx")
		file := excelize.NewFile()
		sheet := file.GetSheetName(0)
		header := []string{"Name", "Level 2", "Level 3", "Attribute Optimised", "P&ID Asset"}
		row := []string{"TNP_PMP001_RUN", "Area1", "Zone1", "run", "PMP001"}
		require.NoError(t, file.SetSheetRow(sheet, "A1", &header))
		require.NoError(t, file.SetSheetRow(sheet, "A2", &row))
		require.NoError(t, file.SaveAs(path), "Expected the workbook to be written")
		require.NoError(t, file.Close())

		records, err := ReadTagTable(path)

		require.NoError(t, err, "Expected the workbook to be read")
		require.Len(t, records, 1)
		assert.Equal(t, "PMP001", records[0].AssetID)
		assert.Equal(t, "run", records[0].Attribute)
	})
}
