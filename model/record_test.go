package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsBlank(t *testing.T) {
	t.Run("Empty and whitespace values are blank", func(t *testing.T) {
		assert.True(t, IsBlank(""), "Expected empty string to be blank")
		assert.True(t, IsBlank("   "), "Expected whitespace to be blank")
	})

	t.Run("Spreadsheet nan artifacts are blank", func(t *testing.T) {
		assert.True(t, IsBlank("nan"), "Expected lowercase nan to be blank")
		assert.True(t, IsBlank("NaN"), "Expected mixed-case NaN to be blank")
		assert.True(t, IsBlank(" nan "), "Expected padded nan to be blank")
	})

	t.Run("Real values are not blank", func(t *testing.T) {
		assert.False(t, IsBlank("Area1"), "Expected a real value to not be blank")
		assert.False(t, IsBlank("0"), "Expected zero to not be blank")
	})
}

func TestDeduplicateAssets(t *testing.T) {
	t.Run("One record per asset key with first description winning", func(t *testing.T) {
		records := []TagRecord{
			{Level2: "Area1", Level3: "Zone1", AssetID: "P001", Description: "first"},
			{Level2: "Area1", Level3: "Zone1", AssetID: "P001", Description: "second"},
			{Level2: "Area1", Level3: "Zone1", AssetID: "P002", Description: "pump two"},
		}

		assets := DeduplicateAssets(records)

		require.Len(t, assets, 2, "Expected two deduplicated assets")
		assert.Equal(t, "first", assets[0].Description, "Expected first seen description to win")
		assert.Equal(t, "P002", assets[1].AssetID, "Expected second asset to survive")
	})

	t.Run("Last non-blank linked name wins", func(t *testing.T) {
		records := []TagRecord{
			{Level2: "Area1", AssetID: "P001", LinkedName: "OLD_NAME"},
			{Level2: "Area1", AssetID: "P001", LinkedName: ""},
			{Level2: "Area1", AssetID: "P001", LinkedName: "NEW_NAME"},
		}

		assets := DeduplicateAssets(records)

		require.Len(t, assets, 1, "Expected a single asset")
		assert.Equal(t, "NEW_NAME", assets[0].LinkedName, "Expected the last non-blank linked name")
	})

	t.Run("Rows without an asset identifier are skipped", func(t *testing.T) {
		records := []TagRecord{
			{Level2: "Area1", AssetID: ""},
			{Level2: "Area1", AssetID: "nan"},
			{Level2: "Area1", AssetID: "P001"},
		}

		assets := DeduplicateAssets(records)

		require.Len(t, assets, 1, "Expected only the row with a real asset identifier")
		assert.Equal(t, "P001", assets[0].AssetID)
	})

	t.Run("Output is sorted by level2, level3, asset", func(t *testing.T) {
		records := []TagRecord{
			{Level2: "B", Level3: "Z", AssetID: "P2"},
			{Level2: "A", Level3: "Y", AssetID: "P9"},
			{Level2: "A", Level3: "X", AssetID: "P1"},
			{Level2: "A", Level3: "X", AssetID: "P0"},
		}

		assets := DeduplicateAssets(records)

		require.Len(t, assets, 4)
		assert.Equal(t, "P0", assets[0].AssetID, "Expected sort by asset within level3")
		assert.Equal(t, "P1", assets[1].AssetID)
		assert.Equal(t, "P9", assets[2].AssetID, "Expected sort by level3 within level2")
		assert.Equal(t, "P2", assets[3].AssetID, "Expected level2 to sort last")
	})
}

func TestBuildAssetAttributeSets(t *testing.T) {
	t.Run("Attributes are normalized and deduplicated", func(t *testing.T) {
		records := []TagRecord{
			{AssetID: "P001", Attribute: "Flow"},
			{AssetID: "P001", Attribute: " FLOW "},
			{AssetID: "P001", Attribute: "Pressure"},
		}

		sets := BuildAssetAttributeSets(records)

		require.Contains(t, sets, "P001")
		assert.Equal(t, 2, len(sets["P001"]), "Expected duplicate attributes to collapse")
		assert.True(t, sets["P001"].Has("flow"), "Expected lower-cased attribute")
		assert.True(t, sets["P001"].Has("pressure"))
	})

	t.Run("Rows without asset or attribute are skipped", func(t *testing.T) {
		records := []TagRecord{
			{AssetID: "", Attribute: "flow"},
			{AssetID: "P001", Attribute: ""},
		}

		sets := BuildAssetAttributeSets(records)

		assert.Empty(t, sets, "Expected no sets from incomplete rows")
	})
}

func TestGroupAttributeSetsByType(t *testing.T) {
	t.Run("Groups assets under their type", func(t *testing.T) {
		records := []TagRecord{
			{AssetType: "Valve", AssetID: "V001", Attribute: "open"},
			{AssetType: "Valve", AssetID: "V002", Attribute: "open"},
			{AssetType: "Motor", AssetID: "M001", Attribute: "run"},
		}

		grouped := GroupAttributeSetsByType(records)

		require.Len(t, grouped, 2, "Expected two asset types")
		assert.Len(t, grouped["Valve"], 2, "Expected two valves")
		assert.True(t, grouped["Motor"]["M001"].Has("run"))
	})
}
