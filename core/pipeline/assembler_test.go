package pipeline

import (
	"testing"

	"github.com/siherrmann/tagforge/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() model.Config {
	config := model.DefaultConfig()
	config.RootName = "Root"
	return config
}

func nodeByPath(nodes []model.HierarchyNode, path string) (model.HierarchyNode, bool) {
	for _, node := range nodes {
		if node.Path() == path {
			return node, true
		}
	}
	return model.HierarchyNode{}, false
}

func TestAssemble(t *testing.T) {
	t.Run("Level nodes are emitted and blank levels are skipped", func(t *testing.T) {
		assets := []model.AssetRecord{
			{Level2: "Area1", Level3: "", AssetID: "P002"},
			{Level2: "Area1", Level3: "Zone1", AssetID: "P001"},
		}

		nodes := Assemble(assets, model.TemplateMatch{}, testConfig(), nil, nil)

		for _, path := range []string{"Root", "Root\\Area1", "Root\\Area1\\Zone1", "Root\\Area1\\Zone1\\P001", "Root\\Area1\\P002"} {
			_, found := nodeByPath(nodes, path)
			assert.True(t, found, "Expected node at path %q", path)
		}
		// P002 parents directly under Area1, no empty level-3 node exists
		for _, node := range nodes {
			assert.NotEmpty(t, node.Name, "Expected no empty-named node")
		}
	})

	t.Run("Parent rows precede their children", func(t *testing.T) {
		assets := []model.AssetRecord{
			{Level2: "Area1", Level3: "Zone1", AssetID: "P001"},
		}

		nodes := Assemble(assets, model.TemplateMatch{}, testConfig(), nil, nil)

		positions := map[string]int{}
		for _, node := range nodes {
			positions[node.Path()] = node.Position
		}
		assert.Less(t, positions["Root"], positions["Root\\Area1"], "Expected the root before level 2")
		assert.Less(t, positions["Root\\Area1"], positions["Root\\Area1\\Zone1"], "Expected level 2 before level 3")
		assert.Less(t, positions["Root\\Area1\\Zone1"], positions["Root\\Area1\\Zone1\\P001"], "Expected level 3 before the asset")
	})

	t.Run("Display name carries the description suffix", func(t *testing.T) {
		assets := []model.AssetRecord{
			{Level2: "Area1", AssetID: "P001", Description: "Feed pump"},
		}

		nodes := Assemble(assets, model.TemplateMatch{}, testConfig(), nil, nil)

		node, found := nodeByPath(nodes, "Root\\Area1\\P001 - Feed pump")
		require.True(t, found, "Expected the display name to include the description")
		assert.Equal(t, "Feed pump", node.Description)
	})

	t.Run("Matched assets get a linked name attribute child", func(t *testing.T) {
		config := testConfig()
		assets := []model.AssetRecord{
			{Level2: "Area1", AssetID: "V001", LinkedName: "SC_V001"},
			{Level2: "Area1", AssetID: "X001", LinkedName: "SC_X001"},
		}
		matches := model.TemplateMatch{"V001": "Valve"}

		nodes := Assemble(assets, matches, config, nil, nil)

		attribute, found := nodeByPath(nodes, "Root\\Area1\\V001\\SCADA Asset Name")
		require.True(t, found, "Expected an attribute child under the matched element")
		assert.Equal(t, model.NodeAttribute, attribute.Kind)
		assert.Equal(t, "SC_V001", attribute.Value, "Expected the linked system name as value")
		assert.Empty(t, attribute.Template, "Expected no template reference on the attribute row")

		_, found = nodeByPath(nodes, "Root\\Area1\\X001\\SCADA Asset Name")
		assert.False(t, found, "Expected no attribute child under the unmatched element")

		element, found := nodeByPath(nodes, "Root\\Area1\\V001")
		require.True(t, found)
		assert.Equal(t, "Valve", element.Template, "Expected the element to carry its matched template")
	})

	t.Run("Controller re-parents under its sensor", func(t *testing.T) {
		config := testConfig()
		config.SensorTemplate = "Analog Sensor"
		config.ControllerTemplate = "PID Controller"

		assets := []model.AssetRecord{
			{Level2: "Area1", AssetID: "LIC001"},
			{Level2: "Area1", AssetID: "LIT001", Description: "Level transmitter"},
		}
		matches := model.TemplateMatch{
			"LIT001": "Analog Sensor",
			"LIC001": "PID Controller",
		}
		pairing := MarkerSubstitution('C', 'T')

		nodes := Assemble(assets, matches, config, pairing, nil)

		controller, found := nodeByPath(nodes, "Root\\Area1\\LIT001 - Level transmitter\\LIC001")
		require.True(t, found, "Expected the controller under the sensor's full display name")
		assert.Equal(t, "PID Controller", controller.Template)

		// The sensor row exists before the controller row
		sensor, found := nodeByPath(nodes, "Root\\Area1\\LIT001 - Level transmitter")
		require.True(t, found)
		assert.Less(t, sensor.Position, controller.Position, "Expected the sensor row to precede the controller row")
	})

	t.Run("Controller without a sensor falls back to its level parent", func(t *testing.T) {
		config := testConfig()
		config.SensorTemplate = "Analog Sensor"
		config.ControllerTemplate = "PID Controller"

		assets := []model.AssetRecord{
			{Level2: "Area1", AssetID: "LIC002"},
		}
		matches := model.TemplateMatch{"LIC002": "PID Controller"}

		nodes := Assemble(assets, matches, config, MarkerSubstitution('C', 'T'), nil)

		_, found := nodeByPath(nodes, "Root\\Area1\\LIC002")
		assert.True(t, found, "Expected the level-based parent when no sensor matches")
	})

	t.Run("First marker position wins on ambiguity", func(t *testing.T) {
		config := testConfig()
		config.SensorTemplate = "Analog Sensor"
		config.ControllerTemplate = "PID Controller"

		// Both substitutions of CC001 exist as sensors; the first position wins
		assets := []model.AssetRecord{
			{Level2: "Area1", AssetID: "CC001"},
			{Level2: "Area1", AssetID: "CT001"},
			{Level2: "Area1", AssetID: "TC001"},
		}
		matches := model.TemplateMatch{
			"CC001": "PID Controller",
			"CT001": "Analog Sensor",
			"TC001": "Analog Sensor",
		}

		nodes := Assemble(assets, matches, config, MarkerSubstitution('C', 'T'), nil)

		_, found := nodeByPath(nodes, "Root\\Area1\\TC001\\CC001")
		assert.True(t, found, "Expected the substitution at the first marker position to win")
	})

	t.Run("Security string is applied to element rows only", func(t *testing.T) {
		config := testConfig()
		config.SecurityString = "World:A(r)"

		assets := []model.AssetRecord{
			{Level2: "Area1", AssetID: "V001", LinkedName: "SC_V001"},
		}
		matches := model.TemplateMatch{"V001": "Valve"}

		nodes := Assemble(assets, matches, config, nil, nil)

		for _, node := range nodes {
			if node.Kind == model.NodeElement {
				assert.Equal(t, "World:A(r)", node.SecurityString, "Expected the security string on element rows")
			} else {
				assert.Empty(t, node.SecurityString, "Expected no security string on attribute rows")
			}
		}
	})
}

func TestMarkerSubstitution(t *testing.T) {
	t.Run("One candidate per marker position", func(t *testing.T) {
		pairing := MarkerSubstitution('C', 'T')

		candidates := pairing("LIC0C1")

		assert.Equal(t, []string{"LIT0C1", "LIC0T1"}, candidates, "Expected one substitution per position, in order")
	})

	t.Run("No marker yields no candidates", func(t *testing.T) {
		pairing := MarkerSubstitution('C', 'T')

		assert.Empty(t, pairing("PMP001"), "Expected no candidates without the marker")
	})
}
