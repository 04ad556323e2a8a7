package loader

import (
	"testing"

	"github.com/siherrmann/tagforge/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadTemplateDefinitions(t *testing.T) {
	t.Run("Element rows declare templates and attribute rows attach to them", func(t *testing.T) {
		path := writeTempCSV(t, `Name,Parent,ObjectType,BaseTemplate,AttributeConfigString
Pump,,ElementTemplate,Equipment,
Run,Pump,AttributeTemplate,,\\Archive\%@|Site Code%_%@|SCADA Asset Name%run
Flow,Pump,AttributeTemplate,,\\Archive\%@|Site Code%_%@|SCADA Asset Name%flow
Equipment,,ElementTemplate,,
Status,Equipment,AttributeTemplate,,no derivable name
`)

		definitions, err := ReadTemplateDefinitions(path, nil)

		require.NoError(t, err, "Expected the definitions to be read")
		require.Len(t, definitions, 2)

		pump := definitions["Pump"]
		assert.Equal(t, "Equipment", pump.BaseTemplate)
		require.Len(t, pump.Attributes, 2)
		assert.Equal(t, "Run", pump.Attributes[0].Name)
		assert.Equal(t, "run", pump.Attributes[0].TagAttribute, "Expected the tag attribute derived from the config string")
		assert.Equal(t, "flow", pump.Attributes[1].TagAttribute)

		equipment := definitions["Equipment"]
		require.Len(t, equipment.Attributes, 1)
		assert.Empty(t, equipment.Attributes[0].TagAttribute, "Expected no tag attribute without the delimiter")
	})

	t.Run("Duplicate template names keep the later declaration", func(t *testing.T) {
		path := writeTempCSV(t, `Name,Parent,ObjectType,BaseTemplate
Pump,,ElementTemplate,First
Pump,,ElementTemplate,Second
`)

		definitions, err := ReadTemplateDefinitions(path, nil)

		require.NoError(t, err)
		require.Len(t, definitions, 1)
		assert.Equal(t, "Second", definitions["Pump"].BaseTemplate, "Expected the later declaration to win")
	})

	t.Run("Attribute rows without a declared parent are dropped", func(t *testing.T) {
		path := writeTempCSV(t, `Name,Parent,ObjectType
Pump,,ElementTemplate
Run,Valve,AttributeTemplate
`)

		definitions, err := ReadTemplateDefinitions(path, nil)

		require.NoError(t, err)
		assert.Empty(t, definitions["Pump"].Attributes, "Expected the orphan attribute row dropped")
	})

	t.Run("Missing required columns are rejected", func(t *testing.T) {
		path := writeTempCSV(t, `Name,BaseTemplate
Pump,Equipment
`)

		_, err := ReadTemplateDefinitions(path, nil)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Parent")
		assert.Contains(t, err.Error(), "ObjectType")
	})

	t.Run("Definitions feed template resolution unchanged", func(t *testing.T) {
		path := writeTempCSV(t, `Name,Parent,ObjectType,AttributeConfigString
Pump,,ElementTemplate,
Run,Pump,AttributeTemplate,%@|Site Code%_%@|SCADA Asset Name%run
`)

		definitions, err := ReadTemplateDefinitions(path, nil)

		require.NoError(t, err)
		required := model.ResolvedTemplate{Name: "Pump", Attributes: definitions["Pump"].Attributes}.RequiredAttributes()
		assert.True(t, required.Has("run"))
	})
}
