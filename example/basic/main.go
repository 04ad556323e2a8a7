package main

import (
	"context"
	"fmt"
	"log"

	"github.com/siherrmann/tagforge"
	"github.com/siherrmann/tagforge/helper"
	"github.com/siherrmann/tagforge/model"
)

// A small flat tag table: three valves and a pump in one zone, plus a level
// controller/transmitter pair for the re-parenting heuristic.
var sampleRecords = []model.TagRecord{
	{Identifier: "TNP_V001_open", Level2: "Treatment", Level3: "Filtration", AssetType: "Valve", Attribute: "open", AssetID: "V001", LinkedName: "SC_V001", Description: "V001 Backwash valve"},
	{Identifier: "TNP_V001_fault", Level2: "Treatment", Level3: "Filtration", AssetType: "Valve", Attribute: "fault", AssetID: "V001", LinkedName: "SC_V001", Description: "V001 Backwash valve"},
	{Identifier: "TNP_V002_open", Level2: "Treatment", Level3: "Filtration", AssetType: "Valve", Attribute: "open", AssetID: "V002", LinkedName: "SC_V002", Description: "V002 Inlet valve"},
	{Identifier: "TNP_V002_fault", Level2: "Treatment", Level3: "Filtration", AssetType: "Valve", Attribute: "fault", AssetID: "V002", LinkedName: "SC_V002", Description: "V002 Inlet valve"},
	{Identifier: "TNP_V003_open", Level2: "Treatment", Level3: "Filtration", AssetType: "Valve", Attribute: "open", AssetID: "V003", LinkedName: "SC_V003", Description: "V003 Outlet valve"},
	{Identifier: "TNP_V003_fault", Level2: "Treatment", Level3: "Filtration", AssetType: "Valve", Attribute: "fault", AssetID: "V003", LinkedName: "SC_V003", Description: "V003 Outlet valve"},
	{Identifier: "TNP_PMP001_run", Level2: "Treatment", Level3: "Filtration", AssetType: "Pump", Attribute: "run", AssetID: "PMP001", LinkedName: "SC_PMP001", Description: "PMP001 Backwash pump"},
	{Identifier: "TNP_PMP001_fault", Level2: "Treatment", Level3: "Filtration", AssetType: "Pump", Attribute: "fault", AssetID: "PMP001", LinkedName: "SC_PMP001", Description: "PMP001 Backwash pump"},
	{Identifier: "TNP_LIT001_level", Level2: "Treatment", Level3: "Filtration", AssetType: "Level Sensor", Attribute: "level", AssetID: "LIT001", LinkedName: "SC_LIT001", Description: "LIT001 Filter level"},
	{Identifier: "TNP_LIC001_sp", Level2: "Treatment", Level3: "Filtration", AssetType: "Level Controller", Attribute: "sp", AssetID: "LIC001", LinkedName: "SC_LIC001", Description: "LIC001 Filter level control"},
}

var sampleDefinitions = map[string]model.TemplateDefinition{
	"Valve": {
		Name: "Valve",
		Attributes: []model.AttributeDescriptor{
			{Name: "Open", TagAttribute: "open"},
			{Name: "Fault", TagAttribute: "fault"},
		},
	},
	"Pump": {
		Name: "Pump",
		Attributes: []model.AttributeDescriptor{
			{Name: "Run", TagAttribute: "run"},
			{Name: "Fault", TagAttribute: "fault"},
		},
	},
	"Level Sensor": {
		Name: "Level Sensor",
		Attributes: []model.AttributeDescriptor{
			{Name: "Level", TagAttribute: "level"},
		},
	},
	"Level Controller": {
		Name: "Level Controller",
		Attributes: []model.AttributeDescriptor{
			{Name: "Setpoint", TagAttribute: "sp"},
		},
	},
}

func main() {
	// Start a test PostgreSQL container
	teardown, dbPort, err := helper.MustStartPostgresContainer()
	if err != nil {
		log.Fatalf("Failed to start PostgreSQL container: %v", err)
	}
	defer teardown(context.Background())

	// Create database configuration using the container port
	dbConfig := &helper.DatabaseConfiguration{
		Host:     "localhost",
		Port:     dbPort,
		Database: "database",
		Username: "user",
		Password: "password",
		Schema:   "public",
		SSLMode:  "disable",
	}

	config := model.DefaultConfig()
	config.RootName = "Demo WTP"
	config.SensorTemplate = "Level Sensor"
	config.ControllerTemplate = "Level Controller"

	tf, err := tagforge.NewTagforge(dbConfig, config)
	if err != nil {
		log.Fatalf("Failed to create tagforge: %v", err)
	}
	defer tf.Close()

	// Run the pipeline and persist hierarchy, templates and profiles
	fmt.Println("Processing tag table...")
	result, err := tf.ProcessAndStore(sampleRecords, sampleDefinitions)
	if err != nil {
		log.Fatalf("Failed to process and store: %v", err)
	}

	fmt.Printf("Deduplicated %d assets from %d rows\n", len(result.Assets), len(sampleRecords))
	fmt.Printf("Assembled %d hierarchy nodes\n", len(result.Nodes))

	// Discovered type templates
	fmt.Println("\nDiscovered type templates:")
	for assetType, template := range result.Discovered {
		fmt.Printf("  %s: %d assets, core %v\n", assetType, template.AssetCount, template.CoreList)
	}

	// Template matches
	fmt.Println("\nTemplate matches:")
	for asset, template := range result.Matches {
		fmt.Printf("  %s -> %s\n", asset, template)
	}

	// Hierarchy with the controller re-parented under its sensor
	fmt.Println("\nHierarchy:")
	for _, node := range result.Nodes {
		fmt.Printf("  [%s] %s\n", node.Kind, node.Path())
	}

	// Classify an unknown asset against the stored coverage profiles
	matches, err := tf.Classify([]string{"open", "fault"}, nil)
	if err != nil {
		log.Fatalf("Failed to classify: %v", err)
	}

	fmt.Println("\nClassification of {open, fault}:")
	for _, match := range matches {
		fmt.Printf("  %s (similarity %.2f)\n", match.Profile.AssetType, match.Score)
	}

	// Export the results
	if err := tf.ExportHierarchy("hierarchy.csv", result); err != nil {
		log.Fatalf("Failed to export hierarchy: %v", err)
	}
	if err := tf.ExportTemplateCatalog("template_catalog.csv", result); err != nil {
		log.Fatalf("Failed to export template catalog: %v", err)
	}
	if err := tf.ExportTemplateSpecs("template_specs.json", result); err != nil {
		log.Fatalf("Failed to export template specs: %v", err)
	}

	fmt.Println("\nExported hierarchy.csv, template_catalog.csv and template_specs.json")
	fmt.Println("Basic example completed successfully!")
}
