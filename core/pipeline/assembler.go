package pipeline

import (
	"log/slog"

	"github.com/siherrmann/tagforge/model"
)

// linkedNameAttribute is the attribute row emitted under every matched element
const linkedNameAttribute = "SCADA Asset Name"

// Assemble builds the ordered hierarchy rows from the deduplicated asset
// table and the template matches. Assets are expected sorted by
// (Level2, Level3, AssetID), one row per asset key.
//
// Emission order is root, level-2 elements, level-3 elements, then assets with
// sensor-class assets first so that controller rows re-parented under a sensor
// always follow the row establishing their parent path. Every matched element
// additionally gets one attribute child row carrying the asset's linked system
// name.
func Assemble(assets []model.AssetRecord, matches model.TemplateMatch, config model.Config, pairing PairingRule, log *slog.Logger) []model.HierarchyNode {
	var nodes []model.HierarchyNode

	addElement := func(parent []string, name, description, template string) {
		nodes = append(nodes, model.HierarchyNode{
			Position:       len(nodes),
			Parent:         parent,
			Name:           name,
			Kind:           model.NodeElement,
			Description:    description,
			SecurityString: config.SecurityString,
			Template:       template,
		})
	}

	addElement(nil, config.RootName, "", "")

	seenLevel2 := map[string]bool{}
	for _, asset := range assets {
		if model.IsBlank(asset.Level2) || seenLevel2[asset.Level2] {
			continue
		}
		seenLevel2[asset.Level2] = true
		addElement([]string{config.RootName}, asset.Level2, "", "")
	}

	seenLevel3 := map[[2]string]bool{}
	for _, asset := range assets {
		if model.IsBlank(asset.Level2) || model.IsBlank(asset.Level3) {
			continue
		}
		group := [2]string{asset.Level2, asset.Level3}
		if seenLevel3[group] {
			continue
		}
		seenLevel3[group] = true
		addElement([]string{config.RootName, asset.Level2}, asset.Level3, "", "")
	}

	sensors, regulars, controllers := partitionAssets(assets, matches, config)

	sensorIndex := make(map[string]model.AssetRecord, len(sensors))
	for _, sensor := range sensors {
		sensorIndex[sensor.AssetID] = sensor
	}

	emit := func(asset model.AssetRecord, reparent bool) {
		parent := levelParent(asset, config)

		if reparent && pairing != nil {
			for _, candidate := range pairing(asset.AssetID) {
				sensor, ok := sensorIndex[candidate]
				if !ok {
					continue
				}
				parent = append(parent, model.DisplayName(sensor.AssetID, sensor.Description))
				if log != nil {
					log.Info("Re-parented controller under sensor",
						slog.String("controller", asset.AssetID),
						slog.String("sensor", sensor.AssetID),
					)
				}
				break
			}
		}

		display := model.DisplayName(asset.AssetID, asset.Description)
		template := matches[asset.AssetID]
		addElement(parent, display, asset.Description, template)

		if template != "" {
			attributeParent := make([]string, 0, len(parent)+1)
			attributeParent = append(attributeParent, parent...)
			attributeParent = append(attributeParent, display)

			nodes = append(nodes, model.HierarchyNode{
				Position: len(nodes),
				Parent:   attributeParent,
				Name:     linkedNameAttribute,
				Kind:     model.NodeAttribute,
				Value:    asset.LinkedName,
			})
		}
	}

	for _, sensor := range sensors {
		emit(sensor, false)
	}
	for _, regular := range regulars {
		emit(regular, false)
	}
	for _, controller := range controllers {
		emit(controller, true)
	}

	return nodes
}

// partitionAssets splits assets into sensor-class, regular and
// controller-class slices, preserving input order within each class. A class
// with an empty configured template name stays empty.
func partitionAssets(assets []model.AssetRecord, matches model.TemplateMatch, config model.Config) (sensors, regulars, controllers []model.AssetRecord) {
	for _, asset := range assets {
		template := matches[asset.AssetID]
		switch {
		case config.SensorTemplate != "" && template == config.SensorTemplate:
			sensors = append(sensors, asset)
		case config.ControllerTemplate != "" && template == config.ControllerTemplate:
			controllers = append(controllers, asset)
		default:
			regulars = append(regulars, asset)
		}
	}
	return sensors, regulars, controllers
}

// levelParent returns the asset's default parent path, skipping blank levels
func levelParent(asset model.AssetRecord, config model.Config) []string {
	parent := []string{config.RootName}
	if !model.IsBlank(asset.Level2) {
		parent = append(parent, asset.Level2)
	}
	if !model.IsBlank(asset.Level3) {
		parent = append(parent, asset.Level3)
	}
	return parent
}
