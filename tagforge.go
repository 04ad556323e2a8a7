package tagforge

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/siherrmann/tagforge/core/pipeline"
	"github.com/siherrmann/tagforge/core/retrieval"
	"github.com/siherrmann/tagforge/database"
	"github.com/siherrmann/tagforge/helper"
	"github.com/siherrmann/tagforge/loader"
	"github.com/siherrmann/tagforge/model"
	loadSql "github.com/siherrmann/tagforge/sql"
)

// Tagforge provides a unified interface to the inference pipeline and all
// database handlers
type Tagforge struct {
	DB        *helper.Database
	Nodes     *database.NodesDBHandler
	Templates *database.TemplatesDBHandler
	Profiles  *database.ProfilesDBHandler // Created on first store, sized to the run's vocabulary
	Retrieval *retrieval.Engine           // Created alongside the profiles handler
	Pipeline  *pipeline.Pipeline
	// Logging
	log *slog.Logger
}

// NewTagforge creates a new Tagforge instance with all handlers initialized
func NewTagforge(dbConfig *helper.DatabaseConfiguration, config model.Config) (*Tagforge, error) {
	// Logger
	opts := helper.PrettyHandlerOptions{
		SlogOpts: slog.HandlerOptions{
			Level: slog.LevelInfo,
		},
	}
	logger := slog.New(helper.NewPrettyHandler(os.Stdout, opts))

	// Initialize database
	db := helper.NewDatabase("tagforge", dbConfig, logger)
	err := loadSql.Init(db.Instance)
	if err != nil {
		return nil, helper.NewError("initialize database extensions", err)
	}

	// force=false to not reload if functions already exist
	nodes, err := database.NewNodesDBHandler(db, false)
	if err != nil {
		return nil, helper.NewError("create nodes handler", err)
	}

	templates, err := database.NewTemplatesDBHandler(db, false)
	if err != nil {
		return nil, helper.NewError("create templates handler", err)
	}

	return &Tagforge{
		DB:        db,
		Nodes:     nodes,
		Templates: templates,
		Pipeline:  pipeline.NewPipeline(config, logger),
		log:       logger,
	}, nil
}

// Close closes the database connection
func (t *Tagforge) Close() error {
	if t.DB != nil && t.DB.Instance != nil {
		return t.DB.Instance.Close()
	}
	return nil
}

// SetPairingRule replaces the default marker-substitution pairing rule used
// for controller re-parenting
func (t *Tagforge) SetPairingRule(rule pipeline.PairingRule) {
	t.Pipeline.Pairing = rule
}

// Process runs the full inference pipeline over an in-memory tag table
func (t *Tagforge) Process(records []model.TagRecord, definitions map[string]model.TemplateDefinition) (*pipeline.Result, error) {
	if t.Pipeline == nil {
		return nil, helper.NewError("process tag table", fmt.Errorf("pipeline not set"))
	}

	return t.Pipeline.Run(records, definitions)
}

// ProcessFile reads a tag table from a CSV or XLSX file and runs the full
// inference pipeline over it. The template definitions path may be empty, in
// which case no templates are matched.
func (t *Tagforge) ProcessFile(tagTablePath string, definitionsPath string) (*pipeline.Result, error) {
	records, err := loader.ReadTagTable(tagTablePath)
	if err != nil {
		return nil, helper.NewError("read tag table", err)
	}

	t.log.Info("Read tag table", slog.String("path", tagTablePath), slog.Int("rows", len(records)))

	var definitions map[string]model.TemplateDefinition
	if definitionsPath != "" {
		definitions, err = loader.ReadTemplateDefinitions(definitionsPath, t.log)
		if err != nil {
			return nil, helper.NewError("read template definitions", err)
		}

		t.log.Info("Read template definitions", slog.String("path", definitionsPath), slog.Int("templates", len(definitions)))
	}

	return t.Process(records, definitions)
}

// StoreResult persists a pipeline result: the assembled hierarchy, the
// template catalog and the per-type coverage profiles. The profiles handler
// is created on first use because its vector dimension is the size of the
// run's attribute vocabulary.
func (t *Tagforge) StoreResult(result *pipeline.Result) error {
	if result == nil {
		return helper.NewError("store result", fmt.Errorf("result is nil"))
	}

	_, err := t.Nodes.InsertNodes(result.Nodes)
	if err != nil {
		return helper.NewError("store nodes", err)
	}

	t.log.Info("Stored hierarchy", slog.Int("nodes", len(result.Nodes)))

	_, err = t.Templates.InsertTemplates(result.Specs)
	if err != nil {
		return helper.NewError("store templates", err)
	}

	t.log.Info("Stored template catalog", slog.Int("templates", len(result.Specs)))

	if len(result.Vocabulary) == 0 {
		return nil
	}

	if t.Profiles == nil {
		t.Profiles, err = database.NewProfilesDBHandler(t.DB, len(result.Vocabulary), false)
		if err != nil {
			return helper.NewError("create profiles handler", err)
		}
	}

	for assetType, coverage := range result.Profiles {
		profile := &model.CoverageProfile{
			AssetType:  assetType,
			AssetCount: result.Discovered[assetType].AssetCount,
			Vocabulary: result.Vocabulary,
			Coverage:   coverage,
		}
		err = t.Profiles.InsertProfile(profile)
		if err != nil {
			return helper.NewError(fmt.Sprintf("store profile %s", assetType), err)
		}
	}

	t.Retrieval = retrieval.NewEngine(t.Profiles, t.Templates, t.Nodes, result.Vocabulary)

	t.log.Info("Stored coverage profiles", slog.Int("profiles", len(result.Profiles)))

	return nil
}

// Classify finds the stored asset types whose attribute coverage is most
// similar to the given attribute set, with the discovered template of each
// match attached. Requires stored profiles, see StoreResult.
func (t *Tagforge) Classify(attributes []string, config *model.QueryConfig) ([]*model.ProfileMatch, error) {
	if t.Retrieval == nil {
		return nil, helper.NewError("classify attributes", fmt.Errorf("no stored profiles"))
	}
	if config == nil {
		config = model.DefaultQueryConfig()
	}

	return t.Retrieval.Classify(context.Background(), attributes, config)
}

// ProcessAndStore runs the pipeline and persists everything it produced
func (t *Tagforge) ProcessAndStore(records []model.TagRecord, definitions map[string]model.TemplateDefinition) (*pipeline.Result, error) {
	result, err := t.Process(records, definitions)
	if err != nil {
		return nil, err
	}

	err = t.StoreResult(result)
	if err != nil {
		return nil, err
	}

	return result, nil
}

// ExportHierarchy writes the assembled hierarchy rows to a CSV or XLSX file
func (t *Tagforge) ExportHierarchy(path string, result *pipeline.Result) error {
	if result == nil {
		return helper.NewError("export hierarchy", fmt.Errorf("result is nil"))
	}
	return loader.WriteHierarchy(path, result.Nodes)
}

// ExportTemplateCatalog writes the flat bulk-import template rows to a CSV or
// XLSX file
func (t *Tagforge) ExportTemplateCatalog(path string, result *pipeline.Result) error {
	if result == nil {
		return helper.NewError("export template catalog", fmt.Errorf("result is nil"))
	}
	return loader.WriteTemplateCatalog(path, result.Specs)
}

// ExportTemplateSpecs writes the full template specification as JSON
func (t *Tagforge) ExportTemplateSpecs(path string, result *pipeline.Result) error {
	if result == nil {
		return helper.NewError("export template specs", fmt.Errorf("result is nil"))
	}
	return loader.WriteTemplateSpecs(path, result.Specs)
}
