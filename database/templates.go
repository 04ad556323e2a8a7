package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/siherrmann/tagforge/helper"
	"github.com/siherrmann/tagforge/model"
	"github.com/siherrmann/tagforge/sql"
)

// TemplatesDBHandlerFunctions defines the interface for Templates database operations.
type TemplatesDBHandlerFunctions interface {
	InsertTemplate(spec *model.TemplateSpec) error
	InsertTemplates(specs []model.TemplateSpec) ([]model.TemplateSpec, error)
	SelectTemplate(id int64) (*model.TemplateSpec, error)
	SelectTemplateByName(name string) (*model.TemplateSpec, error)
	SelectAllTemplates() ([]*model.TemplateSpec, error)
	DeleteTemplate(id int64) error
	DeleteAllTemplates() error
}

// TemplatesDBHandler handles template specification database operations
type TemplatesDBHandler struct {
	db *helper.Database
}

// NewTemplatesDBHandler creates a new templates database handler.
// It initializes the database connection and loads template-related SQL functions.
// If force is true, it will reload the SQL functions even if they already exist.
func NewTemplatesDBHandler(db *helper.Database, force bool) (*TemplatesDBHandler, error) {
	if db == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}

	templatesDbHandler := &TemplatesDBHandler{
		db: db,
	}

	err := sql.LoadTemplatesSql(templatesDbHandler.db.Instance, force)
	if err != nil {
		return nil, helper.NewError("load templates sql", err)
	}

	err = templatesDbHandler.CreateTable()
	if err != nil {
		return nil, helper.NewError("create table", err)
	}

	db.Logger.Info("Initialized TemplatesDBHandler")

	return templatesDbHandler, nil
}

// CreateTable creates the 'templates' table in the database.
// If the table already exists, it does not create it again.
// It also creates all necessary indexes.
func (h *TemplatesDBHandler) CreateTable() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := h.db.Instance.ExecContext(ctx, `SELECT init_templates();`)
	if err != nil {
		log.Panicf("error initializing templates table: %#v", err)
	}

	h.db.Logger.Info("Checked/created table templates")

	return nil
}

// InsertTemplate inserts a new template spec (or updates if the name exists)
func (h *TemplatesDBHandler) InsertTemplate(spec *model.TemplateSpec) error {
	row := h.db.Instance.QueryRow(
		`SELECT * FROM insert_template($1, $2, $3, $4, $5, $6, $7, $8)`,
		spec.Name,
		spec.Description,
		spec.Category,
		spec.AttributeCount,
		spec.AssetsMatched,
		spec.TotalAssets,
		spec.CoveragePercent,
		spec.Attributes,
	)

	return scanTemplate(row, spec)
}

// InsertTemplates inserts a whole template catalog
func (h *TemplatesDBHandler) InsertTemplates(specs []model.TemplateSpec) ([]model.TemplateSpec, error) {
	inserted := make([]model.TemplateSpec, 0, len(specs))
	for _, spec := range specs {
		err := h.InsertTemplate(&spec)
		if err != nil {
			return inserted, helper.NewError(fmt.Sprintf("insert template %s", spec.Name), err)
		}
		inserted = append(inserted, spec)
	}
	return inserted, nil
}

// SelectTemplate retrieves a template spec by ID
func (h *TemplatesDBHandler) SelectTemplate(id int64) (*model.TemplateSpec, error) {
	spec := &model.TemplateSpec{}
	row := h.db.Instance.QueryRow(
		`SELECT * FROM select_template($1)`,
		id,
	)

	err := scanTemplate(row, spec)
	if err != nil {
		return nil, err
	}

	return spec, nil
}

// SelectTemplateByName retrieves a template spec by name
func (h *TemplatesDBHandler) SelectTemplateByName(name string) (*model.TemplateSpec, error) {
	spec := &model.TemplateSpec{}
	row := h.db.Instance.QueryRow(
		`SELECT * FROM select_template_by_name($1)`,
		name,
	)

	err := scanTemplate(row, spec)
	if err != nil {
		return nil, err
	}

	return spec, nil
}

// SelectAllTemplates retrieves all template specs, most attributes first
func (h *TemplatesDBHandler) SelectAllTemplates() ([]*model.TemplateSpec, error) {
	rows, err := h.db.Instance.Query(`SELECT * FROM select_all_templates()`)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	var specs []*model.TemplateSpec
	for rows.Next() {
		spec := &model.TemplateSpec{}
		err := scanTemplate(rows, spec)
		if err != nil {
			return nil, err
		}

		specs = append(specs, spec)
	}

	err = rows.Err()
	if err != nil {
		return nil, helper.NewError("rows error", err)
	}

	return specs, nil
}

// DeleteTemplate deletes a template spec by ID
func (h *TemplatesDBHandler) DeleteTemplate(id int64) error {
	_, err := h.db.Instance.Exec(
		`SELECT delete_template($1)`,
		id,
	)
	if err != nil {
		return helper.NewError("exec", err)
	}
	return nil
}

// DeleteAllTemplates deletes the whole stored template catalog
func (h *TemplatesDBHandler) DeleteAllTemplates() error {
	_, err := h.db.Instance.Exec(`SELECT delete_all_templates()`)
	if err != nil {
		return helper.NewError("exec", err)
	}
	return nil
}

func scanTemplate(row rowScanner, spec *model.TemplateSpec) error {
	err := row.Scan(
		&spec.ID,
		&spec.RID,
		&spec.Name,
		&spec.Description,
		&spec.Category,
		&spec.AttributeCount,
		&spec.AssetsMatched,
		&spec.TotalAssets,
		&spec.CoveragePercent,
		&spec.Attributes,
		&spec.CreatedAt,
	)
	if err != nil {
		return helper.NewError("scan", err)
	}

	return nil
}
