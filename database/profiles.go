package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
	"github.com/siherrmann/tagforge/helper"
	"github.com/siherrmann/tagforge/model"
	"github.com/siherrmann/tagforge/sql"
)

// ProfilesDBHandlerFunctions defines the interface for coverage profile database operations.
type ProfilesDBHandlerFunctions interface {
	InsertProfile(profile *model.CoverageProfile) error
	SelectProfileByType(assetType string) (*model.CoverageProfile, error)
	SelectAllProfiles() ([]*model.CoverageProfile, error)
	SelectProfilesBySimilarity(coverage []float32, limit int, threshold float64) ([]*model.CoverageProfile, error)
	DeleteAllProfiles() error
}

// ProfilesDBHandler handles coverage profile database operations
type ProfilesDBHandler struct {
	db *helper.Database
}

// NewProfilesDBHandler creates a new profiles database handler.
// The dimension fixes the coverage vector length, so it must equal the size
// of the run's attribute vocabulary. If force is true, it will reload the SQL
// functions even if they already exist.
func NewProfilesDBHandler(db *helper.Database, dimension int, force bool) (*ProfilesDBHandler, error) {
	if db == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}
	if dimension <= 0 {
		return nil, helper.NewError("dimension validation", fmt.Errorf("vector dimension must be positive, got %d", dimension))
	}

	profilesDbHandler := &ProfilesDBHandler{
		db: db,
	}

	err := sql.LoadProfilesSql(profilesDbHandler.db.Instance, force)
	if err != nil {
		return nil, helper.NewError("load profiles sql", err)
	}

	err = profilesDbHandler.CreateTable(dimension)
	if err != nil {
		return nil, helper.NewError("create table", err)
	}

	db.Logger.Info("Initialized ProfilesDBHandler")

	return profilesDbHandler, nil
}

// CreateTable creates the 'profiles' table in the database with the given
// coverage vector dimension. If the table already exists, it does not create
// it again.
func (h *ProfilesDBHandler) CreateTable(dimension int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := h.db.Instance.ExecContext(ctx, `SELECT init_profiles($1);`, dimension)
	if err != nil {
		log.Panicf("error initializing profiles table: %#v", err)
	}

	h.db.Logger.Info("Checked/created table profiles")

	return nil
}

// InsertProfile inserts a new coverage profile (or updates if the type exists)
func (h *ProfilesDBHandler) InsertProfile(profile *model.CoverageProfile) error {
	coverageVector := pgvector.NewVector(profile.Coverage)

	row := h.db.Instance.QueryRow(
		`SELECT * FROM insert_profile($1, $2, $3, $4)`,
		profile.AssetType,
		profile.AssetCount,
		pq.Array(profile.Vocabulary),
		coverageVector,
	)

	return scanProfile(row, profile, false)
}

// SelectProfileByType retrieves the coverage profile of one asset type
func (h *ProfilesDBHandler) SelectProfileByType(assetType string) (*model.CoverageProfile, error) {
	profile := &model.CoverageProfile{}
	row := h.db.Instance.QueryRow(
		`SELECT * FROM select_profile_by_type($1)`,
		assetType,
	)

	err := scanProfile(row, profile, false)
	if err != nil {
		return nil, err
	}

	return profile, nil
}

// SelectAllProfiles retrieves all coverage profiles ordered by asset type
func (h *ProfilesDBHandler) SelectAllProfiles() ([]*model.CoverageProfile, error) {
	rows, err := h.db.Instance.Query(`SELECT * FROM select_all_profiles()`)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	var profiles []*model.CoverageProfile
	for rows.Next() {
		profile := &model.CoverageProfile{}
		err := scanProfile(rows, profile, false)
		if err != nil {
			return nil, err
		}

		profiles = append(profiles, profile)
	}

	err = rows.Err()
	if err != nil {
		return nil, helper.NewError("rows error", err)
	}

	return profiles, nil
}

// SelectProfilesBySimilarity performs cosine similarity search over the stored
// coverage vectors, most similar first
func (h *ProfilesDBHandler) SelectProfilesBySimilarity(coverage []float32, limit int, threshold float64) ([]*model.CoverageProfile, error) {
	coverageVector := pgvector.NewVector(coverage)

	rows, err := h.db.Instance.Query(
		`SELECT * FROM select_profiles_by_similarity($1, $2, $3)`,
		coverageVector,
		limit,
		threshold,
	)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	var profiles []*model.CoverageProfile
	for rows.Next() {
		profile := &model.CoverageProfile{}
		err := scanProfile(rows, profile, true)
		if err != nil {
			return nil, err
		}

		profiles = append(profiles, profile)
	}

	err = rows.Err()
	if err != nil {
		return nil, helper.NewError("rows error", err)
	}

	return profiles, nil
}

// DeleteAllProfiles deletes all stored coverage profiles
func (h *ProfilesDBHandler) DeleteAllProfiles() error {
	_, err := h.db.Instance.Exec(`SELECT delete_all_profiles()`)
	if err != nil {
		return helper.NewError("exec", err)
	}
	return nil
}

func scanProfile(row rowScanner, profile *model.CoverageProfile, withSimilarity bool) error {
	var coverage pgvector.Vector

	targets := []any{
		&profile.ID,
		&profile.RID,
		&profile.AssetType,
		&profile.AssetCount,
		pq.Array(&profile.Vocabulary),
		&coverage,
		&profile.CreatedAt,
	}
	if withSimilarity {
		targets = append(targets, &profile.Similarity)
	}

	err := row.Scan(targets...)
	if err != nil {
		return helper.NewError("scan", err)
	}

	profile.Coverage = coverage.Slice()
	return nil
}
