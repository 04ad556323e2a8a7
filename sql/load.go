package sql

import (
	"database/sql"
	_ "embed"
	"fmt"
	"log"
)

//go:embed init.sql
var initSQL string

//go:embed nodes.sql
var nodesSQL string

//go:embed templates.sql
var templatesSQL string

//go:embed profiles.sql
var profilesSQL string

// Function lists for verification
var NodesFunctions = []string{
	"init_nodes",
	"insert_node",
	"select_node",
	"select_node_by_path",
	"select_all_nodes",
	"select_nodes_by_parent",
	"select_nodes_by_template",
	"delete_node",
	"delete_all_nodes",
}

var TemplatesFunctions = []string{
	"init_templates",
	"insert_template",
	"select_template",
	"select_template_by_name",
	"select_all_templates",
	"delete_template",
	"delete_all_templates",
}

var ProfilesFunctions = []string{
	"init_profiles",
	"insert_profile",
	"select_profile_by_type",
	"select_all_profiles",
	"select_profiles_by_similarity",
	"delete_all_profiles",
}

// Init intializes db extensions
func Init(db *sql.DB) error {
	_, err := db.Exec(initSQL)
	if err != nil {
		return fmt.Errorf("error executing schema SQL: %w", err)
	}

	log.Println("Database extensions initialized successfully")
	return nil
}

// LoadNodesSql loads node-related SQL functions
func LoadNodesSql(db *sql.DB, force bool) error {
	if !force {
		exist, err := checkFunctions(db, NodesFunctions)
		if err != nil {
			return fmt.Errorf("error checking existing nodes functions: %w", err)
		}
		if exist {
			return nil
		}
	}

	_, err := db.Exec(nodesSQL)
	if err != nil {
		return fmt.Errorf("error executing nodes SQL: %w", err)
	}

	exist, err := checkFunctions(db, NodesFunctions)
	if err != nil {
		return fmt.Errorf("error checking existing functions: %w", err)
	}
	if !exist {
		return fmt.Errorf("not all required SQL functions were created")
	}

	log.Println("SQL nodes functions loaded successfully")
	return nil
}

// LoadTemplatesSql loads template-related SQL functions
func LoadTemplatesSql(db *sql.DB, force bool) error {
	if !force {
		exist, err := checkFunctions(db, TemplatesFunctions)
		if err != nil {
			return fmt.Errorf("error checking existing templates functions: %w", err)
		}
		if exist {
			return nil
		}
	}

	_, err := db.Exec(templatesSQL)
	if err != nil {
		return fmt.Errorf("error executing templates SQL: %w", err)
	}

	exist, err := checkFunctions(db, TemplatesFunctions)
	if err != nil {
		return fmt.Errorf("error checking existing functions: %w", err)
	}
	if !exist {
		return fmt.Errorf("not all required SQL functions were created")
	}

	log.Println("SQL templates functions loaded successfully")
	return nil
}

// LoadProfilesSql loads coverage-profile-related SQL functions
func LoadProfilesSql(db *sql.DB, force bool) error {
	if !force {
		exist, err := checkFunctions(db, ProfilesFunctions)
		if err != nil {
			return fmt.Errorf("error checking existing profiles functions: %w", err)
		}
		if exist {
			return nil
		}
	}

	_, err := db.Exec(profilesSQL)
	if err != nil {
		return fmt.Errorf("error executing profiles SQL: %w", err)
	}

	exist, err := checkFunctions(db, ProfilesFunctions)
	if err != nil {
		return fmt.Errorf("error checking existing functions: %w", err)
	}
	if !exist {
		return fmt.Errorf("not all required SQL functions were created")
	}

	log.Println("SQL profiles functions loaded successfully")
	return nil
}

// LoadAllSql loads all SQL functions
func LoadAllSql(db *sql.DB, force bool) error {
	if err := LoadNodesSql(db, force); err != nil {
		return err
	}

	if err := LoadTemplatesSql(db, force); err != nil {
		return err
	}

	if err := LoadProfilesSql(db, force); err != nil {
		return err
	}

	return nil
}

// checkFunctions verifies that all required functions exist in the database
func checkFunctions(db *sql.DB, sqlFunctions []string) (bool, error) {
	var allExist bool
	for _, f := range sqlFunctions {
		err := db.QueryRow(
			`SELECT EXISTS(SELECT 1 FROM pg_proc WHERE proname = $1);`,
			f,
		).Scan(&allExist)
		if err != nil {
			return false, fmt.Errorf("error checking existence of function %s: %w", f, err)
		}
		if !allExist {
			log.Printf("Function %s does not exist", f)
			break
		}
	}
	return allExist, nil
}
