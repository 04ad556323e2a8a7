package database

import (
	"context"
	gosql "database/sql"
	"fmt"
	"log"
	"time"

	"github.com/siherrmann/tagforge/helper"
	"github.com/siherrmann/tagforge/model"
	"github.com/siherrmann/tagforge/sql"
)

// NodesDBHandlerFunctions defines the interface for Nodes database operations.
type NodesDBHandlerFunctions interface {
	InsertNode(node *model.HierarchyNode) error
	InsertNodes(nodes []model.HierarchyNode) ([]model.HierarchyNode, error)
	SelectNode(id int64) (*model.HierarchyNode, error)
	SelectNodeByPath(parentPath string, name string) (*model.HierarchyNode, error)
	SelectAllNodes() ([]*model.HierarchyNode, error)
	SelectNodesByParent(parentPath string) ([]*model.HierarchyNode, error)
	SelectNodesByTemplate(template string) ([]*model.HierarchyNode, error)
	DeleteNode(id int64) error
	DeleteAllNodes() error
}

// NodesDBHandler handles hierarchy node database operations
type NodesDBHandler struct {
	db *helper.Database
}

// NewNodesDBHandler creates a new nodes database handler.
// It initializes the database connection and loads node-related SQL functions.
// If force is true, it will reload the SQL functions even if they already exist.
func NewNodesDBHandler(db *helper.Database, force bool) (*NodesDBHandler, error) {
	if db == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}

	nodesDbHandler := &NodesDBHandler{
		db: db,
	}

	err := sql.LoadNodesSql(nodesDbHandler.db.Instance, force)
	if err != nil {
		return nil, helper.NewError("load nodes sql", err)
	}

	err = nodesDbHandler.CreateTable()
	if err != nil {
		return nil, helper.NewError("create table", err)
	}

	db.Logger.Info("Initialized NodesDBHandler")

	return nodesDbHandler, nil
}

// CreateTable creates the 'nodes' table in the database.
// If the table already exists, it does not create it again.
// It also creates all necessary indexes.
func (h *NodesDBHandler) CreateTable() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := h.db.Instance.ExecContext(ctx, `SELECT init_nodes();`)
	if err != nil {
		log.Panicf("error initializing nodes table: %#v", err)
	}

	h.db.Logger.Info("Checked/created table nodes")

	return nil
}

// InsertNode inserts a new node (or updates if its path exists)
func (h *NodesDBHandler) InsertNode(node *model.HierarchyNode) error {
	row := h.db.Instance.QueryRow(
		`SELECT * FROM insert_node($1, $2, $3, $4, $5, $6, $7, $8)`,
		node.Position,
		node.ParentPath(),
		node.Name,
		string(node.Kind),
		node.Description,
		node.SecurityString,
		node.Template,
		node.Value,
	)

	return scanNode(row, node)
}

// InsertNodes inserts the assembled hierarchy in its output order
func (h *NodesDBHandler) InsertNodes(nodes []model.HierarchyNode) ([]model.HierarchyNode, error) {
	inserted := make([]model.HierarchyNode, 0, len(nodes))
	for _, node := range nodes {
		err := h.InsertNode(&node)
		if err != nil {
			return inserted, helper.NewError(fmt.Sprintf("insert node %s", node.Name), err)
		}
		inserted = append(inserted, node)
	}
	return inserted, nil
}

// SelectNode retrieves a node by ID
func (h *NodesDBHandler) SelectNode(id int64) (*model.HierarchyNode, error) {
	node := &model.HierarchyNode{}
	row := h.db.Instance.QueryRow(
		`SELECT * FROM select_node($1)`,
		id,
	)

	err := scanNode(row, node)
	if err != nil {
		return nil, err
	}

	return node, nil
}

// SelectNodeByPath retrieves a node by its parent path and name
func (h *NodesDBHandler) SelectNodeByPath(parentPath string, name string) (*model.HierarchyNode, error) {
	node := &model.HierarchyNode{}
	row := h.db.Instance.QueryRow(
		`SELECT * FROM select_node_by_path($1, $2)`,
		parentPath,
		name,
	)

	err := scanNode(row, node)
	if err != nil {
		return nil, err
	}

	return node, nil
}

// SelectAllNodes retrieves the whole hierarchy in its output order
func (h *NodesDBHandler) SelectAllNodes() ([]*model.HierarchyNode, error) {
	rows, err := h.db.Instance.Query(`SELECT * FROM select_all_nodes()`)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	return scanNodes(rows)
}

// SelectNodesByParent retrieves the direct children of a parent path
func (h *NodesDBHandler) SelectNodesByParent(parentPath string) ([]*model.HierarchyNode, error) {
	rows, err := h.db.Instance.Query(
		`SELECT * FROM select_nodes_by_parent($1)`,
		parentPath,
	)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	return scanNodes(rows)
}

// SelectNodesByTemplate retrieves all nodes assigned to a template
func (h *NodesDBHandler) SelectNodesByTemplate(template string) ([]*model.HierarchyNode, error) {
	rows, err := h.db.Instance.Query(
		`SELECT * FROM select_nodes_by_template($1)`,
		template,
	)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	return scanNodes(rows)
}

// DeleteNode deletes a node by ID
func (h *NodesDBHandler) DeleteNode(id int64) error {
	_, err := h.db.Instance.Exec(
		`SELECT delete_node($1)`,
		id,
	)
	if err != nil {
		return helper.NewError("exec", err)
	}
	return nil
}

// DeleteAllNodes deletes the whole stored hierarchy
func (h *NodesDBHandler) DeleteAllNodes() error {
	_, err := h.db.Instance.Exec(`SELECT delete_all_nodes()`)
	if err != nil {
		return helper.NewError("exec", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNode(row rowScanner, node *model.HierarchyNode) error {
	var parentPath string
	var kind string

	err := row.Scan(
		&node.ID,
		&node.RID,
		&node.Position,
		&parentPath,
		&node.Name,
		&kind,
		&node.Description,
		&node.SecurityString,
		&node.Template,
		&node.Value,
		&node.CreatedAt,
	)
	if err != nil {
		return helper.NewError("scan", err)
	}

	node.Parent = model.SplitPath(parentPath)
	node.Kind = model.NodeKind(kind)
	return nil
}

func scanNodes(rows *gosql.Rows) ([]*model.HierarchyNode, error) {
	var nodes []*model.HierarchyNode
	for rows.Next() {
		node := &model.HierarchyNode{}
		err := scanNode(rows, node)
		if err != nil {
			return nil, err
		}

		nodes = append(nodes, node)
	}

	err := rows.Err()
	if err != nil {
		return nil, helper.NewError("rows error", err)
	}

	return nodes, nil
}
