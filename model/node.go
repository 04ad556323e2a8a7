package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// NodeKind is the object type of a hierarchy row
type NodeKind string

const (
	NodeElement           NodeKind = "Element"
	NodeAttribute         NodeKind = "Attribute"
	NodeElementTemplate   NodeKind = "ElementTemplate"
	NodeAttributeTemplate NodeKind = "AttributeTemplate"
)

// HierarchyNode is one row of the assembled hierarchy. Output order matters:
// a node must follow the rows establishing its parent path.
type HierarchyNode struct {
	ID             int64     `json:"id,omitempty"`
	RID            uuid.UUID `json:"rid,omitempty"`
	Position       int       `json:"position"`
	Parent         []string  `json:"parent"` // ordered ancestor display names, empty for the root
	Name           string    `json:"name"`   // display name, may carry a description suffix
	Kind           NodeKind  `json:"kind"`
	Description    string    `json:"description,omitempty"`
	SecurityString string    `json:"security_string,omitempty"`
	Template       string    `json:"template,omitempty"`
	Value          string    `json:"value,omitempty"`
	CreatedAt      time.Time `json:"created_at,omitempty"`
}

// PathSeparator separates segments of a parent path string
const PathSeparator = "\\"

// ParentPath returns the ancestor names joined by the path separator
func (n HierarchyNode) ParentPath() string {
	return strings.Join(n.Parent, PathSeparator)
}

// Path returns the node's own full path
func (n HierarchyNode) Path() string {
	if len(n.Parent) == 0 {
		return n.Name
	}
	return n.ParentPath() + PathSeparator + n.Name
}

// SplitPath splits a joined parent path back into its segments, nil for the
// empty path
func SplitPath(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, PathSeparator)
}

// DisplayName builds an element display name, suffixing the description with
// " - " when one is present
func DisplayName(name, description string) string {
	if description == "" {
		return name
	}
	return name + " - " + description
}
