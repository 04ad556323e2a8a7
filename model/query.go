package model

// QueryConfig holds all tunable parameters of classification and hierarchy
// queries against a stored run
type QueryConfig struct {
	// TopK limits the number of profile candidates returned
	TopK int `json:"top_k"`
	// SimilarityThreshold is the minimum cosine similarity (0..1) a coverage
	// profile must reach to be considered
	SimilarityThreshold float64 `json:"similarity_threshold"`
	// MaxDepth bounds hierarchy expansion below matched instances
	MaxDepth int `json:"max_depth"`
}

// DefaultQueryConfig returns the default query configuration
func DefaultQueryConfig() *QueryConfig {
	return &QueryConfig{
		TopK:                5,
		SimilarityThreshold: 0.0,
		MaxDepth:            1,
	}
}

// ProfileMatch is one classification candidate for a queried attribute set
type ProfileMatch struct {
	Profile *CoverageProfile `json:"profile"`
	// Score is the cosine similarity between the queried coverage vector and
	// the profile's stored vector
	Score  float64 `json:"score"`
	Method string  `json:"method"`
	// Template is the discovered template of the matched type, nil when the
	// type fell below the discovery thresholds
	Template *TemplateSpec `json:"template,omitempty"`
	// Nodes holds the hierarchy instances of the matched type when the
	// strategy expands them
	Nodes []*HierarchyNode `json:"nodes,omitempty"`
}
