package model

// Config holds all tunable parameters of the inference pipeline
type Config struct {
	// RootName is the level-1 element every hierarchy is rooted at
	RootName string `json:"root_name"`
	// SecurityString is applied to every emitted element row
	SecurityString string `json:"security_string,omitempty"`

	// Identifier decomposition parameters
	PrefixLength int  `json:"prefix_length"`
	Separator    rune `json:"separator"`

	// Template discovery parameters
	MinPopulation       int     `json:"min_population"`       // asset types need strictly more assets than this
	CoverageThreshold   float64 `json:"coverage_threshold"`   // percent, strictly greater than
	SimilarityThreshold float64 `json:"similarity_threshold"` // percent, strictly greater than

	// Re-parenting parameters
	SensorTemplate     string `json:"sensor_template,omitempty"`
	ControllerTemplate string `json:"controller_template,omitempty"`
	Marker             byte   `json:"marker"`
	Replacement        byte   `json:"replacement"`
}

// DefaultConfig returns the default pipeline configuration.
// Sensor and controller template names are empty, so re-parenting is inactive
// until both are set.
func DefaultConfig() Config {
	return Config{
		RootName:            "Site",
		PrefixLength:        4,
		Separator:           '_',
		MinPopulation:       2,
		CoverageThreshold:   70,
		SimilarityThreshold: 70,
		Marker:              'C',
		Replacement:         'T',
	}
}
