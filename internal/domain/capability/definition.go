package capability

// Safety levels for operation classification.
const (
	SafetyLevelReadOnly    = 1 // reads state only
	SafetyLevelReversible  = 2 // creates or overwrites content
	SafetyLevelDestructive = 3 // removes or relocates content
)

// OperationDefinition describes one operation a capability supports.
type OperationDefinition struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  ParameterSchema `json:"parameters"`
	SafetyLevel int             `json:"safety_level"`
}

// ParameterSchema defines operation parameters (JSON Schema format)
type ParameterSchema struct {
	Type       string              `json:"type"`
	Properties map[string]Property `json:"properties"`
	Required   []string            `json:"required,omitempty"`
}

// Property defines a single parameter
type Property struct {
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Items       *Property `json:"items,omitempty"`
}

// Describer is implemented by capabilities that can list their operations.
type Describer interface {
	Operations() []OperationDefinition
}
