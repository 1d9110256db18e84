package fileops

import "automation/internal/domain/capability"

// Operation names.
const (
	OpRead      = "read"
	OpReadCSV   = "read_csv"
	OpReadJSON  = "read_json"
	OpWrite     = "write"
	OpDelete    = "delete"
	OpMove      = "move"
	OpCopy      = "copy"
	OpList      = "list"
	OpWriteJSON = "write_json"
	OpWriteCSV  = "write_csv"
	OpCreateDir = "create_dir"
	OpExists    = "exists"
)

var (
	pathProperty = capability.Property{Type: "string", Description: "Path relative to the sandbox root"}
	fromProperty = capability.Property{Type: "string", Description: "Source path relative to the sandbox root"}
	toProperty   = capability.Property{Type: "string", Description: "Destination path relative to the sandbox root"}
	rowProperty  = capability.Property{Type: "array", Description: "One CSV record", Items: &capability.Property{Type: "string"}}
)

func pathOnlySchema() capability.ParameterSchema {
	return capability.ParameterSchema{
		Type:       "object",
		Properties: map[string]capability.Property{"path": pathProperty},
		Required:   []string{"path"},
	}
}

func transferSchema() capability.ParameterSchema {
	return capability.ParameterSchema{
		Type:       "object",
		Properties: map[string]capability.Property{"from": fromProperty, "to": toProperty},
		Required:   []string{"from", "to"},
	}
}

func (e *Executor) operationTable() map[string]operation {
	ops := []operation{
		{
			def: capability.OperationDefinition{
				Name:        OpRead,
				Description: "Read a file as text",
				Parameters:  pathOnlySchema(),
				SafetyLevel: capability.SafetyLevelReadOnly,
			},
			handle: e.readFile,
		},
		{
			def: capability.OperationDefinition{
				Name:        OpReadJSON,
				Description: "Read a file and parse it as JSON",
				Parameters:  pathOnlySchema(),
				SafetyLevel: capability.SafetyLevelReadOnly,
			},
			handle: e.readJSON,
		},
		{
			def: capability.OperationDefinition{
				Name:        OpReadCSV,
				Description: "Read a CSV file into headers and rows",
				Parameters:  pathOnlySchema(),
				SafetyLevel: capability.SafetyLevelReadOnly,
			},
			handle: e.readCSV,
		},
		{
			def: capability.OperationDefinition{
				Name:        OpWrite,
				Description: "Create or overwrite a file with text content",
				Parameters: capability.ParameterSchema{
					Type: "object",
					Properties: map[string]capability.Property{
						"path":    pathProperty,
						"content": {Type: "string", Description: "Text to write"},
					},
					Required: []string{"path", "content"},
				},
				SafetyLevel: capability.SafetyLevelReversible,
			},
			handle: e.writeFile,
		},
		{
			def: capability.OperationDefinition{
				Name:        OpWriteJSON,
				Description: "Write a value as pretty-printed JSON",
				Parameters: capability.ParameterSchema{
					Type: "object",
					Properties: map[string]capability.Property{
						"path": pathProperty,
						"data": {Type: "object", Description: "Any JSON value"},
					},
					Required: []string{"path", "data"},
				},
				SafetyLevel: capability.SafetyLevelReversible,
			},
			handle: e.writeJSON,
		},
		{
			def: capability.OperationDefinition{
				Name:        OpWriteCSV,
				Description: "Write a header record followed by row records as CSV",
				Parameters: capability.ParameterSchema{
					Type: "object",
					Properties: map[string]capability.Property{
						"path":    pathProperty,
						"headers": {Type: "array", Description: "Header record", Items: &capability.Property{Type: "string"}},
						"rows":    {Type: "array", Description: "Data records", Items: &rowProperty},
					},
					Required: []string{"path", "headers", "rows"},
				},
				SafetyLevel: capability.SafetyLevelReversible,
			},
			handle: e.writeCSV,
		},
		{
			def: capability.OperationDefinition{
				Name:        OpDelete,
				Description: "Remove a file",
				Parameters:  pathOnlySchema(),
				SafetyLevel: capability.SafetyLevelDestructive,
			},
			handle: e.deleteFile,
		},
		{
			def: capability.OperationDefinition{
				Name:        OpCopy,
				Description: "Copy a file",
				Parameters:  transferSchema(),
				SafetyLevel: capability.SafetyLevelReversible,
			},
			handle: e.copyFile,
		},
		{
			def: capability.OperationDefinition{
				Name:        OpMove,
				Description: "Rename or move a file",
				Parameters:  transferSchema(),
				SafetyLevel: capability.SafetyLevelDestructive,
			},
			handle: e.moveFile,
		},
		{
			def: capability.OperationDefinition{
				Name:        OpList,
				Description: "List the entry names of a directory",
				Parameters:  pathOnlySchema(),
				SafetyLevel: capability.SafetyLevelReadOnly,
			},
			handle: e.listDir,
		},
		{
			def: capability.OperationDefinition{
				Name:        OpCreateDir,
				Description: "Create a directory and any missing parents",
				Parameters:  pathOnlySchema(),
				SafetyLevel: capability.SafetyLevelReversible,
			},
			handle: e.createDir,
		},
		{
			def: capability.OperationDefinition{
				Name:        OpExists,
				Description: "Report whether a path exists",
				Parameters:  pathOnlySchema(),
				SafetyLevel: capability.SafetyLevelReadOnly,
			},
			handle: e.exists,
		},
	}

	table := make(map[string]operation, len(ops))
	for _, op := range ops {
		table[op.def.Name] = op
	}
	return table
}
