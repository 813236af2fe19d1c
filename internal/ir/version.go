package ir

// Version constants for the compiled declaration schema.
const (
	// IRVersion is the EnumSpec schema version.
	IRVersion = "1"

	// ToolVersion is the caseset version.
	ToolVersion = "0.1.0"
)
