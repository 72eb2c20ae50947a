package ir

// Version constants for the IR schema and compiler.
const (
	// IRVersion is the serialized document schema version.
	IRVersion = "1"

	// CompilerVersion is the Tidewater compiler version.
	CompilerVersion = "0.1.0"
)
