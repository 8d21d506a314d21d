package errors

// ErrorCode represents a unique identifier for diagnostic types.
// Codes are organized by category:
//   - E1xxx: Parse errors
//   - W1xxx: Parse warnings
type ErrorCode string

const (
	E1001 ErrorCode = "E1001" // Unexpected token
	E1002 ErrorCode = "E1002" // Illegal character

	W1001 ErrorCode = "W1001" // Statement ignored
	W1002 ErrorCode = "W1002" // Variable redeclared
)

// codeDescriptions maps error codes to their short descriptions.
var codeDescriptions = map[ErrorCode]string{
	E1001: "unexpected token",
	E1002: "illegal character",
	W1001: "statement ignored",
	W1002: "variable redeclared",
}

// Description returns the short description for an error code.
func (c ErrorCode) Description() string {
	if desc, ok := codeDescriptions[c]; ok {
		return desc
	}
	return "unknown error"
}

// String returns the error code as a string.
func (c ErrorCode) String() string {
	return string(c)
}

// Category returns the error category based on the code prefix.
func (c ErrorCode) Category() string {
	if len(c) < 2 {
		return "unknown"
	}
	switch {
	case c[0] == 'E' && c[1] == '1':
		return "parse"
	case c[0] == 'W' && c[1] == '1':
		return "warning"
	default:
		return "unknown"
	}
}
