package domain

// FunctionKind classifies a discovered code entity.
type FunctionKind string

// Known function kinds.
const (
	// KindFunction is a plain function declaration or bound arrow function.
	KindFunction FunctionKind = "function"

	// KindMethod is a class method. The lexical parser never emits it;
	// it is reserved for structural parsers.
	KindMethod FunctionKind = "method"

	// KindComponent is a UI component (a PascalCase function in a JSX/TSX file).
	KindComponent FunctionKind = "component"
)

// CodeFunction is a function-like entity extracted from one file.
type CodeFunction struct {
	// ID is the composite "file:name" identifier.
	ID string `json:"id"`

	// Name is the declared identifier.
	Name string `json:"name"`

	// File is the repository-relative path of the declaring file.
	File string `json:"file"`

	// Line is the 1-based line where the declaration starts (best effort).
	Line int `json:"line"`

	// Kind classifies the entity.
	Kind FunctionKind `json:"type"`

	// Signature is a normalised single-line rendering of the declaration.
	Signature string `json:"signature"`

	// Params lists parameter names in declaration order.
	Params []string `json:"params"`
}

// FunctionID builds the composite identifier for a function in a file.
func FunctionID(file, name string) string {
	return file + ":" + name
}

// FileDependencies lists what a file imports and exports.
type FileDependencies struct {
	// Imports are module specifiers in source order.
	Imports []string `json:"imports"`

	// Exports are exported identifiers in source order.
	Exports []string `json:"exports"`
}
