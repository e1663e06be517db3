// Package prompt segments prompt templates into typed semantic elements.
//
// A template is split into maximal runs of lines sharing one semantic
// kind (instructions, examples, role markers, comments, free text) and
// each run is annotated with the template variables it contains. The
// element sequence is the input to the semantic differ in internal/diff.
package prompt

// ElementKind classifies a segment of a prompt template.
type ElementKind string

const (
	KindText        ElementKind = "text"
	KindVariable    ElementKind = "variable" // reserved: inline variables stay metadata
	KindInstruction ElementKind = "instruction"
	KindExample     ElementKind = "example"
	KindRole        ElementKind = "role"
	KindComment     ElementKind = "comment"
	KindWhitespace  ElementKind = "whitespace"
)

// Metadata carries the optional annotations attached to an element.
// Only certain kinds populate certain fields: Syntax is set on every
// element of a document, Role only on role markers, Variables only on
// text, instruction and example elements that contain at least one
// variable occurrence.
type Metadata struct {
	Syntax    string   `json:"syntax,omitempty"`
	Role      string   `json:"role,omitempty"`
	Variables []string `json:"variables,omitempty"`
}

// Element is a contiguous, semantically homogeneous span of a template.
// LineStart and LineEnd are zero-based and inclusive. Content holds the
// normalized text (delimiters stripped for comments and roles), Raw the
// original text including them.
type Element struct {
	Kind      ElementKind `json:"kind"`
	Content   string      `json:"content"`
	LineStart int         `json:"line_start"`
	LineEnd   int         `json:"line_end"`
	Raw       string      `json:"raw"`
	Metadata  Metadata    `json:"metadata"`
}

// AllVariables returns the union of variable names annotated on the
// given elements.
func AllVariables(elements []Element) map[string]struct{} {
	vars := make(map[string]struct{})
	for _, el := range elements {
		for _, name := range el.Metadata.Variables {
			vars[name] = struct{}{}
		}
	}
	return vars
}
