package prompt

import (
	"regexp"
	"sort"
)

// Occurrence is a single variable match inside a span of text.
type Occurrence struct {
	Name   string
	Syntax string
	Start  int
	End    int
}

// variablePattern pairs a compiled pattern with the dialect tag it
// reports. Patterns are tried independently against the whole span, so
// one region of text may match under more than one family. The
// document-level syntax detector relies on counting all candidates.
type variablePattern struct {
	re     *regexp.Regexp
	syntax string
}

var variablePatterns = []variablePattern{
	// Jinja2: {{ variable }} or {{ variable | filter }}
	{regexp.MustCompile(`\{\{\s*([a-zA-Z_][a-zA-Z0-9_]*(?:\s*\|\s*[a-zA-Z_][a-zA-Z0-9_]*)*)\s*\}\}`), "jinja2"},
	// Jinja2 blocks: {% if %}, {% for %}, etc.
	{regexp.MustCompile(`\{%\s*([a-zA-Z_]+(?:\s+[^%]+)?)\s*%\}`), "jinja2_block"},
	// Mustache: {{variable}} or {{{variable}}}
	{regexp.MustCompile(`\{\{\{?\s*([a-zA-Z_][a-zA-Z0-9_.]*)\s*\}\}\}?`), "mustache"},
	// Python f-string style: {variable} or {variable:format}
	{regexp.MustCompile(`\{([a-zA-Z_][a-zA-Z0-9_]*)(?::[^}]*)?\}`), "fstring"},
	// Shell style: ${variable} or $variable
	{regexp.MustCompile(`\$\{([a-zA-Z_][a-zA-Z0-9_]*)\}`), "shell_brace"},
	{regexp.MustCompile(`\$([a-zA-Z_][a-zA-Z0-9_]*)`), "shell"},
	// XML-style: <VARIABLE/> or <VARIABLE>
	{regexp.MustCompile(`<([A-Z_][A-Z0-9_]*)(?:\s*/>|>)`), "xml"},
	// Placeholder style: [VARIABLE] or [[VARIABLE]]
	{regexp.MustCompile(`\[\[?([A-Z_][A-Z0-9_]*)\]?\]`), "placeholder"},
}

// ExtractVariables returns every variable occurrence in text, sorted by
// start offset with ties broken by pattern declaration order.
func ExtractVariables(text string) []Occurrence {
	var found []Occurrence
	for _, p := range variablePatterns {
		for _, m := range p.re.FindAllStringSubmatchIndex(text, -1) {
			found = append(found, Occurrence{
				Name:   text[m[2]:m[3]],
				Syntax: p.syntax,
				Start:  m[0],
				End:    m[1],
			})
		}
	}
	sort.SliceStable(found, func(i, j int) bool { return found[i].Start < found[j].Start })
	return found
}

// SyntaxPlain is reported when no template dialect matches a document.
const SyntaxPlain = "plain"

// syntaxSignature counts signature hits for one dialect. Declaration
// order doubles as the tie-break order for DetectSyntax.
type syntaxSignature struct {
	name string
	re   *regexp.Regexp
}

var syntaxSignatures = []syntaxSignature{
	{"jinja2", regexp.MustCompile(`\{\{.*?\}\}|\{%.*?%\}`)},
	{"mustache", regexp.MustCompile(`\{\{\{?[^{].*?\}\}\}?`)},
	{"fstring", regexp.MustCompile(`\{[a-zA-Z_][a-zA-Z0-9_]*\}`)},
	{"shell", regexp.MustCompile(`\$[{a-zA-Z_]`)},
	{"xml", regexp.MustCompile(`<[A-Z_]+(?:\s*/>|>)`)},
	{"placeholder", regexp.MustCompile(`\[\[?[A-Z_]+\]?\]`)},
}

// DetectSyntax reports the dominant template dialect of a document: the
// dialect whose signature pattern matches most often, first declared
// winning ties. Returns SyntaxPlain when nothing matches.
func DetectSyntax(text string) string {
	best := SyntaxPlain
	bestCount := 0
	for _, sig := range syntaxSignatures {
		n := len(sig.re.FindAllStringIndex(text, -1))
		if n > bestCount {
			best = sig.name
			bestCount = n
		}
	}
	return best
}
