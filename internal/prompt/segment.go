package prompt

import "strings"

// segmenter accumulates runs of same-kind lines while walking a
// template top to bottom. Exactly one run is open at a time; openers
// (code fences, example markers) and single-line elements (roles,
// comments) flush it before starting their own.
type segmenter struct {
	syntax   string
	elements []Element

	buf      []string
	bufKind  ElementKind
	bufStart int

	inCode    bool
	inExample bool
}

// Segment parses a prompt template into its ordered semantic elements.
// It is total over UTF-8 text: malformed input degrades to a plausible
// classification (an unterminated code fence classifies the rest of the
// document as one example). Empty input yields no elements.
func Segment(text string) []Element {
	if text == "" {
		return nil
	}

	s := &segmenter{syntax: DetectSyntax(text)}
	for i, line := range strings.Split(text, "\n") {
		s.line(i, line)
	}
	s.flush()

	annotateVariables(s.elements)
	return s.elements
}

func (s *segmenter) line(i int, line string) {
	trimmed := strings.TrimSpace(line)

	// Code fences toggle unconditionally and swallow everything in
	// between as a single example element.
	if strings.HasPrefix(trimmed, codeFence) {
		if !s.inCode {
			s.flush()
			s.inCode = true
			s.open(KindExample, i, line)
		} else {
			s.buf = append(s.buf, line)
			s.flush()
			s.inCode = false
		}
		return
	}
	if s.inCode {
		s.buf = append(s.buf, line)
		return
	}

	if role, ok := matchRole(trimmed); ok {
		s.flush()
		s.emit(Element{
			Kind:      KindRole,
			Content:   role,
			LineStart: i,
			LineEnd:   i,
			Raw:       line,
			Metadata:  Metadata{Syntax: s.syntax, Role: role},
		})
		return
	}

	if isComment(trimmed) {
		s.flush()
		s.emit(Element{
			Kind:      KindComment,
			Content:   commentContent(trimmed),
			LineStart: i,
			LineEnd:   i,
			Raw:       line,
			Metadata:  Metadata{Syntax: s.syntax},
		})
		return
	}

	if isExampleMarker(trimmed) {
		s.flush()
		s.inExample = true
		s.open(KindExample, i, line)
		return
	}

	if isInstruction(trimmed) && !s.inExample {
		if len(s.buf) == 0 || s.bufKind != KindInstruction {
			s.flush()
			s.bufKind = KindInstruction
			s.bufStart = i
		}
		s.buf = append(s.buf, line)
		return
	}

	// A blank line ends any open run. It is emitted as a whitespace
	// element unless it leads the document.
	if trimmed == "" {
		s.flush()
		if len(s.elements) > 0 {
			s.emit(Element{
				Kind:      KindWhitespace,
				LineStart: i,
				LineEnd:   i,
				Raw:       line,
				Metadata:  Metadata{Syntax: s.syntax},
			})
		}
		s.inExample = false
		return
	}

	// Default: continue an open text run or example body, otherwise
	// close whatever is open and start a text run.
	if len(s.buf) > 0 && (s.bufKind == KindText || s.bufKind == KindExample) {
		s.buf = append(s.buf, line)
		return
	}
	s.flush()
	s.open(KindText, i, line)
}

func (s *segmenter) open(kind ElementKind, start int, line string) {
	s.bufKind = kind
	s.bufStart = start
	s.buf = append(s.buf, line)
}

// flush emits the open accumulation as one element. Safe to call with
// an empty buffer.
func (s *segmenter) flush() {
	if len(s.buf) == 0 {
		return
	}
	content := strings.Join(s.buf, "\n")
	s.emit(Element{
		Kind:      s.bufKind,
		Content:   content,
		LineStart: s.bufStart,
		LineEnd:   s.bufStart + len(s.buf) - 1,
		Raw:       content,
		Metadata:  Metadata{Syntax: s.syntax},
	})
	s.buf = nil
	s.bufKind = ""
}

func (s *segmenter) emit(el Element) {
	s.elements = append(s.elements, el)
}

// annotateVariables records the variables found in text, instruction
// and example elements, in first-occurrence order. One region of text
// can match under several pattern families, so names are deduplicated.
// Role, comment and whitespace elements are never annotated.
func annotateVariables(elements []Element) {
	for i := range elements {
		switch elements[i].Kind {
		case KindText, KindInstruction, KindExample:
		default:
			continue
		}
		occurrences := ExtractVariables(elements[i].Content)
		if len(occurrences) == 0 {
			continue
		}
		seen := make(map[string]struct{}, len(occurrences))
		var names []string
		for _, occ := range occurrences {
			if _, ok := seen[occ.Name]; ok {
				continue
			}
			seen[occ.Name] = struct{}{}
			names = append(names, occ.Name)
		}
		elements[i].Metadata.Variables = names
	}
}
