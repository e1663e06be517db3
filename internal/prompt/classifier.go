package prompt

import (
	"regexp"
	"strings"
)

// rolePatterns recognize conversation role markers as a line prefix or
// in bracket form. The first capture group is the role name.
var rolePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(system|user|assistant|human|ai|bot):\s*`),
	regexp.MustCompile(`(?i)^<(system|user|assistant|human|ai)>`),
	regexp.MustCompile(`(?i)^\[(system|user|assistant|human|ai)\]`),
}

// examplePatterns mark the start of a multi-line example region. They
// are matched against the trimmed, lowercased line.
var examplePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^example\s*\d*:?\s*$`),
	regexp.MustCompile(`^input:\s*$`),
	regexp.MustCompile(`^output:\s*$`),
	regexp.MustCompile(`^expected:\s*$`),
	regexp.MustCompile(`^sample:\s*$`),
}

// instructionPrefixes signal instruction lines: second-person
// directives, negations, labelled directives, enumerators and bullet
// markers. Bare "-" and "*" intentionally match ordinary bullet lists.
var instructionPrefixes = []string{
	"you are", "you must", "you should", "you will", "you can",
	"do not", "don't", "never", "always", "ensure", "make sure",
	"remember", "note:", "important:", "warning:", "caution:",
	"rule:", "constraint:", "requirement:", "instruction:",
	"task:", "goal:", "objective:", "purpose:",
	"format:", "output:", "respond", "reply", "answer",
	"think", "analyze", "consider", "evaluate",
	"step 1", "step 2", "first,", "then,", "finally,", "next,",
	"1.", "2.", "3.", "4.", "5.",
	"-", "*", "•",
}

const codeFence = "```"

// matchRole reports whether the trimmed line is a role marker and, if
// so, the lowercased role name.
func matchRole(trimmed string) (string, bool) {
	for _, re := range rolePatterns {
		if m := re.FindStringSubmatch(trimmed); m != nil {
			return strings.ToLower(m[1]), true
		}
	}
	return "", false
}

// isComment reports whether the trimmed line is a comment.
func isComment(trimmed string) bool {
	return strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "//")
}

// commentContent strips the comment marker and surrounding space.
func commentContent(trimmed string) string {
	return strings.TrimLeft(trimmed, "#/ ")
}

// isExampleMarker reports whether the trimmed line opens an example
// region.
func isExampleMarker(trimmed string) bool {
	lower := strings.ToLower(trimmed)
	for _, re := range examplePatterns {
		if re.MatchString(lower) {
			return true
		}
	}
	return false
}

// isInstruction reports whether the trimmed line begins with one of the
// instruction-signalling prefixes.
func isInstruction(trimmed string) bool {
	lower := strings.ToLower(trimmed)
	for _, prefix := range instructionPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}
