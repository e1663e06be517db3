package diff

import "github.com/promptops/promptdiff/internal/prompt"

// similarityThreshold is the minimum score (exclusive) for the fuzzy
// alignment pass to treat two elements as one modified element rather
// than a removal plus an addition.
const similarityThreshold = 0.5

// Pair is one aligned element pair. A nil Old means the element was
// added, a nil New means it was removed.
type Pair struct {
	Old *prompt.Element
	New *prompt.Element
}

// Align pairs elements across two template versions. Whitespace
// elements never participate. The first pass takes exact matches
// (same kind, identical content) first-fit in positional order, so
// duplicated elements pair off in order. The second pass matches each
// remaining new element to the unused old element of the same kind with
// the highest similarity strictly above the threshold; ties keep the
// earliest old element. Leftover old elements become removals, leftover
// new elements additions, each group in original order.
func Align(oldElements, newElements []prompt.Element) []Pair {
	oldCands := candidates(oldElements)
	newCands := candidates(newElements)
	oldUsed := make([]bool, len(oldCands))
	newUsed := make([]bool, len(newCands))

	var pairs []Pair

	for ni, newEl := range newCands {
		for oi, oldEl := range oldCands {
			if oldUsed[oi] {
				continue
			}
			if oldEl.Kind == newEl.Kind && oldEl.Content == newEl.Content {
				pairs = append(pairs, Pair{Old: oldEl, New: newEl})
				oldUsed[oi] = true
				newUsed[ni] = true
				break
			}
		}
	}

	for ni, newEl := range newCands {
		if newUsed[ni] {
			continue
		}
		bestIdx := -1
		bestScore := similarityThreshold
		for oi, oldEl := range oldCands {
			if oldUsed[oi] || oldEl.Kind != newEl.Kind {
				continue
			}
			if score := Similarity(oldEl.Content, newEl.Content); score > bestScore {
				bestScore = score
				bestIdx = oi
			}
		}
		if bestIdx >= 0 {
			pairs = append(pairs, Pair{Old: oldCands[bestIdx], New: newEl})
			oldUsed[bestIdx] = true
			newUsed[ni] = true
		}
	}

	for oi, oldEl := range oldCands {
		if !oldUsed[oi] {
			pairs = append(pairs, Pair{Old: oldEl})
		}
	}
	for ni, newEl := range newCands {
		if !newUsed[ni] {
			pairs = append(pairs, Pair{New: newEl})
		}
	}
	return pairs
}

func candidates(elements []prompt.Element) []*prompt.Element {
	out := make([]*prompt.Element, 0, len(elements))
	for i := range elements {
		if elements[i].Kind == prompt.KindWhitespace {
			continue
		}
		out = append(out, &elements[i])
	}
	return out
}
