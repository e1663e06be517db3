// Package diff compares two segmented prompt templates. Elements are
// aligned across versions (exact matches first, then best similarity
// above a threshold) and every pair is classified as added, removed,
// modified or unchanged. The package also provides conventional
// unified and side-by-side line diffs that bypass the semantic model.
package diff

import "sort"

// Match is one block of identical entries between two sequences.
type Match struct {
	A    int
	B    int
	Size int
}

// OpCode describes how a[I1:I2] relates to b[J1:J2]. Tags follow the
// classic sequence-matcher vocabulary: 'e' equal, 'r' replace,
// 'd' delete, 'i' insert.
type OpCode struct {
	Tag byte
	I1  int
	I2  int
	J1  int
	J2  int
}

// matcher finds the longest non-overlapping matching blocks between two
// string sequences, longest first, recursively extended to both sides.
type matcher struct {
	a   []string
	b   []string
	b2j map[string][]int
}

func newMatcher(a, b []string) *matcher {
	m := &matcher{a: a, b: b, b2j: make(map[string][]int, len(b))}
	for j, s := range b {
		m.b2j[s] = append(m.b2j[s], j)
	}
	return m
}

func (m *matcher) findLongestMatch(alo, ahi, blo, bhi int) Match {
	best := Match{A: alo, B: blo}
	j2len := map[int]int{}
	for i := alo; i < ahi; i++ {
		newJ2len := map[int]int{}
		for _, j := range m.b2j[m.a[i]] {
			if j < blo {
				continue
			}
			if j >= bhi {
				break
			}
			k := j2len[j-1] + 1
			newJ2len[j] = k
			if k > best.Size {
				best = Match{A: i - k + 1, B: j - k + 1, Size: k}
			}
		}
		j2len = newJ2len
	}
	return best
}

// matchingBlocks returns all matching blocks in ascending order plus a
// zero-size sentinel at the end of both sequences.
func (m *matcher) matchingBlocks() []Match {
	type span struct{ alo, ahi, blo, bhi int }
	queue := []span{{0, len(m.a), 0, len(m.b)}}
	var matched []Match
	for len(queue) > 0 {
		s := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		match := m.findLongestMatch(s.alo, s.ahi, s.blo, s.bhi)
		if match.Size == 0 {
			continue
		}
		matched = append(matched, match)
		if s.alo < match.A && s.blo < match.B {
			queue = append(queue, span{s.alo, match.A, s.blo, match.B})
		}
		if match.A+match.Size < s.ahi && match.B+match.Size < s.bhi {
			queue = append(queue, span{match.A + match.Size, s.ahi, match.B + match.Size, s.bhi})
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].A != matched[j].A {
			return matched[i].A < matched[j].A
		}
		return matched[i].B < matched[j].B
	})

	// Merge adjacent blocks before appending the sentinel.
	var blocks []Match
	for _, match := range matched {
		if n := len(blocks); n > 0 {
			last := &blocks[n-1]
			if last.A+last.Size == match.A && last.B+last.Size == match.B {
				last.Size += match.Size
				continue
			}
		}
		blocks = append(blocks, match)
	}
	return append(blocks, Match{A: len(m.a), B: len(m.b)})
}

// opcodes turns the matching blocks into a full edit script covering
// both sequences end to end.
func (m *matcher) opcodes() []OpCode {
	var ops []OpCode
	i, j := 0, 0
	for _, block := range m.matchingBlocks() {
		var tag byte
		switch {
		case i < block.A && j < block.B:
			tag = 'r'
		case i < block.A:
			tag = 'd'
		case j < block.B:
			tag = 'i'
		}
		if tag != 0 {
			ops = append(ops, OpCode{tag, i, block.A, j, block.B})
		}
		i, j = block.A+block.Size, block.B+block.Size
		if block.Size > 0 {
			ops = append(ops, OpCode{'e', block.A, i, block.B, j})
		}
	}
	return ops
}

// groupedOpCodes splits the edit script into hunks with up to n lines
// of surrounding equal context, for unified diff output.
func (m *matcher) groupedOpCodes(n int) [][]OpCode {
	codes := m.opcodes()
	if len(codes) == 0 {
		return nil
	}
	if c := codes[0]; c.Tag == 'e' {
		codes[0] = OpCode{c.Tag, maxInt(c.I1, c.I2-n), c.I2, maxInt(c.J1, c.J2-n), c.J2}
	}
	if c := codes[len(codes)-1]; c.Tag == 'e' {
		codes[len(codes)-1] = OpCode{c.Tag, c.I1, minInt(c.I2, c.I1+n), c.J1, minInt(c.J2, c.J1+n)}
	}

	var groups [][]OpCode
	var group []OpCode
	for _, c := range codes {
		if c.Tag == 'e' && c.I2-c.I1 > 2*n {
			group = append(group, OpCode{c.Tag, c.I1, minInt(c.I2, c.I1+n), c.J1, minInt(c.J2, c.J1+n)})
			groups = append(groups, group)
			group = nil
			c = OpCode{c.Tag, maxInt(c.I1, c.I2-n), c.I2, maxInt(c.J1, c.J2-n), c.J2}
		}
		group = append(group, c)
	}
	if len(group) > 0 && !(len(group) == 1 && group[0].Tag == 'e') {
		groups = append(groups, group)
	}
	return groups
}

// ratio is twice the number of matched entries divided by the total
// number of entries in both sequences.
func (m *matcher) ratio() float64 {
	matched := 0
	for _, block := range m.matchingBlocks() {
		matched += block.Size
	}
	total := len(m.a) + len(m.b)
	if total == 0 {
		return 1.0
	}
	return 2.0 * float64(matched) / float64(total)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
