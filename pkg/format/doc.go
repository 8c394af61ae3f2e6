// Package format provides GROQ query formatting.
//
// Expressions are lowered to a small layout-doc language (text, groups,
// indentation, line breaks) which a width-aware renderer resolves into the
// final string. A group prints on one line when it fits the remaining width
// and breaks at its line positions otherwise.
package format

import "strings"

// doc is a layout instruction tree.
type doc interface {
	docNode()
}

// text is literal output.
type text string

func (text) docNode() {}

// concat renders children in sequence.
type concat []doc

func (concat) docNode() {}

// group renders flat if its flat form fits the remaining width, broken
// otherwise.
type group struct {
	d doc
}

func (group) docNode() {}

// indent raises the indentation level for line breaks inside it.
type indent struct {
	d doc
}

func (indent) docNode() {}

// line renders as its flat text in flat mode and as a newline plus
// indentation in break mode. line{" "} is a soft space, line{""} a soft break.
type line struct {
	flat string
}

func (line) docNode() {}

// hardLine always renders as a newline; a group containing one never fits flat.
type hardLine struct{}

func (hardLine) docNode() {}

func cat(docs ...doc) doc { return concat(docs) }

// join interleaves sep between docs.
func join(sep doc, docs []doc) doc {
	out := make(concat, 0, len(docs)*2)
	for i, d := range docs {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, d)
	}
	return out
}

// renderMode distinguishes flat from broken group rendering.
type renderMode int

const (
	modeFlat renderMode = iota
	modeBreak
)

// renderItem is one work-stack entry.
type renderItem struct {
	d     doc
	depth int
	mode  renderMode
}

// render resolves a doc to text for the given maximum width and indent size.
func render(d doc, width, indentSize int) string {
	var sb strings.Builder
	col := 0

	stack := []renderItem{{d: d, depth: 0, mode: modeBreak}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch n := it.d.(type) {
		case text:
			sb.WriteString(string(n))
			col += len(n)
		case concat:
			for i := len(n) - 1; i >= 0; i-- {
				stack = append(stack, renderItem{d: n[i], depth: it.depth, mode: it.mode})
			}
		case indent:
			stack = append(stack, renderItem{d: n.d, depth: it.depth + 1, mode: it.mode})
		case group:
			mode := modeBreak
			if fits(n.d, width-col, stack) {
				mode = modeFlat
			}
			stack = append(stack, renderItem{d: n.d, depth: it.depth, mode: mode})
		case line:
			if it.mode == modeFlat {
				sb.WriteString(n.flat)
				col += len(n.flat)
			} else {
				col = newline(&sb, it.depth*indentSize)
			}
		case hardLine:
			col = newline(&sb, it.depth*indentSize)
		}
	}

	return sb.String()
}

func newline(sb *strings.Builder, pad int) int {
	sb.WriteByte('\n')
	for i := 0; i < pad; i++ {
		sb.WriteByte(' ')
	}
	return pad
}

// fits reports whether d plus the already-pending flat tail renders within
// the remaining width without a forced break.
func fits(d doc, remaining int, rest []renderItem) bool {
	if remaining < 0 {
		return false
	}

	// Measure d followed by the pending tail up to the next break point.
	work := make([]renderItem, len(rest), len(rest)+1)
	copy(work, rest)
	work = append(work, renderItem{d: d, mode: modeFlat})

	for len(work) > 0 && remaining >= 0 {
		it := work[len(work)-1]
		work = work[:len(work)-1]

		switch n := it.d.(type) {
		case text:
			remaining -= len(n)
		case concat:
			for i := len(n) - 1; i >= 0; i-- {
				work = append(work, renderItem{d: n[i], mode: it.mode})
			}
		case indent:
			work = append(work, renderItem{d: n.d, mode: it.mode})
		case group:
			// Nested groups are measured flat; if they end up breaking
			// they only free up width.
			work = append(work, renderItem{d: n.d, mode: modeFlat})
		case line:
			if it.mode == modeFlat {
				remaining -= len(n.flat)
			} else {
				// An enclosing break ends the line here; everything fits.
				return remaining >= 0
			}
		case hardLine:
			if it.mode == modeFlat {
				return false
			}
			return remaining >= 0
		}
	}

	return remaining >= 0
}
