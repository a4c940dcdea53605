package query

import (
	"sort"
	"strconv"

	"github.com/adam-bouafia/logsim/internal/column"
	"github.com/adam-bouafia/logsim/internal/container"
	"github.com/adam-bouafia/logsim/internal/template"
)

// Result is one matching line: its original position and its rendered
// text.
type Result struct {
	LineIndex int
	Rendered  string
}

// Count returns the container's total line count directly from the
// footer: O(1), no column decode.
func Count(c *container.Container) uint64 {
	return c.Count()
}

// Filter evaluates pred against c and returns the first limit matches in
// input order (all matches if limit <= 0). Evaluating pred decodes only
// the columns pred names, and a template that doesn't carry a field pred
// references is skipped entirely rather than decoded and found empty.
// Rendering a matching line then decodes every column of its template.
func Filter(c *container.Container, pred Predicate, limit int) ([]Result, error) {
	var allLines []int

	for _, t := range c.Templates() {
		matched, applies, err := evalOnTemplate(c, t, pred)
		if err != nil {
			return nil, err
		}
		if !applies || len(matched) == 0 {
			continue
		}
		lineIdx := c.LineIndices(t.ID)
		for _, row := range matched {
			allLines = append(allLines, lineIdx[row])
		}
	}

	sort.Ints(allLines)
	if limit > 0 && len(allLines) > limit {
		allLines = allLines[:limit]
	}

	results := make([]Result, len(allLines))
	for i, li := range allLines {
		rendered, err := RenderLine(c, li)
		if err != nil {
			return nil, err
		}
		results[i] = Result{LineIndex: li, Rendered: rendered}
	}
	return results, nil
}

// evalOnTemplate evaluates pred against one template, returning local row
// indices (0-based within that template's rows, ascending) that match.
// applies is false when pred names a field the template's shape doesn't
// carry at all, meaning the template contributes zero rows without any
// column ever being decoded.
func evalOnTemplate(c *container.Container, t template.Template, pred Predicate) (matched []int, applies bool, err error) {
	switch pred.Kind {
	case SeverityIn:
		return evalSeverity(c, t, pred)
	case IPv4Equals:
		return evalIPv4(c, t, pred)
	case TimestampRange:
		return evalTimestampRange(c, t, pred)
	case Conjunction:
		return evalConjunction(c, t, pred)
	default:
		return nil, false, nil
	}
}

func findSlot(t template.Template, ft template.FieldType) (template.Slot, bool) {
	for _, s := range t.Slots {
		if !s.Literal && s.FieldType == ft {
			return s, true
		}
	}
	return template.Slot{}, false
}

func evalSeverity(c *container.Container, t template.Template, pred Predicate) ([]int, bool, error) {
	slot, ok := findSlot(t, template.Severity)
	if !ok {
		return nil, false, nil
	}
	col, err := c.Column(t.ID, slot)
	if err != nil {
		return nil, false, err
	}
	var matched []int
	for i, s := range col.Strings {
		if _, ok := pred.Severities[normalizeSeverity(s)]; ok {
			matched = append(matched, i)
		}
	}
	return matched, true, nil
}

func evalIPv4(c *container.Container, t template.Template, pred Predicate) ([]int, bool, error) {
	slot, ok := findSlot(t, template.IPv4)
	if !ok {
		return nil, false, nil
	}
	header, err := c.ColumnHeader(t.ID, slot)
	if err != nil {
		return nil, false, err
	}
	if !container.IPv4DictionaryHas(header, pred.IPv4) {
		// Dictionary miss: this template contributes zero rows without
		// ever decoding its id payload.
		return nil, true, nil
	}
	col, err := c.Column(t.ID, slot)
	if err != nil {
		return nil, false, err
	}
	var matched []int
	for i, v := range col.IPv4s {
		if v == pred.IPv4 {
			matched = append(matched, i)
		}
	}
	return matched, true, nil
}

func evalTimestampRange(c *container.Container, t template.Template, pred Predicate) ([]int, bool, error) {
	slot, ok := findSlot(t, template.Timestamp)
	if !ok {
		return nil, false, nil
	}
	col, err := c.Column(t.ID, slot)
	if err != nil {
		return nil, false, err
	}
	var matched []int
	for i, v := range col.Ints {
		if v >= pred.TSLo && v <= pred.TSHi {
			matched = append(matched, i)
		}
	}
	return matched, true, nil
}

func evalConjunction(c *container.Container, t template.Template, pred Predicate) ([]int, bool, error) {
	children := append([]Predicate(nil), pred.Children...)
	sort.SliceStable(children, func(i, j int) bool { return costRank(children[i].Kind) < costRank(children[j].Kind) })

	var current []int
	first := true
	for _, child := range children {
		matched, applies, err := evalOnTemplate(c, t, child)
		if err != nil {
			return nil, false, err
		}
		if !applies {
			return nil, false, nil
		}
		if first {
			current = matched
			first = false
		} else {
			current = intersectSorted(current, matched)
		}
		if len(current) == 0 {
			// Most-selective-first ordering means once the running set is
			// empty, no later conjunct can add rows back: stop decoding.
			return nil, true, nil
		}
	}
	return current, true, nil
}

// intersectSorted intersects two ascending, duplicate-free int slices.
func intersectSorted(a, b []int) []int {
	var out []int
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	return out
}

// RenderLine reconstructs lineIndex's original text by walking its
// template's shape, substituting each variable slot's value at the
// line's row within that template.
func RenderLine(c *container.Container, lineIndex int) (string, error) {
	assignment := c.Assignment()
	if lineIndex < 0 || lineIndex >= len(assignment) {
		return "", nil
	}
	tid := assignment[lineIndex]
	t := c.Template(tid)
	row := rowWithinTemplate(c, tid, lineIndex)

	var out []byte
	for _, slot := range t.Slots {
		if slot.Literal {
			out = append(out, slot.LiteralBytes...)
			continue
		}
		col, err := c.Column(tid, slot)
		if err != nil {
			return "", err
		}
		out = append(out, renderValue(slot, col, row)...)
	}
	return string(out), nil
}

func rowWithinTemplate(c *container.Container, templateID, lineIndex int) int {
	lines := c.LineIndices(templateID)
	return sort.SearchInts(lines, lineIndex)
}

func renderValue(slot template.Slot, col *column.Column, row int) string {
	switch slot.FieldType {
	case template.Timestamp:
		return template.RenderTimestamp(col.Ints[row], slot.TimeLayout)
	case template.Integer:
		return strconv.FormatInt(col.Ints[row], 10)
	case template.IPv4:
		return column.Uint32ToIPv4(col.IPv4s[row])
	default:
		return col.Strings[row]
	}
}
