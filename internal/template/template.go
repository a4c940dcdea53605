// Package template implements the template extractor: it recovers a
// small set of templates such that every input line matches exactly
// one, minimizing the number of distinct templates subject to a
// minimum-support constraint.
//
// The tree-shaped, generalize-on-conflict matching at the core of this
// algorithm (shape bucketing down to a leaf, then widening disagreeing
// positions to a wildcard) is grounded on the Drain-style miner in
// autotemplate-miner.go from the retrieved pack (fiddeb/otlp_cardinality_checker):
// that implementation routes tokens through length/first-token buckets to
// a leaf cluster and widens disagreeing positions to "<*>"; this package
// performs the equivalent widening but to a labeled field type (MESSAGE)
// rather than an untyped wildcard, since every variable slot must carry
// a field type for the codec layer.
package template

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/adam-bouafia/logsim/internal/classify"
)

// Slot is one position in a Template's shape: either a literal slot (an
// exact byte string) or a variable slot (a field type plus the column
// index it occupies).
type Slot struct {
	Literal      bool
	LiteralBytes []byte
	FieldType    FieldType
	ColumnIndex  int
	// TimeLayout records the recognized textual layout for a Timestamp
	// slot, if any, so the query executor can render the original
	// textual form instead of a bare epoch value.
	TimeLayout string
}

// Template is (template_id, shape): an ordered sequence of slots shared
// by every line assigned to it. Replaying a line through its template's
// slots, substituting each variable slot's column value in row order,
// reproduces the original line byte-exact.
type Template struct {
	ID          int
	Slots       []Slot
	NumVariable int
}

// Config holds the extractor's tunable thresholds: min_support, the
// absorption agreement threshold, and the template-count ceiling that
// trips TemplateBudgetExceeded.
type Config struct {
	MinSupport           int
	AbsorptionThreshold   float64
	TemplateCeiling       int
}

// DefaultConfig returns the baseline tuning: min_support 3, absorption
// agreement threshold 0.8, template ceiling 10000.
func DefaultConfig() Config {
	return Config{MinSupport: 3, AbsorptionThreshold: 0.8, TemplateCeiling: 10000}
}

// ErrTemplateBudgetExceeded is raised when the number of distinct
// templates needed to cover the input would exceed cfg.TemplateCeiling.
type ErrTemplateBudgetExceeded struct {
	Ceiling int
}

func (e *ErrTemplateBudgetExceeded) Error() string {
	return fmt.Sprintf("template: budget exceeded (ceiling=%d); retry with a higher min_support", e.Ceiling)
}

// draft is a Template under construction: slots may still be literal
// where the final Template will have widened them to MESSAGE during
// absorption.
type draft struct {
	slots []Slot
	lines []int // indices into the caller's line slice, in arrival order
}

// Extract recovers templates and a per-line template assignment for
// lines via a five-step algorithm: shape bucketing, support filtering,
// alignment merge, greedy absorption, and canonicalization. The returned
// assignment slice has len(assignment) == len(lines), and template ids
// are dense in [0, len(templates)) and assigned in order of first
// appearance.
func Extract(lines []string, cfg Config, log logrus.FieldLogger) (templates []Template, assignment []int, err error) {
	if log == nil {
		log = logrus.StandardLogger()
	}

	spansByLine := make([][]classify.Span, len(lines))
	for i, line := range lines {
		spansByLine[i] = classify.Classify(line)
	}

	// Step 1: shape bucketing.
	groups := make(map[string][]int)
	var groupOrder []string
	for i, spans := range spansByLine {
		key := shapeKey(spans)
		if _, seen := groups[key]; !seen {
			groupOrder = append(groupOrder, key)
		}
		groups[key] = append(groups[key], i)
	}

	// Step 2: support filter. Groups meeting min_support become drafts
	// directly; everything else re-enters the unmatched pool in original
	// line order.
	var drafts []*draft
	unmatchedSet := make(map[int]bool)
	for _, key := range groupOrder {
		idxs := groups[key]
		if len(idxs) < cfg.MinSupport {
			for _, i := range idxs {
				unmatchedSet[i] = true
			}
			continue
		}
		drafts = append(drafts, buildDraft(spansByLine, idxs))
		if err := checkBudget(len(drafts), cfg); err != nil {
			return nil, nil, err
		}
	}

	var unmatched []int
	for i := range lines {
		if unmatchedSet[i] {
			unmatched = append(unmatched, i)
		}
	}

	// Steps 3-4: alignment merge happened inside buildDraft for groups
	// above support; now greedily absorb the remainder, or emit a
	// singleton.
	for _, i := range unmatched {
		spans := spansByLine[i]
		best, bestScore := bestDraftFor(drafts, spans)
		if best != nil && bestScore >= cfg.AbsorptionThreshold {
			absorb(best, spans, i)
			log.WithFields(logrus.Fields{"line": i, "template_slots": len(best.slots)}).Debug("template: absorbed line")
			continue
		}
		drafts = append(drafts, buildDraft(spansByLine, []int{i}))
		if err := checkBudget(len(drafts), cfg); err != nil {
			return nil, nil, err
		}
	}

	// Step 5: canonicalization. Renumber by order of first appearance
	// across the original line order, not processing order.
	return canonicalize(drafts, len(lines))
}

func checkBudget(count int, cfg Config) error {
	if cfg.TemplateCeiling > 0 && count > cfg.TemplateCeiling {
		return &ErrTemplateBudgetExceeded{Ceiling: cfg.TemplateCeiling}
	}
	return nil
}

// shapeKey computes the per-line shape signature used for step 1's
// bucketing: the sequence of labels, with LITERAL/WHITESPACE replaced by
// their exact bytes so that only lines with byte-identical constant text
// and matching variable-field types land in the same bucket.
func shapeKey(spans []classify.Span) string {
	var b []byte
	for _, s := range spans {
		switch s.Label {
		case classify.Literal, classify.WhitespaceLabel:
			b = append(b, 'L', ':')
			b = append(b, s.Text...)
		default:
			b = append(b, 'V', ':')
			b = append(b, s.Label.String()...)
		}
		b = append(b, 0)
	}
	return string(b)
}

// buildDraft performs step 3 (alignment merge) for a single
// already-grouped set of same-shape lines: every line agrees by
// construction (shapeKey matched), so this simply materializes slots.
func buildDraft(spansByLine [][]classify.Span, idxs []int) *draft {
	spans := spansByLine[idxs[0]]
	slots := make([]Slot, len(spans))
	for i, s := range spans {
		switch s.Label {
		case classify.Literal, classify.WhitespaceLabel:
			slots[i] = Slot{Literal: true, LiteralBytes: []byte(s.Text)}
		default:
			ft := fromLabel(s.Label)
			slot := Slot{Literal: false, FieldType: ft}
			if ft == Timestamp {
				slot.TimeLayout = recognizeLayout(s.Text)
			}
			slots[i] = slot
		}
	}
	return &draft{slots: slots, lines: append([]int(nil), idxs...)}
}

// bestDraftFor implements step 4's search: find the draft with the
// highest position-wise agreement against spans.
func bestDraftFor(drafts []*draft, spans []classify.Span) (*draft, float64) {
	var best *draft
	bestScore := -1.0
	for _, d := range drafts {
		score := agreement(d.slots, spans)
		if score > bestScore {
			bestScore = score
			best = d
		}
	}
	return best, bestScore
}

// agreement scores position-wise compatibility between an existing
// draft's slots and a candidate line's spans, as a fraction of
// len(d.slots) positions that match (literal text equal, or variable
// slot field type equal, or the slot is already MESSAGE which accepts
// anything).
func agreement(slots []Slot, spans []classify.Span) float64 {
	if len(slots) == 0 {
		return 0
	}
	n := len(slots)
	if len(spans) < n {
		n = len(spans)
	}
	matched := 0
	for i := 0; i < n; i++ {
		slot := slots[i]
		span := spans[i]
		switch {
		case slot.FieldType == Message && !slot.Literal:
			matched++
		case slot.Literal && (span.Label == classify.Literal || span.Label == classify.WhitespaceLabel) && span.Text == string(slot.LiteralBytes):
			matched++
		case !slot.Literal && fromLabel(span.Label) == slot.FieldType:
			matched++
		}
	}
	return float64(matched) / float64(len(slots))
}

// absorb widens a draft's disagreeing positions to MESSAGE and appends
// the absorbed line. Any spans beyond the draft's current length are
// folded into a trailing MESSAGE slot, generalizing the positional
// widening rule to lines longer than the template they're being
// absorbed into. A line shorter than the draft collapses the draft's
// slots from the line's last position onward into one trailing MESSAGE
// slot.
func absorb(d *draft, spans []classify.Span, lineIdx int) {
	n := len(d.slots)
	if len(spans) < n {
		n = len(spans)
	}
	for i := 0; i < n; i++ {
		slot := d.slots[i]
		span := spans[i]
		agrees := (slot.FieldType == Message && !slot.Literal) ||
			(slot.Literal && (span.Label == classify.Literal || span.Label == classify.WhitespaceLabel) && span.Text == string(slot.LiteralBytes)) ||
			(!slot.Literal && fromLabel(span.Label) == slot.FieldType)
		if !agrees {
			d.slots[i] = Slot{Literal: false, FieldType: Message}
		}
	}
	if n > 0 && len(spans) < len(d.slots) {
		// The column builder fills a trailing MESSAGE slot from its span's
		// offset to the end of each line, so every line keeps its own tail.
		d.slots = append(d.slots[:n-1], Slot{Literal: false, FieldType: Message})
	}
	if len(spans) > len(d.slots) {
		if len(d.slots) > 0 && !d.slots[len(d.slots)-1].Literal && d.slots[len(d.slots)-1].FieldType == Message {
			// tail already widened to MESSAGE; nothing further to do,
			// the extra spans are simply part of that same slot's
			// source text and are handled by the column builder
			// re-deriving the MESSAGE value from the full line.
		} else {
			d.slots = append(d.slots, Slot{Literal: false, FieldType: Message})
		}
	}
	d.lines = append(d.lines, lineIdx)
}

// canonicalize implements step 5: assign dense template ids in order of
// first appearance across the original line order, finalize column
// indices for variable slots, and produce the per-line assignment.
func canonicalize(drafts []*draft, numLines int) ([]Template, []int, error) {
	lineToDraft := make([]int, numLines)
	for i := range lineToDraft {
		lineToDraft[i] = -1
	}
	for di, d := range drafts {
		for _, li := range d.lines {
			lineToDraft[li] = di
		}
	}

	firstAppearance := make([]int, len(drafts))
	for i := range firstAppearance {
		firstAppearance[i] = -1
	}
	order := make([]int, 0, len(drafts))
	for li := 0; li < numLines; li++ {
		di := lineToDraft[li]
		if di < 0 {
			return nil, nil, fmt.Errorf("template: line %d was not assigned to any template (internal invariant violated)", li)
		}
		if firstAppearance[di] == -1 {
			firstAppearance[di] = li
			order = append(order, di)
		}
	}
	sort.SliceStable(order, func(a, b int) bool { return firstAppearance[order[a]] < firstAppearance[order[b]] })

	draftToID := make(map[int]int, len(order))
	templates := make([]Template, len(order))
	for newID, di := range order {
		draftToID[di] = newID
		templates[newID] = finalizeTemplate(newID, drafts[di])
	}

	assignment := make([]int, numLines)
	for li := 0; li < numLines; li++ {
		assignment[li] = draftToID[lineToDraft[li]]
	}
	return templates, assignment, nil
}

// finalizeTemplate assigns left-to-right column indices to a draft's
// variable slots: a template enumerates its variable slots in
// left-to-right order, and this ordinal becomes the column id.
func finalizeTemplate(id int, d *draft) Template {
	slots := append([]Slot(nil), d.slots...)
	col := 0
	for i := range slots {
		if !slots[i].Literal {
			slots[i].ColumnIndex = col
			col++
		}
	}
	return Template{ID: id, Slots: slots, NumVariable: col}
}
