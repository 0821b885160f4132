// Package hgvs describes differences between two sequences as
// HGVS-style variants ("5A>C", "6_7del", "2_3insC", ...).
package hgvs

import (
	"fmt"
	"strings"
	"time"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Variant is a difference between a reference sequence and another
// sequence. Position is 1-based, in reference coordinates.
type Variant struct {
	Position int
	Ref      string
	New      string
	Left     string // base preceding an indel, if Ref or New is empty
}

func (v *Variant) String() string {
	switch {
	case len(v.New) == 0 && len(v.Ref) == 0:
		return fmt.Sprintf("%d=", v.Position)
	case len(v.New) == 0 && len(v.Ref) == 1:
		return fmt.Sprintf("%ddel", v.Position)
	case len(v.New) == 0:
		return fmt.Sprintf("%d_%ddel", v.Position, v.Position+len(v.Ref)-1)
	case len(v.Ref) == 1 && len(v.New) == 1:
		return fmt.Sprintf("%d%s>%s", v.Position, v.Ref, v.New)
	case len(v.Ref) == 0:
		return fmt.Sprintf("%d_%dins%s", v.Position-1, v.Position, v.New)
	case len(v.Ref) == 1:
		return fmt.Sprintf("%ddelins%s", v.Position, v.New)
	default:
		return fmt.Sprintf("%d_%ddelins%s", v.Position, v.Position+len(v.Ref)-1, v.New)
	}
}

// PadLeft returns an equivalent variant that includes the preceding
// base in Ref and New if either would otherwise be empty, as VCF
// requires. For example, {45, "", "A", "T"} becomes {44, "T", "TA"}.
func (v *Variant) PadLeft() Variant {
	if len(v.Ref) > 0 && len(v.New) > 0 {
		return *v
	}
	return Variant{
		Position: v.Position - len(v.Left),
		Ref:      v.Left + v.Ref,
		New:      v.Left + v.New,
	}
}

// Diff returns the variants that transform a into b. If timeout is
// positive and the diff takes longer than that, the result is a
// valid but possibly non-minimal set of variants, and timedOut is
// true.
func Diff(a, b string, timeout time.Duration) (variants []Variant, timedOut bool) {
	dmp := diffmatchpatch.New()
	var deadline time.Time
	if timeout > 0 {
		deadline = time.Now().Add(timeout)
	}
	diffs := dmp.DiffBisect(a, b, deadline)
	if timeout > 0 && time.Now().After(deadline) {
		timedOut = true
	}
	diffs = cleanup(dmp.DiffCleanupEfficiency(diffs))
	pos := 1
	for i := 0; i < len(diffs); {
		left := ""
		for ; i < len(diffs) && diffs[i].Type == diffmatchpatch.DiffEqual; i++ {
			pos += len(diffs[i].Text)
			if n := len(diffs[i].Text); n > 0 {
				left = diffs[i].Text[n-1:]
			}
		}
		if i == len(diffs) {
			break
		}
		v := Variant{Position: pos, Left: left}
		for ; i < len(diffs) && diffs[i].Type != diffmatchpatch.DiffEqual; i++ {
			if diffs[i].Type == diffmatchpatch.DiffDelete {
				v.Ref += diffs[i].Text
			} else {
				v.New += diffs[i].Text
			}
		}
		pos += len(v.Ref)
		variants = append(variants, v)
	}
	return
}

// cleanup merges adjacent diffs of the same type, and respells
// [del, =X, insYX] as [del, insXY, =X] so the edit is reported as one
// delins instead of a del and an ins.
func cleanup(in []diffmatchpatch.Diff) []diffmatchpatch.Diff {
	merged := make([]diffmatchpatch.Diff, 0, len(in))
	for _, d := range in {
		if n := len(merged); n > 0 && merged[n-1].Type == d.Type {
			merged[n-1].Text += d.Text
		} else {
			merged = append(merged, d)
		}
	}
	for i := 0; i+2 < len(merged); i++ {
		del, eq, ins := merged[i], merged[i+1], merged[i+2]
		if del.Type == diffmatchpatch.DiffDelete &&
			eq.Type == diffmatchpatch.DiffEqual &&
			ins.Type == diffmatchpatch.DiffInsert &&
			strings.HasSuffix(ins.Text, eq.Text) {
			ins.Text = eq.Text + ins.Text[:len(ins.Text)-len(eq.Text)]
			merged[i+1], merged[i+2] = ins, eq
		}
	}
	return merged
}
