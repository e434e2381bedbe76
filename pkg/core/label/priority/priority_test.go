package priority

import (
	"math"
	"slices"
	"testing"

	"github.com/matzehuels/labeler/pkg/core/label"
	"github.com/matzehuels/labeler/pkg/textmeasure"
)

func cand(group string, kind label.Kind, size float64) label.Candidate {
	return label.Candidate{ID: group, GroupKey: group, Kind: kind, Font: textmeasure.Font{Size: size}}
}

func TestDefaultScore(t *testing.T) {
	ix := label.Interaction{Hovered: []string{"hov"}, Focused: []string{"foc", "hov"}}
	s := NewDefault()

	tests := []struct {
		name string
		c    label.Candidate
		want float64
	}{
		{"idle mid", cand("x", label.KindMid, 12), 12},
		{"idle end", cand("x", label.KindEnd, 12), 112},
		{"focused start", cand("foc", label.KindStart, 10), 1010},
		{"hovered and focused end", cand("hov", label.KindEnd, 14), 11114},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Score(tt.c, ix); got != tt.want {
				t.Errorf("Score() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDefaultZeroValue(t *testing.T) {
	ix := label.Interaction{Hovered: []string{"a"}}
	if got := (Default{}).Score(cand("a", label.KindEnd, 9), ix); got != 9 {
		t.Errorf("zero Default should score by font size, got %v", got)
	}
}

func TestHoverOutranksAnyFontSize(t *testing.T) {
	ix := label.Interaction{Hovered: []string{"small"}}
	s := NewDefault()
	small := s.Score(cand("small", label.KindMid, 8), ix)
	big := s.Score(cand("big", label.KindEnd, 72), ix)
	if small <= big {
		t.Errorf("hovered label should outrank idle label: %v <= %v", small, big)
	}
}

func TestTickScore(t *testing.T) {
	s := NewTick()
	boundary := label.Candidate{Kind: label.KindTick, Boundary: true, Value: 0.5, Font: textmeasure.Font{Size: 10}}
	whole := label.Candidate{Kind: label.KindTick, Value: 3, Font: textmeasure.Font{Size: 10}}
	interior := label.Candidate{Kind: label.KindTick, Value: 2.5, Font: textmeasure.Font{Size: 10}}
	nan := label.Candidate{Kind: label.KindTick, Value: math.NaN(), Font: textmeasure.Font{Size: 10}}

	b, w, i := s.Score(boundary, label.Interaction{}), s.Score(whole, label.Interaction{}), s.Score(interior, label.Interaction{})
	if !(b > w && w > i) {
		t.Errorf("want boundary > whole > interior, got %v, %v, %v", b, w, i)
	}
	if got := s.Score(nan, label.Interaction{}); got != 10 {
		t.Errorf("NaN tick value should not be treated as whole, got %v", got)
	}
}

func TestApply(t *testing.T) {
	in := []label.Candidate{cand("a", label.KindEnd, 10), cand("b", label.KindMid, 12)}
	out := Apply(in, NewDefault(), label.Interaction{})

	if out[0].Priority != 110 || out[1].Priority != 12 {
		t.Errorf("Apply priorities = %v, %v", out[0].Priority, out[1].Priority)
	}
	if in[0].Priority != 0 {
		t.Error("Apply should not mutate its input")
	}
}

func TestApplyDeterministic(t *testing.T) {
	in := []label.Candidate{cand("a", label.KindEnd, 10), cand("b", label.KindMid, 12)}
	ix := label.Interaction{Focused: []string{"b"}}
	a := Apply(in, NewDefault(), ix)
	b := Apply(in, NewDefault(), ix)
	for i := range a {
		if a[i].Priority != b[i].Priority {
			t.Errorf("candidate %d scored differently across runs", i)
		}
	}
}

func TestOrder(t *testing.T) {
	cands := []label.Candidate{
		{ID: "b", Priority: 10},
		{ID: "c", Priority: 30},
		{ID: "a", Priority: 10},
	}
	if got, want := Order(cands), []int{1, 2, 0}; !slices.Equal(got, want) {
		t.Errorf("Order() = %v, want %v", got, want)
	}
}
