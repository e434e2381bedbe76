package collide

import (
	"math"
	"math/rand"
	"strconv"
	"testing"

	"github.com/matzehuels/labeler/pkg/core/geom"
	"github.com/matzehuels/labeler/pkg/core/label"
	"github.com/matzehuels/labeler/pkg/core/label/priority"
)

func box(x, y, w, h float64) geom.Box { return geom.Box{X: x, Y: y, W: w, H: h} }

func TestSuppressHigherPriorityWins(t *testing.T) {
	cands := []label.Candidate{
		{ID: "B", Priority: 50, Bounds: box(40, 0, 50, 12)},
		{ID: "A", Priority: 100, Bounds: box(0, 0, 50, 12)},
	}

	got := Suppress(cands, FixedPad(StrictPad))

	if got[1].Hidden {
		t.Error("A should stay visible")
	}
	if !got[0].Hidden {
		t.Error("B should be hidden")
	}
	if cands[0].Hidden {
		t.Error("Suppress should not mutate its input")
	}
}

func TestSuppressPaddingModes(t *testing.T) {
	// The boxes overlap by 4px horizontally.
	a := label.Candidate{ID: "a", GroupKey: "a", Priority: 100, Kind: label.KindEnd, Bounds: box(0, 0, 50, 12)}
	b := label.Candidate{ID: "b", GroupKey: "b", Priority: 50, Kind: label.KindEnd, Bounds: box(46, 2, 50, 12)}

	tests := []struct {
		name       string
		ix         label.Interaction
		kindB      label.Kind
		wantHidden bool
	}{
		{"both idle end labels are loose", label.Interaction{}, label.KindEnd, false},
		{"both hovered end labels are loose", label.Interaction{Hovered: []string{"a", "b"}}, label.KindEnd, false},
		{"mixed classes are strict", label.Interaction{Hovered: []string{"a"}}, label.KindEnd, true},
		{"mid labels are strict", label.Interaction{}, label.KindMid, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo := b
			lo.Kind = tt.kindB
			got := Suppress([]label.Candidate{a, lo}, HighlightPad(tt.ix, LoosePad, StrictPad))
			if got[0].Hidden {
				t.Error("higher-priority label should never be hidden")
			}
			if got[1].Hidden != tt.wantHidden {
				t.Errorf("lower label hidden = %v, want %v", got[1].Hidden, tt.wantHidden)
			}
		})
	}
}

func TestSuppressStrictHidesNearMiss(t *testing.T) {
	cands := []label.Candidate{
		{ID: "a", Priority: 2, Bounds: box(0, 0, 40, 12)},
		{ID: "b", Priority: 1, Bounds: box(44, 0, 40, 12)}, // 4px gap
	}
	got := Suppress(cands, FixedPad(StrictPad))
	if !got[1].Hidden {
		t.Error("a 4px gap is a collision under the strict padding")
	}

	got = Suppress(cands, FixedPad(0))
	if got[1].Hidden {
		t.Error("a 4px gap is not a collision without padding")
	}
}

func TestHiddenCandidateDoesNotSuppress(t *testing.T) {
	// a hides b; b would have hidden c, but a hidden label carries nothing over.
	cands := []label.Candidate{
		{ID: "a", Priority: 3, Bounds: box(0, 0, 40, 12)},
		{ID: "b", Priority: 2, Bounds: box(30, 0, 40, 12)},
		{ID: "c", Priority: 1, Bounds: box(62, 0, 40, 12)},
	}
	got := Suppress(cands, FixedPad(0))
	if got[0].Hidden || !got[1].Hidden || got[2].Hidden {
		t.Errorf("hidden = [%v %v %v], want [false true false]", got[0].Hidden, got[1].Hidden, got[2].Hidden)
	}
}

func TestPreHiddenStaysHidden(t *testing.T) {
	cands := []label.Candidate{
		{ID: "a", Priority: 3, Hidden: true, Bounds: box(0, 0, 40, 12)},
		{ID: "b", Priority: 2, Bounds: box(10, 0, 40, 12)},
	}
	got := Suppress(cands, FixedPad(0))
	if !got[0].Hidden {
		t.Error("pre-hidden candidate should stay hidden")
	}
	if got[1].Hidden {
		t.Error("pre-hidden candidate should not suppress others")
	}
}

func TestSuppressMalformedFailsOpen(t *testing.T) {
	cands := []label.Candidate{
		{ID: "nan", Priority: 100, Bounds: box(math.NaN(), 0, 40, 12)},
		{ID: "ok", Priority: 1, Bounds: box(0, 0, 40, 12)},
		{ID: "inf", Priority: 0, Bounds: box(0, math.Inf(1), 40, 12)},
	}
	got := Suppress(cands, FixedPad(StrictPad))
	for _, c := range got {
		if c.Hidden {
			t.Errorf("%s should not be hidden by malformed geometry", c.ID)
		}
	}
}

func TestSuppressTieBreakIsDeterministic(t *testing.T) {
	cands := []label.Candidate{
		{ID: "zeta", Priority: 10, Bounds: box(0, 0, 40, 12)},
		{ID: "alpha", Priority: 10, Bounds: box(5, 0, 40, 12)},
	}
	got := Suppress(cands, FixedPad(0))
	if got[1].Hidden || !got[0].Hidden {
		t.Errorf("equal priorities should resolve by ID: alpha wins, got %+v", got)
	}
}

func TestSuppressTicks(t *testing.T) {
	ticks := []label.Candidate{
		{ID: "t0", Kind: label.KindTick, Value: 0, Boundary: true, Bounds: box(0, 0, 20, 10)},
		{ID: "t1", Kind: label.KindTick, Value: 0.5, Bounds: box(15, 0, 20, 10)},
		{ID: "t2", Kind: label.KindTick, Value: 1, Bounds: box(30, 0, 20, 10)},
		{ID: "t3", Kind: label.KindTick, Value: 1.5, Boundary: true, Bounds: box(45, 0, 20, 10)},
	}
	got := SuppressTicks(ticks, nil, 0)

	if got[0].Hidden || got[3].Hidden {
		t.Error("boundary ticks should survive")
	}
	if !got[1].Hidden {
		t.Error("interior tick overlapping a boundary tick should be hidden")
	}
	if !got[2].Hidden {
		t.Error("whole-number tick overlapping a boundary tick should be hidden")
	}
}

func TestSuppressTicksScorer(t *testing.T) {
	ticks := []label.Candidate{
		{ID: "t0", Kind: label.KindTick, Value: 0, Boundary: true, Bounds: box(0, 0, 20, 10)},
		{ID: "t1", Kind: label.KindTick, Value: 0.5, Bounds: box(15, 0, 20, 10)},
		{ID: "t2", Kind: label.KindTick, Value: 1, Bounds: box(30, 0, 20, 10)},
		{ID: "t3", Kind: label.KindTick, Value: 1.5, Boundary: true, Bounds: box(45, 0, 20, 10)},
	}
	// Whole numbers outrank extremes: t0 and t2 win, t3 loses to t2.
	got := SuppressTicks(ticks, priority.Tick{Whole: 1000}, 0)

	want := []bool{false, true, false, true}
	for i, c := range got {
		if c.Hidden != want[i] {
			t.Errorf("%s: Hidden = %v, want %v", c.ID, c.Hidden, want[i])
		}
	}
	if got[2].Priority != 1000 || got[3].Priority != 0 {
		t.Errorf("priorities = %v, %v, want the given scorer's", got[2].Priority, got[3].Priority)
	}
}

// randomCandidates builds a reproducible crowd of overlapping labels.
func randomCandidates(seed int64, n int) []label.Candidate {
	r := rand.New(rand.NewSource(seed))
	cands := make([]label.Candidate, n)
	kinds := []label.Kind{label.KindStart, label.KindMid, label.KindEnd}
	for i := range cands {
		group := "g" + strconv.Itoa(r.Intn(5))
		cands[i] = label.Candidate{
			ID:       "c" + strconv.Itoa(i),
			GroupKey: group,
			Kind:     kinds[r.Intn(len(kinds))],
			Priority: float64(r.Intn(20)),
			Bounds:   box(r.Float64()*300, r.Float64()*200, 20+r.Float64()*60, 10+r.Float64()*6),
		}
	}
	return cands
}

func TestSuppressProperties(t *testing.T) {
	ix := label.Interaction{Hovered: []string{"g1"}, Focused: []string{"g2"}}
	pad := HighlightPad(ix, LoosePad, StrictPad)

	for seed := int64(1); seed <= 20; seed++ {
		cands := randomCandidates(seed, 40)
		got := Suppress(cands, pad)

		t.Run("no collisions "+strconv.FormatInt(seed, 10), func(t *testing.T) {
			if pairs := Collisions(got, pad); len(pairs) > 0 {
				t.Errorf("visible labels still collide: %v", pairs)
			}
		})

		t.Run("idempotent "+strconv.FormatInt(seed, 10), func(t *testing.T) {
			again := Suppress(cands, pad)
			for i := range got {
				if got[i].Hidden != again[i].Hidden {
					t.Fatalf("candidate %s differs between runs", got[i].ID)
				}
			}
		})

		t.Run("monotone "+strconv.FormatInt(seed, 10), func(t *testing.T) {
			// Every hidden label lost to a visible label of at least equal rank.
			order := label.ByPriority(got)
			rank := make(map[int]int, len(order))
			for r, i := range order {
				rank[i] = r
			}
			for j := range got {
				if !got[j].Hidden {
					continue
				}
				found := false
				for i := range got {
					if got[i].Hidden || rank[i] > rank[j] {
						continue
					}
					if geom.Overlaps(got[i].Bounds.Inset(pad(&got[i], &got[j])), got[j].Bounds) {
						found = true
						break
					}
				}
				if !found {
					t.Errorf("%s is hidden without a visible higher-priority neighbor", got[j].ID)
				}
			}
		})
	}
}
