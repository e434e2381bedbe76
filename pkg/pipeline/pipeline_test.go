package pipeline

import (
	"context"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/labeler/pkg/cache"
	"github.com/matzehuels/labeler/pkg/config"
	"github.com/matzehuels/labeler/pkg/core/geom"
	"github.com/matzehuels/labeler/pkg/core/label"
	"github.com/matzehuels/labeler/pkg/core/source"
	"github.com/matzehuels/labeler/pkg/errors"
	"github.com/matzehuels/labeler/pkg/observability"
	"github.com/matzehuels/labeler/pkg/scene"
	"github.com/matzehuels/labeler/pkg/textmeasure"
)

const lineScene = `{
  "chart": "line",
  "container": {"x": 0, "y": 0, "width": 600, "height": 400},
  "interaction": {"hovered": ["de"]},
  "series": [
    {"group": "fr", "text": "France", "points": [{"x": 0, "y": 90}, {"x": 540, "y": 118}]},
    {"group": "de", "text": "Germany", "points": [{"x": 0, "y": 80}, {"x": 540, "y": 121}]},
    {"group": "it", "text": "Italy", "points": [{"x": 0, "y": 200}, {"x": 540, "y": 260}]}
  ]
}`

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Font.Oracle = config.OracleHeuristic
	cfg.Cache.Backend = config.CacheMemory
	return cfg
}

func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	r, err := NewRunner(cache.NewMemoryCache(64), nil, nil, testConfig())
	if err != nil {
		t.Fatalf("NewRunner() error: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func visibleIDs(labels []label.Output) []string {
	var out []string
	for _, o := range labels {
		if o.Visible {
			out = append(out, o.ID)
		}
	}
	return out
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"conflicts", false},
		{"json", false},
		{"pdf", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %q", tt.format, errors.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}
	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}
	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateForRenderDefaults(t *testing.T) {
	var o Options
	if err := o.ValidateForRender(); err != nil {
		t.Fatal(err)
	}
	if len(o.Formats) != 1 || o.Formats[0] != FormatJSON {
		t.Errorf("Formats = %v, want [json]", o.Formats)
	}
	if o.Scale != DefaultScale {
		t.Errorf("Scale = %v, want %v", o.Scale, DefaultScale)
	}
	if o.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
}

func TestExecute(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()
	opts := Options{Data: []byte(lineScene), Formats: []string{FormatJSON, FormatSVG}}

	res, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if got := strings.Join(visibleIDs(res.Layout.Labels), ","); got != "de,it" {
		t.Errorf("visible = %s, want de,it", got)
	}
	if res.Stats.Labels != 3 || res.Stats.Visible != 2 {
		t.Errorf("Stats = %+v", res.Stats)
	}
	if res.CacheInfo.LayoutHit || res.CacheInfo.RenderHit {
		t.Errorf("first run should miss the cache: %+v", res.CacheInfo)
	}
	if len(res.Artifacts[FormatJSON]) == 0 || len(res.Artifacts[FormatSVG]) == 0 {
		t.Errorf("missing artifacts: %v", len(res.Artifacts))
	}
	if res.Scene.Font.Size != config.DefaultFontSize {
		t.Errorf("scene font size = %v, want config default", res.Scene.Font.Size)
	}
	if len(res.Layout.Candidates) != 3 {
		t.Errorf("candidates = %d, want 3", len(res.Layout.Candidates))
	}

	again, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !again.CacheInfo.LayoutHit || !again.CacheInfo.RenderHit {
		t.Errorf("second run should hit the cache: %+v", again.CacheInfo)
	}
	if again.SceneHash != res.SceneHash {
		t.Error("scene hash changed between identical runs")
	}
	if string(again.Artifacts[FormatSVG]) != string(res.Artifacts[FormatSVG]) {
		t.Error("cached svg differs from computed svg")
	}

	opts.Refresh = true
	fresh, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if fresh.CacheInfo.LayoutHit || fresh.CacheInfo.RenderHit {
		t.Errorf("refresh should bypass the cache: %+v", fresh.CacheInfo)
	}
}

func TestExecuteInteraction(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()

	res, err := r.Execute(ctx, Options{
		Data:        []byte(lineScene),
		Interaction: &label.Interaction{Hovered: []string{"fr"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(visibleIDs(res.Layout.Labels), ","); got != "fr,it" {
		t.Errorf("visible = %s, want fr,it", got)
	}

	// Same state, different spelling.
	res, err = r.Execute(ctx, Options{
		Data:        []byte(lineScene),
		Interaction: &label.Interaction{Hovered: []string{"fr", "fr"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !res.CacheInfo.LayoutHit {
		t.Error("normalized interaction should hit the cache")
	}
	if res.SceneHash == "" {
		t.Error("SceneHash is empty")
	}
}

func TestLayoutMarimekko(t *testing.T) {
	r := newTestRunner(t)
	s := &scene.Scene{
		Chart:     source.ChartMarimekko,
		Container: geom.Box{W: 300, H: 200},
		Bars: []source.Bar{
			{ID: "a", Text: "A", X: 0, Width: 100},
			{ID: "b", Text: "B", X: 100, Width: 100},
			{ID: "c", Text: "C", X: 200, Width: 100},
		},
		Marimekko: &scene.Marimekko{Baseline: 150},
	}

	res, err := r.Execute(context.Background(), Options{Scene: s})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	l := res.Layout
	if len(l.Labels) != 3 || l.Visible != 3 {
		t.Errorf("labels = %d, visible = %d, want 3/3", len(l.Labels), l.Visible)
	}
	if l.Candidates != nil {
		t.Error("marimekko layouts carry no candidates")
	}
	for _, o := range l.Labels {
		if o.Y != 150+config.DefaultBandHeight {
			t.Errorf("%s: Y = %v, want %v", o.ID, o.Y, 150+config.DefaultBandHeight)
		}
		if o.Rotate != source.DefaultAngle {
			t.Errorf("%s: Rotate = %v", o.ID, o.Rotate)
		}
	}
	if s.Marimekko.BandHeight != 0 {
		t.Error("Execute modified the caller's scene")
	}
}

func TestLayoutNonFiniteScene(t *testing.T) {
	r := newTestRunner(t)
	s := &scene.Scene{
		Chart:     source.ChartScatter,
		Container: geom.Box{W: 200, H: 100},
		Font:      textmeasure.Font{Size: 12},
		Points: []source.Point{
			{ID: "a", Text: "Alpha", X: 10, Y: 10},
			{ID: "b", Text: "Beta", X: math.NaN(), Y: 10},
		},
	}

	for pass := range 2 {
		l, hit, err := r.LayoutWithCacheInfo(context.Background(), s, label.Interaction{}, false)
		if err != nil {
			t.Fatalf("pass %d: Layout() error = %v", pass, err)
		}
		if hit {
			t.Errorf("pass %d: a layout without a JSON form was served from cache", pass)
		}
		if len(l.Labels) != 2 || l.Labels[0].ID != "a" || !l.Labels[0].Visible {
			t.Fatalf("pass %d: labels = %+v, want a placed", pass, l.Labels)
		}
		if x := l.Labels[0].X; math.IsNaN(x) || x < 0 || x > 200 {
			t.Errorf("pass %d: a.X = %v, want inside the container", pass, x)
		}
		if !math.IsNaN(l.Labels[1].X) {
			t.Errorf("pass %d: b.X = %v, want NaN passed through", pass, l.Labels[1].X)
		}
	}

	h1, err := SceneHash(s)
	if err != nil {
		t.Fatalf("SceneHash() error = %v", err)
	}
	s2 := *s
	s2.Points = []source.Point{s.Points[0], {ID: "b", Text: "Beta", X: math.Inf(1), Y: 10}}
	if h2, _ := SceneHash(&s2); h1 == h2 {
		t.Error("NaN and +Inf scenes share a hash")
	}

	l, err := r.Layout(context.Background(), s, label.Interaction{})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := r.Render(context.Background(), l, Options{Formats: []string{FormatSVG}}); err != nil {
		t.Errorf("Render(svg) error = %v", err)
	}
}

func TestExecuteErrors(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()

	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"no input", Options{}, errors.ErrCodeInvalidInput},
		{"bad json", Options{Data: []byte("{")}, errors.ErrCodeInvalidFormat},
		{"bad chart", Options{Data: []byte(`{"chart": "pie", "container": {"width": 10, "height": 10}}`)}, errors.ErrCodeInvalidChart},
		{"bad format", Options{Data: []byte(lineScene), Formats: []string{"gif"}}, errors.ErrCodeInvalidFormat},
		{"missing file", Options{Path: "does-not-exist.json"}, errors.ErrCodeFileNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Execute(ctx, tt.opts)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %q, want %q (%v)", got, tt.code, err)
			}
		})
	}
}

func TestNewRunnerErrors(t *testing.T) {
	cfg := testConfig()
	cfg.Budget.Divisor = 0
	if _, err := NewRunner(nil, nil, nil, cfg); err == nil {
		t.Error("NewRunner should reject an invalid config")
	}
	if _, err := NewOracle("magic"); err == nil {
		t.Error("NewOracle should reject unknown names")
	}
}

type countingHooks struct {
	observability.NoopPipelineHooks
	layouts int
	visible int
}

func (h *countingHooks) OnLayoutComplete(_ context.Context, _ string, visible int, _ time.Duration, _ error) {
	h.layouts++
	h.visible = visible
}

func TestHooks(t *testing.T) {
	hooks := &countingHooks{}
	observability.SetPipelineHooks(hooks)
	t.Cleanup(observability.Reset)

	r := newTestRunner(t)
	for range 2 {
		if _, err := r.Execute(context.Background(), Options{Data: []byte(lineScene)}); err != nil {
			t.Fatal(err)
		}
	}
	if hooks.layouts != 1 {
		t.Errorf("layouts = %d, want 1 (second run is cached)", hooks.layouts)
	}
	if hooks.visible != 2 {
		t.Errorf("visible = %d, want 2", hooks.visible)
	}
}
