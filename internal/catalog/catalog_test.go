package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"PoolKeeper/internal/model"
)

func TestDefault_Validates(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestClassifyDrain_ResolutionOrder(t *testing.T) {
	c := Default()
	tests := []struct {
		name       string
		key        string
		category   model.ActivityCategory
		rate       model.Fraction
		resolution model.Resolution
	}{
		{"TikTok", "tiktok", model.CategoryShortForm, 0.14, model.ResolvedExact},
		{"  YouTube  ", "youtube", model.CategoryStreaming, 0.08, model.ResolvedExact},
		{"YouTube Shorts", "youtube shorts", model.CategoryShortForm, 0.14, model.ResolvedExact},
		{"shorts on youtube", "shorts", model.CategoryShortForm, 0.14, model.ResolvedPattern},
		{"youtube music videos", "youtube", model.CategoryStreaming, 0.07, model.ResolvedPattern},
		{"insta stories", "insta", model.CategorySocial, 0.10, model.ResolvedPattern},
		{"online poker", "poker", model.CategoryGambling, 0.18, model.ResolvedPattern},
		{"spreadsheet", "spreadsheet", model.CategoryUtility, 0, model.ResolvedFallback},
		{"", "", model.CategoryUtility, 0, model.ResolvedFallback},
	}
	for _, tt := range tests {
		got := c.ClassifyDrain(tt.name)
		assert.Equal(t, tt.key, got.Key, "key for %q", tt.name)
		assert.Equal(t, tt.category, got.Category, "category for %q", tt.name)
		assert.InDelta(t, float64(tt.rate), float64(got.Rate), 1e-9, "rate for %q", tt.name)
		assert.Equal(t, tt.resolution, got.Resolution, "resolution for %q", tt.name)
	}
}

func TestClassifyDrain_PatternOrderMatters(t *testing.T) {
	c := Default()
	c.Patterns = []Pattern{
		{Keyword: "youtube", Category: model.CategoryStreaming},
		{Keyword: "shorts", Category: model.CategoryShortForm},
	}
	assert.Equal(t, model.CategoryStreaming, c.ClassifyDrain("youtube shorts binge").Category)
}

func TestResolveRecharge(t *testing.T) {
	c := Default()

	got := c.ResolveRecharge(RechargeRequest{Type: "Meditation"})
	assert.Equal(t, model.ResolvedExact, got.Resolution)
	assert.InDelta(t, 0.07, float64(got.Boost), 1e-9)
	assert.NotEmpty(t, got.Mechanism)
	assert.Empty(t, got.Error)

	got = c.ResolveRecharge(RechargeRequest{Type: "unknown", Category: "exercise", Intensity: "intense"})
	assert.Equal(t, model.ResolvedLegacy, got.Resolution)
	assert.InDelta(t, 0.15, float64(got.Boost), 1e-9)

	got = c.ResolveRecharge(RechargeRequest{Category: "exercise", Intensity: "extreme"})
	assert.Equal(t, model.Unresolved, got.Resolution)
	assert.Zero(t, got.Boost)
	assert.NotEmpty(t, got.Error)
}

func TestValidate_RejectsBrokenTables(t *testing.T) {
	c := Default()
	delete(c.SleepFill, 5)
	assert.Error(t, c.Validate())

	c = Default()
	c.SleepFill[6] = 0.1
	assert.Error(t, c.Validate())

	c = Default()
	c.Patterns = append(c.Patterns, Pattern{Keyword: "foo", Category: "nope"})
	assert.Error(t, c.Validate())

	c = Default()
	delete(c.Categories, model.CategoryUtility)
	assert.Error(t, c.Validate())
}

func TestLoad_MergesOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
apps:
  duolingo:
    category: utility
  tiktok:
    category: short_form
    rate: 0.20
recharge:
  sauna:
    boost: 0.06
    mechanism: heat shock
legacy_recharge:
  exercise:
    light: 0.06
  play:
    light: 0.02
`), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.InDelta(t, 0.20, float64(c.ClassifyDrain("tiktok").Rate), 1e-9)
	assert.Equal(t, model.ResolvedExact, c.ClassifyDrain("duolingo").Resolution)
	assert.Equal(t, model.ResolvedExact, c.ResolveRecharge(RechargeRequest{Type: "sauna"}).Resolution)
	// untouched defaults survive the merge
	assert.Equal(t, model.CategorySocial, c.ClassifyDrain("instagram").Category)
	assert.Equal(t, map[string]float64{"light": 0.06, "moderate": 0.10, "intense": 0.15}, c.Legacy["exercise"])
	assert.Equal(t, model.ResolvedLegacy, c.ResolveRecharge(RechargeRequest{Category: "exercise", Intensity: "moderate"}).Resolution)
	assert.Equal(t, model.ResolvedLegacy, c.ResolveRecharge(RechargeRequest{Category: "play", Intensity: "light"}).Resolution)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, len(Default().Apps), len(c.Apps))
}

func TestLoad_InvalidOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("categories:\n  social:\n    rate: -1\n"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(""), 0o644))

	reloaded := make(chan *Catalog, 4)
	w := NewWatcher(path, func(c *Catalog) { reloaded <- c }, zap.NewNop().Sugar())
	w.debounce = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// give the watcher time to register the directory
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("apps:\n  duolingo:\n    category: utility\n"), 0o644))

	select {
	case c := <-reloaded:
		assert.Equal(t, model.ResolvedExact, c.ClassifyDrain("duolingo").Resolution)
	case <-time.After(5 * time.Second):
		t.Fatal("catalog was not reloaded")
	}

	cancel()
	require.NoError(t, <-done)
}
