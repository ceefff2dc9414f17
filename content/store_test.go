package content

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"bizsite/storage"
)

func TestLoadWithoutOverrideReturnsDefault(t *testing.T) {
	s := NewStore(storage.NewMemory(), nil)

	if diff := cmp.Diff(Default(), s.Load()); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
	has, err := s.HasOverride()
	require.NoError(t, err)
	assert.False(t, has)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := NewStore(storage.NewMemory(), nil)

	doc := Default()
	doc.Company.Name = "Acme Plumbing"
	doc.Contact.Address.City = "Denver"
	doc.About.Values = append(doc.About.Values, "Show up on time")
	doc.Services = doc.Services[:2]

	require.NoError(t, s.Save(doc))
	if diff := cmp.Diff(doc, s.Load()); diff != "" {
		t.Errorf("Load() after Save mismatch (-want +got):\n%s", diff)
	}

	has, _ := s.HasOverride()
	assert.True(t, has)
}

func TestLoadFallsBackOnCorruptValue(t *testing.T) {
	mem := storage.NewMemory()
	core, logs := observer.New(zapcore.WarnLevel)
	s := NewStore(mem, zap.New(core))

	doc := Default()
	doc.Company.Name = "Acme"
	require.NoError(t, s.Save(doc))
	require.NoError(t, mem.Set(storage.KeyBusinessConfig, `{"company": {"name": "Acme"`))

	if diff := cmp.Diff(Default(), s.Load()); diff != "" {
		t.Errorf("Load() with corrupt value mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 1, logs.Len(), "parse failure should be logged")
}

func TestLoadDoesNotShareDefault(t *testing.T) {
	s := NewStore(storage.NewMemory(), nil)

	first := s.Load()
	first.Homepage.Features[0].Title = "changed"
	first.About.Values[0] = "changed"

	second := s.Load()
	assert.Equal(t, "Fast & Efficient", second.Homepage.Features[0].Title)
	assert.Equal(t, "Integrity in everything we do", second.About.Values[0])
}

func TestReset(t *testing.T) {
	s := NewStore(storage.NewMemory(), nil)

	doc := Default()
	doc.Company.Tagline = "We fix pipes."
	require.NoError(t, s.Save(doc))
	require.NoError(t, s.Reset())

	if diff := cmp.Diff(Default(), s.Load()); diff != "" {
		t.Errorf("Load() after Reset mismatch (-want +got):\n%s", diff)
	}
	require.NoError(t, s.Reset(), "reset without an override is fine")
}

func TestLoadReadsBrowserEraDocument(t *testing.T) {
	mem := storage.NewMemory()
	// Shape written by the browser-only site; missing sections stay zero.
	require.NoError(t, mem.Set(storage.KeyBusinessConfig,
		`{"company":{"name":"Old Co","tagline":"t","description":"d"},"branding":{"primaryColor":"#000"}}`))

	got := NewStore(mem, nil).Load()
	assert.Equal(t, "Old Co", got.Company.Name)
	assert.Equal(t, "#000", got.Branding.PrimaryColor)
	assert.Empty(t, got.Services)
}
