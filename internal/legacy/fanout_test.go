package legacy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var journalSpecs = []FieldSpec{
	{Target: "title", Key: FieldTitle, Default: "Unknown Journal"},
	{Target: "description", Key: FieldDescription, Default: "-"},
}

func TestFanout_OneRecordPerLocale(t *testing.T) {
	t.Parallel()

	m := Flatten([]SettingsRow{
		{Locale: "en_US", Name: "title", Value: "Demo Journal"},
		{Locale: "en_US", Name: "description", Value: "About"},
		{Locale: "tr_TR", Name: "title", Value: "Demo Dergi"},
	}, "en_US")

	got := Fanout(m, journalSpecs)

	require.Len(t, got, 2)
	assert.Equal(t, "en", got[0].Locale)
	assert.Equal(t, "Demo Journal", got[0].Value("title"))
	assert.Equal(t, "About", got[0].Value("description"))
	assert.Equal(t, "tr", got[1].Locale)
	assert.Equal(t, "Demo Dergi", got[1].Value("title"))
	assert.Equal(t, "-", got[1].Value("description"))
}

func TestFanout_DefaultsWhenNoSettings(t *testing.T) {
	t.Parallel()

	got := Fanout(Flatten(nil, "en_US"), journalSpecs)

	require.Len(t, got, 1)
	assert.Equal(t, "en", got[0].Locale)
	assert.Equal(t, "Unknown Journal", got[0].Value("title"))
	assert.Equal(t, "-", got[0].Value("description"))
}

func TestFanout_EmptyValueUsesDefault(t *testing.T) {
	t.Parallel()

	m := Flatten([]SettingsRow{{Locale: "en_US", Name: "title", Value: ""}}, "en_US")
	got := Fanout(m, journalSpecs)

	require.Len(t, got, 1)
	assert.Equal(t, "Unknown Journal", got[0].Value("title"))
}

func TestFanout_PrimaryFirst(t *testing.T) {
	t.Parallel()

	m := Flatten([]SettingsRow{
		{Locale: "de_DE", Name: "title", Value: "Zeitschrift"},
		{Locale: "fr_FR", Name: "title", Value: "Revue"},
		{Locale: "tr_TR", Name: "title", Value: "Dergi"},
	}, "tr_TR")

	got := Fanout(m, journalSpecs)

	require.Len(t, got, 3)
	assert.Equal(t, "tr", got[0].Locale)
	assert.Equal(t, "de", got[1].Locale)
	assert.Equal(t, "fr", got[2].Locale)
}

func TestFanout_SharedCodeCollapses_PrimaryWins(t *testing.T) {
	t.Parallel()

	m := Flatten([]SettingsRow{
		{Locale: "en_GB", Name: "title", Value: "British"},
		{Locale: "en_US", Name: "title", Value: "American"},
		{Locale: "en_ZA", Name: "title", Value: "South African"},
	}, "en_US")

	got := Fanout(m, journalSpecs)

	require.Len(t, got, 1)
	assert.Equal(t, "American", got[0].Value("title"))
}

func TestFanout_SharedCodeCollapses_LastSortedWins(t *testing.T) {
	t.Parallel()

	m := Flatten([]SettingsRow{
		{Locale: "pt_PT", Name: "title", Value: "Portugal"},
		{Locale: "pt_BR", Name: "title", Value: "Brasil"},
	}, "en_US")

	got := Fanout(m, journalSpecs)

	require.Len(t, got, 2)
	assert.Equal(t, "pt", got[1].Locale)
	assert.Equal(t, "Portugal", got[1].Value("title"))
}

func TestFanout_UnknownTargetIsEmpty(t *testing.T) {
	t.Parallel()

	got := Fanout(Flatten(nil, "en_US"), journalSpecs)
	assert.Empty(t, got[0].Value("keywords"))
}
