package legacy

import "slices"

// FieldSpec maps a legacy setting to a localized target field.
type FieldSpec struct {
	Target  string
	Key     Field
	Default string
}

// Localized is one per-language record produced by Fanout.
type Localized struct {
	Locale string
	values map[string]string
}

// Value returns the resolved value of a target field.
func (l Localized) Value(target string) string {
	return l.values[target]
}

// Fanout produces one Localized record per language present in m, each
// carrying every spec'd target field: the legacy value when non-empty,
// otherwise the spec's default.
//
// Locales are keyed by two-letter language code. When two locales share a
// code (en_US, en_GB) they collapse into one record; the primary locale wins,
// otherwise the lexicographically last locale wins. The primary language is
// always first in the result.
func Fanout(m SettingsMap, specs []FieldSpec) []Localized {
	locales := m.Locales()
	// Primary last so it overwrites colliding locales.
	locales = slices.DeleteFunc(locales, func(l string) bool { return l == m.primary })
	locales = append(locales, m.primary)

	byCode := make(map[string]Localized, len(locales))
	for _, locale := range locales {
		rec := Localized{
			Locale: LanguageCode(locale),
			values: make(map[string]string, len(specs)),
		}
		for _, spec := range specs {
			v := m.Get(locale, spec.Key)
			if v == "" {
				v = spec.Default
			}
			rec.values[spec.Target] = v
		}
		byCode[rec.Locale] = rec
	}

	primaryCode := LanguageCode(m.primary)
	codes := make([]string, 0, len(byCode))
	for code := range byCode {
		if code != primaryCode {
			codes = append(codes, code)
		}
	}
	slices.Sort(codes)

	out := make([]Localized, 0, len(byCode))
	out = append(out, byCode[primaryCode])
	for _, code := range codes {
		out = append(out, byCode[code])
	}
	return out
}
