// Package legacy reads the PKP/OJS 2.x relational schema and turns its
// entity-attribute-value settings tables into typed, locale-indexed maps.
package legacy

import (
	"slices"
	"strconv"
	"strings"
)

// Field is the setting_name of a legacy settings row.
type Field string

// Journal settings.
const (
	FieldTitle                 Field = "title"
	FieldDescription           Field = "description"
	FieldPrintISSN             Field = "printIssn"
	FieldOnlineISSN            Field = "onlineIssn"
	FieldInitialYear           Field = "initialYear"
	FieldTotalViews            Field = "total_views"
	FieldTotalDownloads        Field = "total_downloads"
	FieldPublisherInstitution  Field = "publisherInstitution"
	FieldPublisherURL          Field = "publisherUrl"
	FieldPublisherNote         Field = "publisherNote"
	FieldContactName           Field = "contactName"
	FieldContactEmail          Field = "contactEmail"
	FieldContactPhone          Field = "contactPhone"
	FieldContactMailingAddress Field = "contactMailingAddress"
)

// Article settings.
const (
	FieldAbstract Field = "abstract"
	FieldSubject  Field = "subject"
)

// SettingsRow is one (locale, key, value) triple of a legacy record.
// An empty Locale applies to the record's primary locale.
type SettingsRow struct {
	Locale string
	Name   string
	Value  string
}

// SettingsMap is the flattened form of all settings rows of one legacy record:
// locale -> field -> value. It always contains the primary locale.
type SettingsMap struct {
	primary string
	values  map[string]map[Field]string
}

// Flatten builds a SettingsMap from rows. Rows without a locale are filed
// under primaryLocale. For duplicate (locale, name) pairs the last row wins.
func Flatten(rows []SettingsRow, primaryLocale string) SettingsMap {
	m := SettingsMap{
		primary: primaryLocale,
		values:  map[string]map[Field]string{primaryLocale: {}},
	}

	for _, row := range rows {
		locale := row.Locale
		if locale == "" {
			locale = primaryLocale
		}
		fields, ok := m.values[locale]
		if !ok {
			fields = make(map[Field]string)
			m.values[locale] = fields
		}
		fields[Field(row.Name)] = row.Value
	}

	return m
}

// PrimaryLocale returns the locale that unlocalized rows were filed under.
func (m SettingsMap) PrimaryLocale() string {
	return m.primary
}

// Locales returns every locale present in the map, sorted.
func (m SettingsMap) Locales() []string {
	locales := make([]string, 0, len(m.values))
	for locale := range m.values {
		locales = append(locales, locale)
	}
	slices.Sort(locales)
	return locales
}

// Get returns the value of f in locale, or "" if absent.
func (m SettingsMap) Get(locale string, f Field) string {
	return m.values[locale][f]
}

// Primary returns the value of f in the primary locale, or "" if absent.
func (m SettingsMap) Primary(f Field) string {
	return m.Get(m.primary, f)
}

// PrimaryOr returns the primary-locale value of f, or def when it is empty.
func (m SettingsMap) PrimaryOr(f Field, def string) string {
	if v := m.Primary(f); v != "" {
		return v
	}
	return def
}

// PrimaryInt parses the primary-locale value of f as an integer.
// Absent, empty or non-numeric values yield def.
func (m SettingsMap) PrimaryInt(f Field, def int64) int64 {
	v := strings.TrimSpace(m.Primary(f))
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return def
	}
	return n
}

// LanguageCode derives the two-letter language code of a locale ("en_US" -> "en").
func LanguageCode(locale string) string {
	if len(locale) <= 2 {
		return locale
	}
	return locale[:2]
}
