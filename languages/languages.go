// Package languages holds the fixed table of supported target languages.
package languages

import (
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/language"
)

// English is the code of the source language of every lookup.
const English = "en"

type entry struct {
	Name string
	Code string
}

var table = []entry{
	{"hindi", "hi"},
	{"tamil", "ta"},
	{"telugu", "te"},
	{"marathi", "mr"},
	{"gujarati", "gu"},
	{"kannada", "kn"},
	{"malayalam", "ml"},
	{"punjabi", "pa"},
	{"bengali", "bn"},
	{"odia", "or"},
	{"english", "en"},
	{"french", "fr"},
	{"spanish", "es"},
	{"german", "de"},
}

var byName = func() map[string]string {
	m := make(map[string]string, len(table))
	for _, e := range table {
		if _, err := language.ParseBase(e.Code); err != nil {
			panic("languages: bad code " + e.Code + " for " + e.Name)
		}
		m[e.Name] = e.Code
	}
	return m
}()

// Normalize brings a display name to the form used as table key.
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Lookup returns the two-letter code for a display name, ignoring case.
func Lookup(name string) (string, bool) {
	code, ok := byName[Normalize(name)]
	return code, ok
}

// Names lists display names in table order.
func Names() []string {
	names := make([]string, len(table))
	for i, e := range table {
		names[i] = e.Name
	}
	return names
}

// ISO3 maps a two-letter code to its ISO 639-3 form (fr -> fra).
func ISO3(code string) (string, error) {
	base, err := language.ParseBase(code)
	if err != nil {
		return "", errors.Wrapf(err, "parse language code %q", code)
	}
	return base.ISO3(), nil
}
