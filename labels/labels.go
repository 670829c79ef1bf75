// Package labels provides the UI label strings and their translation.
package labels

import (
	"context"
	"embed"
	"log"
	"os"
	"sort"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"

	"word-translate-backend/translator"
)

const (
	WordDetails    = "word_details"
	TranslatedWord = "translated_word"
	Synonyms       = "synonyms"
	Antonyms       = "antonyms"
	Examples       = "examples"
	Definitions    = "definitions"
	NoSynonyms     = "no_synonyms"
	NoAntonyms     = "no_antonyms"
	NoExamples     = "no_examples"
	NoDefinitions  = "no_definitions"
)

//go:embed active.en.toml
var catalog embed.FS

// Set maps a label key to its display string.
type Set map[string]string

var english = mustLoad()

func mustLoad() Set {
	set, err := load()
	if err != nil {
		panic(err)
	}
	return set
}

func load() (Set, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	file, err := bundle.LoadMessageFileFS(catalog, "active.en.toml")
	if err != nil {
		return nil, err
	}
	localizer := i18n.NewLocalizer(bundle, language.English.String())
	set := make(Set, len(file.Messages))
	for _, msg := range file.Messages {
		text, err := localizer.Localize(&i18n.LocalizeConfig{MessageID: msg.ID})
		if err != nil {
			return nil, err
		}
		set[msg.ID] = text
	}
	return set, nil
}

// English returns a copy of the English label set.
func English() Set {
	return english.Clone()
}

func (s Set) Clone() Set {
	cp := make(Set, len(s))
	for k, v := range s {
		cp[k] = v
	}
	return cp
}

// Keys returns label keys in sorted order.
func (s Set) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var logger = log.New(os.Stderr, "[labels] ", log.LstdFlags)

// Translate translates every label into lang. When any single translation
// fails a copy of set comes back untouched together with the failure.
func Translate(ctx context.Context, tr translator.Translator, set Set, lang string) (Set, error) {
	out := make(Set, len(set))
	for _, key := range set.Keys() {
		res, err := tr.Translate(ctx, lang, set[key])
		if err != nil {
			logger.Println("fallback to english labels for", lang+":", err)
			return set.Clone(), err
		}
		out[key] = res.Word
	}
	return out, nil
}
