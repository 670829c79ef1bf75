// Package worddetails collects WordNet relations of a word and translates
// them into a target language.
package worddetails

import (
	"context"
	"log"
	"os"

	"github.com/pkg/errors"

	"word-translate-backend/labels"
	"word-translate-backend/languages"
	"word-translate-backend/lexicon"
	"word-translate-backend/translator"
)

type Result struct {
	TranslatedWord string   `json:"translated_word"`
	Synonyms       []string `json:"synonyms"`
	Antonyms       []string `json:"antonyms"`
	Examples       []string `json:"examples"`
	Definitions    []string `json:"definitions"`
}

// ProcessingError wraps whatever stopped the resolution of a word.
type ProcessingError struct {
	Cause error
}

func (e *ProcessingError) Error() string {
	return "Processing error " + e.Cause.Error()
}

func (e *ProcessingError) Unwrap() error { return e.Cause }

type Resolver struct {
	lexicon       lexicon.Database
	translator    translator.Translator
	senseLanguage string
	logger        *log.Logger
}

// New creates a Resolver. Synonyms for non-English targets are looked up in
// the senseLanguage index whatever the target is.
func New(db lexicon.Database, tr translator.Translator, senseLanguage string) *Resolver {
	if senseLanguage == "" {
		senseLanguage = lexicon.English
	}
	return &Resolver{
		lexicon:       db,
		translator:    tr,
		senseLanguage: senseLanguage,
		logger:        log.New(os.Stderr, "[details] ", log.LstdFlags),
	}
}

// Resolve translates word and its relations into lang. Placeholders for
// empty categories are taken from set. Any failure aborts the whole
// resolution with a *ProcessingError.
func (r *Resolver) Resolve(ctx context.Context, word string, lang string, set labels.Set) (*Result, error) {
	res, err := r.resolve(ctx, word, lang, set)
	if err != nil {
		r.logger.Println("resolve", word, "to", lang, "failed:", err)
		return nil, &ProcessingError{Cause: err}
	}
	return res, nil
}

func (r *Resolver) resolve(ctx context.Context, word string, lang string, set labels.Set) (*Result, error) {
	translated, err := r.translator.Translate(ctx, lang, word)
	if err != nil {
		return nil, errors.Wrap(err, "translate word")
	}

	senses, err := r.lexicon.Synsets(word, "")
	if err != nil {
		return nil, errors.Wrap(err, "lookup senses")
	}
	synonymSenses := senses
	if lang != languages.English && r.senseLanguage != lexicon.English {
		if synonymSenses, err = r.lexicon.Synsets(word, r.senseLanguage); err != nil {
			return nil, errors.Wrapf(err, "lookup %s senses", r.senseLanguage)
		}
	}

	var synonyms, antonyms, examples, definitions uniq
	for _, ss := range synonymSenses {
		for _, name := range ss.LemmaNames() {
			synonyms.add(name)
		}
	}
	for _, ss := range senses {
		for _, lemma := range ss.Lemmas {
			for _, ant := range lemma.Antonyms {
				antonyms.add(ant)
			}
		}
		for _, ex := range ss.Examples {
			examples.add(ex)
		}
		definitions.add(ss.Definition)
	}

	result := &Result{TranslatedWord: translated.Word}
	if result.Synonyms, err = r.translateAll(ctx, lang, synonyms.items, set[labels.NoSynonyms]); err != nil {
		return nil, errors.Wrap(err, "translate synonyms")
	}
	if result.Antonyms, err = r.translateAll(ctx, lang, antonyms.items, set[labels.NoAntonyms]); err != nil {
		return nil, errors.Wrap(err, "translate antonyms")
	}
	if result.Examples, err = r.translateAll(ctx, lang, examples.items, set[labels.NoExamples]); err != nil {
		return nil, errors.Wrap(err, "translate examples")
	}
	if result.Definitions, err = r.translateAll(ctx, lang, definitions.items, set[labels.NoDefinitions]); err != nil {
		return nil, errors.Wrap(err, "translate definitions")
	}
	return result, nil
}

// translateAll issues one call per item, in order.
func (r *Resolver) translateAll(ctx context.Context, lang string, items []string, placeholder string) ([]string, error) {
	if len(items) == 0 {
		return []string{placeholder}, nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		tr, err := r.translator.Translate(ctx, lang, item)
		if err != nil {
			return nil, errors.Wrapf(err, "%q", item)
		}
		out = append(out, tr.Word)
	}
	return out, nil
}

// uniq keeps the first occurrence of every non-empty string.
type uniq struct {
	items []string
	seen  map[string]bool
}

func (u *uniq) add(s string) {
	if s == "" || u.seen[s] {
		return
	}
	if u.seen == nil {
		u.seen = make(map[string]bool)
	}
	u.seen[s] = true
	u.items = append(u.items, s)
}
