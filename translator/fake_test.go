package translator

import (
	"context"
	"strings"

	"github.com/pkg/errors"
)

// fakeTranslator prefixes texts with the target language and fails for texts
// listed in fail.
type fakeTranslator struct {
	fail   map[string]bool
	calls  []string
	closed bool
}

func (f *fakeTranslator) Close() error {
	f.closed = true
	return nil
}

func (f *fakeTranslator) Translate(_ context.Context, lang string, text string) (*Translation, error) {
	f.calls = append(f.calls, text)
	if f.fail[text] {
		return nil, errors.Errorf("cannot translate %s", text)
	}
	return &Translation{Original: text, Lang: lang, Word: lang + ":" + strings.ToUpper(text)}, nil
}
