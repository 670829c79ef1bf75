package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"word-translate-backend/lexicon"
	"word-translate-backend/translator"
	"word-translate-backend/worddetails"
)

type dictionary map[string][]*lexicon.Synset

func (d dictionary) Synsets(word string, _ string) ([]*lexicon.Synset, error) {
	return d[word], nil
}

type countingTranslator struct {
	mu    sync.Mutex
	fail  map[string]bool
	calls int
}

var frenchWords = map[string]string{
	"happy":              "heureux",
	"unhappy":            "malheureux",
	"No antonyms found.": "Aucun antonyme trouvé.",
}

func (c *countingTranslator) Close() error { return nil }

func (c *countingTranslator) Translate(_ context.Context, lang string, text string) (*translator.Translation, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	if c.fail[text] {
		return nil, errors.New("translator timed out")
	}
	word, ok := frenchWords[text]
	if !ok {
		word = "[" + lang + "] " + text
	}
	return &translator.Translation{Original: text, Lang: lang, Word: word}, nil
}

type discardNotifier struct {
	infos, errors []string
}

func (d *discardNotifier) Info(message string)  { d.infos = append(d.infos, message) }
func (d *discardNotifier) Error(message string) { d.errors = append(d.errors, message) }

var words = dictionary{
	"happy": {
		{
			ID:         "01148283-a",
			POS:        lexicon.Adjective,
			Lemmas:     []lexicon.Lemma{{Name: "happy"}},
			Definition: "enjoying or showing or marked by joy or pleasure",
			Examples:   []string{"a happy smile"},
		},
	},
}

type fixture struct {
	router     *gin.Engine
	translator *countingTranslator
	notifier   *discardNotifier
}

func newFixture(fail ...string) *fixture {
	gin.SetMode(gin.TestMode)
	tr := &countingTranslator{fail: make(map[string]bool)}
	for _, f := range fail {
		tr.fail[f] = true
	}
	chain := translator.NewPassthrough(tr, "en")
	notifier := &discardNotifier{}
	router := gin.New()
	New(chain, worddetails.New(words, chain, lexicon.English), notifier).Register(router)
	return &fixture{router: router, translator: tr, notifier: notifier}
}

func (f *fixture) post(t *testing.T, body string) map[string]json.RawMessage {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/translate", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	f.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var out map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func errorOf(t *testing.T, out map[string]json.RawMessage) string {
	t.Helper()
	require.Contains(t, out, "error")
	assert.NotContains(t, out, "result")
	var msg string
	require.NoError(t, json.Unmarshal(out["error"], &msg))
	return msg
}

func resultOf(t *testing.T, out map[string]json.RawMessage) worddetails.Result {
	t.Helper()
	require.Contains(t, out, "result")
	assert.NotContains(t, out, "error")
	var res worddetails.Result
	require.NoError(t, json.Unmarshal(out["result"], &res))
	return res
}

func TestTranslate_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "missing word", body: `{"language": "french"}`, want: "Please provide both the word and target language."},
		{name: "missing language", body: `{"word": "happy"}`, want: "Please provide both the word and target language."},
		{name: "empty body", body: ``, want: "Please provide both the word and target language."},
		{name: "not json", body: `word=happy`, want: "Please provide both the word and target language."},
		{name: "unsupported", body: `{"word": "happy", "language": "Klingon"}`, want: "Sorry, the language 'klingon' is not supported."},
		{
			name: "word too long",
			body: `{"word": "` + strings.Repeat("s", 101) + `", "language": "english"}`,
			want: "Sorry, the word is longer than 100 characters.",
		},
		{
			name: "body too large",
			body: `{"word": "` + strings.Repeat("s", 1<<20) + `", "language": "english"}`,
			want: "Sorry, the word is longer than 100 characters.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			assert.Equal(t, tt.want, errorOf(t, f.post(t, tt.body)))
			assert.Zero(t, f.translator.calls)
		})
	}
}

func TestTranslate_French(t *testing.T) {
	f := newFixture()
	res := resultOf(t, f.post(t, `{"word": "happy", "language": "French"}`))

	assert.Equal(t, "heureux", res.TranslatedWord)
	assert.Equal(t, []string{"heureux"}, res.Synonyms)
	assert.Equal(t, []string{"Aucun antonyme trouvé."}, res.Antonyms)
	assert.Equal(t, []string{"[fr] a happy smile"}, res.Examples)
	assert.Equal(t, []string{"[fr] enjoying or showing or marked by joy or pleasure"}, res.Definitions)
	// ten labels, the word, one synonym, one example, one definition
	assert.Equal(t, 14, f.translator.calls)
}

func TestTranslate_UnknownWordInEnglish(t *testing.T) {
	f := newFixture()
	res := resultOf(t, f.post(t, `{"word": "xyzzynotaword", "language": "english"}`))

	assert.Equal(t, worddetails.Result{
		TranslatedWord: "xyzzynotaword",
		Synonyms:       []string{"No synonyms found."},
		Antonyms:       []string{"No antonyms found."},
		Examples:       []string{"No example sentences found."},
		Definitions:    []string{"No definitions found."},
	}, res)
	assert.Zero(t, f.translator.calls)
}

func TestTranslate_EnglishIsIdentity(t *testing.T) {
	f := newFixture()
	res := resultOf(t, f.post(t, `{"word": "happy", "language": "english"}`))
	assert.Equal(t, "happy", res.TranslatedWord)
	assert.Equal(t, []string{"a happy smile"}, res.Examples)
	assert.Equal(t, []string{"enjoying or showing or marked by joy or pleasure"}, res.Definitions)
}

func TestTranslate_WordFailureIsAnError(t *testing.T) {
	f := newFixture("happy")
	msg := errorOf(t, f.post(t, `{"word": "happy", "language": "french"}`))
	assert.Contains(t, msg, "Processing error")
	assert.Contains(t, msg, "translator timed out")
	assert.Len(t, f.notifier.errors, 1)
}

func TestTranslate_LabelFailureFallsBackToEnglish(t *testing.T) {
	f := newFixture("Definitions")
	res := resultOf(t, f.post(t, `{"word": "happy", "language": "french"}`))
	assert.Equal(t, []string{"No antonyms found."}, res.Antonyms)
	assert.Equal(t, "heureux", res.TranslatedWord)
	assert.Len(t, f.notifier.infos, 1)
}

func TestTranslate_SameShapeOnRepeat(t *testing.T) {
	f := newFixture()
	body := `{"word": "happy", "language": "hindi"}`
	first := resultOf(t, f.post(t, body))
	second := resultOf(t, f.post(t, body))
	assert.Equal(t, len(first.Synonyms), len(second.Synonyms))

	var a, b map[string]json.RawMessage
	raw := f.post(t, body)["result"]
	require.NoError(t, json.Unmarshal(raw, &a))
	raw = f.post(t, body)["result"]
	require.NoError(t, json.Unmarshal(raw, &b))
	assert.ElementsMatch(t, keys(a), keys(b))
	assert.ElementsMatch(t, []string{"translated_word", "synonyms", "antonyms", "examples", "definitions"}, keys(a))
}

func keys(m map[string]json.RawMessage) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func TestPages(t *testing.T) {
	f := newFixture()
	for _, path := range []string{"/", "/index"} {
		t.Run(path, func(t *testing.T) {
			w := httptest.NewRecorder()
			f.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), "hindi")
			assert.Contains(t, w.Body.String(), "english")
		})
	}
}
