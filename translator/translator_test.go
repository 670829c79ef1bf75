package translator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/reddec/storages/memstorage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCached(t *testing.T) {
	ctx := context.Background()
	backend := &fakeTranslator{}
	cache := memstorage.New()
	tr := NewCached(backend, cache)

	first, err := tr.Translate(ctx, "fr", "happy")
	require.NoError(t, err)
	second, err := tr.Translate(ctx, "fr", "happy")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, []string{"happy"}, backend.calls)

	raw, err := cache.Get([]byte("fr:happy"))
	require.NoError(t, err)
	var stored Translation
	require.NoError(t, json.Unmarshal(raw, &stored))
	assert.Equal(t, "fr:HAPPY", stored.Word)
}

func TestCached_BadEntryIsRefetched(t *testing.T) {
	backend := &fakeTranslator{}
	cache := memstorage.New()
	require.NoError(t, cache.Put([]byte("fr:sad"), []byte(`{"original":"sad","word":""}`)))

	tr, err := NewCached(backend, cache).Translate(context.Background(), "fr", "sad")
	require.NoError(t, err)
	assert.Equal(t, "fr:SAD", tr.Word)
	assert.Equal(t, []string{"sad"}, backend.calls)
}

func TestCached_ErrorIsNotStored(t *testing.T) {
	backend := &fakeTranslator{fail: map[string]bool{"sad": true}}
	cache := memstorage.New()

	_, err := NewCached(backend, cache).Translate(context.Background(), "fr", "sad")
	assert.Error(t, err)
	_, err = cache.Get([]byte("fr:sad"))
	assert.Error(t, err)
}

func TestPool(t *testing.T) {
	broken := &fakeTranslator{fail: map[string]bool{"happy": true}}
	working := &fakeTranslator{}

	tests := []struct {
		name    string
		pool    []Translator
		wantErr bool
	}{
		{name: "falls through to working", pool: []Translator{broken, working}},
		{name: "all broken", pool: []Translator{broken}, wantErr: true},
		{name: "empty pool", pool: nil, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := NewPool(&StraightForward{}, tt.pool...).Translate(context.Background(), "fr", "happy")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "fr:HAPPY", tr.Word)
		})
	}
}

func TestPool_CloseClosesMembers(t *testing.T) {
	a, b := &fakeTranslator{}, &fakeTranslator{}
	require.NoError(t, NewPool(&Random{}, a, b).Close())
	assert.True(t, a.closed)
	assert.True(t, b.closed)
}

func TestRandom_KeepsMembers(t *testing.T) {
	a, b, c := &fakeTranslator{}, &fakeTranslator{}, &fakeTranslator{}
	pool := []Translator{a, b, c}
	shuffled := (&Random{}).Gen(pool)
	assert.ElementsMatch(t, pool, shuffled)
	assert.Same(t, a, pool[0])
}

func TestStrategyByName(t *testing.T) {
	s, err := StrategyByName("random")
	require.NoError(t, err)
	assert.IsType(t, &Random{}, s)

	s, err = StrategyByName("")
	require.NoError(t, err)
	assert.IsType(t, &StraightForward{}, s)

	_, err = StrategyByName("round-robin")
	assert.Error(t, err)
}

func TestPassthrough(t *testing.T) {
	backend := &fakeTranslator{fail: map[string]bool{"happy": true}}
	tr := NewPassthrough(backend, "en")

	same, err := tr.Translate(context.Background(), "en", "happy")
	require.NoError(t, err)
	assert.Equal(t, "happy", same.Word)
	assert.Empty(t, backend.calls)

	_, err = tr.Translate(context.Background(), "fr", "happy")
	assert.Error(t, err)
	assert.Equal(t, []string{"happy"}, backend.calls)
}

type flakyTranslator struct {
	fakeTranslator
	failures int
}

func (f *flakyTranslator) Translate(ctx context.Context, lang string, text string) (*Translation, error) {
	if f.failures > 0 {
		f.failures--
		f.calls = append(f.calls, text)
		return nil, assert.AnError
	}
	return f.fakeTranslator.Translate(ctx, lang, text)
}

func TestRetry(t *testing.T) {
	t.Run("recovers within budget", func(t *testing.T) {
		backend := &flakyTranslator{failures: 2}
		tr, err := NewRetry(backend, 2, time.Millisecond).Translate(context.Background(), "fr", "happy")
		require.NoError(t, err)
		assert.Equal(t, "fr:HAPPY", tr.Word)
		assert.Len(t, backend.calls, 3)
	})
	t.Run("gives up", func(t *testing.T) {
		backend := &flakyTranslator{failures: 5}
		_, err := NewRetry(backend, 1, time.Millisecond).Translate(context.Background(), "fr", "happy")
		assert.ErrorIs(t, err, assert.AnError)
		assert.Len(t, backend.calls, 2)
	})
	t.Run("zero retries is the wrapped translator", func(t *testing.T) {
		backend := &fakeTranslator{}
		assert.Same(t, Translator(backend), NewRetry(backend, 0, time.Second))
	})
}

func TestGoogle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/translate_a/single", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "gtx", q.Get("client"))
		assert.Equal(t, []string{"t", "rm"}, q["dt"])
		switch q.Get("q") {
		case "happy":
			assert.Equal(t, "fr", q.Get("tl"))
			_, _ = w.Write([]byte(`[[["heureux","happy",null,null,10]],null,"en"]`))
		case "two sentences":
			_, _ = w.Write([]byte(`[[["Un. ","One. ",null,null,3],["Deux.","Two.",null,null,3],[null,null,"ung deu"]],null,"en"]`))
		case "garbage":
			_, _ = w.Write([]byte(`<html>`))
		default:
			w.WriteHeader(http.StatusTooManyRequests)
		}
	}))
	defer srv.Close()

	tr := NewGoogle(srv.URL)
	defer tr.Close()
	ctx := context.Background()

	got, err := tr.Translate(ctx, "fr", "happy")
	require.NoError(t, err)
	assert.Equal(t, &Translation{Original: "happy", Lang: "fr", Word: "heureux"}, got)

	got, err = tr.Translate(ctx, "fr", "two sentences")
	require.NoError(t, err)
	assert.Equal(t, "Un. Deux.", got.Word)
	assert.Equal(t, "ung deu", got.Spell)

	_, err = tr.Translate(ctx, "fr", "garbage")
	assert.Error(t, err)

	_, err = tr.Translate(ctx, "fr", "limited")
	assert.Error(t, err)
}

func TestRemote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/translate/ice cream/to/fr":
			_, _ = w.Write([]byte("glace\n"))
		case "/translate/empty/to/fr":
		default:
			http.Error(w, "unknown", http.StatusNotFound)
		}
	}))
	defer srv.Close()

	tr := NewRemote(srv.URL + "/")
	ctx := context.Background()

	got, err := tr.Translate(ctx, "fr", "ice cream")
	require.NoError(t, err)
	assert.Equal(t, "glace", got.Word)
	assert.Equal(t, "ice cream", got.Original)

	_, err = tr.Translate(ctx, "fr", "empty")
	assert.Error(t, err)

	_, err = tr.Translate(ctx, "de", "ice cream")
	assert.Error(t, err)
}

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trans")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0755))
	return path
}

func TestShell(t *testing.T) {
	script := writeScript(t, `
if [ "$1" = "-S" ]; then
  printf '  aspell\n  bing\n* google\n  yandex\n'
  exit 0
fi
if [ "$2" = "bing" ]; then
  echo "bing is down" >&2
  exit 1
fi
echo "[$2] $6"
`)
	tr, err := NewShell(context.Background(), script)
	require.NoError(t, err)

	engines := tr.(*shellTranslator).Engines()
	assert.Equal(t, "google", engines[0])
	assert.ElementsMatch(t, []string{"google", "bing", "yandex"}, engines)

	got, err := tr.Translate(context.Background(), "fr", "happy")
	require.NoError(t, err)
	assert.Equal(t, "[google] happy", got.Word)
	assert.Equal(t, "fr", got.Lang)
}

func TestShell_NoEngines(t *testing.T) {
	script := writeScript(t, "exit 0\n")
	_, err := NewShell(context.Background(), script)
	assert.Error(t, err)
}

func TestSanitize(t *testing.T) {
	cache := memstorage.New()
	put := func(key string, tr Translation) {
		data, err := json.Marshal(tr)
		require.NoError(t, err)
		require.NoError(t, cache.Put([]byte(key), data))
	}
	put("fr:happy", Translation{Original: "happy", Lang: "fr", Word: "heureux"})
	put("fr:sad", Translation{Original: "sad", Lang: "fr", Word: ""})
	put("hi:sad", Translation{Original: "sad", Lang: "hi", Word: "\x1b[1mदुखी"})
	require.NoError(t, cache.Put([]byte("hi:broken"), []byte("{")))

	stats, err := Sanitize(cache)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"fr": 1, "hi": 2}, stats)

	_, err = cache.Get([]byte("fr:happy"))
	assert.NoError(t, err)
	_, err = cache.Get([]byte("fr:sad"))
	assert.Error(t, err)
}
