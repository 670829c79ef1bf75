package translator

import (
	"bytes"
	"encoding/json"
	"unicode"

	"github.com/pkg/errors"
	"github.com/reddec/storages"
)

// Sanitize drops cached translations whose word is empty or holds non-graphic
// runes. It returns the number of removed entries per language.
func Sanitize(cache storages.Storage) (map[string]int, error) {
	var keys [][]byte
	err := cache.Keys(func(key []byte) error {
		keys = append(keys, append([]byte(nil), key...))
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "iterate cache")
	}
	var bad [][]byte
	for _, key := range keys {
		value, err := cache.Get(key)
		if err != nil {
			continue
		}
		if !validCached(value) {
			bad = append(bad, key)
		}
	}
	stats := make(map[string]int)
	for _, key := range bad {
		if err := cache.Del(key); err != nil {
			return stats, errors.Wrapf(err, "delete %s", key)
		}
		lang := string(key)
		if i := bytes.IndexByte(key, ':'); i >= 0 {
			lang = string(key[:i])
		}
		stats[lang]++
	}
	return stats, nil
}

func validCached(value []byte) bool {
	var tr Translation
	if err := json.Unmarshal(value, &tr); err != nil {
		return false
	}
	if tr.Word == "" {
		return false
	}
	for _, char := range tr.Word {
		if !unicode.IsGraphic(char) {
			return false
		}
	}
	return true
}
