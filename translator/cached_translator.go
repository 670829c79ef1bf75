package translator

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"github.com/reddec/storages"
)

func NewCached(wrap Translator, cache storages.Storage) Translator {
	return &cachedTranslator{
		logger:  log.New(os.Stderr, "[cache] ", log.LstdFlags),
		cache:   cache,
		wrapped: wrap,
	}
}

type cachedTranslator struct {
	cache   storages.Storage
	wrapped Translator
	logger  *log.Logger
}

func (ct *cachedTranslator) Close() error {
	_ = ct.cache.Close()
	return ct.wrapped.Close()
}

func cacheKey(lang, text string) []byte {
	return []byte(lang + ":" + text)
}

func (ct *cachedTranslator) Translate(ctx context.Context, lang string, text string) (*Translation, error) {
	key := cacheKey(lang, text)
	if value, err := ct.cache.Get(key); err == nil {
		var tr *Translation
		if err := json.Unmarshal(value, &tr); err == nil && tr != nil && tr.Original != "" && tr.Word != "" {
			return tr, nil
		}
		ct.logger.Println("dropping bad cache entry", string(key))
		_ = ct.cache.Del(key)
	}
	tr, err := ct.wrapped.Translate(ctx, lang, text)
	if err != nil {
		return nil, err
	}
	value, err := json.Marshal(tr)
	if err != nil {
		ct.logger.Println("failed marshal translation:", err)
		return nil, err
	}

	if err = ct.cache.Put(key, value); err != nil {
		ct.logger.Println("failed save to cache translation:", err)
	}
	return tr, nil
}
