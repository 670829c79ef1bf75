package translator

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/avast/retry-go"
)

// NewRetry repeats failed translations up to retries extra times with
// exponential backoff. Zero retries returns wrap itself.
func NewRetry(wrap Translator, retries uint, delay time.Duration) Translator {
	if retries == 0 {
		return wrap
	}
	return &retryTranslator{
		wrapped: wrap,
		retries: retries,
		delay:   delay,
		logger:  log.New(os.Stderr, "[retry] ", log.LstdFlags),
	}
}

type retryTranslator struct {
	wrapped Translator
	retries uint
	delay   time.Duration
	logger  *log.Logger
}

func (rt *retryTranslator) Close() error {
	return rt.wrapped.Close()
}

func (rt *retryTranslator) Translate(ctx context.Context, lang string, text string) (*Translation, error) {
	var result *Translation
	err := retry.Do(
		func() error {
			tr, err := rt.wrapped.Translate(ctx, lang, text)
			if err != nil {
				return err
			}
			result = tr
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(rt.retries+1),
		retry.Delay(rt.delay),
		retry.LastErrorOnly(true),
		retry.DelayType(retry.BackOffDelay),
		retry.OnRetry(func(n uint, err error) {
			rt.logger.Println("attempt", n+1, "for", text, "to", lang, "failed:", err)
		}),
	)
	if err != nil {
		return nil, err
	}
	return result, nil
}
