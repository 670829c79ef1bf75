package translator

import (
	"context"
	"log"
	"os"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

// NewRemote talks to another translate backend exposing
// GET /translate/:word/to/:lang with a plain text reply.
func NewRemote(baseURL string) Translator {
	return &remoteTranslator{
		client:  resty.New().SetBaseURL(strings.TrimSuffix(baseURL, "/")),
		baseURL: baseURL,
		logger:  log.New(os.Stderr, "["+baseURL+"] ", log.LstdFlags),
	}
}

type remoteTranslator struct {
	baseURL string
	client  *resty.Client
	logger  *log.Logger
}

func (rt *remoteTranslator) Close() error {
	return nil
}

func (rt *remoteTranslator) Translate(ctx context.Context, lang string, text string) (*Translation, error) {
	rt.logger.Println(lang, "=>", text)
	res, err := rt.client.R().
		SetContext(ctx).
		SetPathParams(map[string]string{"word": text, "lang": lang}).
		Get("/translate/{word}/to/{lang}")
	if err != nil {
		rt.logger.Println("failed:", err)
		return nil, errors.Wrap(err, "remote translate")
	}
	if res.IsError() {
		rt.logger.Println("failed:", res.Status()+" "+res.String())
		return nil, errors.Errorf("remote translate: %s %s", res.Status(), res.String())
	}
	word := strings.TrimSpace(res.String())
	if word == "" {
		return nil, errors.New("remote translate: empty reply")
	}
	return &Translation{
		Original: text,
		Lang:     lang,
		Word:     word,
	}, nil
}
