package translator

import (
	"context"
	"encoding/json"
	"log"
	"net/url"
	"os"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

const DefaultGoogleURL = "https://translate.googleapis.com"

// NewGoogle uses the public gtx endpoint of Google Translate. The source
// language is detected by the service.
func NewGoogle(baseURL string) Translator {
	if baseURL == "" {
		baseURL = DefaultGoogleURL
	}
	return &googleTranslator{
		client: resty.New().
			SetBaseURL(strings.TrimSuffix(baseURL, "/")).
			SetHeader("User-Agent", "Mozilla/5.0"),
		logger: log.New(os.Stderr, "[google] ", log.LstdFlags),
	}
}

type googleTranslator struct {
	client *resty.Client
	logger *log.Logger
}

func (gt *googleTranslator) Close() error {
	return nil
}

func (gt *googleTranslator) Translate(ctx context.Context, lang string, text string) (*Translation, error) {
	res, err := gt.client.R().
		SetContext(ctx).
		SetQueryParam("client", "gtx").
		SetQueryParam("sl", "auto").
		SetQueryParam("tl", lang).
		SetQueryParam("q", text).
		SetQueryParamsFromValues(url.Values{"dt": {"t", "rm"}}).
		Get("/translate_a/single")
	if err != nil {
		gt.logger.Println("failed:", err)
		return nil, errors.Wrap(err, "google translate")
	}
	if res.IsError() {
		gt.logger.Println("failed:", res.Status())
		return nil, errors.Errorf("google translate: %s", res.Status())
	}
	tr, err := parseGoogleReply(res.Body())
	if err != nil {
		return nil, errors.Wrap(err, "google translate")
	}
	tr.Original = text
	tr.Lang = lang
	return tr, nil
}

// parseGoogleReply reads the first element of the reply: a list of segments
// where [translated, original, ...] carries text and
// [null, null, transliteration, ...] carries spelling.
func parseGoogleReply(body []byte) (*Translation, error) {
	var reply []json.RawMessage
	if err := json.Unmarshal(body, &reply); err != nil {
		return nil, errors.Wrap(err, "decode reply")
	}
	if len(reply) == 0 {
		return nil, errors.New("empty reply")
	}
	var segments [][]interface{}
	if err := json.Unmarshal(reply[0], &segments); err != nil {
		return nil, errors.Wrap(err, "decode segments")
	}
	var word strings.Builder
	tr := &Translation{}
	for _, seg := range segments {
		if len(seg) == 0 {
			continue
		}
		if s, ok := seg[0].(string); ok {
			word.WriteString(s)
			continue
		}
		if len(seg) > 2 {
			if s, ok := seg[2].(string); ok && tr.Spell == "" {
				tr.Spell = s
			}
		}
	}
	tr.Word = strings.TrimSpace(word.String())
	if tr.Word == "" {
		return nil, errors.New("no translated text in reply")
	}
	return tr, nil
}
