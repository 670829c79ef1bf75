package translator

import (
	"context"
)

// NewPassthrough answers requests targeting the source language with the
// text itself and forwards everything else.
func NewPassthrough(wrap Translator, source string) Translator {
	return &passthroughTranslator{wrapped: wrap, source: source}
}

type passthroughTranslator struct {
	wrapped Translator
	source  string
}

func (pt *passthroughTranslator) Close() error {
	return pt.wrapped.Close()
}

func (pt *passthroughTranslator) Translate(ctx context.Context, lang string, text string) (*Translation, error) {
	if lang == pt.source {
		return &Translation{Original: text, Lang: lang, Word: text}, nil
	}
	return pt.wrapped.Translate(ctx, lang, text)
}
