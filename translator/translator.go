package translator

import (
	"context"
	"io"
)

// Translator turns a single text into the destination language.
type Translator interface {
	io.Closer
	Translate(ctx context.Context, lang string, text string) (*Translation, error)
}

type Translation struct {
	Original string `json:"original"`
	Lang     string `json:"lang"`
	Word     string `json:"word"`
	Spell    string `json:"spell,omitempty"`
}
