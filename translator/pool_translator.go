package translator

import (
	"context"
	"math/rand"

	"github.com/pkg/errors"
)

type Strategy interface {
	Gen(pool []Translator) []Translator
}

type StraightForward struct{}

func (*StraightForward) Gen(pool []Translator) []Translator {
	return pool
}

type Random struct{}

func (*Random) Gen(pool []Translator) []Translator {
	cp := make([]Translator, len(pool))
	copy(cp, pool)
	rand.Shuffle(len(cp), func(i, j int) {
		cp[i], cp[j] = cp[j], cp[i]
	})
	return cp
}

// StrategyByName resolves "straight" or "random".
func StrategyByName(name string) (Strategy, error) {
	switch name {
	case "", "straight":
		return &StraightForward{}, nil
	case "random":
		return &Random{}, nil
	}
	return nil, errors.Errorf("unknown pool strategy %q", name)
}

func NewPool(strategy Strategy, pool ...Translator) Translator {
	return &poolTranslator{
		pool:     pool,
		strategy: strategy,
	}
}

type poolTranslator struct {
	pool     []Translator
	strategy Strategy
}

func (p *poolTranslator) Close() error {
	var first error
	for _, trans := range p.pool {
		if err := trans.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (p *poolTranslator) Translate(ctx context.Context, lang string, text string) (*Translation, error) {
	var last error
	for _, trans := range p.strategy.Gen(p.pool) {
		tr, err := trans.Translate(ctx, lang, text)
		if err == nil {
			return tr, nil
		}
		last = err
		if ctx.Err() != nil {
			break
		}
	}
	if last == nil {
		return nil, errors.New("no suitable translator available")
	}
	return nil, errors.Wrap(last, "no suitable translator available")
}
