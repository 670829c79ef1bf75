package translator

import (
	"bytes"
	"context"
	"io"
	"log"
	"os"
	"os/exec"
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

// NewShell drives the translate-shell binary. Available engines are listed once
// on creation; google goes first and aspell is skipped.
func NewShell(ctx context.Context, binary string) (Translator, error) {
	tr := &shellTranslator{
		binary: binary,
		logger: log.New(os.Stderr, "[translator] ", log.LstdFlags),
	}
	engines, err := tr.listEngines(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list translate-shell engines")
	}
	if len(engines) == 0 {
		return nil, errors.Errorf("%s reported no engines", binary)
	}
	tr.engines = engines
	return tr, nil
}

type shellTranslator struct {
	engines []string
	binary  string
	logger  *log.Logger
}

func (t *shellTranslator) Engines() []string {
	return t.engines
}

func (t *shellTranslator) Close() error { return nil }

func (t *shellTranslator) Translate(ctx context.Context, lang string, text string) (*Translation, error) {
	for _, engine := range t.engines {
		tr, err := t.translateWithEngine(ctx, engine, lang, text)
		if err == nil {
			return tr, nil
		}
		t.logger.Println("translate by", engine, "failed:", err)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}
	return nil, errors.Errorf("failed to translate %v to language %v by any engine", text, lang)
}

func (t *shellTranslator) translateWithEngine(ctx context.Context, engine, lang, text string) (*Translation, error) {
	const (
		brief     = "-b"
		no_colors = "-no-ansi"
	)
	out := &bytes.Buffer{}
	combined := &bytes.Buffer{}
	args := []string{"-e", engine, brief, no_colors, ":" + lang, text}
	t.logger.Println(t.binary, strings.Join(args, " "))
	cmd := exec.CommandContext(ctx, t.binary, args...)
	cmd.Stdout = io.MultiWriter(out, combined)
	cmd.Stderr = combined
	if err := cmd.Run(); err != nil {
		return nil, errors.Wrap(err, strings.TrimSpace(combined.String()))
	}
	word := strings.TrimSpace(printable(out.String()))
	if word == "" {
		return nil, errors.New("empty reply from " + engine)
	}
	return &Translation{
		Original: text,
		Lang:     lang,
		Word:     word,
	}, nil
}

func printable(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) || r == '\n' {
			return r
		}
		return -1
	}, s)
}

func (t *shellTranslator) listEngines(ctx context.Context) ([]string, error) {
	cmd := exec.CommandContext(ctx, t.binary, "-S", "-no-ansi")
	data, err := cmd.CombinedOutput()
	if err != nil {
		return nil, err
	}
	var engines []string
	for _, line := range strings.Fields(printable(string(data))) {
		line = strings.Replace(line, "*", "", -1)
		if len(line) < 3 || line == "aspell" {
			continue
		}
		engines = append(engines, line)
		if line == "google" {
			n := len(engines) - 1
			engines[0], engines[n] = engines[n], engines[0] //move google to first
		}
	}
	return engines, nil
}
