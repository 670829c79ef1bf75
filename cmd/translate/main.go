package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/reddec/storages"
	"github.com/reddec/storages/memstorage"

	"word-translate-backend/languages"
	"word-translate-backend/lexicon"
	"word-translate-backend/notify"
	"word-translate-backend/server"
	"word-translate-backend/storage"
	"word-translate-backend/translator"
	"word-translate-backend/worddetails"
)

var logger = log.New(os.Stderr, "[main] ", log.LstdFlags)

func main() {
	// .env is optional, variables may come from the environment itself
	_ = godotenv.Load()
	cfg, err := parseConfig(os.Args[1:])
	if err != nil {
		if fe, ok := err.(*flags.Error); ok && fe.Type == flags.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := run(cfg); err != nil {
		logger.Fatal(err)
	}
}

func run(cfg *Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	notifier := notify.New(newSender(cfg), cfg.ThrottleNotification)
	go notifier.Run(ctx)

	wn, err := lexicon.Open(cfg.WordNet)
	if err != nil {
		return errors.Wrap(err, "open wordnet")
	}
	defer wn.Close()
	if cfg.OMW != "" {
		if err := wn.LoadForeign(cfg.OMW); err != nil {
			return errors.Wrap(err, "load foreign sense indexes")
		}
	}
	if cfg.SenseLang != lexicon.English && !slices.Contains(wn.Languages(), cfg.SenseLang) {
		return errors.Errorf("sense language %q is not loaded", cfg.SenseLang)
	}

	tr, cache, err := buildTranslator(ctx, cfg)
	if err != nil {
		return err
	}
	defer tr.Close()
	if cache != nil {
		go sanitize(cache, notifier)
	}

	router := gin.Default()
	server.New(tr, worddetails.New(wn, tr, cfg.SenseLang), notifier).Register(router)

	srv := &http.Server{Addr: cfg.Listen, Handler: router}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	notifier.Info("word-translate backend started on " + cfg.Listen + " with " + strings.Join(cfg.Backends, ", "))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func newSender(cfg *Config) notify.Sender {
	if cfg.BotToken == "" {
		return nil
	}
	bot, err := notify.NewTelegram(cfg.BotToken, cfg.BotChatID)
	if err != nil {
		logger.Println("failed initialize telegram notifications:", err)
		return nil
	}
	logger.Println("telegram bot initialized")
	return bot
}

// buildTranslator stacks backends -> pool -> retry -> cache -> passthrough.
func buildTranslator(ctx context.Context, cfg *Config) (translator.Translator, storages.Storage, error) {
	var pool []translator.Translator
	for _, name := range cfg.Backends {
		switch name {
		case "google":
			pool = append(pool, translator.NewGoogle(cfg.GoogleURL))
		case "remote":
			pool = append(pool, translator.NewRemote(cfg.RemoteURL))
		case "shell":
			sh, err := translator.NewShell(ctx, cfg.Command)
			if err != nil {
				return nil, nil, errors.Wrap(err, "shell backend")
			}
			pool = append(pool, sh)
		default:
			return nil, nil, errors.Errorf("unknown backend %q", name)
		}
	}
	if len(pool) == 0 {
		return nil, nil, errors.New("no translation backend configured")
	}

	var tr translator.Translator
	if len(pool) == 1 {
		tr = pool[0]
	} else {
		strategy, err := translator.StrategyByName(cfg.Strategy)
		if err != nil {
			return nil, nil, err
		}
		tr = translator.NewPool(strategy, pool...)
	}
	tr = translator.NewRetry(tr, cfg.Retries, cfg.RetryDelay)

	cache, err := openCache(cfg)
	if err != nil {
		return nil, nil, err
	}
	if cache != nil {
		tr = translator.NewCached(tr, cache)
	}
	return translator.NewPassthrough(tr, languages.English), cache, nil
}

func openCache(cfg *Config) (storages.Storage, error) {
	switch cfg.Cache {
	case "memory":
		return memstorage.New(), nil
	case "redis":
		cache, err := storage.Dial(cfg.Redis, cfg.RedisNamespace)
		if err != nil {
			return nil, errors.Wrap(err, "redis cache")
		}
		return cache, nil
	}
	return nil, nil
}

func sanitize(cache storages.Storage, notifier *notify.Notifier) {
	stats, err := translator.Sanitize(cache)
	if err != nil {
		notifier.Error("cache cleanup failed: " + err.Error())
		return
	}
	removed := 0
	var text []string
	for lang, count := range stats {
		removed += count
		text = append(text, fmt.Sprint(lang, ": ", count, " removes"))
	}
	if removed > 0 {
		text = append([]string{fmt.Sprint("removed ", removed, " trashed translations")}, text...)
		notifier.Info(strings.Join(text, "\n"))
	}
}
