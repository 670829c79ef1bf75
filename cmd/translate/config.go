package main

import (
	"strings"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"

	"word-translate-backend/languages"
)

type Config struct {
	Listen               string        `long:"listen" env:"LISTEN" description:"Address to listen" default:":8888"`
	WordNet              string        `long:"wordnet-dir" env:"WORDNET_DIR" description:"WordNet dict directory" default:"wordnet/dict"`
	OMW                  string        `long:"omw-dir" env:"OMW_DIR" description:"Directory with Open Multilingual Wordnet wn-data-*.tab files"`
	SenseLang            string        `long:"sense-lang" env:"SENSE_LANG" description:"Sense index used for synonyms of non-English targets (language name, ISO 639-1 or 639-3 code)" default:"eng"`
	Backends             []string      `long:"backend" env:"BACKENDS" env-delim:"," description:"Translation backends, tried in pool order" choice:"google" choice:"remote" choice:"shell" default:"google"`
	Strategy             string        `long:"pool-strategy" env:"POOL_STRATEGY" description:"Order of backends in the pool" choice:"straight" choice:"random" default:"straight"`
	GoogleURL            string        `long:"google-url" env:"GOOGLE_URL" description:"Google Translate endpoint" default:"https://translate.googleapis.com"`
	RemoteURL            string        `long:"remote-url" env:"REMOTE_URL" description:"Base URL of a peer translate backend"`
	Command              string        `long:"command" env:"COMMAND" description:"translate-shell binary" default:"/usr/bin/trans"`
	Retries              uint          `long:"retries" env:"RETRIES" description:"Extra attempts for a failed translation" default:"0"`
	RetryDelay           time.Duration `long:"retry-delay" env:"RETRY_DELAY" description:"Initial delay between attempts" default:"200ms"`
	Cache                string        `long:"cache" env:"CACHE" description:"Translation cache" choice:"none" choice:"memory" choice:"redis" default:"memory"`
	Redis                string        `long:"redis-url" env:"REDIS_URL" description:"Redis database" default:"redis://redis:6379/1"`
	RedisNamespace       string        `long:"redis-namespace" env:"REDIS_NAMESPACE" description:"Redis hash holding translations" default:"translations"`
	BotToken             string        `long:"tg-token" env:"TG_TOKEN" description:"Telegram BOT API token for notifications"`
	BotChatID            int64         `long:"tg-chat-id" env:"TG_CHAT_ID" description:"Telegram chat ID"`
	ThrottleNotification time.Duration `long:"notification-interval" env:"NOTIFICATION_INTERVAL" description:"Merge notifications to one message during this time" default:"1m"`
}

func parseConfig(args []string) (*Config, error) {
	var cfg Config
	if _, err := flags.ParseArgs(&cfg, args); err != nil {
		return nil, err
	}
	for _, backend := range cfg.Backends {
		if backend == "remote" && cfg.RemoteURL == "" {
			return nil, errors.New("remote backend requires --remote-url")
		}
	}
	sense, err := senseLanguage(cfg.SenseLang)
	if err != nil {
		return nil, err
	}
	cfg.SenseLang = sense
	return &cfg, nil
}

// senseLanguage resolves a table name or language code to the ISO 639-3
// code that keys the sense indexes.
func senseLanguage(value string) (string, error) {
	if code, ok := languages.Lookup(value); ok {
		value = code
	}
	iso3, err := languages.ISO3(strings.TrimSpace(value))
	if err != nil {
		return "", errors.Wrap(err, "sense language")
	}
	return iso3, nil
}
