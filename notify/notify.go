// Package notify batches operator notifications and ships them to Telegram.
package notify

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"gopkg.in/telegram-bot-api.v4"
)

// Sender delivers one merged batch of messages.
type Sender interface {
	Send(text string) error
}

type Notifier struct {
	sender   Sender
	interval time.Duration
	queue    chan string
	logger   *log.Logger
}

// New creates a Notifier flushing every interval. A nil sender only logs.
func New(sender Sender, interval time.Duration) *Notifier {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Notifier{
		sender:   sender,
		interval: interval,
		queue:    make(chan string, 128),
		logger:   log.New(os.Stderr, "[notify] ", log.LstdFlags),
	}
}

func (n *Notifier) Info(message string) {
	n.push(fmt.Sprint("[info] ", message))
}

func (n *Notifier) Error(message string) {
	n.push(fmt.Sprint("[error] ", message))
}

// push never blocks the caller; messages over the queue size are dropped.
func (n *Notifier) push(msg string) {
	select {
	case n.queue <- msg:
	default:
		n.logger.Println("queue is full, dropped:", msg)
	}
}

// Run merges queued messages and sends them every interval until ctx is
// done. A batch that failed to send is kept for the next tick.
func (n *Notifier) Run(ctx context.Context) {
	var batch []string
	ticker := time.NewTicker(n.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			if len(batch) > 0 {
				n.flush(batch)
			}
			return
		case msg := <-n.queue:
			n.logger.Println(msg)
			batch = append(batch, msg)
		case <-ticker.C:
			if len(batch) == 0 {
				continue
			}
			if n.flush(batch) {
				batch = nil
			}
		}
	}
}

func (n *Notifier) flush(batch []string) bool {
	if n.sender == nil {
		return true // >> /dev/null
	}
	if err := n.sender.Send(strings.Join(batch, "\n")); err != nil {
		n.logger.Println("failed send notification batch:", err)
		return false
	}
	n.logger.Println("notification batch sent")
	return true
}

// Telegram posts batches into a single chat.
type Telegram struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegram(token string, chatID int64) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &Telegram{bot: bot, chatID: chatID}, nil
}

func (t *Telegram) Send(text string) error {
	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.DisableWebPagePreview = true
	_, err := t.bot.Send(msg)
	return err
}
