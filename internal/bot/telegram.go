package bot

import (
	"fmt"
	"log"
	"strings"
	"time"

	"crypto-pulse/internal/domain"

	tele "gopkg.in/telebot.v3"
)

// SnapshotReader answers bot queries from the in-memory store; the bot
// never hits the upstream provider itself.
type SnapshotReader interface {
	Market() domain.MarketSnapshot
	Sentiment() domain.SentimentSnapshot
}

// StartTelegramBot starts the Telegram bot if a token is configured.
func StartTelegramBot(token string, snapshots SnapshotReader) {
	if token == "" {
		log.Println("TELEGRAM_BOT_TOKEN not set, skipping Telegram bot startup")
		return
	}
	pref := tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}
	b, err := tele.NewBot(pref)
	if err != nil {
		log.Printf("failed to create Telegram bot: %v", err)
		return
	}

	b.Handle("/ping", func(c tele.Context) error {
		return c.Send("pong")
	})

	b.Handle("/price", func(c tele.Context) error {
		symbol, errMsg := parseSymbolArg(c.Args(), "/price BTC")
		if errMsg != "" {
			return c.Send(errMsg)
		}
		record, ok := snapshots.Market()[symbol]
		if !ok {
			return c.Send(fmt.Sprintf("No price data for %s yet, try again shortly", symbol))
		}
		return c.Send(fmt.Sprintf(
			"%s (%s)\nPrice: $%.2f\n24h Change: %.2f%%\nMarket Cap: $%.0f\n24h Volume: $%.0f",
			record.Name, record.Symbol, record.Price, record.Change24hPct, record.MarketCap, record.Volume24h,
		))
	})

	b.Handle("/sentiment", func(c tele.Context) error {
		symbol, errMsg := parseSymbolArg(c.Args(), "/sentiment BTC")
		if errMsg != "" {
			return c.Send(errMsg)
		}
		record, ok := snapshots.Sentiment()[symbol]
		if !ok {
			return c.Send(fmt.Sprintf("No sentiment data for %s yet, try again shortly", symbol))
		}
		return c.Send(fmt.Sprintf(
			"%s sentiment\nOverall: %.3f\nTrend: %.3f\nPositive: %d  Negative: %d  Neutral: %d\nVolume: %d posts",
			record.Symbol, record.Overall, record.Trend, record.Positive, record.Negative, record.Neutral, record.Volume,
		))
	})

	log.Println("Telegram bot started")
	go b.Start()
}

func parseSymbolArg(args []string, usage string) (string, string) {
	supported := strings.Join(domain.SupportedSymbols, ", ")
	if len(args) == 0 {
		return "", fmt.Sprintf("Usage: %s\nSupported: %s", usage, supported)
	}
	symbol := strings.ToUpper(args[0])
	if !domain.IsSupported(symbol) {
		return "", fmt.Sprintf("Unknown symbol: %s\nSupported: %s", symbol, supported)
	}
	return symbol, ""
}
