// Command pricebot is a small Telegram bot that answers price queries
// for token addresses using the same market data source as the agent.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"sniper-agent/internal/dexscreener"
)

const apiBase = "https://api.telegram.org"

const helpText = `Commands:
/snipe <address> - latest pair data for a token address
/help - this message`

type update struct {
	UpdateID int64 `json:"update_id"`
	Message  *struct {
		Text string `json:"text"`
		Chat struct {
			ID int64 `json:"id"`
		} `json:"chat"`
	} `json:"message"`
}

type updatesResponse struct {
	OK     bool     `json:"ok"`
	Result []update `json:"result"`
}

type bot struct {
	token  string
	client *http.Client
	market *dexscreener.Client
	logger *log.Logger
}

func main() {
	_ = godotenv.Load()

	logger := log.New(os.Stdout, "[pricebot] ", log.LstdFlags)

	token := os.Getenv("SNIPER_TELEGRAM_TOKEN")
	if token == "" {
		logger.Fatal("SNIPER_TELEGRAM_TOKEN is required")
	}

	b := &bot{
		token:  token,
		client: &http.Client{Timeout: 35 * time.Second},
		market: dexscreener.NewClient(),
		logger: logger,
	}

	logger.Println("Polling for updates")
	b.poll(context.Background())
}

// poll long-polls getUpdates and dispatches messages forever.
func (b *bot) poll(ctx context.Context) {
	var offset int64
	for {
		updates, err := b.getUpdates(ctx, offset)
		if err != nil {
			b.logger.Printf("get updates: %v", err)
			time.Sleep(5 * time.Second)
			continue
		}

		for _, u := range updates {
			offset = u.UpdateID + 1
			if u.Message == nil {
				continue
			}
			b.handle(ctx, u.Message.Chat.ID, u.Message.Text)
		}
	}
}

func (b *bot) getUpdates(ctx context.Context, offset int64) ([]update, error) {
	url := fmt.Sprintf("%s/bot%s/getUpdates?timeout=30&offset=%d", apiBase, b.token, offset)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out updatesResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode updates: %w", err)
	}
	if !out.OK {
		return nil, fmt.Errorf("telegram returned not ok")
	}
	return out.Result, nil
}

func (b *bot) handle(ctx context.Context, chatID int64, text string) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return
	}

	switch fields[0] {
	case "/start", "/help":
		b.reply(ctx, chatID, helpText)
	case "/snipe", "/price":
		if len(fields) < 2 {
			b.reply(ctx, chatID, "usage: /snipe <address>")
			return
		}
		b.reply(ctx, chatID, b.priceReport(ctx, fields[1]))
	}
}

// priceReport formats the primary pair for an address.
func (b *bot) priceReport(ctx context.Context, address string) string {
	snaps, err := b.market.Pairs(ctx, address)
	if err != nil {
		b.logger.Printf("pairs for %s: %v", address, err)
		return "market data unavailable, try again later"
	}
	if len(snaps) == 0 {
		return "no trading pairs found for " + address
	}

	s := snaps[0]
	return fmt.Sprintf("%s (%s)\nprice: $%s\n24h volume: $%s\nliquidity: $%s\npair: %s",
		s.TokenName, s.Symbol, s.PriceUSD, s.Volume24hUSD, s.LiquidityUSD, s.PairAddress)
}

func (b *bot) reply(ctx context.Context, chatID int64, text string) {
	payload := map[string]any{
		"chat_id": chatID,
		"text":    text,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		b.logger.Printf("marshal reply: %v", err)
		return
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", apiBase, b.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		b.logger.Printf("create reply request: %v", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		b.logger.Printf("send reply: %v", err)
		return
	}
	resp.Body.Close()
}
