// Package messaging avisos al dueño del negocio por chat (Telegram Bot API).
package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jhoicas/tienda-api/internal/application/ports"
	"github.com/jhoicas/tienda-api/internal/domain"
)

var (
	_ ports.Notifier = (*TelegramNotifier)(nil)
	_ ports.Notifier = NopNotifier{}
)

// TelegramNotifier envía mensajes a un chat fijo.
type TelegramNotifier struct {
	baseURL    string
	token      string
	chatID     string
	httpClient *http.Client
}

// NewTelegramNotifier construye el adaptador.
func NewTelegramNotifier(baseURL, token, chatID string, timeout time.Duration) *TelegramNotifier {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &TelegramNotifier{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		chatID:     chatID,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type sendMessageRequest struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

type botResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

func (n *TelegramNotifier) Notify(ctx context.Context, text string) error {
	body, err := json.Marshal(sendMessageRequest{ChatID: n.chatID, Text: text})
	if err != nil {
		return fmt.Errorf("serializar mensaje: %w", err)
	}
	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", n.baseURL, n.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("crear HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		// el error de net/http incluye la URL con el token
		return domain.Upstream("mensajeria", "sendMessage", errors.New("llamada HTTP fallida"))
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 16*1024))
	var br botResponse
	if err := json.Unmarshal(raw, &br); err != nil || !br.OK {
		if br.Description == "" {
			br.Description = fmt.Sprintf("HTTP %d", resp.StatusCode)
		}
		return domain.Upstream("mensajeria", "sendMessage", errors.New(br.Description))
	}
	return nil
}

// NopNotifier descarta los mensajes (bot no configurado).
type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, string) error { return nil }
