package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/xavierca1/vital-sales-pro/internal/phone"
)

const DefaultBaseURL = "https://graph.facebook.com/v18.0"

var ErrNotConfigured = errors.New("whatsapp não configurado")

type Client struct {
	accessToken string
	phoneID     string
	baseURL     string
	region      string
	httpClient  *http.Client
	logger      *slog.Logger
}

func NewClient(accessToken, phoneID, baseURL string, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		accessToken: accessToken,
		phoneID:     phoneID,
		baseURL:     baseURL,
		region:      phone.DefaultRegion,
		httpClient:  &http.Client{Timeout: 15 * time.Second},
		logger:      logger,
	}
}

func (c *Client) Configured() bool {
	return c.accessToken != "" && c.phoneID != ""
}

// SendText delivers a plain text message to the lead's phone.
func (c *Client) SendText(ctx context.Context, rawPhone, text string) error {
	if !c.Configured() {
		c.logger.Warn("whatsapp: ACCESS_TOKEN ou PHONE_ID não configurados")
		return ErrNotConfigured
	}

	to, err := phone.WhatsAppID(rawPhone, c.region)
	if err != nil {
		return fmt.Errorf("whatsapp: %w", err)
	}

	body, err := json.Marshal(sendTextRequest{
		MessagingProduct: "whatsapp",
		RecipientType:    "individual",
		To:               to,
		Type:             "text",
		Text:             textBody{Body: text},
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/%s/messages", c.baseURL, c.phoneID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.accessToken))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("whatsapp: erro ao enviar mensagem", "error", err)
		return err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		c.logger.Error("whatsapp: API retornou erro", "status", resp.StatusCode, "body", string(respBody))
		return fmt.Errorf("whatsapp api error: %d", resp.StatusCode)
	}

	var result SendMessageResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return fmt.Errorf("whatsapp: resposta inválida: %w", err)
	}
	if result.Error != nil {
		return fmt.Errorf("whatsapp: %s (code %d)", result.Error.Message, result.Error.Code)
	}

	c.logger.Info("whatsapp: mensagem enviada", "to", to)
	return nil
}
