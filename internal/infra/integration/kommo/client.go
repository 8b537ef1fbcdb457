package kommo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/xavierca1/vital-sales-pro/internal/entity"
	"github.com/xavierca1/vital-sales-pro/internal/phone"
)

var ErrNotConfigured = errors.New("kommo não configurado")

type Client struct {
	apiToken   string
	baseURL    string
	statusID   int
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient builds the CRM client. statusID is the pipeline stage new leads
// land in; 0 leaves it to the account default.
func NewClient(apiToken, baseURL string, statusID int, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		apiToken:   apiToken,
		baseURL:    baseURL,
		statusID:   statusID,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logger,
	}
}

func (c *Client) Configured() bool {
	return c.apiToken != "" && c.baseURL != ""
}

// InputFromLead maps a dashboard lead to the CRM payload.
func InputFromLead(l entity.Lead) CreateLeadInput {
	p := l.Phone
	if e164, err := phone.NormalizeE164(l.Phone, phone.DefaultRegion); err == nil {
		p = e164
	}
	return CreateLeadInput{
		Name:     l.Name,
		Phone:    p,
		Interest: l.Interest,
		Status:   string(l.Status),
		Source:   string(l.Source),
		Score:    l.Score,
		Notes:    l.History,
	}
}

// CreateLead finds (by phone) or creates the contact and opens a lead linked to it.
func (c *Client) CreateLead(ctx context.Context, input CreateLeadInput) (int, error) {
	if !c.Configured() {
		c.logger.Warn("kommo: API_TOKEN não configurado")
		return 0, ErrNotConfigured
	}

	contactID, err := c.findOrCreateContact(ctx, input)
	if err != nil {
		return 0, fmt.Errorf("erro ao criar/buscar contato: %w", err)
	}

	lead := map[string]any{
		"name": fmt.Sprintf("%s - %s", input.Name, input.Interest),
		"_embedded": map[string]any{
			"tags": []map[string]any{
				{"name": "lead_" + input.Status},
				{"name": "origem_" + input.Source},
			},
			"contacts": []map[string]any{
				{"id": contactID},
			},
		},
	}
	if c.statusID > 0 {
		lead["status_id"] = c.statusID
	}

	var result embeddedIDs
	if err := c.post(ctx, "/leads", []map[string]any{lead}, &result); err != nil {
		return 0, fmt.Errorf("erro ao criar lead: %w", err)
	}
	if len(result.Embedded.Leads) == 0 {
		return 0, fmt.Errorf("lead não criado")
	}

	leadID := result.Embedded.Leads[0].ID
	c.logger.Info("kommo: lead criado", "kommo_id", leadID, "name", input.Name)
	return leadID, nil
}

// SyncLead mirrors a dashboard lead into the CRM.
func (c *Client) SyncLead(ctx context.Context, lead entity.Lead) error {
	_, err := c.CreateLead(ctx, InputFromLead(lead))
	return err
}

func (c *Client) findOrCreateContact(ctx context.Context, input CreateLeadInput) (int, error) {
	if input.Phone != "" {
		contactID, err := c.findContactByPhone(ctx, input.Phone)
		if err == nil && contactID > 0 {
			c.logger.Info("kommo: contato existente encontrado", "contact_id", contactID)
			return contactID, nil
		}
	}
	return c.createContact(ctx, input)
}

func (c *Client) findContactByPhone(ctx context.Context, p string) (int, error) {
	endpoint := fmt.Sprintf("%s/contacts?query=%s", c.baseURL, url.QueryEscape(p))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, err
	}
	c.addAuthHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	// Kommo responde 204 quando a busca não encontra nada.
	if resp.StatusCode == http.StatusNoContent {
		return 0, fmt.Errorf("contato não encontrado")
	}

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("erro ao buscar contato: %d", resp.StatusCode)
	}

	var result embeddedIDs
	if err := json.Unmarshal(body, &result); err != nil {
		return 0, err
	}
	if len(result.Embedded.Contacts) > 0 {
		return result.Embedded.Contacts[0].ID, nil
	}
	return 0, fmt.Errorf("contato não encontrado")
}

func (c *Client) createContact(ctx context.Context, input CreateLeadInput) (int, error) {
	contact := map[string]any{"name": input.Name}
	if input.Phone != "" {
		contact["custom_fields_values"] = []map[string]any{
			{
				"field_code": "PHONE",
				"values": []map[string]any{
					{"value": input.Phone, "enum_code": "WORK"},
				},
			},
		}
	}

	var result embeddedIDs
	if err := c.post(ctx, "/contacts", []map[string]any{contact}, &result); err != nil {
		return 0, fmt.Errorf("erro ao criar contato: %w", err)
	}
	if len(result.Embedded.Contacts) == 0 {
		return 0, fmt.Errorf("erro ao obter ID do contato criado")
	}

	contactID := result.Embedded.Contacts[0].ID
	c.logger.Info("kommo: novo contato criado", "contact_id", contactID)
	return contactID, nil
}

func (c *Client) post(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	c.addAuthHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("%d - %s", resp.StatusCode, string(respBody))
	}
	return json.Unmarshal(respBody, out)
}

func (c *Client) addAuthHeaders(req *http.Request) {
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiToken))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
}
