package mail

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/xavierca1/vital-sales-pro/internal/entity"
)

var ErrNoRecipients = errors.New("nenhum destinatário configurado para alertas")

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

var hotLeadTemplate = template.Must(template.New("hot_lead").Parse(`<!DOCTYPE html>
<html lang="pt-BR">
<body style="font-family: Arial, sans-serif; color: #1f2937;">
  <h2>🔥 Novo lead quente: {{.Name}}</h2>
  <table cellpadding="6">
    <tr><td><strong>Score</strong></td><td>{{.Score}}/100</td></tr>
    <tr><td><strong>Telefone</strong></td><td>{{.Phone}}</td></tr>
    <tr><td><strong>Interesse</strong></td><td>{{.Interest}}</td></tr>
    <tr><td><strong>Origem</strong></td><td>{{.Source}}</td></tr>
    <tr><td><strong>Histórico</strong></td><td>{{.History}}</td></tr>
  </table>
  {{if .DashboardURL}}<p><a href="{{.DashboardURL}}">Abrir no dashboard</a></p>{{end}}
</body>
</html>`))

// NewEmailSender builds the SMTP alert sender. to is a comma separated list.
func NewEmailSender(host string, port int, user, password, from, to string) *EmailSender {
	s := &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
	}
	for _, addr := range strings.Split(to, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			s.To = append(s.To, addr)
		}
	}
	s.dialer = gomail.NewDialer(host, port, user, password)
	return s
}

func (s *EmailSender) Configured() bool {
	return s.Host != "" && len(s.To) > 0
}

// SendHotLeadAlert tells the sales team a hot lead just entered the list.
func (s *EmailSender) SendHotLeadAlert(lead entity.Lead, dashboardURL string) error {
	if len(s.To) == 0 {
		return ErrNoRecipients
	}

	data := HotLeadEmailData{
		ID:           lead.ID,
		Name:         lead.Name,
		Phone:        lead.Phone,
		Score:        lead.Score,
		Interest:     lead.Interest,
		History:      lead.History,
		Source:       string(lead.Source),
		DashboardURL: dashboardURL,
	}

	var body bytes.Buffer
	if err := hotLeadTemplate.Execute(&body, data); err != nil {
		return fmt.Errorf("erro ao processar template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", s.To...)
	m.SetHeader("Subject", fmt.Sprintf("🔥 Lead quente: %s (score %d)", lead.Name, lead.Score))
	m.SetBody("text/html", body.String())

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}

	return nil
}
