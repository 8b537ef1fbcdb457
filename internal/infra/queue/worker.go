package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/vital-sales-pro/internal/entity"
	"github.com/xavierca1/vital-sales-pro/internal/infra/metrics"
)

// LeadSyncer pushes a new lead into the CRM.
type LeadSyncer interface {
	SyncLead(ctx context.Context, lead entity.Lead) error
}

// HotLeadNotifier alerts the sales team about a hot lead.
type HotLeadNotifier interface {
	SendHotLeadAlert(lead entity.Lead, dashboardURL string) error
}

type consumer interface {
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

type Worker struct {
	Channel      consumer
	CRM          LeadSyncer
	Alerts       HotLeadNotifier
	DashboardURL string
	Logger       *slog.Logger
}

// NewWorker wires the lead event consumer. crm and alerts may be nil when the
// integration is not configured.
func NewWorker(ch *amqp.Channel, crm LeadSyncer, alerts HotLeadNotifier, dashboardURL string, logger *slog.Logger) *Worker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Worker{
		Channel:      ch,
		CRM:          crm,
		Alerts:       alerts,
		DashboardURL: dashboardURL,
		Logger:       logger,
	}
}

// Start consumes queueName until ctx is cancelled or the channel closes.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.Consume(
		queueName, // fila
		"",        // consumer
		false,     // auto-ack (manual é mais seguro)
		false,     // exclusive
		false,     // no-local
		false,     // no-wait
		nil,       // args
	)
	if err != nil {
		return fmt.Errorf("falha ao registrar consumidor RabbitMQ: %w", err)
	}

	w.Logger.Info("worker aguardando eventos", "queue", queueName)

	for {
		select {
		case <-ctx.Done():
			w.Logger.Info("worker encerrado")
			return nil
		case d, ok := <-msgs:
			if !ok {
				w.Logger.Warn("canal do RabbitMQ fechado, worker parando")
				return nil
			}
			w.HandleDelivery(ctx, d)
		}
	}
}

// HandleDelivery acks processed events and dead-letters the rest.
func (w *Worker) HandleDelivery(ctx context.Context, d amqp.Delivery) {
	var event LeadEvent
	if err := json.Unmarshal(d.Body, &event); err != nil {
		w.Logger.Error("evento com JSON inválido", "error", err)
		// Mensagem podre. Rejeita sem requeue para não travar a fila.
		_ = d.Nack(false, false)
		return
	}

	if err := w.Process(ctx, event); err != nil {
		w.Logger.Error("falha ao processar evento", "event_id", event.EventID, "lead_id", event.Lead.ID, "error", err)
		_ = d.Nack(false, false)
		return
	}

	_ = d.Ack(false)
}

// Process syncs the lead with the CRM and, for hot leads, e-mails the team.
// Only the CRM failure fails the event; a retried event would otherwise
// create a duplicate CRM lead.
func (w *Worker) Process(ctx context.Context, event LeadEvent) error {
	if event.Type != EventLeadCreated {
		w.Logger.Warn("tipo de evento desconhecido, ignorando", "type", event.Type)
		return nil
	}

	lead := event.Lead

	if w.CRM != nil {
		if err := w.CRM.SyncLead(ctx, lead); err != nil {
			metrics.RecordIntegrationError("kommo")
			return fmt.Errorf("sincronização com CRM: %w", err)
		}
		w.Logger.Info("lead sincronizado com CRM", "lead_id", lead.ID)
	}

	if w.Alerts != nil && lead.Status == entity.StatusHot {
		if err := w.Alerts.SendHotLeadAlert(lead, w.DashboardURL); err != nil {
			metrics.RecordIntegrationError("smtp")
			w.Logger.Error("falha ao enviar alerta de lead quente", "lead_id", lead.ID, "error", err)
		} else {
			w.Logger.Info("alerta de lead quente enviado", "lead_id", lead.ID)
		}
	}

	return nil
}
