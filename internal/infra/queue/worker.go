package queue

import (
	"encoding/json"
	"fmt"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/ligue-outreach/internal/infra/integration/kommo"
)

// TicketService define o contrato com o CRM de chamados (Kommo).
type TicketService interface {
	CreateUrgentTask(input kommo.CreateTaskInput) (int, error)
}

type Worker struct {
	Channel      *amqp.Channel
	Tickets      TicketService
	FallbackSend func(subject, body string) error
}

func NewWorker(ch *amqp.Channel, tickets TicketService, fallbackSend func(subject, body string) error) *Worker {
	return &Worker{
		Channel:      ch,
		Tickets:      tickets,
		FallbackSend: fallbackSend,
	}
}

func (w *Worker) Start(queueName string) {
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
		log.Fatalf("❌ Falha ao registrar consumidor RabbitMQ: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			log.Printf("📥 [WORKER] Contato urgente recebido do RabbitMQ")

			var payload UrgentContactPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("❌ [WORKER] JSON Inválido: %s", err)
				// Mensagem podre (malformada). Rejeita sem requeue para não travar a fila.
				d.Nack(false, false)
				continue
			}

			log.Printf("⚙️ [WORKER] Abrindo chamado para: %s (%s)", payload.Name, payload.Email)

			if err := w.processMessage(payload); err != nil {
				log.Printf("❌ [WORKER] Falha no chamado e no fallback: %s", err)
				d.Nack(false, false) // vai para a DLQ
			} else {
				d.Ack(false)
			}
		}
	}()

	log.Printf(" [*] Worker rodando e aguardando na fila '%s'", queueName)
	<-forever
}

func (w *Worker) processMessage(payload UrgentContactPayload) error {
	_, err := w.Tickets.CreateUrgentTask(kommo.CreateTaskInput{
		ContactName:  payload.Name,
		Email:        payload.Email,
		Phone:        payload.Phone,
		Company:      payload.Company,
		Action:       payload.Action,
		MeetingID:    payload.MeetingID,
		MeetingStart: payload.MeetingStart,
	})
	if err == nil {
		log.Printf("✅ [WORKER] Chamado aberto no Kommo para %s", payload.Name)
		return nil
	}

	// Best-effort: CRM caiu, avisa o time por email direto.
	log.Printf("⚠️ [WORKER] Kommo falhou (%s), caindo para email direto", err)

	if w.FallbackSend == nil {
		return err
	}

	subject := fmt.Sprintf("[URGENTE] %s pediu contato imediato", payload.Name)
	body := fmt.Sprintf(
		"<p><b>%s</b> (%s) clicou em contato urgente às %s.</p><p>Telefone: %s<br>Empresa: %s</p>",
		payload.Name, payload.Email, payload.ClickedAt.Format("02/01/2006 15:04"),
		payload.Phone, payload.Company,
	)
	if err := w.FallbackSend(subject, body); err != nil {
		return fmt.Errorf("fallback de email também falhou: %w", err)
	}

	log.Printf("✅ [WORKER] Time avisado por email sobre %s", payload.Name)
	return nil
}
