package worker

import (
	"context"
	"log"
	"time"

	"github.com/xavierca1/ligue-outreach/internal/usecase"
)

// DispatchWorker é o gatilho de tempo dos lotes que não dependem de chamada
// manual: lembrete de véspera, follow-up pós-reunião e sincronização de
// respostas. Cada passada é idempotente, então o intervalo pode ser curto.
type DispatchWorker struct {
	reminders *usecase.SendRemindersUseCase
	followups *usecase.SendFollowupsUseCase
	replies   *usecase.SyncRepliesUseCase

	tickInterval time.Duration
	lastSync     time.Time
}

func NewDispatchWorker(
	reminders *usecase.SendRemindersUseCase,
	followups *usecase.SendFollowupsUseCase,
	replies *usecase.SyncRepliesUseCase,
) *DispatchWorker {
	return &DispatchWorker{
		reminders:    reminders,
		followups:    followups,
		replies:      replies,
		tickInterval: 10 * time.Minute,
	}
}


func (w *DispatchWorker) Start(ctx context.Context) {
	log.Println("🕒 Dispatch Worker iniciado (lotes a cada 10min)")

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("⚠️ Dispatch Worker encerrado")
			return
		case <-ticker.C:
			w.run(ctx)
		}
	}
}


func (w *DispatchWorker) run(ctx context.Context) {
	if out, err := w.reminders.Execute(ctx); err != nil {
		log.Printf("❌ Erro no lote de lembretes: %v", err)
	} else if out.Processed > 0 {
		log.Printf("✅ %d lembrete(s) enviado(s)", out.Processed)
	}

	if out, err := w.followups.Execute(ctx); err != nil {
		log.Printf("❌ Erro no lote de follow-ups: %v", err)
	} else if out.Processed > 0 {
		log.Printf("✅ %d follow-up(s) enviado(s)", out.Processed)
	}

	since := w.lastSync
	w.lastSync = time.Now()
	var sincePtr *time.Time
	if !since.IsZero() {
		sincePtr = &since
	}
	if out, err := w.replies.Execute(ctx, sincePtr); err != nil {
		log.Printf("❌ Erro na sincronização de respostas: %v", err)
	} else if out.NewReplies > 0 {
		log.Printf("📥 %d resposta(s) nova(s) registrada(s)", out.NewReplies)
	}
}
