package worker

import (
	"context"
	"log"
	"time"

	"github.com/xavierca1/ligue-outreach/internal/usecase"
)


type NoShowWorker struct {
	sweep        *usecase.NoShowSweepUseCase
	tickInterval time.Duration
}


func NewNoShowWorker(sweep *usecase.NoShowSweepUseCase) *NoShowWorker {
	return &NoShowWorker{
		sweep:        sweep,
		tickInterval: 15 * time.Minute, // fila de no-show é varrida a cada 15 min
	}
}


func (w *NoShowWorker) Start(ctx context.Context) {
	log.Println("🕒 No-Show Worker iniciado (sweep a cada 15min)")

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.run(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("⚠️ No-Show Worker encerrado")
			return
		case <-ticker.C:
			w.run(ctx)
		}
	}
}


func (w *NoShowWorker) run(ctx context.Context) {
	out, err := w.sweep.Execute(ctx)
	if err != nil {
		log.Printf("❌ Erro no sweep de no-show: %v", err)
		return
	}

	if out.Sent > 0 || out.Skipped > 0 || out.Failed > 0 {
		log.Printf("✅ Sweep de no-show: %d enviado(s), %d pulado(s), %d falha(s)",
			out.Sent, out.Skipped, out.Failed)
	}
}
