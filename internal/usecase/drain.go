package usecase

import "time"

// drainConfig parametriza os loops de lote contra provedores com rate limit.
type drainConfig struct {
	BatchSize int
	Pause     time.Duration
	Sleep     func(time.Duration) // injetável nos testes
}

func (c drainConfig) normalized() drainConfig {
	if c.BatchSize <= 0 {
		c.BatchSize = 100
	}
	if c.Pause <= 0 {
		c.Pause = 5 * time.Second
	}
	if c.Sleep == nil {
		c.Sleep = time.Sleep
	}
	return c
}


// runDrain repete `batch` até esgotar o trabalho. Regras:
//   - lote sem nenhum sucesso encerra o loop;
//   - sinal de rate limit encerra na hora, SEM a pausa final — o provedor
//     já mandou parar, não faz sentido esperar para nada;
//   - entre lotes não vazios, pausa fixa para não tropeçar de novo no limite.
//
// Re-rodar é sempre seguro: a seleção de cada lote pula contatos que já
// passaram do estágio.
func runDrain(cfg drainConfig, batch func(limit int) BatchOutput) BatchOutput {
	cfg = cfg.normalized()

	var total BatchOutput
	for {
		res := batch(cfg.BatchSize)

		total.Processed += res.Processed
		total.Failed += res.Failed
		total.Errors = append(total.Errors, res.Errors...)

		if res.RateLimited {
			total.RateLimited = true
			return total
		}
		if res.Processed == 0 {
			return total
		}

		cfg.Sleep(cfg.Pause)
	}
}
