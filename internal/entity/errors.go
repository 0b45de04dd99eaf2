package entity

import (
	"errors"
	"strings"
)

// ErrRateLimited é a classificação tipada de "o provedor mandou segurar".
// Quem decide é o client da integração, na borda; os drain loops só fazem
// errors.Is e param o lote sem propagar erro.
var ErrRateLimited = errors.New("provedor aplicou rate limit")


// LooksRateLimited inspeciona o texto de erro do provedor em busca do sinal
// de limite. Usado apenas pelos clients para decidir a classificação.
func LooksRateLimited(msg string) bool {
	m := strings.ToLower(msg)
	return strings.Contains(m, "429") ||
		strings.Contains(m, "421") ||
		strings.Contains(m, "rate") ||
		strings.Contains(m, "too many")
}
