package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/xavierca1/ligue-outreach/internal/entity"
)

var ErrTokenNotFound = errors.New("token não encontrado ou já usado")

// TokenTTL: tokens mais velhos que isso são descartados no Load (expiração
// preguiçosa, sem sweep ativo).
const TokenTTL = 30 * 24 * time.Hour


// FileTokenStore persiste o mapa token → registro em um JSON próprio,
// separado do agregado da campanha.
type FileTokenStore struct {
	path string

	mu     sync.Mutex
	tokens map[string]entity.ClickToken
}

func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{
		path:   path,
		tokens: make(map[string]entity.ClickToken),
	}
}


func (s *FileTokenStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		s.tokens = make(map[string]entity.ClickToken)
		return nil
	}
	if err != nil {
		return fmt.Errorf("erro ao ler arquivo de tokens: %w", err)
	}

	var tokens map[string]entity.ClickToken
	if err := json.Unmarshal(data, &tokens); err != nil {
		return fmt.Errorf("erro ao decodificar tokens: %w", err)
	}

	// Poda quem passou do TTL.
	cutoff := time.Now().Add(-TokenTTL)
	for k, t := range tokens {
		if t.CreatedAt.Before(cutoff) {
			delete(tokens, k)
		}
	}

	s.tokens = tokens
	return nil
}


// Issue gera um token opaco amarrado a (contato, ação) e persiste.
func (s *FileTokenStore) Issue(contactID, action string) (entity.ClickToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := entity.ClickToken{
		Token:     strings.ReplaceAll(uuid.New().String(), "-", ""),
		ContactID: contactID,
		Action:    action,
		CreatedAt: time.Now(),
	}
	s.tokens[t.Token] = t

	if err := s.flush(); err != nil {
		delete(s.tokens, t.Token)
		return entity.ClickToken{}, err
	}
	return t, nil
}


// Take resolve E apaga o token numa operação só, embaixo do lock. Dois
// cliques no mesmo link: o primeiro leva, o segundo recebe not-found.
func (s *FileTokenStore) Take(token string) (entity.ClickToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tokens[token]
	if !ok {
		return entity.ClickToken{}, ErrTokenNotFound
	}
	delete(s.tokens, token)

	if err := s.flush(); err != nil {
		// Mantém o token para a próxima tentativa em vez de perder o clique.
		s.tokens[token] = t
		return entity.ClickToken{}, err
	}
	return t, nil
}


func (s *FileTokenStore) flush() error {
	data, err := json.MarshalIndent(s.tokens, "", "  ")
	if err != nil {
		return fmt.Errorf("erro ao codificar tokens: %w", err)
	}
	return writeFileAtomic(s.path, data)
}
