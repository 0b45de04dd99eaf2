package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/xavierca1/ligue-outreach/internal/entity"
)

// FileCampaignStore guarda o agregado inteiro da campanha em um único JSON.
// Carrega tudo em memória no boot e reescreve o arquivo completo a cada Save —
// o mutex garante um escritor por vez mesmo quando um sweep agendado dispara
// junto com uma chamada da API.
type FileCampaignStore struct {
	path string

	mu       sync.Mutex
	campaign *entity.Campaign
}

func NewFileCampaignStore(path string) *FileCampaignStore {
	return &FileCampaignStore{path: path}
}


func (s *FileCampaignStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		// Primeira execução: começa com campanha vazia.
		s.campaign = &entity.Campaign{}
		return nil
	}
	if err != nil {
		return fmt.Errorf("erro ao ler arquivo da campanha: %w", err)
	}

	var c entity.Campaign
	if err := json.Unmarshal(data, &c); err != nil {
		return fmt.Errorf("erro ao decodificar campanha: %w", err)
	}

	s.campaign = &c
	return nil
}


func (s *FileCampaignStore) Get() *entity.Campaign {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.campaign == nil {
		s.campaign = &entity.Campaign{}
	}
	return s.campaign
}


// Save reescreve o documento inteiro de forma atômica (tmp + rename).
func (s *FileCampaignStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.campaign == nil {
		s.campaign = &entity.Campaign{}
	}
	s.campaign.UpdatedAt = time.Now()

	data, err := json.MarshalIndent(s.campaign, "", "  ")
	if err != nil {
		return fmt.Errorf("erro ao codificar campanha: %w", err)
	}

	return writeFileAtomic(s.path, data)
}


func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("erro ao criar diretório de dados: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("erro ao criar arquivo temporário: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("erro ao gravar arquivo temporário: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("erro ao fechar arquivo temporário: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("erro ao trocar arquivo de dados: %w", err)
	}
	return nil
}
