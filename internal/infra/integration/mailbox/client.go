package mailbox

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client fala com a API da caixa de entrada hospedada para puxar respostas
// recebidas dos contatos da campanha.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(apiKey, baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// GetReplies busca mensagens recebidas dos remetentes informados, opcionalmente
// a partir de `since`.
func (c *Client) GetReplies(senders []string, since *time.Time) ([]Reply, error) {
	url := fmt.Sprintf("%s/messages/search", c.baseURL)

	payload := searchRequest{Senders: senders}
	if since != nil {
		payload.Since = since.UTC().Format(time.RFC3339)
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("erro ao marshal busca: %w", err)
	}

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro request mailbox: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		fmt.Printf("❌ ERRO API MAILBOX (Status %d): %s\n", resp.StatusCode, string(body))
		return nil, fmt.Errorf("api mailbox rejeitou (status %d)", resp.StatusCode)
	}

	var response searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("erro ao ler resposta mailbox: %w", err)
	}

	return response.Messages, nil
}
