package kommo

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
)

type Client struct {
	apiToken string
	baseURL  string
}

func NewClient() *Client {
	return &Client{
		apiToken: os.Getenv("KOMMO_API_TOKEN"),
		baseURL:  "https://liguemedicina.kommo.com/api/v4",
	}
}

// CreateUrgentTask abre um chamado no Kommo quando um contato pede para ser
// chamado com urgência. Best-effort: quem chama decide o fallback.
func (c *Client) CreateUrgentTask(input CreateTaskInput) (int, error) {
	if c.apiToken == "" {
		log.Println("⚠️ Kommo: API_TOKEN não configurado")
		return 0, fmt.Errorf("kommo não configurado")
	}

	// Primeiro, criar ou buscar contato
	contactID, err := c.findOrCreateContact(input)
	if err != nil {
		return 0, fmt.Errorf("erro ao criar/buscar contato: %w", err)
	}

	meetingInfo := "sem reunião agendada"
	if input.MeetingStart != nil {
		meetingInfo = fmt.Sprintf("reunião %s em %s", input.MeetingID, input.MeetingStart.Format("02/01/2006 15:04"))
	}

	leadData := []map[string]interface{}{
		{
			"name": fmt.Sprintf("URGENTE - %s (%s)", input.ContactName, meetingInfo),
			"_embedded": map[string]interface{}{
				"tags": []map[string]interface{}{
					{"name": "contato_urgente"},
					{"name": input.Action},
				},
				"contacts": []map[string]interface{}{
					{"id": contactID},
				},
			},
		},
	}

	payload, _ := json.Marshal(leadData)
	req, _ := http.NewRequest("POST", c.baseURL+"/leads", bytes.NewBuffer(payload))
	c.addAuthHeaders(req)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("erro ao criar chamado: %d - %s", resp.StatusCode, string(body))
	}

	var result struct {
		Embedded struct {
			Leads []struct {
				ID int `json:"id"`
			} `json:"leads"`
		} `json:"_embedded"`
	}

	if err := json.Unmarshal(body, &result); err != nil {
		return 0, err
	}

	if len(result.Embedded.Leads) == 0 {
		return 0, fmt.Errorf("chamado não criado")
	}

	taskID := result.Embedded.Leads[0].ID
	log.Printf("✅ Kommo: Chamado urgente #%d aberto para %s", taskID, input.ContactName)

	return taskID, nil
}

func (c *Client) findOrCreateContact(input CreateTaskInput) (int, error) {
	// Buscar contato por email primeiro (campanha é toda baseada em email)
	if contactID, err := c.findContact(input.Email); err == nil && contactID > 0 {
		log.Printf("📇 Kommo: Contato existente encontrado: %d", contactID)
		return contactID, nil
	}

	if input.Phone != "" {
		if contactID, err := c.findContact(input.Phone); err == nil && contactID > 0 {
			log.Printf("📱 Kommo: Contato existente encontrado: %d", contactID)
			return contactID, nil
		}
	}

	// Se não encontrou, criar novo contato
	return c.createContact(input)
}

func (c *Client) findContact(query string) (int, error) {
	url := fmt.Sprintf("%s/contacts?query=%s", c.baseURL, query)

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return 0, err
	}

	c.addAuthHeaders(req)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("erro ao buscar contato: %d", resp.StatusCode)
	}

	var result struct {
		Embedded struct {
			Contacts []struct {
				ID int `json:"id"`
			} `json:"contacts"`
		} `json:"_embedded"`
	}

	if err := json.Unmarshal(body, &result); err != nil {
		return 0, err
	}

	if len(result.Embedded.Contacts) > 0 {
		return result.Embedded.Contacts[0].ID, nil
	}

	return 0, fmt.Errorf("contato não encontrado")
}

func (c *Client) createContact(input CreateTaskInput) (int, error) {
	contactData := []map[string]interface{}{
		{
			"name": input.ContactName,
			"custom_fields_values": []map[string]interface{}{
				{
					"field_code": "PHONE",
					"values": []map[string]interface{}{
						{"value": input.Phone, "enum_code": "WORK"},
					},
				},
				{
					"field_code": "EMAIL",
					"values": []map[string]interface{}{
						{"value": input.Email, "enum_code": "WORK"},
					},
				},
			},
		},
	}

	payload, _ := json.Marshal(contactData)
	req, _ := http.NewRequest("POST", c.baseURL+"/contacts", bytes.NewBuffer(payload))
	c.addAuthHeaders(req)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return 0, fmt.Errorf("erro ao criar contato: %d - %s", resp.StatusCode, string(body))
	}

	var result struct {
		Embedded struct {
			Contacts []struct {
				ID int `json:"id"`
			} `json:"contacts"`
		} `json:"_embedded"`
	}

	if err := json.Unmarshal(body, &result); err != nil {
		return 0, err
	}

	if len(result.Embedded.Contacts) > 0 {
		contactID := result.Embedded.Contacts[0].ID
		log.Printf("✅ Kommo: Novo contato criado: %d", contactID)
		return contactID, nil
	}

	return 0, fmt.Errorf("erro ao obter ID do contato criado")
}

func (c *Client) addAuthHeaders(req *http.Request) {
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiToken))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
}
