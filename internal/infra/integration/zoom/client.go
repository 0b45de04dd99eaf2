package zoom

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/xavierca1/ligue-outreach/internal/entity"
)

type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClient(token, baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://api.zoom.us/v2"
	}
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// CreateMeeting agenda a reunião no Zoom em nome do host e devolve id + links.
func (c *Client) CreateMeeting(input CreateMeetingInput) (MeetingOutput, error) {
	endpoint := fmt.Sprintf("%s/users/%s/meetings", c.baseURL, url.PathEscape(input.HostEmail))

	payload := createMeetingRequest{
		Topic:     input.Topic,
		Type:      2,
		StartTime: input.StartTime.UTC().Format("2006-01-02T15:04:05Z"),
		Duration:  input.DurationMinutes,
		Timezone:  input.Timezone,
		Settings: meetingSettings{
			HostVideo:        true,
			ParticipantVideo: true,
			JoinBeforeHost:   false,
			WaitingRoom:      true,
			Audio:            "both",
			AutoRecording:    "none",
		},
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return MeetingOutput{}, fmt.Errorf("erro ao marshal meeting: %w", err)
	}

	req, err := http.NewRequest("POST", endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return MeetingOutput{}, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return MeetingOutput{}, fmt.Errorf("erro request zoom: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)

		// Classificação na borda: daqui pra dentro ninguém faz substring match.
		if resp.StatusCode == http.StatusTooManyRequests || entity.LooksRateLimited(string(body)) {
			return MeetingOutput{}, fmt.Errorf("zoom recusou (status %d): %w", resp.StatusCode, entity.ErrRateLimited)
		}

		fmt.Printf("❌ ERRO API ZOOM (Status %d): %s\n", resp.StatusCode, string(body))
		return MeetingOutput{}, fmt.Errorf("api zoom rejeitou (status %d)", resp.StatusCode)
	}

	var response meetingResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return MeetingOutput{}, fmt.Errorf("erro ao ler resposta zoom: %w", err)
	}

	return MeetingOutput{
		ID:       strconv.FormatInt(response.ID, 10),
		JoinURL:  response.JoinURL,
		StartURL: response.StartURL,
	}, nil
}
