package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/xavierca1/ligue-outreach/internal/usecase"
)

type WebhookHandler struct {
	Attendance *usecase.ProcessAttendanceUseCase
}

func NewWebhookHandler(attendance *usecase.ProcessAttendanceUseCase) *WebhookHandler {
	return &WebhookHandler{Attendance: attendance}
}


// HandleZoom recebe o webhook meeting.ended do Zoom e resolve a presença
// do contato daquela reunião.
func (h *WebhookHandler) HandleZoom(w http.ResponseWriter, r *http.Request) {
	var event struct {
		Event   string `json:"event"`
		Payload struct {
			Object struct {
				ID           json.Number `json:"id"`
				Participants []struct {
					UserEmail string `json:"user_email"`
					Name      string `json:"name"`
					Duration  int    `json:"duration"` // segundos
				} `json:"participants"`
			} `json:"object"`
		} `json:"payload"`
	}

	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Bad JSON")
		return
	}

	if event.Event != "meeting.ended" {
		w.WriteHeader(http.StatusOK)
		return
	}

	input := usecase.AttendanceInput{MeetingID: event.Payload.Object.ID.String()}
	for _, p := range event.Payload.Object.Participants {
		input.Participants = append(input.Participants, usecase.ParticipantInput{
			Email:           p.UserEmail,
			Name:            p.Name,
			DurationMinutes: p.Duration / 60,
		})
	}

	out, err := h.Attendance.Execute(r.Context(), input)
	if err != nil {
		if usecase.IsDomainError(err) {
			log.Printf("⚠️ Webhook Zoom: %v", err)
			writeUseCaseError(w, err)
			return
		}
		log.Printf("❌ Webhook Zoom: %v", err)
		writeUseCaseError(w, err)
		return
	}

	log.Printf("✅ Presença resolvida: %s → %s (%s min)",
		out.Email, out.AttendanceStatus, strconv.Itoa(out.AttendanceDuration))

	writeJSON(w, http.StatusOK, out)
}
