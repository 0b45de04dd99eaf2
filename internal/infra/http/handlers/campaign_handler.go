package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/xavierca1/ligue-outreach/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-outreach/internal/usecase"
)

type CampaignHandler struct {
	Store       usecase.CampaignStore
	Import      *usecase.ImportContactsUseCase
	Schedule    *usecase.ScheduleContactsUseCase
	Meetings    *usecase.CreateMeetingsUseCase
	Invitations *usecase.SendInvitationsUseCase
	Reminders   *usecase.SendRemindersUseCase
	Followups   *usecase.SendFollowupsUseCase
	Sweep       *usecase.NoShowSweepUseCase
	Enrich      *usecase.EnrichContactsUseCase
}


type ImportRequest struct {
	File     string                 `json:"file,omitempty"`
	Contacts []usecase.ContactInput `json:"contacts,omitempty"`
}

func (h *CampaignHandler) HandleImport(w http.ResponseWriter, r *http.Request) {
	var req ImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	var out *usecase.ImportOutput
	var err error
	if len(req.Contacts) > 0 {
		out, err = h.Import.Execute(r.Context(), req.Contacts)
	} else {
		out, err = h.Import.ExecuteFile(r.Context(), req.File)
	}
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, out)
}


type ScheduleRequest struct {
	Start string `json:"start,omitempty"` // YYYY-MM-DD
}

func (h *CampaignHandler) HandleSchedule(w http.ResponseWriter, r *http.Request) {
	var req ScheduleRequest
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}

	start := time.Now()
	if req.Start != "" {
		parsed, err := time.Parse("2006-01-02", req.Start)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "start deve ser YYYY-MM-DD")
			return
		}
		start = parsed
	}

	out, err := h.Schedule.Execute(r.Context(), start)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, out)
}


func (h *CampaignHandler) HandleCreateMeetings(w http.ResponseWriter, r *http.Request) {
	out, err := h.Meetings.Execute(r.Context())
	if out != nil {
		middleware.RecordMeetingsCreated(out.Processed)
		if out.Failed > 0 || out.RateLimited {
			middleware.RecordIntegrationError("zoom")
		}
	}
	h.writeBatch(w, out, err)
}

func (h *CampaignHandler) HandleSendInvitations(w http.ResponseWriter, r *http.Request) {
	out, err := h.Invitations.Execute(r.Context())
	if out != nil {
		middleware.RecordEmailsSent("invitation", out.Processed)
		if out.Failed > 0 || out.RateLimited {
			middleware.RecordIntegrationError("smtp")
		}
	}
	h.writeBatch(w, out, err)
}

func (h *CampaignHandler) HandleSendReminders(w http.ResponseWriter, r *http.Request) {
	out, err := h.Reminders.Execute(r.Context())
	if out != nil {
		middleware.RecordEmailsSent("reminder", out.Processed)
	}
	h.writeBatch(w, out, err)
}

func (h *CampaignHandler) HandleSendFollowups(w http.ResponseWriter, r *http.Request) {
	out, err := h.Followups.Execute(r.Context())
	if out != nil {
		middleware.RecordEmailsSent("followup", out.Processed)
	}
	h.writeBatch(w, out, err)
}


// HandleSweep dispara a varredura de no-show fora do timer (uso operacional).
func (h *CampaignHandler) HandleSweep(w http.ResponseWriter, r *http.Request) {
	out, err := h.Sweep.Execute(r.Context())
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	middleware.RecordEmailsSent("no_show", out.Sent)
	writeJSON(w, http.StatusOK, out)
}

func (h *CampaignHandler) HandleEnrich(w http.ResponseWriter, r *http.Request) {
	out, err := h.Enrich.Execute(r.Context())
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *CampaignHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Store.Get().ComputeStats())
}


func (h *CampaignHandler) writeBatch(w http.ResponseWriter, out *usecase.BatchOutput, err error) {
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}


func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeUseCaseError traduz a taxonomia de erros para HTTP: not-found → 404,
// validação/domínio → 400, técnico → 500.
func writeUseCaseError(w http.ResponseWriter, err error) {
	if de, ok := err.(*usecase.DomainError); ok {
		status := http.StatusBadRequest
		if len(de.Code) > 9 && de.Code[len(de.Code)-9:] == "NOT_FOUND" {
			status = http.StatusNotFound
		}
		writeJSON(w, status, map[string]string{"error": de.Message, "code": de.Code})
		return
	}
	if te, ok := err.(*usecase.TechnicalError); ok {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": te.Message, "code": te.Code})
		return
	}
	writeJSONError(w, http.StatusInternalServerError, err.Error())
}
