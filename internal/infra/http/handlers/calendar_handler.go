package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/ligue-outreach/internal/ics"
	"github.com/xavierca1/ligue-outreach/internal/usecase"
)

type CalendarHandler struct {
	Store usecase.CampaignStore
}

func NewCalendarHandler(store usecase.CampaignStore) *CalendarHandler {
	return &CalendarHandler{Store: store}
}


// HandleDownload serve o mesmo .ics que vai anexado no convite — o render é
// determinístico justamente para os dois baterem byte a byte.
func (h *CalendarHandler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	contactID := chi.URLParam(r, "contactID")

	campaign := h.Store.Get()
	ct := campaign.FindContactByID(contactID)
	if ct == nil {
		writeJSONError(w, http.StatusNotFound, "contato não encontrado")
		return
	}

	slot := campaign.FindSlotByID(ct.SlotID)
	if slot == nil {
		writeJSONError(w, http.StatusNotFound, "contato ainda não tem reunião agendada")
		return
	}

	invite := ics.Render(ct, slot)

	w.Header().Set("Content-Type", ics.MIMEType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="reuniao-%s.ics"`, slot.Date))
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, invite)
}
