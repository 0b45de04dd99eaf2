package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/xavierca1/ligue-outreach/internal/entity"
	"github.com/xavierca1/ligue-outreach/internal/ics"
)

func calendarFixture() (*entity.Contact, *entity.Slot, http.Handler) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	ct := &entity.Contact{
		ID: "c1", FirstName: "Ana", LastName: "Souza",
		Email: "ana@example.com", SlotID: "s1",
		ZoomJoinURL: "https://zoom.us/j/987",
	}
	slot := &entity.Slot{
		ID: "s1", Date: "2026-03-02",
		StartTime: start, EndTime: start.Add(30 * time.Minute),
		HostEmail: "comercial@liguemedicina.com",
	}
	campaignStore := &memCampaignStore{campaign: &entity.Campaign{
		Contacts: []*entity.Contact{ct},
		Slots:    []*entity.Slot{slot},
	}}

	handler := NewCalendarHandler(campaignStore)
	r := chi.NewRouter()
	r.Get("/calendar/{contactID}.ics", handler.HandleDownload)
	return ct, slot, r
}

func TestCalendarDownloadMatchesRender(t *testing.T) {
	ct, slot, router := calendarFixture()

	req := httptest.NewRequest("GET", "/calendar/c1.ics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, ics.MIMEType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "reuniao-2026-03-02.ics")
	// O download e o anexo do convite vêm do mesmo render.
	assert.Equal(t, ics.Render(ct, slot), rec.Body.String())
}

func TestCalendarDownloadUnknownContact(t *testing.T) {
	_, _, router := calendarFixture()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/calendar/c99.ics", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCalendarDownloadContactWithoutSlot(t *testing.T) {
	campaignStore := &memCampaignStore{campaign: &entity.Campaign{
		Contacts: []*entity.Contact{{ID: "c1", FirstName: "Ana", Email: "ana@example.com"}},
	}}
	handler := NewCalendarHandler(campaignStore)
	r := chi.NewRouter()
	r.Get("/calendar/{contactID}.ics", handler.HandleDownload)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/calendar/c1.ics", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
