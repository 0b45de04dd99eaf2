package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xavierca1/ligue-outreach/internal/infra/http/handlers"
	"github.com/xavierca1/ligue-outreach/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-outreach/internal/infra/integration/kommo"
	"github.com/xavierca1/ligue-outreach/internal/infra/integration/mailbox"
	"github.com/xavierca1/ligue-outreach/internal/infra/integration/zoom"
	"github.com/xavierca1/ligue-outreach/internal/infra/mail"
	"github.com/xavierca1/ligue-outreach/internal/infra/queue"
	"github.com/xavierca1/ligue-outreach/internal/infra/store"
	"github.com/xavierca1/ligue-outreach/internal/infra/worker"
	"github.com/xavierca1/ligue-outreach/internal/scheduling"
	"github.com/xavierca1/ligue-outreach/internal/scoring"
	"github.com/xavierca1/ligue-outreach/internal/usecase"
)

func main() {
	godotenv.Load()

	// 1. Stores (documento único da campanha + tokens de clique)
	campaignStore := store.NewFileCampaignStore(envOr("CAMPAIGN_FILE", "data/campaign.json"))
	if err := campaignStore.Load(); err != nil {
		log.Fatalf("❌ Falha ao carregar a campanha: %v", err)
	}

	tokenStore := store.NewFileTokenStore(envOr("TOKENS_FILE", "data/tokens.json"))
	if err := tokenStore.Load(); err != nil {
		log.Fatalf("❌ Falha ao carregar os tokens: %v", err)
	}

	rabbitMQ, err := queue.NewRabbitMQ(
		envOr("RABBITMQ_USER", "user"),
		envOr("RABBITMQ_PASS", "password"),
		envOr("RABBITMQ_HOST", "localhost"),
		envOr("RABBITMQ_PORT", "5672"),
	)
	if err != nil {
		panic(err)
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// 2. Gateways e Adapters
	zoomClient := zoom.NewClient(os.Getenv("ZOOM_API_TOKEN"), os.Getenv("ZOOM_URL"))
	mailboxClient := mailbox.NewClient(os.Getenv("MAILBOX_API_KEY"), os.Getenv("MAILBOX_URL"))
	kommoClient := kommo.NewClient()
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
	mailSender := mail.NewEmailSender(
		os.Getenv("MAIL_HOST"), envInt("MAIL_PORT", 587),
		os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"),
		envOr("MAIL_FROM", "nao-responda@liguemedicina.com"),
	)

	slotCfg := scheduling.DefaultConfig()
	slotCfg.StartHour = envInt("SLOT_START_HOUR", 9)
	slotCfg.EndHour = envInt("SLOT_END_HOUR", 17)
	slotCfg.SlotMinutes = envInt("SLOT_MINUTES", 30)
	slotCfg.HostEmail = envOr("MEETING_HOST", "comercial@liguemedicina.com")
	slotCfg.TeamEmails = []string{
		envOr("MEETING_TEAM_1", "vendas@liguemedicina.com"),
		envOr("MEETING_TEAM_2", "diretoria@liguemedicina.com"),
	}

	campaignStart := time.Now()
	if raw := os.Getenv("CAMPAIGN_START"); raw != "" {
		if parsed, err := time.Parse("2006-01-02", raw); err == nil {
			campaignStart = parsed
		}
	}

	trackingBaseURL := envOr("TRACKING_BASE_URL", "http://localhost:8080")
	batchPause := time.Duration(envInt("BATCH_PAUSE_SECONDS", 5)) * time.Second

	// 3. Worker de contato urgente (consome a fila e abre chamado no Kommo)
	teamEmail := envOr("TEAM_NOTIFY_EMAIL", "comercial@liguemedicina.com")
	urgentWorker := queue.NewWorker(rabbitMQ.Ch, kommoClient, func(subject, body string) error {
		return mailSender.Send(teamEmail, subject, body)
	})
	go urgentWorker.Start(queue.QueueName)

	// 4. UseCases
	importUC := usecase.NewImportContactsUseCase(campaignStore)
	scheduleUC := usecase.NewScheduleContactsUseCase(campaignStore, slotCfg)
	meetingsUC := usecase.NewCreateMeetingsUseCase(campaignStore, zoomClient, envOr("MEETING_TZ", "America/Sao_Paulo"), batchPause)
	invitationsUC := usecase.NewSendInvitationsUseCase(campaignStore, tokenStore, mailSender, trackingBaseURL, batchPause)
	remindersUC := usecase.NewSendRemindersUseCase(campaignStore, mailSender, batchPause)
	followupsUC := usecase.NewSendFollowupsUseCase(campaignStore, tokenStore, mailSender, trackingBaseURL, batchPause)
	sweepUC := usecase.NewNoShowSweepUseCase(campaignStore, tokenStore, mailSender, trackingBaseURL)
	enrichUC := usecase.NewEnrichContactsUseCase(campaignStore, scoring.BoundariesFrom(campaignStart))
	attendanceUC := usecase.NewProcessAttendanceUseCase(campaignStore)
	resolveUC := usecase.NewResolveClickUseCase(campaignStore, tokenStore, producer)
	repliesUC := usecase.NewSyncRepliesUseCase(campaignStore, mailboxClient)

	// 5. Workers de tempo (sweep de no-show + lotes periódicos)
	ctx := context.Background()
	go worker.NewNoShowWorker(sweepUC).Start(ctx)
	go worker.NewDispatchWorker(remindersUC, followupsUC, repliesUC).Start(ctx)

	// 6. Handlers
	campaignHandler := &handlers.CampaignHandler{
		Store:       campaignStore,
		Import:      importUC,
		Schedule:    scheduleUC,
		Meetings:    meetingsUC,
		Invitations: invitationsUC,
		Reminders:   remindersUC,
		Followups:   followupsUC,
		Sweep:       sweepUC,
		Enrich:      enrichUC,
	}
	webhookHandler := handlers.NewWebhookHandler(attendanceUC)
	trackingHandler := handlers.NewTrackingHandler(resolveUC)
	calendarHandler := handlers.NewCalendarHandler(campaignStore)
	healthHandler := handlers.NewHealthHandler(campaignStore, rabbitMQ.Conn)

	// 7. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
	}))

	r.Post("/contacts/import", campaignHandler.HandleImport)
	r.Post("/campaign/schedule", campaignHandler.HandleSchedule)
	r.Post("/campaign/meetings", campaignHandler.HandleCreateMeetings)
	r.Post("/campaign/invitations", campaignHandler.HandleSendInvitations)
	r.Post("/campaign/reminders", campaignHandler.HandleSendReminders)
	r.Post("/campaign/followups", campaignHandler.HandleSendFollowups)
	r.Post("/campaign/noshow-sweep", campaignHandler.HandleSweep)
	r.Post("/campaign/enrich", campaignHandler.HandleEnrich)
	r.Get("/campaign/stats", campaignHandler.HandleStats)

	r.Post("/webhook/zoom", webhookHandler.HandleZoom)
	r.Get("/t/{token}", trackingHandler.HandleClick)
	r.Get("/calendar/{contactID}.ics", calendarHandler.HandleDownload)

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	port := ":" + envOr("PORT", "8080")
	log.Printf("🔥 Outreach Engine rodando na porta %s", port)
	http.ListenAndServe(port, r)
}


func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
