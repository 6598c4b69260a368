package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"heli-ticketing/internal/api"
	"heli-ticketing/internal/config"
	"heli-ticketing/internal/counter"
	"heli-ticketing/internal/logger"
	"heli-ticketing/internal/manifest"
	"heli-ticketing/internal/notify"
	"heli-ticketing/internal/sharepoint"
	"heli-ticketing/internal/ticket"
)

func main() {
	_ = godotenv.Load() // Loads .env file if present

	cfg := config.Load()
	log := logger.NewLogger()
	defer log.Close()

	ctx := context.Background()

	ctr, err := counter.Open(ctx, cfg.Storage.CounterDSN)
	if err != nil {
		log.Fatal("DATABASE", "Failed to open ticket counter: "+err.Error())
	}
	defer ctr.Close()

	manifestStore, err := manifest.NewStore(cfg.Storage.ManifestDir, cfg.Storage.TicketsDir)
	if err != nil {
		log.Fatal("MANIFEST", "Failed to initialize manifest store: "+err.Error())
	}
	ticketStore, err := ticket.NewStore(cfg.Storage.TicketsDir)
	if err != nil {
		log.Fatal("RENDER", "Failed to initialize ticket store: "+err.Error())
	}

	mailer, err := notify.NewMailer(cfg.SMTP, cfg.Mail.FromEmail, cfg.Storage.OutboxDir, log)
	if err != nil {
		log.Fatal("MAIL", "Failed to initialize mailer: "+err.Error())
	}
	dispatcher := &notify.Dispatcher{
		Sender:     mailer,
		Manifest:   manifestStore,
		Tickets:    ticketStore,
		PilotEmail: cfg.Mail.PilotEmail,
		DocsDir:    cfg.Storage.DocsDir,
		Logger:     log,
	}

	renderer := &ticket.Renderer{
		LogoPath: cfg.Storage.LogoPath,
		FontDir:  cfg.Storage.FontDir,
		Logger:   log,
	}

	var sp *sharepoint.Client
	if cfg.SharePoint.Enabled() {
		sp = sharepoint.NewClient(cfg.SharePoint, cfg.Storage.OutboxDir, log)
		log.Info("UPLOAD", "SharePoint mirroring enabled")
	} else {
		log.Info("UPLOAD", "SharePoint mirroring disabled (SP_DRIVE_ID not set)")
	}

	handler, err := api.NewHandler(cfg, log, manifestStore, ticketStore, renderer, ctr, dispatcher, sp)
	if err != nil {
		log.Fatal("API", "Failed to initialize handlers: "+err.Error())
	}

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      handler.Routes(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("API", "Ticketing server listening on "+cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("API", "HTTP server error: "+err.Error())
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctxShutdown, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	_ = server.Shutdown(ctxShutdown)
	log.Info("API", "Shutdown complete")
}
