package api

import (
	"context"
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"heli-ticketing/internal/config"
	"heli-ticketing/internal/counter"
	"heli-ticketing/internal/flight"
	"heli-ticketing/internal/logger"
	"heli-ticketing/internal/manifest"
	"heli-ticketing/internal/models"
	"heli-ticketing/internal/notify"
	"heli-ticketing/internal/sharepoint"
	"heli-ticketing/internal/ticket"
)

// Base64 payload caps. Violations are rejected before any decode or side
// effect.
const (
	maxSingleImageBase64 = 800_000   // ~600KB binary
	maxTotalBase64       = 1_200_000 // signature + photos combined
	maxRequestBytes      = 16 << 20
)

//go:embed templates/*.html
var templatesFS embed.FS

// Renderer is the ticket document producer the submit path depends on.
// *ticket.Renderer satisfies it in production.
type Renderer interface {
	Render(sub models.Submission, signature, photo1, photo2 []byte) (pdf []byte, clipped bool, err error)
}

type Handler struct {
	Config     *config.Config
	Logger     *logger.Logger
	Manifest   *manifest.Store
	Tickets    *ticket.Store
	Renderer   Renderer
	Counter    *counter.Counter
	Dispatcher *notify.Dispatcher
	SharePoint *sharepoint.Client

	templates *template.Template
}

func NewHandler(cfg *config.Config, log *logger.Logger, man *manifest.Store,
	tickets *ticket.Store, renderer Renderer, ctr *counter.Counter,
	dispatcher *notify.Dispatcher, sp *sharepoint.Client) (*Handler, error) {

	tpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &Handler{
		Config:     cfg,
		Logger:     log,
		Manifest:   man,
		Tickets:    tickets,
		Renderer:   renderer,
		Counter:    ctr,
		Dispatcher: dispatcher,
		SharePoint: sp,
		templates:  tpl,
	}, nil
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(h.requestLogger)
	r.Use(h.recoverer)

	r.Get("/", h.PassengerForm)
	r.Post("/submit", h.Submit)
	r.Get("/healthz", h.Healthz)
	r.Get("/docs/dg", h.ServeDGPDF)

	r.Get("/admin", h.AdminDashboard)
	r.Post("/admin/create_link", h.CreateLink)
	r.Get("/admin/download_manifest", h.DownloadManifest)
	r.Get("/admin/download_tickets", h.DownloadTickets)

	r.Get("/debug/logo", h.DebugLogo)
	r.Get("/debug/smtp", h.DebugSMTP)

	return r
}

func (h *Handler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		h.Logger.LogAPI(r.Method, r.URL.Path, "done", time.Since(start).String())
	})
}

// recoverer catches unclassified panics at the request boundary: full detail
// to the log, a generic server error to the caller.
func (h *Handler) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				h.Logger.Error("API", fmt.Sprintf("Panic handling %s %s: %v", r.Method, r.URL.Path, rec))
				jsonError(w, http.StatusInternalServerError, "Server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// PassengerForm renders the booking form, prefilled from share-link query
// params.
func (h *Handler) PassengerForm(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	data := map[string]interface{}{
		"FlightDate":   q.Get("date"),
		"FlightTime":   q.Get("time"),
		"Route":        q.Get("route"),
		"Registration": q.Get("reg"),
		"Pilot":        q.Get("pilot"),
		"Conditions":   ticket.ConditionsOfCarriage,
	}
	if err := h.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		h.Logger.Error("API", fmt.Sprintf("Failed to render form: %v", err))
	}
}

func (h *Handler) ServeDGPDF(w http.ResponseWriter, r *http.Request) {
	path := filepath.Join(h.Config.Storage.DocsDir, "dg.pdf")
	if _, err := os.Stat(path); err != nil {
		http.Error(w, "Dangerous Goods PDF not found. Please upload dg.pdf to the docs folder.", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	http.ServeFile(w, r, path)
}

func (h *Handler) DebugLogo(w http.ResponseWriter, r *http.Request) {
	data, err := os.ReadFile(h.Config.Storage.LogoPath)
	if err != nil {
		http.Error(w, fmt.Sprintf("No logo found at %s", h.Config.Storage.LogoPath), http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(data)
}

func (h *Handler) DebugSMTP(w http.ResponseWriter, r *http.Request) {
	smtp := h.Config.SMTP
	user := "(not set)"
	if smtp.Username != "" {
		if len(smtp.Username) > 3 {
			user = smtp.Username[:3] + "***"
		} else {
			user = "***"
		}
	}
	password := "(not set)"
	if smtp.Password != "" {
		password = "***"
	}
	host := smtp.Host
	if host == "" {
		host = "(not set)"
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"smtp_configured": smtp.Configured(),
		"smtp_host":       host,
		"smtp_port":       smtp.Port,
		"smtp_user":       user,
		"smtp_password":   password,
		"from_email":      h.Config.Mail.FromEmail,
		"smtp_use_tls":    smtp.UseTLS,
	})
}

// submitRequest is the booking form's JSON payload. Weights travel as
// strings; they are recorded verbatim and only coerced when summing.
type submitRequest struct {
	Name               string `json:"name"`
	Email              string `json:"email"`
	BodyWeight         string `json:"body_weight"`
	NumBags            string `json:"num_bags"`
	BagWeight          string `json:"bag_weight"`
	FlightDate         string `json:"flight_date"`
	FlightTime         string `json:"flight_time"`
	Route              string `json:"route"`
	Registration       string `json:"registration"`
	Pilot              string `json:"pilot"`
	DGAcknowledged     bool   `json:"dg_acknowledged"`
	ConditionsAccepted bool   `json:"conditions_accepted"`
	SignatureData      string `json:"signature_data"`
	Photo1Data         string `json:"photo1_data"`
	Photo2Data         string `json:"photo2_data"`
}

func (req *submitRequest) validate() string {
	required := []struct {
		value, name string
	}{
		{req.Name, "name"},
		{req.Email, "email"},
		{req.BodyWeight, "body_weight"},
		{req.FlightDate, "flight_date"},
		{req.Route, "route"},
		{req.Registration, "registration"},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return "Missing required field: " + f.name
		}
	}
	if !req.DGAcknowledged {
		return "You must acknowledge the Dangerous Goods information"
	}
	if !req.ConditionsAccepted {
		return "You must accept the Conditions of Carriage"
	}
	if req.SignatureData == "" {
		return "Signature is required"
	}

	images := []struct {
		data, name string
	}{
		{req.SignatureData, "signature"},
		{req.Photo1Data, "photo1"},
		{req.Photo2Data, "photo2"},
	}
	for _, img := range images {
		if len(img.data) > maxSingleImageBase64 {
			return img.name + " image is too large. Please use a smaller image."
		}
	}
	if len(req.SignatureData)+len(req.Photo1Data)+len(req.Photo2Data) > maxTotalBase64 {
		return "Total image data is too large. Please use smaller images."
	}
	return ""
}

// Submit handles a passenger booking end to end: validate, render, persist,
// notify, mirror. Only validation failures reach the caller as errors; every
// downstream delivery problem is logged and absorbed.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)

	var req submitRequest
	if err := decodeJSONBody(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "No data provided")
		return
	}

	if msg := req.validate(); msg != "" {
		jsonError(w, http.StatusBadRequest, msg)
		return
	}

	signature := h.decodeImageField("signature", req.SignatureData)
	photo1 := h.decodeImageField("photo1", req.Photo1Data)
	photo2 := h.decodeImageField("photo2", req.Photo2Data)

	now := time.Now()
	ticketNo, err := h.Counter.Next(r.Context())
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("Failed to issue ticket number: %v", err))
		jsonError(w, http.StatusInternalServerError, "Server error")
		return
	}

	numBags := req.NumBags
	if numBags == "" {
		numBags = "0"
	}
	bagWeight := req.BagWeight
	if bagWeight == "" {
		bagWeight = "0"
	}

	sub := models.Submission{
		TicketNo:     ticketNo,
		Timestamp:    now.Format("2006-01-02 15:04:05"),
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.TrimSpace(req.Email),
		BodyWeight:   req.BodyWeight,
		NumBags:      numBags,
		BagWeight:    bagWeight,
		FlightDate:   req.FlightDate,
		FlightTime:   req.FlightTime,
		Route:        req.Route,
		Registration: req.Registration,
		Pilot:        req.Pilot,
		DGAck:        req.DGAcknowledged,
	}

	flightID := flight.ID(sub.FlightDate, sub.Route, sub.Registration)

	pdf, clipped, err := h.Renderer.Render(sub, signature, photo1, photo2)
	if err != nil {
		h.Logger.Error("RENDER", fmt.Sprintf("Failed to render ticket #%d: %v", ticketNo, err))
		jsonError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if clipped {
		h.Logger.Warn("RENDER", fmt.Sprintf("Conditions text clipped on ticket #%d", ticketNo))
	}

	filename := ticket.Filename(now, sub.Name)
	if _, err := h.Tickets.Save(flightID, filename, pdf); err != nil {
		h.Logger.Error("API", fmt.Sprintf("Failed to save ticket: %v", err))
		jsonError(w, http.StatusInternalServerError, "Server error")
		return
	}
	h.Logger.LogRender(filename, "Ticket saved")

	if err := h.Manifest.Append(flightID, sub); err != nil {
		h.Logger.Error("MANIFEST", fmt.Sprintf("Failed to append to manifest: %v", err))
		jsonError(w, http.StatusInternalServerError, "Server error")
		return
	}
	h.Logger.LogManifest(flightID, fmt.Sprintf("Row appended for ticket #%d", ticketNo))

	// Passenger first, then pilot; both best-effort.
	h.Dispatcher.SendPassengerReceipt(sub, pdf)

	summary, err := h.Manifest.Summarize(flightID)
	if err != nil {
		h.Logger.Error("MANIFEST", fmt.Sprintf("Failed to summarize flight: %v", err))
	} else {
		h.Dispatcher.SendPilotUpdate(flightID, summary)
	}

	if h.SharePoint != nil && h.SharePoint.Enabled() {
		h.mirrorToSharePoint(r.Context(), flightID, filename, pdf, sub.FlightDate)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"message":   "Ticket submitted successfully! Check your email for confirmation.",
		"ticket_id": filename,
	})
}

func (h *Handler) mirrorToSharePoint(ctx context.Context, flightID, filename string, pdf []byte, flightDate string) {
	h.SharePoint.Upload(ctx, filename, pdf, flightDate)
	if data, err := os.ReadFile(h.Manifest.FilePath(flightID)); err == nil {
		h.SharePoint.Upload(ctx, flightID+".csv", data, flightDate)
	}
}

// decodeImageField accepts both bare base64 and data-URL forms. Decode
// failures degrade to an absent image.
func (h *Handler) decodeImageField(name, data string) []byte {
	if data == "" {
		return nil
	}
	if idx := strings.Index(data, ","); idx >= 0 {
		data = data[idx+1:]
	}
	decoded, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("Failed to decode %s image: %v", name, err))
		return nil
	}
	return decoded
}
