package api

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"os"

	"heli-ticketing/internal/link"
	"heli-ticketing/internal/models"
	"heli-ticketing/internal/notify"
)

func (h *Handler) authorized(r *http.Request) bool {
	return r.URL.Query().Get("key") == h.Config.Admin.Key ||
		r.FormValue("key") == h.Config.Admin.Key
}

// AdminDashboard renders the admin page. A wrong or missing key still gets
// the page, just with the login prompt instead of flight data.
func (h *Handler) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	data := map[string]interface{}{
		"Authorized": false,
		"Key":        "",
		"Flights":    []models.FlightSummary{},
	}

	if h.authorized(r) {
		flights, err := h.Manifest.ListFlights()
		if err != nil {
			h.Logger.Error("API", fmt.Sprintf("Failed to list flights: %v", err))
		}
		summaries := make([]models.FlightSummary, 0, len(flights))
		for _, id := range flights {
			summary, err := h.Manifest.Summarize(id)
			if err != nil {
				h.Logger.Error("API", fmt.Sprintf("Failed to summarize flight %s: %v", id, err))
				continue
			}
			summaries = append(summaries, summary)
		}
		data["Authorized"] = true
		data["Key"] = h.Config.Admin.Key
		data["Flights"] = summaries
	}

	if err := h.templates.ExecuteTemplate(w, "admin.html", data); err != nil {
		h.Logger.Error("API", fmt.Sprintf("Failed to render admin page: %v", err))
	}
}

// CreateLink builds a prefilled booking URL plus QR code and optionally
// mails it out.
func (h *Handler) CreateLink(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid form data")
		return
	}
	if !h.authorized(r) {
		jsonError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	fields := models.FlightFields{
		Date:         r.FormValue("date"),
		Time:         r.FormValue("time"),
		Route:        r.FormValue("route"),
		Registration: r.FormValue("reg"),
		Pilot:        r.FormValue("pilot"),
	}
	if err := link.Validate(fields); err != nil {
		jsonError(w, http.StatusBadRequest, "All flight details are required")
		return
	}

	shareURL := link.BuildShareURL(h.baseURL(r), fields)
	qrPNG, err := link.QRCodePNG(shareURL)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("Failed to generate QR code: %v", err))
		jsonError(w, http.StatusInternalServerError, "Server error")
		return
	}

	if recipients := notify.SplitRecipients(r.FormValue("emails")); len(recipients) > 0 {
		h.Dispatcher.SendFlightLink(fields, recipients, shareURL, qrPNG)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"url":     shareURL,
		"qr":      base64.StdEncoding.EncodeToString(qrPNG),
	})
}

// baseURL prefers the configured public URL and falls back to the request
// host, so links survive reverse proxies only when PUBLIC_BASE_URL is set.
func (h *Handler) baseURL(r *http.Request) string {
	if h.Config.Server.PublicBaseURL != "" {
		return h.Config.Server.PublicBaseURL
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

func (h *Handler) DownloadManifest(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(r) {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	flightID := r.URL.Query().Get("flight_id")
	if flightID == "" {
		http.Error(w, "flight_id required", http.StatusBadRequest)
		return
	}

	path := h.Manifest.FilePath(flightID)
	if _, err := os.Stat(path); err != nil {
		http.Error(w, "No manifest found for this flight", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="%s_manifest.csv"`, flightID))
	http.ServeFile(w, r, path)
}

func (h *Handler) DownloadTickets(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(r) {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	flightID := r.URL.Query().Get("flight_id")
	if flightID == "" {
		http.Error(w, "flight_id required", http.StatusBadRequest)
		return
	}
	if !h.Tickets.HasTickets(flightID) {
		http.Error(w, "No tickets found for this flight", http.StatusNotFound)
		return
	}

	zipped, err := h.Tickets.ZipAll(flightID)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("Failed to zip tickets for %s: %v", flightID, err))
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="tickets_%s.zip"`, flightID))
	w.Write(zipped)
}
