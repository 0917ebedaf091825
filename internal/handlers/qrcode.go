package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/skip2/go-qrcode"
)

// GetCardQRCode handles GET /api/v1/cards/{id}/qrcode and returns a PNG QR
// code pointing at the card's public page.
func GetCardQRCode(w http.ResponseWriter, r *http.Request) {
	cardID := chi.URLParam(r, "id")
	if cardID == "" {
		http.Error(w, "missing card id", http.StatusBadRequest)
		return
	}

	data := strings.TrimRight(cfg.FrontendBaseURL, "/") + "/card/" + cardID

	png, err := qrcode.Encode(data, qrcode.Medium, 256)
	if err != nil {
		http.Error(w, "failed to generate QR code", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
