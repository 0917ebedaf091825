// Package handlers implements the HTTP endpoints around the card parsing
// engine: registration and login by scanned card, record management,
// face-match verification logs, admin auth, QR codes and share links.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"idscan/internal/cache"
	"idscan/internal/config"
	"idscan/internal/db"
	"idscan/internal/models"
	"idscan/internal/ocr"
	"idscan/internal/parser"
)

var (
	cfg       config.Config
	cardParse *parser.Service
	extractor ocr.TextExtractor
)

// Init wires the handler package's collaborators. Called once from main.
func Init(c config.Config, p *parser.Service, e ocr.TextExtractor) {
	cfg = c
	cardParse = p
	extractor = e
}

func writeJSONResp(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// formFileTolerant fetches a multipart file by its expected field name, then
// falls back to common alternatives and finally the first available file
// field. Frontends are sloppy about field names.
func formFileTolerant(r *http.Request, field string, alts ...string) (multipart.File, *multipart.FileHeader, error) {
	if f, h, err := r.FormFile(field); err == nil {
		return f, h, nil
	}
	if r.MultipartForm == nil || r.MultipartForm.File == nil {
		return nil, nil, errors.New("missing file field " + field)
	}
	available := make([]string, 0, len(r.MultipartForm.File))
	for k := range r.MultipartForm.File {
		available = append(available, k)
	}
	for _, a := range alts {
		for _, k := range available {
			if strings.EqualFold(k, a) {
				return r.FormFile(k)
			}
		}
	}
	if len(available) > 0 {
		log.Debug().Strs("fields", available).Str("expected", field).Msg("falling back to first multipart file field")
		return r.FormFile(available[0])
	}
	return nil, nil, errors.New("missing file field " + field)
}

// findCardByRegisterNumber looks a stored record up through the redis cache
// with a database fallthrough.
func findCardByRegisterNumber(ctx context.Context, registerNumber string) (*models.CardData, error) {
	if card, ok := cache.GetCard(ctx, registerNumber); ok {
		return card, nil
	}
	var card models.CardData
	err := db.DB.Where("register_number = ?", registerNumber).First(&card).Error
	if err != nil {
		return nil, err
	}
	cache.SetCard(ctx, &card)
	return &card, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
