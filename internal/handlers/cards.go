package handlers

import (
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"idscan/internal/cache"
	"idscan/internal/db"
	"idscan/internal/models"
)

// loginNameThreshold is the minimum Jaro-Winkler similarity between the
// scanned and stored names for a card login to succeed.
const loginNameThreshold = 0.85

// readCardImage pulls one uploaded card image out of the multipart form.
func readCardImage(r *http.Request, field string) ([]byte, string, error) {
	file, header, err := formFileTolerant(r, field, "file", "upload", "image", "card", field+"[]", "files[]")
	if err != nil {
		return nil, "", err
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil || len(data) == 0 {
		return nil, "", err
	}
	name := ""
	if header != nil {
		name = header.Filename
	}
	return data, name, nil
}

// RegisterCard handles POST /api/v1/cards/register. It OCRs the front and
// back images in parallel, parses each side, merges them and stores the
// record unless the register number already exists.
func RegisterCard(w http.ResponseWriter, r *http.Request) {
	maxBytes := cfg.MaxUploadMB << 20
	r.Body = http.MaxBytesReader(w, r.Body, 2*maxBytes)
	if err := r.ParseMultipartForm(2 * maxBytes); err != nil {
		writeJSONResp(w, http.StatusBadRequest, map[string]any{"status": "Bad_Request", "message": "failed to parse form or files too large"})
		return
	}

	frontImg, frontName, err := readCardImage(r, "front")
	if err != nil {
		writeJSONResp(w, http.StatusBadRequest, map[string]any{"status": "Bad_Request", "message": "missing file field 'front'"})
		return
	}
	backImg, backName, err := readCardImage(r, "back")
	if err != nil {
		writeJSONResp(w, http.StatusBadRequest, map[string]any{"status": "Bad_Request", "message": "missing file field 'back'"})
		return
	}

	ctx := r.Context()

	// The two sides are independent, so OCR them concurrently.
	var wg sync.WaitGroup
	var frontText, backText string
	var frontErr, backErr error
	wg.Add(2)
	go func() {
		defer wg.Done()
		frontText, frontErr = extractor.ExtractText(ctx, frontImg)
	}()
	go func() {
		defer wg.Done()
		backText, backErr = extractor.ExtractText(ctx, backImg)
	}()
	wg.Wait()
	if frontErr != nil || backErr != nil {
		err := frontErr
		if err == nil {
			err = backErr
		}
		writeJSONResp(w, http.StatusBadRequest, map[string]any{"status": "Bad_Request", "message": err.Error()})
		return
	}

	frontData := cardParse.Parse(frontText)
	backData := cardParse.Parse(backText)
	merged := cardParse.Merge(frontData, backData)

	// Regex extraction can miss the register number on badly lit photos;
	// fall back to the LLM parser when one is configured.
	if merged.RegisterNumber == "" && cfg.GeminiAPIKey != "" {
		if pc, perr := ParseCardWithGemini(ctx, frontText); perr == nil {
			merged.RegisterNumber = pc.RegisterNumber
			if merged.Name == "" {
				merged.Name = pc.StudentName
			}
			if merged.Programme == "" {
				merged.Programme = pc.Programme
			}
		} else {
			log.Warn().Err(perr).Msg("gemini fallback parse failed")
		}
	}

	merged.FileName = frontName + " & " + backName
	merged.Verified = false

	if merged.RegisterNumber != "" {
		if _, err := findCardByRegisterNumber(ctx, merged.RegisterNumber); err == nil {
			writeJSONResp(w, http.StatusConflict, map[string]any{
				"status":  "Conflict",
				"message": "A card with this register number is already registered.",
			})
			return
		} else if !isNotFound(err) {
			writeJSONResp(w, http.StatusInternalServerError, map[string]any{"status": "Server_Error", "message": "database error"})
			return
		}
	}

	if err := db.DB.Create(merged).Error; err != nil {
		writeJSONResp(w, http.StatusInternalServerError, map[string]any{"status": "Server_Error", "message": "failed to save card record"})
		return
	}
	cache.SetCard(ctx, merged)

	log.Info().
		Str("register_number", merged.RegisterNumber).
		Str("name", merged.Name).
		Msg("registered new card")

	writeJSONResp(w, http.StatusOK, map[string]any{
		"status":  "success",
		"message": "New card registered successfully",
		"data":    merged,
		"card_id": merged.ID,
	})
}

// CardLogin handles POST /api/v1/cards/login. The front side alone carries
// the register number and name; the stored record must exist and the scanned
// name must fuzzily match the stored one.
func CardLogin(w http.ResponseWriter, r *http.Request) {
	maxBytes := cfg.MaxUploadMB << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		writeJSONResp(w, http.StatusBadRequest, map[string]any{"status": "Bad_Request", "message": "failed to parse form or file too large"})
		return
	}

	img, _, err := readCardImage(r, "front")
	if err != nil {
		writeJSONResp(w, http.StatusBadRequest, map[string]any{"status": "Bad_Request", "message": "missing card image"})
		return
	}

	ctx := r.Context()
	text, err := extractor.ExtractText(ctx, img)
	if err != nil {
		writeJSONResp(w, http.StatusBadRequest, map[string]any{"status": "Bad_Request", "message": err.Error()})
		return
	}

	scanned := cardParse.Parse(text)
	if scanned.RegisterNumber == "" {
		writeJSONResp(w, http.StatusBadRequest, map[string]any{
			"status":  "Bad_Request",
			"message": "Could not extract register number from card",
		})
		return
	}

	stored, err := findCardByRegisterNumber(ctx, scanned.RegisterNumber)
	if isNotFound(err) {
		writeJSONResp(w, http.StatusNotFound, map[string]any{
			"status":        "Not_Found",
			"message":       "Card not found. Please register first.",
			"authenticated": false,
		})
		return
	} else if err != nil {
		writeJSONResp(w, http.StatusInternalServerError, map[string]any{"status": "Server_Error", "message": "database error"})
		return
	}

	metric := metrics.NewJaroWinkler()
	similarity := strutil.Similarity(
		strings.ToLower(strings.TrimSpace(scanned.Name)),
		strings.ToLower(strings.TrimSpace(stored.Name)),
		metric,
	)
	if scanned.Name == "" || similarity < loginNameThreshold {
		writeJSONResp(w, http.StatusUnauthorized, map[string]any{
			"status":        "Unauthorized",
			"message":       "Card details do not match records",
			"authenticated": false,
			"similarity":    similarity,
		})
		return
	}

	writeJSONResp(w, http.StatusOK, map[string]any{
		"status":        "success",
		"message":       "Login successful",
		"authenticated": true,
		"similarity":    similarity,
		"card":          stored,
	})
}

// AllCards handles GET /api/v1/cards.
func AllCards(w http.ResponseWriter, r *http.Request) {
	var cards []models.CardData
	if err := db.DB.Order("created_at desc").Find(&cards).Error; err != nil {
		writeJSONResp(w, http.StatusInternalServerError, map[string]any{"status": "Server_Error", "message": "database error"})
		return
	}
	writeJSONResp(w, http.StatusOK, cards)
}

// GetCard handles GET /api/v1/cards/{id}.
func GetCard(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var card models.CardData
	err := db.DB.Where("id = ?", id).First(&card).Error
	if isNotFound(err) {
		writeJSONResp(w, http.StatusNotFound, map[string]any{"status": "Not_Found", "message": "card not found"})
		return
	} else if err != nil {
		writeJSONResp(w, http.StatusInternalServerError, map[string]any{"status": "Server_Error", "message": "database error"})
		return
	}
	writeJSONResp(w, http.StatusOK, card)
}

// SearchByRegisterNumber handles GET /api/v1/cards/search/{registerNumber}.
func SearchByRegisterNumber(w http.ResponseWriter, r *http.Request) {
	reg := chi.URLParam(r, "registerNumber")
	card, err := findCardByRegisterNumber(r.Context(), reg)
	if isNotFound(err) {
		writeJSONResp(w, http.StatusNotFound, map[string]any{"status": "not_found", "message": "card not found"})
		return
	} else if err != nil {
		writeJSONResp(w, http.StatusInternalServerError, map[string]any{"status": "Server_Error", "message": "database error"})
		return
	}
	writeJSONResp(w, http.StatusOK, map[string]any{"status": "success", "card": card})
}

// MarkCardVerified handles PUT /api/v1/cards/{id}/verify.
func MarkCardVerified(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var card models.CardData
	err := db.DB.Where("id = ?", id).First(&card).Error
	if isNotFound(err) {
		writeJSONResp(w, http.StatusNotFound, map[string]any{"status": "Not_Found", "message": "card not found"})
		return
	} else if err != nil {
		writeJSONResp(w, http.StatusInternalServerError, map[string]any{"status": "Server_Error", "message": "database error"})
		return
	}
	card.Verified = true
	if err := db.DB.Save(&card).Error; err != nil {
		writeJSONResp(w, http.StatusInternalServerError, map[string]any{"status": "Server_Error", "message": "failed to update card"})
		return
	}
	cache.InvalidateCard(r.Context(), card.RegisterNumber)
	writeJSONResp(w, http.StatusOK, map[string]any{"status": "success", "message": "Card verified successfully", "card": card})
}

// DeleteCard handles DELETE /api/v1/cards/{id}.
func DeleteCard(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var card models.CardData
	err := db.DB.Where("id = ?", id).First(&card).Error
	if isNotFound(err) {
		writeJSONResp(w, http.StatusNotFound, map[string]any{"status": "Not_Found", "message": "card not found"})
		return
	} else if err != nil {
		writeJSONResp(w, http.StatusInternalServerError, map[string]any{"status": "Server_Error", "message": "database error"})
		return
	}
	if err := db.DB.Delete(&card).Error; err != nil {
		writeJSONResp(w, http.StatusInternalServerError, map[string]any{"status": "Server_Error", "message": "failed to delete card"})
		return
	}
	cache.InvalidateCard(r.Context(), card.RegisterNumber)
	writeJSONResp(w, http.StatusOK, map[string]any{"status": "success", "message": "Card deleted successfully"})
}
