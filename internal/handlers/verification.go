package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"idscan/internal/db"
	"idscan/internal/models"
)

// faceMatchThreshold is the minimum face-match score for access to be
// granted. Scoring itself happens in the external face-recognition service;
// this endpoint only records and judges the result.
const faceMatchThreshold = 0.85

type verifyRequest struct {
	Name           string  `json:"name"`
	RegisterNumber string  `json:"register_number"`
	MatchScore     float64 `json:"match_score"`
	CardPayload    string  `json:"card_payload"`
}

func saveVerification(v *models.Verification) {
	if err := db.DB.Create(v).Error; err != nil {
		log.Error().Err(err).Msg("failed to save verification record")
	}
}

// VerifyFace handles POST /api/v1/verify.
func VerifyFace(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONResp(w, http.StatusBadRequest, map[string]any{"status": "Bad_Request", "message": "invalid JSON body"})
		return
	}

	card, err := findCardByRegisterNumber(r.Context(), req.RegisterNumber)
	if isNotFound(err) {
		v := &models.Verification{
			Name:           req.Name,
			RegisterNumber: req.RegisterNumber,
			FaceMatchScore: req.MatchScore,
			Status:         models.VerificationNotRegistered,
			CardPayload:    req.CardPayload,
		}
		saveVerification(v)
		writeJSONResp(w, http.StatusOK, map[string]any{
			"success": false,
			"status":  models.VerificationNotRegistered,
			"message": "Card not found. Please register first.",
			"data":    v,
		})
		return
	} else if err != nil {
		writeJSONResp(w, http.StatusInternalServerError, map[string]any{"status": "Server_Error", "message": "database error"})
		return
	}

	status := models.VerificationDenied
	if req.MatchScore >= faceMatchThreshold {
		status = models.VerificationGranted
	}
	v := &models.Verification{
		CardID:         card.ID,
		Name:           req.Name,
		RegisterNumber: req.RegisterNumber,
		FaceMatchScore: req.MatchScore,
		Status:         status,
		CardPayload:    req.CardPayload,
	}
	saveVerification(v)

	log.Info().
		Str("register_number", req.RegisterNumber).
		Float64("score", req.MatchScore).
		Str("status", status).
		Msg("verification attempt")

	writeJSONResp(w, http.StatusOK, map[string]any{
		"success": status == models.VerificationGranted,
		"status":  status,
		"message": verdictMessage(status),
		"data":    v,
		"card":    card,
	})
}

func verdictMessage(status string) string {
	if status == models.VerificationGranted {
		return "Access granted"
	}
	return "Face match failed"
}

// ListVerifications handles GET /api/v1/verifications with an optional
// ?status= filter.
func ListVerifications(w http.ResponseWriter, r *http.Request) {
	q := db.DB.Order("created_at desc")
	if status := r.URL.Query().Get("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	var list []models.Verification
	if err := q.Find(&list).Error; err != nil {
		writeJSONResp(w, http.StatusInternalServerError, map[string]any{"status": "Server_Error", "message": "database error"})
		return
	}
	writeJSONResp(w, http.StatusOK, list)
}

// GrantedVerifications handles GET /api/v1/verifications/granted.
func GrantedVerifications(w http.ResponseWriter, r *http.Request) {
	listByStatus(w, models.VerificationGranted)
}

// DeniedVerifications handles GET /api/v1/verifications/denied.
func DeniedVerifications(w http.ResponseWriter, r *http.Request) {
	listByStatus(w, models.VerificationDenied)
}

func listByStatus(w http.ResponseWriter, status string) {
	var list []models.Verification
	if err := db.DB.Where("status = ?", status).Order("created_at desc").Find(&list).Error; err != nil {
		writeJSONResp(w, http.StatusInternalServerError, map[string]any{"status": "Server_Error", "message": "database error"})
		return
	}
	writeJSONResp(w, http.StatusOK, list)
}
