package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"

	"idscan/internal/db"
	"idscan/internal/middleware"
	"idscan/internal/models"
)

type shareClaims struct {
	CardID string `json:"card_id"`
	jwt.RegisteredClaims
}

type generateShareLinkResp struct {
	ShareableURL string `json:"shareable_url"`
}

// GenerateShareLink handles POST /api/v1/cards/generate-share-link
// (protected). It signs a short-lived token that lets anyone with the link
// view one card record.
func GenerateShareLink(w http.ResponseWriter, r *http.Request) {
	// Be liberal in what we accept from the frontend
	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSONResp(w, http.StatusBadRequest, map[string]any{"status": "Bad_Request", "message": "invalid json"})
		return
	}

	cardID := ""
	if v, ok := payload["card_id"].(string); ok {
		cardID = strings.TrimSpace(v)
	} else if v, ok := payload["cardId"].(string); ok { // optional camelCase fallback
		cardID = strings.TrimSpace(v)
	}
	if cardID == "" {
		writeJSONResp(w, http.StatusBadRequest, map[string]any{"status": "Bad_Request", "message": "card_id is required"})
		return
	}

	// expires_in_hours may come as number or string, and snake_case or camelCase
	parseHours := func(x any) (int, bool) {
		switch t := x.(type) {
		case float64:
			return int(t), true
		case json.Number:
			if i, err := strconv.Atoi(t.String()); err == nil {
				return i, true
			}
		case string:
			if i, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
				return i, true
			}
		}
		return 0, false
	}
	expires := 0
	for _, key := range []string{"expires_in_hours", "expiresInHours", "duration"} {
		if v, ok := payload[key]; ok {
			if i, ok2 := parseHours(v); ok2 {
				expires = i
				break
			}
		}
	}
	// Enforce 1..168 hours to avoid immediately-expired tokens
	if expires < 1 || expires > 168 {
		writeJSONResp(w, http.StatusBadRequest, map[string]any{"status": "Bad_Request", "message": "expires_in_hours must be between 1 and 168"})
		return
	}

	var card models.CardData
	if err := db.DB.Where("id = ?", cardID).First(&card).Error; err != nil {
		writeJSONResp(w, http.StatusNotFound, map[string]any{"status": "Not_Found", "message": "card not found"})
		return
	}

	exp := time.Now().Add(time.Duration(expires) * time.Hour)
	claims := shareClaims{
		CardID: cardID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(middleware.Secret)
	if err != nil {
		writeJSONResp(w, http.StatusInternalServerError, map[string]any{"status": "Server_Error", "message": "failed to sign share token"})
		return
	}

	url := fmt.Sprintf("%s/card/%s?token=%s", strings.TrimRight(cfg.FrontendBaseURL, "/"), cardID, signed)
	writeJSONResp(w, http.StatusOK, generateShareLinkResp{ShareableURL: url})
}

// GetSharedCardInfo handles GET /api/v1/card-info/{id}?token=... The token
// must be valid, unexpired and issued for the same card id.
func GetSharedCardInfo(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeJSONResp(w, http.StatusBadRequest, map[string]any{"status": "Bad_Request", "message": "missing id"})
		return
	}
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		writeJSONResp(w, http.StatusUnauthorized, map[string]any{"status": "Unauthorized", "message": "This share link is invalid or has expired."})
		return
	}

	claims := &shareClaims{}
	parsed, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return middleware.Secret, nil
	})
	if err != nil || !parsed.Valid || claims.CardID == "" || claims.ExpiresAt == nil || time.Now().After(claims.ExpiresAt.Time) {
		writeJSONResp(w, http.StatusUnauthorized, map[string]any{"status": "Unauthorized", "message": "This share link is invalid or has expired."})
		return
	}
	if claims.CardID != id {
		writeJSONResp(w, http.StatusForbidden, map[string]any{"status": "Forbidden", "message": "id mismatch"})
		return
	}

	var card models.CardData
	if err := db.DB.Where("id = ?", id).First(&card).Error; err != nil {
		writeJSONResp(w, http.StatusNotFound, map[string]any{"status": "Not_Found", "message": "card not found"})
		return
	}

	writeJSONResp(w, http.StatusOK, map[string]any{
		"card":        card,
		"valid_until": claims.ExpiresAt.Time,
	})
}
