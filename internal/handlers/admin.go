package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"idscan/internal/db"
	"idscan/internal/middleware"
	"idscan/internal/models"
)

const adminTokenTTL = 24 * time.Hour

type adminCredentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
}

// AdminSignup handles POST /api/v1/auth/signup.
func AdminSignup(w http.ResponseWriter, r *http.Request) {
	var req adminCredentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.Password == "" {
		writeJSONResp(w, http.StatusBadRequest, map[string]any{"success": false, "message": "username and password are required"})
		return
	}

	var existing models.Admin
	if err := db.DB.Where("username = ?", req.Username).First(&existing).Error; err == nil {
		writeJSONResp(w, http.StatusConflict, map[string]any{"success": false, "message": "username already exists"})
		return
	} else if !isNotFound(err) {
		writeJSONResp(w, http.StatusInternalServerError, map[string]any{"success": false, "message": "database error"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeJSONResp(w, http.StatusInternalServerError, map[string]any{"success": false, "message": "failed to hash password"})
		return
	}
	admin := models.Admin{
		Username:     req.Username,
		PasswordHash: string(hash),
		Email:        req.Email,
		FullName:     req.FullName,
	}
	if err := db.DB.Create(&admin).Error; err != nil {
		writeJSONResp(w, http.StatusInternalServerError, map[string]any{"success": false, "message": "failed to create account"})
		return
	}

	log.Info().Str("username", admin.Username).Msg("new admin account created")
	writeJSONResp(w, http.StatusOK, map[string]any{
		"success":  true,
		"message":  "Account created successfully",
		"username": admin.Username,
	})
}

// AdminLogin handles POST /api/v1/auth/login and issues an HS256 session
// token.
func AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req adminCredentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONResp(w, http.StatusBadRequest, map[string]any{"success": false, "message": "invalid JSON body"})
		return
	}

	var admin models.Admin
	err := db.DB.Where("username = ?", req.Username).First(&admin).Error
	if isNotFound(err) || (err == nil && bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)) != nil) {
		writeJSONResp(w, http.StatusUnauthorized, map[string]any{"success": false, "message": "invalid credentials"})
		return
	} else if err != nil {
		writeJSONResp(w, http.StatusInternalServerError, map[string]any{"success": false, "message": "database error"})
		return
	}

	now := time.Now()
	claims := middleware.AdminClaims{
		Username: admin.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(adminTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(middleware.Secret)
	if err != nil {
		writeJSONResp(w, http.StatusInternalServerError, map[string]any{"success": false, "message": "failed to sign token"})
		return
	}

	db.DB.Model(&admin).Update("last_login", now)

	writeJSONResp(w, http.StatusOK, map[string]any{
		"success":  true,
		"message":  "Login successful",
		"username": admin.Username,
		"fullName": admin.FullName,
		"token":    signed,
	})
}

// AdminMe handles GET /api/v1/auth/me (protected).
func AdminMe(w http.ResponseWriter, r *http.Request) {
	username, ok := r.Context().Value(middleware.AdminUserKey).(string)
	if !ok || username == "" {
		writeJSONResp(w, http.StatusUnauthorized, map[string]any{"success": false, "message": "unauthorized"})
		return
	}
	var admin models.Admin
	err := db.DB.Where("username = ?", username).First(&admin).Error
	if isNotFound(err) {
		writeJSONResp(w, http.StatusNotFound, map[string]any{"success": false, "message": "account not found"})
		return
	} else if err != nil {
		writeJSONResp(w, http.StatusInternalServerError, map[string]any{"success": false, "message": "database error"})
		return
	}
	writeJSONResp(w, http.StatusOK, map[string]any{
		"success": true,
		"admin":   admin,
	})
}
