package router

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"idscan/internal/handlers"
	"idscan/internal/middleware"
)

func RegisterRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.CORSMiddleware)
	r.Use(middleware.LoggingMiddleware)

	r.Get("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "ok")
	})

	// Card scanning (public: the card itself is the credential)
	r.Post("/api/v1/cards/register", handlers.RegisterCard)
	r.Post("/api/v1/cards/login", handlers.CardLogin)

	// Face-match verification callback from the recognition service
	r.Post("/api/v1/verify", handlers.VerifyFace)

	// Public card views (token or QR mediated)
	r.Get("/api/v1/card-info/{id}", handlers.GetSharedCardInfo)
	r.Get("/api/v1/cards/{id}/qrcode", handlers.GetCardQRCode)

	// Admin auth
	r.Post("/api/v1/auth/signup", handlers.AdminSignup)
	r.Post("/api/v1/auth/login", handlers.AdminLogin)

	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware)
		r.Get("/api/v1/auth/me", handlers.AdminMe)
		r.Get("/api/v1/cards", handlers.AllCards)
		r.Get("/api/v1/cards/{id}", handlers.GetCard)
		r.Get("/api/v1/cards/search/{registerNumber}", handlers.SearchByRegisterNumber)
		r.Put("/api/v1/cards/{id}/verify", handlers.MarkCardVerified)
		r.Delete("/api/v1/cards/{id}", handlers.DeleteCard)
		r.Post("/api/v1/cards/generate-share-link", handlers.GenerateShareLink)
		r.Get("/api/v1/verifications", handlers.ListVerifications)
		r.Get("/api/v1/verifications/granted", handlers.GrantedVerifications)
		r.Get("/api/v1/verifications/denied", handlers.DeniedVerifications)
	})

	return r
}
