package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/kita-hr/leave-backend-go/internal/config"
	"github.com/kita-hr/leave-backend-go/internal/domain/user"
	"github.com/kita-hr/leave-backend-go/internal/handler/http/middleware"
	"github.com/kita-hr/leave-backend-go/internal/pkg/jwt"
)

func NewRouter(
	cfg *config.Config,
	jwtService jwt.Service,
	authHandler AuthHandler,
	userHandler UserHandler,
	quotaHandler QuotaHandler,
	requestHandler RequestHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "leave-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Get("/me", userHandler.Me)

			r.Route("/requests", func(r chi.Router) {
				r.Post("/", requestHandler.Submit)
				r.Get("/my", requestHandler.ListMine)
				r.Get("/{id}", requestHandler.GetByID)
				r.Get("/{id}/attachment", requestHandler.DownloadAttachment)

				// Manager stage
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Get("/pending/manager", requestHandler.ListPendingManager)
					r.Post("/{id}/manager-decision", requestHandler.ManagerDecide)
				})

				// HR stage
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireHR)
					r.Get("/pending/hr", requestHandler.ListPendingHR)
					r.Post("/{id}/hr-decision", requestHandler.HRDecide)
				})
			})

			r.Route("/quotas", func(r chi.Router) {
				r.Get("/my", quotaHandler.MyBalance)

				// HR only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireHR)
					r.Get("/summary", quotaHandler.Summary)
					r.Get("/{id}", quotaHandler.UserBalance)
					r.Post("/{id}/adjust", quotaHandler.AdjustUser)
					r.Post("/bulk-adjust", quotaHandler.BulkAdjust)
				})
			})

			r.Route("/users", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionManageUsers))
				r.Get("/", userHandler.List)
				r.Post("/", userHandler.Create)
				r.Get("/managers", userHandler.ListManagers)
				r.Get("/{id}", userHandler.GetByID)
				r.Put("/{id}", userHandler.Update)
				r.Delete("/{id}", userHandler.Delete)
				r.Post("/{id}/reassign-reports", userHandler.ReassignReports)
			})
		})
	})
	return r
}
