package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/kita-hr/leave-backend-go/internal/config"
	appHTTP "github.com/kita-hr/leave-backend-go/internal/handler/http"
	"github.com/kita-hr/leave-backend-go/internal/pkg/cron"
	"github.com/kita-hr/leave-backend-go/internal/pkg/database"
	"github.com/kita-hr/leave-backend-go/internal/pkg/jwt"
	"github.com/kita-hr/leave-backend-go/internal/pkg/storage"
	"github.com/kita-hr/leave-backend-go/internal/repository/postgresql"
	authService "github.com/kita-hr/leave-backend-go/internal/service/auth"
	fileService "github.com/kita-hr/leave-backend-go/internal/service/file"
	quotaService "github.com/kita-hr/leave-backend-go/internal/service/quota"
	requestService "github.com/kita-hr/leave-backend-go/internal/service/request"
	userService "github.com/kita-hr/leave-backend-go/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	quotaRepo := postgresql.NewQuotaRepository(db)
	requestRepo := postgresql.NewRequestRepository(db)

	jwtSvc := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath)
	if err != nil {
		log.Fatal("Failed to initialize local storage:", err)
	}

	fileSvc := fileService.NewFileService(fileStorage)
	authSvc := authService.NewService(userRepo, jwtSvc)
	userSvc := userService.NewService(db, userRepo)
	quotaSvc := quotaService.NewService(db, quotaRepo, userRepo)
	requestSvc := requestService.NewService(db, requestRepo, quotaRepo, userRepo)

	authHandler := appHTTP.NewAuthHandler(authSvc, jwtSvc)
	userHandler := appHTTP.NewUserHandler(userSvc)
	quotaHandler := appHTTP.NewQuotaHandler(quotaSvc)
	requestHandler := appHTTP.NewRequestHandler(requestSvc, fileSvc)

	scheduler := cron.NewScheduler()
	cron.NewQuotaJobs(quotaSvc).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		cfg,
		jwtSvc,
		authHandler,
		userHandler,
		quotaHandler,
		requestHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
