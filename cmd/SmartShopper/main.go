package main

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/sing9814/smartshopper-sub000/internal/auth"
	database "github.com/sing9814/smartshopper-sub000/internal/db"
	emailService "github.com/sing9814/smartshopper-sub000/internal/email"
	"github.com/sing9814/smartshopper-sub000/internal/storage/postgres"
	"github.com/sing9814/smartshopper-sub000/internal/user"
	"github.com/sing9814/smartshopper-sub000/internal/wardrobe/application"
	"github.com/sing9814/smartshopper-sub000/internal/wardrobe/domain"
	"github.com/sing9814/smartshopper-sub000/internal/wardrobe/infrastructure"
	"github.com/sing9814/smartshopper-sub000/internal/wardrobe/interfaces"
	"github.com/sing9814/smartshopper-sub000/pkg/logging"
)

type Response struct {
	Message string `json:"message"`
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		next.ServeHTTP(w, r)

		slog.Info("Request completed", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]interface{}{
		"status":  "error",
		"message": message,
		"code":    status,
	})
}

type Server struct {
	router            *http.ServeMux
	authHandler       *auth.Handler
	userHandler       *user.Handler
	authService       auth.Service
	categoryHandler   *interfaces.CategoryHandler
	purchaseHandler   *interfaces.PurchaseHandler
	collectionHandler *interfaces.CollectionHandler
}

func NewServer(
	authHandler *auth.Handler,
	authService auth.Service,
	userHandler *user.Handler,
	categoryHandler *interfaces.CategoryHandler,
	purchaseHandler *interfaces.PurchaseHandler,
	collectionHandler *interfaces.CollectionHandler,
) *Server {
	return &Server{
		authHandler:       authHandler,
		userHandler:       userHandler,
		authService:       authService,
		categoryHandler:   categoryHandler,
		purchaseHandler:   purchaseHandler,
		collectionHandler: collectionHandler,
		router:            http.NewServeMux(),
	}
}

func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(Response{Message: "Path not found"})
}

func checkConfiguration() error {
	err := godotenv.Load()
	if err != nil {
		slog.Info("No .env file found, using system environment variables")
	}

	if os.Getenv("JWT_SECRET") == "" {
		return errors.New("no JWT_SECRET Provided")
	}
	return nil
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ready",
	})
}

func (s *Server) RegisterRoutes() {
	protect := s.authService.JWTAccessTokenMiddleware()

	// Public routes
	publicRoutes := http.NewServeMux()
	publicRoutes.Handle("POST /api/register", http.HandlerFunc(s.userHandler.HandleRegister))
	publicRoutes.Handle("POST /api/email/verify", http.HandlerFunc(s.userHandler.HandleVerifyEmail))
	publicRoutes.Handle("POST /api/auth/login", http.HandlerFunc(s.authHandler.HandleLogin))
	publicRoutes.Handle("POST /api/auth/2fa/verify", http.HandlerFunc(s.authHandler.HandleVerifyTwoFactor))
	publicRoutes.Handle("POST /api/auth/logout", http.HandlerFunc(s.authHandler.HandleLogout))
	publicRoutes.Handle("GET /api/ready", http.HandlerFunc(s.handleReady))

	// Protected routes (using JWT Access Token Middleware)
	protectedRoutes := http.NewServeMux()

	protectedRoutes.Handle("GET /api/protected/profile", protect(http.HandlerFunc(s.userHandler.HandleGetProfile)))
	protectedRoutes.Handle("PUT /api/protected/profile", protect(http.HandlerFunc(s.userHandler.HandleUpdateProfile)))

	protectedRoutes.Handle("POST /api/protected/2fa/register", protect(http.HandlerFunc(s.authHandler.HandleRegisterTwoFactor)))
	protectedRoutes.Handle("POST /api/protected/2fa/confirm", protect(http.HandlerFunc(s.authHandler.HandleConfirmTwoFactor)))
	protectedRoutes.Handle("POST /api/protected/2fa/request-disable-code", protect(http.HandlerFunc(s.authHandler.HandleRequestTwoFactorDisableCode)))
	protectedRoutes.Handle("DELETE /api/protected/2fa/disable", protect(http.HandlerFunc(s.authHandler.HandleDisableTwoFactor)))

	// CATEGORIES API
	protectedRoutes.Handle("GET /api/protected/categories", protect(http.HandlerFunc(s.categoryHandler.GetCategories)))
	protectedRoutes.Handle("GET /api/protected/categories/search", protect(http.HandlerFunc(s.categoryHandler.SearchCategories)))
	protectedRoutes.Handle("GET /api/protected/categories/custom", protect(http.HandlerFunc(s.categoryHandler.GetCustomCategories)))
	protectedRoutes.Handle("POST /api/protected/categories/custom", protect(http.HandlerFunc(s.categoryHandler.AddCustomCategory)))
	protectedRoutes.Handle("PUT /api/protected/categories/custom/{categoryID}", protect(http.HandlerFunc(s.categoryHandler.EditCustomCategory)))
	protectedRoutes.Handle("DELETE /api/protected/categories/custom/{categoryID}", protect(http.HandlerFunc(s.categoryHandler.DeleteCustomCategory)))

	// PURCHASES API
	protectedRoutes.Handle("GET /api/protected/purchases", protect(http.HandlerFunc(s.purchaseHandler.GetPurchases)))
	protectedRoutes.Handle("POST /api/protected/purchases", protect(http.HandlerFunc(s.purchaseHandler.CreatePurchase)))
	protectedRoutes.Handle("PUT /api/protected/purchases/{purchaseID}", protect(http.HandlerFunc(s.purchaseHandler.UpdatePurchase)))
	protectedRoutes.Handle("DELETE /api/protected/purchases/{purchaseID}", protect(http.HandlerFunc(s.purchaseHandler.DeletePurchase)))
	protectedRoutes.Handle("POST /api/protected/purchases/bulk-delete", protect(http.HandlerFunc(s.purchaseHandler.BulkDeletePurchases)))
	protectedRoutes.Handle("POST /api/protected/purchases/{purchaseID}/wears", protect(http.HandlerFunc(s.purchaseHandler.RecordWear)))

	// COLLECTIONS API
	protectedRoutes.Handle("GET /api/protected/collections", protect(http.HandlerFunc(s.collectionHandler.GetCollections)))
	protectedRoutes.Handle("POST /api/protected/collections", protect(http.HandlerFunc(s.collectionHandler.CreateCollection)))
	protectedRoutes.Handle("PUT /api/protected/collections/{collectionID}", protect(http.HandlerFunc(s.collectionHandler.UpdateCollection)))
	protectedRoutes.Handle("DELETE /api/protected/collections/{collectionID}", protect(http.HandlerFunc(s.collectionHandler.DeleteCollection)))
	protectedRoutes.Handle("POST /api/protected/collections/items", protect(http.HandlerFunc(s.collectionHandler.AddItems)))

	// Refresh token routes
	refreshTokenRoutes := http.NewServeMux()
	refreshTokenRoutes.Handle("PUT /api/refresh/token", s.authService.JWTRefreshTokenMiddleware()(http.HandlerFunc(s.authHandler.RefreshAccessToken)))

	// Main router
	mainRouter := http.NewServeMux()

	mainRouter.Handle("/api/", publicRoutes)
	mainRouter.Handle("/api/protected/", protectedRoutes)
	mainRouter.Handle("/api/refresh/", refreshTokenRoutes)
	mainRouter.Handle("/", http.HandlerFunc(notFoundHandler))

	s.router = mainRouter
}

func startSessionCleanup(sessionManager auth.SessionManagerInterface) error {
	c := cron.New()
	_, err := c.AddFunc("@every 10m", func() {
		removed := sessionManager.CleanupExpired()
		if removed > 0 {
			slog.Info("Expired 2FA session tokens removed", "count", removed)
		}
	})
	if err != nil {
		return err
	}
	c.Start()
	return nil
}

func main() {
	logging.Setup()

	if err := checkConfiguration(); err != nil {
		slog.Error("Missing configuration, update to start server", "error", err)
		os.Exit(1)
	}

	dbService, err := database.NewDBService()
	if err != nil {
		slog.Error("Could not initialize database", "error", err)
		os.Exit(1)
	}
	defer dbService.Close()

	store, err := postgres.New(dbService.DB)
	if err != nil {
		slog.Error("Could not initialize document store", "error", err)
		os.Exit(1)
	}

	authRepo := auth.NewUserRepository(dbService.DB)
	userRepo := user.NewUserRepository(dbService.DB)

	sessionManager := auth.NewSessionManager()
	jwtManager := auth.NewJWTManager()
	newEmailService := emailService.NewEmailService()
	authenticator := auth.Authenticator{}

	userService := user.NewUserService(userRepo, newEmailService)
	userHandler := user.NewHandler(userService)
	authService := auth.NewAuthService(authRepo, userService, sessionManager, jwtManager, authenticator)
	authHandler := auth.NewHandler(authService)

	categoryRepo := infrastructure.NewCategoryRepository(store)
	categoryService := application.NewCategoryService(categoryRepo, domain.DefaultCategories(), uuid.NewString)
	categoryHandler := interfaces.NewCategoryHandler(categoryService, respondJSON, respondError)

	purchaseRepo := infrastructure.NewPurchaseRepository(store)
	purchaseService := application.NewPurchaseService(purchaseRepo, uuid.NewString, time.Now)
	purchaseHandler := interfaces.NewPurchaseHandler(purchaseService, respondJSON, respondError)

	collectionRepo := infrastructure.NewCollectionRepository(store)
	collectionService := application.NewCollectionService(collectionRepo, uuid.NewString, time.Now)
	collectionHandler := interfaces.NewCollectionHandler(collectionService, respondJSON, respondError)

	server := NewServer(authHandler, authService, userHandler, categoryHandler, purchaseHandler, collectionHandler)
	server.RegisterRoutes()

	if err := startSessionCleanup(sessionManager); err != nil {
		slog.Error("Session cleanup scheduler didn't start", "error", err)
		os.Exit(1)
	}

	handler := loggingMiddleware(http.HandlerFunc(server.router.ServeHTTP))
	slog.Info("Server starting on port 8080...")
	if err := http.ListenAndServe(":8080", handler); err != nil {
		slog.Error("Server failed to start", "error", err)
		os.Exit(1)
	}
}
