package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lshigami/Polliwog/config"
	_ "github.com/lshigami/Polliwog/docs" // Swagger docs
	"github.com/lshigami/Polliwog/internal/controller/instructor"
	"github.com/lshigami/Polliwog/internal/logger"
	"github.com/lshigami/Polliwog/internal/service"
	"github.com/lshigami/Polliwog/internal/storage"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
)

// @title Polliwog Instructor API
// @version 1.0
// @description Authoring API for live-polling sessions: sessions, ordered questions, polling state, import/export.
// @contact.name API Support
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		// Core application components
		fx.Provide(
			config.NewConfig,
			storage.NewStateStore, // Provides storage.Store (postgres or memory)
			NewGinEngine,
		),

		// Services layer
		fx.Provide(
			service.NewSessionManager,
			service.NewExplanationService,
		),

		// Controllers layer
		fx.Provide(
			instructor.NewSessionController,
			instructor.NewQuestionController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI at /swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages the server
// lifecycle through fx hooks.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	sessionCtrl *instructor.SessionController,
	questionCtrl *instructor.QuestionController,
) {
	api := router.Group("/api/v1/instructor")
	{
		api.GET("/state", sessionCtrl.GetState)

		sessions := api.Group("/sessions")
		sessions.POST("", sessionCtrl.CreateSession)
		sessions.GET("", sessionCtrl.ListSessions)
		sessions.GET("/active", sessionCtrl.GetActiveSession)
		sessions.PUT("/active", sessionCtrl.SetActiveSession)
		sessions.POST("/import", sessionCtrl.ImportSession)
		sessions.GET("/:session_id", sessionCtrl.GetSession)
		sessions.DELETE("/:session_id", sessionCtrl.DeleteSession)
		sessions.PUT("/:session_id/name", sessionCtrl.RenameSession)
		sessions.PUT("/:session_id/access-code", sessionCtrl.UpdateAccessCode)
		sessions.GET("/:session_id/export", sessionCtrl.ExportSession)

		sessions.POST("/:session_id/questions", questionCtrl.AddQuestion)
		sessions.GET("/:session_id/questions/next", questionCtrl.NextQuestion)
		sessions.GET("/:session_id/questions/previous", questionCtrl.PreviousQuestion)
		sessions.GET("/:session_id/questions/:question_id", questionCtrl.GetQuestion)
		sessions.PUT("/:session_id/questions/:question_id", questionCtrl.UpdateQuestion)
		sessions.DELETE("/:session_id/questions/:question_id", questionCtrl.RemoveQuestion)
		sessions.PUT("/:session_id/questions/:question_id/position", questionCtrl.ReorderQuestion)
		sessions.POST("/:session_id/questions/:question_id/explanation", questionCtrl.SuggestExplanation)
		sessions.PUT("/:session_id/current-question", questionCtrl.SetCurrentQuestion)
		sessions.PUT("/:session_id/polling", questionCtrl.TogglePolling)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Instructor API server starting on port %s", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}
