package rest

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct {
	logger *slog.Logger
	router *gin.Engine
}

func New(logger *slog.Logger, uGame uGame, storage pinger) *Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.SetHTMLTemplate(template.Must(template.New("").Funcs(viewFuncs).ParseFS(templates, "templates/*.tmpl")))

	handlers := NewHandlers(logger, uGame)
	ping := NewPingHandler(storage)

	router.GET("/ping", ping.Ping)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.GET("/", handlers.Home)
	router.GET("/games/:id/view", handlers.View)

	games := router.Group("/games")
	games.POST("", handlers.CreateGame)
	games.GET("/:id", handlers.GetGame)
	games.GET("/:id/board", handlers.GetBoard)
	games.POST("/:id/step", handlers.Step)
	games.POST("/:id/run", handlers.Run)
	games.DELETE("/:id", handlers.DeleteGame)

	return &Server{
		logger: logger.With("component", "rest"),
		router: router,
	}
}

func (that *Server) Handler() http.Handler {
	return that.router
}

// Start serves HTTP until ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
