package websocket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/oxoxo-backend/internal/entity"
	"github.com/rocketscienceinc/oxoxo-backend/internal/usecase"
)

type uGame interface {
	Play(ctx context.Context, opts usecase.GameOptions, observer usecase.Observer) (*entity.Game, error)
	Run(ctx context.Context, id string, observer usecase.Observer) (*entity.Game, error)
}

// Server streams games to watchers, one message per ply.
type Server struct {
	logger   *slog.Logger
	uGame    uGame
	upgrader websocket.Upgrader
}

func New(logger *slog.Logger, uGame uGame) *Server {
	return &Server{
		logger: logger.With("component", "websocket"),
		uGame:  uGame,
		upgrader: websocket.Upgrader{
			HandshakeTimeout: 10 * time.Second,
			CheckOrigin: func(*http.Request) bool {
				return true
			},
		},
	}
}

func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", that.handleWatch)

	return mux
}

// Start - starts WebSocket server and stops it when ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
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

// handleWatch plays a game and streams it. With ?id= the stored game is
// resumed, otherwise a new one is created from size, dimensions and players.
func (that *Server) handleWatch(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "handleWatch")

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(req.Context())
	defer cancel()

	go that.watchClose(conn, cancel)

	opts, err := parseOptions(req)
	if err != nil {
		_ = sendError(conn, err.Error())
		return
	}

	var sendErr error
	observer := func(game *entity.Game) {
		if sendErr != nil {
			return
		}

		if sendErr = sendMessage(conn, actionPly, gamePayload(game)); sendErr != nil {
			cancel()
		}
	}

	var game *entity.Game
	if id := req.URL.Query().Get("id"); id != "" {
		game, err = that.uGame.Run(ctx, id, observer)
	} else {
		game, err = that.uGame.Play(ctx, opts, observer)
	}

	switch {
	case sendErr != nil:
		log.Info("watcher went away", "error", sendErr)
		return
	case err != nil:
		log.Error("failed to play game", "error", err)
		_ = sendError(conn, err.Error())
		return
	}

	if err = sendMessage(conn, actionFinished, gamePayload(game)); err != nil {
		log.Error("failed to send result", "error", err)
		return
	}

	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, game.Status),
		time.Now().Add(writeWait))
}

// watchClose drains client frames and cancels the game once the client leaves.
func (that *Server) watchClose(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()

	for {
		if _, _, err := conn.NextReader(); err != nil {
			return
		}
	}
}

func parseOptions(req *http.Request) (usecase.GameOptions, error) {
	var opts usecase.GameOptions

	query := req.URL.Query()
	fields := []struct {
		name  string
		value *int
	}{
		{"size", &opts.Size},
		{"dimensions", &opts.Dimensions},
		{"players", &opts.Players},
	}

	for _, field := range fields {
		raw := query.Get(field.name)
		if raw == "" {
			continue
		}

		value, err := strconv.Atoi(raw)
		if err != nil {
			return opts, fmt.Errorf("invalid %s %q", field.name, raw)
		}
		*field.value = value
	}

	return opts, nil
}
