package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rocketscienceinc/oxoxo-backend/internal/apperror"
	"github.com/rocketscienceinc/oxoxo-backend/internal/entity"
	"github.com/rocketscienceinc/oxoxo-backend/internal/oxoxo"
	"github.com/rocketscienceinc/oxoxo-backend/internal/render"
	"github.com/rocketscienceinc/oxoxo-backend/internal/usecase"
)

type uGame interface {
	CreateGame(ctx context.Context, opts usecase.GameOptions) (*entity.Game, error)
	GetGame(ctx context.Context, id string) (*entity.Game, error)
	Inspect(ctx context.Context, id string) (*entity.Game, oxoxo.Survey, error)
	ListGames(ctx context.Context) ([]*entity.Game, error)
	Step(ctx context.Context, id string) (*entity.Game, error)
	Run(ctx context.Context, id string, observer usecase.Observer) (*entity.Game, error)
	DeleteGame(ctx context.Context, id string) error
}

type Handlers struct {
	logger *slog.Logger
	uGame  uGame
}

func NewHandlers(logger *slog.Logger, uGame uGame) *Handlers {
	return &Handlers{
		logger: logger.With("component", "rest"),
		uGame:  uGame,
	}
}

func (that *Handlers) CreateGame(c *gin.Context) {
	var opts usecase.GameOptions
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&opts); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
	}

	game, err := that.uGame.CreateGame(c.Request.Context(), opts)
	if err != nil {
		that.fail(c, "CreateGame", err)
		return
	}

	c.JSON(http.StatusCreated, game)
}

func (that *Handlers) GetGame(c *gin.Context) {
	game, err := that.uGame.GetGame(c.Request.Context(), c.Param("id"))
	if err != nil {
		that.fail(c, "GetGame", err)
		return
	}

	c.JSON(http.StatusOK, game)
}

func (that *Handlers) GetBoard(c *gin.Context) {
	game, err := that.uGame.GetGame(c.Request.Context(), c.Param("id"))
	if err != nil {
		that.fail(c, "GetBoard", err)
		return
	}

	c.String(http.StatusOK, render.Text(game.Board, game.Size, game.Dimensions))
}

func (that *Handlers) Step(c *gin.Context) {
	game, err := that.uGame.Step(c.Request.Context(), c.Param("id"))
	if err != nil {
		that.fail(c, "Step", err)
		return
	}

	c.JSON(http.StatusOK, game)
}

func (that *Handlers) Run(c *gin.Context) {
	game, err := that.uGame.Run(c.Request.Context(), c.Param("id"), nil)
	if err != nil {
		that.fail(c, "Run", err)
		return
	}

	c.JSON(http.StatusOK, game)
}

func (that *Handlers) DeleteGame(c *gin.Context) {
	if err := that.uGame.DeleteGame(c.Request.Context(), c.Param("id")); err != nil {
		that.fail(c, "DeleteGame", err)
		return
	}

	c.Status(http.StatusNoContent)
}

// fail maps an error to its HTTP status and logs server side failures.
func (that *Handlers) fail(c *gin.Context, method string, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "method", method, "error", err)
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(status, gin.H{"error": err.Error()})
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, apperror.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrInvalidConfiguration), errors.Is(err, apperror.ErrOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrGameFinished), errors.Is(err, apperror.ErrPlyLimit),
		errors.Is(err, apperror.ErrGameBusy):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
