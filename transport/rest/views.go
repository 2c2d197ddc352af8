package rest

import (
	"embed"
	"html/template"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/rocketscienceinc/oxoxo-backend/internal/render"
)

const title = "OXOXO"

//go:embed templates/*.tmpl
var templates embed.FS

var viewFuncs = template.FuncMap{
	"board": render.Text,
}

func (that *Handlers) Home(c *gin.Context) {
	games, err := that.uGame.ListGames(c.Request.Context())
	if err != nil {
		that.logger.Error("request failed", "method", "Home", "error", err)
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}

	sort.Slice(games, func(i, j int) bool {
		return games[i].ID < games[j].ID
	})

	c.HTML(http.StatusOK, "home.tmpl", gin.H{
		"Title": title,
		"Games": games,
	})
}

func (that *Handlers) View(c *gin.Context) {
	game, survey, err := that.uGame.Inspect(c.Request.Context(), c.Param("id"))
	if err != nil {
		status := errorStatus(err)
		if status == http.StatusInternalServerError {
			that.logger.Error("request failed", "method", "View", "error", err)
		}
		c.String(status, http.StatusText(status))
		return
	}

	lines := make(map[int]int)
	for slot, entries := range survey.BySlot() {
		lines[slot] = len(entries)
	}

	c.HTML(http.StatusOK, "board.tmpl", gin.H{
		"Title":  title,
		"Game":   game,
		"Planes": render.Planes(game.Board, game.Size, game.Dimensions, lines),
		"Live":   len(survey),
	})
}
