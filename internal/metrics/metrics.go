package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	GamesCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "oxoxo_games_created_total",
			Help: "Total games created",
		},
	)
	Plies = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "oxoxo_plies_total",
			Help: "Total plies played across all games",
		},
	)
	GamesFinished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "oxoxo_games_finished_total",
			Help: "Total games finished, by outcome",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(GamesCreated)
	prometheus.MustRegister(Plies)
	prometheus.MustRegister(GamesFinished)
}
