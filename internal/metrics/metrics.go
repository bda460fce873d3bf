// Package metrics collects and exposes Prometheus metrics for the game service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	gamesCreated  prometheus.Counter
	movesPlayed   prometheus.Counter
	gamesFinished *prometheus.CounterVec
}

// NewCollector - creates a Collector and registers its metrics with the given
// registry.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		gamesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tictactoe_games_created_total",
			Help: "Total number of games created",
		}),
		movesPlayed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tictactoe_moves_played_total",
			Help: "Total number of moves placed on a board",
		}),
		gamesFinished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tictactoe_games_finished_total",
			Help: "Total number of games reaching a terminal state, by outcome",
		}, []string{"outcome"}),
	}

	reg.MustRegister(
		c.gamesCreated,
		c.movesPlayed,
		c.gamesFinished,
	)

	return c
}

func (c *Collector) RecordGameCreated() {
	c.gamesCreated.Inc()
}

func (c *Collector) RecordMove() {
	c.movesPlayed.Inc()
}

// RecordGameFinished - outcome is one of "won", "draw", "cancelled".
func (c *Collector) RecordGameFinished(outcome string) {
	c.gamesFinished.WithLabelValues(outcome).Inc()
}

// Handler - the /metrics endpoint for the given registry.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
