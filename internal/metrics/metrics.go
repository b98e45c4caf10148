package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Samples число считываний поля hull bracing
	Samples = promauto.NewCounter(prometheus.CounterOpts{
		Name: "minibot_bracing_samples_total",
		Help: "Number of bracing board samples taken from the screen",
	})

	// Plans результаты планирования по исходу (improved, exhausted, stale)
	Plans = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "minibot_bracing_plans_total",
		Help: "Planner invocations by outcome",
	}, []string{"outcome"})

	// PlanDuration время поиска плана
	PlanDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "minibot_bracing_plan_duration_seconds",
		Help:    "Wall time spent in the bracing planner",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
	})

	// Moves выполненные ходы hull bracing
	Moves = promauto.NewCounter(prometheus.CounterOpts{
		Name: "minibot_bracing_moves_total",
		Help: "Bracing moves executed as drag gestures",
	})

	// Drags все перетаскивания мышью
	Drags = promauto.NewCounter(prometheus.CounterOpts{
		Name: "minibot_pointer_drags_total",
		Help: "Drag gestures issued to the pointer",
	})

	// Clicks клики по утечкам hull patching
	Clicks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "minibot_patching_clicks_total",
		Help: "Leak clicks issued by the patching controller",
	})

	// Strikes удары молотком по гвоздям hull hammering
	Strikes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "minibot_hammering_strikes_total",
		Help: "Nail strikes issued by the hammering controller",
	})

	// ScrubPasses проходы щёткой по грязным отрезкам
	ScrubPasses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "minibot_scrubbing_passes_total",
		Help: "Scrub passes over dirty segments, by power usage",
	}, []string{"power"})

	// Cuts распилы по типу доски
	Cuts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "minibot_sawing_cuts_total",
		Help: "Plank cuts issued, by board type",
	}, []string{"board"})

	// Runs завершённые мини-игры по результату
	Runs = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "minibot_minigame_runs_total",
		Help: "Minigame runs by minigame and result",
	}, []string{"minigame", "result"})
)
