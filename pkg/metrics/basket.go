package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Episodes run to termination by the simulation environment
	EpisodesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "basket_sim_episodes_total",
		Help: "Total number of completed basket simulation episodes",
	})

	// Cumulative reward per role at episode end
	EpisodeReward = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "basket_sim_episode_reward",
		Help:    "Cumulative clamped reward per role at the end of an episode",
		Buckets: prometheus.LinearBuckets(-50, 10, 11),
	}, []string{"role"})

	// Selections refused by budget admission or because the slot was a dummy
	SelectionsRejected = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "basket_sim_selections_rejected_total",
		Help: "Product selections that were not admitted to the cart",
	}, []string{"role", "reason"})

	OptimizerRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "basket_optimizer_runs_total",
		Help: "Optimizer calls by outcome",
	}, []string{"outcome"})

	OptimizerReplacements = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "basket_optimizer_replacements_total",
		Help: "Total number of item substitutions made by the optimizer",
	})

	OptimizerSaved = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "basket_optimizer_saved_rub",
		Help:    "Money saved per optimizer call that made substitutions",
		Buckets: prometheus.ExponentialBuckets(10, 2, 10),
	})
)

func Init() {
	prometheus.MustRegister(
		EpisodesTotal,
		EpisodeReward,
		SelectionsRejected,
		OptimizerRuns,
		OptimizerReplacements,
		OptimizerSaved,
	)
}
