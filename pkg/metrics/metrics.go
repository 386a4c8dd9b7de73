// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "beat_party"

var (
	BeatsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "beats_total",
		Help:      "Total number of beats landed in the state machine",
	})

	RoundsStartedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rounds_started_total",
			Help:      "Total number of rounds entered, by level kind",
		},
		[]string{"kind"},
	)

	GamesCompletedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_completed_total",
			Help:      "Total number of completed playthroughs, by level kind",
		},
		[]string{"kind"},
	)

	ChallengesSavedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "challenges_saved_total",
		Help:      "Total number of challenges published from the creator",
	})

	BoostsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "boosts_total",
			Help:      "Total number of boost attempts, by result",
		},
		[]string{"result"},
	)

	EngagementIntervalsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "engagement_intervals_total",
		Help:      "Total number of engagement growth intervals simulated",
	})

	NotificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Total number of notifications dispatched, by status",
		},
		[]string{"status"},
	)
)

// Collectors returns every application metric for registration.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		BeatsTotal,
		RoundsStartedTotal,
		GamesCompletedTotal,
		ChallengesSavedTotal,
		BoostsTotal,
		EngagementIntervalsTotal,
		NotificationsTotal,
	}
}
