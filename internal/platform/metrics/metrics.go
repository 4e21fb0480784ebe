// Copyright (c) 2026 Foodgram. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package metrics declares the Prometheus collectors exported on /metrics.
//
// Collectors register on the default registry at package init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests counts finished HTTP requests.
	// Labels:
	//   - method: HTTP verb
	//   - route: chi route pattern, e.g. "/api/v1/recipes/{id}"
	//   - status: response status code
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodgram_http_requests_total",
			Help: "Total number of HTTP requests served",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPDuration measures request latency per route.
	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "foodgram_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "route"},
	)

	// RelationToggles counts relation add/remove attempts.
	// Labels:
	//   - kind: "follow", "favorite", "cart"
	//   - action: "add", "remove"
	//   - outcome: "ok", "conflict", "not_found", "invalid", "error"
	RelationToggles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodgram_relation_toggles_total",
			Help: "Total number of follow, favorite and cart toggles",
		},
		[]string{"kind", "action", "outcome"},
	)

	// ShoppingListDownloads counts exported shopping lists by format.
	ShoppingListDownloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodgram_shopping_list_downloads_total",
			Help: "Total number of shopping list exports",
		},
		[]string{"format"},
	)

	// ShoppingListItems observes the number of aggregated items per export.
	ShoppingListItems = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "foodgram_shopping_list_items",
			Help:    "Number of distinct items in an exported shopping list",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100},
		},
	)

	// CacheLookups counts catalog cache hits and misses.
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodgram_cache_lookups_total",
			Help: "Catalog cache lookups by result",
		},
		[]string{"result"},
	)
)
