// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Notification outcomes used as the "result" label of NotificationsTotal.
const (
	NotificationSent   = "sent"
	NotificationFailed = "failed"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "repairdesk_http_requests_total",
		Help: "Total HTTP requests handled by the repairdesk API",
	}, []string{"method", "route", "code"})

	// TransitionsTotal counts committed status changes by target status name.
	TransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "repairdesk_order_transitions_total",
		Help: "Committed service order status changes",
	}, []string{"to_status"})

	NotificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "repairdesk_notifications_total",
		Help: "Client notifications requested after a transition",
	}, []string{"result"})

	EventPublishFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "repairdesk_event_publish_failures_total",
		Help: "Status change events that could not be published",
	})

	RegistryRefreshFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "repairdesk_status_registry_refresh_failures_total",
		Help: "Failed periodic reloads of the status registry",
	})
)
