package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ShopsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shops_created_total",
		Help: "Total number of shops created",
	})

	ProductsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "products_created_total",
		Help: "Total number of products created",
	})

	PurchasesCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "purchases_created_total",
		Help: "Total number of purchases recorded",
	})

	UploadsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "uploads_total",
		Help: "Total number of accepted image uploads",
	})

	UploadsRejectedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "uploads_rejected_total",
		Help: "Total number of rejected image uploads",
	}, []string{"reason"})
)
