package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/aq2208/order-tally/internal/logging"
	"github.com/aq2208/order-tally/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ordersProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_processed_total",
		Help: "Total number of orders consumed by the processing step",
	})
	ordersRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_rejected_total",
		Help: "Total number of rejected process requests",
	}, []string{"reason"})
	processDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "order_process_duration_ms",
		Help:    "Duration of order processing in ms",
		Buckets: []float64{1, 2, 5, 10, 25, 50, 100, 200},
	})
)

type OrderHandler struct {
	process        *usecase.ProcessOrder
	requestTimeout time.Duration
}

func NewOrderHandler(process *usecase.ProcessOrder, requestTimeout time.Duration) *OrderHandler {
	if requestTimeout <= 0 {
		requestTimeout = 3 * time.Second
	}
	return &OrderHandler{process: process, requestTimeout: requestTimeout}
}

type processOrderReq struct {
	// Pointer so id 0 passes the required check; the identifier itself is
	// unconstrained.
	ID     *uint64   `json:"id" binding:"required"`
	Prices []float64 `json:"prices"`
}

type processOrderResp struct {
	OrderID uint64  `json:"orderId"`
	Total   float64 `json:"total"`
	Report  string  `json:"report"`
}

// ProcessOrder handler: translate to use case input
func (h *OrderHandler) ProcessOrder(c *gin.Context) {
	var req processOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		ordersRejected.WithLabelValues("bad_request").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.requestTimeout)
	defer cancel()

	start := time.Now()
	out, err := h.process.Execute(ctx, usecase.ProcessOrderInput{
		OrderID: *req.ID,
		Prices:  req.Prices,
	})
	processDuration.Observe(float64(time.Since(start).Milliseconds()))

	if err != nil {
		if errors.Is(err, usecase.ErrAlreadyProcessed) {
			ordersRejected.WithLabelValues("duplicate").Inc()
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		ordersRejected.WithLabelValues("internal").Inc()
		logging.From(c).Error("process order failed", "order_id", *req.ID, "err", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal"})
		return
	}

	ordersProcessed.Inc()
	c.JSON(http.StatusAccepted, processOrderResp{
		OrderID: out.OrderID,
		Total:   out.Total,
		Report:  out.Report,
	})
}
