package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gatekeep-dev/gatekeep/internal/metrics"
)

func Metrics(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"counters":  metrics.Default.Counters(),
		"latencies": metrics.Default.Latencies(),
	})
}
