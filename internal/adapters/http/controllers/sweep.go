package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rafaelleal24/smartpantry/internal/core/domain"
	"github.com/rafaelleal24/smartpantry/internal/core/logger"
	"github.com/rafaelleal24/smartpantry/internal/core/service"
)

type SweepRunner interface {
	Sweep(ctx context.Context, referenceDate time.Time) service.SweepReport
}

type SweepController struct {
	sweeper  SweepRunner
	calendar *service.Calendar
}

type SweepResponse struct {
	ReferenceDate string `json:"reference_date" example:"2024-06-10"`
	Scanned       int    `json:"scanned" example:"120"`
	Updated       int    `json:"updated" example:"4"`
	Missing       int    `json:"missing" example:"0"`
	Failed        int    `json:"failed" example:"0"`
	DurationMs    int64  `json:"duration_ms" example:"35"`
}

func NewSweepController(sweeper SweepRunner, calendar *service.Calendar) *SweepController {
	return &SweepController{sweeper: sweeper, calendar: calendar}
}

// Run godoc
// @Summary     Run an expiry sweep
// @Description Recomputes the stored expiry status of every product for today
// @Tags        sweeps
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} SweepResponse
// @Failure     401 {object} handlers.ErrorResponse
// @Failure     429 {object} handlers.ErrorResponse
// @Router      /api/v1/sweeps [post]
func (sc *SweepController) Run(c *gin.Context) {
	// Detached so a client disconnect does not cut the sweep short.
	ctx := logger.WithAttributes(context.WithoutCancel(c.Request.Context()), map[string]any{
		"sweep.trigger": "manual",
	})
	report := sc.sweeper.Sweep(ctx, sc.calendar.Today())

	c.JSON(http.StatusOK, SweepResponse{
		ReferenceDate: report.ReferenceDate.Format(domain.DateLayout),
		Scanned:       report.Scanned,
		Updated:       report.Updated,
		Missing:       report.Missing,
		Failed:        report.Failed,
		DurationMs:    report.Duration.Milliseconds(),
	})
}
