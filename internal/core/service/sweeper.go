package service

import (
	"context"
	"time"

	"github.com/rafaelleal24/smartpantry/internal/core/domain"
	"github.com/rafaelleal24/smartpantry/internal/core/logger"
	"github.com/rafaelleal24/smartpantry/internal/core/port"
	"github.com/rafaelleal24/smartpantry/internal/core/serviceerrors"
)

// SweepReport summarizes one pass over all products. Updated only counts
// writes that committed. Skipped counts products an owner changed between the
// scan and the write. Aborted is set when the products could not be loaded.
type SweepReport struct {
	ReferenceDate time.Time     `json:"reference_date"`
	Scanned       int           `json:"scanned"`
	Updated       int           `json:"updated"`
	Missing       int           `json:"missing"`
	Skipped       int           `json:"skipped"`
	Failed        int           `json:"failed"`
	Aborted       bool          `json:"aborted"`
	Duration      time.Duration `json:"duration"`
}

type SweeperService struct {
	productRepository port.ProductPort
	txManager         port.TransactionManager
	events            port.EventPort
}

func NewSweeperService(productRepository port.ProductPort, txManager port.TransactionManager, events port.EventPort) *SweeperService {
	return &SweeperService{
		productRepository: productRepository,
		txManager:         txManager,
		events:            events,
	}
}

// Sweep recomputes the cached expiry status of every product against
// referenceDate and persists the ones that changed. It never returns an error:
// per-record failures are logged and skipped.
func (s *SweeperService) Sweep(ctx context.Context, referenceDate time.Time) SweepReport {
	start := time.Now()
	referenceDate = domain.DateOf(referenceDate)
	report := SweepReport{ReferenceDate: referenceDate}

	logger.Info(ctx, "sweep: started", map[string]any{
		"reference_date": referenceDate.Format(domain.DateLayout),
	})

	products, err := s.productRepository.GetAll(ctx)
	if err != nil {
		logger.Error(ctx, "sweep: failed to load products", err, map[string]any{
			"reference_date": referenceDate.Format(domain.DateLayout),
		})
		report.Aborted = true
		report.Duration = time.Since(start)
		return report
	}

	for _, product := range products {
		report.Scanned++

		freshness := domain.Classify(product.ExpirationDate, referenceDate)
		if freshness.Status == product.ExpiryStatus {
			continue
		}

		attrs := map[string]any{
			"product_id": product.ID,
			"old_status": product.ExpiryStatus,
			"new_status": freshness.Status,
		}

		err := s.updateStatus(ctx, product, freshness, referenceDate)
		switch {
		case err == nil:
			report.Updated++
			logger.Debug(ctx, "sweep: status updated", attrs)
		case serviceerrors.IsOfKind(err, serviceerrors.KindNotFound):
			// Deleted between the scan and the write.
			report.Missing++
			logger.Debug(ctx, "sweep: product no longer exists", attrs)
		case serviceerrors.IsOfKind(err, serviceerrors.KindConflict):
			// The owner's write already stored a status for the new data.
			report.Skipped++
			logger.Debug(ctx, "sweep: product changed since scan", attrs)
		default:
			report.Failed++
			logger.Error(ctx, "sweep: status update failed", err, attrs)
		}
	}

	report.Duration = time.Since(start)
	logger.Info(ctx, "sweep: completed", map[string]any{
		"reference_date": referenceDate.Format(domain.DateLayout),
		"scanned":        report.Scanned,
		"updated":        report.Updated,
		"missing":        report.Missing,
		"skipped":        report.Skipped,
		"failed":         report.Failed,
		"duration_ms":    report.Duration.Milliseconds(),
	})
	return report
}

func (s *SweeperService) updateStatus(ctx context.Context, product *domain.Product, freshness domain.Freshness, referenceDate time.Time) error {
	event := domain.NewProductExpiryStatusChangedEvent(product, product.ExpiryStatus, freshness, referenceDate)

	return s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.productRepository.UpdateExpiryStatus(txCtx, product, freshness.Status); err != nil {
			return err
		}
		return s.events.Record(txCtx, event)
	})
}
