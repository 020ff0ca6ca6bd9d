package service

import (
	"context"
	"time"

	"transcript-assistant-be/internal/dto"
	"transcript-assistant-be/internal/pkg/logger"
	"transcript-assistant-be/internal/repository/unitofwork"
	"transcript-assistant-be/pkg/history"

	"github.com/google/uuid"
)

type IMaintenanceService interface {
	// Run sweeps histories every interval until ctx is done.
	Run(ctx context.Context)
	Cleanup(ctx context.Context) (*dto.CleanupResponse, error)
}

type maintenanceService struct {
	uowFactory unitofwork.RepositoryFactory
	histories  *history.Manager
	interval   time.Duration
	logger     logger.ILogger
}

func NewMaintenanceService(uowFactory unitofwork.RepositoryFactory, histories *history.Manager, interval time.Duration, log logger.ILogger) IMaintenanceService {
	return &maintenanceService{
		uowFactory: uowFactory,
		histories:  histories,
		interval:   interval,
		logger:     log,
	}
}

func (s *maintenanceService) Run(ctx context.Context) {
	if s.interval <= 0 {
		return
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if _, err := s.Cleanup(ctx); err != nil {
				s.logger.Error("Maintenance", "Scheduled cleanup failed", map[string]interface{}{
					"error": err.Error(),
				})
			}
		case <-ctx.Done():
			return
		}
	}
}

func (s *maintenanceService) Cleanup(ctx context.Context) (*dto.CleanupResponse, error) {
	report := s.histories.Cleanup()

	removed := report.Removed()
	if len(removed) > 0 {
		ids := make([]uuid.UUID, 0, len(removed))
		for _, raw := range removed {
			id, err := uuid.Parse(raw)
			if err != nil {
				continue
			}
			ids = append(ids, id)
		}

		uow := s.uowFactory.NewUnitOfWork(ctx)
		if err := uow.SummaryHistoryRepository().DeleteByDocumentIds(ctx, ids); err != nil {
			return nil, err
		}

		s.logger.Info("Maintenance", "Summary histories cleaned up", map[string]interface{}{
			"expired":    len(report.Expired),
			"evicted":    len(report.Evicted),
			"freed_size": report.FreedSize,
		})
	}

	return &dto.CleanupResponse{
		Expired:       nonNil(report.Expired),
		Evicted:       nonNil(report.Evicted),
		FreedSize:     report.FreedSize,
		RemainingSize: s.histories.TotalSize(),
		Histories:     len(s.histories.Documents()),
	}, nil
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
