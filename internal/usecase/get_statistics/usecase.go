package get_statistics

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-VenueBooking/internal/authz"
	"github.com/m04kA/SMC-VenueBooking/internal/domain"
)

// UseCase use case для статистики менеджера
type UseCase struct {
	statsRepo StatisticsRepository
	txManager TransactionManager
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(statsRepo StatisticsRepository, txManager TransactionManager, logger Logger) *UseCase {
	return &UseCase{
		statsRepo: statsRepo,
		txManager: txManager,
		logger:    logger,
	}
}

// Execute выполняет use case получения статистики
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetStatistics: manager=%d", req.Actor.ID)

	// 1. Только менеджер
	if err := authz.Require(req.Actor, authz.IsManager()); err != nil {
		uc.logger.Warn("GetStatistics: %v", err)
		return nil, ErrAccessDenied
	}

	// 2. Загружаем факты
	var facts []domain.ReservationFact
	err := uc.txManager.DoReadOnly(ctx, func(ctx context.Context) error {
		var err error
		facts, err = uc.statsRepo.ListFacts(ctx, req.Actor.ID)
		return err
	})
	if err != nil {
		uc.logger.Error("GetStatistics: failed to list facts for manager=%d: %v", req.Actor.ID, err)
		return nil, fmt.Errorf("%w: failed to list facts: %v", ErrInternal, err)
	}

	// 3. Агрегируем
	stats := Aggregate(facts)

	uc.logger.Info("GetStatistics: manager=%d, reservations=%d, revenue=%s",
		req.Actor.ID, stats.TotalReservations, stats.TotalRevenue)

	return &Response{ManagerStatistics: stats}, nil
}
