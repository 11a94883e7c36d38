package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-CleaningService/internal/infra/storage/settings"
)

// Service сервис изменения конфигурации: тарифы, особые зоны, периоды дня, зазоры
// Каждое изменение проверяется на целостность в той же транзакции, что и запись;
// при нарушении транзакция откатывается и возвращается *domain.IntegrityError
type Service struct {
	repo      SettingsRepository
	txManager TransactionManager
	snapshot  SnapshotInvalidator
	publisher Publisher
	metrics   MetricsRecorder
	logger    Logger
}

// NewService создает новый экземпляр сервиса конфигурации
// publisher может быть nil, если Redis выключен
func NewService(
	repo SettingsRepository,
	txManager TransactionManager,
	snapshot SnapshotInvalidator,
	publisher Publisher,
	metrics MetricsRecorder,
	logger Logger,
) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
		snapshot:  snapshot,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
	}
}

// changed сбрасывает локальный снапшот и оповещает остальные экземпляры
func (s *Service) changed(ctx context.Context, entity string) {
	s.snapshot.Invalidate()

	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, entity); err != nil {
		// Остальные экземпляры подхватят изменение по TTL
		s.logger.Warn("Settings: failed to publish invalidation for %s: %v", entity, err)
	}
}

// fail переводит ошибки транзакции в ошибки сервиса
func (s *Service) fail(op, entity string, err error) error {
	var integrityErr *domain.IntegrityError
	switch {
	case errors.As(err, &integrityErr):
		s.metrics.IntegrityViolation(integrityErr.Entity)
		s.logger.Warn("%s: rejected: %v", op, err)
		return integrityErr

	case errors.Is(err, settingsRepo.ErrOverlap), errors.Is(err, settingsRepo.ErrDuplicate):
		// Ограничение БД сработало раньше проверки сервиса (параллельная запись)
		s.metrics.IntegrityViolation(entity)
		s.logger.Warn("%s: rejected by constraint: %v", op, err)
		return domain.NewIntegrityError(entity, "%v", err)

	case errors.Is(err, settingsRepo.ErrNotFound):
		s.logger.Warn("%s: not found", op)
		return ErrNotFound

	case errors.Is(err, ErrNotFound), errors.Is(err, ErrAreaNotFound), errors.Is(err, ErrInvalidInput):
		s.logger.Warn("%s: %v", op, err)
		return err
	}

	s.logger.Error("%s: %v", op, err)
	return fmt.Errorf("%w: %s: %v", ErrInternal, op, err)
}
