package snapshot

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
)

const loadTimeout = 10 * time.Second

// Options параметры кэша снапшота
type Options struct {
	TTL               time.Duration
	Location          *time.Location
	DefaultGapMinutes int
}

// Service отдает неизменяемый снапшот правил с ограниченной устаревностью
// Снапшот перечитывается по истечении TTL или после Invalidate
type Service struct {
	repo         SettingsRepository
	txManager    TxManager
	opts         Options
	metrics      MetricsRecorder
	timeProvider TimeProvider
	logger       Logger

	mu         sync.RWMutex
	current    *domain.RuleSnapshot
	generation uint64
	group      singleflight.Group
}

// NewService создает новый экземпляр сервиса снапшота
func NewService(
	repo SettingsRepository,
	txManager TxManager,
	opts Options,
	metrics MetricsRecorder,
	logger Logger,
) *Service {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &Service{
		repo:         repo,
		txManager:    txManager,
		opts:         opts,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Get возвращает текущий снапшот, перечитывая его при необходимости
// Параллельные перечитывания одного поколения схлопываются в одно
func (s *Service) Get(ctx context.Context) (*domain.RuleSnapshot, error) {
	s.mu.RLock()
	current, generation := s.current, s.generation
	s.mu.RUnlock()

	if current != nil && current.Age(s.timeProvider.Now()) < s.opts.TTL {
		return current, nil
	}

	ch := s.group.DoChan(strconv.FormatUint(generation, 10), func() (interface{}, error) {
		// Загрузка не должна обрываться из-за отмены запроса первого вызывающего
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), loadTimeout)
		defer cancel()
		return s.reload(loadCtx, generation)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*domain.RuleSnapshot), nil
	}
}

// Invalidate сбрасывает кэш; следующий Get перечитает конфигурацию
func (s *Service) Invalidate() {
	s.mu.Lock()
	s.current = nil
	s.generation++
	s.mu.Unlock()

	s.logger.Info("Snapshot: cache invalidated")
}

func (s *Service) reload(ctx context.Context, generation uint64) (*domain.RuleSnapshot, error) {
	var (
		channelRules []domain.ChannelPricingRule
		areaRules    []domain.AreaPricingRule
		areas        []domain.SpecialArea
		periods      []domain.TimePeriod
		gapRules     []domain.GapRule
	)

	err := s.txManager.DoReadOnly(ctx, func(ctx context.Context) error {
		var err error
		if channelRules, err = s.repo.ListChannelRules(ctx, nil); err != nil {
			return err
		}
		if areaRules, err = s.repo.ListAreaRules(ctx, nil); err != nil {
			return err
		}
		if areas, err = s.repo.ListAreas(ctx); err != nil {
			return err
		}
		if periods, err = s.repo.ListPeriods(ctx); err != nil {
			return err
		}
		gapRules, err = s.repo.ListGapRules(ctx)
		return err
	})
	if err != nil {
		s.metrics.SnapshotReload(false)
		s.logger.Error("Snapshot: failed to load configuration: %v", err)

		// Отдаем устаревший снапшот, если он есть
		s.mu.RLock()
		stale := s.current
		s.mu.RUnlock()
		if stale != nil {
			s.logger.Warn("Snapshot: serving stale snapshot loaded at %s", stale.LoadedAt.Format(time.RFC3339))
			return stale, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrLoadSnapshot, err)
	}

	snap := domain.NewRuleSnapshot(
		channelRules,
		areaRules,
		areas,
		periods,
		gapRules,
		s.opts.Location,
		s.opts.DefaultGapMinutes,
		s.timeProvider.Now(),
	)

	s.mu.Lock()
	// Если пока шла загрузка пришла инвалидация, результат не кэшируем
	if s.generation == generation {
		s.current = snap
	}
	s.mu.Unlock()

	s.metrics.SnapshotReload(true)
	s.logger.Info("Snapshot: loaded %d channel rules, %d area rules, %d areas, %d periods, %d gap rules",
		len(channelRules), len(areaRules), len(areas), len(periods), len(gapRules))

	return snap, nil
}
