package snapshot

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
	"github.com/m04kA/SMC-CleaningService/pkg/logger"
	"github.com/m04kA/SMC-CleaningService/pkg/metrics"
	"github.com/m04kA/SMC-CleaningService/pkg/types"
)

type fakeRepo struct {
	loads   atomic.Int32
	fail    atomic.Bool
	release chan struct{}
}

func (f *fakeRepo) ListChannelRules(context.Context, *int64) ([]domain.ChannelPricingRule, error) {
	f.loads.Add(1)
	if f.release != nil {
		<-f.release
	}
	if f.fail.Load() {
		return nil, errors.New("db down")
	}
	return []domain.ChannelPricingRule{{ID: 1, ChannelID: 1, IsActive: true}}, nil
}

func (f *fakeRepo) ListAreaRules(context.Context, *string) ([]domain.AreaPricingRule, error) {
	return nil, nil
}

func (f *fakeRepo) ListAreas(context.Context) ([]domain.SpecialArea, error) {
	return []domain.SpecialArea{{ID: 1, Code: "pearl", SearchKeywords: []string{"pearl"}, IsActive: true}}, nil
}

func (f *fakeRepo) ListPeriods(context.Context) ([]domain.TimePeriod, error) {
	return []domain.TimePeriod{
		{Code: "b", StartTime: types.MustTimeString("10:00"), EndTime: types.MustTimeString("12:00"), DisplayOrder: 2},
		{Code: "a", StartTime: types.MustTimeString("08:00"), EndTime: types.MustTimeString("10:00"), DisplayOrder: 1},
	}, nil
}

func (f *fakeRepo) ListGapRules(context.Context) ([]domain.GapRule, error) {
	return []domain.GapRule{{ID: 1, MinimumGapMinutes: 30}}, nil
}

type fakeTx struct{}

func (fakeTx) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newService(repo *fakeRepo, m metrics.Recorder) (*Service, *fakeClock) {
	clock := &fakeClock{now: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
	svc := NewService(repo, fakeTx{}, Options{TTL: time.Minute, DefaultGapMinutes: 15}, m, logger.NewNop())
	svc.timeProvider = clock
	return svc, clock
}

func TestGet_CachesWithinTTL(t *testing.T) {
	repo := &fakeRepo{}
	svc, clock := newService(repo, metrics.Nop())

	first, err := svc.Get(context.Background())
	require.NoError(t, err)

	clock.Advance(30 * time.Second)
	second, err := svc.Get(context.Background())
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int32(1), repo.loads.Load())

	assert.Equal(t, "a", first.Periods[0].Code, "periods ordered by display order")
	assert.Equal(t, 15, first.DefaultGapMinutes)
	assert.Equal(t, time.UTC, first.Location)
}

func TestGet_ReloadsAfterTTL(t *testing.T) {
	repo := &fakeRepo{}
	svc, clock := newService(repo, metrics.Nop())

	_, err := svc.Get(context.Background())
	require.NoError(t, err)

	clock.Advance(time.Minute)
	_, err = svc.Get(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int32(2), repo.loads.Load())
}

func TestInvalidate_ForcesReload(t *testing.T) {
	repo := &fakeRepo{}
	svc, _ := newService(repo, metrics.Nop())

	first, err := svc.Get(context.Background())
	require.NoError(t, err)

	svc.Invalidate()
	second, err := svc.Get(context.Background())
	require.NoError(t, err)

	assert.NotSame(t, first, second)
	assert.Equal(t, int32(2), repo.loads.Load())
}

func TestGet_ConcurrentCallersShareOneLoad(t *testing.T) {
	repo := &fakeRepo{release: make(chan struct{})}
	svc, _ := newService(repo, metrics.Nop())

	const callers = 10
	var wg sync.WaitGroup
	results := make([]*domain.RuleSnapshot, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			snap, err := svc.Get(context.Background())
			assert.NoError(t, err)
			results[i] = snap
		}(i)
	}

	require.Eventually(t, func() bool { return repo.loads.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(repo.release)
	wg.Wait()

	assert.Equal(t, int32(1), repo.loads.Load())
	for _, snap := range results {
		assert.Same(t, results[0], snap)
	}
}

func TestGet_ServesStaleOnFailure(t *testing.T) {
	repo := &fakeRepo{}
	m := metrics.New("snapshot-test")
	svc, clock := newService(repo, m)

	first, err := svc.Get(context.Background())
	require.NoError(t, err)

	repo.fail.Store(true)
	clock.Advance(2 * time.Minute)

	second, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestGet_FailsWithoutSnapshot(t *testing.T) {
	repo := &fakeRepo{}
	repo.fail.Store(true)
	svc, _ := newService(repo, metrics.Nop())

	_, err := svc.Get(context.Background())
	assert.ErrorIs(t, err, ErrLoadSnapshot)
}
