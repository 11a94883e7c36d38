package metrics

// Recorder доменные счетчики, используемые usecase'ами и сервисами
// Позволяет работать без включенных метрик (см. Nop)
type Recorder interface {
	BookingCreated(channel string)
	SchedulingConflict(stage string)
	PricingCoverageMiss(channel string)
	SnapshotReload(ok bool)
	IntegrityViolation(entity string)
}

// BookingCreated увеличивает счетчик созданных бронирований
func (m *Metrics) BookingCreated(channel string) {
	m.BookingsCreatedTotal.WithLabelValues(channel).Inc()
}

// SchedulingConflict увеличивает счетчик конфликтов расписания
func (m *Metrics) SchedulingConflict(stage string) {
	m.SchedulingConflictsTotal.WithLabelValues(stage).Inc()
}

// PricingCoverageMiss увеличивает счетчик отсутствия тарифа
func (m *Metrics) PricingCoverageMiss(channel string) {
	m.PricingCoverageMissTotal.WithLabelValues(channel).Inc()
}

// SnapshotReload увеличивает счетчик перезагрузок снапшота конфигурации
func (m *Metrics) SnapshotReload(ok bool) {
	result := "ok"
	if !ok {
		result = "error"
	}
	m.RuleSnapshotReloadsTotal.WithLabelValues(result).Inc()
}

// IntegrityViolation увеличивает счетчик отклоненных изменений конфигурации
func (m *Metrics) IntegrityViolation(entity string) {
	m.ConfigIntegrityViolations.WithLabelValues(entity).Inc()
}

type nop struct{}

// Nop возвращает Recorder, который ничего не делает
func Nop() Recorder { return nop{} }

func (nop) BookingCreated(string)      {}
func (nop) SchedulingConflict(string)  {}
func (nop) PricingCoverageMiss(string) {}
func (nop) SnapshotReload(bool)        {}
func (nop) IntegrityViolation(string)  {}
