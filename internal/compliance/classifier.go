package compliance

import (
	"fmt"
	"time"
)

// Status статус соответствия здания графику противопожарных обслуживаний
type Status string

const (
	// StatusScheduled для здания уже назначен выезд — исключается из просроченных
	StatusScheduled Status = "scheduled"
	// StatusOverdue срок очередного обслуживания превышен
	StatusOverdue Status = "overdue"
	// StatusDueSoon очередное обслуживание требуется в ближайшие дни
	StatusDueSoon Status = "due_soon"
	// StatusOnTrack график соблюдается
	StatusOnTrack Status = "on_track"
)

// DefaultDueSoonThreshold порог "скоро" по умолчанию, дней
const DefaultDueSoonThreshold = 14

// Сентинелы для зданий без единого обслуживания.
// Исторический формат выдачи (999 / -999) сохранен на уровне DTO,
// внутри домена используется явный признак NeverInspected.
const (
	NeverInspectedDaysSince = 999
	NeverInspectedDaysUntil = -999
)

// Input входные данные классификации для одного здания
type Input struct {
	ReferenceDate      time.Time  // обычно "сегодня"
	LastInspection     *time.Time // nil — обслуживаний еще не было
	VisitsPerYear      int        // частота выездов по договору, >= 1
	HasPendingSchedule bool       // есть ли назначенный (не завершенный) выезд
	DueSoonThreshold   int        // 0 — используется DefaultDueSoonThreshold
}

// Assessment результат классификации
type Assessment struct {
	Status         Status
	NeverInspected bool
	// DaysSinceLast и DaysUntilNext осмысленны только при NeverInspected == false
	DaysSinceLast int
	DaysUntilNext int
	// DaysOverdue заполняется только для StatusOverdue; 0 для зданий без истории
	DaysOverdue  int
	IntervalDays float64
}

// IntervalDays возвращает контрактный интервал между обслуживаниями в днях
func IntervalDays(visitsPerYear int) float64 {
	return 365.0 / float64(visitsPerYear)
}

// Classify вычисляет статус соответствия графику.
// Чистая функция без побочных эффектов: вся работа с БД остается в database,
// сюда передаются уже извлеченные значения.
//
// Порядок проверок фиксирован:
//  1. назначенный выезд подавляет просрочку независимо от дат;
//  2. превышение интервала (или отсутствие истории) — просрочка;
//  3. до очередного обслуживания осталось <= порога — "скоро";
//  4. иначе график соблюдается.
func Classify(in Input) (Assessment, error) {
	if in.VisitsPerYear < 1 {
		return Assessment{}, fmt.Errorf("visits per year must be at least 1, got %d", in.VisitsPerYear)
	}

	threshold := in.DueSoonThreshold
	if threshold == 0 {
		threshold = DefaultDueSoonThreshold
	}

	interval := IntervalDays(in.VisitsPerYear)
	a := Assessment{IntervalDays: interval}

	if in.LastInspection == nil {
		// Здание ни разу не обслуживалось — максимально просрочено.
		a.NeverInspected = true
		if in.HasPendingSchedule {
			a.Status = StatusScheduled
			return a, nil
		}
		a.Status = StatusOverdue
		return a, nil
	}

	a.DaysSinceLast = daysBetween(*in.LastInspection, in.ReferenceDate)
	// Усечение к целому, как в исходных julianday-запросах.
	a.DaysUntilNext = int(interval - float64(a.DaysSinceLast))

	if in.HasPendingSchedule {
		a.Status = StatusScheduled
		return a, nil
	}

	switch {
	case float64(a.DaysSinceLast) > interval:
		a.Status = StatusOverdue
		a.DaysOverdue = a.DaysSinceLast - int(interval)
		if a.DaysOverdue < 0 {
			a.DaysOverdue = 0
		}
	case a.DaysUntilNext <= threshold:
		a.Status = StatusDueSoon
	default:
		a.Status = StatusOnTrack
	}

	return a, nil
}

// EffectiveDaysSinceLast значение days_since_last для выдачи и сортировки:
// здания без истории получают сентинел 999 и оказываются первыми в списке просроченных
func (a Assessment) EffectiveDaysSinceLast() int {
	if a.NeverInspected {
		return NeverInspectedDaysSince
	}
	return a.DaysSinceLast
}

// EffectiveDaysUntilNext значение days_until_next для выдачи (-999 без истории)
func (a Assessment) EffectiveDaysUntilNext() int {
	if a.NeverInspected {
		return NeverInspectedDaysUntil
	}
	return a.DaysUntilNext
}

// daysBetween целое число дней между календарными датами (время суток отбрасывается)
func daysBetween(from, to time.Time) int {
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	f := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	t := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}
