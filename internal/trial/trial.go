// Package trial реализует чистую бизнес-логику пробного периода и проверки доступа.
//
// Пакет не выполняет ввод-вывод: все данные (запись пробного периода, флаг
// подписки, текущее время) передаются извне, а результатом является готовое
// решение о доступе. Любой некорректный вход трактуется как отказ в доступе.
package trial

import (
	"fmt"
	"math"
	"time"
)

// WindowDays длительность пробного периода в календарных днях.
const WindowDays = 7

const day = 24 * time.Hour

// Reason причина, по которой доступ разрешён или запрещён.
type Reason string

const (
	// ReasonSubscribed — у пользователя активная оплаченная подписка.
	ReasonSubscribed Reason = "subscribed"
	// ReasonTrialActive — пробный период ещё действует.
	ReasonTrialActive Reason = "trial-active"
	// ReasonTrialExpired — пробный период завершился.
	ReasonTrialExpired Reason = "trial-expired"
	// ReasonNoTrial — запись пробного периода отсутствует или некорректна.
	ReasonNoTrial Reason = "no-trial"
	// ReasonNotAuthenticated — запрос без аутентифицированного пользователя.
	ReasonNotAuthenticated Reason = "not-authenticated"
)

// Record представляет запись пробного периода пользователя.
// Создаётся не более одного раза на пользователя и после создания не меняется.
type Record struct {
	UserUID   string    // Уникальный идентификатор пользователя
	StartDate time.Time // Начало пробного периода (дата создания аккаунта)
	EndDate   time.Time // Конец пробного периода, 23:59:59.999 UTC седьмого дня
	IsActive  bool      // Признак, что запись не отозвана вручную
}

// Decision результат проверки доступа. Вычисляется на каждый запрос и не хранится.
type Decision struct {
	HasAccess     bool   // Разрешён ли доступ к платному контенту
	DaysRemaining int    // Сколько полных дней осталось до конца пробного периода
	Reason        Reason // Причина решения
	Warning       string // Предупреждение о скором окончании (не более 1 дня)
}

// Resolve возвращает запись пробного периода для пользователя.
//
// Если existing не nil, запись возвращается без изменений: повторная
// инициализация невозможна. Иначе запись выводится детерминированно из
// createdAt (а не из текущего времени), поэтому конкурирующие вызовы для
// одного пользователя дают побитово одинаковый результат и сохранение по
// принципу "insert, ignore if exists" безопасно без блокировок.
func Resolve(userUID string, createdAt time.Time, existing *Record) (Record, error) {
	const op = "trial.Resolve"
	if existing != nil {
		return *existing, nil
	}
	if createdAt.IsZero() {
		return Record{}, fmt.Errorf("%s: user has no creation date", op)
	}
	start := createdAt.UTC()
	return Record{
		UserUID:   userUID,
		StartDate: start,
		EndDate:   windowEnd(start),
		IsActive:  true,
	}, nil
}

// windowEnd возвращает конец седьмого календарного дня пробного периода.
// Смещение на один наносекунд назад нужно, чтобы регистрация ровно в полночь
// заканчивалась в конце седьмого дня, а не восьмого.
func windowEnd(start time.Time) time.Time {
	last := start.Add(WindowDays * day).Add(-time.Nanosecond)
	return endOfDay(last)
}

func endOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999_000_000, time.UTC)
}

// Evaluate вычисляет решение о доступе на момент now.
//
// Порядок проверок фиксирован: активная подписка всегда выигрывает и
// полностью скрывает состояние пробного периода; отсутствующая или
// некорректная запись трактуется как отказ (никогда не как доступ);
// перевёрнутое окно (EndDate <= StartDate) считается истёкшим.
// Функция тотальна: для любого входа возвращается решение, ошибок нет.
func Evaluate(now time.Time, rec *Record, subscriptionActive bool) Decision {
	if subscriptionActive {
		return Decision{HasAccess: true, Reason: ReasonSubscribed}
	}
	if rec == nil || rec.StartDate.IsZero() || rec.EndDate.IsZero() {
		return Decision{Reason: ReasonNoTrial}
	}
	if !rec.EndDate.After(rec.StartDate) {
		return Decision{Reason: ReasonTrialExpired}
	}
	if !now.Before(rec.EndDate) {
		return Decision{Reason: ReasonTrialExpired}
	}

	days := int(rec.EndDate.Sub(now) / day)
	d := Decision{
		HasAccess:     true,
		DaysRemaining: days,
		Reason:        ReasonTrialActive,
	}
	if days <= 1 {
		d.Warning = expiryWarning(days)
	}
	return d
}

// ProgressPercent возвращает прогресс пробного периода в процентах, 0..100.
// Используется только для индикатора в интерфейсе и не влияет на решение о доступе.
func ProgressPercent(rec Record, now time.Time) int {
	total := rec.EndDate.Sub(rec.StartDate)
	if total <= 0 {
		return 100
	}
	p := math.Round(float64(now.Sub(rec.StartDate)) / float64(total) * 100)
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return int(p)
}

// Unauthenticated возвращает решение для запроса без пользователя.
// Вызывается на границе приложения до обращения к Evaluate.
func Unauthenticated() Decision {
	return Decision{Reason: ReasonNotAuthenticated}
}
