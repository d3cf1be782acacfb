package models

import "time"

// TrialStatus — ответ для интерфейса: решение о доступе плюс данные
// для баннера пробного периода (даты, прогресс, текст).
type TrialStatus struct {
	HasAccess       bool       `json:"has_access"`
	DaysRemaining   int        `json:"days_remaining"`
	Reason          string     `json:"reason"`
	Warning         string     `json:"warning,omitempty"`
	Message         string     `json:"message"`
	StartDate       *time.Time `json:"start_date,omitempty"`
	EndDate         *time.Time `json:"end_date,omitempty"`
	ProgressPercent int        `json:"progress_percent"`
}

// TrialNotice — данные для письма о скором окончании пробного периода.
type TrialNotice struct {
	Email    string    `json:"email"`
	Username string    `json:"username"`
	EndDate  time.Time `json:"end_date"`
}
