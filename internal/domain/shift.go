package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ShiftStatus string

const (
	ShiftStatusPublished ShiftStatus = "published"
	ShiftStatusFull      ShiftStatus = "full"
	ShiftStatusCompleted ShiftStatus = "completed"
	ShiftStatusCancelled ShiftStatus = "cancelled"
)

// ShiftWindow 由班次的开始和结束时间推导而来，不落库
type ShiftWindow struct {
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

type Shift struct {
	ID             int64           `json:"id"`
	CompanyID      int64           `json:"companyID"`
	Title          string          `json:"title"`
	StartTime      time.Time       `json:"startTime"`
	EndTime        time.Time       `json:"endTime"`
	HourlyRate     decimal.Decimal `json:"hourlyRate"`
	VacanciesTotal int32           `json:"vacanciesTotal"`
	VacanciesTaken int32           `json:"vacanciesTaken"`
	Status         ShiftStatus     `json:"status"`
	CreatedAt      time.Time       `json:"createdAt"`
	Version        int32           `json:"-"`
}

func (s *Shift) Window() ShiftWindow {
	return ShiftWindow{StartTime: s.StartTime, EndTime: s.EndTime}
}

func (s *Shift) SlotsLeft() int {
	return int(s.VacanciesTotal - s.VacanciesTaken)
}
