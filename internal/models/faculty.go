package models

import (
	"time"

	"github.com/lib/pq"
)

// Faculty represents an instructor eligible to teach mapped subjects.
type Faculty struct {
	ID             string        `db:"id" json:"id"`
	FullName       string        `db:"full_name" json:"full_name"`
	DepartmentID   string        `db:"department_id" json:"department_id"`
	MaxWeeklyHours int           `db:"max_weekly_hours" json:"max_weekly_hours"`
	PreferredSlots pq.Int64Array `db:"preferred_slots" json:"preferred_slots"`
	UnavailableDay pq.Int64Array `db:"unavailable_days" json:"unavailable_days"`
	Active         bool          `db:"active" json:"active"`
	CreatedAt      time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time     `db:"updated_at" json:"updated_at"`
}

// MaxHoursPerDay derives the daily teaching ceiling over a five day week.
func (f Faculty) MaxHoursPerDay() int {
	return f.MaxWeeklyHours / 5
}

// AllowsSlot reports whether the faculty's preferred-slot allow-list admits
// the slot index. An empty list means no restriction.
func (f Faculty) AllowsSlot(slotIndex int) bool {
	if len(f.PreferredSlots) == 0 {
		return true
	}
	for _, allowed := range f.PreferredSlots {
		if int(allowed) == slotIndex {
			return true
		}
	}
	return false
}

// UnavailableOn reports whether the faculty has blocked the whole day.
func (f Faculty) UnavailableOn(day int) bool {
	for _, blocked := range f.UnavailableDay {
		if int(blocked) == day {
			return true
		}
	}
	return false
}
