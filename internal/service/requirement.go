package service

import (
	"fmt"

	"github.com/classedgee/scheduler-api/internal/models"
	appErrors "github.com/classedgee/scheduler-api/pkg/errors"
)

// WeeklyClasses converts a subject's total required hours for the term into
// the number of weekly meetings, rounding up so no subject is shorted. A
// subject with zero required hours yields zero meetings.
func WeeklyClasses(totalHours, totalWeeks int) (int, error) {
	if totalWeeks <= 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("total weeks must be positive, got %d", totalWeeks))
	}
	if totalHours <= 0 {
		return 0, nil
	}
	return (totalHours + totalWeeks - 1) / totalWeeks, nil
}

// BuildDemand computes the weekly demand for one subject from its unit list.
func BuildDemand(subject models.Subject, units []models.Unit, totalWeeks int) (models.SubjectDemand, error) {
	total := models.TotalRequiredHours(units)
	weekly, err := WeeklyClasses(total, totalWeeks)
	if err != nil {
		return models.SubjectDemand{}, err
	}
	return models.SubjectDemand{
		Subject:       subject,
		TotalHours:    total,
		WeeklyClasses: weekly,
	}, nil
}
