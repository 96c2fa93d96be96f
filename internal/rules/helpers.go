package rules

import (
	"fmt"
	"time"
)

const (
	hoursPerDayConstant           = 24
	daysPerYearConstant           = 365
	daysPerMonthConstant          = 30
	singularYearLabelConstant     = "a year"
	singularMonthLabelConstant    = "a month"
	singularDayLabelConstant      = "a day"
	singularHourLabelConstant     = "an hour"
	pluralYearsTemplateConstant   = "%d years"
	pluralMonthsTemplateConstant  = "%d months"
	pluralDaysTemplateConstant    = "%d days"
	pluralHoursTemplateConstant   = "%d hours"
	underAnHourAgeLabelConstant   = "less than an hour"
	singularQuantityValueConstant = 1
)

// humanizeAge renders a commit age the way the audit report phrases it,
// rounding down to the largest whole unit.
func humanizeAge(age time.Duration) string {
	if age < 0 {
		age = 0
	}

	totalHours := int(age.Hours())
	totalDays := totalHours / hoursPerDayConstant

	switch {
	case totalDays >= daysPerYearConstant:
		years := totalDays / daysPerYearConstant
		if years == singularQuantityValueConstant {
			return singularYearLabelConstant
		}
		return fmt.Sprintf(pluralYearsTemplateConstant, years)
	case totalDays >= daysPerMonthConstant:
		months := totalDays / daysPerMonthConstant
		if months == singularQuantityValueConstant {
			return singularMonthLabelConstant
		}
		return fmt.Sprintf(pluralMonthsTemplateConstant, months)
	case totalDays >= singularQuantityValueConstant:
		if totalDays == singularQuantityValueConstant {
			return singularDayLabelConstant
		}
		return fmt.Sprintf(pluralDaysTemplateConstant, totalDays)
	case totalHours >= singularQuantityValueConstant:
		if totalHours == singularQuantityValueConstant {
			return singularHourLabelConstant
		}
		return fmt.Sprintf(pluralHoursTemplateConstant, totalHours)
	default:
		return underAnHourAgeLabelConstant
	}
}
