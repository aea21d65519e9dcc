package service

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/skillbridge/exchange-system/internal/core/domain"
)

// clockPattern matches 24-hour HH:MM with an optional leading zero on the hour.
var clockPattern = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)

// ValidateWeeklyAvailability checks a proposed faculty schedule for internal
// consistency before it is stored: every day must be a valid weekday, every
// entry must carry a slot list, and every slot must use valid HH:MM times
// with start strictly before end.
//
// Duplicate days and overlapping slots within one day are accepted without
// error; the stored schedule may contain them.
func ValidateWeeklyAvailability(weekly []domain.DayAvailability) error {
	for _, day := range weekly {
		if !domain.IsWeekday(day.Day) {
			return fmt.Errorf("%w: invalid day %q", domain.ErrInvalidAvailability, day.Day)
		}
		if day.TimeSlots == nil {
			return fmt.Errorf("%w: day %q has no time slot list", domain.ErrInvalidAvailability, day.Day)
		}
		for _, slot := range day.TimeSlots {
			if !clockPattern.MatchString(slot.Start) {
				return fmt.Errorf("%w: invalid start time %q on %s", domain.ErrInvalidAvailability, slot.Start, day.Day)
			}
			if !clockPattern.MatchString(slot.End) {
				return fmt.Errorf("%w: invalid end time %q on %s", domain.ErrInvalidAvailability, slot.End, day.Day)
			}
			if clockMinutes(slot.Start) >= clockMinutes(slot.End) {
				return fmt.Errorf("%w: slot %s-%s on %s does not end after it starts",
					domain.ErrInvalidAvailability, slot.Start, slot.End, day.Day)
			}
		}
	}
	return nil
}

// clockMinutes converts a validated HH:MM string to minutes since midnight.
func clockMinutes(clock string) int {
	parts := strings.SplitN(clock, ":", 2)
	h, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	return h*60 + m
}
