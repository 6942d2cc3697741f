package pipeline

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// cronField is one parsed cron field that can match against a value.
type cronField struct {
	wildcard bool
	values   []int
}

func (f cronField) matches(val int) bool {
	if f.wildcard {
		return true
	}
	for _, v := range f.values {
		if v == val {
			return true
		}
	}
	return false
}

// parseCronField parses a single cron field (e.g. "0", "*", "1,15").
func parseCronField(field string) (cronField, error) {
	if field == "*" {
		return cronField{wildcard: true}, nil
	}

	parts := strings.Split(field, ",")
	values := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		v, err := strconv.Atoi(p)
		if err != nil {
			return cronField{}, fmt.Errorf("invalid cron field value %q: %w", p, err)
		}
		values = append(values, v)
	}
	return cronField{values: values}, nil
}

// parsedCron holds five parsed cron fields.
type parsedCron struct {
	minute     cronField
	hour       cronField
	dayOfMonth cronField
	month      cronField
	dayOfWeek  cronField
}

func (c parsedCron) matchesTime(t time.Time) bool {
	return c.minute.matches(t.Minute()) &&
		c.hour.matches(t.Hour()) &&
		c.dayOfMonth.matches(t.Day()) &&
		c.month.matches(int(t.Month())) &&
		c.dayOfWeek.matches(int(t.Weekday()))
}

// parseCron parses a 5-field cron expression.
func parseCron(expr string) (parsedCron, error) {
	fields := strings.Fields(expr)
	if len(fields) != 5 {
		return parsedCron{}, fmt.Errorf("cron expression must have 5 fields, got %d", len(fields))
	}

	minute, err := parseCronField(fields[0])
	if err != nil {
		return parsedCron{}, fmt.Errorf("parsing minute field: %w", err)
	}
	hour, err := parseCronField(fields[1])
	if err != nil {
		return parsedCron{}, fmt.Errorf("parsing hour field: %w", err)
	}
	dayOfMonth, err := parseCronField(fields[2])
	if err != nil {
		return parsedCron{}, fmt.Errorf("parsing day-of-month field: %w", err)
	}
	month, err := parseCronField(fields[3])
	if err != nil {
		return parsedCron{}, fmt.Errorf("parsing month field: %w", err)
	}
	dayOfWeek, err := parseCronField(fields[4])
	if err != nil {
		return parsedCron{}, fmt.Errorf("parsing day-of-week field: %w", err)
	}

	return parsedCron{
		minute:     minute,
		hour:       hour,
		dayOfMonth: dayOfMonth,
		month:      month,
		dayOfWeek:  dayOfWeek,
	}, nil
}

// nextCronTime finds the next time after 'after' matching the expression,
// searching minute-by-minute up to one year ahead.
func nextCronTime(cronExpr string, after time.Time) (time.Time, error) {
	cron, err := parseCron(cronExpr)
	if err != nil {
		return time.Time{}, err
	}

	candidate := after.Truncate(time.Minute).Add(time.Minute)
	limit := after.Add(366 * 24 * time.Hour)

	for candidate.Before(limit) {
		if cron.matchesTime(candidate) {
			return candidate, nil
		}
		candidate = candidate.Add(time.Minute)
	}

	return time.Time{}, fmt.Errorf("no matching cron time found within one year for %q", cronExpr)
}
