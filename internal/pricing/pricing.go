// Package pricing computes booking duration and cost from a time-of-day interval.
package pricing

import (
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nekogravitycat/smartpark-backend/internal/pkg/apperror"
)

// ExtraHourRate is charged for every started hour past the base duration.
var ExtraHourRate = decimal.NewFromInt(5)

var (
	ErrTimeRequired  = apperror.Validation("from and to times are required")
	ErrInvalidTime   = apperror.Validation("times must be formatted as HH:MM")
	ErrEmptyInterval = apperror.Validation("from and to times must differ")
	ErrInvalidPlan   = apperror.Validation("pricing requires a positive amount and duration")
)

// Plan is the pricing part of the location configuration.
type Plan struct {
	Amount   decimal.Decimal // flat price covering the base duration
	Duration int             // base duration in hours
}

// Quote is the result of pricing one interval.
type Quote struct {
	Hours int // ceil of the interval length, at least 1
	Cost  decimal.Decimal
}

// ParseClock parses a time-of-day in HH:MM or HH:MM:SS form and
// returns the offset from midnight.
func ParseClock(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrTimeRequired
	}

	var t time.Time
	var err error
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err = time.Parse(layout, s); err == nil {
			break
		}
	}
	if err != nil {
		return 0, ErrInvalidTime
	}

	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second, nil
}

// Span returns the interval length in hours. An end before the start
// wraps forward past midnight. Equal times are rejected.
func Span(from, to string) (float64, error) {
	start, err := ParseClock(from)
	if err != nil {
		return 0, err
	}
	end, err := ParseClock(to)
	if err != nil {
		return 0, err
	}
	if start == end {
		return 0, ErrEmptyInterval
	}

	d := end - start
	if d < 0 {
		d += 24 * time.Hour
	}
	return d.Hours(), nil
}

// Calculate prices the interval [from, to) under plan.
func Calculate(from, to string, plan Plan) (Quote, error) {
	if !plan.Amount.IsPositive() || plan.Duration < 1 {
		return Quote{}, ErrInvalidPlan
	}

	hours, err := Span(from, to)
	if err != nil {
		return Quote{}, err
	}

	return Quote{
		Hours: int(math.Ceil(hours)),
		Cost:  Cost(hours, plan),
	}, nil
}

// Cost applies the flat-plus-extra-hours rule to a raw hour count.
func Cost(hours float64, plan Plan) decimal.Decimal {
	base := float64(plan.Duration)
	if hours <= base {
		return plan.Amount
	}
	extra := int64(math.Ceil(hours - base))
	return plan.Amount.Add(ExtraHourRate.Mul(decimal.NewFromInt(extra)))
}
