package domain

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	ScheduleDays   = 14
	ExtraHourSlots = 4
)

// PricingSchedule maps a rental length to its total price. Days[n-1] is the
// price of an n-day rental, not a nightly rate.
type PricingSchedule struct {
	Days          [ScheduleDays]decimal.Decimal
	ExtraHours    [ExtraHourSlots]decimal.Decimal
	ExtraDayPrice decimal.Decimal
}

// Day returns the total price for an n-day rental, 1 <= n <= 14.
func (s PricingSchedule) Day(n int) decimal.Decimal {
	if n < 1 || n > ScheduleDays {
		return decimal.Zero
	}
	return s.Days[n-1]
}

func (s *PricingSchedule) SetDay(n int, v decimal.Decimal) {
	if n < 1 || n > ScheduleDays {
		return
	}
	s.Days[n-1] = v
}

// ExtraHour returns the surcharge for h hours past the day boundary, 1 <= h <= 4.
func (s PricingSchedule) ExtraHour(h int) decimal.Decimal {
	if h < 1 || h > ExtraHourSlots {
		return decimal.Zero
	}
	return s.ExtraHours[h-1]
}

func (s *PricingSchedule) SetExtraHour(h int, v decimal.Decimal) {
	if h < 1 || h > ExtraHourSlots {
		return
	}
	s.ExtraHours[h-1] = v
}

// Validate reports negative amounts under field.
func (s PricingSchedule) Validate(field string, verr *ValidationError) {
	for i, v := range s.Days {
		if v.IsNegative() {
			verr.Add(fmt.Sprintf("%s.day%d", field, i+1), "must be >= 0")
		}
	}
	for i, v := range s.ExtraHours {
		if v.IsNegative() {
			verr.Add(fmt.Sprintf("%s.extraHour%d", field, i+1), "must be >= 0")
		}
	}
	if s.ExtraDayPrice.IsNegative() {
		verr.Add(field+".extraDayPrice", "must be >= 0")
	}
}

// IsMonotonic reports whether the total price never drops as the rental gets
// longer. Unset (zero) tiers after the last priced day are ignored.
func (s PricingSchedule) IsMonotonic() bool {
	last := decimal.Zero
	for _, v := range s.Days {
		if v.IsZero() {
			continue
		}
		if v.LessThan(last) {
			return false
		}
		last = v
	}
	return true
}

func (s PricingSchedule) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.fields())
}

func (s *PricingSchedule) UnmarshalJSON(data []byte) error {
	var raw map[string]decimal.NullDecimal
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var out PricingSchedule
	for n := 1; n <= ScheduleDays; n++ {
		if v, ok := raw[fmt.Sprintf("day%d", n)]; ok && v.Valid {
			out.SetDay(n, v.Decimal)
		}
	}
	for h := 1; h <= ExtraHourSlots; h++ {
		if v, ok := raw[fmt.Sprintf("extraHour%d", h)]; ok && v.Valid {
			out.SetExtraHour(h, v.Decimal)
		}
	}
	if v, ok := raw["extraDayPrice"]; ok && v.Valid {
		out.ExtraDayPrice = v.Decimal
	}
	*s = out
	return nil
}

func (s PricingSchedule) fields() map[string]decimal.Decimal {
	m := make(map[string]decimal.Decimal, ScheduleDays+ExtraHourSlots+1)
	for n := 1; n <= ScheduleDays; n++ {
		m[fmt.Sprintf("day%d", n)] = s.Day(n)
	}
	for h := 1; h <= ExtraHourSlots; h++ {
		m[fmt.Sprintf("extraHour%d", h)] = s.ExtraHour(h)
	}
	m["extraDayPrice"] = s.ExtraDayPrice
	return m
}
