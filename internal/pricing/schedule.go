package pricing

import (
	"time"

	"github.com/shopspring/decimal"

	"voltride-backoffice/internal/domain"
)

// PriceForDuration returns the total price of a rental lasting days days.
// Up to 14 days the schedule tier is the total; beyond, each extra day is
// charged at ExtraDayPrice on top of the 14-day tier.
func PriceForDuration(schedule domain.PricingSchedule, days int) (decimal.Decimal, error) {
	if days <= 0 {
		return decimal.Zero, domain.Invalid("days", "must be a positive number of days")
	}
	if days <= domain.ScheduleDays {
		return schedule.Day(days), nil
	}
	extra := decimal.NewFromInt(int64(days - domain.ScheduleDays))
	return schedule.Day(domain.ScheduleDays).Add(extra.Mul(schedule.ExtraDayPrice)), nil
}

// ExtraHourSurcharge returns the surcharge for whole hours past the day
// boundary. It is added to the day price, never derived from it.
func ExtraHourSurcharge(schedule domain.PricingSchedule, hours int) (decimal.Decimal, error) {
	switch {
	case hours == 0:
		return decimal.Zero, nil
	case hours < 0:
		return decimal.Zero, domain.Invalid("extraHours", "must be >= 0")
	case hours > domain.ExtraHourSlots:
		return decimal.Zero, domain.Invalid("extraHours", "more than 4 extra hours must be booked as an extra day")
	}
	return schedule.ExtraHour(hours), nil
}

// RentalDays counts the days billed between pickup and return: started
// 24-hour periods, minimum one.
func RentalDays(hours int) int {
	if hours <= 0 {
		return 1
	}
	days := hours / 24
	if hours%24 > 0 {
		days++
	}
	return days
}

// RentalPeriod splits the time between pickup and return into billed days
// and extra hours. Started hours count in full. Up to four hours past the
// last full day are billed as extra hours; beyond that an extra day is billed.
func RentalPeriod(pickup, ret time.Time) (days, extraHours int, err error) {
	if !ret.After(pickup) {
		return 0, 0, domain.Invalid("returnAt", "must be after pickupAt")
	}
	d := ret.Sub(pickup)
	hours := int(d / time.Hour)
	if d%time.Hour != 0 {
		hours++
	}
	full, rest := hours/24, hours%24
	if full >= 1 && rest <= domain.ExtraHourSlots {
		return full, rest, nil
	}
	return RentalDays(hours), 0, nil
}
