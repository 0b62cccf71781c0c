package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPricingSchedule_UnmarshalJSON(t *testing.T) {
	var s PricingSchedule
	err := json.Unmarshal([]byte(`{"day1":20,"day2":"35.50","day14":180,"extraHour2":5,"extraDayPrice":12,"day15":999,"day3":null}`), &s)
	require.NoError(t, err)

	assert.True(t, s.Day(1).Equal(decimal.NewFromInt(20)))
	assert.True(t, s.Day(2).Equal(decimal.RequireFromString("35.50")))
	assert.True(t, s.Day(3).IsZero())
	assert.True(t, s.Day(14).Equal(decimal.NewFromInt(180)))
	assert.True(t, s.ExtraHour(2).Equal(decimal.NewFromInt(5)))
	assert.True(t, s.ExtraDayPrice.Equal(decimal.NewFromInt(12)))
	assert.True(t, s.Day(15).IsZero())
}

func TestPricingSchedule_MarshalJSON(t *testing.T) {
	var s PricingSchedule
	s.SetDay(7, decimal.NewFromInt(100))

	data, err := json.Marshal(s)
	require.NoError(t, err)

	var back PricingSchedule
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back.Day(7).Equal(decimal.NewFromInt(100)))

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Len(t, raw, ScheduleDays+ExtraHourSlots+1)
}

func TestPricingSchedule_Validate(t *testing.T) {
	var s PricingSchedule
	s.SetDay(2, decimal.NewFromInt(-1))
	s.ExtraDayPrice = decimal.NewFromInt(-3)

	verr := &ValidationError{}
	s.Validate("pricing", verr)

	require.Len(t, verr.Fields, 2)
	assert.Equal(t, "pricing.day2", verr.Fields[0].Field)
	assert.Equal(t, "pricing.extraDayPrice", verr.Fields[1].Field)
}

func TestPricingSchedule_IsMonotonic(t *testing.T) {
	var s PricingSchedule
	s.SetDay(1, decimal.NewFromInt(20))
	s.SetDay(2, decimal.NewFromInt(35))
	s.SetDay(7, decimal.NewFromInt(100))
	assert.True(t, s.IsMonotonic())

	s.SetDay(8, decimal.NewFromInt(90))
	assert.False(t, s.IsMonotonic())
}
