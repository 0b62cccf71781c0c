package restapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"voltride-backoffice/internal/domain"
)

// flexID accepts numeric or string identifiers and always emits a string.
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*f = flexID(n.String())
	return nil
}

func idStrings(ids []flexID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != "" {
			out = append(out, string(id))
		}
	}
	return out
}

func flexIDs(ids []string) []flexID {
	out := make([]flexID, 0, len(ids))
	for _, id := range ids {
		out = append(out, flexID(id))
	}
	return out
}

var timeLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

// flexTime accepts RFC 3339 timestamps and bare dates.
type flexTime struct{ time.Time }

func (t *flexTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unrecognised time %q", s)
}

func nullDec(d decimal.Decimal) decimal.NullDecimal { return decimal.NewNullDecimal(d) }

func decOrZero(n decimal.NullDecimal) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}
	return n.Decimal
}

// scheduleDTO is the flat day1..day14 price table used on the wire.
type scheduleDTO struct {
	Day1          decimal.NullDecimal `json:"day1"`
	Day2          decimal.NullDecimal `json:"day2"`
	Day3          decimal.NullDecimal `json:"day3"`
	Day4          decimal.NullDecimal `json:"day4"`
	Day5          decimal.NullDecimal `json:"day5"`
	Day6          decimal.NullDecimal `json:"day6"`
	Day7          decimal.NullDecimal `json:"day7"`
	Day8          decimal.NullDecimal `json:"day8"`
	Day9          decimal.NullDecimal `json:"day9"`
	Day10         decimal.NullDecimal `json:"day10"`
	Day11         decimal.NullDecimal `json:"day11"`
	Day12         decimal.NullDecimal `json:"day12"`
	Day13         decimal.NullDecimal `json:"day13"`
	Day14         decimal.NullDecimal `json:"day14"`
	ExtraHour1    decimal.NullDecimal `json:"extraHour1"`
	ExtraHour2    decimal.NullDecimal `json:"extraHour2"`
	ExtraHour3    decimal.NullDecimal `json:"extraHour3"`
	ExtraHour4    decimal.NullDecimal `json:"extraHour4"`
	ExtraDayPrice decimal.NullDecimal `json:"extraDayPrice"`
}

func (s *scheduleDTO) days() []*decimal.NullDecimal {
	return []*decimal.NullDecimal{
		&s.Day1, &s.Day2, &s.Day3, &s.Day4, &s.Day5, &s.Day6, &s.Day7,
		&s.Day8, &s.Day9, &s.Day10, &s.Day11, &s.Day12, &s.Day13, &s.Day14,
	}
}

func (s *scheduleDTO) hours() []*decimal.NullDecimal {
	return []*decimal.NullDecimal{&s.ExtraHour1, &s.ExtraHour2, &s.ExtraHour3, &s.ExtraHour4}
}

func toScheduleDTO(p domain.PricingSchedule) scheduleDTO {
	var s scheduleDTO
	for i, f := range s.days() {
		*f = nullDec(p.Days[i])
	}
	for i, f := range s.hours() {
		*f = nullDec(p.ExtraHours[i])
	}
	s.ExtraDayPrice = nullDec(p.ExtraDayPrice)
	return s
}

func (s scheduleDTO) toDomain() domain.PricingSchedule {
	var p domain.PricingSchedule
	for i, f := range s.days() {
		p.Days[i] = decOrZero(*f)
	}
	for i, f := range s.hours() {
		p.ExtraHours[i] = decOrZero(*f)
	}
	p.ExtraDayPrice = decOrZero(s.ExtraDayPrice)
	return p
}

type agencyDTO struct {
	ID                flexID               `json:"id,omitempty"`
	Code              string               `json:"code"`
	Name              domain.LocalizedText `json:"name"`
	Address           string               `json:"address"`
	City              string               `json:"city"`
	PostalCode        string               `json:"postalCode"`
	Country           string               `json:"country"`
	Phone             string               `json:"phone"`
	Email             string               `json:"email"`
	Brand             string               `json:"brand"`
	IsActive          bool                 `json:"isActive"`
	AgencyType        string               `json:"agencyType"`
	CommissionRate    decimal.NullDecimal  `json:"commissionRate"`
	CommissionEmail   *string              `json:"commissionEmail"`
	ShowStockUrgency  bool                 `json:"showStockUrgency"`
	OpeningTime       string               `json:"openingTime,omitempty"`
	ClosingTimeSummer string               `json:"closingTimeSummer,omitempty"`
	ClosingTimeWinter string               `json:"closingTimeWinter,omitempty"`
}

func toAgencyDTO(a domain.Agency) agencyDTO {
	dto := agencyDTO{
		ID:                flexID(a.ID),
		Code:              a.Code,
		Name:              a.Name,
		Address:           a.Address,
		City:              a.City,
		PostalCode:        a.PostalCode,
		Country:           a.Country,
		Phone:             a.Phone,
		Email:             a.Email,
		Brand:             a.Brand,
		IsActive:          a.IsActive,
		AgencyType:        string(a.Kind()),
		CommissionEmail:   a.CommissionEmail,
		ShowStockUrgency:  a.ShowStockUrgency,
		OpeningTime:       a.OpeningTime,
		ClosingTimeSummer: a.ClosingTimeSummer,
		ClosingTimeWinter: a.ClosingTimeWinter,
	}
	if a.CommissionRate != nil {
		dto.CommissionRate = nullDec(*a.CommissionRate)
	}
	return dto
}

func (d agencyDTO) toDomain() (domain.Agency, error) {
	if d.ID == "" {
		return domain.Agency{}, fmt.Errorf("agency without id")
	}
	a := domain.Agency{
		ID:                string(d.ID),
		Code:              d.Code,
		Name:              d.Name,
		Address:           d.Address,
		City:              d.City,
		PostalCode:        d.PostalCode,
		Country:           d.Country,
		Phone:             d.Phone,
		Email:             d.Email,
		Brand:             d.Brand,
		IsActive:          d.IsActive,
		AgencyType:        domain.AgencyType(strings.ToUpper(d.AgencyType)),
		CommissionEmail:   d.CommissionEmail,
		ShowStockUrgency:  d.ShowStockUrgency,
		OpeningTime:       d.OpeningTime,
		ClosingTimeSummer: d.ClosingTimeSummer,
		ClosingTimeWinter: d.ClosingTimeWinter,
	}
	if d.CommissionRate.Valid {
		rate := d.CommissionRate.Decimal
		a.CommissionRate = &rate
	}
	return a, nil
}

type vehicleCount struct {
	Vehicles int `json:"vehicles"`
}

type categoryDTO struct {
	ID                    flexID               `json:"id,omitempty"`
	Code                  string               `json:"code"`
	Name                  domain.LocalizedText `json:"name"`
	Brand                 string               `json:"brand"`
	BookingFee            decimal.NullDecimal  `json:"bookingFee"`
	BookingFeePercentLow  decimal.NullDecimal  `json:"bookingFeePercentLow"`
	BookingFeePercentHigh decimal.NullDecimal  `json:"bookingFeePercentHigh"`
	Count                 *vehicleCount        `json:"_count,omitempty"`
}

func toCategoryDTO(c domain.Category) categoryDTO {
	return categoryDTO{
		ID:                    flexID(c.ID),
		Code:                  c.Code,
		Name:                  c.Name,
		Brand:                 c.Brand,
		BookingFee:            nullDec(c.BookingFee),
		BookingFeePercentLow:  nullDec(c.BookingFeePercentLow),
		BookingFeePercentHigh: nullDec(c.BookingFeePercentHigh),
	}
}

func (d categoryDTO) toDomain() (domain.Category, error) {
	if d.ID == "" {
		return domain.Category{}, fmt.Errorf("category without id")
	}
	c := domain.Category{
		ID:                    string(d.ID),
		Code:                  d.Code,
		Name:                  d.Name,
		Brand:                 d.Brand,
		BookingFee:            decOrZero(d.BookingFee),
		BookingFeePercentLow:  decOrZero(d.BookingFeePercentLow),
		BookingFeePercentHigh: decOrZero(d.BookingFeePercentHigh),
	}
	if d.Count != nil {
		c.VehicleCount = d.Count.Vehicles
	}
	return c, nil
}

type vehicleDTO struct {
	ID               flexID               `json:"id,omitempty"`
	SKU              string               `json:"sku"`
	Name             domain.LocalizedText `json:"name"`
	Description      domain.LocalizedText `json:"description"`
	Deposit          decimal.NullDecimal  `json:"deposit"`
	HasPlate         bool                 `json:"hasPlate"`
	LicenseType      string               `json:"licenseType,omitempty"`
	KmIncludedPerDay int                  `json:"kmIncludedPerDay"`
	ExtraKmPrice     decimal.NullDecimal  `json:"extraKmPrice"`
	HelmetIncluded   bool                 `json:"helmetIncluded"`
	ImageURL         string               `json:"imageUrl,omitempty"`
	CategoryID       flexID               `json:"categoryId"`
	Pricing          []scheduleDTO        `json:"pricing"`
}

func toVehicleDTO(v domain.Vehicle) vehicleDTO {
	return vehicleDTO{
		ID:               flexID(v.ID),
		SKU:              v.SKU,
		Name:             v.Name,
		Description:      v.Description,
		Deposit:          nullDec(v.Deposit),
		HasPlate:         v.HasPlate,
		LicenseType:      string(v.LicenseType),
		KmIncludedPerDay: v.KmIncludedPerDay,
		ExtraKmPrice:     nullDec(v.ExtraKmPrice),
		HelmetIncluded:   v.HelmetIncluded,
		ImageURL:         v.ImageURL,
		CategoryID:       flexID(v.CategoryID),
		Pricing:          []scheduleDTO{toScheduleDTO(v.Pricing)},
	}
}

func (d vehicleDTO) toDomain() (domain.Vehicle, error) {
	if d.ID == "" {
		return domain.Vehicle{}, fmt.Errorf("vehicle without id")
	}
	if d.CategoryID == "" {
		return domain.Vehicle{}, fmt.Errorf("vehicle %s without category", d.ID)
	}
	v := domain.Vehicle{
		ID:               string(d.ID),
		SKU:              d.SKU,
		Name:             d.Name,
		Description:      d.Description,
		Deposit:          decOrZero(d.Deposit),
		HasPlate:         d.HasPlate,
		LicenseType:      domain.LicenseType(d.LicenseType),
		KmIncludedPerDay: d.KmIncludedPerDay,
		ExtraKmPrice:     decOrZero(d.ExtraKmPrice),
		HelmetIncluded:   d.HelmetIncluded,
		ImageURL:         d.ImageURL,
		CategoryID:       string(d.CategoryID),
	}
	// The repository keeps a one-element price table list per vehicle.
	if len(d.Pricing) > 0 {
		v.Pricing = d.Pricing[0].toDomain()
	}
	return v, nil
}

type optionDTO struct {
	ID                    flexID               `json:"id,omitempty"`
	Code                  string               `json:"code"`
	Name                  domain.LocalizedText `json:"name"`
	Description           domain.LocalizedText `json:"description"`
	MaxQuantity           int                  `json:"maxQuantity"`
	IncludedByDefault     bool                 `json:"includedByDefault"`
	ImageURL              string               `json:"imageUrl,omitempty"`
	AssociatedCategoryIDs []flexID             `json:"associatedCategoryIds"`
	scheduleDTO
}

func toOptionDTO(o domain.Option) optionDTO {
	return optionDTO{
		ID:                    flexID(o.ID),
		Code:                  o.Code,
		Name:                  o.Name,
		Description:           o.Description,
		MaxQuantity:           o.MaxQuantity,
		IncludedByDefault:     o.IncludedByDefault,
		ImageURL:              o.ImageURL,
		AssociatedCategoryIDs: flexIDs(o.AssociatedCategoryIDs),
		scheduleDTO:           toScheduleDTO(o.Pricing),
	}
}

func (d optionDTO) toDomain() (domain.Option, error) {
	if d.ID == "" {
		return domain.Option{}, fmt.Errorf("option without id")
	}
	return domain.Option{
		ID:                    string(d.ID),
		Code:                  d.Code,
		Name:                  d.Name,
		Description:           d.Description,
		MaxQuantity:           d.MaxQuantity,
		IncludedByDefault:     d.IncludedByDefault,
		ImageURL:              d.ImageURL,
		Pricing:               d.scheduleDTO.toDomain(),
		AssociatedCategoryIDs: idStrings(d.AssociatedCategoryIDs),
	}, nil
}

type customerDTO struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

type bookingDTO struct {
	ID                    flexID              `json:"id"`
	Reference             string              `json:"reference"`
	Customer              *customerDTO        `json:"customer"`
	StartDate             flexTime            `json:"startDate"`
	EndDate               flexTime            `json:"endDate"`
	AgencyID              flexID              `json:"agencyId"`
	TotalPrice            decimal.NullDecimal `json:"totalPrice"`
	Status                string              `json:"status"`
	DepositStatus         string              `json:"depositStatus"`
	DepositCapturedAmount decimal.NullDecimal `json:"depositCapturedAmount"`
}

func (d bookingDTO) toDomain() (domain.Booking, error) {
	if d.ID == "" {
		return domain.Booking{}, fmt.Errorf("booking without id")
	}
	b := domain.Booking{
		ID:                    string(d.ID),
		Reference:             d.Reference,
		StartDate:             d.StartDate.Time,
		EndDate:               d.EndDate.Time,
		AgencyID:              string(d.AgencyID),
		TotalPrice:            decOrZero(d.TotalPrice),
		Status:                domain.BookingStatus(strings.ToUpper(d.Status)),
		DepositStatus:         domain.DepositStatus(strings.ToUpper(d.DepositStatus)),
		DepositCapturedAmount: decOrZero(d.DepositCapturedAmount),
	}
	if d.Customer != nil {
		b.Customer = domain.Customer(*d.Customer)
	}
	return b, nil
}

type notificationSettingDTO struct {
	ID         flexID               `json:"id,omitempty"`
	Type       string               `json:"type"`
	Brand      string               `json:"brand"`
	Roles      map[domain.Role]bool `json:"roles"`
	Attributes map[string]string    `json:"attributes,omitempty"`
}

func toNotificationSettingDTO(s domain.NotificationSetting) notificationSettingDTO {
	return notificationSettingDTO{
		ID:         flexID(s.ID),
		Type:       string(s.Type),
		Brand:      s.Brand,
		Roles:      s.Roles,
		Attributes: s.Extra,
	}
}

func (d notificationSettingDTO) toDomain() (domain.NotificationSetting, error) {
	if d.Type == "" {
		return domain.NotificationSetting{}, fmt.Errorf("notification setting without type")
	}
	return domain.NotificationSetting{
		ID:    string(d.ID),
		Type:  domain.NotificationType(strings.ToUpper(d.Type)),
		Brand: d.Brand,
		Roles: d.Roles,
		Extra: d.Attributes,
	}, nil
}
