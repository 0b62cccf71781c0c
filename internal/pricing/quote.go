package pricing

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"voltride-backoffice/internal/domain"
)

type QuoteLine struct {
	Kind     string          `json:"kind"` // vehicle, extra_hours, option
	RefID    string          `json:"refId"`
	Label    string          `json:"label"`
	Quantity int             `json:"quantity"`
	Unit     decimal.Decimal `json:"unit"`
	Amount   decimal.Decimal `json:"amount"`
}

type QuoteInput struct {
	Vehicle    domain.Vehicle
	Category   domain.Category
	Options    []domain.Option // options offered by the brand
	Selections map[string]int  // option id -> quantity; 0 removes a default option
	Days       int
	ExtraHours int
	Lang       domain.Lang
}

type Quote struct {
	VehicleID       string          `json:"vehicleId"`
	Days            int             `json:"days"`
	ExtraHours      int             `json:"extraHours"`
	Lines           []QuoteLine     `json:"lines"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	BookingFee      decimal.Decimal `json:"bookingFee"`
	BalanceDue      decimal.Decimal `json:"balanceDue"`
	SecurityDeposit decimal.Decimal `json:"securityDeposit"`
}

// BuildQuote prices a rental: the vehicle schedule for the duration, the
// extra-hour surcharge, then each selected option. The booking fee follows
// the category policy on the subtotal.
func BuildQuote(in QuoteInput) (Quote, error) {
	if in.Vehicle.CategoryID != in.Category.ID {
		return Quote{}, domain.Invalid("vehicleId", "vehicle does not belong to the given category")
	}
	lang := in.Lang
	if lang == "" {
		lang = domain.LangFR
	}

	dayPrice, err := PriceForDuration(in.Vehicle.Pricing, in.Days)
	if err != nil {
		return Quote{}, err
	}
	surcharge, err := ExtraHourSurcharge(in.Vehicle.Pricing, in.ExtraHours)
	if err != nil {
		return Quote{}, err
	}

	q := Quote{VehicleID: in.Vehicle.ID, Days: in.Days, ExtraHours: in.ExtraHours, SecurityDeposit: in.Vehicle.Deposit}
	q.Lines = append(q.Lines, QuoteLine{
		Kind: "vehicle", RefID: in.Vehicle.ID, Label: in.Vehicle.Name.Resolve(lang),
		Quantity: 1, Unit: dayPrice, Amount: dayPrice,
	})
	if in.ExtraHours > 0 {
		q.Lines = append(q.Lines, QuoteLine{
			Kind: "extra_hours", RefID: in.Vehicle.ID, Label: fmt.Sprintf("+%dh", in.ExtraHours),
			Quantity: 1, Unit: surcharge, Amount: surcharge,
		})
	}

	quantities, err := resolveSelections(in)
	if err != nil {
		return Quote{}, err
	}
	for _, opt := range in.Options {
		qty, ok := quantities[opt.ID]
		if !ok || qty == 0 {
			continue
		}
		unit, err := PriceForDuration(opt.Pricing, in.Days)
		if err != nil {
			return Quote{}, err
		}
		q.Lines = append(q.Lines, QuoteLine{
			Kind: "option", RefID: opt.ID, Label: opt.Name.Resolve(lang),
			Quantity: qty, Unit: unit, Amount: unit.Mul(decimal.NewFromInt(int64(qty))),
		})
	}

	for _, l := range q.Lines {
		q.Subtotal = q.Subtotal.Add(l.Amount)
	}
	q.Subtotal = q.Subtotal.Round(2)
	q.BookingFee = ComputeBookingFee(in.Category, q.Subtotal).Round(2)
	q.BalanceDue = q.Subtotal.Sub(q.BookingFee)
	return q, nil
}

// resolveSelections validates the requested options and adds the ones
// included by default that the request does not mention.
func resolveSelections(in QuoteInput) (map[string]int, error) {
	byID := make(map[string]domain.Option, len(in.Options))
	for _, o := range in.Options {
		byID[o.ID] = o
	}

	verr := &domain.ValidationError{}
	out := make(map[string]int, len(in.Selections))
	ids := make([]string, 0, len(in.Selections))
	for id := range in.Selections {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		qty := in.Selections[id]
		field := "options." + id
		opt, ok := byID[id]
		switch {
		case !ok:
			verr.Add(field, "unknown option")
		case qty < 0:
			verr.Add(field, "quantity must be >= 0")
		case qty > 0 && !opt.AppliesTo(in.Category.ID):
			verr.Add(field, "option is not available for this category")
		case opt.MaxQuantity > 0 && qty > opt.MaxQuantity:
			verr.Add(field, fmt.Sprintf("quantity must be <= %d", opt.MaxQuantity))
		default:
			out[id] = qty
		}
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	for _, o := range in.Options {
		if _, chosen := in.Selections[o.ID]; chosen {
			continue
		}
		if o.IncludedByDefault && o.AppliesTo(in.Category.ID) {
			out[o.ID] = 1
		}
	}
	return out, nil
}
