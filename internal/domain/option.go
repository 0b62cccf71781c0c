package domain

type Option struct {
	ID                    string          `json:"id"`
	Code                  string          `json:"code" validate:"required,max=32"`
	Name                  LocalizedText   `json:"name"`
	Description           LocalizedText   `json:"description"`
	MaxQuantity           int             `json:"maxQuantity" validate:"gte=0"`
	IncludedByDefault     bool            `json:"includedByDefault"`
	ImageURL              string          `json:"imageUrl,omitempty" validate:"omitempty,url"`
	Pricing               PricingSchedule `json:"pricing"`
	AssociatedCategoryIDs []string        `json:"associatedCategoryIds"`
}

// AppliesTo reports whether the option can be booked with a vehicle of the
// given category. An option without associated categories applies to all.
func (o Option) AppliesTo(categoryID string) bool {
	if len(o.AssociatedCategoryIDs) == 0 {
		return true
	}
	for _, id := range o.AssociatedCategoryIDs {
		if id == categoryID {
			return true
		}
	}
	return false
}

func (o Option) Validate(verr *ValidationError) {
	o.Name.RequireFR("name", verr)
	if o.MaxQuantity < 0 {
		verr.Add("maxQuantity", "must be >= 0")
	}
	o.Pricing.Validate("pricing", verr)
}
