package domain

// Branded is implemented by records partitioned by brand.
type Branded interface {
	BrandOf() string
}

// FilterByBrand keeps the records that belong to brand.
func FilterByBrand[T Branded](records []T, brand string) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if r.BrandOf() == brand {
			out = append(out, r)
		}
	}
	return out
}

// CategoryIDs returns the set of category ids.
func CategoryIDs(categories []Category) map[string]struct{} {
	ids := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		ids[c.ID] = struct{}{}
	}
	return ids
}

// FilterVehiclesByBrand keeps vehicles whose category is in brandCategoryIDs.
// Vehicles carry no brand of their own.
func FilterVehiclesByBrand(vehicles []Vehicle, brandCategoryIDs map[string]struct{}) []Vehicle {
	out := make([]Vehicle, 0, len(vehicles))
	for _, v := range vehicles {
		if _, ok := brandCategoryIDs[v.CategoryID]; ok {
			out = append(out, v)
		}
	}
	return out
}

// AttachCategories resolves each vehicle's category and caches the inherited
// brand on it. Vehicles whose category is unknown keep an empty brand.
func AttachCategories(vehicles []Vehicle, categories []Category) []Vehicle {
	byID := make(map[string]*Category, len(categories))
	for i := range categories {
		byID[categories[i].ID] = &categories[i]
	}
	out := make([]Vehicle, len(vehicles))
	for i, v := range vehicles {
		if c, ok := byID[v.CategoryID]; ok {
			cp := *c
			v.Category = &cp
			v.Brand = c.Brand
		} else {
			v.Category = nil
			v.Brand = ""
		}
		out[i] = v
	}
	return out
}

// AgencyIDs returns the set of agency ids.
func AgencyIDs(agencies []Agency) map[string]struct{} {
	ids := make(map[string]struct{}, len(agencies))
	for _, a := range agencies {
		ids[a.ID] = struct{}{}
	}
	return ids
}

// FilterBookingsByAgencies keeps bookings taken at one of the given agencies.
func FilterBookingsByAgencies(bookings []Booking, agencyIDs map[string]struct{}) []Booking {
	out := make([]Booking, 0, len(bookings))
	for _, b := range bookings {
		if _, ok := agencyIDs[b.AgencyID]; ok {
			out = append(out, b)
		}
	}
	return out
}
