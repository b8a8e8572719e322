package request

// AddDishRequest keeps price and calories untyped so that numeric strings
// such as "12.50" are accepted and coerced by the service.
type AddDishRequest struct {
	Name          string  `json:"name" validate:"required"`
	Variant       *string `json:"variant,omitempty"`
	Course        string  `json:"course" validate:"required"`
	Ingredients   *string `json:"ingredients,omitempty"`
	Description   *string `json:"description,omitempty"`
	Price         any     `json:"price,omitempty"`
	Category      *string `json:"category,omitempty"`
	CountryOrigin *string `json:"country_origin,omitempty"`
	Availability  *string `json:"availability,omitempty"`
	Calories      any     `json:"calories,omitempty"`
}

// UpdateDishRequest carries only the fields a dish update may overwrite.
type UpdateDishRequest struct {
	Name         *string  `json:"name,omitempty"`
	Price        *float64 `json:"price,omitempty"`
	Course       *string  `json:"course,omitempty"`
	Availability *string  `json:"availability,omitempty"`
}

// IsEmpty reports whether the request changes nothing
func (r UpdateDishRequest) IsEmpty() bool {
	return r.Name == nil && r.Price == nil && r.Course == nil && r.Availability == nil
}
