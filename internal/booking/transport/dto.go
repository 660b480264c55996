package transport

// BookingRequest is one test drive form submission.
// Fields are free text; the dispatch endpoint does not validate them.
type BookingRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,contains=@"`
	Phone     string `json:"phone" validate:"required"`
	Model     string `json:"model"`
	Message   string `json:"message"`
}

// ModelsResponse lists the selectable vehicle models.
type ModelsResponse struct {
	Models  []string `json:"models"`
	Default string   `json:"default"`
}
