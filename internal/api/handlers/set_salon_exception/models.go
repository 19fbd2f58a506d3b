package set_salon_exception

// SetExceptionRequest HTTP request model
// Дата берется из URL, отсутствие startTime и endTime означает "закрыто весь день"
type SetExceptionRequest struct {
	StartTime *string `json:"startTime,omitempty"`
	EndTime   *string `json:"endTime,omitempty"`
	Kind      string  `json:"kind"` // holiday | leave | irregular
	Notes     *string `json:"notes,omitempty"`
}
