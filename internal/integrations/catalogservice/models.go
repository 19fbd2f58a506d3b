package catalogservice

// Salon модель салона из CatalogService
type Salon struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Timezone string `json:"timezone"`
	Active   bool   `json:"active"`
}

// Staff модель сотрудника из CatalogService
type Staff struct {
	ID      int64  `json:"id"`
	SalonID int64  `json:"salon_id"`
	Name    string `json:"name"`
	Active  bool   `json:"active"`
}

// Menu модель услуги (меню) из CatalogService
type Menu struct {
	ID              int64    `json:"id"`
	SalonID         int64    `json:"salon_id"`
	Name            string   `json:"name"`
	Price           *float64 `json:"price,omitempty"`
	DurationMinutes int      `json:"duration_minutes"`
}

// ErrorResponse модель ошибки от CatalogService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
