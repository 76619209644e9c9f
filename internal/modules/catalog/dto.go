package catalog

type ServiceRequest struct {
	Name        string  `json:"name" binding:"required"`
	DurationMin int     `json:"duration_min" binding:"required"`
	Price       float64 `json:"price"`
	IsActive    *bool   `json:"is_active"`
}

type BarberRequest struct {
	UserID          string   `json:"user_id" binding:"required"`
	LocationID      string   `json:"location_id" binding:"required"`
	Bio             string   `json:"bio"`
	PhotoURL        string   `json:"photo_url"`
	IsActive        *bool    `json:"is_active"`
	TelegramChatID  string   `json:"telegram_chat_id"`
	TelegramEnabled bool     `json:"telegram_enabled"`
	ServiceIDs      []string `json:"service_ids"`
}

type LocationRequest struct {
	Name     string `json:"name" binding:"required"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	Timezone string `json:"timezone" binding:"required"`
}

type BarberResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Bio      string  `json:"bio,omitempty"`
	Rating   float64 `json:"rating"`
	PhotoURL string  `json:"photo_url,omitempty"`
}
