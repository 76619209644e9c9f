package availability

type SlotsResponse struct {
	BarberID  string   `json:"barber_id"`
	ServiceID string   `json:"service_id"`
	Date      string   `json:"date"`
	Slots     []string `json:"slots"`
}

type FirstAvailableEntry struct {
	BarberID   string  `json:"barber_id"`
	BarberName string  `json:"barber_name"`
	PhotoURL   string  `json:"photo_url,omitempty"`
	Rating     float64 `json:"rating"`
	Start      string  `json:"start"`
}
