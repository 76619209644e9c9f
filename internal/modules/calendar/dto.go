package calendar

type MoveRequest struct {
	Date string `json:"date" binding:"required"`
	// RawStartMin is the unsnapped drop position, minutes from the
	// start of the day window.
	RawStartMin int `json:"raw_start_min"`
}

// MoveResponse carries the committed position and, when the drop had to
// be shifted or rejected, an advisory the UI shows as a toast.
type MoveResponse struct {
	Moved    bool   `json:"moved"`
	StartAt  string `json:"start_at,omitempty"`
	EndAt    string `json:"end_at,omitempty"`
	Advisory string `json:"advisory,omitempty"`
}

type DayAppointment struct {
	ID         string `json:"id"`
	BarberID   string `json:"barber_id"`
	BarberName string `json:"barber_name"`
	Service    string `json:"service"`
	Client     string `json:"client,omitempty"`
	StartAt    string `json:"start_at"`
	EndAt      string `json:"end_at"`
	Status     string `json:"status"`
}
