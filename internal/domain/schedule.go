package domain

import "time"

// LocationWorkingHours is the default weekly schedule of a location.
// Weekday is ISO: 1 = Monday .. 7 = Sunday. Times are local HH:mm.
type LocationWorkingHours struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	LocationID string    `json:"location_id" gorm:"index:idx_location_weekday,unique"`
	Weekday    int       `json:"weekday" gorm:"index:idx_location_weekday,unique" validate:"min=1,max=7"`
	OpenTime   string    `json:"open_time"`  // HH:mm
	CloseTime  string    `json:"close_time"` // HH:mm
	CreatedAt  time.Time `json:"created_at"`
}

// BarberWorkingHours is a barber-specific weekly override. For a given
// weekday it fully replaces the location default; the two are never merged.
type BarberWorkingHours struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	BarberID  string    `json:"barber_id" gorm:"index:idx_barber_weekday,unique"`
	Weekday   int       `json:"weekday" gorm:"index:idx_barber_weekday,unique" validate:"min=1,max=7"`
	OpenTime  string    `json:"open_time"`
	CloseTime string    `json:"close_time"`
	CreatedAt time.Time `json:"created_at"`
}

// TimeOff is a hard unavailability window, independent of the weekly
// schedule. Rows are created and deleted, never updated in place.
type TimeOff struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	BarberID  string    `json:"barber_id" gorm:"index"`
	StartAt   time.Time `json:"start_at"`
	EndAt     time.Time `json:"end_at"`
	Reason    string    `json:"reason,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ISOWeekday maps time.Weekday to the 1..7 Monday-first numbering used
// by the working-hours tables.
func ISOWeekday(d time.Weekday) int {
	if d == time.Sunday {
		return 7
	}
	return int(d)
}
