package schedule

// WeeklyRuleRequest is one row of the weekly form: ISO weekday 1..7
// (Monday first) with HH:mm local open/close times.
type WeeklyRuleRequest struct {
	Weekday   int    `json:"weekday"`
	OpenTime  string `json:"open_time"`
	CloseTime string `json:"close_time"`
}

type SaveRulesRequest struct {
	Rules []WeeklyRuleRequest `json:"rules"`
}

type TimeOffRequest struct {
	BarberID string `json:"barber_id"`
	StartAt  string `json:"start_at"`
	EndAt    string `json:"end_at"`
	Reason   string `json:"reason"`
}

type OpenIntervalResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}
