package schedule

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"barbershop/internal/domain"
	"barbershop/internal/pkg/interval"
)

type Service struct {
	hours     WorkingHoursRepository
	timeOff   TimeOffRepository
	barbers   BarberRepository
	locations LocationRepository

	defaultTZ string
}

func NewService(
	hours WorkingHoursRepository,
	timeOff TimeOffRepository,
	barbers BarberRepository,
	locations LocationRepository,
	defaultTZ string,
) *Service {
	return &Service{
		hours:     hours,
		timeOff:   timeOff,
		barbers:   barbers,
		locations: locations,
		defaultTZ: defaultTZ,
	}
}

// OpenIntervals resolves the barber's bookable windows for a calendar
// date (YYYY-MM-DD): the barber's weekday override, else the location
// default, else closed; converted to absolute instants in the location's
// timezone, minus intersecting time-off.
func (s *Service) OpenIntervals(ctx context.Context, barberID, dateStr string) ([]interval.Interval, error) {
	barber, err := s.barbers.GetByID(ctx, barberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	loc := s.location(ctx, barber.LocationID)

	day, err := time.ParseInLocation("2006-01-02", dateStr, loc)
	if err != nil {
		return nil, ErrValidation
	}

	open, close, ok, err := s.resolveRule(ctx, barber, day)
	if err != nil {
		return nil, err
	}
	if !ok || !close.After(open) {
		return nil, nil
	}

	window := interval.Interval{Start: open, End: close}

	offs, err := s.timeOff.ListForBarberRange(ctx, barberID, open, close)
	if err != nil {
		return nil, err
	}

	busy := make([]interval.Interval, 0, len(offs))
	for _, t := range offs {
		if t.EndAt.After(t.StartAt) {
			busy = append(busy, interval.Interval{Start: t.StartAt, End: t.EndAt})
		}
	}

	return interval.Subtract(window, interval.Merge(busy)), nil
}

// LocalDate formats the instant as a calendar date in the barber's
// location timezone, the date its working-hours rules apply to.
func (s *Service) LocalDate(ctx context.Context, barberID string, at time.Time) (string, error) {
	barber, err := s.barbers.GetByID(ctx, barberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	return at.In(s.location(ctx, barber.LocationID)).Format("2006-01-02"), nil
}

// Барберский override на день полностью заменяет график салона.
func (s *Service) resolveRule(ctx context.Context, barber *domain.Barber, day time.Time) (time.Time, time.Time, bool, error) {
	weekday := domain.ISOWeekday(day.Weekday())

	if rule, err := s.hours.GetBarberRule(ctx, barber.ID, weekday); err != nil {
		return time.Time{}, time.Time{}, false, err
	} else if rule != nil {
		open, close, ok := atDay(day, rule.OpenTime, rule.CloseTime)
		return open, close, ok, nil
	}

	rule, err := s.hours.GetLocationRule(ctx, barber.LocationID, weekday)
	if err != nil {
		return time.Time{}, time.Time{}, false, err
	}
	if rule == nil {
		return time.Time{}, time.Time{}, false, nil
	}
	open, close, ok := atDay(day, rule.OpenTime, rule.CloseTime)
	return open, close, ok, nil
}

func (s *Service) location(ctx context.Context, locationID string) *time.Location {
	if locationID != "" {
		if l, err := s.locations.GetByID(ctx, locationID); err == nil && l.Timezone != "" {
			if loc, err := time.LoadLocation(l.Timezone); err == nil {
				return loc
			}
		}
	}
	loc, err := time.LoadLocation(s.defaultTZ)
	if err != nil {
		return time.UTC
	}
	return loc
}

// atDay anchors HH:mm open/close times onto the given calendar day.
func atDay(day time.Time, openHM, closeHM string) (time.Time, time.Time, bool) {
	open, ok := parseHM(day, openHM)
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	close, ok := parseHM(day, closeHM)
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	return open, close, close.After(open)
}

func parseHM(day time.Time, hm string) (time.Time, bool) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, day.Location()), true
}

/* ---------- staff CRUD ---------- */

func (s *Service) ListBarberRules(ctx context.Context, barberID string) ([]domain.BarberWorkingHours, error) {
	return s.hours.ListBarberRules(ctx, barberID)
}

// SaveBarberRules replaces the whole weekly override, dropping rows the
// form left blank, the same replace-all save the admin panel performs.
func (s *Service) SaveBarberRules(ctx context.Context, barberID string, reqs []WeeklyRuleRequest) error {
	rules := make([]domain.BarberWorkingHours, 0, len(reqs))
	for _, req := range reqs {
		if req.OpenTime == "" && req.CloseTime == "" {
			continue
		}
		if err := validateRule(req); err != nil {
			return err
		}
		rules = append(rules, domain.BarberWorkingHours{
			Weekday:   req.Weekday,
			OpenTime:  req.OpenTime,
			CloseTime: req.CloseTime,
		})
	}
	return s.hours.ReplaceBarberRules(ctx, barberID, rules)
}

func (s *Service) ClearBarberRules(ctx context.Context, barberID string) error {
	return s.hours.ClearBarberRules(ctx, barberID)
}

func (s *Service) ListLocationRules(ctx context.Context, locationID string) ([]domain.LocationWorkingHours, error) {
	return s.hours.ListLocationRules(ctx, locationID)
}

func (s *Service) SaveLocationRules(ctx context.Context, locationID string, reqs []WeeklyRuleRequest) error {
	rules := make([]domain.LocationWorkingHours, 0, len(reqs))
	for _, req := range reqs {
		if req.OpenTime == "" && req.CloseTime == "" {
			continue
		}
		if err := validateRule(req); err != nil {
			return err
		}
		rules = append(rules, domain.LocationWorkingHours{
			Weekday:   req.Weekday,
			OpenTime:  req.OpenTime,
			CloseTime: req.CloseTime,
		})
	}
	return s.hours.ReplaceLocationRules(ctx, locationID, rules)
}

func (s *Service) CreateTimeOff(ctx context.Context, req TimeOffRequest) (*domain.TimeOff, error) {
	start, err := time.Parse(time.RFC3339, req.StartAt)
	if err != nil {
		return nil, ErrValidation
	}
	end, err := time.Parse(time.RFC3339, req.EndAt)
	if err != nil {
		return nil, ErrValidation
	}
	if !end.After(start) {
		return nil, ErrValidation
	}

	t := &domain.TimeOff{
		BarberID: req.BarberID,
		StartAt:  start,
		EndAt:    end,
		Reason:   req.Reason,
	}
	if err := s.timeOff.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) DeleteTimeOff(ctx context.Context, id string) error {
	return s.timeOff.Delete(ctx, id)
}

func (s *Service) ListTimeOff(ctx context.Context, barberID string) ([]domain.TimeOff, error) {
	return s.timeOff.ListForBarber(ctx, barberID)
}

func validateRule(req WeeklyRuleRequest) error {
	if req.Weekday < 1 || req.Weekday > 7 {
		return ErrValidation
	}
	open, err := time.Parse("15:04", req.OpenTime)
	if err != nil {
		return ErrValidation
	}
	close, err := time.Parse("15:04", req.CloseTime)
	if err != nil {
		return ErrValidation
	}
	if !close.After(open) {
		return ErrValidation
	}
	return nil
}
