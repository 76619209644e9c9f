package availability

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"

	"barbershop/internal/domain"
	"barbershop/internal/pkg/cache"
	"barbershop/internal/pkg/interval"
)

// SlotStep is the grid the booking form offers: candidate starts every
// 30 minutes, re-anchored at the start of each free stretch.
const SlotStep = 30 * time.Minute

type Service struct {
	schedule     ScheduleResolver
	appointments AppointmentRepository
	barbers      BarberRepository
	services     ServiceRepository
	slots        *cache.SlotCache
}

func NewService(
	schedule ScheduleResolver,
	appointments AppointmentRepository,
	barbers BarberRepository,
	services ServiceRepository,
	slots *cache.SlotCache,
) *Service {
	return &Service{
		schedule:     schedule,
		appointments: appointments,
		barbers:      barbers,
		services:     services,
		slots:        slots,
	}
}

// Slots returns the bookable start instants for one barber, one service
// and one calendar date. An inactive barber or service yields an empty
// list rather than an error: to the client the barber simply has nothing
// free.
func (s *Service) Slots(ctx context.Context, barberID, serviceID, date string) ([]time.Time, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, ErrValidation
	}

	var cached []time.Time
	if s.slots.Get(ctx, barberID, serviceID, date, &cached) {
		return cached, nil
	}

	svc, err := s.services.GetByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	if !svc.IsActive {
		return []time.Time{}, nil
	}

	barber, err := s.barbers.GetByID(ctx, barberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBarberNotFound
		}
		return nil, err
	}
	if !barber.IsActive {
		return []time.Time{}, nil
	}

	out, err := s.compute(ctx, barberID, date, time.Duration(svc.DurationMin)*time.Minute)
	if err != nil {
		return nil, err
	}

	s.slots.Set(ctx, barberID, serviceID, date, out)
	return out, nil
}

func (s *Service) compute(ctx context.Context, barberID, date string, duration time.Duration) ([]time.Time, error) {
	open, err := s.schedule.OpenIntervals(ctx, barberID, date)
	if err != nil {
		return nil, err
	}
	if len(open) == 0 {
		return []time.Time{}, nil
	}

	from, to := open[0].Start, open[len(open)-1].End
	appts, err := s.appointments.ListForBarberRange(ctx, barberID, from, to)
	if err != nil {
		return nil, err
	}

	busy := make([]interval.Interval, 0, len(appts))
	for _, a := range appts {
		if a.Busy() {
			busy = append(busy, interval.Interval{Start: a.StartAt, End: a.EndAt})
		}
	}
	busy = interval.Merge(busy)

	out := make([]time.Time, 0, 16)
	for _, window := range open {
		for _, free := range interval.Subtract(window, busy) {
			for start := free.Start; !start.Add(duration).After(free.End); start = start.Add(SlotStep) {
				out = append(out, start)
			}
		}
	}
	return out, nil
}

// BarberSlot is one barber's earliest opening on the requested date.
type BarberSlot struct {
	Barber domain.Barber
	Start  time.Time
}

// FirstAvailable computes, concurrently, the earliest bookable start on
// the date for every active barber offering the service. Barbers with
// nothing free are omitted. The result is sorted by start time; ties
// keep the barbers' listing order.
func (s *Service) FirstAvailable(ctx context.Context, serviceID, date string) ([]BarberSlot, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, ErrValidation
	}

	svc, err := s.services.GetByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	if !svc.IsActive {
		return []BarberSlot{}, nil
	}

	barbers, err := s.barbers.ListActiveOffering(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	duration := time.Duration(svc.DurationMin) * time.Minute

	type result struct {
		start time.Time
		ok    bool
		err   error
	}
	results := make([]result, len(barbers))

	var wg sync.WaitGroup
	for i := range barbers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			slots, err := s.compute(ctx, barbers[i].ID, date, duration)
			if err != nil {
				results[i] = result{err: err}
				return
			}
			if len(slots) > 0 {
				results[i] = result{start: slots[0], ok: true}
			}
		}(i)
	}
	wg.Wait()

	out := make([]BarberSlot, 0, len(barbers))
	for i, r := range results {
		if r.err != nil {
			return nil, r.err
		}
		if r.ok {
			out = append(out, BarberSlot{Barber: barbers[i], Start: r.start})
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out, nil
}
