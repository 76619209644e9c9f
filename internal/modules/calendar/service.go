package calendar

import (
	"context"
	"fmt"
	"time"

	"barbershop/internal/modules/booking"
	"barbershop/internal/pkg/interval"
)

type Service struct {
	booker       Booker
	schedule     ScheduleResolver
	appointments AppointmentRepository
}

func NewService(booker Booker, schedule ScheduleResolver, appointments AppointmentRepository) *Service {
	return &Service{
		booker:       booker,
		schedule:     schedule,
		appointments: appointments,
	}
}

// Move resolves a drag-and-drop of an appointment onto a raw minute
// offset within its day and commits the result through the booking
// transaction, which stays the final arbiter of the slot.
func (s *Service) Move(ctx context.Context, actor booking.Actor, appointmentID, date string, rawStartMin int) (*MoveResponse, error) {
	appt, err := s.booker.Get(ctx, actor, appointmentID)
	if err != nil {
		return nil, err
	}

	open, err := s.schedule.OpenIntervals(ctx, appt.BarberID, date)
	if err != nil {
		return nil, err
	}
	if len(open) == 0 {
		return &MoveResponse{Moved: false, Advisory: "барбер в этот день не работает"}, nil
	}

	windowStart := open[0].Start
	windowEnd := open[len(open)-1].End
	windowMin := int(windowEnd.Sub(windowStart) / time.Minute)
	durationMin := int(appt.EndAt.Sub(appt.StartAt) / time.Minute)

	busy, err := s.busySpans(ctx, appt.BarberID, appointmentID, windowStart, windowEnd, open)
	if err != nil {
		return nil, err
	}

	res := ResolveMove(rawStartMin, durationMin, windowMin, busy)
	if !res.OK {
		return &MoveResponse{Moved: false, Advisory: "свободного времени в этот день нет"}, nil
	}

	target := windowStart.Add(time.Duration(res.StartMin) * time.Minute)
	moved, err := s.booker.Reschedule(ctx, actor, appointmentID, target.Format(time.RFC3339))
	if err != nil {
		return nil, err
	}

	out := &MoveResponse{
		Moved:   true,
		StartAt: moved.StartAt.Format(time.RFC3339),
		EndAt:   moved.EndAt.Format(time.RFC3339),
	}
	if res.Adjusted {
		out.Advisory = fmt.Sprintf("время занято, запись перенесена на %s", target.In(windowStart.Location()).Format("15:04"))
	}
	return out, nil
}

// busySpans collects everything the moved appointment must not overlap:
// other non-cancelled appointments and the closed gaps between open
// intervals, all as minute offsets from the window start.
func (s *Service) busySpans(ctx context.Context, barberID, excludeID string, windowStart, windowEnd time.Time, open []interval.Interval) ([]BusySpan, error) {
	appts, err := s.appointments.ListForBarberRange(ctx, barberID, windowStart, windowEnd)
	if err != nil {
		return nil, err
	}

	spans := make([]BusySpan, 0, len(appts)+len(open))
	for _, a := range appts {
		if a.ID == excludeID || !a.Busy() {
			continue
		}
		spans = append(spans, spanOf(windowStart, a.StartAt, a.EndAt))
	}

	window := interval.Interval{Start: windowStart, End: windowEnd}
	for _, gap := range interval.Subtract(window, open) {
		spans = append(spans, spanOf(windowStart, gap.Start, gap.End))
	}
	return spans, nil
}

func spanOf(origin, start, end time.Time) BusySpan {
	return BusySpan{
		StartMin: int(start.Sub(origin) / time.Minute),
		EndMin:   int(end.Sub(origin) / time.Minute),
	}
}
