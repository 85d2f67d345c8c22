package usecase

import (
	"time"

	"github.com/yuvia/flight-results/internal/domain"
)

var baseDay = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

// clockAt returns a pointer to baseDay at hh:mm, plus dayOffset days.
func clockAt(dayOffset, hour, minute int) *time.Time {
	t := baseDay.AddDate(0, 0, dayOffset).Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
	return &t
}

func plusMinutes(t *time.Time, minutes int) *time.Time {
	out := t.Add(time.Duration(minutes) * time.Minute)
	return &out
}

type flightOption func(*domain.Flight)

// newFlight builds a direct one-way SVO to LED flight departing 09:00 for 120 minutes.
func newFlight(id string, price float64, opts ...flightOption) domain.Flight {
	depart := clockAt(0, 9, 0)
	f := domain.Flight{
		ID:              id,
		OriginCity:      "Moscow",
		DestCity:        "Saint Petersburg",
		OriginAirport:   "SVO",
		DestAirport:     "LED",
		Price:           price,
		Currency:        "RUB",
		AirlineCode:     "SU",
		AirlineName:     "Aeroflot",
		AirlinesAll:     []string{"SU"},
		AirlinesMetaAll: []domain.AirlineMeta{{Code: "SU", Name: "Aeroflot"}},
		Outbound: &domain.SegmentSummary{
			Start: domain.LegStart{DepartAt: depart, OriginCity: "Moscow", OriginAirport: "SVO"},
			End:   domain.LegEnd{DestCity: "Saint Petersburg", DestAirport: "LED"},
		},
	}
	setOutbound(&f, depart, 120)
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

func setOutbound(f *domain.Flight, depart *time.Time, minutes int) {
	arrive := plusMinutes(depart, minutes)
	f.Outbound.Start.DepartAt = depart
	f.Outbound.End.ArriveAt = arrive
	f.Outbound.DurationMinutes = minutes
	f.DepartAt = depart
	f.ArriveAt = arrive
	recompute(f)
}

func recompute(f *domain.Flight) {
	f.DurationMinutes = 0
	f.Transfers = 0
	if f.Outbound != nil {
		f.DurationMinutes += f.Outbound.DurationMinutes
		f.Transfers += f.Outbound.Transfers
	}
	if f.Return != nil {
		f.DurationMinutes += f.Return.DurationMinutes
		f.Transfers += f.Return.Transfers
	}
}

func departingAt(hour, minute int) flightOption {
	return func(f *domain.Flight) {
		setOutbound(f, clockAt(0, hour, minute), f.Outbound.DurationMinutes)
	}
}

func lasting(minutes int) flightOption {
	return func(f *domain.Flight) {
		setOutbound(f, f.Outbound.Start.DepartAt, minutes)
	}
}

func withTransfers(n int) flightOption {
	return func(f *domain.Flight) {
		f.Outbound.Transfers = n
		recompute(f)
	}
}

func withoutTimes() flightOption {
	return func(f *domain.Flight) {
		f.Outbound.Start.DepartAt = nil
		f.Outbound.End.ArriveAt = nil
		f.DepartAt = nil
		f.ArriveAt = nil
	}
}

// withReturn adds a LED to VKO return leg departing three days later.
func withReturn(hour, minute, minutes, transfers int) flightOption {
	return func(f *domain.Flight) {
		depart := clockAt(3, hour, minute)
		arrive := plusMinutes(depart, minutes)
		f.Return = &domain.SegmentSummary{
			Start:           domain.LegStart{DepartAt: depart, OriginCity: "Saint Petersburg", OriginAirport: "LED"},
			End:             domain.LegEnd{ArriveAt: arrive, DestCity: "Moscow", DestAirport: "VKO"},
			DurationMinutes: minutes,
			Transfers:       transfers,
		}
		f.ReturnDepartAt = depart
		f.ReturnArriveAt = arrive
		recompute(f)
	}
}

func withCarriers(metas ...domain.AirlineMeta) flightOption {
	return func(f *domain.Flight) {
		f.AirlineCode = metas[0].Code
		f.AirlineName = metas[0].Name
		f.AirlinesAll = nil
		for _, m := range metas {
			f.AirlinesAll = append(f.AirlinesAll, m.Code)
		}
		f.AirlinesMetaAll = metas
	}
}

func withCurrency(currency string) flightOption {
	return func(f *domain.Flight) {
		f.Currency = currency
	}
}

// scored wraps a flight with a preset rating, skipping the scoring engine.
func scored(f domain.Flight, rating float64) domain.ScoredFlight {
	return domain.ScoredFlight{
		Flight:     f,
		Rating:     rating,
		YuviaScore: int(rating*10 + 0.5),
	}
}

func ids(flights []domain.ScoredFlight) []string {
	out := make([]string, len(flights))
	for i := range flights {
		out[i] = flights[i].ID
	}
	return out
}
