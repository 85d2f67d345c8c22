package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/yuvia/flight-results/internal/domain"
	"github.com/yuvia/flight-results/internal/usecase"
)

const timeLayout = "02 Jan 15:04"

func topColor(t domain.TopType) color.Attribute {
	switch t {
	case domain.TopGolden:
		return color.FgYellow
	case domain.TopCheap:
		return color.FgGreen
	default:
		return color.FgCyan
	}
}

func stressColor(s domain.StressLevel) color.Attribute {
	switch s {
	case domain.StressLow:
		return color.FgGreen
	case domain.StressMedium:
		return color.FgYellow
	default:
		return color.FgRed
	}
}

// Top prints the recommendation block.
func (p *Printer) Top(top []domain.ScoredFlight) {
	if len(top) == 0 {
		return
	}
	p.Header("Top picks")
	for i := range top {
		f := &top[i]
		badge := p.paint(fmt.Sprintf("%-14s", f.TopType.Label()), topColor(f.TopType), color.Bold)
		p.Println("  %s %s  %s  %s  %s",
			badge,
			formatPrice(f.Price, f.Currency),
			route(&f.Flight),
			domain.FormatDuration(f.DurationMinutes),
			p.paint(fmt.Sprintf("%d stress", f.StressPoints), stressColor(f.StressLevel)),
		)
		p.Println("  %14s %s", "", f.TopType.Hint())
	}
	p.Println("")
}

// Cards prints the flights as a table, one row per card.
func (p *Printer) Cards(flights []domain.ScoredFlight) error {
	rows := make([][]string, 0, len(flights))
	for i := range flights {
		f := &flights[i]
		rows = append(rows, []string{
			f.ID,
			route(&f.Flight),
			formatTime(f.OutboundDepartAt()),
			formatTime(f.OutboundArriveAt()),
			domain.FormatDuration(f.DurationMinutes),
			stopsLabel(f.Transfers),
			airlineLabel(&f.Flight),
			formatPrice(f.Price, f.Currency),
			strconv.Itoa(f.YuviaScore),
			string(f.StressLevel),
			f.TopType.Label(),
		})
	}
	return renderTable(p.out, []string{"id", "route", "depart", "arrive", "duration", "stops", "airline", "price", "score", "stress", "pick"}, rows)
}

// Summary prints the price chip and the match counter.
func (p *Printer) Summary(view usecase.ResultsView) {
	p.Println("")
	if view.Summary.Count == 0 {
		p.Info("Found %d of %d flights", view.Matched, view.Total)
		return
	}
	p.Info("Found %d of %d flights · from %s · avg %s",
		view.Matched, view.Total,
		formatPrice(view.Summary.Min, view.Summary.Currency),
		formatPrice(view.Summary.Avg, view.Summary.Currency),
	)
	if view.ActiveFilters > 0 {
		p.Info("Active filters: %d", view.ActiveFilters)
	}
}

// Calendar prints the price calendar with the cheapest and selected days marked.
func (p *Printer) Calendar(days []domain.CalendarDay) error {
	if len(days) == 0 {
		p.Warning("No price calendar for this route")
		return nil
	}
	rows := make([][]string, 0, len(days))
	for _, d := range days {
		var marks []string
		if d.Cheapest {
			marks = append(marks, "cheapest")
		}
		if d.Selected {
			marks = append(marks, "selected")
		}
		rows = append(rows, []string{d.Date, formatPrice(d.Price, d.Currency), strings.Join(marks, ", ")})
	}
	return renderTable(p.out, []string{"date", "price", ""}, rows)
}

// Compare prints one direction of the compare table.
func (p *Printer) Compare(view usecase.CompareView) error {
	if len(view.Rows) == 0 {
		return nil
	}
	p.Header("Compare: %s", view.Direction)
	rows := make([][]string, 0, len(view.Rows))
	for _, r := range view.Rows {
		airlines := make([]string, 0, len(r.Airlines))
		for _, a := range r.Airlines {
			airlines = append(airlines, firstNonEmpty(a.Name, a.Code))
		}
		rows = append(rows, []string{
			r.FlightID,
			fmt.Sprintf("%s → %s", firstNonEmpty(r.OriginCity, r.OriginAirport), firstNonEmpty(r.DestCity, r.DestAirport)),
			formatTime(r.DepartAt),
			formatTime(r.ArriveAt),
			domain.FormatDuration(r.DurationMinutes),
			stopsLabel(r.Transfers),
			strings.Join(airlines, ", "),
			formatPrice(r.Price, r.Currency),
		})
	}
	if err := renderTable(p.out, []string{"id", "route", "depart", "arrive", "duration", "stops", "airlines", "price"}, rows); err != nil {
		return err
	}
	if view.Choice != nil {
		p.Info("Our choice: %s (%s)", view.Choice.ID, formatPrice(view.Choice.Price, view.Choice.Currency))
	}
	return nil
}

// Places prints autocomplete suggestions.
func (p *Printer) Places(places []domain.Place) error {
	if len(places) == 0 {
		p.Warning("Nothing found")
		return nil
	}
	rows := make([][]string, 0, len(places))
	for _, pl := range places {
		rows = append(rows, []string{pl.Code, pl.City, pl.Country})
	}
	return renderTable(p.out, []string{"code", "city", "country"}, rows)
}

// Recent prints recent searches, newest first.
func (p *Printer) Recent(recent []domain.RecentSearch) error {
	if len(recent) == 0 {
		p.Warning("No recent searches")
		return nil
	}
	rows := make([][]string, 0, len(recent))
	for _, r := range recent {
		rows = append(rows, []string{
			fmt.Sprintf("%s → %s", firstNonEmpty(r.Origin, r.OriginIATA), firstNonEmpty(r.Destination, r.DestIATA)),
			r.Depart,
			firstNonEmpty(r.ReturnDate, "one-way"),
		})
	}
	return renderTable(p.out, []string{"route", "depart", "return"}, rows)
}

func route(f *domain.Flight) string {
	return fmt.Sprintf("%s → %s", firstNonEmpty(f.OriginAirport, f.OriginCity), firstNonEmpty(f.DestAirport, f.DestCity))
}

func airlineLabel(f *domain.Flight) string {
	return firstNonEmpty(f.AirlineName, f.AirlineCode, "-")
}

func stopsLabel(transfers int) string {
	switch transfers {
	case 0:
		return "direct"
	case 1:
		return "1 stop"
	default:
		return fmt.Sprintf("%d stops", transfers)
	}
}

func formatTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(timeLayout)
}

// formatPrice renders a whole-unit price with space-separated thousands.
func formatPrice(price float64, currency string) string {
	digits := strconv.FormatInt(int64(price+0.5), 10)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}
	if currency != "" {
		b.WriteString(" " + strings.ToUpper(currency))
	}
	return b.String()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
