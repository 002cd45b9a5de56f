package scripts

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

func init() {
	MustRegisterProvider(&agendaProvider{now: time.Now})
}

// agendaProvider computes the fields for the agenda template: ISO week
// number, Monday-based week bounds, and a preformatted listing with
// one line per day.
type agendaProvider struct {
	now func() time.Time
}

func (p *agendaProvider) Name() string {
	return "agenda"
}

func (p *agendaProvider) Description() string {
	return "Computes this week's agenda fields"
}

func (p *agendaProvider) GenerateContext(ctx context.Context) (map[string]string, error) {
	today := p.now()
	_, week := today.ISOWeek()

	// Monday starts the week
	offset := (int(today.Weekday()) + 6) % 7
	start := today.AddDate(0, 0, -offset)
	end := start.AddDate(0, 0, 6)

	var days strings.Builder
	for i := 0; i < 7; i++ {
		day := start.AddDate(0, 0, i)
		fmt.Fprintf(&days, "%-9s %s", day.Weekday().String(), day.Format("2006-01-02"))
		if i < 6 {
			days.WriteByte('\n')
		}
	}

	return map[string]string{
		"week_number":     strconv.Itoa(week),
		"week_start_date": start.Format("2006-01-02"),
		"week_end_date":   end.Format("2006-01-02"),
		"days":            days.String(),
	}, nil
}
