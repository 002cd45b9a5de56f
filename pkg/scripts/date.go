package scripts

import (
	"context"
	"strconv"
	"time"
)

func init() {
	MustRegisterProvider(&dateUtilsProvider{now: time.Now})
}

// dateUtilsProvider exposes the current date and time in many shapes
// for user templates to pick from.
type dateUtilsProvider struct {
	now func() time.Time
}

func (p *dateUtilsProvider) Name() string {
	return "date_utils"
}

func (p *dateUtilsProvider) Description() string {
	return "Provides date and time variables for templates"
}

func (p *dateUtilsProvider) GenerateContext(ctx context.Context) (map[string]string, error) {
	now := p.now()
	_, week := now.ISOWeek()

	return map[string]string{
		"current_date":     now.Format("2006-01-02"),
		"current_time":     now.Format("15:04:05"),
		"current_datetime": now.Format("2006-01-02 15:04:05"),
		"year":             strconv.Itoa(now.Year()),
		"month":            strconv.Itoa(int(now.Month())),
		"day":              strconv.Itoa(now.Day()),
		"weekday":          strconv.Itoa((int(now.Weekday()) + 6) % 7),
		"date_short":       now.Format("01/02/2006"),
		"date_medium":      now.Format("Jan 02, 2006"),
		"date_long":        now.Format("January 02, 2006"),
		"date_full":        now.Format("Monday, January 02, 2006"),
		"month_name":       now.Format("January"),
		"month_short":      now.Format("Jan"),
		"day_name":         now.Format("Monday"),
		"day_short":        now.Format("Mon"),
		"week_number":      strconv.Itoa(week),
		"hour":             strconv.Itoa(now.Hour()),
		"minute":           strconv.Itoa(now.Minute()),
		"second":           strconv.Itoa(now.Second()),
		"hour_12":          now.Format("03"),
		"ampm":             now.Format("PM"),
		"timestamp":        strconv.FormatInt(now.Unix(), 10),
		"iso_datetime":     now.Format("2006-01-02T15:04:05"),
		"yesterday":        now.AddDate(0, 0, -1).Format("2006-01-02"),
		"tomorrow":         now.AddDate(0, 0, 1).Format("2006-01-02"),
	}, nil
}
