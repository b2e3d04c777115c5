package weather

import (
	"math"
	"sort"
	"strings"
)

// Condition is the icon/description pair of a forecast sample
type Condition struct {
	Icon        string
	Description string
}

// Observation is one 3-hour forecast sample. Nil temperatures were absent upstream.
type Observation struct {
	Timestamp  string
	Temp       *float64
	TempMin    *float64
	TempMax    *float64
	Conditions []Condition
}

// Date returns the calendar day of the sample, the part of the
// "YYYY-MM-DD HH:MM:SS" timestamp before the first space.
func (o Observation) Date() string {
	date, _, _ := strings.Cut(o.Timestamp, " ")
	return date
}

// DailySummary aggregates all samples of one calendar day
type DailySummary struct {
	Date        string   `json:"date"`
	TempAvg     *float64 `json:"temp_avg"`
	TempMin     *float64 `json:"temp_min"`
	TempMax     *float64 `json:"temp_max"`
	Icon        *string  `json:"icon"`
	Description *string  `json:"description"`
}

// AggregateForecast buckets samples by calendar day and returns one summary
// per day in ascending date order. Samples without a date are ignored.
func AggregateForecast(observations []Observation) []DailySummary {
	byDay := make(map[string][]Observation)
	for _, o := range observations {
		day := o.Date()
		if day == "" {
			continue
		}
		byDay[day] = append(byDay[day], o)
	}

	// Zero-padded ISO dates sort correctly as strings.
	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)

	summaries := make([]DailySummary, 0, len(days))
	for _, day := range days {
		summaries = append(summaries, summarizeDay(day, byDay[day]))
	}
	return summaries
}

func summarizeDay(date string, observations []Observation) DailySummary {
	var (
		sum     float64
		count   int
		lowest  *float64
		highest *float64
	)
	tally := newConditionTally()

	for _, o := range observations {
		if o.Temp != nil {
			sum += *o.Temp
			count++
		}
		if o.TempMin != nil && (lowest == nil || *o.TempMin < *lowest) {
			lowest = o.TempMin
		}
		if o.TempMax != nil && (highest == nil || *o.TempMax > *highest) {
			highest = o.TempMax
		}
		if len(o.Conditions) > 0 {
			tally.add(o.Conditions[0])
		}
	}

	summary := DailySummary{Date: date}
	if count > 0 {
		summary.TempAvg = roundTenth(sum / float64(count))
	}
	if lowest != nil {
		summary.TempMin = roundTenth(*lowest)
	}
	if highest != nil {
		summary.TempMax = roundTenth(*highest)
	}
	if c, ok := tally.mostCommon(); ok {
		icon, description := c.Icon, c.Description
		summary.Icon = &icon
		summary.Description = &description
	}
	return summary
}

func roundTenth(v float64) *float64 {
	r := math.Round(v*10) / 10
	return &r
}

// conditionTally counts conditions while remembering first-seen order,
// so that ties resolve to the condition encountered first.
type conditionTally struct {
	order  []Condition
	counts map[Condition]int
}

func newConditionTally() *conditionTally {
	return &conditionTally{counts: make(map[Condition]int)}
}

func (t *conditionTally) add(c Condition) {
	if _, seen := t.counts[c]; !seen {
		t.order = append(t.order, c)
	}
	t.counts[c]++
}

func (t *conditionTally) mostCommon() (Condition, bool) {
	var (
		best      Condition
		bestCount int
	)
	for _, c := range t.order {
		if n := t.counts[c]; n > bestCount {
			best, bestCount = c, n
		}
	}
	return best, bestCount > 0
}
