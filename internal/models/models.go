// Package models defines the data types exchanged between adapters and the bot.
package models

import "time"

// NewsItem is one entry of a syndication feed, reduced to what the bot shows.
// PublishedAt is nil when the feed's date string could not be parsed; Published
// then carries the raw string unchanged.
type NewsItem struct {
	Title       string
	Link        string
	Published   string
	PublishedAt *time.Time
}

// QuoteSnapshot holds the price view derived from the two most recent daily bars.
type QuoteSnapshot struct {
	Symbol        string
	LongName      string
	CurrentPrice  float64
	PreviousClose float64
	DayHigh       float64
	DayLow        float64
}

// Change returns the signed difference between the current price and the
// previous close.
func (q QuoteSnapshot) Change() float64 {
	return q.CurrentPrice - q.PreviousClose
}

// ChangePercent returns the change as a percentage of the previous close.
func (q QuoteSnapshot) ChangePercent() float64 {
	if q.PreviousClose == 0 {
		return 0
	}
	return q.Change() / q.PreviousClose * 100
}

// ProfileSnapshot holds sparse company statistics. Pointer fields are nil when
// the provider omits the value; zero values are also treated as missing at
// render time.
type ProfileSnapshot struct {
	LongName      string
	Symbol        string
	Volume        *float64
	Week52Low     *float64
	Week52High    *float64
	TrailingPE    *float64
	DividendYield *float64
	Beta          *float64
}

// CalendarEvent is one row of the provider's economic calendar.
type CalendarEvent struct {
	Zone     string
	Time     time.Time
	Event    string
	Actual   *float64
	Forecast *float64
	Previous *float64
	Impact   string
}
