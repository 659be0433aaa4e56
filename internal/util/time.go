package util

import (
	"time"

	log "github.com/sirupsen/logrus"
)

// istFallback is used when the tz database is unavailable. India has no DST.
var istFallback = time.FixedZone("IST", 5*60*60+30*60)

// MarketLocation returns the NSE trading time zone
func MarketLocation() *time.Location {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		log.Errorf("Failed to load location 'Asia/Kolkata': %v. Falling back to fixed IST offset.", err)
		return istFallback
	}
	return loc
}

// NextMarketClose predicts when NSE next publishes a closing price.
// It returns the next weekday at 3:30 PM India time, in UTC. Exchange holidays are not modeled.
func NextMarketClose(input time.Time) time.Time {
	loc := MarketLocation()
	nowIST := input.In(loc)

	// Start with today at 3:30 PM IST
	next := time.Date(nowIST.Year(), nowIST.Month(), nowIST.Day(), 15, 30, 0, 0, loc)

	// At or past the close, move to the next day
	if !nowIST.Before(next) {
		next = next.AddDate(0, 0, 1)
	}

	// Skip weekends to find the next trading day
	for next.Weekday() == time.Saturday || next.Weekday() == time.Sunday {
		next = next.AddDate(0, 0, 1)
	}

	return next.UTC()
}
