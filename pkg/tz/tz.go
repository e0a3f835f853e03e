package tz

import "time"

// Moscow is the Europe/Moscow location used to display event times to users.
// Storage always keeps UTC instants; this is presentation only.
var Moscow *time.Location

func init() {
	var err error
	Moscow, err = time.LoadLocation("Europe/Moscow")
	if err != nil {
		panic("tz: load Europe/Moscow: " + err.Error())
	}
}
