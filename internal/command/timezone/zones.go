package timezone

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Zone pairs an IANA location with the short display name used in
// channel names.
type Zone struct {
	Location string
	Display  string
}

// Zones maps the supported short codes to their zones. Codes are the
// familiar US/European abbreviations, not exhaustive IANA coverage.
var Zones = map[string]Zone{
	"PST":  {Location: "America/Los_Angeles", Display: "Pacific"},
	"MST":  {Location: "America/Denver", Display: "Mountain"},
	"CST":  {Location: "America/Chicago", Display: "Central"},
	"EST":  {Location: "America/New_York", Display: "Eastern"},
	"GMT":  {Location: "Europe/London", Display: "GMT"},
	"IST":  {Location: "Asia/Kolkata", Display: "Indian"},
	"ACST": {Location: "Australia/Adelaide", Display: "Australian Central"},
}

// ZoneCodes returns the supported codes in stable order.
func ZoneCodes() []string {
	codes := make([]string, 0, len(Zones))
	for code := range Zones {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// ChannelName renders the channel name for a zone at the given instant,
// e.g. `🕒 3:04 PM Pacific`.
func ChannelName(code string, now time.Time) (string, error) {
	zone, ok := Zones[strings.ToUpper(code)]
	if !ok {
		return "", fmt.Errorf("unknown timezone code %q", code)
	}
	loc, err := time.LoadLocation(zone.Location)
	if err != nil {
		return "", fmt.Errorf("load location %s: %w", zone.Location, err)
	}
	return fmt.Sprintf("🕒 %s %s", now.In(loc).Format("3:04 PM"), zone.Display), nil
}
