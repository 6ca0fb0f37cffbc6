package timezone

import (
	"strings"
	"testing"
	"time"
)

func TestChannelName(t *testing.T) {
	// Mid-January avoids daylight saving edges in the US zones.
	at := time.Date(2026, time.January, 15, 20, 30, 0, 0, time.UTC)

	t.Run("pacific", func(t *testing.T) {
		name, err := ChannelName("PST", at)
		if err != nil {
			t.Fatalf("ChannelName: %v", err)
		}
		if name != "🕒 12:30 PM Pacific" {
			t.Fatalf("unexpected name: %q", name)
		}
	})

	t.Run("london", func(t *testing.T) {
		name, err := ChannelName("GMT", at)
		if err != nil {
			t.Fatalf("ChannelName: %v", err)
		}
		if name != "🕒 8:30 PM GMT" {
			t.Fatalf("unexpected name: %q", name)
		}
	})

	t.Run("case insensitive code", func(t *testing.T) {
		upper, _ := ChannelName("EST", at)
		lower, err := ChannelName("est", at)
		if err != nil {
			t.Fatalf("ChannelName: %v", err)
		}
		if upper != lower {
			t.Fatalf("case should not matter: %q vs %q", upper, lower)
		}
	})

	t.Run("no leading zero on hours", func(t *testing.T) {
		morning := time.Date(2026, time.January, 15, 14, 5, 0, 0, time.UTC)
		name, err := ChannelName("GMT", morning)
		if err != nil {
			t.Fatalf("ChannelName: %v", err)
		}
		if strings.Contains(name, "02:05") {
			t.Fatalf("hour should not be zero padded: %q", name)
		}
		if name != "🕒 2:05 PM GMT" {
			t.Fatalf("unexpected name: %q", name)
		}
	})

	t.Run("unknown code", func(t *testing.T) {
		if _, err := ChannelName("XYZ", at); err == nil {
			t.Fatal("unknown code should fail")
		}
	})
}

func TestZoneCodes(t *testing.T) {
	codes := ZoneCodes()
	if len(codes) != len(Zones) {
		t.Fatalf("want %d codes, got %d", len(Zones), len(codes))
	}
	for i := 1; i < len(codes); i++ {
		if codes[i-1] >= codes[i] {
			t.Fatalf("codes not sorted: %v", codes)
		}
	}
	for _, code := range codes {
		if _, ok := Zones[code]; !ok {
			t.Fatalf("code %s missing from Zones", code)
		}
	}
}
