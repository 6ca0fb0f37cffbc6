package stats

import (
	"testing"
	"time"
)

func TestFormatUptime(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{42 * time.Second, "42s"},
		{3*time.Minute + 5*time.Second, "3m 5s"},
		{2*time.Hour + 3*time.Minute + 4*time.Second, "2h 3m 4s"},
		{26*time.Hour + 3*time.Minute, "1d 2h 3m 0s"},
		{0, "0s"},
	}
	for _, c := range cases {
		if got := FormatUptime(c.d); got != c.want {
			t.Errorf("FormatUptime(%v) = %q; want %q", c.d, got, c.want)
		}
	}
}
