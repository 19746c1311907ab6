package duration

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	testCases := []struct {
		d    Duration
		want string
	}{
		{Zero, "0s"},
		{Nanoseconds(1), "1ns"},
		{Nanoseconds(-999), "-999ns"},
		{Nanoseconds(1100), "1.1µs"},
		{Microseconds(2200), "2.2ms"},
		{Milliseconds(-999), "-999ms"},
		{Second, "1s"},
		{Milliseconds(1500), "1.5s"},
		{Nanoseconds(-1000000001), "-1.000000001s"},
		{Minutes(1), "1m0s"},
		{Seconds(-90), "-1m30s"},
		{Hours(1), "1h0m0s"},
		{Days(1), "1d0h0m0s"},
		{Week, "7d0h0m0s"},
		{Days(1).Add(Hours(2)).Add(Minutes(3)).Add(Milliseconds(4500)), "1d2h3m4.5s"},
		{Days(-1).Sub(Hours(2)).Sub(Minutes(3)).Sub(Milliseconds(4500)), "-1d2h3m4.5s"},
		{Max, "106751991167300d15h30m7.999999999s"},
		{Min, "-106751991167300d15h30m8.999999999s"},
	}
	for _, tC := range testCases {
		t.Run(tC.want, func(t *testing.T) {
			assert.Equal(t, tC.want, tC.d.String())
		})
	}

	t.Run("fmt", func(t *testing.T) {
		assert.Equal(t, "took 1.5s", fmt.Sprintf("took %v", Milliseconds(1500)))
	})
}

func TestFormatISO8601(t *testing.T) {
	testCases := []struct {
		d    Duration
		want string
	}{
		{Zero, "PT0S"},
		{Nanoseconds(1), "PT0.000000001S"},
		{Milliseconds(-250), "-PT0.25S"},
		{Seconds(59), "PT59S"},
		{Minutes(90), "PT1H30M"},
		{Days(2), "P2D"},
		{Week, "P7D"},
		{Days(1).Add(Hours(2)).Add(Minutes(3)).Add(Milliseconds(4500)), "P1DT2H3M4.5S"},
		{Days(-1).Sub(Seconds(1)), "-P1DT1S"},
		{Max, "P106751991167300DT15H30M7.999999999S"},
		{Min, "-P106751991167300DT15H30M8.999999999S"},
	}
	for _, tC := range testCases {
		t.Run(tC.want, func(t *testing.T) {
			assert.Equal(t, tC.want, tC.d.FormatISO8601())
		})
	}
}
