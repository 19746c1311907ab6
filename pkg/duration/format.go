package duration

// String returns d in the form "-1d2h3m4.5s". Leading zero units are
// omitted. Durations under one second use ms, µs or ns so that the
// leading digit is non-zero. Zero formats as "0s".
//
// The output is accepted by Parse.
func (d Duration) String() string {
	// Longest value is "-106751991167300d15h30m8.999999999s".
	var buf [40]byte
	w := len(buf)

	u := d.UnsignedAbs()
	secs, nanos := u.secs, uint64(u.nanos)

	if secs == 0 {
		var (
			prec int
			unit string
		)
		switch {
		case nanos == 0:
			return "0s"
		case nanos < nanosPerMicro:
			prec, unit = 0, "ns"
		case nanos < nanosPerMilli:
			prec, unit = 3, "µs"
		default:
			prec, unit = 6, "ms"
		}
		w -= len(unit)
		copy(buf[w:], unit)
		w, nanos = fmtFrac(buf[:w], nanos, prec)
		w = fmtInt(buf[:w], nanos)
	} else {
		w--
		buf[w] = 's'
		w, _ = fmtFrac(buf[:w], nanos, 9)

		w = fmtInt(buf[:w], secs%60)
		secs /= 60
		for _, unit := range [...]struct {
			c    byte
			size uint64
		}{{'m', 60}, {'h', 24}, {'d', 0}} {
			if secs == 0 {
				break
			}
			w--
			buf[w] = unit.c
			if unit.size == 0 {
				w = fmtInt(buf[:w], secs)
				break
			}
			w = fmtInt(buf[:w], secs%unit.size)
			secs /= unit.size
		}
	}

	if d.IsNegative() {
		w--
		buf[w] = '-'
	}
	return string(buf[w:])
}

// fmtFrac formats the fraction of v/10**prec (e.g., ".12345") into the
// tail of buf, omitting trailing zeros. It omits the decimal point too
// when the fraction is 0. It returns the index where the output bytes
// begin and the value v/10**prec.
func fmtFrac(buf []byte, v uint64, prec int) (nw int, nv uint64) {
	w := len(buf)
	print := false
	for i := 0; i < prec; i++ {
		digit := v % 10
		print = print || digit != 0
		if print {
			w--
			buf[w] = byte(digit) + '0'
		}
		v /= 10
	}
	if print {
		w--
		buf[w] = '.'
	}
	return w, v
}

// fmtInt formats v into the tail of buf.
// It returns the index where the output begins.
func fmtInt(buf []byte, v uint64) int {
	w := len(buf)
	if v == 0 {
		w--
		buf[w] = '0'
	} else {
		for v > 0 {
			w--
			buf[w] = byte(v%10) + '0'
			v /= 10
		}
	}
	return w
}

// FormatISO8601 returns d as an ISO 8601 duration using only exact
// units, e.g. "-P1DT2H3M4.5S". Zero formats as "PT0S".
func (d Duration) FormatISO8601() string {
	if d.IsZero() {
		return "PT0S"
	}
	u := d.UnsignedAbs()
	secs := u.secs

	days := secs / secondsPerDay
	secs %= secondsPerDay
	hours := secs / secondsPerHour
	secs %= secondsPerHour
	minutes := secs / secondsPerMinute
	secs %= secondsPerMinute

	out := make([]byte, 0, 48)
	if d.IsNegative() {
		out = append(out, '-')
	}
	out = append(out, 'P')
	if days > 0 {
		out = appendUint(out, days)
		out = append(out, 'D')
	}
	if hours == 0 && minutes == 0 && secs == 0 && u.nanos == 0 {
		return string(out)
	}
	out = append(out, 'T')
	if hours > 0 {
		out = appendUint(out, hours)
		out = append(out, 'H')
	}
	if minutes > 0 {
		out = appendUint(out, minutes)
		out = append(out, 'M')
	}
	if secs > 0 || u.nanos > 0 {
		var buf [32]byte
		w, _ := fmtFrac(buf[:], uint64(u.nanos), 9)
		w = fmtInt(buf[:w], secs)
		out = append(out, buf[w:]...)
		out = append(out, 'S')
	}
	return string(out)
}

func appendUint(b []byte, v uint64) []byte {
	var buf [20]byte
	return append(b, buf[fmtInt(buf[:], v):]...)
}
