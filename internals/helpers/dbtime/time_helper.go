// file: internals/helpers/dbtime/time_helper.go
package dbtime

import (
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

var loc = time.UTC

// SetLocation dipanggil saat boot (APP_TIMEZONE).
func SetLocation(l *time.Location) {
	if l != nil {
		loc = l
	}
}

// Location timezone sekolah yang aktif.
func Location() *time.Location { return loc }

// ParseDate menerima "YYYY-MM-DD" (tengah malam di timezone sekolah / l)
// atau RFC3339. Hasil selalu UTC supaya perbandingan di DB konsisten.
func ParseDate(s string, l *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if l == nil {
		l = loc
	}
	if t, err := time.ParseInLocation(DateLayout, s, l); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("format tanggal tidak dikenal: %q", s)
}

// ParseDatePtr: nil/kosong → nil.
func ParseDatePtr(s *string, l *time.Location) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	t, err := ParseDate(*s, l)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// DayBounds: [awal hari, awal hari berikutnya) di timezone l, dalam UTC.
func DayBounds(now time.Time, l *time.Location) (time.Time, time.Time) {
	if l == nil {
		l = loc
	}
	n := now.In(l)
	start := time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, l)
	return start.UTC(), start.AddDate(0, 0, 1).UTC()
}

// MonthBounds: [tanggal 1, tanggal 1 bulan berikutnya) di timezone l, dalam UTC.
func MonthBounds(now time.Time, l *time.Location) (time.Time, time.Time) {
	if l == nil {
		l = loc
	}
	n := now.In(l)
	start := time.Date(n.Year(), n.Month(), 1, 0, 0, 0, 0, l)
	return start.UTC(), start.AddDate(0, 1, 0).UTC()
}

// UTC menormalkan waktu sebelum disimpan; zero time dibiarkan.
func UTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

func UTCPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := UTC(*t)
	return &v
}
