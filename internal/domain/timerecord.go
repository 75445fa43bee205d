package domain

import "time"

type RecordKind string

const (
	KindClockIn    RecordKind = "clockIn"
	KindClockOut   RecordKind = "clockOut"
	KindBreakStart RecordKind = "breakStart"
	KindBreakEnd   RecordKind = "breakEnd"
)

func (k RecordKind) Valid() bool {
	switch k {
	case KindClockIn, KindClockOut, KindBreakStart, KindBreakEnd:
		return true
	}
	return false
}

// Label is the display label shown in the calendar and notifications.
func (k RecordKind) Label() string {
	switch k {
	case KindClockIn:
		return "出勤"
	case KindClockOut:
		return "退勤"
	case KindBreakStart:
		return "休憩開始"
	default:
		return "休憩終了"
	}
}

// NightShiftLabel annotates records that belong to an overnight shift.
const NightShiftLabel = "夜勤"

// TimeRecord is one attendance stamp. Kinds are not validated against each
// other: a clock-out without a clock-in is accepted.
type TimeRecord struct {
	ID         string
	UserID     string
	Date       time.Time // day precision
	Time       string    // HH:MM
	Kind       RecordKind
	NightShift bool
	CreatedAt  time.Time
}
