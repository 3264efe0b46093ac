package reminder

import "time"

// Offset names a fixed duration before a deadline at which a reminder fires.
// The enumeration is closed; anything else is rejected by Config.Validate.
type Offset string

const (
	Offset1Hour   Offset = "1_HOUR"
	Offset3Hours  Offset = "3_HOURS"
	Offset6Hours  Offset = "6_HOURS"
	Offset12Hours Offset = "12_HOURS"
	Offset1Day    Offset = "1_DAY"
	Offset2Days   Offset = "2_DAYS"
	Offset3Days   Offset = "3_DAYS"
	Offset1Week   Offset = "1_WEEK"
)

var (
	AllOffsets = []Offset{
		Offset1Hour, Offset3Hours, Offset6Hours, Offset12Hours,
		Offset1Day, Offset2Days, Offset3Days, Offset1Week,
	}

	offsetDurations = map[Offset]time.Duration{
		Offset1Hour:   time.Hour,
		Offset3Hours:  3 * time.Hour,
		Offset6Hours:  6 * time.Hour,
		Offset12Hours: 12 * time.Hour,
		Offset1Day:    24 * time.Hour,
		Offset2Days:   2 * 24 * time.Hour,
		Offset3Days:   3 * 24 * time.Hour,
		Offset1Week:   7 * 24 * time.Hour,
	}
)

func (o Offset) Valid() bool {
	_, ok := offsetDurations[o]
	return ok
}

// Duration returns the fixed duration o stands for. It panics on a value
// outside the enumeration: that is a caller bug, user input must go through
// Config.Validate first.
func (o Offset) Duration() time.Duration {
	d, ok := offsetDurations[o]
	if !ok {
		panic("reminder: unknown offset " + string(o))
	}
	return d
}

// TriggerTime is the instant a reminder becomes eligible to fire:
// dueDate - offset duration, exactly.
func TriggerTime(dueDate time.Time, offset Offset) time.Time {
	return dueDate.Add(-offset.Duration())
}
