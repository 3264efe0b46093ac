package reminder

import (
	"testing"
	"time"
)

func TestOffsetDuration(t *testing.T) {
	tests := []struct {
		offset Offset
		want   time.Duration
	}{
		{Offset1Hour, time.Hour},
		{Offset3Hours, 3 * time.Hour},
		{Offset6Hours, 6 * time.Hour},
		{Offset12Hours, 12 * time.Hour},
		{Offset1Day, 24 * time.Hour},
		{Offset2Days, 48 * time.Hour},
		{Offset3Days, 72 * time.Hour},
		{Offset1Week, 7 * 24 * time.Hour},
	}
	for _, tt := range tests {
		t.Run(string(tt.offset), func(t *testing.T) {
			if !tt.offset.Valid() {
				t.Fatalf("Valid() = false for enumerated offset")
			}
			if got := tt.offset.Duration(); got != tt.want {
				t.Errorf("Duration() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOffsetDuration_unknownPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Duration() did not panic on unknown offset")
		}
	}()
	Offset("2_WEEKS").Duration()
}

func TestTriggerTime(t *testing.T) {
	due := time.Date(2026, 9, 15, 23, 59, 0, 0, time.UTC)

	for _, off := range AllOffsets {
		t.Run(string(off), func(t *testing.T) {
			got := TriggerTime(due, off)
			if want := due.Add(-off.Duration()); !got.Equal(want) {
				t.Errorf("TriggerTime() = %v, want %v", got, want)
			}
			// the trigger must land exactly the offset before the due date
			if d := due.Sub(got); d != off.Duration() {
				t.Errorf("due - trigger = %v, want %v", d, off.Duration())
			}
		})
	}
}
