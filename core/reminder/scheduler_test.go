package reminder

import (
	"reflect"
	"testing"
	"time"

	"github.com/trezcool/arifa/core"
)

var testNow = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

func validConfig(due time.Time, offsets ...Offset) Config {
	return Config{
		DeadlineID: "dl1",
		UserID:     "usr1",
		Title:      "Final Essay",
		CourseName: "CS401",
		DueDate:    due,
		Offsets:    offsets,
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name       string
		cfg        Config
		wantFields []string
	}{
		{name: "valid", cfg: validConfig(testNow.Add(48 * time.Hour))},
		{name: "valid with offsets", cfg: validConfig(testNow.Add(48*time.Hour), Offset1Day, Offset1Hour)},
		{name: "zero due date", cfg: Config{DeadlineID: "dl1", UserID: "usr1", Title: "T"}, wantFields: []string{"due_date"}},
		{
			name:       "missing everything",
			cfg:        Config{},
			wantFields: []string{"due_date", "deadline_id", "user_id", "title"},
		},
		{
			name: "whitespace-only fields",
			cfg: Config{
				DeadlineID: "   ",
				UserID:     "\t",
				Title:      " \n ",
				DueDate:    testNow.Add(time.Hour),
			},
			wantFields: []string{"deadline_id", "user_id", "title"},
		},
		{
			name:       "unknown offset",
			cfg:        validConfig(testNow.Add(48*time.Hour), Offset("5_HOURS")),
			wantFields: []string{"offsets"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantFields == nil {
				if err != nil {
					t.Fatalf("Validate() unexpected error = %v", err)
				}
				return
			}
			vErr, ok := err.(*core.ValidationError)
			if !ok {
				t.Fatalf("Validate() error = %T, want *core.ValidationError", err)
			}
			fldMap := vErr.FieldMap()
			if len(fldMap) != len(tt.wantFields) {
				t.Errorf("Validate() fields = %v, want %v", fldMap, tt.wantFields)
			}
			for _, fld := range tt.wantFields {
				if _, ok := fldMap[fld]; !ok {
					t.Errorf("Validate() missing field error for %q; got %v", fld, fldMap)
				}
			}
		})
	}
}

func TestCalculate(t *testing.T) {
	due := testNow.Add(48 * time.Hour)
	cr := Calculate(validConfig(due), Offset1Day)

	if cr.DeadlineID != "dl1" {
		t.Errorf("DeadlineID = %q, want %q", cr.DeadlineID, "dl1")
	}
	if cr.OffsetDuration != 24*time.Hour {
		t.Errorf("OffsetDuration = %v, want %v", cr.OffsetDuration, 24*time.Hour)
	}
	if want := due.Add(-24 * time.Hour); !cr.TriggerAt.Equal(want) {
		t.Errorf("TriggerAt = %v, want %v", cr.TriggerAt, want)
	}
}

func TestScheduleMultiple(t *testing.T) {
	tests := []struct {
		name    string
		due     time.Time
		offsets []Offset
		want    []Offset
	}{
		{
			name:    "all in the future",
			due:     testNow.Add(8 * 24 * time.Hour),
			offsets: []Offset{Offset1Week, Offset1Day, Offset1Hour},
			want:    []Offset{Offset1Week, Offset1Day, Offset1Hour},
		},
		{
			// due in 2h: the 3_HOURS trigger is already past
			name:    "past triggers dropped",
			due:     testNow.Add(2 * time.Hour),
			offsets: []Offset{Offset1Hour, Offset3Hours},
			want:    []Offset{Offset1Hour},
		},
		{
			// trigger exactly at now is not after now
			name:    "trigger at now dropped",
			due:     testNow.Add(time.Hour),
			offsets: []Offset{Offset1Hour},
			want:    []Offset{},
		},
		{
			name:    "overdue deadline schedules nothing",
			due:     testNow.Add(-time.Hour),
			offsets: []Offset{Offset1Hour, Offset1Day},
			want:    []Offset{},
		},
		{
			// input order is preserved, not time order
			name:    "input order preserved",
			due:     testNow.Add(8 * 24 * time.Hour),
			offsets: []Offset{Offset1Hour, Offset1Week, Offset1Day},
			want:    []Offset{Offset1Hour, Offset1Week, Offset1Day},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScheduleMultiple(validConfig(tt.due), tt.offsets, testNow)
			gotOffsets := make([]Offset, 0, len(got))
			for _, cr := range got {
				gotOffsets = append(gotOffsets, cr.Offset)
			}
			if !reflect.DeepEqual(gotOffsets, tt.want) {
				t.Errorf("ScheduleMultiple() offsets = %v, want %v", gotOffsets, tt.want)
			}
		})
	}
}

func TestSortByTime(t *testing.T) {
	due := testNow.Add(8 * 24 * time.Hour)
	cfg := validConfig(due)

	in := []Calculated{
		Calculate(cfg, Offset1Hour),
		Calculate(cfg, Offset1Week),
		Calculate(cfg, Offset1Day),
	}
	got := SortByTime(in)

	want := []Offset{Offset1Week, Offset1Day, Offset1Hour}
	for i, off := range want {
		if got[i].Offset != off {
			t.Errorf("SortByTime()[%d].Offset = %v, want %v", i, got[i].Offset, off)
		}
	}
	// input untouched
	if in[0].Offset != Offset1Hour {
		t.Error("SortByTime() mutated its input")
	}
}

func TestSortByTime_stable(t *testing.T) {
	cfg := validConfig(testNow.Add(48 * time.Hour))

	// two distinct deadlines sharing a trigger time keep insertion order
	a := Calculate(cfg, Offset1Day)
	b := a
	b.DeadlineID = "dl2"
	got := SortByTime([]Calculated{a, b})
	if got[0].DeadlineID != "dl1" || got[1].DeadlineID != "dl2" {
		t.Errorf("SortByTime() reordered equal trigger times: %v, %v", got[0].DeadlineID, got[1].DeadlineID)
	}
}

func TestIsDue(t *testing.T) {
	tests := []struct {
		name      string
		triggerAt time.Time
		want      bool
	}{
		{name: "exactly at trigger", triggerAt: testNow, want: true},
		{name: "within tolerance", triggerAt: testNow.Add(-3 * time.Minute), want: true},
		{name: "at tolerance boundary", triggerAt: testNow.Add(-DefaultTolerance), want: true},
		{name: "just past tolerance", triggerAt: testNow.Add(-DefaultTolerance - time.Millisecond), want: false},
		{name: "before trigger", triggerAt: testNow.Add(time.Millisecond), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDue(tt.triggerAt, testNow, DefaultTolerance); got != tt.want {
				t.Errorf("IsDue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDefaultOffsets(t *testing.T) {
	tests := []struct {
		name  string
		until time.Duration
		want  []Offset
	}{
		{name: "overdue", until: -time.Hour, want: []Offset{Offset6Hours, Offset3Hours, Offset1Hour}},
		{name: "12h", until: 12 * time.Hour, want: []Offset{Offset6Hours, Offset3Hours, Offset1Hour}},
		{name: "exactly 24h", until: 24 * time.Hour, want: []Offset{Offset6Hours, Offset3Hours, Offset1Hour}},
		{name: "just past 24h", until: 24*time.Hour + time.Minute, want: []Offset{Offset2Days, Offset1Day, Offset6Hours}},
		{name: "exactly 3d", until: 3 * 24 * time.Hour, want: []Offset{Offset2Days, Offset1Day, Offset6Hours}},
		{name: "just past 3d", until: 3*24*time.Hour + time.Minute, want: []Offset{Offset3Days, Offset2Days, Offset1Day}},
		{name: "exactly 7d", until: 7 * 24 * time.Hour, want: []Offset{Offset3Days, Offset2Days, Offset1Day}},
		{name: "just past 7d", until: 7*24*time.Hour + time.Minute, want: []Offset{Offset1Week, Offset3Days, Offset1Day}},
		{name: "a month out", until: 30 * 24 * time.Hour, want: []Offset{Offset1Week, Offset3Days, Offset1Day}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DefaultOffsets(testNow.Add(tt.until), testNow); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DefaultOffsets() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFiredKey(t *testing.T) {
	if got, want := FiredKey("usr1", "dl1", Offset1Hour), "usr1:dl1:1_HOUR"; got != want {
		t.Errorf("FiredKey() = %q, want %q", got, want)
	}
}
