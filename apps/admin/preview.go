package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/trezcool/arifa/core/reminder"
)

// preview prints the reminder plan for a hypothetical deadline; handy when
// tuning offsets.
func (cli *commandLine) preview(due, title, offsetsCSV string) error {
	dueDate, err := time.Parse(time.RFC3339, due)
	if err != nil {
		return fmt.Errorf("invalid due date %q: %w", due, err)
	}
	now := time.Now().UTC()

	var offsets []reminder.Offset
	if offsetsCSV != "" {
		for _, s := range strings.Split(offsetsCSV, ",") {
			off := reminder.Offset(strings.TrimSpace(s))
			if !off.Valid() {
				return fmt.Errorf("unknown offset %q", s)
			}
			offsets = append(offsets, off)
		}
	} else {
		offsets = reminder.DefaultOffsets(dueDate, now)
	}

	cfg := reminder.Config{
		DeadlineID: "preview",
		UserID:     "preview",
		Title:      title,
		DueDate:    dueDate,
		Offsets:    offsets,
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	fmt.Printf("%s - due %s (%s, %s)\n",
		title, dueDate.Format(time.RFC3339), reminder.Classify(dueDate, now), reminder.TimeRemaining(dueDate, now))
	reminders := reminder.SortByTime(reminder.ScheduleMultiple(cfg, offsets, now))
	if len(reminders) == 0 {
		fmt.Println("  no reminders left to schedule")
		return nil
	}
	for _, cr := range reminders {
		fmt.Printf("  %-8s fires at %s (%s before due)\n", cr.Offset, cr.TriggerAt.Format(time.RFC3339), cr.OffsetDuration)
	}
	return nil
}
