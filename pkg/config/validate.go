package config

import (
	"regexp"
	"time"

	"github.com/mfbx9da4/meanwhile/pkg/errors"
)

var hexColorRe = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Validate checks the document for structural problems and returns all
// of them at once as an errors.FieldErrors, or nil when the document is
// sound. Milestone problems are reported with a one-based position so
// messages read "Milestone 2 date: ...".
func (d Document) Validate() error {
	var fe errors.FieldErrors

	start, startErr := d.Start()
	if d.StartDate == "" {
		fe.Add("startDate", "is required")
	} else if startErr != nil {
		fe.Add("startDate", "must be a YYYY-MM-DD date, got %q", d.StartDate)
	}

	due, dueErr := d.Due()
	if d.DueDate == "" {
		fe.Add("dueDate", "is required")
	} else if dueErr != nil {
		fe.Add("dueDate", "must be a YYYY-MM-DD date, got %q", d.DueDate)
	}

	haveRange := startErr == nil && dueErr == nil
	if haveRange && !due.After(start) {
		fe.Add("dueDate", "must be after startDate")
	}

	if d.TodayEmoji == "" {
		fe.Add("todayEmoji", "is required")
	}

	for i, m := range d.Milestones {
		if m.Label == "" {
			fe.Add(errors.MilestonePath(i+1, "label"), "cannot be empty")
		}
		if m.Emoji == "" {
			fe.Add(errors.MilestonePath(i+1, "emoji"), "cannot be empty")
		}

		var mdate time.Time
		var mdateErr error
		if m.Date == "" {
			fe.Add(errors.MilestonePath(i+1, "date"), "is required")
		} else {
			mdate, mdateErr = time.Parse(DateFormat, m.Date)
			if mdateErr != nil {
				fe.Add(errors.MilestonePath(i+1, "date"), "must be a YYYY-MM-DD date, got %q", m.Date)
			} else if haveRange && (mdate.Before(start) || !mdate.Before(due)) {
				fe.Add(errors.MilestonePath(i+1, "date"), "falls outside the tracked range")
			}
		}

		if m.EndDate != "" {
			end, endErr := time.Parse(DateFormat, m.EndDate)
			switch {
			case endErr != nil:
				fe.Add(errors.MilestonePath(i+1, "endDate"), "must be a YYYY-MM-DD date, got %q", m.EndDate)
			case mdateErr == nil && m.Date != "" && end.Before(mdate):
				fe.Add(errors.MilestonePath(i+1, "endDate"), "must not be before date")
			case haveRange && !end.Before(due):
				fe.Add(errors.MilestonePath(i+1, "endDate"), "falls outside the tracked range")
			}
		}

		if m.Color != "" && !hexColorRe.MatchString(m.Color) {
			fe.Add(errors.MilestonePath(i+1, "color"), "must be a hex color like #ff8800, got %q", m.Color)
		}
	}

	return fe.OrNil()
}
