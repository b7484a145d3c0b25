package quickadd

import "time"

// Parse converts free-form quick-add text into a task draft. It never
// panics or fails for any input string: a field absent from the text is
// simply absent from the draft.
//
// Parse does not resolve recurrence anchors; callers materializing a
// recurring task's first due date use rrule.NextAnchor with "now" as the
// reference.
func Parse(text string, opts Options) Draft {
	o := opts.normalized()

	priorities := extractPriority(text, &o)
	projects := extractProject(text, &o)
	labels := extractLabels(text, &o)
	estimations := extractEstimation(text, &o)
	dates := extractDates(text, &o)
	times := extractTimes(text, &o)
	recurrences := extractRecurrence(text, &o)

	// structural tags are stripped from the title; date/time/recurrence
	// phrases are kept (see reconcileTitle)
	consumed := make([]Result, 0, len(priorities)+len(projects)+len(labels)+len(estimations))
	consumed = append(consumed, priorities...)
	consumed = append(consumed, projects...)
	consumed = append(consumed, labels...)
	consumed = append(consumed, estimations...)

	draft := Draft{Title: reconcileTitle(text, consumed)}

	// last p-token wins when several appear
	if n := len(priorities); n > 0 {
		draft.Priority, _ = priorities[n-1].Value.(int)
	}
	if len(projects) > 0 {
		draft.Project, _ = projects[0].Value.(string)
	}
	for _, l := range labels {
		if name, ok := l.Value.(string); ok {
			draft.Labels = append(draft.Labels, name)
		}
	}
	if len(estimations) > 0 {
		draft.Estimation, _ = estimations[0].Value.(int)
	}
	if len(dates) > 0 {
		if d, ok := dates[0].Value.(time.Time); ok {
			draft.DueDate = &d
		}
	}
	if len(times) > 0 {
		draft.Time, _ = times[0].Value.(string)
	}
	if len(recurrences) > 0 {
		draft.Recurring, _ = recurrences[0].Value.(string)
	}

	return draft
}
