package attendance

import (
	"github.com/edutrack-hub/edutrack/internal/domain/shared"
)

// SubjectStats holds aggregated attendance numbers for one subject or for the
// whole timetable. Percentage is always round(present/total*100) in [0, 100],
// and 0 when total is 0. Stats are never stored - they are recomputed from the
// day records on every read, so they cannot go stale.
type SubjectStats struct {
	Present    int               `json:"present"`
	Total      int               `json:"total"`
	Percentage shared.Percentage `json:"percentage"`
}

// Aggregator computes attendance statistics from daily records.
// All methods are pure: they read the record collection and return new values.
type Aggregator struct{}

// NewAggregator creates an attendance aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// SubjectStats aggregates one subject across all day records.
// A day counts toward total when the subject has any non-empty status
// (present, absent, or cancelled); an unset entry means "no class" and
// contributes to neither present nor total.
func (a *Aggregator) SubjectStats(records []*DailyAttendance, subjectID shared.ID) SubjectStats {
	var present, total int
	for _, day := range records {
		status := day.Subjects.Get(subjectID)
		if !status.Counts() {
			continue
		}
		total++
		if status == StatusPresent {
			present++
		}
	}
	return SubjectStats{
		Present:    present,
		Total:      total,
		Percentage: shared.Ratio(present, total),
	}
}

// OverallStats aggregates every scheduled entry plus extra classes across all
// day records, with the same counting rules as SubjectStats.
func (a *Aggregator) OverallStats(records []*DailyAttendance) SubjectStats {
	var present, total int
	for _, day := range records {
		for _, status := range day.Subjects {
			if !status.Counts() {
				continue
			}
			total++
			if status == StatusPresent {
				present++
			}
		}
		for _, extra := range day.ExtraClasses {
			if !extra.Status.Counts() {
				continue
			}
			total++
			if extra.Status == StatusPresent {
				present++
			}
		}
	}
	return SubjectStats{
		Present:    present,
		Total:      total,
		Percentage: shared.Ratio(present, total),
	}
}

// StatsBySubject aggregates every subject in the given order and returns a
// stats map keyed by subject id. Subjects with no recorded classes get
// zero-valued stats.
func (a *Aggregator) StatsBySubject(records []*DailyAttendance, subjectIDs []shared.ID) map[shared.ID]SubjectStats {
	stats := make(map[shared.ID]SubjectStats, len(subjectIDs))
	for _, id := range subjectIDs {
		stats[id] = a.SubjectStats(records, id)
	}
	return stats
}
