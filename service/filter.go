package service

import (
	"strings"
	"time"

	"github.com/telerehab/dashboard-api/chart"
	"github.com/telerehab/dashboard-api/model"
	"github.com/telerehab/dashboard-api/util"
)

// normalizeDraftName keeps display names consistent across sources.
func normalizeDraftName(name string) string {
	return util.NormalizeName(name)
}

// FilterRecords derives the visible subset of records: a case-insensitive
// substring match of query against the resolved display name, condition and
// phone, conjoined with an exact status match ("all" disables it). Order is
// stable; the original list order is preserved.
func FilterRecords(records []model.PatientRecord, query, status string, translator *util.Translator) []model.PatientRecord {
	query = strings.ToLower(strings.TrimSpace(query))
	filtered := make([]model.PatientRecord, 0, len(records))
	for _, r := range records {
		if !matchesQuery(r, query, translator) {
			continue
		}
		if status != "" && status != model.StatusAll && r.Status != status {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered
}

func matchesQuery(r model.PatientRecord, query string, translator *util.Translator) bool {
	if query == "" {
		return true
	}
	name := r.Name
	if translator != nil {
		name = translator.ResolveDisplayName(r)
	}
	for _, field := range []string{name, r.Condition, r.Phone} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

// Paginate slices one page out of the filtered records. Offsets past the
// end yield an empty page; a non-positive limit means no cap.
func Paginate(records []model.PatientRecord, limit, offset int) []model.PatientRecord {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(records) {
		return []model.PatientRecord{}
	}
	end := len(records)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return records[offset:end]
}

// SummaryStats are the dashboard's headline counts.
type SummaryStats struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Inactive  int `json:"inactive"`
	Critical  int `json:"critical"`
	Recovered int `json:"recovered"`
}

// Summarize counts records per status.
func Summarize(records []model.PatientRecord) SummaryStats {
	stats := SummaryStats{Total: len(records)}
	for _, r := range records {
		switch r.Status {
		case model.StatusActive:
			stats.Active++
		case model.StatusInactive:
			stats.Inactive++
		case model.StatusCritical:
			stats.Critical++
		case model.StatusRecovered:
			stats.Recovered++
		}
	}
	return stats
}

// AdmissionSeries buckets admissions into the placeholder-shaped series for
// the period: hour of day for "today", day of month for "month". The result
// always has the period's fixed shape, so an empty working set still yields
// a drawable zero series.
func AdmissionSeries(records []model.PatientRecord, period string, now time.Time) chart.Series {
	return bucketSeries(records, chart.KindAdmissions, period, now, func(r model.PatientRecord) bool {
		return true
	})
}

// RecoverySeries buckets recovered patients by their admission date.
func RecoverySeries(records []model.PatientRecord, period string, now time.Time) chart.Series {
	return bucketSeries(records, chart.KindRecoveries, period, now, func(r model.PatientRecord) bool {
		return r.Status == model.StatusRecovered
	})
}

func bucketSeries(records []model.PatientRecord, kind, period string, now time.Time, include func(model.PatientRecord) bool) chart.Series {
	series := chart.Placeholder(kind, period, now)
	for _, r := range records {
		if !include(r) {
			continue
		}
		admitted, err := time.ParseInLocation("2006-01-02", r.DateAdmitted, now.Location())
		if err != nil {
			continue
		}
		switch series.Period {
		case chart.PeriodMonth:
			if admitted.Year() == now.Year() && admitted.Month() == now.Month() {
				series.Values[admitted.Day()-1]++
			}
		default:
			// Dates carry no time of day, so today's admissions land in
			// the midnight bucket.
			if sameDay(admitted, now) {
				series.Values[admitted.Hour()]++
			}
		}
	}
	return series
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// ProgressSummary is the per-patient view the dashboard shows on the detail
// page: current status plus time under care.
type ProgressSummary struct {
	PatientID     int64  `json:"patientId"`
	DisplayName   string `json:"displayName"`
	Status        string `json:"status"`
	DaysUnderCare int    `json:"daysUnderCare"`
	TreatmentPlan string `json:"treatmentPlan"`
	Recovered     bool   `json:"recovered"`
}

// Progress derives the summary for one record.
func Progress(record model.PatientRecord, translator *util.Translator, now time.Time) ProgressSummary {
	days := 0
	if admitted, err := time.ParseInLocation("2006-01-02", record.DateAdmitted, now.Location()); err == nil {
		days = int(now.Sub(admitted).Hours() / 24)
		if days < 0 {
			days = 0
		}
	}
	name := record.Name
	if translator != nil {
		name = translator.ResolveDisplayName(record)
	}
	return ProgressSummary{
		PatientID:     record.ID,
		DisplayName:   name,
		Status:        record.Status,
		DaysUnderCare: days,
		TreatmentPlan: record.TreatmentPlan,
		Recovered:     record.Status == model.StatusRecovered,
	}
}
