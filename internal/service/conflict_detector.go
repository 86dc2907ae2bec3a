package service

import (
	"sort"
	"time"

	"github.com/noah-isme/uni-schedule-api/internal/dto"
)

// ConflictPair is an unordered pair of occurrences that double-book one or
// more resources. A always has the smaller key.
type ConflictPair struct {
	A         Occurrence
	B         Occurrence
	Resources []dto.ResourceRef
}

// Shared reports whether the pair clashes on more than one resource.
func (p ConflictPair) Shared() bool {
	return len(p.Resources) > 1
}

type bookingKey struct {
	id   int64
	date time.Time
}

// DetectConflicts finds every pair of occurrences that overlap on the same
// room, professor or group. Occurrences are bucketed by resource and date,
// sorted by start time then key, and swept until the next start passes the
// current end. A pair clashing on several resources is returned once.
// include, when set, filters pairs before they are reported.
func DetectConflicts(occurrences []Occurrence, include func(a, b Occurrence) bool) []ConflictPair {
	pairs := make(map[[2]string]*ConflictPair)

	for _, kind := range dto.ResourceTypes {
		buckets := make(map[bookingKey][]Occurrence)
		for _, occ := range occurrences {
			id, ok := occ.resourceID(kind)
			if !ok {
				continue
			}
			k := bookingKey{id: id, date: civilDate(occ.Date())}
			buckets[k] = append(buckets[k], occ)
		}

		for k, bucket := range buckets {
			if len(bucket) < 2 {
				continue
			}
			sortOccurrences(bucket)
			for i := range bucket {
				current := bucket[i]
				for j := i + 1; j < len(bucket); j++ {
					next := bucket[j]
					if next.Interval.Start >= current.Interval.End {
						break
					}
					if next.Key == current.Key {
						continue
					}
					a, b := current, next
					if b.Key < a.Key {
						a, b = b, a
					}
					if include != nil && !include(a, b) {
						continue
					}
					id := [2]string{a.Key, b.Key}
					pair, ok := pairs[id]
					if !ok {
						pair = &ConflictPair{A: a, B: b}
						pairs[id] = pair
					}
					pair.Resources = append(pair.Resources, dto.ResourceRef{ResourceType: kind, ResourceID: k.id})
				}
			}
		}
	}

	out := make([]ConflictPair, 0, len(pairs))
	for _, pair := range pairs {
		out = append(out, *pair)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.A.Date().Equal(b.A.Date()) {
			return a.A.Date().Before(b.A.Date())
		}
		if a.A.Interval.Start != b.A.Interval.Start {
			return a.A.Interval.Start < b.A.Interval.Start
		}
		if a.A.Key != b.A.Key {
			return a.A.Key < b.A.Key
		}
		return a.B.Key < b.B.Key
	})
	return out
}

// ClassifyConflicts splits pairs into single and shared entries.
func ClassifyConflicts(pairs []ConflictPair) dto.ConflictsSummary {
	summary := dto.ConflictsSummary{
		Single: make([]dto.ConflictEntry, 0),
		Shared: make([]dto.ConflictEntry, 0),
	}
	for _, pair := range pairs {
		entry := dto.ConflictEntry{
			ResourceType: pair.Resources[0].ResourceType,
			ResourceID:   pair.Resources[0].ResourceID,
			Resources:    pair.Resources,
			Date:         formatDate(pair.A.Date()),
			OccurrenceA:  pair.A.Ref(),
			OccurrenceB:  pair.B.Ref(),
		}
		if pair.Shared() {
			summary.Shared = append(summary.Shared, entry)
		} else {
			summary.Single = append(summary.Single, entry)
		}
	}
	summary.TotalConflicts = len(summary.Single) + len(summary.Shared)
	return summary
}

// sortOccurrences orders by date, start time and key.
func sortOccurrences(occs []Occurrence) {
	sort.SliceStable(occs, func(i, j int) bool {
		a, b := occs[i], occs[j]
		if !a.Date().Equal(b.Date()) {
			return a.Date().Before(b.Date())
		}
		if a.Interval.Start != b.Interval.Start {
			return a.Interval.Start < b.Interval.Start
		}
		return a.Key < b.Key
	})
}
