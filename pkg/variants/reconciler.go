package variants

import (
	"maps"

	"github.com/Ramsey-B/bramble/pkg/models"
)

// Match describes how a combination was paired with a stored record.
type Match string

const (
	MatchExact   Match = "exact"
	MatchPartial Match = "partial"
	MatchNone    Match = "none"
)

// Score counts the (attribute, value) pairs of the combination that the record
// shares. allMatch is false when the record holds a different value for any
// attribute the combination also has.
func Score(combination, record map[string]string) (score int, allMatch bool) {
	allMatch = true
	for attributeID, valueID := range combination {
		recordValue, ok := record[attributeID]
		if !ok {
			continue
		}
		if recordValue != valueID {
			allMatch = false
			continue
		}
		score++
	}
	return score, allMatch
}

// Resolve finds the stored record that best corresponds to a combination.
// An exact key match wins; otherwise the non-conflicting record with the
// strictly highest overlap is returned, ties going to the first encountered.
// Records are never modified.
func Resolve[R models.Keyed](key string, attributeValues map[string]string, records []R) (R, Match) {
	var zero R

	for _, record := range records {
		if record.GetKey() == key {
			return record, MatchExact
		}
	}

	best := -1
	bestScore := 0
	for i, record := range records {
		score, allMatch := Score(attributeValues, record.GetAttributeValues())
		if !allMatch {
			continue
		}
		if score > bestScore {
			best = i
			bestScore = score
		}
	}

	if best == -1 {
		return zero, MatchNone
	}

	return records[best], MatchPartial
}

// Row is one entry of a reconciled view model.
type Row[T any] struct {
	Combination models.Combination
	Fields      T
	Match       Match
	// Source is the key of the record the fields came from. Empty when the
	// row fell back to defaults.
	Source string
}

// Record converts the row into a record keyed by its current combination.
func (r Row[T]) Record() models.VariantRecord[T] {
	return models.VariantRecord[T]{
		Key:             r.Combination.Key,
		AttributeValues: maps.Clone(r.Combination.AttributeValues),
		Fields:          r.Fields,
	}
}

// Reconcile pairs each combination with its best prior record, falling back to
// defaults when none corresponds.
func Reconcile[T any](combinations []models.Combination, records []models.VariantRecord[T], defaults func(models.Combination) T) []Row[T] {
	rows := make([]Row[T], 0, len(combinations))

	for _, combination := range combinations {
		record, match := Resolve(combination.Key, combination.AttributeValues, records)

		var fields T
		var source string
		if match == MatchNone {
			if defaults != nil {
				fields = defaults(combination)
			}
		} else {
			fields = record.Fields
			source = record.Key
		}

		rows = append(rows, Row[T]{
			Combination: combination,
			Fields:      fields,
			Match:       match,
			Source:      source,
		})
	}

	return rows
}

// Unmatched returns the records no row took its fields from, in record order.
func Unmatched[T any](rows []Row[T], records []models.VariantRecord[T]) []models.VariantRecord[T] {
	used := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		if row.Match != MatchNone {
			used[row.Source] = struct{}{}
		}
	}

	var unmatched []models.VariantRecord[T]
	for _, record := range records {
		if _, ok := used[record.Key]; !ok {
			unmatched = append(unmatched, record)
		}
	}
	return unmatched
}

// ResolveSingle looks up the shared record used when no attribute controls a
// facet. Only the sentinel key is considered.
func ResolveSingle[T any](records []models.VariantRecord[T]) (models.VariantRecord[T], bool) {
	for _, record := range records {
		if record.Key == models.SingleKey {
			return record, true
		}
	}
	return models.VariantRecord[T]{}, false
}
