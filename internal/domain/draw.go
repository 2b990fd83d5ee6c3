package domain

import "fmt"

// Validate checks the table's startup invariants: at least one record,
// every field non-empty, every level known, every weight positive.
// A table that passes once can be drawn from for the life of the process.
func (t Table) Validate() error {
	if len(t.Records) == 0 {
		return ErrEmptyTable
	}
	for i, r := range t.Records {
		if !r.Level.Valid() {
			return fmt.Errorf("%w: record %d has unknown level %q", ErrInvalidRecord, i, r.Level)
		}
		if r.Object == "" || r.Color == "" || r.ColorHex == "" || r.Verse == "" || r.Activity == "" {
			return fmt.Errorf("%w: record %d has an empty field", ErrInvalidRecord, i)
		}
		if r.Weight < 1 {
			return fmt.Errorf("%w: record %d has weight %d", ErrInvalidRecord, i, r.Weight)
		}
	}
	return nil
}

// Draw selects one record by cumulative weight. With all weights equal
// the selection is uniform. The table must have passed Validate.
func (t Table) Draw(rng RNG) BlessingRecord {
	total := 0
	for _, r := range t.Records {
		total += r.Weight
	}

	n := rng.Intn(total)
	cum := 0
	for _, r := range t.Records {
		cum += r.Weight
		if n < cum {
			return r
		}
	}
	return t.Records[len(t.Records)-1]
}
