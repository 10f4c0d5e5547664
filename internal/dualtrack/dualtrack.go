// Package dualtrack implements the initial/actual propagation rule shared by
// the financial breakdown, operating-expense config, and all cost line kinds.
//
// Every tracked entity carries each figure twice: an initial (quoted) column
// and an actual (realized) column. A partial update that touches only initial
// columns mirrors the new values into the actual columns too: the quote
// changed before anything actual was recorded, so actual keeps tracking it.
// An update that touches an actual column writes only that column, and an
// explicit actual value always wins over the mirror.
package dualtrack

// Pair names one initial-track column and its actual-track counterpart.
type Pair struct {
	Initial string
	Actual  string
}

// Schema describes which columns of an entity participate in the two tracks.
// Plain columns sit outside the tracks and are written exactly as given.
type Schema struct {
	Pairs []Pair
	Plain []string
}

// Classify reports whether the patch touches any initial-track column and
// whether it touches any actual-track column.
func (s Schema) Classify(patch map[string]interface{}) (hasInitial, hasActual bool) {
	for _, p := range s.Pairs {
		if _, ok := patch[p.Initial]; ok {
			hasInitial = true
		}
		if _, ok := patch[p.Actual]; ok {
			hasActual = true
		}
	}
	return hasInitial, hasActual
}

// UpdateColumns builds the column set to apply to an existing row:
//   - initial column present, actual absent → write both (mirror)
//   - actual column present → write the actual column as given
//   - both present → initial as given, explicit actual wins over the mirror
//
// Plain columns pass through untouched. Columns absent from the patch are
// never written. Unknown patch keys are dropped.
func (s Schema) UpdateColumns(patch map[string]interface{}) map[string]interface{} {
	cols := make(map[string]interface{})
	for _, p := range s.Pairs {
		iv, hasI := patch[p.Initial]
		av, hasA := patch[p.Actual]
		if hasI {
			cols[p.Initial] = iv
			if !hasA {
				cols[p.Actual] = iv
			}
		}
		if hasA {
			cols[p.Actual] = av
		}
	}
	for _, name := range s.Plain {
		if v, ok := patch[name]; ok {
			cols[name] = v
		}
	}
	return cols
}

// InsertColumns builds the column set for a row that does not exist yet:
// actual columns default to the supplied initial values unless the patch sets
// them explicitly. Callers must first check Classify; a patch with no initial
// columns must not insert at all.
func (s Schema) InsertColumns(patch map[string]interface{}) map[string]interface{} {
	return s.UpdateColumns(patch)
}
