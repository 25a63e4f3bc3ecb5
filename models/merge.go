package models

// IDSet is a set of record identifiers.
type IDSet map[string]struct{}

// NewIDSet builds an IDSet from the given ids.
func NewIDSet(ids ...string) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports whether id is a member of the set. Safe on a nil set.
func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// MergeResult is the output of the reconciler: the two staged change sets
// the engine applies to the local store. The sets are disjoint by id, so
// they may be applied in any order.
type MergeResult struct {
	ToUpsert []Task
	ToDelete []string
}

// Empty reports whether the merge staged no local changes.
func (r MergeResult) Empty() bool {
	return len(r.ToUpsert) == 0 && len(r.ToDelete) == 0
}
