package model

// Snapshot is an immutable read of the three entity collections at a point
// in time. The store hands out copies, so holders can iterate without
// locking and mutations never show through.
type Snapshot struct {
	Transactions []Transaction `json:"transactions"`
	Budgets      []Budget      `json:"budgets"`
	Goals        []Goal        `json:"goals"`
}

// Clone returns a deep copy of the snapshot's slices. Entity fields are
// value types, so copying the slices is sufficient isolation.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		Transactions: make([]Transaction, len(s.Transactions)),
		Budgets:      make([]Budget, len(s.Budgets)),
		Goals:        make([]Goal, len(s.Goals)),
	}
	copy(out.Transactions, s.Transactions)
	copy(out.Budgets, s.Budgets)
	copy(out.Goals, s.Goals)
	return out
}
