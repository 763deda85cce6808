package pathfind

// StepCost is the cost of entering a free cell.
const StepCost = 1

// DefaultPenalty is the cost [Permissive] charges for a taken cell when its
// Penalty is unset.
const DefaultPenalty = 50

// CostPolicy prices a move into a cell. ok is false when the cell may not be
// entered at all.
type CostPolicy interface {
	Cost(blocked bool) (cost int, ok bool)
}

// Strict never enters taken cells. Paths found under it never cross.
type Strict struct{}

// Cost implements [CostPolicy].
func (Strict) Cost(blocked bool) (int, bool) {
	if blocked {
		return 0, false
	}
	return StepCost, true
}

// Permissive enters taken cells at Penalty, so paths cross only when going
// around is more expensive.
type Permissive struct {
	Penalty int
}

// Cost implements [CostPolicy].
func (p Permissive) Cost(blocked bool) (int, bool) {
	if !blocked {
		return StepCost, true
	}
	if p.Penalty <= 0 {
		return DefaultPenalty, true
	}
	return p.Penalty, true
}
