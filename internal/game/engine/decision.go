package engine

// Decision is a pluggable strategy for one seat. Every call receives a fresh
// snapshot taken from that seat's point of view; the engine re-validates
// whatever comes back, and an error aborts the run.
type Decision interface {
	ResetForGame(s *Snapshot)
	ResetForTrick(s *Snapshot)
	Attack(s *Snapshot) (AttackAction, error)
	Defend(s *Snapshot) (DefendAction, error)
}
