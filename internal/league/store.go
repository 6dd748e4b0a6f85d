package league

// Batch is everything produced by one scheduling/simulation pass. The
// engine accumulates a batch in memory and hands it to the Store once,
// so persistence stays all-or-nothing at the batch boundary.
type Batch struct {
	Games  []*Game
	Drives []*Drive
	Plays  []*Play
	Logs   []*GameLog
}

// Append merges other into b.
func (b *Batch) Append(other *Batch) {
	if other == nil {
		return
	}
	b.Games = append(b.Games, other.Games...)
	b.Drives = append(b.Drives, other.Drives...)
	b.Plays = append(b.Plays, other.Plays...)
	b.Logs = append(b.Logs, other.Logs...)
}

// Store durably persists a batch. Implementations live outside the engine.
type Store interface {
	SaveBatch(batch *Batch) error
}

// NopStore discards batches. Useful for dry runs and tests.
type NopStore struct{}

func (NopStore) SaveBatch(*Batch) error { return nil }
