package blockclock

import "time"

// Clock supplies the monotonically increasing block index used to measure
// deposit duration. One block spans a configured number of wall seconds.
type Clock interface {
	Block() uint64
}

// Wall derives the block index from wall time: blocks elapsed since genesis
// at BlockSeconds per block.
type Wall struct {
	Genesis      int64 // unix seconds
	BlockSeconds int64
}

func NewWall(genesis, blockSeconds int64) Wall {
	if blockSeconds <= 0 {
		blockSeconds = 1
	}
	return Wall{Genesis: genesis, BlockSeconds: blockSeconds}
}

func (w Wall) Block() uint64 {
	elapsed := time.Now().Unix() - w.Genesis
	if elapsed < 0 {
		return 0
	}
	return uint64(elapsed / w.BlockSeconds)
}

// Manual is a hand-advanced clock for tests.
type Manual struct {
	Current uint64
}

func (m *Manual) Block() uint64 { return m.Current }
func (m *Manual) Advance(n uint64) { m.Current += n }
func (m *Manual) Set(block uint64) { m.Current = block }
