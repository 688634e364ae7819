package solver

import (
	"hash/fnv"
	"math/rand"

	"github.com/shiftforge/shiftcore/internal/domain"
)

// deterministicSeed derives a stable seed from a schedule's id-sorted
// contents when cfg.Seed is not supplied.
func deterministicSeed(sch *domain.Schedule) int64 {
	h := fnv.New64a()
	for _, e := range sch.Employees() {
		h.Write([]byte(e.ID))
		h.Write([]byte{0})
	}
	for _, s := range sch.Shifts() {
		h.Write([]byte(s.ID))
		h.Write([]byte{0})
	}
	return int64(h.Sum64())
}

func newRand(cfg Config, sch *domain.Schedule) *rand.Rand {
	seed := deterministicSeed(sch)
	if cfg.Seed != nil {
		seed = *cfg.Seed
	}
	return rand.New(rand.NewSource(seed))
}
