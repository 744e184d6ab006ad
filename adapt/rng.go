package adapt

import (
	"fmt"
	"hash/fnv"
	"math/rand"
)

// StudyKey uniquely identifies a reproducible refinement study. Two studies
// with the same StudyKey and identical configuration MUST produce
// bit-for-bit identical meshes, decisions, and reports.
type StudyKey int64

// NewStudyKey creates a StudyKey from a seed value.
func NewStudyKey(seed int64) StudyKey {
	return StudyKey(seed)
}

const (
	// SubsystemField is the RNG subsystem for the synthetic error field.
	// Uses the master seed directly so --seed reproduces the field exactly.
	SubsystemField = "field"
)

// SubsystemPartition returns the subsystem name for partition rank r, giving
// each partition an isolated noise stream.
func SubsystemPartition(r int) string {
	return fmt.Sprintf("partition_%d", r)
}

// PartitionedRNG provides deterministic, isolated RNG instances per
// subsystem, so adding a consumer of randomness in one subsystem never
// perturbs the streams seen by the others.
//
// Derivation: SubsystemField uses the master seed directly; every other
// subsystem uses masterSeed XOR fnv1a64(subsystemName).
//
// Thread-safety: NOT thread-safe. Each partition owns its own instance.
type PartitionedRNG struct {
	key        StudyKey
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a StudyKey.
func NewPartitionedRNG(key StudyKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns a deterministically-seeded RNG for the named
// subsystem. The same name always returns the same *rand.Rand instance.
// Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}

	var derivedSeed int64
	if name == SubsystemField {
		derivedSeed = int64(p.key)
	} else {
		derivedSeed = int64(p.key) ^ fnv1a64(name)
	}

	rng := rand.New(rand.NewSource(derivedSeed))
	p.subsystems[name] = rng
	return rng
}

// Key returns the StudyKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() StudyKey {
	return p.key
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
