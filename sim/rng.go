package sim

import (
	"hash/fnv"
	"math/rand"
)

// EpisodeKey names one reproducible episode. Replaying a key over the same
// push groups yields the same action samples and the same observation.
type EpisodeKey int64

// NewEpisodeKey wraps a seed value as an EpisodeKey.
func NewEpisodeKey(seed int64) EpisodeKey {
	return EpisodeKey(seed)
}

const (
	// SubsystemActionSpace draws action samples. It consumes the episode
	// seed unmodified, so a --seed value maps straight onto the sampled
	// action sequence.
	SubsystemActionSpace = "actionspace"

	// SubsystemClient draws client environments.
	SubsystemClient = "client"
)

// PartitionedRNG hands out one seeded random stream per named subsystem.
// Keeping the streams apart means a client-environment draw cannot shift
// the action samples of the same episode, and vice versa.
//
// The action-space stream is seeded with the episode key itself; every
// other stream gets the key XORed with an FNV-1a hash of its name.
//
// Not safe for concurrent use. Episode state is only ever touched from one
// goroutine, which is all this needs.
type PartitionedRNG struct {
	key        EpisodeKey
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG for the given episode.
func NewPartitionedRNG(key EpisodeKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns the named subsystem's random stream, creating and
// caching it on first use. Repeated calls with the same name return the
// same *rand.Rand.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}

	seed := int64(p.key)
	if name != SubsystemActionSpace {
		seed ^= fnv1a64(name)
	}

	rng := rand.New(rand.NewSource(seed))
	p.subsystems[name] = rng
	return rng
}

// Key returns the episode key this PartitionedRNG was created with.
func (p *PartitionedRNG) Key() EpisodeKey {
	return p.key
}

func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
