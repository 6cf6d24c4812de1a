// Package sim implements the push-scheduling environment core: it turns
// repeated network captures of a page into a stable, deterministically
// ordered dependency structure and models push decisions as a combinatorial
// state machine for a learning agent.
//
// # Reading Guide
//
// Start with these files to understand the environment:
//   - resource.go: the Resource and PushGroup model and its invariants
//   - stableset.go: majority-vote ordering across capture runs
//   - actionspace.go, policy.go: the episode state machine
//   - observation.go: the fixed-shape projection handed to the learner
//
// # Architecture
//
// The sim package is synchronous and free of I/O outside explicit load/save
// helpers; collaborators live in sub-packages:
//   - sim/capture/: capture-run aggregation, HAR conversion, link crawling
//   - sim/replay/: the persisted record/replay store adapter
//   - sim/trace/: pure-data episode decision records
//
// # Determinism
//
// Everything observable is reproducible: stable-set ordering is a pure
// function of its input runs, and all randomness (action sampling, client
// environment draws) flows through a PartitionedRNG keyed by an EpisodeKey
// (see rng.go).
package sim
