// Projects (client environment, push groups, policy) into the fixed-shape
// numeric observation consumed by the learning loop. Encoding is a pure
// function of its inputs: identical inputs yield identical observations.

package sim

import (
	"fmt"
	"strconv"
)

// EncodedResource is the per-resource 4-tuple of an observation:
//
//	[0] presence flag, always 1 for every resource in some push group
//	[1] resource type code
//	[2] size bucket, bytes integer-divided by 1000
//	[3] push-source indicator: 0 if not pushed, else 1 + source order
type EncodedResource [4]int

// ClientObservation carries the client environment enum codes verbatim.
type ClientObservation struct {
	NetworkType int `json:"network_type"`
	DeviceSpeed int `json:"device_speed"`
}

// Observation is the derived projection handed to the learning loop.
// It is recomputed on every encode and never persisted.
type Observation struct {
	Client    ClientObservation          `json:"client"`
	Resources map[string]EncodedResource `json:"resources"` // keyed by resource order
}

// Encode builds the observation for the given environment, push groups, and
// policy. Every resource from every group is included, trainable or not;
// the push-source indicator reflects the observable policy, i.e. every push
// that would actually occur.
func Encode(env ClientEnvironment, groups []*PushGroup, policy *Policy) Observation {
	pushSource := make(map[string]int)
	if policy != nil {
		for _, sp := range policy.Observable() {
			for _, target := range sp.Pushes {
				pushSource[target.URL] = 1 + sp.Source.Order
			}
		}
	}

	resources := make(map[string]EncodedResource)
	for _, group := range groups {
		for _, res := range group.Resources {
			resources[strconv.Itoa(res.Order)] = EncodedResource{
				1,
				int(res.Type),
				int(res.Size / 1000),
				pushSource[res.URL],
			}
		}
	}

	return Observation{
		Client: ClientObservation{
			NetworkType: int(env.NetworkType),
			DeviceSpeed: int(env.DeviceSpeed),
		},
		Resources: resources,
	}
}

// ObservationSpace declares the bounds an observation must satisfy.
// Construct it once per manifest from the full push-group list.
type ObservationSpace struct {
	MaxOrder int // highest resource order across all groups
}

// NewObservationSpace derives the space from the push groups it will
// validate observations against.
func NewObservationSpace(groups []*PushGroup) ObservationSpace {
	maxOrder := 0
	for _, group := range groups {
		for _, res := range group.Resources {
			if res.Order > maxOrder {
				maxOrder = res.Order
			}
		}
	}
	return ObservationSpace{MaxOrder: maxOrder}
}

// Validate checks the observation against the declared bounds: enum codes
// within range, non-negative size buckets, and push-source indicators in
// [0, MaxOrder+1].
func (s ObservationSpace) Validate(obs Observation) error {
	if obs.Client.NetworkType < 0 || obs.Client.NetworkType > MaxNetworkType {
		return fmt.Errorf("network type code %d out of range [0, %d]", obs.Client.NetworkType, MaxNetworkType)
	}
	if obs.Client.DeviceSpeed < 0 || obs.Client.DeviceSpeed > MaxDeviceSpeed {
		return fmt.Errorf("device speed code %d out of range [0, %d]", obs.Client.DeviceSpeed, MaxDeviceSpeed)
	}
	for order, res := range obs.Resources {
		if res[0] != 1 {
			return fmt.Errorf("resource %s: presence flag %d, want 1", order, res[0])
		}
		if res[1] < 0 || res[1] > MaxResourceType {
			return fmt.Errorf("resource %s: type code %d out of range [0, %d]", order, res[1], MaxResourceType)
		}
		if res[2] < 0 {
			return fmt.Errorf("resource %s: negative size bucket %d", order, res[2])
		}
		if res[3] < 0 || res[3] > s.MaxOrder+1 {
			return fmt.Errorf("resource %s: push source %d out of range [0, %d]", order, res[3], s.MaxOrder+1)
		}
	}
	return nil
}

// Contains reports whether the observation validates against the space.
func (s ObservationSpace) Contains(obs Observation) bool {
	return s.Validate(obs) == nil
}
