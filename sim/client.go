// Defines the simulated client environment: the link-speed class and device
// class an episode is trained against. Supplied externally and consumed
// read-only by the observation encoder.

package sim

import (
	"math/rand"
)

// NetworkType classifies the simulated client's link speed.
type NetworkType int

const (
	NetworkWired NetworkType = iota
	NetworkWiFi
	NetworkLTE
	Network3G
)

// MaxNetworkType is the highest valid NetworkType code.
const MaxNetworkType = int(Network3G)

func (n NetworkType) String() string {
	switch n {
	case NetworkWired:
		return "wired"
	case NetworkWiFi:
		return "wifi"
	case NetworkLTE:
		return "lte"
	case Network3G:
		return "3g"
	}
	return "wired"
}

// DeviceSpeed classifies the simulated client's compute class.
type DeviceSpeed int

const (
	DeviceFast DeviceSpeed = iota
	DeviceAverage
	DeviceSlow
)

// MaxDeviceSpeed is the highest valid DeviceSpeed code.
const MaxDeviceSpeed = int(DeviceSlow)

func (d DeviceSpeed) String() string {
	switch d {
	case DeviceFast:
		return "fast"
	case DeviceAverage:
		return "average"
	case DeviceSlow:
		return "slow"
	}
	return "fast"
}

// ClientEnvironment is an immutable record describing the simulated client.
type ClientEnvironment struct {
	NetworkType NetworkType `json:"network_type"`
	DeviceSpeed DeviceSpeed `json:"device_speed"`
}

// DefaultClientEnvironment is the environment used when none is sampled:
// a fast device on a wired link.
func DefaultClientEnvironment() ClientEnvironment {
	return ClientEnvironment{NetworkType: NetworkWired, DeviceSpeed: DeviceFast}
}

// RandomClientEnvironment draws a uniformly random environment from the
// given RNG. Callers wanting reproducible episodes pass the SubsystemClient
// RNG of a PartitionedRNG.
func RandomClientEnvironment(rng *rand.Rand) ClientEnvironment {
	return ClientEnvironment{
		NetworkType: NetworkType(rng.Intn(MaxNetworkType + 1)),
		DeviceSpeed: DeviceSpeed(rng.Intn(MaxDeviceSpeed + 1)),
	}
}
