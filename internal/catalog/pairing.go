package catalog

import (
	"slices"

	"github.com/architeacher/gadgets/internal/domain/model"
)

type (
	// PairingSelector edits the paired devices of one form. The bound is
	// enforced when adding, never by truncating afterwards.
	PairingSelector struct {
		maxPairings int
		current     []model.PairedDevice
	}

	PairingOption func(*PairingSelector)
)

func WithMaxPairings(n int) PairingOption {
	return func(s *PairingSelector) {
		if n > 0 {
			s.maxPairings = n
		}
	}
}

func NewPairingSelector(current []model.PairedDevice, opts ...PairingOption) *PairingSelector {
	s := &PairingSelector{
		maxPairings: model.MaxPairings,
		current:     slices.Clone(current),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Candidates keeps every device other than excludeID that is not already paired.
func Candidates(all []model.Device, excludeID model.DeviceID, current []model.PairedDevice) []model.Device {
	candidates := make([]model.Device, 0, len(all))

	for _, device := range all {
		if device.ID == excludeID || isPaired(current, device.ID) {
			continue
		}

		candidates = append(candidates, device)
	}

	return candidates
}

// Search narrows the candidates with the same text match used by Filter.
func (s *PairingSelector) Search(all []model.Device, excludeID model.DeviceID, query string) []model.Device {
	candidates := Candidates(all, excludeID, s.current)

	matches := make([]model.Device, 0, len(candidates))
	for _, device := range candidates {
		if MatchesQuery(device, query) {
			matches = append(matches, device)
		}
	}

	return matches
}

// Add reports whether the device was appended. It is a no-op at the bound.
func (s *PairingSelector) Add(device model.Device) bool {
	if s.IsFull() {
		return false
	}

	s.current = append(s.current, device.PairingReference())

	return true
}

func (s *PairingSelector) Remove(id model.DeviceID) {
	s.current = slices.DeleteFunc(s.current, func(p model.PairedDevice) bool {
		return p.DeviceID == id
	})
}

func (s *PairingSelector) IsFull() bool {
	return len(s.current) >= s.maxPairings
}

func (s *PairingSelector) MaxPairings() int {
	return s.maxPairings
}

func (s *PairingSelector) Current() []model.PairedDevice {
	current := slices.Clone(s.current)
	if current == nil {
		return []model.PairedDevice{}
	}

	return current
}

func isPaired(current []model.PairedDevice, id model.DeviceID) bool {
	return slices.ContainsFunc(current, func(p model.PairedDevice) bool {
		return p.DeviceID == id
	})
}
