package scene

import "fmt"

// NumLayers is the number of visibility layers the host exposes.
const NumLayers = 20

// LayerMask selects visibility layers, one bit per layer.
type LayerMask uint32

// AllLayers has every visibility layer set.
const AllLayers LayerMask = 1<<NumLayers - 1

// MaskOf builds a mask from layer indexes. Indexes outside [0, NumLayers)
// are ignored.
func MaskOf(layers ...int) LayerMask {
	var m LayerMask
	for _, l := range layers {
		m = m.Set(l, true)
	}
	return m
}

// Has reports whether layer is selected.
func (m LayerMask) Has(layer int) bool {
	if layer < 0 || layer >= NumLayers {
		return false
	}
	return m&(1<<layer) != 0
}

// Set returns m with layer switched on or off.
func (m LayerMask) Set(layer int, on bool) LayerMask {
	if layer < 0 || layer >= NumLayers {
		return m
	}
	if on {
		return m | 1<<layer
	}
	return m &^ (1 << layer)
}

// Toggle returns m with layer flipped.
func (m LayerMask) Toggle(layer int) LayerMask {
	return m.Set(layer, !m.Has(layer))
}

// Visible reports whether an object on the given layers is exported under m.
func (m LayerMask) Visible(objLayers uint32) bool {
	return objLayers&uint32(m) != 0
}

// Layers lists the selected layer indexes in ascending order.
func (m LayerMask) Layers() []int {
	var out []int
	for i := 0; i < NumLayers; i++ {
		if m.Has(i) {
			out = append(out, i)
		}
	}
	return out
}

// String renders the mask as two rows of ten, matching the host's layer
// buttons: "11111 11111 / 11111 11111".
func (m LayerMask) String() string {
	b := make([]byte, 0, 23)
	for i := 0; i < NumLayers; i++ {
		switch i {
		case 5, 15:
			b = append(b, ' ')
		case 10:
			b = append(b, " / "...)
		}
		if m.Has(i) {
			b = append(b, '1')
		} else {
			b = append(b, '0')
		}
	}
	return string(b)
}

// ValidLayer returns an error when layer is not a host layer index.
func ValidLayer(layer int) error {
	if layer < 0 || layer >= NumLayers {
		return fmt.Errorf("layer %d out of range [0,%d)", layer, NumLayers)
	}
	return nil
}
