// SPDX-License-Identifier: EPL-2.0

package soundfont

import (
	"cmp"
	"slices"
)

// Directory returns the preset headers stable-sorted by bank, then preset.
// Ties keep declaration order. The returned slice is a fresh copy.
func (b *Bank) Directory() []PresetHeader {
	dir := make([]PresetHeader, len(b.Presets))
	for i := range b.Presets {
		dir[i] = b.Presets[i].Header
	}

	slices.SortStableFunc(dir, func(x, y PresetHeader) int {
		if c := cmp.Compare(x.Bank, y.Bank); c != 0 {
			return c
		}
		return cmp.Compare(x.Preset, y.Preset)
	})

	return dir
}
