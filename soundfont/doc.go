// SPDX-License-Identifier: EPL-2.0

// Package soundfont loads SoundFont 2 instrument banks into memory.
//
// A bank is parsed once from a byte slice and is read-only afterwards:
//
//	bank, err := soundfont.Load(data)
//	if errors.Is(err, soundfont.ErrMalformedBank) {
//	    // truncated blob, wrong magic/version or inconsistent chunk sizes
//	}
//
//	for _, h := range bank.Directory() {
//	    fmt.Printf("%03d:%03d %s\n", h.Bank, h.Preset, h.Name)
//	}
//
// # Format Coverage
//
// The loader reads the INFO list (ifil version, INAM name), the smpl chunk of
// the sdta list (16-bit samples; sm24 is ignored) and all nine pdta hydra
// chunks. Modulator records are kept verbatim but have no effect on playback.
//
// # Regions
//
// Each preset is flattened at load time into Regions: one per preset zone and
// instrument zone pair whose key and velocity ranges overlap. Global zones are
// folded in, instrument generators are absolute and preset generators are
// added to them. The synth package plays directly from Regions.
package soundfont
