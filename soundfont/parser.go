// SPDX-License-Identifier: EPL-2.0

package soundfont

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/riff"
)

var (
	riffID = [4]byte{'R', 'I', 'F', 'F'}
	sfbkID = [4]byte{'s', 'f', 'b', 'k'}
	listID = [4]byte{'L', 'I', 'S', 'T'}
)

// record sizes of the pdta sub-chunks
const (
	phdrSize = 38
	bagSize  = 4
	modSize  = 10
	genSize  = 4
	instSize = 22
	shdrSize = 46
)

// Decode reads the whole of r and parses it with Load.
func Decode(r io.Reader) (*Bank, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading instrument bank: %w", err)
	}
	return Load(data)
}

// Load parses a SoundFont 2 blob. Every failure wraps ErrMalformedBank and no
// partially built bank is ever returned.
func Load(data []byte) (*Bank, error) {
	if len(data) < 12 {
		return nil, fmt.Errorf("%w: %d byte header", ErrChunkSize, len(data))
	}
	if [4]byte(data[0:4]) != riffID || [4]byte(data[8:12]) != sfbkID {
		return nil, fmt.Errorf("%w: got %q/%q", ErrNotSoundFont, data[0:4], data[8:12])
	}

	size := int64(binary.LittleEndian.Uint32(data[4:8]))
	if size < 4 || 8+size > int64(len(data)) {
		return nil, fmt.Errorf("%w: RIFF declares %d bytes, have %d", ErrChunkSize, size, len(data)-8)
	}

	lists := map[[4]byte][]chunk{}
	r := bytes.NewReader(data[12 : 8+size])
	p := riff.New(r)
	for {
		ch, err := nextChunk(p, r)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		body := make([]byte, ch.Size)
		if _, err := io.ReadFull(ch, body); err != nil {
			return nil, fmt.Errorf("%w: chunk %q: %w", ErrChunkSize, ch.ID[:], err)
		}
		if ch.ID != listID {
			continue
		}
		if len(body) < 4 {
			return nil, fmt.Errorf("%w: LIST without type", ErrChunkSize)
		}

		sub, err := subChunks(body[4:])
		if err != nil {
			return nil, fmt.Errorf("LIST %q: %w", body[:4], err)
		}
		lists[[4]byte(body[:4])] = sub
	}

	bank := &Bank{}
	if err := bank.parseInfo(find(lists, "INFO")); err != nil {
		return nil, err
	}
	if err := bank.parseSampleData(find(lists, "sdta")); err != nil {
		return nil, err
	}
	if err := bank.parsePresetData(find(lists, "pdta")); err != nil {
		return nil, err
	}

	bank.index = make(map[uint32]int, len(bank.Presets))
	for i := range bank.Presets {
		key := programKey(bank.Presets[i].Header.Bank, bank.Presets[i].Header.Preset)
		if _, dup := bank.index[key]; !dup {
			bank.index[key] = i
		}
		bank.Presets[i].Regions = bank.buildRegions(&bank.Presets[i])
	}

	return bank, nil
}

type chunk struct {
	id   [4]byte
	data []byte
}

// subChunks splits the body of a LIST chunk using the same RIFF chunk reader
// as the top level.
func subChunks(body []byte) ([]chunk, error) {
	var out []chunk

	r := bytes.NewReader(body)
	p := riff.New(r)
	for {
		ch, err := nextChunk(p, r)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}

		data := make([]byte, ch.Size)
		if _, err := io.ReadFull(ch, data); err != nil {
			return nil, fmt.Errorf("%w: sub-chunk %q: %w", ErrChunkSize, ch.ID[:], err)
		}
		out = append(out, chunk{id: ch.ID, data: data})
	}
}

// nextChunk reads the next chunk header from p, which parses r. It returns
// io.EOF only when r is exhausted exactly on a chunk boundary. A partial
// header or a body larger than what is left fails with ErrChunkSize before
// anything is allocated for the body.
func nextChunk(p *riff.Parser, r *bytes.Reader) (*riff.Chunk, error) {
	left := r.Len()
	if left == 0 {
		return nil, io.EOF
	}
	if left < 8 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrChunkSize, left)
	}

	ch, err := p.NextChunk()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrChunkSize, err)
	}
	if ch.Size < 0 || ch.Size > r.Len() {
		return nil, fmt.Errorf("%w: chunk %q declares %d bytes, %d left", ErrChunkSize, ch.ID[:], ch.Size, r.Len())
	}

	return ch, nil
}

func find(lists map[[4]byte][]chunk, id string) []chunk {
	return lists[[4]byte([]byte(id))]
}

func lookup(chunks []chunk, id string) ([]byte, bool) {
	for _, c := range chunks {
		if string(c.id[:]) == id {
			return c.data, true
		}
	}
	return nil, false
}

func (b *Bank) parseInfo(info []chunk) error {
	ifil, ok := lookup(info, "ifil")
	if !ok {
		return fmt.Errorf("%w: ifil", ErrMissingChunk)
	}
	if len(ifil) < 4 {
		return fmt.Errorf("%w: ifil is %d bytes", ErrChunkSize, len(ifil))
	}

	b.Version = Version{
		Major: binary.LittleEndian.Uint16(ifil[0:2]),
		Minor: binary.LittleEndian.Uint16(ifil[2:4]),
	}
	if b.Version.Major != 2 {
		return fmt.Errorf("%w: %d.%02d", ErrUnsupportedVersion, b.Version.Major, b.Version.Minor)
	}

	if name, ok := lookup(info, "INAM"); ok {
		b.Name = cString(name)
	}

	return nil
}

func (b *Bank) parseSampleData(sdta []chunk) error {
	smpl, ok := lookup(sdta, "smpl")
	if !ok {
		return fmt.Errorf("%w: smpl", ErrMissingChunk)
	}

	b.SampleData = make([]float32, len(smpl)/2)
	for i := range b.SampleData {
		v := int16(binary.LittleEndian.Uint16(smpl[2*i:]))
		b.SampleData[i] = float32(v) / 32768.0
	}

	return nil
}

// cString decodes a fixed-width, NUL padded ASCII field.
func cString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}
