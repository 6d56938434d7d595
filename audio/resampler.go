// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/ik5/sfpitch/internal/dsp"
)

// Resampler converts src to another sample rate with Catmull-Rom
// interpolation, keeping the channel count. When downsampling a one-pole
// low-pass at 45% of the target rate is applied to the input first.
type Resampler struct {
	src      Source
	rate     int
	step     float64 // source frames per output frame
	channels int

	// hist is four consecutive source frames; the output position lies
	// between hist[1] and hist[2] at fraction pos.
	hist   []float32
	pos    float64
	ahead  int // real (not padded) frames in hist[2] and hist[3]
	primed bool

	in           []float32
	inPos, inLen int
	eof          bool

	filter bool
	alpha  float32
	lp     []float32
}

func NewResampler(src Source, dstRate int) *Resampler {
	ch := max(src.Channels(), 1)
	step := float64(src.SampleRate()) / float64(dstRate)

	r := &Resampler{
		src:      src,
		rate:     dstRate,
		step:     step,
		channels: ch,
		hist:     make([]float32, 4*ch),
		in:       make([]float32, max(src.BufSize()/ch, 1)*ch),
		lp:       make([]float32, ch),
	}
	if step > 1 {
		r.filter = true
		r.alpha = float32(1 - math.Exp(-2*math.Pi*0.45/step))
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.rate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("closing resampler source: %w", err)
	}
	return nil
}

// pull copies the next source frame into frame. It reports false once the
// source is exhausted.
func (r *Resampler) pull(frame []float32) (bool, error) {
	if r.inPos >= r.inLen {
		if r.eof {
			return false, nil
		}

		n, err := r.src.ReadSamples(r.in)
		r.inPos, r.inLen = 0, n-n%r.channels
		switch {
		case errors.Is(err, io.EOF):
			r.eof = true
		case err != nil:
			return false, fmt.Errorf("resampler read: %w", err)
		case n == 0:
			return false, io.ErrNoProgress
		}
		if r.inLen == 0 {
			return false, nil
		}
	}

	copy(frame, r.in[r.inPos:r.inPos+r.channels])
	r.inPos += r.channels

	if r.filter {
		for c, x := range frame {
			r.lp[c] += r.alpha * (x - r.lp[c])
			frame[c] = r.lp[c]
		}
	}

	return true, nil
}

func (r *Resampler) prime() error {
	ch := r.channels
	first := r.hist[ch : 2*ch]

	// seed the filter with the first frame so it starts settled
	if r.filter {
		if r.inLen == 0 && !r.eof {
			n, err := r.src.ReadSamples(r.in)
			r.inLen = n - n%ch
			if errors.Is(err, io.EOF) {
				r.eof = true
			} else if err != nil {
				return fmt.Errorf("resampler read: %w", err)
			}
		}
		if r.inLen > 0 {
			copy(r.lp, r.in[:ch])
		}
	}

	ok, err := r.pull(first)
	if err != nil {
		return err
	}
	if !ok {
		return io.EOF
	}
	copy(r.hist[:ch], first)

	for i := 2; i < 4; i++ {
		slot := r.hist[i*ch : (i+1)*ch]
		ok, err := r.pull(slot)
		if err != nil {
			return err
		}
		if ok {
			r.ahead++
		} else {
			copy(slot, r.hist[(i-1)*ch:i*ch])
		}
	}

	r.primed = true
	return nil
}

// advance shifts the history one frame forward, padding with the last frame
// after the end of the source.
func (r *Resampler) advance() error {
	ch := r.channels
	copy(r.hist, r.hist[ch:])

	ok, err := r.pull(r.hist[3*ch:])
	if err != nil {
		return err
	}
	if !ok && r.ahead > 0 {
		r.ahead--
	}

	return nil
}

// ReadSamples produces interleaved samples at the target rate. len(dst) must
// be a multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	ch := r.channels
	if len(dst)%ch != 0 {
		return 0, ErrInvalidDstSize
	}
	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	written := 0
	for written < len(dst) {
		for r.pos >= 1 {
			r.pos--
			if err := r.advance(); err != nil {
				return written, err
			}
		}
		if r.ahead == 0 && r.pos > 0 {
			return written, io.EOF
		}

		frac := float32(r.pos)
		h := r.hist
		for c := range ch {
			dst[written+c] = dsp.CubicInterpolate(h[c], h[ch+c], h[2*ch+c], h[3*ch+c], frac)
		}
		written += ch
		r.pos += r.step

		if r.ahead == 0 && r.pos >= 1 {
			return written, io.EOF
		}
	}

	return written, nil
}
