// ABOUTME: Converts pulled source audio into the device layout
// ABOUTME: Handles pause, rate conversion, pitch, channel mapping, volume and pan
package output

import (
	"github.com/Resonate-Protocol/soundstream/pkg/audio"
	"github.com/Resonate-Protocol/soundstream/pkg/audio/resample"
)

// renderer turns pulls in the source layout into device frames. It is
// owned by the device thread and is not safe for concurrent use.
type renderer struct {
	props *props
	pull  PullFunc

	srcChannels int
	srcRate     int
	dstChannels int
	dstRate     int

	chunk      []int32 // one pull, source layout
	converted  []int32 // resampler output
	pending    []int32 // converted frames not yet rendered, source layout
	resampler  *resample.Resampler
	resampling bool
}

func newRenderer(p *props, pull PullFunc, srcChannels, srcRate, dstChannels, dstRate, chunkFrames int) *renderer {
	if chunkFrames <= 0 {
		chunkFrames = 1024
	}
	return &renderer{
		props:       p,
		pull:        pull,
		srcChannels: srcChannels,
		srcRate:     srcRate,
		dstChannels: dstChannels,
		dstRate:     dstRate,
		chunk:       make([]int32, chunkFrames*srcChannels),
		resampler:   resample.New(srcRate, dstRate, srcChannels),
	}
}

// Render fills dst with interleaved device frames
func (r *renderer) Render(dst []int32) {
	if r.props.Paused() {
		clear(dst)
		return
	}

	frames := len(dst) / r.dstChannels
	need := frames * r.srcChannels
	for len(r.pending) < need {
		r.fill()
	}

	r.mix(dst[:frames*r.dstChannels], r.pending[:need])
	r.pending = append(r.pending[:0], r.pending[need:]...)
}

// fill pulls one chunk and appends it to pending at the device rate
func (r *renderer) fill() {
	r.pull(r.chunk)

	ratio := float64(r.srcRate) * r.props.Pitch() / float64(r.dstRate)
	if ratio == 1 && !r.resampling {
		r.pending = append(r.pending, r.chunk...)
		return
	}

	// Once engaged the resampler stays in the path to keep its carried frame
	r.resampling = true
	r.resampler.SetRatio(ratio)
	if need := r.resampler.OutputSamplesNeeded(len(r.chunk)); cap(r.converted) < need {
		r.converted = make([]int32, need)
	}
	r.converted = r.converted[:cap(r.converted)]
	n := r.resampler.Resample(r.chunk, r.converted)
	r.pending = append(r.pending, r.converted[:n]...)
}

// mix maps src frames onto dst channels and applies gain
func (r *renderer) mix(dst, src []int32) {
	sc, dc := r.srcChannels, r.dstChannels
	volume := r.props.Volume()
	left, right := panGains(r.props.Panning())

	frames := len(dst) / dc
	for f := 0; f < frames; f++ {
		in := src[f*sc : (f+1)*sc]
		out := dst[f*dc : (f+1)*dc]

		switch {
		case sc == dc:
			copy(out, in)
		case sc == 1:
			for i := range out {
				out[i] = in[0]
			}
		case dc == 1:
			var sum int64
			for _, s := range in {
				sum += int64(s)
			}
			out[0] = int32(sum / int64(sc))
		default:
			for i := range out {
				out[i] = in[i%sc]
			}
		}

		if dc == 1 {
			out[0] = gain(out[0], volume)
			continue
		}
		out[0] = gain(out[0], volume*left)
		out[1] = gain(out[1], volume*right)
		for i := 2; i < dc; i++ {
			out[i] = gain(out[i], volume)
		}
	}
}

// panGains returns linear balance gains for the left and right channels
func panGains(pan float64) (left, right float64) {
	return min(1, 1-pan), min(1, 1+pan)
}

func gain(s int32, g float64) int32 {
	if g == 1 {
		return s
	}
	return audio.ClampSample(int64(float64(s) * g))
}
