// ABOUTME: Streaming linear resampler for converting audio sample rates
// ABOUTME: Carries the last frame across chunks so consecutive calls interpolate seamlessly
package resample

// Resampler performs linear interpolation to convert between sample rates.
// It is not safe for concurrent use.
type Resampler struct {
	inputRate  int
	outputRate int
	channels   int
	ratio      float64
	position   float64
	lastSample []int32 // one sample per channel
	primed     bool
}

// New creates a new resampler
func New(inputRate, outputRate, channels int) *Resampler {
	return &Resampler{
		inputRate:  inputRate,
		outputRate: outputRate,
		channels:   channels,
		ratio:      float64(inputRate) / float64(outputRate),
		position:   0.0,
		lastSample: make([]int32, channels),
	}
}

// Ratio returns input frames consumed per output frame
func (r *Resampler) Ratio() float64 {
	return r.ratio
}

// SetRatio overrides the conversion ratio; values above 1 raise pitch.
// Non-positive ratios are ignored.
func (r *Resampler) SetRatio(ratio float64) {
	if ratio > 0 {
		r.ratio = ratio
	}
}

// SetRates changes the input and output rates, keeping interpolation state
func (r *Resampler) SetRates(inputRate, outputRate int) {
	if inputRate <= 0 || outputRate <= 0 {
		return
	}
	r.inputRate = inputRate
	r.outputRate = outputRate
	r.ratio = float64(inputRate) / float64(outputRate)
}

// Channels returns the interleaved channel count
func (r *Resampler) Channels() int {
	return r.channels
}

// frame returns sample ch of virtual frame i, where frame 0 is the
// carried-over frame once the resampler has seen input
func (r *Resampler) frame(input []int32, i, ch int) int32 {
	if r.primed {
		if i == 0 {
			return r.lastSample[ch]
		}
		i--
	}
	return input[i*r.channels+ch]
}

// Resample converts input samples to the output rate using linear interpolation.
// input: interleaved samples at inputRate
// output: interleaved samples at outputRate, sized with OutputSamplesNeeded
// Returns the number of samples written. The final input frame is held back
// and used as the left edge of the next call.
func (r *Resampler) Resample(input []int32, output []int32) int {
	inputFrames := len(input) / r.channels
	if inputFrames == 0 {
		return 0
	}

	virtualFrames := inputFrames
	if r.primed {
		virtualFrames++
	}
	outputFrames := len(output) / r.channels

	outIdx := 0
	for outIdx < outputFrames {
		inputIdx := int(r.position)
		if inputIdx >= virtualFrames-1 {
			break
		}

		frac := r.position - float64(inputIdx)
		for ch := 0; ch < r.channels; ch++ {
			sample1 := r.frame(input, inputIdx, ch)
			sample2 := r.frame(input, inputIdx+1, ch)
			interpolated := float64(sample1)*(1.0-frac) + float64(sample2)*frac
			output[outIdx*r.channels+ch] = int32(interpolated)
		}

		outIdx++
		r.position += r.ratio
	}

	copy(r.lastSample, input[(inputFrames-1)*r.channels:inputFrames*r.channels])
	r.primed = true

	// Rebase so the held frame becomes virtual frame 0
	r.position -= float64(virtualFrames - 1)
	if r.position < 0 {
		r.position = 0
	}

	return outIdx * r.channels
}

// Reset resets the resampler state
func (r *Resampler) Reset() {
	r.position = 0.0
	r.primed = false
	for i := range r.lastSample {
		r.lastSample[i] = 0
	}
}

// OutputSamplesNeeded returns an output size large enough for one Resample call with inputSamples
func (r *Resampler) OutputSamplesNeeded(inputSamples int) int {
	inputFrames := inputSamples/r.channels + 1
	outputFrames := int(float64(inputFrames)/r.ratio) + 2
	return outputFrames * r.channels
}

// InputSamplesNeeded calculates how many input samples are needed to produce output samples
func (r *Resampler) InputSamplesNeeded(outputSamples int) int {
	outputFrames := outputSamples / r.channels
	inputFrames := int(float64(outputFrames)*r.ratio) + 1
	return inputFrames * r.channels
}
