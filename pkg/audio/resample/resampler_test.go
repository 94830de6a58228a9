// ABOUTME: Tests for audio resampler
// ABOUTME: Tests linear interpolation, chunk continuity, and ratio overrides
package resample

import (
	"testing"
)

func TestNew(t *testing.T) {
	r := New(44100, 48000, 2)

	if r.inputRate != 44100 {
		t.Errorf("expected inputRate 44100, got %d", r.inputRate)
	}
	if r.outputRate != 48000 {
		t.Errorf("expected outputRate 48000, got %d", r.outputRate)
	}
	if r.Channels() != 2 {
		t.Errorf("expected channels 2, got %d", r.Channels())
	}
	if r.Ratio() != 44100.0/48000.0 {
		t.Errorf("expected ratio %f, got %f", 44100.0/48000.0, r.Ratio())
	}
}

func TestResampleUpsamplingAcrossChunks(t *testing.T) {
	r := New(1, 2, 1)

	out := make([]int32, r.OutputSamplesNeeded(3))
	n := r.Resample([]int32{0, 100, 200}, out)
	assertSamples(t, out[:n], []int32{0, 50, 100, 150})

	out = make([]int32, r.OutputSamplesNeeded(1))
	n = r.Resample([]int32{300}, out)
	assertSamples(t, out[:n], []int32{200, 250})
}

func TestResampleDownsamplingAcrossChunks(t *testing.T) {
	r := New(2, 1, 1)

	input := make([]int32, 10)
	for i := range input {
		input[i] = int32(i * 10)
	}
	out := make([]int32, r.OutputSamplesNeeded(len(input)))
	n := r.Resample(input, out)
	assertSamples(t, out[:n], []int32{0, 20, 40, 60, 80})

	n = r.Resample([]int32{100, 110, 120}, out)
	assertSamples(t, out[:n], []int32{100})

	n = r.Resample([]int32{130, 140}, out)
	assertSamples(t, out[:n], []int32{120})
}

func TestResampleStereoKeepsChannelsApart(t *testing.T) {
	r := New(1, 2, 2)

	out := make([]int32, r.OutputSamplesNeeded(4))
	n := r.Resample([]int32{0, 1000, 100, 2000}, out)
	assertSamples(t, out[:n], []int32{0, 1000, 50, 1500})
}

func TestResampleIdentityIsLossless(t *testing.T) {
	r := New(48000, 48000, 2)

	var got []int32
	next := int32(0)
	for _, size := range []int{6, 2, 10, 4} {
		chunk := make([]int32, size)
		for i := range chunk {
			chunk[i] = next
			next++
		}
		out := make([]int32, r.OutputSamplesNeeded(size))
		n := r.Resample(chunk, out)
		got = append(got, out[:n]...)
	}

	// The final frame stays held back
	if len(got) != int(next)-2 {
		t.Fatalf("expected %d samples, got %d", next-2, len(got))
	}
	for i, v := range got {
		if v != int32(i) {
			t.Fatalf("sample %d: expected %d, got %d", i, i, v)
		}
	}
}

func TestOutputSamplesNeededIsSufficient(t *testing.T) {
	tests := []struct {
		name    string
		in, out int
	}{
		{"upsample", 44100, 48000},
		{"downsample", 48000, 44100},
		{"double", 22050, 44100},
		{"half", 96000, 48000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(tt.in, tt.out, 2)
			for i, size := range []int{2, 64, 2048, 10, 4096, 2, 512} {
				out := make([]int32, r.OutputSamplesNeeded(size)+2)
				n := r.Resample(make([]int32, size), out)
				if n >= len(out) {
					t.Fatalf("chunk %d: output buffer was filled (%d of %d)", i, n, len(out))
				}
			}
		})
	}
}

func TestSetRatio(t *testing.T) {
	r := New(44100, 44100, 1)

	r.SetRatio(2)
	if r.Ratio() != 2 {
		t.Errorf("expected ratio 2, got %f", r.Ratio())
	}

	r.SetRatio(0)
	r.SetRatio(-1)
	if r.Ratio() != 2 {
		t.Errorf("expected non-positive ratios to be ignored, got %f", r.Ratio())
	}

	r.SetRates(22050, 44100)
	if r.Ratio() != 0.5 {
		t.Errorf("expected ratio 0.5, got %f", r.Ratio())
	}
}

func TestReset(t *testing.T) {
	r := New(1, 2, 1)

	out := make([]int32, 16)
	r.Resample([]int32{0, 100, 200}, out)
	r.Reset()

	n := r.Resample([]int32{500, 600}, out)
	assertSamples(t, out[:n], []int32{500, 550})
}

func assertSamples(t *testing.T, got, want []int32) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}
