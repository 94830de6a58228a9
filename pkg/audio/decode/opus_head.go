// ABOUTME: Ogg Opus identification header parsing
// ABOUTME: Reads the channel count from the OpusHead packet
package decode

import (
	"bytes"
	"fmt"
	"io"
)

var opusHeadMagic = []byte("OpusHead")

// opusChannels finds the OpusHead packet in the first Ogg page and returns
// its channel count. r is rewound to the start on success.
func opusChannels(r io.ReadSeeker) (int, error) {
	head := make([]byte, 512)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.ErrUnexpectedEOF {
		return 0, fmt.Errorf("%w: %v", ErrNotOpusFile, err)
	}
	head = head[:n]

	if !bytes.HasPrefix(head, []byte("OggS")) {
		return 0, ErrNotOpusFile
	}
	idx := bytes.Index(head, opusHeadMagic)
	// magic, version byte, channel count byte
	if idx < 0 || idx+len(opusHeadMagic)+2 > len(head) {
		return 0, ErrNotOpusFile
	}
	channels := int(head[idx+len(opusHeadMagic)+1])
	if channels == 0 {
		return 0, ErrEmptyStream
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return 0, fmt.Errorf("failed to rewind Opus stream: %w", err)
	}
	return channels, nil
}
