package out

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	"holoalarm/internal/modules/wake/domain"
	wakeout "holoalarm/internal/modules/wake/port/out"
	"holoalarm/internal/platform/slug"
)

// WAVStore writes PCM audio as RIFF/WAVE files into one directory.
type WAVStore struct {
	dir string
}

func NewWAVStore(dir string) wakeout.AudioStore {
	return &WAVStore{dir: dir}
}

func (s *WAVStore) Write(_ context.Context, name string, audio domain.Audio) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create audio dir: %w", err)
	}
	path := filepath.Join(s.dir, slug.Make(name)+".wav")
	raw, err := EncodeWAV(audio)
	if err != nil {
		return "", err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return "", fmt.Errorf("write audio: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return "", fmt.Errorf("write audio: %w", err)
	}
	return path, nil
}

type wavHeader struct {
	ChunkID       [4]byte
	ChunkSize     uint32
	Format        [4]byte
	FmtID         [4]byte
	FmtSize       uint32
	AudioFormat   uint16
	Channels      uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	DataID        [4]byte
	DataSize      uint32
}

// EncodeWAV prefixes PCM with a canonical 44-byte WAVE header.
func EncodeWAV(audio domain.Audio) ([]byte, error) {
	if audio.SampleRate <= 0 || audio.Channels <= 0 || audio.BitsPerSample <= 0 {
		return nil, fmt.Errorf("encode wav: invalid format %d Hz %d ch %d bit", audio.SampleRate, audio.Channels, audio.BitsPerSample)
	}
	blockAlign := audio.Channels * audio.BitsPerSample / 8
	h := wavHeader{
		ChunkID:       [4]byte{'R', 'I', 'F', 'F'},
		ChunkSize:     uint32(36 + len(audio.PCM)),
		Format:        [4]byte{'W', 'A', 'V', 'E'},
		FmtID:         [4]byte{'f', 'm', 't', ' '},
		FmtSize:       16,
		AudioFormat:   1,
		Channels:      uint16(audio.Channels),
		SampleRate:    uint32(audio.SampleRate),
		ByteRate:      uint32(audio.SampleRate * blockAlign),
		BlockAlign:    uint16(blockAlign),
		BitsPerSample: uint16(audio.BitsPerSample),
		DataID:        [4]byte{'d', 'a', 't', 'a'},
		DataSize:      uint32(len(audio.PCM)),
	}
	var buf bytes.Buffer
	buf.Grow(44 + len(audio.PCM))
	if err := binary.Write(&buf, binary.LittleEndian, h); err != nil {
		return nil, fmt.Errorf("encode wav: %w", err)
	}
	buf.Write(audio.PCM)
	return buf.Bytes(), nil
}
