package domain

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	apperrors "holoalarm/internal/platform/errors"
)

const (
	DefaultName  = "User"
	DefaultVoice = "Kore"
	// DefaultPhotoMIME is assumed when the stored bytes do not identify an image type.
	DefaultPhotoMIME = "image/png"
)

// Profile is the single user profile. PhotoBase64 is raw standard base64
// without a data-URL prefix; nil means no photo.
type Profile struct {
	Name        string  `json:"name"`
	PhotoBase64 *string `json:"photoBase64"`
	VoiceName   string  `json:"voiceName"`
}

func Default() Profile {
	return Profile{Name: DefaultName, VoiceName: DefaultVoice}
}

func (p Profile) Clone() Profile {
	out := p
	if p.PhotoBase64 != nil {
		photo := *p.PhotoBase64
		out.PhotoBase64 = &photo
	}
	return out
}

func (p Profile) HasPhoto() bool {
	return p.PhotoBase64 != nil && *p.PhotoBase64 != ""
}

// Photo decodes the stored photo.
func (p Profile) Photo() ([]byte, error) {
	if !p.HasPhoto() {
		return nil, fmt.Errorf("%w: profile has no photo", apperrors.ErrInvalidInput)
	}
	return DecodePhoto(*p.PhotoBase64)
}

// DecodePhoto decodes a photo in the stored base64 form.
func DecodePhoto(photoBase64 string) ([]byte, error) {
	if photoBase64 == "" {
		return nil, fmt.Errorf("%w: empty photo", apperrors.ErrInvalidInput)
	}
	data, err := base64.StdEncoding.DecodeString(photoBase64)
	if err != nil {
		return nil, fmt.Errorf("%w: photo is not base64: %v", apperrors.ErrInvalidInput, err)
	}
	return data, nil
}

// WithPhoto returns a copy carrying data as the photo. Empty data clears it.
func (p Profile) WithPhoto(data []byte) Profile {
	out := p.Clone()
	if len(data) == 0 {
		out.PhotoBase64 = nil
		return out
	}
	encoded := base64.StdEncoding.EncodeToString(data)
	out.PhotoBase64 = &encoded
	return out
}

// SniffMIME reports the image type of data, falling back to DefaultPhotoMIME.
func SniffMIME(data []byte) string {
	mime := http.DetectContentType(data)
	if strings.HasPrefix(mime, "image/") {
		return mime
	}
	return DefaultPhotoMIME
}
