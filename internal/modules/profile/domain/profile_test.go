package domain

import (
	"errors"
	"testing"

	apperrors "holoalarm/internal/platform/errors"
)

func TestDefaultProfile(t *testing.T) {
	p := Default()
	if p.Name != "User" || p.VoiceName != "Kore" || p.PhotoBase64 != nil {
		t.Fatalf("unexpected default %+v", p)
	}
}

func TestPhotoRoundTrip(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n0000")
	p := Default().WithPhoto(png)
	if !p.HasPhoto() {
		t.Fatalf("expected photo")
	}
	got, err := p.Photo()
	if err != nil || string(got) != string(png) {
		t.Fatalf("photo round trip: %q %v", got, err)
	}
	if SniffMIME(got) != "image/png" {
		t.Fatalf("expected image/png, got %s", SniffMIME(got))
	}
	if cleared := p.WithPhoto(nil); cleared.HasPhoto() {
		t.Fatalf("empty data must clear the photo")
	}
}

func TestPhotoMissingIsInvalidInput(t *testing.T) {
	if _, err := Default().Photo(); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSniffMIMEDefaultsToPNG(t *testing.T) {
	if got := SniffMIME([]byte("not an image")); got != DefaultPhotoMIME {
		t.Fatalf("got %s", got)
	}
	if got := SniffMIME([]byte("\xff\xd8\xff\xe0jpegdata")); got != "image/jpeg" {
		t.Fatalf("got %s", got)
	}
}

func TestCloneDoesNotAliasPhoto(t *testing.T) {
	p := Default().WithPhoto([]byte("abc"))
	c := p.Clone()
	*c.PhotoBase64 = "changed"
	if *p.PhotoBase64 == "changed" {
		t.Fatalf("clone aliases photo")
	}
}

func TestNextVoiceCycles(t *testing.T) {
	if got := NextVoice("Kore", 1); got != "Puck" {
		t.Fatalf("got %s", got)
	}
	if got := NextVoice("Fenrir", 1); got != "Kore" {
		t.Fatalf("got %s", got)
	}
	if got := NextVoice("Kore", -1); got != "Fenrir" {
		t.Fatalf("got %s", got)
	}
	if got := NextVoice("Unknown", 1); got != "Kore" {
		t.Fatalf("got %s", got)
	}
	if DescribeVoice("Charon") != "Calm" || DescribeVoice("x") != "Custom" {
		t.Fatalf("unexpected descriptions")
	}
}
