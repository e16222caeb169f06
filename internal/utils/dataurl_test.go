package utils

import (
	"bytes"
	"testing"
)

func TestDataURLRoundTrip(t *testing.T) {
	data := make([]byte, 10*1024)
	for i := range data {
		data[i] = byte(i * 7)
	}

	u := EncodeDataURL("application/pdf", data)
	if !bytes.HasPrefix([]byte(u), []byte("data:application/pdf;base64,")) {
		t.Fatalf("unexpected prefix: %.40s", u)
	}

	mimeType, got, err := DecodeDataURL(u)
	if err != nil {
		t.Fatalf("DecodeDataURL: %v", err)
	}
	if mimeType != "application/pdf" {
		t.Errorf("mime = %q", mimeType)
	}
	if !bytes.Equal(got, data) {
		t.Error("decoded bytes differ from input")
	}
}

func TestEncodeDataURLDefaultsMime(t *testing.T) {
	if got := EncodeDataURL("", []byte("hi")); got != "data:application/octet-stream;base64,aGk=" {
		t.Errorf("got %q", got)
	}
}

func TestDecodeDataURLRejects(t *testing.T) {
	for _, s := range []string{
		"",
		"http://example.com",
		"data:text/plain",
		"data:text/plain,hello",
		"data:text/plain;base64,***",
	} {
		if _, _, err := DecodeDataURL(s); err == nil {
			t.Errorf("DecodeDataURL(%q) should fail", s)
		}
	}
}
