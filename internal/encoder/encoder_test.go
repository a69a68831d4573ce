package encoder

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/chai2010/webp"
)

func testImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8((x * 7) % 256), G: uint8((y * 5) % 256),
				B: uint8((x + y) % 256), A: 255,
			})
		}
	}
	return img
}

func TestParseFormat(t *testing.T) {
	cases := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"auto", Auto, false},
		{"", Auto, false},
		{"png", PNG, false},
		{"PNG", PNG, false},
		{"jpeg", JPEG, false},
		{"jpg", JPEG, false},
		{"webp", WebP, false},
		{"avif", AVIF, false},
		{"heic", "", true},
	}
	for _, tc := range cases {
		got, err := ParseFormat(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("%q: expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("%q: got %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestFamily(t *testing.T) {
	cases := map[string]Format{
		"png":  PNG,
		"jpg":  JPEG,
		"JPEG": JPEG,
		"webp": WebP,
		"avif": AVIF,
		"gif":  "",
		"bmp":  "",
		"":     "",
	}
	for in, want := range cases {
		if got := Family(in); got != want {
			t.Errorf("Family(%q): got %q, want %q", in, got, want)
		}
	}
}

func TestJPEGEncoder_Roundtrip(t *testing.T) {
	enc := &JPEGEncoder{}
	data, err := enc.Encode(testImage(64, 64), 80, DefaultEffort)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if img.Bounds().Dx() != 64 {
		t.Errorf("width: got %d", img.Bounds().Dx())
	}
}

func TestJPEGEncoder_QualityAffectsSize(t *testing.T) {
	enc := &JPEGEncoder{}
	img := testImage(128, 128)

	low, err := enc.Encode(img, 10, DefaultEffort)
	if err != nil {
		t.Fatalf("encode q10: %v", err)
	}
	high, err := enc.Encode(img, 95, DefaultEffort)
	if err != nil {
		t.Fatalf("encode q95: %v", err)
	}
	if len(high) <= len(low) {
		t.Errorf("q95 (%d bytes) should be larger than q10 (%d bytes)", len(high), len(low))
	}
}

func TestPNGEncoder_Roundtrip(t *testing.T) {
	enc := &PNGEncoder{}
	data, err := enc.Encode(testImage(32, 32), 0, 9)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := png.Decode(bytes.NewReader(data)); err != nil {
		t.Fatalf("decode output: %v", err)
	}
}

func TestPNGLevel(t *testing.T) {
	if pngLevel(0) != png.BestSpeed {
		t.Error("effort 0 should map to BestSpeed")
	}
	if pngLevel(4) != png.DefaultCompression {
		t.Error("effort 4 should map to DefaultCompression")
	}
	if pngLevel(9) != png.BestCompression {
		t.Error("effort 9 should map to BestCompression")
	}
}

func TestWebPEncoder_Roundtrip(t *testing.T) {
	enc := &WebPEncoder{}
	data, err := enc.Encode(testImage(48, 48), 75, DefaultEffort)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	img, err := webp.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if img.Bounds().Dx() != 48 {
		t.Errorf("width: got %d", img.Bounds().Dx())
	}
}

func TestAVIFEncoder_SkipsWhenMissing(t *testing.T) {
	enc := &AVIFEncoder{}
	if !enc.Available() {
		t.Skip("avifenc not installed")
	}
	data, err := enc.Encode(testImage(32, 32), 60, DefaultEffort)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if len(data) == 0 {
		t.Error("empty avif output")
	}
}

type fakeEncoder struct {
	format    Format
	available bool
}

func (f *fakeEncoder) Format() Format    { return f.format }
func (f *fakeEncoder) Extension() string { return string(f.format) }
func (f *fakeEncoder) Available() bool   { return f.available }
func (f *fakeEncoder) Encode(image.Image, int, int) ([]byte, error) {
	return []byte{0x1}, nil
}

func TestRegistry_FiltersUnavailable(t *testing.T) {
	r := NewRegistryWith(
		&fakeEncoder{format: WebP, available: true},
		&fakeEncoder{format: AVIF, available: false},
	)
	if r.Get(WebP) == nil {
		t.Error("webp should be registered")
	}
	if r.Get(AVIF) != nil {
		t.Error("unavailable avif should not be registered")
	}
	if got := r.String(); got != "encoders: webp" {
		t.Errorf("String: got %q", got)
	}
}

func TestRegistry_AvailableOrder(t *testing.T) {
	r := NewRegistryWith(
		&fakeEncoder{format: PNG, available: true},
		&fakeEncoder{format: WebP, available: true},
		&fakeEncoder{format: JPEG, available: true},
	)
	got := r.Available()
	want := []Format{WebP, JPEG, PNG}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
