package pixfill

import (
	"bytes"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
)

// failReader fails the test when the processor tries to decode the image.
type failReader struct{ t *testing.T }

func (r failReader) Read([]byte) (int, error) {
	r.t.Fatal("the source image should not be read")
	return 0, nil
}

// newSplitImage returns a PNG encoded white image split in two by a black column.
func newSplitImage(t *testing.T, w, h int) []byte {
	buf := newUniformBuffer(w, h, white)
	for y := 0; y < h; y++ {
		buf.Set(image.Pt(w/2, y), black)
	}
	var b bytes.Buffer
	assert.NoError(t, imaging.Encode(&b, buf.Image(), imaging.PNG))
	return b.Bytes()
}

func processToFile(t *testing.T, p *Processor, src []byte, name string) *Buffer {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	assert.NoError(t, err)

	err = p.Process(bytes.NewReader(src), f)
	assert.NoError(t, f.Close())
	if !assert.NoError(t, err) {
		t.FailNow()
	}

	img, err := imaging.Open(path)
	assert.NoError(t, err)
	return BufferFromImage(img)
}

func TestProcessor_Fill(t *testing.T) {
	p := &Processor{X: 1, Y: 1, FillColor: "#ff0000"}
	out := processToFile(t, p, newSplitImage(t, 9, 5), "out.png")

	assert.Equal(t, 9, out.Width())
	assert.Equal(t, 5, out.Height())
	assert.Equal(t, red, out.Get(image.Pt(0, 0)))
	assert.Equal(t, red, out.Get(image.Pt(3, 4)))
	assert.Equal(t, black, out.Get(image.Pt(4, 2)))
	assert.Equal(t, white, out.Get(image.Pt(8, 4)))
}

func TestProcessor_SeedOutsideKeepsImage(t *testing.T) {
	p := &Processor{X: 100, Y: -3, FillColor: "#ff0000"}
	out := processToFile(t, p, newSplitImage(t, 9, 5), "out.png")

	assert.Equal(t, white, out.Get(image.Pt(0, 0)))
	assert.Equal(t, black, out.Get(image.Pt(4, 0)))
}

func TestProcessor_Script(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "paint.txt")
	assert.NoError(t, os.WriteFile(script, []byte("color #ff0000\nfill 8 0\ncolor #000000\nfill 0 0\n"), 0o644))

	p := &Processor{ScriptPath: script}
	out := processToFile(t, p, newSplitImage(t, 9, 5), "out.png")

	assert.Equal(t, black, out.Get(image.Pt(0, 0)))
	assert.Equal(t, black, out.Get(image.Pt(4, 0)))
	assert.Equal(t, red, out.Get(image.Pt(8, 4)))
}

func TestProcessor_InvalidOptions(t *testing.T) {
	p := &Processor{FillColor: "#12345"}
	err := p.Process(failReader{t}, &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrInvalidColor)

	p = &Processor{ScriptPath: filepath.Join(t.TempDir(), "missing.txt")}
	err = p.Process(failReader{t}, &bytes.Buffer{})
	assert.ErrorIs(t, err, os.ErrNotExist)

	script := filepath.Join(t.TempDir(), "bad.txt")
	assert.NoError(t, os.WriteFile(script, []byte("spray 1 1\n"), 0o644))
	p = &Processor{ScriptPath: script}
	err = p.Process(failReader{t}, &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrScriptSyntax)
}

func TestProcessor_EncodesJPEGToPipes(t *testing.T) {
	p := &Processor{X: 0, Y: 0, FillColor: "#00ff00"}

	var b bytes.Buffer
	assert.NoError(t, p.Process(bytes.NewReader(newSplitImage(t, 16, 16)), &b))

	img, format, err := image.Decode(&b)
	assert.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, image.Rect(0, 0, 16, 16), img.Bounds())
}

func TestProcessor_BadSource(t *testing.T) {
	p := &Processor{FillColor: "#00ff00"}
	err := p.Process(bytes.NewReader([]byte("not an image")), &bytes.Buffer{})
	assert.Error(t, err)
}
