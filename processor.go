package pixfill

import (
	"image"
	"io"
	"os"

	"github.com/esimov/pixfill/utils"
	"github.com/pkg/errors"
)

// Processor options
type Processor struct {
	// X and Y are the coordinates of the seed pixel of the flood fill.
	X, Y int
	// FillColor is the replacement color in #RRGGBB notation.
	FillColor string
	// ScriptPath points to a paint script replayed over the image instead of the single fill.
	ScriptPath string
	// UndoLimit is the number of snapshots kept by the paint history.
	UndoLimit int
	Spinner   *utils.Spinner

	script *Script
}

// Prepare validates the options before any image gets decoded.
// It is called by Process, but it can be invoked up front when the same
// options are used over many images.
func (p *Processor) Prepare() error {
	if p.ScriptPath != "" {
		if p.script != nil {
			return nil
		}
		f, err := os.Open(p.ScriptPath)
		if err != nil {
			return errors.Wrap(err, "cannot open the paint script")
		}
		defer f.Close()

		p.script, err = ParseScript(f)
		if err != nil {
			return errors.Wrapf(err, "cannot parse the paint script %s", p.ScriptPath)
		}
		return nil
	}
	if _, err := ParseColor(p.FillColor); err != nil {
		return errors.Wrap(err, "cannot use the fill color")
	}
	return nil
}

// Paint applies the fill, or the paint script, over img and returns the resulting image.
func (p *Processor) Paint(img image.Image) (*image.NRGBA, error) {
	if err := p.Prepare(); err != nil {
		return nil, err
	}
	pa := NewPaint(NewCanvasFromImage(img), p.UndoLimit)

	if p.script != nil {
		if err := p.script.Run(pa); err != nil {
			return nil, errors.Wrap(err, "cannot run the paint script")
		}
		return pa.Canvas().Image(), nil
	}
	if err := pa.SetColor(p.FillColor); err != nil {
		return nil, errors.Wrap(err, "cannot use the fill color")
	}
	if err := pa.Bucket(image.Pt(p.X, p.Y)); err != nil {
		return nil, errors.Wrap(err, "cannot fill the image")
	}
	return pa.Canvas().Image(), nil
}

// Process decodes the image from r, paints over it and encodes the result to w.
// The output format is selected by the extension of w when it's a file.
func (p *Processor) Process(r io.Reader, w io.Writer) error {
	if err := p.Prepare(); err != nil {
		return err
	}

	src, err := decodeImg(r)
	if err != nil {
		return errors.Wrap(err, "cannot decode the source image")
	}

	img, err := p.Paint(src)
	if err != nil {
		return err
	}
	Logger().Info("image painted",
		"width", img.Bounds().Dx(),
		"height", img.Bounds().Dy(),
		"seed", image.Pt(p.X, p.Y),
		"script", p.ScriptPath,
	)

	if err := encodeImg(w, img); err != nil {
		return errors.Wrap(err, "cannot encode the destination image")
	}
	return nil
}
