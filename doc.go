/*
Package pixfill is a paint bucket (flood fill) library for raster images, together with
the drawing tools of a small paint program: lines, rectangles, circles, triangles,
pencil, brush and eraser strokes with a bounded undo history.

The flood fill repaints the 4-connected region of pixels sharing the exact RGBA color
of the seed pixel. It works in waves over a pixel buffer, so regions of any size
are filled without recursion.

The package provides a command line interface which fills the image at the given coordinates
or replays a paint script over it. To check the supported commands type:

	$ pixfill --help

In case you wish to integrate the API in a self constructed environment here is a simple example:

	package main

	import (
		"fmt"
		"image"

		"github.com/esimov/pixfill"
	)

	func main() {
		buf := pixfill.BufferFromImage(img)
		n := pixfill.Fill(buf, image.Pt(10, 10), pixfill.MustParseColor("#ff0000"))
		fmt.Printf("%d pixels repainted\n", n)
	}
*/
package pixfill
