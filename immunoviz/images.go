package immunoviz

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	_ "image/gif"

	"github.com/carbocation/pfx"
	"github.com/tdewolff/canvas/renderers"
	_ "golang.org/x/image/bmp"
)

// ImageFromBytes creates an image from the specified bytes. Must be PNG, GIF,
// BMP, or JPEG formatted (based on the decoders we have imported).
func ImageFromBytes(imgBytes []byte) (image.Image, error) {
	imgReader := bytes.NewReader(imgBytes)

	// Extract and decode the image.
	img, _, err := image.Decode(imgReader)

	return img, err
}

func SavePNG(img image.Image, outName string) error {
	f, err := os.OpenFile(outName, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	return png.Encode(f, img)
}

func SaveJPEG(img image.Image, outName string) error {
	f, err := os.OpenFile(outName, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	return jpeg.Encode(f, img, &jpeg.Options{Quality: 95})
}

// WriteFigure saves one protein's figure, picking the backend from the file
// extension. PNG and JPEG rasterize directly; PDF and SVG embed the raster
// in a vector page at the configured physical size.
func WriteFigure(data PlotData, cfg JSONConfig, outName string) error {
	switch strings.ToLower(filepath.Ext(outName)) {
	case ".png":
		img, err := RenderImage(data, cfg)
		if err != nil {
			return err
		}

		return SavePNG(img, outName)
	case ".jpg", ".jpeg":
		img, err := RenderImage(data, cfg)
		if err != nil {
			return err
		}

		return SaveJPEG(img, outName)
	case ".pdf", ".svg":
		c, err := Render(data, cfg)
		if err != nil {
			return err
		}

		return pfx.Err(renderers.Write(outName, c))
	}

	return pfx.Err(fmt.Errorf("unsupported figure format %q (want png, jpg, pdf, or svg)", filepath.Ext(outName)))
}
