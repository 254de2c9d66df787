package immunoviz

import (
	"sync"

	"github.com/carbocation/pfx"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

var (
	fontOnce    sync.Once
	regularFont *sfnt.Font
	boldFont    *sfnt.Font
	fontErr     error
)

// fontFace rasterizes the bundled sans face at the given pixel height. The
// face is bundled rather than loaded from a system path, so the same text
// renders everywhere.
func fontFace(sizePx float64, bold bool) (font.Face, error) {
	fontOnce.Do(func() {
		regularFont, fontErr = opentype.Parse(goregular.TTF)
		if fontErr != nil {
			return
		}
		boldFont, fontErr = opentype.Parse(gobold.TTF)
	})
	if fontErr != nil {
		return nil, pfx.Err(fontErr)
	}

	src := regularFont
	if bold {
		src = boldFont
	}

	face, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    sizePx,
		DPI:     72,
		Hinting: font.HintingFull,
	})

	return face, pfx.Err(err)
}
