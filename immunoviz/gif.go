package immunoviz

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"os"
	"runtime"

	"github.com/carbocation/go-quantize/quantize"
	"github.com/carbocation/pfx"
)

type orderedPaletted struct {
	key   int
	image *image.Paletted
}

// AnimateSamples renders the figure once per sample, each frame carrying
// only that sample's density track, and assembles the frames into an
// animated GIF. The delay between frames is cfg.GIFDelay in hundredths of a
// second.
func AnimateSamples(data PlotData, cfg JSONConfig) (*gif.GIF, error) {
	samples := cfg.Samples
	if len(samples) == 0 {
		names := make([]string, 0, len(data.Profiles))
		for _, p := range data.Profiles {
			names = append(names, p.Sample)
		}
		samples = SampleMapFromNames(names)
	}

	tracks := samples.Sorted()
	if len(tracks) == 0 || len(data.Profiles) == 0 {
		return nil, pfx.Err(fmt.Errorf("protein %s has no sample profiles to animate", data.Protein))
	}

	frames := make([]image.Image, 0, len(tracks))
	for i, s := range tracks {
		// Pin the fallback color so the sample keeps its hue when it is
		// the only entry in the frame's map
		if s.Color == "" {
			s.Color = DefaultSampleColors[i%len(DefaultSampleColors)]
		}

		frameCfg := cfg
		frameCfg.Samples = SampleMap{s.Sample: s}

		frame, err := RenderImage(data, frameCfg)
		if err != nil {
			return nil, err
		}
		frames = append(frames, frame)
	}

	return MakeGIF(frames, cfg.GIFDelay)
}

// MakeGIF creates an animated gif from an ordered slice of frames. The color
// quantizer is built from *all* input frames, and the quantized palette is
// shared across all of the output frames.
func MakeGIF(sortedImages []image.Image, delay int) (*gif.GIF, error) {
	outGif := &gif.GIF{}

	quantizer := quantize.MedianCutQuantizer{
		Aggregation:    quantize.Mean,
		Weighting:      nil,
		AddTransparent: false,
	}

	pal := quantizer.QuantizeMultiple(make([]color.Color, 0, 256), sortedImages)

	// Convert each image to a frame in our animated gif
	palettedImages := make(chan orderedPaletted)
	semaphore := make(chan struct{}, runtime.NumCPU())

	// This is surprisingly slow and so is worth parallelizing.
	go func() {
		for k, img := range sortedImages {
			semaphore <- struct{}{}

			go func(k int, img image.Image) {
				defer func() { <-semaphore }()

				palettedImage := image.NewPaletted(img.Bounds(), pal)
				draw.Draw(palettedImage, img.Bounds(), img, image.Point{}, draw.Over)

				palettedImages <- orderedPaletted{
					key:   k,
					image: palettedImage,
				}
			}(k, img)
		}
	}()

	// Save the outputs - in order
	sortedPalettedImages := make([]*image.Paletted, len(sortedImages))
	for range sortedImages {
		palettedImage := <-palettedImages
		sortedPalettedImages[palettedImage.key] = palettedImage.image
	}

	// Assemble into a gif
	for _, palettedImage := range sortedPalettedImages {
		outGif.Image = append(outGif.Image, palettedImage)
		outGif.Delay = append(outGif.Delay, delay)
	}

	return outGif, nil
}

// SaveGIF writes the assembled animation to disk.
func SaveGIF(g *gif.GIF, outName string) error {
	f, err := os.Create(outName)
	if err != nil {
		return pfx.Err(err)
	}
	defer f.Close()

	return pfx.Err(gif.EncodeAll(f, g))
}
