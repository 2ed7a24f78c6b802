package collection

import (
	"fmt"
	"image"
	"image/color"
	"os"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/webp"

	"github.com/imgsift/imgsift/internal/logging"
)

// BMP and TIFF decoders are registered transitively through imaging.

// DefaultText is returned when no text preview is available.
const DefaultText = "Either the collection is empty or the selected item is not a text file."

type cacheEntry struct {
	img  image.Image
	hint int
	text string
}

var placeholder = makePlaceholder()

// makePlaceholder draws the fixed fallback image, a dim checkerboard.
func makePlaceholder() image.Image {
	const size, square = 64, 8
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	light := color.NRGBA{R: 0x3a, G: 0x3a, B: 0x3a, A: 0xff}
	dark := color.NRGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xff}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (x/square+y/square)%2 == 0 {
				img.SetNRGBA(x, y, dark)
			} else {
				img.SetNRGBA(x, y, light)
			}
		}
	}
	return img
}

// Placeholder returns the image shown when no preview can be produced.
func Placeholder() image.Image {
	return placeholder
}

// Preview returns a decoded preview of the selected member fitted inside a
// sizeHint square, or the placeholder when the member is not an image or
// cannot be decoded for any reason. Results are cached per member and
// regenerated when the hint changes.
func (c *Collection) Preview(sizeHint int) image.Image {
	if len(c.Members) == 0 || c.Kind() != KindImage {
		return placeholder
	}

	member := c.Members[c.selected]
	if entry, ok := c.cache[member]; ok && entry.img != nil && entry.hint == sizeHint {
		return entry.img
	}

	img, err := decodeFitted(member, sizeHint)
	if err != nil {
		logging.Debug("preview decode failed",
			logging.String("path", member), logging.Err(err))
		img = placeholder
	}
	if c.cache == nil {
		c.cache = make(map[string]cacheEntry)
	}
	c.cache[member] = cacheEntry{img: img, hint: sizeHint}
	return img
}

// Text returns the selected member's contents when it is a text file, and
// the fixed default message otherwise or when the file cannot be read.
func (c *Collection) Text() string {
	if len(c.Members) == 0 || c.Kind() != KindText {
		return DefaultText
	}

	member := c.Members[c.selected]
	if entry, ok := c.cache[member]; ok {
		return entry.text
	}

	data, err := os.ReadFile(member)
	if err != nil {
		logging.Debug("text preview read failed",
			logging.String("path", member), logging.Err(err))
		return DefaultText
	}
	if c.cache == nil {
		c.cache = make(map[string]cacheEntry)
	}
	c.cache[member] = cacheEntry{text: string(data)}
	return string(data)
}

// decodeFitted decodes an image file, corrects its EXIF orientation, and
// fits it inside a hint x hint box with Lanczos resampling. A hint of zero
// keeps the full decoded size.
func decodeFitted(path string, hint int) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	img = applyOrientation(img, readOrientation(path))
	if hint > 0 {
		bounds := img.Bounds()
		if bounds.Dx() > hint || bounds.Dy() > hint {
			img = imaging.Fit(img, hint, hint, imaging.Lanczos)
		}
	}
	return img, nil
}

// readOrientation extracts the EXIF orientation tag. Files without usable
// EXIF data are upright (1).
func readOrientation(path string) int {
	f, err := os.Open(path)
	if err != nil {
		return 1
	}
	defer func() {
		_ = f.Close()
	}()

	x, err := exif.Decode(f)
	if err != nil {
		return 1
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}
	o, err := tag.Int(0)
	if err != nil || o < 1 || o > 8 {
		return 1
	}
	return o
}

// applyOrientation normalizes an image according to its EXIF orientation.
func applyOrientation(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.Transpose(img)
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.Transverse(img)
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}
