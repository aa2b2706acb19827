package proxy

import (
	"errors"
	"fmt"
	"image"
	"log"
	"strings"
	"time"

	"github.com/disintegration/imaging"
)

// ImageProxy embeds image.Image and is the raster side of the matrix bridge:
// it loads files, reduces them to 8-bit luminance and writes results back.
// Metadata is appended at each stage to create a processing history.
//
//	metadata  a line of text for each modification of the image
//	Path      the file path if the ImageProxy was loaded from or saved to disk
type ImageProxy struct {
	image.Image
	Config   image.Config
	metadata []string
	Path     string
}

// adds another line of metadata to the ImageProxy
func (ip *ImageProxy) AddMetadata(data string) {
	t := time.Now().Format("2006-01-02 15:04:05")
	ip.metadata = append(ip.metadata, t+"  "+data)
}

// returns all metadata created for the ImageProxy as a single string.
func (ip *ImageProxy) AllMetadata() string {
	var sb strings.Builder
	for _, m := range ip.metadata {
		sb.WriteString(m)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Returns the last element of the metadata slice, or an empty string if the slice is empty.
func (ip *ImageProxy) LastMetadata() string {
	if len(ip.metadata) == 0 {
		return ""
	}
	return ip.metadata[len(ip.metadata)-1]
}

// returns the type of the underlying image.Image
func (ip *ImageProxy) Type() string {
	switch ip.Image.(type) {
	case *image.Gray:
		return "Gray 8 bit"
	case *image.Gray16:
		return "Gray 16 bit"
	case *image.RGBA:
		return "RGBA 8 bit"
	case *image.NRGBA:
		return "NRGBA 8 bit"
	case *image.RGBA64:
		return "RGBA 16 bit"
	case *image.NRGBA64:
		return "NRGBA 16 bit"
	case *image.YCbCr:
		return "YCbCr"
	case *image.NYCbCrA:
		return "NYCbCrA"
	case *image.CMYK:
		return "CMYK"
	case *image.Paletted:
		return "Paletted"
	case nil:
		return "Empty"
	}
	return "Unknown"
}

// loads an image from a file. A path without an extension is read as PNG.
func (ip *ImageProxy) LoadFromFile(path string) error {
	path = withDefaultExt(path)
	im, err := imaging.Open(path)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	b := im.Bounds()
	ip.Image = im
	ip.Config = image.Config{ColorModel: im.ColorModel(), Width: b.Dx(), Height: b.Dy()}
	ip.Path = path
	ip.AddMetadata("Loaded from " + path)
	log.Printf("loaded %s (%s, %dx%d)", path, ip.Type(), b.Dx(), b.Dy())
	return nil
}

// NewImageProxyFromSamples wraps a row-major plane of 8-bit luminance
// samples as a Gray image.
func NewImageProxyFromSamples(width, height int, raw []uint8) (*ImageProxy, error) {
	if width < 0 || height < 0 || len(raw) != width*height {
		return nil, fmt.Errorf("image %dx%d from %d samples: %w", width, height, len(raw), ErrContractViolation)
	}
	im := image.NewGray(image.Rect(0, 0, width, height))
	copy(im.Pix, raw)
	ip := &ImageProxy{
		Image:  im,
		Config: image.Config{ColorModel: im.ColorModel(), Width: width, Height: height},
	}
	ip.AddMetadata("Gray 8 created from samples")
	return ip, nil
}

// Luminance reduces the image to one 8-bit luminance channel and returns it
// row-major, ready for BuildMatrix.
func (ip *ImageProxy) Luminance() (width, height int, raw []uint8, err error) {
	if ip.Image == nil {
		return 0, 0, nil, errors.New("proxy: no image loaded")
	}
	b := ip.Bounds()
	width, height = b.Dx(), b.Dy()

	if g, ok := ip.Image.(*image.Gray); ok {
		raw = make([]uint8, 0, width*height)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			off := g.PixOffset(b.Min.X, y)
			raw = append(raw, g.Pix[off:off+width]...)
		}
		return width, height, raw, nil
	}

	// Grayscale writes the same luma value to R, G and B
	gray := imaging.Grayscale(ip.Image)
	raw = make([]uint8, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			raw[y*width+x] = gray.Pix[y*gray.Stride+4*x]
		}
	}
	return width, height, raw, nil
}

// writes the image to path, the format being chosen from its extension.
func (ip *ImageProxy) Save(path string) error {
	if err := CheckWritable(path); err != nil {
		return err
	}
	path = withDefaultExt(path)
	if err := imaging.Save(ip.Image, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	ip.Path = path
	ip.AddMetadata("Saved to " + path)
	log.Printf("saved %s", path)
	return nil
}

// MakePyramid returns the image followed by successive Gaussian halvings,
// stopping once the shorter side is no larger than minsize.
func (ip *ImageProxy) MakePyramid(minsize int) ([]*ImageProxy, error) {
	h := min(ip.Bounds().Dx(), ip.Bounds().Dy())
	if h < minsize || minsize < 1 {
		return nil, fmt.Errorf("pyramid of %dx%d to %d: image is already smaller than the required minimum", ip.Bounds().Dx(), ip.Bounds().Dy(), minsize)
	}

	layers := []*ImageProxy{ip}
	for h > minsize {
		layers = append(layers, layers[len(layers)-1].halveImage())
		h /= 2
	}
	return layers, nil
}

// ReduceTo halves the image until neither side exceeds maxSide. A
// non-positive maxSide returns the image unchanged.
func (ip *ImageProxy) ReduceTo(maxSide int) *ImageProxy {
	out := ip
	if maxSide <= 0 {
		return out
	}
	for max(out.Bounds().Dx(), out.Bounds().Dy()) > maxSide {
		out = out.halveImage()
	}
	return out
}

func (ip *ImageProxy) halveImage() *ImageProxy {
	b := ip.Bounds()
	w, h := max(1, b.Dx()/2), max(1, b.Dy()/2)
	op := &ImageProxy{Image: imaging.Resize(ip.Image, w, h, imaging.Gaussian), Path: ip.Path}
	op.Config = image.Config{ColorModel: op.ColorModel(), Width: w, Height: h}
	op.metadata = append([]string(nil), ip.metadata...)
	op.AddMetadata("Gaussian resample + reduction")
	return op
}
