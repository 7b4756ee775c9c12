//go:build linux || freebsd || openbsd || netbsd || dragonfly

package capture

import (
	"fmt"
	"image"

	"github.com/jezek/xgb/xproto"
)

// zpixmapToRGBA converts a ZPixmap reply in the server's native BGRx layout.
func zpixmapToRGBA(formats []xproto.Format, reply *xproto.GetImageReply, width, height int, kind string) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%s has empty geometry", kind)
	}
	if reply == nil || len(reply.Data) == 0 {
		return nil, fmt.Errorf("%s pixels: empty image data", kind)
	}

	bpp := 0
	for _, f := range formats {
		if f.Depth == reply.Depth {
			bpp = int(f.BitsPerPixel) / 8
			break
		}
	}
	if bpp < 3 {
		return nil, fmt.Errorf("unsupported %s depth %d", kind, reply.Depth)
	}
	stride := len(reply.Data) / height
	if stride*height != len(reply.Data) || stride < width*bpp {
		return nil, fmt.Errorf("%s pixels: unexpected stride", kind)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		row := reply.Data[y*stride:]
		dst := img.Pix[y*img.Stride:]
		for x := 0; x < width; x++ {
			src := row[x*bpp:]
			d := dst[x*4:]
			d[0], d[1], d[2] = src[2], src[1], src[0]
			// Depth-24 visuals carry an undefined pad byte, so only depth 32
			// contributes alpha.
			d[3] = 0xFF
			if bpp >= 4 && reply.Depth == 32 {
				d[3] = src[3]
			}
		}
	}
	return img, nil
}
