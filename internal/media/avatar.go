package media

import (
	"bytes"
	"errors"
	"image"
	"image/draw"
	"mime"
	"net/http"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/chai2010/webp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP decoder
)

// ErrInvalidImage marks data that cannot be decoded as a supported image.
var ErrInvalidImage = errors.New("invalid image data")

const (
	// AvatarSize is the edge length every stored avatar is normalized to.
	AvatarSize = 512
	// AvatarWebPQuality balances quality against avatar payload size.
	AvatarWebPQuality = 80
)

// NormalizeAvatar validates an uploaded avatar image, center-crops it to a
// square, scales it to AvatarSize and re-encodes it as WebP. Returns the
// encoded bytes and their content type.
func NormalizeAvatar(data []byte) ([]byte, string, error) {
	if len(data) == 0 {
		return nil, "", ErrInvalidImage
	}
	if !isAllowedAvatarMIME(http.DetectContentType(data)) {
		return nil, "", ErrInvalidImage
	}

	decoded, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", ErrInvalidImage
	}
	switch strings.ToLower(format) {
	case "jpeg", "jpg", "png", "gif", "webp":
	default:
		return nil, "", ErrInvalidImage
	}

	square := centerCropSquare(decoded)
	scaled := scaleTo(square, AvatarSize)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, scaled, &webp.Options{Quality: AvatarWebPQuality}); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), "image/webp", nil
}

func isAllowedAvatarMIME(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(contentType))
	}
	switch mediaType {
	case "image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp":
		return true
	default:
		return false
	}
}

func centerCropSquare(src image.Image) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == h {
		return src
	}

	edge := w
	if h < edge {
		edge = h
	}
	x := b.Min.X + (w-edge)/2
	y := b.Min.Y + (h-edge)/2

	dst := image.NewRGBA(image.Rect(0, 0, edge, edge))
	draw.Draw(dst, dst.Bounds(), src, image.Point{X: x, Y: y}, draw.Src)
	return dst
}

func scaleTo(src image.Image, size int) image.Image {
	b := src.Bounds()
	if b.Dx() == size && b.Dy() == size {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Over, nil)
	return dst
}
