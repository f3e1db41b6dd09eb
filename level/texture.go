package level

import (
	"errors"
	"fmt"
	"image"
	"io"
	"io/fs"
	"path"

	"github.com/sirupsen/logrus"
	"golang.org/x/image/draw"

	"raycaster/engine"
)

var ErrDecodeTexture = errors.New("texture could not be decoded")

// DecodeTexture reads a PNG, JPEG or BMP image into a texture. When size is
// positive the image is resampled to size x size.
func DecodeTexture(r io.Reader, size int) (*engine.Texture, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrDecodeTexture, err)
	}
	return engine.TextureFromImage(normalize(img, size)), format, nil
}

// normalize converts img to NRGBA anchored at the origin, resampling with
// nearest neighbor so texels stay crisp.
func normalize(img image.Image, size int) *image.NRGBA {
	sr := img.Bounds()
	if size <= 0 {
		dst := image.NewNRGBA(image.Rect(0, 0, sr.Dx(), sr.Dy()))
		draw.Draw(dst, dst.Bounds(), img, sr.Min, draw.Src)
		return dst
	}
	dst := image.NewNRGBA(image.Rect(0, 0, size, size))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, sr, draw.Src, nil)
	return dst
}

// LoadTextures decodes one texture per file; files[n-1] is the texture for
// wall code n.
func LoadTextures(fsys fs.FS, files []string, size int, log logrus.FieldLogger) ([]*engine.Texture, error) {
	textures := make([]*engine.Texture, 0, len(files))
	for _, name := range files {
		tex, err := loadTextureFile(fsys, name, size)
		if err != nil {
			return nil, err
		}
		log.WithFields(logrus.Fields{
			"code":    len(textures) + 1,
			"texture": path.Base(name),
			"width":   tex.Width,
			"height":  tex.Height,
		}).Debug("texture loaded")
		textures = append(textures, tex)
	}
	return textures, nil
}

func loadTextureFile(fsys fs.FS, name string, size int) (*engine.Texture, error) {
	file, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	tex, _, err := DecodeTexture(file, size)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return tex, nil
}
