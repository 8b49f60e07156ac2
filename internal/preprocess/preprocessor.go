package preprocess

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"log"
	"strings"

	"github.com/disintegration/imaging"

	"posyandu/internal/domain"
	"posyandu/internal/port"
)

const (
	// Minimum width expected by downstream table detection. Images narrower
	// than this are scaled up; wider images are never scaled down.
	minWidth = 1500

	// White border added on all sides so a table flush against the photo
	// edge survives later geometric operations.
	borderPad = 20

	jpegQuality = 95
)

// Preprocessor normalizes a raw register photograph into a stable geometric
// and photometric baseline and persists the result to the document store.
type Preprocessor struct {
	storage port.ObjectStorage
	bucket  string
}

// New creates a Preprocessor backed by the given document store.
func New(storage port.ObjectStorage, bucket string) *Preprocessor {
	return &Preprocessor{storage: storage, bucket: bucket}
}

// Process decodes, normalizes and persists one image. It returns the
// normalized pixel buffer together with the storage path it was written to.
func (p *Preprocessor) Process(ctx context.Context, imageBytes []byte, originalPath string) (image.Image, string, error) {
	// Orientation correction from capture metadata. A non-conformant image
	// proceeds unrotated; decode errors are the only fatal case.
	src, err := imaging.Decode(bytes.NewReader(imageBytes), imaging.AutoOrientation(true))
	if err != nil {
		return nil, "", fmt.Errorf("preprocess: decoding image: %w", err)
	}

	img := imaging.Clone(src)
	if img.Bounds().Dx() == 0 || img.Bounds().Dy() == 0 {
		return nil, "", domain.ErrEmptyImage
	}

	// Upscale-only resize, preserving aspect ratio.
	if w := img.Bounds().Dx(); w < minWidth {
		img = imaging.Resize(img, minWidth, 0, imaging.CatmullRom)
	}

	img = deskew(img)
	img = bilateralFilter(img, 4, 75, 75)
	img = equalizeLuminance(img)

	padded := imaging.New(img.Bounds().Dx()+2*borderPad, img.Bounds().Dy()+2*borderPad, color.White)
	img = imaging.Paste(padded, img, image.Pt(borderPad, borderPad))

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, "", fmt.Errorf("preprocess: encoding normalized image: %w", err)
	}

	path := PreprocessedPath(originalPath)
	if _, err := p.storage.Upload(ctx, port.UploadInput{
		Bucket:      p.bucket,
		Key:         path,
		Body:        &buf,
		ContentType: "image/jpeg",
	}); err != nil {
		return nil, "", fmt.Errorf("preprocess: uploading normalized image: %w", err)
	}

	log.Printf("preprocess: normalized %s -> %s (%dx%d)",
		originalPath, path, img.Bounds().Dx(), img.Bounds().Dy())
	return img, path, nil
}

// PreprocessedPath derives the storage path for the normalized image:
// "uploads/abc/file.jpg" becomes "preprocessed/abc/file.jpg".
func PreprocessedPath(originalPath string) string {
	parts := strings.SplitN(originalPath, "/", 2)
	if len(parts) == 2 {
		return "preprocessed/" + parts[1]
	}
	return "preprocessed/" + originalPath
}
