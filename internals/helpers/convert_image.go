package helper

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	xdraw "golang.org/x/image/draw"
)

const (
	// Batas upload mentah (sebelum konversi)
	MaxProfileImageBytes = 5 * 1024 * 1024

	profileImageMaxDim  = 512
	profileImageQuality = 85
)

// NormalizeProfileImage membaca file upload (jpeg/png/webp),
// men-downscale sisi terpanjang ke 512px, lalu encode ulang ke
// webp sebelum disimpan sebagai bytea.
func NormalizeProfileImage(fileHeader *multipart.FileHeader) ([]byte, error) {
	if fileHeader.Size > MaxProfileImageBytes {
		return nil, fmt.Errorf("ukuran gambar melebihi %dMB", MaxProfileImageBytes/(1024*1024))
	}

	src, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("gagal membuka file gambar: %w", err)
	}
	defer src.Close()

	raw, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("gagal membaca file gambar: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		// coba webp sebelum menyerah
		if img, err = webp.Decode(bytes.NewReader(raw)); err != nil {
			return nil, fmt.Errorf("format gambar tidak didukung: %w", err)
		}
	}

	img = downscale(img, profileImageMaxDim)

	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, img, &webp.Options{Quality: profileImageQuality}); err != nil {
		return nil, fmt.Errorf("gagal encode webp: %w", err)
	}
	return buf.Bytes(), nil
}

func downscale(img image.Image, maxDim int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxDim && h <= maxDim {
		return img
	}
	if w >= h {
		return imaging.Resize(img, maxDim, 0, imaging.Lanczos)
	}
	return imaging.Resize(img, 0, maxDim, imaging.Lanczos)
}

// ScaleTo menggambar ulang img ke kanvas w×h (dipakai thumbnail
// roster; kualitas cukup dengan interpolasi bilinear).
func ScaleTo(img image.Image, w, h int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.BiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Over, nil)
	return dst
}
