// Package qrcode renders packing-code payloads as PNG QR images and stores them
// through a blob store.
package qrcode

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"shopfloor/internal/pkg/errs"

	qr "github.com/skip2/go-qrcode"
)

// ContentType of the rendered images.
const ContentType = "image/png"

type objectStore interface {
	Put(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// Renderer implements ports.CodeRenderer.
type Renderer struct {
	store objectStore
	level qr.RecoveryLevel
}

// NewRenderer creates a renderer using medium error correction.
func NewRenderer(store objectStore) *Renderer {
	return &Renderer{store: store, level: qr.Medium}
}

// Render encodes payload and stores the PNG under filename. QR codes are square,
// so the smaller of width and height is used as the side length.
func (r *Renderer) Render(ctx context.Context, payload string, width, height int, filename string) (string, error) {
	if payload == "" {
		return "", errs.NewValueIsRequiredError("payload")
	}
	size := min(width, height)
	if size <= 0 {
		return "", errs.NewValueIsOutOfRangeError("size", size, 1, "unbounded")
	}

	code, err := qr.New(payload, r.level)
	if err != nil {
		return "", fmt.Errorf("encode packing code: %w", err)
	}

	png, err := code.PNG(size)
	if err != nil {
		return "", fmt.Errorf("render packing code: %w", err)
	}

	location, err := r.store.Put(ctx, filename, bytes.NewReader(png), ContentType)
	if err != nil {
		return "", fmt.Errorf("store packing code: %w", err)
	}

	return location, nil
}

// Delete removes a rendered image.
func (r *Renderer) Delete(ctx context.Context, filename string) error {
	return r.store.Delete(ctx, filename)
}
