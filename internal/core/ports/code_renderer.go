package ports

import "context"

// CodeRenderer turns a packing-code payload into a stored, scannable image.
type CodeRenderer interface {
	// Render encodes payload as a width x height image stored under filename and
	// returns the storage path.
	Render(ctx context.Context, payload string, width, height int, filename string) (string, error)

	// Delete removes the image stored under filename. Missing images are not an error.
	Delete(ctx context.Context, filename string) error
}
