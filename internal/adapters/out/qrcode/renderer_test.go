package qrcode_test

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"io"
	"strings"
	"testing"

	"shopfloor/internal/adapters/out/blob"
	"shopfloor/internal/adapters/out/qrcode"
	"shopfloor/internal/core/domain/model/part"
	"shopfloor/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockStore struct {
	mock.Mock
	body []byte
}

func (m *MockStore) Put(ctx context.Context, key string, r io.Reader, contentType string) (string, error) {
	m.body, _ = io.ReadAll(r)
	args := m.Called(ctx, key, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

const payload = "Part ID: 0b8f8a52-8f7e-4a6e-9d3c-2f3b1c7d9e10\nProject ID: 42\nCustomPart: Bracket A\nMaterial: S275\nWeight: 12.5\nClient: ACME North"

func TestRenderer_Render_StoresSquarePNG(t *testing.T) {
	ctx := context.Background()
	store := new(MockStore)
	store.On("Put", ctx, "x_packing_qr.png", qrcode.ContentType).Return("codes/x_packing_qr.png", nil)

	location, err := qrcode.NewRenderer(store).Render(ctx, payload, 300, 300, "x_packing_qr.png")

	require.NoError(t, err)
	assert.Equal(t, "codes/x_packing_qr.png", location)

	cfg, err := png.DecodeConfig(bytes.NewReader(store.body))
	require.NoError(t, err)
	assert.Equal(t, 300, cfg.Width)
	assert.Equal(t, 300, cfg.Height)
	store.AssertExpectations(t)
}

func TestRenderer_Render_UsesSmallerSide(t *testing.T) {
	ctx := context.Background()
	store := new(MockStore)
	store.On("Put", ctx, "x.png", qrcode.ContentType).Return("x.png", nil)

	_, err := qrcode.NewRenderer(store).Render(ctx, payload, 400, 256, "x.png")

	require.NoError(t, err)
	cfg, err := png.DecodeConfig(bytes.NewReader(store.body))
	require.NoError(t, err)
	assert.Equal(t, 256, cfg.Width)
}

func TestRenderer_Render_LongestNamesFit(t *testing.T) {
	ctx := context.Background()
	store := new(MockStore)
	store.On("Put", ctx, "x.png", qrcode.ContentType).Return("x.png", nil)

	name := strings.Repeat("𝔸", part.MaxNameLength)
	longest := strings.Join([]string{
		"Part ID: 0b8f8a52-8f7e-4a6e-9d3c-2f3b1c7d9e10",
		"Project ID: 9223372036854775807",
		"CustomPart: " + name,
		"Material: " + name,
		"Weight: 123456.789",
		"Client: " + strings.Repeat("𝔸", 50),
	}, "\n")

	_, err := qrcode.NewRenderer(store).Render(ctx, longest, 300, 300, "x.png")

	require.NoError(t, err)
	store.AssertExpectations(t)
}

func TestRenderer_Render_Invalid(t *testing.T) {
	renderer := qrcode.NewRenderer(new(MockStore))

	_, err := renderer.Render(context.Background(), "", 300, 300, "x.png")
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = renderer.Render(context.Background(), payload, 0, 300, "x.png")
	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestRenderer_Render_StoreFailure(t *testing.T) {
	ctx := context.Background()
	store := new(MockStore)
	storeErr := errors.New("disk full")
	store.On("Put", ctx, "x.png", qrcode.ContentType).Return("", storeErr)

	_, err := qrcode.NewRenderer(store).Render(ctx, payload, 300, 300, "x.png")

	assert.ErrorIs(t, err, storeErr)
}

func TestRenderer_WithFilesystemStore(t *testing.T) {
	ctx := context.Background()
	store, err := blob.NewFilesystemStore(t.TempDir())
	require.NoError(t, err)
	renderer := qrcode.NewRenderer(store)

	location, err := renderer.Render(ctx, payload, 120, 120, "y_packing_qr.png")
	require.NoError(t, err)
	assert.FileExists(t, location)

	require.NoError(t, renderer.Delete(ctx, "y_packing_qr.png"))
	assert.NoFileExists(t, location)
}
