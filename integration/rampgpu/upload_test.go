// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package rampgpu

import (
	"bytes"
	"errors"
	"testing"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/uigrad"
)

// mockTexture implements gpucontext.Texture, gpucontext.TextureUpdater and
// textureDestroyer for testing.
type mockTexture struct {
	width     int
	height    int
	data      []byte
	destroyed bool
	updated   int
	failNext  bool
}

func (m *mockTexture) Width() int  { return m.width }
func (m *mockTexture) Height() int { return m.height }

func (m *mockTexture) UpdateData(data []byte) error {
	if m.failNext {
		m.failNext = false
		return errors.New("mock update failed")
	}
	m.data = append(m.data[:0], data...)
	m.updated++
	return nil
}

func (m *mockTexture) Destroy() {
	m.destroyed = true
}

// staticTexture implements only gpucontext.Texture.
type staticTexture struct{ w, h int }

func (s *staticTexture) Width() int  { return s.w }
func (s *staticTexture) Height() int { return s.h }

// mockCreator implements gpucontext.TextureCreator for testing.
type mockCreator struct {
	textures []*mockTexture
	static   bool
	failNext bool
}

func (m *mockCreator) NewTextureFromRGBA(width, height int, data []byte) (gpucontext.Texture, error) {
	if m.failNext {
		m.failNext = false
		return nil, errors.New("mock texture creation failed")
	}
	if m.static {
		return &staticTexture{w: width, h: height}, nil
	}
	tex := &mockTexture{width: width, height: height, data: append([]byte(nil), data...)}
	m.textures = append(m.textures, tex)
	return tex, nil
}

func testRamp(width int) *uigrad.RampTexture {
	return uigrad.NewRamp().
		AddColorStop(0, uigrad.Black).
		AddColorStop(1, uigrad.White).
		Bake(width)
}

func TestNewNilCreator(t *testing.T) {
	if _, err := New(nil); !errors.Is(err, ErrNilCreator) {
		t.Errorf("expected ErrNilCreator, got %v", err)
	}
}

func TestUploadCreatesTexture(t *testing.T) {
	creator := &mockCreator{}
	up, err := New(creator)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	src := testRamp(16)
	tex, err := up.Upload(src)
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if len(creator.textures) != 1 {
		t.Fatalf("expected 1 texture created, got %d", len(creator.textures))
	}
	mt := creator.textures[0]
	if tex != gpucontext.Texture(mt) {
		t.Error("Upload did not return the created texture")
	}
	if mt.width != 16 || mt.height != 1 {
		t.Errorf("texture size = %dx%d, want 16x1", mt.width, mt.height)
	}
	if !bytes.Equal(mt.data, src.Data()) {
		t.Error("texture data does not match ramp")
	}
	if up.Texture() != tex {
		t.Error("Texture() does not return the uploaded texture")
	}
}

func TestUploadUpdatesInPlace(t *testing.T) {
	creator := &mockCreator{}
	up, _ := New(creator)

	first, _ := up.Upload(testRamp(16))
	second, err := up.Upload(testRamp(16))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if first != second {
		t.Error("same-width upload should reuse the texture")
	}
	if len(creator.textures) != 1 {
		t.Errorf("expected 1 texture created, got %d", len(creator.textures))
	}
	if creator.textures[0].updated != 1 {
		t.Errorf("expected 1 in-place update, got %d", creator.textures[0].updated)
	}
	if up.Uploads() != 2 {
		t.Errorf("Uploads() = %d, want 2", up.Uploads())
	}
}

func TestUploadRecreatesOnResize(t *testing.T) {
	creator := &mockCreator{}
	up, _ := New(creator)

	_, _ = up.Upload(testRamp(16))
	_, err := up.Upload(testRamp(32))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if len(creator.textures) != 2 {
		t.Fatalf("expected 2 textures created, got %d", len(creator.textures))
	}
	if !creator.textures[0].destroyed {
		t.Error("old texture should be destroyed")
	}
	if creator.textures[1].destroyed {
		t.Error("new texture should not be destroyed")
	}
}

func TestUploadRecreatesWithoutUpdater(t *testing.T) {
	creator := &mockCreator{static: true}
	up, _ := New(creator)

	first, _ := up.Upload(testRamp(8))
	second, err := up.Upload(testRamp(8))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if first == second {
		t.Error("texture without UpdateData should be recreated")
	}
}

func TestUploadCreateFailureKeepsOldTexture(t *testing.T) {
	creator := &mockCreator{}
	up, _ := New(creator)

	old, _ := up.Upload(testRamp(16))
	creator.failNext = true
	if _, err := up.Upload(testRamp(32)); err == nil {
		t.Fatal("expected error from failed creation")
	}
	if up.Texture() != old {
		t.Error("failed upload should keep the previous texture")
	}
	if creator.textures[0].destroyed {
		t.Error("previous texture destroyed by failed upload")
	}
}

func TestUploadUpdateFailure(t *testing.T) {
	creator := &mockCreator{}
	up, _ := New(creator)

	_, _ = up.Upload(testRamp(16))
	creator.textures[0].failNext = true
	if _, err := up.Upload(testRamp(16)); err == nil {
		t.Error("expected error from failed update")
	}
}

func TestUploadEmpty(t *testing.T) {
	up, _ := New(&mockCreator{})
	if _, err := up.Upload(nil); !errors.Is(err, ErrEmptyRamp) {
		t.Errorf("expected ErrEmptyRamp, got %v", err)
	}
}

func TestClose(t *testing.T) {
	creator := &mockCreator{}
	up, _ := New(creator)
	_, _ = up.Upload(testRamp(16))

	if err := up.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !creator.textures[0].destroyed {
		t.Error("Close should destroy the texture")
	}
	if up.Texture() != nil {
		t.Error("Texture() should be nil after Close")
	}
	if err := up.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	if _, err := up.Upload(testRamp(16)); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
}

func TestUploadBindsToGradient(t *testing.T) {
	up, _ := New(&mockCreator{})
	tex, err := up.Upload(testRamp(uigrad.DefaultRampWidth))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	base, err := uigrad.NewUIMaterial("UI/Default")
	if err != nil {
		t.Fatalf("NewUIMaterial: %v", err)
	}
	g := uigrad.NewGradient()
	g.SetTexture(tex)
	mat := g.ModifyMaterial(base)
	if mat.Texture(uigrad.PropGradientTex) != tex {
		t.Error("uploaded texture not bound to _GradientTex")
	}
}
