// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package rampgpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/uigrad"
)

// Common errors returned by Uploader operations.
var (
	// ErrNilCreator is returned when a nil TextureCreator is passed.
	ErrNilCreator = errors.New("rampgpu: nil TextureCreator")

	// ErrClosed is returned when uploading through a closed Uploader.
	ErrClosed = errors.New("rampgpu: uploader is closed")

	// ErrEmptyRamp is returned when the ramp texture has no texels.
	ErrEmptyRamp = errors.New("rampgpu: empty ramp texture")
)

// textureDestroyer is the interface for destroying textures.
// This matches the gogpu.Texture.Destroy signature.
type textureDestroyer interface {
	Destroy()
}

// Uploader keeps one GPU texture in sync with a baked ramp.
type Uploader struct {
	creator gpucontext.TextureCreator
	texture gpucontext.Texture
	width   int
	uploads int
	closed  bool
}

// New creates an Uploader that creates textures through creator.
func New(creator gpucontext.TextureCreator) (*Uploader, error) {
	if creator == nil {
		return nil, ErrNilCreator
	}
	return &Uploader{creator: creator}, nil
}

// Upload copies src to the GPU and returns the texture to bind as
// _GradientTex. The returned texture stays owned by the Uploader and is
// valid until the next Upload that recreates it, or Close.
func (u *Uploader) Upload(src *uigrad.RampTexture) (gpucontext.Texture, error) {
	if u.closed {
		return nil, ErrClosed
	}
	if src == nil || src.Width() == 0 {
		return nil, ErrEmptyRamp
	}
	data := src.Data()

	if u.texture != nil && u.width == src.Width() {
		if updater, ok := u.texture.(gpucontext.TextureUpdater); ok {
			if err := updater.UpdateData(data); err != nil {
				return nil, fmt.Errorf("rampgpu: texture update failed: %w", err)
			}
			u.uploads++
			return u.texture, nil
		}
	}

	tex, err := u.creator.NewTextureFromRGBA(src.Width(), src.Height(), data)
	if err != nil {
		return nil, fmt.Errorf("rampgpu: NewTextureFromRGBA failed: %w", err)
	}

	// A failed creation above leaves the previous texture alive.
	u.destroyTexture()
	u.texture = tex
	u.width = src.Width()
	u.uploads++
	return tex, nil
}

// Texture returns the current GPU texture, or nil before the first Upload.
func (u *Uploader) Texture() gpucontext.Texture {
	return u.texture
}

// Uploads returns how many uploads have succeeded.
func (u *Uploader) Uploads() int {
	return u.uploads
}

// Close destroys the GPU texture. Close is idempotent.
func (u *Uploader) Close() error {
	if u.closed {
		return nil
	}
	u.closed = true
	u.destroyTexture()
	return nil
}

func (u *Uploader) destroyTexture() {
	if u.texture == nil {
		return
	}
	if d, ok := u.texture.(textureDestroyer); ok {
		d.Destroy()
	}
	u.texture = nil
	u.width = 0
}
