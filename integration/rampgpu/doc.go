// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package rampgpu uploads baked gradient ramps to host GPU textures.
//
// The data flow is:
//
//	uigrad.Ramp (stops) -> RampTexture (CPU strip) -> GPU texture -> _GradientTex
//
// The host supplies a gpucontext.TextureCreator (for gogpu, obtained from
// the draw context). The first Upload creates the texture; later uploads of
// a strip with the same width update it in place when the texture
// implements gpucontext.TextureUpdater, and recreate it otherwise.
//
// # Usage
//
//	up, err := rampgpu.New(dc.TextureCreator())
//	if err != nil {
//	    return err
//	}
//	defer up.Close()
//
//	tex, err := up.Upload(ramp.Bake(uigrad.DefaultRampWidth))
//	if err != nil {
//	    return err
//	}
//	gradient.SetTexture(tex)
//
// # Thread Safety
//
// Uploader is NOT safe for concurrent use.
package rampgpu
