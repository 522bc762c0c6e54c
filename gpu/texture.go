// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"image"

	"github.com/cogentcore/webgpu/wgpu"
)

// TextureFormat is the format of all imported textures.
const TextureFormat = wgpu.TextureFormatRGBA8UnormSrgb

// UploadedTexture is a sampled texture with a full mip chain on the device.
type UploadedTexture struct {
	Texture *wgpu.Texture

	// View covers all mip levels.
	View *wgpu.TextureView

	// MipViews has one view per mip level.
	MipViews []*wgpu.TextureView

	Sampler   *wgpu.Sampler
	Size      image.Point
	MipLevels uint32
}

// UploadTexture creates a texture from the given image, uploads level 0,
// generates the rest of the mip chain and submits the work.
func (dr *Drivers) UploadTexture(label string, img *image.RGBA) (_ *UploadedTexture, err error) {
	sz := img.Rect.Size()
	ut := &UploadedTexture{Size: sz, MipLevels: MipLevelCount(sz.X, sz.Y)}
	defer func() {
		if err != nil {
			ut.Release()
		}
	}()
	ut.Texture, err = dr.Device.CreateTexture(&wgpu.TextureDescriptor{
		Label: label,
		Size: wgpu.Extent3D{
			Width:              uint32(sz.X),
			Height:             uint32(sz.Y),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: ut.MipLevels,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        TextureFormat,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst | wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: failed to create texture %q: %w", label, err)
	}
	err = dr.Queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  ut.Texture,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		img.Pix,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  uint32(img.Stride),
			RowsPerImage: uint32(sz.Y),
		},
		&wgpu.Extent3D{
			Width:              uint32(sz.X),
			Height:             uint32(sz.Y),
			DepthOrArrayLayers: 1,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("gpu: failed to upload texture %q: %w", label, err)
	}

	enc, err := dr.Device.CreateCommandEncoder(nil)
	if err != nil {
		return nil, err
	}
	defer enc.Release()
	if err := dr.GenerateMipmaps(enc, ut.Texture, TextureFormat, ut.MipLevels); err != nil {
		return nil, err
	}
	cmd, err := enc.Finish(nil)
	if err != nil {
		return nil, err
	}
	dr.Queue.Submit(cmd)
	cmd.Release()

	if ut.View, err = ut.Texture.CreateView(nil); err != nil {
		return nil, err
	}
	if ut.MipViews, err = MipViews(ut.Texture, TextureFormat, ut.MipLevels); err != nil {
		return nil, err
	}
	ut.Sampler, err = dr.Device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         label,
		AddressModeU:  wgpu.AddressModeRepeat,
		AddressModeV:  wgpu.AddressModeRepeat,
		AddressModeW:  wgpu.AddressModeRepeat,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeLinear,
		LodMaxClamp:   float32(ut.MipLevels),
		MaxAnisotropy: 1,
	})
	if err != nil {
		return nil, err
	}
	return ut, nil
}

// Release releases the texture, its views and its sampler.
func (ut *UploadedTexture) Release() {
	if ut.Sampler != nil {
		ut.Sampler.Release()
		ut.Sampler = nil
	}
	for _, v := range ut.MipViews {
		v.Release()
	}
	ut.MipViews = nil
	if ut.View != nil {
		ut.View.Release()
		ut.View = nil
	}
	if ut.Texture != nil {
		ut.Texture.Release()
		ut.Texture = nil
	}
}
