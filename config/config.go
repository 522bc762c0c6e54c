// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config contains the configuration structs of the engine,
// which are stored as one TOML file per section in the config directory.
package config

import (
	"cogentcore.org/ronin/base/errors"
	"cogentcore.org/ronin/base/reflectx"
)

// Config is the main config struct that contains all of the
// configuration sections of the engine. It is read once at startup
// and treated as immutable afterwards; use [Config.Clone] to hand
// copies to collaborators.
type Config struct {

	// App contains the product and application level settings.
	App AppConfig

	// Memory contains the preallocation sizes of the memory subsystem.
	Memory MemoryConfig

	// Display contains the window and presentation settings.
	Display DisplayConfig

	// Graphics contains the GPU device settings.
	Graphics GraphicsConfig
}

// AppConfig contains the product and application level settings.
type AppConfig struct {

	// the name of the product, used as the window title prefix
	ProductName string `toml:"product_name" default:"Untitled Product"`

	// the company that makes the product
	ProductCompany string `toml:"product_company" default:"Default Company"`

	// the copyright notice of the product
	ProductCopyright string `toml:"product_copyright" default:"Default Copyright"`

	// a short description of the product
	ProductDescription string `toml:"product_description" default:"Default Description"`

	// whether to start with the most conservative settings
	SafeMode bool `toml:"safe_mode"`

	// whether to prefer a low power GPU adapter over a high performance one
	PowerSafeMode bool `toml:"power_safe_mode"`

	// the initial table size of each resource cache; not an upper limit
	DefaultResourceCacheCapacity int `toml:"default_resource_cache_capacity" default:"128"`

	// whether to disable the periodic background service routine
	DisableServiceRoutine bool `toml:"disable_service_routine"`

	// the interval of the service routine in minutes, within 1..60
	ServiceRoutineMinuteInterval int `toml:"service_routine_minute_interval" default:"30"`
}

// MemoryConfig contains the preallocation sizes of the memory subsystem.
type MemoryConfig struct {

	// the number of strings preallocated in the string pool
	DefaultStringPoolSize int `toml:"default_string_pool_size" default:"16384"`

	// the byte capacity of the bump allocation arena
	DefaultMemoryPoolSize int `toml:"default_memory_pool_size" default:"536870912"`
}

// DisplayConfig contains the window and presentation settings.
type DisplayConfig struct {

	// whether the window is windowed or full screen on the primary monitor
	WindowMode WindowModes `toml:"window_mode" default:"Windowed"`

	// whether presentation waits for vertical sync (Fifo) or not (Mailbox)
	VSync bool `toml:"vsync"`

	// the window resolution in pixels; replaced by 1920x1080 when outside
	// of 800x600..16384x16384
	Resolution Resolution `toml:"resolution"`

	// the gamma offset applied by the display
	GammaOffset float32 `toml:"gamma_offset" default:"1"`

	// the maximum number of frames per second; 0 means unlimited
	FPSLimit int `toml:"fps_limit"`
}

// Resolution is a window size in pixels.
type Resolution struct {
	Width  int `toml:"width" default:"1920"`
	Height int `toml:"height" default:"1080"`
}

// GraphicsConfig contains the GPU device settings.
// The Max* fields are passed to the device verbatim as required limits.
type GraphicsConfig struct {

	// the number of samples per pixel used for anti-aliasing
	MSAAMode MSAAModes `toml:"msaa_mode" default:"X8"`

	// the graphics API used by the device
	BackendAPI Backends `toml:"backend_api" default:"Vulkan"`

	MaxBindGroups                             uint32 `toml:"max_bind_groups" default:"4"`
	MaxDynamicUniformBuffersPerPipelineLayout uint32 `toml:"max_dynamic_uniform_buffers_per_pipeline_layout" default:"8"`
	MaxDynamicStorageBuffersPerPipelineLayout uint32 `toml:"max_dynamic_storage_buffers_per_pipeline_layout" default:"4"`
	MaxSampledTexturesPerShaderStage          uint32 `toml:"max_sampled_textures_per_shader_stage" default:"16"`
	MaxSamplersPerShaderStage                 uint32 `toml:"max_samplers_per_shader_stage" default:"16"`
	MaxStorageBuffersPerShaderStage           uint32 `toml:"max_storage_buffers_per_shader_stage" default:"4"`
	MaxStorageTexturesPerShaderStage          uint32 `toml:"max_storage_textures_per_shader_stage" default:"4"`
	MaxUniformBuffersPerShaderStage           uint32 `toml:"max_uniform_buffers_per_shader_stage" default:"12"`
	MaxUniformBufferBindingSize               uint64 `toml:"max_uniform_buffer_binding_size" default:"16384"`
	MaxPushConstantPoolByteSize               uint32 `toml:"max_push_constant_pool_byte_size" default:"256"`

	// textures larger than this in either dimension are downscaled on import
	MaxTextureDimension int `toml:"max_texture_dimension" default:"8192"`

	// the root directory of the fixed-function pipeline shaders
	ShaderRoot string `toml:"shader_root" default:"db/shaders/fixed_pipelines"`

	// the directory of the mip generation blit shaders
	MipgenShaderDir string `toml:"mipgen_shader_dir" default:"db/shaders/mipgen"`

	// an external command compiling GLSL to SPIR-V, with {stage}, {in} and
	// {out} placeholders; when empty, WGSL sources are used directly
	ShaderCompiler string `toml:"shader_compiler"`
}

// Defaults sets the default values of all sections.
func (c *Config) Defaults() {
	c.App.Defaults()
	c.Memory.Defaults()
	c.Display.Defaults()
	c.Graphics.Defaults()
}

// NewConfig returns a new config with default values.
func NewConfig() *Config {
	c := &Config{}
	c.Defaults()
	return c
}

// Each section is reset to its zero value and then filled from the
// `default:` struct tags of its fields.

func (c *AppConfig) Defaults() {
	*c = AppConfig{}
	errors.Log(reflectx.SetFromDefaultTags(c))
}

func (c *MemoryConfig) Defaults() {
	*c = MemoryConfig{}
	errors.Log(reflectx.SetFromDefaultTags(c))
}

func (c *DisplayConfig) Defaults() {
	*c = DisplayConfig{}
	errors.Log(reflectx.SetFromDefaultTags(c))
}

func (c *GraphicsConfig) Defaults() {
	*c = GraphicsConfig{}
	errors.Log(reflectx.SetFromDefaultTags(c))
}
