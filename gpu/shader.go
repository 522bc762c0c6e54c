// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/mattn/go-shellwords"
)

// ShaderTypes are the shader stages of a render pipeline.
type ShaderTypes int32

const (
	VertexShader ShaderTypes = iota
	FragmentShader
)

// ID returns the stage identifier used in shader file names:
// "vert" or "frag".
func (st ShaderTypes) ID() string {
	if st == FragmentShader {
		return "frag"
	}
	return "vert"
}

// Stage returns the WebGPU shader stage flag.
func (st ShaderTypes) Stage() wgpu.ShaderStage {
	if st == FragmentShader {
		return wgpu.ShaderStageFragment
	}
	return wgpu.ShaderStageVertex
}

func (st ShaderTypes) String() string {
	if st == FragmentShader {
		return "FragmentShader"
	}
	return "VertexShader"
}

// ShaderCompiler turns a shader source file into a shader module descriptor.
type ShaderCompiler interface {

	// Ext is the file extension of the sources this compiler reads,
	// without the leading dot.
	Ext() string

	// Compile compiles the source file at path for the given stage.
	Compile(path string, typ ShaderTypes) (*wgpu.ShaderModuleDescriptor, error)
}

// ShaderPath returns the conventional location of a stage of a named
// pipeline: <root>/<name-lowercased>/shader.<stage>.<ext>.
func ShaderPath(root, name string, typ ShaderTypes, ext string) string {
	return filepath.Join(root, strings.ToLower(name), "shader."+typ.ID()+"."+ext)
}

// WGSLCompiler passes WGSL sources to the device, which compiles them.
type WGSLCompiler struct{}

func (WGSLCompiler) Ext() string { return "wgsl" }

func (WGSLCompiler) Compile(path string, typ ShaderTypes) (*wgpu.ShaderModuleDescriptor, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("gpu: failed to load %s source file %q: %w", typ, path, err)
	}
	return &wgpu.ShaderModuleDescriptor{
		Label:          filepath.Base(path),
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: string(b)},
	}, nil
}

// CommandCompiler compiles GLSL sources to SPIR-V by running an external
// compiler such as glslc. The command line may contain the placeholders
// {stage}, {in} and {out}, which are replaced by the stage ID, the source
// path and the output path, for example:
//
//	glslc -fshader-stage={stage} -o {out} {in}
type CommandCompiler struct {

	// Args is the parsed command line.
	Args []string

	// SourceExt is the extension of the source files; glsl by default.
	SourceExt string
}

// NewCommandCompiler parses the given command line with shell quoting rules.
func NewCommandCompiler(cmdline string) (*CommandCompiler, error) {
	args, err := shellwords.Parse(cmdline)
	if err != nil {
		return nil, fmt.Errorf("gpu: invalid shader compiler command %q: %w", cmdline, err)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("gpu: empty shader compiler command")
	}
	return &CommandCompiler{Args: args, SourceExt: "glsl"}, nil
}

func (cc *CommandCompiler) Ext() string { return cc.SourceExt }

// Command returns the arguments to run for compiling in to out.
func (cc *CommandCompiler) Command(in, out string, typ ShaderTypes) []string {
	r := strings.NewReplacer("{stage}", typ.ID(), "{in}", in, "{out}", out)
	args := make([]string, len(cc.Args))
	for i, a := range cc.Args {
		args[i] = r.Replace(a)
	}
	return args
}

func (cc *CommandCompiler) Compile(path string, typ ShaderTypes) (*wgpu.ShaderModuleDescriptor, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("gpu: failed to load %s source file %q: %w", typ, path, err)
	}
	dir, err := os.MkdirTemp("", "ronin-spirv")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)
	out := filepath.Join(dir, filepath.Base(path)+".spv")
	args := cc.Command(path, out, typ)
	slog.Info("Compiling shader", "path", path, "cmd", args[0])
	if b, err := exec.Command(args[0], args[1:]...).CombinedOutput(); err != nil {
		return nil, fmt.Errorf("gpu: failed to compile shader source file %q: %w\n%s", path, err, b)
	}
	code, err := os.ReadFile(out)
	if err != nil {
		return nil, fmt.Errorf("gpu: shader compiler produced no output for %q: %w", path, err)
	}
	return &wgpu.ShaderModuleDescriptor{
		Label:           filepath.Base(path),
		SPIRVDescriptor: &wgpu.ShaderModuleSPIRVDescriptor{Code: code},
	}, nil
}

// CompileAndCreateShader compiles the shader source at path with the
// configured compiler and creates the shader module on the device.
func (dr *Drivers) CompileAndCreateShader(path string, typ ShaderTypes) (*wgpu.ShaderModule, error) {
	desc, err := dr.Compiler.Compile(path, typ)
	if err != nil {
		return nil, err
	}
	if Debug {
		slog.Debug("Creating shader module", "path", path, "stage", typ)
	}
	sm, err := dr.Device.CreateShaderModule(desc)
	if err != nil {
		return nil, fmt.Errorf("gpu: failed to create shader module from %q: %w", path, err)
	}
	return sm, nil
}
