// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package systems

import (
	"fmt"
	"log/slog"
	"strings"

	"cogentcore.org/ronin/config"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Memory owns the preallocated string pool and the per-tick arena.
type Memory struct {
	Strings *StringPool

	// Arena is reset at the start of every tick, so allocations from it
	// are valid for the rest of that tick only.
	Arena *Arena
}

// NewMemory creates the string pool and the arena with the configured sizes.
func NewMemory(cfg *config.Config) *Memory {
	n, size := cfg.Memory.DefaultStringPoolSize, cfg.Memory.DefaultMemoryPoolSize
	slog.Info("Creating string pool", "entries", formatCount(n))
	strs := NewStringPool(n)
	slog.Info("Creating arena", "capacity", FormatBytes(size))
	return &Memory{Strings: strs, Arena: NewArena(size)}
}

func (mm *Memory) String() string { return "Memory" }

func (mm *Memory) Prepare() {}

func (mm *Memory) Tick() bool {
	mm.Arena.Reset()
	return true
}

func (mm *Memory) Shutdown() {
	slog.Info("Memory usage", "pooledStrings", mm.Strings.Len(), "arenaPeak", FormatBytes(mm.Arena.Peak()))
	mm.Arena = nil
	mm.Strings = nil
}

// StringPool is a free list of string builders, preallocated up front.
// It is not safe for concurrent use.
type StringPool struct {
	free []*strings.Builder
}

// NewStringPool returns a pool with n builders.
func NewStringPool(n int) *StringPool {
	sp := &StringPool{free: make([]*strings.Builder, max(n, 0))}
	for i := range sp.free {
		sp.free[i] = &strings.Builder{}
	}
	return sp
}

// Get returns an empty builder, allocating one when the pool is empty.
func (sp *StringPool) Get() *strings.Builder {
	n := len(sp.free)
	if n == 0 {
		return &strings.Builder{}
	}
	sb := sp.free[n-1]
	sp.free = sp.free[:n-1]
	return sb
}

// Put returns a builder to the pool.
func (sp *StringPool) Put(sb *strings.Builder) {
	sb.Reset()
	sp.free = append(sp.free, sb)
}

// Len returns the number of builders in the pool.
func (sp *StringPool) Len() int { return len(sp.free) }

// Arena is a bump allocator over one preallocated block of bytes.
// It is not safe for concurrent use.
type Arena struct {
	buf  []byte
	used int
	peak int
}

// NewArena returns an arena with the given capacity in bytes.
func NewArena(capacity int) *Arena {
	return &Arena{buf: make([]byte, max(capacity, 0))}
}

// Alloc returns n zeroed bytes aligned to align, which must be a power
// of two, or nil when the arena does not have enough room left.
func (a *Arena) Alloc(n, align int) []byte {
	if n < 0 || align <= 0 || align&(align-1) != 0 {
		panic(fmt.Sprintf("systems: invalid arena allocation of %d bytes aligned to %d", n, align))
	}
	start := (a.used + align - 1) &^ (align - 1)
	end := start + n
	if end > len(a.buf) {
		return nil
	}
	a.used = end
	a.peak = max(a.peak, end)
	b := a.buf[start:end:end]
	clear(b)
	return b
}

// Reset frees all allocations at once.
func (a *Arena) Reset() { a.used = 0 }

// Used returns the number of bytes allocated since the last reset,
// including alignment padding.
func (a *Arena) Used() int { return a.used }

// Cap returns the capacity of the arena in bytes.
func (a *Arena) Cap() int { return len(a.buf) }

// Peak returns the largest [Arena.Used] seen.
func (a *Arena) Peak() int { return a.peak }

var printer = message.NewPrinter(language.English)

func formatCount(n int) string {
	return printer.Sprintf("%d", n)
}

// FormatBytes formats a byte count for humans, in binary units.
func FormatBytes(n int) string {
	const unit = 1024
	if n < unit {
		return printer.Sprintf("%d B", n)
	}
	div, exp := unit, 0
	for m := n / unit; m >= unit && exp < 5; m /= unit {
		div *= unit
		exp++
	}
	return printer.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
