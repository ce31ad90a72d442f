// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package software is a CPU rasterization backend for fontatlas.
//
// It keeps render targets in memory, fills quad coverage with
// golang.org/x/image/vector, samples the glyph texture with point
// filtering and blends the tinted result over the target.
//
// Importing the package registers it under the name "software":
//
//	import _ "github.com/gogpu/fontatlas/backend/software"
//
//	b, err := fontatlas.NewBackend("software")
package software
