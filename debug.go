// Copyright 2026 The Malloclab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package malloc

// trace gates the optional, off-hot-path diagnostic logging used by
// Init/Malloc/Free/Realloc. Flip to true and recompile to get a
// call-by-call trace on stderr; never enabled in a committed build.
const trace = false
