/*
 * FrankyGo - UCI chess engine in GO for learning purposes
 *
 * MIT License
 *
 * Copyright (c) 2018-2020 Frank Kopp
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package util

import (
	"os"
	"path/filepath"
)

// ResolveFile resolves a possibly relative path against the executable's
// own directory first, falling back to the path as given (resolved against
// the current working directory) when no file exists next to the binary.
// This lets the engine be started from any working directory and still
// find its config/book/log files relative to where it was installed.
func ResolveFile(file string) (string, error) {
	if filepath.IsAbs(file) {
		return filepath.Clean(file), nil
	}
	if exe, err := os.Executable(); err == nil {
		candidate := filepath.Join(filepath.Dir(exe), file)
		if _, statErr := os.Stat(candidate); statErr == nil {
			return filepath.Clean(candidate), nil
		}
	}
	abs, err := filepath.Abs(file)
	if err != nil {
		return filepath.Clean(file), err
	}
	return filepath.Clean(abs), nil
}

// ResolveFolder resolves folder the same way ResolveFile resolves a file,
// without creating it. Used for read-only lookups such as the opening book
// directory.
func ResolveFolder(folder string) (string, error) {
	return ResolveFile(folder)
}

// ResolveCreateFolder resolves folder the same way ResolveFile resolves a
// file, creating it (and any parents) if it doesn't yet exist.
func ResolveCreateFolder(folder string) (string, error) {
	resolved, err := ResolveFile(folder)
	if err != nil {
		return resolved, err
	}
	if err := os.MkdirAll(resolved, 0o755); err != nil {
		return resolved, err
	}
	return resolved, nil
}
