// Copyright (c) 2026 John Dewey

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

package audit

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"
)

// absFn resolves absolute paths. Override in tests.
var absFn = filepath.Abs

// AddFileInfos fingerprints each readable file in paths (key -> path) and
// records key, absolute path, SHA-256 and last-modified time. Files that
// cannot be read are skipped; fingerprinting of the others continues.
func (r *Record) AddFileInfos(
	appFs afero.Fs,
	paths map[string]string,
) {
	if appFs == nil || len(paths) == 0 {
		return
	}

	keys := make([]string, 0, len(paths))
	for k := range paths {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	infos := make(FileInfosValue, 0, len(keys))
	for _, key := range keys {
		info, err := fingerprint(appFs, key, paths[key])
		if err != nil {
			continue
		}

		infos = append(infos, info)
	}

	r.set(FieldComplianceFileInfos, infos)
}

func fingerprint(
	appFs afero.Fs,
	key string,
	path string,
) (FileInfo, error) {
	abs, err := absFn(path)
	if err != nil {
		return FileInfo{}, err
	}

	f, err := appFs.Open(abs)
	if err != nil {
		return FileInfo{}, err
	}
	defer func() { _ = f.Close() }()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return FileInfo{}, err
	}

	fi, err := lstat(appFs, abs)
	if err != nil {
		return FileInfo{}, err
	}

	return FileInfo{
		Key:          key,
		Path:         abs,
		SHA256:       hex.EncodeToString(h.Sum(nil)),
		LastModified: formatTime(fi.ModTime()),
	}, nil
}

// lstat stats path without following a trailing symlink when the
// filesystem supports it.
func lstat(
	appFs afero.Fs,
	path string,
) (os.FileInfo, error) {
	if l, ok := appFs.(afero.Lstater); ok {
		fi, _, err := l.LstatIfPossible(path)

		return fi, err
	}

	return appFs.Stat(path)
}
