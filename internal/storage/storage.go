// Copyright (c) 2025-2026 Fedele Penna
// SPDX-License-Identifier: GPL-3.0-or-later

// Package storage stores uploaded image files on the local filesystem and
// maps them to public URLs.
package storage

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// FileStore writes objects under a base directory and serves them under a
// public URL prefix. Object paths use forward slashes regardless of OS.
type FileStore struct {
	baseDir   string
	urlPrefix string
}

// NewFileStore creates a FileStore rooted at baseDir. urlPrefix is the
// path prefix the HTTP server mounts the directory on, e.g. "/uploads".
func NewFileStore(baseDir, urlPrefix string) (*FileStore, error) {
	abs, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("resolving upload dir: %w", err)
	}
	if err := os.MkdirAll(abs, 0755); err != nil {
		return nil, fmt.Errorf("creating upload dir: %w", err)
	}
	return &FileStore{baseDir: abs, urlPrefix: strings.TrimSuffix(urlPrefix, "/")}, nil
}

// BaseDir returns the absolute directory files are stored under.
func (s *FileStore) BaseDir() string {
	return s.baseDir
}

// Put writes data at the given object path and returns its public URL.
func (s *FileStore) Put(objectPath string, data []byte) (string, error) {
	target, err := s.resolve(objectPath)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return "", fmt.Errorf("creating directory: %w", err)
	}
	if err := os.WriteFile(target, data, 0644); err != nil {
		return "", fmt.Errorf("writing file: %w", err)
	}
	return s.URL(objectPath), nil
}

// URL returns the public URL for an object path.
func (s *FileStore) URL(objectPath string) string {
	return s.urlPrefix + "/" + strings.TrimPrefix(path.Clean("/"+objectPath), "/")
}

// PathFromURL converts a public URL back to an object path. It returns
// false for URLs outside this store's prefix.
func (s *FileStore) PathFromURL(url string) (string, bool) {
	// Strip any scheme and host so absolute URLs work too.
	if idx := strings.Index(url, "://"); idx != -1 {
		rest := url[idx+3:]
		if slash := strings.Index(rest, "/"); slash != -1 {
			url = rest[slash:]
		} else {
			return "", false
		}
	}
	if !strings.HasPrefix(url, s.urlPrefix+"/") {
		return "", false
	}
	return strings.TrimPrefix(url, s.urlPrefix+"/"), true
}

// Delete removes the given object paths. Missing files are not an error,
// removal failures are collected so one bad path does not stop the rest.
func (s *FileStore) Delete(objectPaths ...string) error {
	var errs []string
	for _, objectPath := range objectPaths {
		target, err := s.resolve(objectPath)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", objectPath, err))
			continue
		}
		if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
			errs = append(errs, fmt.Sprintf("%s: %v", objectPath, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("deleting objects: %s", strings.Join(errs, "; "))
	}
	return nil
}

// resolve maps an object path to an absolute filesystem path, rejecting
// anything that escapes the base directory.
func (s *FileStore) resolve(objectPath string) (string, error) {
	if strings.Contains(objectPath, "..") {
		return "", fmt.Errorf("invalid object path")
	}
	clean := path.Clean("/" + objectPath)
	target := filepath.Join(s.baseDir, filepath.FromSlash(clean))

	rel, err := filepath.Rel(s.baseDir, target)
	if err != nil || strings.HasPrefix(rel, "..") || filepath.IsAbs(rel) {
		return "", fmt.Errorf("path traversal detected")
	}
	return target, nil
}
