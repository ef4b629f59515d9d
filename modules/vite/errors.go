// Copyright 2025 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package vite

import (
	"errors"
	"fmt"

	"github.com/Algomation-AI/vitebridge/modules/util"
)

// ErrManifestNotFound represents a manifest file that cannot be read
type ErrManifestNotFound struct {
	Path string
	Err  error
}

// IsErrManifestNotFound checks if an error is a ErrManifestNotFound.
func IsErrManifestNotFound(err error) bool {
	var e ErrManifestNotFound
	return errors.As(err, &e)
}

func (err ErrManifestNotFound) Error() string {
	return fmt.Sprintf("cannot read the manifest file %q: %v", err.Path, err.Err)
}

func (err ErrManifestNotFound) Unwrap() error {
	return util.ErrNotExist
}

// ErrManifestParse represents a manifest file that is not valid JSON or has the wrong shape
type ErrManifestParse struct {
	Path string
	Err  error
}

// IsErrManifestParse checks if an error is a ErrManifestParse.
func IsErrManifestParse(err error) bool {
	var e ErrManifestParse
	return errors.As(err, &e)
}

func (err ErrManifestParse) Error() string {
	return fmt.Sprintf("invalid manifest file %q: %v", err.Path, err.Err)
}

func (err ErrManifestParse) Unwrap() error {
	return util.ErrInvalidArgument
}

// ErrChunkNotFound represents a key or emitted file name missing from the manifest
type ErrChunkNotFound struct {
	Key string
}

// IsErrChunkNotFound checks if an error is a ErrChunkNotFound.
func IsErrChunkNotFound(err error) bool {
	var e ErrChunkNotFound
	return errors.As(err, &e)
}

func (err ErrChunkNotFound) Error() string {
	return fmt.Sprintf("cannot find %q chunk in the manifest file", err.Key)
}

func (err ErrChunkNotFound) Unwrap() error {
	return util.ErrNotExist
}

// ErrHotFileUnreadable represents a hot file that vanished or became corrupt after hot mode was detected
type ErrHotFileUnreadable struct {
	Path string
	Err  error
}

// IsErrHotFileUnreadable checks if an error is a ErrHotFileUnreadable.
func IsErrHotFileUnreadable(err error) bool {
	var e ErrHotFileUnreadable
	return errors.As(err, &e)
}

func (err ErrHotFileUnreadable) Error() string {
	return fmt.Sprintf("cannot read the hot file %q: %v", err.Path, err.Err)
}

func (err ErrHotFileUnreadable) Unwrap() error {
	return util.ErrInvalidArgument
}

// ErrManifestModeViolation represents a manifest access while the dev server is running
type ErrManifestModeViolation struct {
	Op string
}

// IsErrManifestModeViolation checks if an error is a ErrManifestModeViolation.
func IsErrManifestModeViolation(err error) bool {
	var e ErrManifestModeViolation
	return errors.As(err, &e)
}

func (err ErrManifestModeViolation) Error() string {
	return fmt.Sprintf("%s: cannot read the manifest file when running in hot mode", err.Op)
}

func (err ErrManifestModeViolation) Unwrap() error {
	return util.ErrPermissionDenied
}
