/*
NAME
  errs.go

DESCRIPTION
  errs.go defines the three failure categories the pipeline reports, each
  as its own error type so callers (notably the CLI, which maps them to
  exit codes) can distinguish them with errors.As while the underlying
  cause stays reachable through Unwrap.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package errs categorizes pipeline failures into configuration,
// initialization, and image I/O errors.
package errs

// ConfigError is a malformed value, unknown key, missing required value, or
// impossible combination in the configuration surface.
type ConfigError struct {
	Reason string
	Cause  error
}

func (e *ConfigError) Error() string {
	if e.Cause != nil {
		return "config: " + e.Reason + ": " + e.Cause.Error()
	}
	return "config: " + e.Reason
}

func (e *ConfigError) Unwrap() error { return e.Cause }

// InitError is a failure while building the derived tables: a singular
// matrix, a gamut sample that missed its cusp, or a warp inversion that
// didn't converge.
type InitError struct {
	Reason string
	Cause  error
}

func (e *InitError) Error() string {
	if e.Cause != nil {
		return "init: " + e.Reason + ": " + e.Cause.Error()
	}
	return "init: " + e.Reason
}

func (e *InitError) Unwrap() error { return e.Cause }

// ImageIOError is a failure opening, decoding, or writing a raster image.
type ImageIOError struct {
	Path  string
	Cause error
}

func (e *ImageIOError) Error() string {
	return "image " + e.Path + ": " + e.Cause.Error()
}

func (e *ImageIOError) Unwrap() error { return e.Cause }

// Exit codes per failure category, used by the CLI.
const (
	ExitConfig  = 2
	ExitInit    = 3
	ExitImageIO = 4
)
