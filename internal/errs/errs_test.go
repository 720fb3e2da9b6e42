/*
NAME
  errs_test.go

DESCRIPTION
  errs_test.go contains functions for testing the failure taxonomy.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package errs

import (
	"errors"
	"io"
	"testing"
)

func TestErrorCategoriesDistinguishable(t *testing.T) {
	cfg := error(&ConfigError{Reason: "unknown key"})
	init := error(&InitError{Reason: "singular matrix"})
	img := error(&ImageIOError{Path: "in.png", Cause: io.ErrUnexpectedEOF})

	var cfgTarget *ConfigError
	if !errors.As(cfg, &cfgTarget) {
		t.Error("ConfigError not recoverable with errors.As")
	}
	var initTarget *InitError
	if errors.As(cfg, &initTarget) {
		t.Error("ConfigError matched *InitError")
	}
	if !errors.As(init, &initTarget) {
		t.Error("InitError not recoverable with errors.As")
	}
	var imgTarget *ImageIOError
	if !errors.As(img, &imgTarget) {
		t.Error("ImageIOError not recoverable with errors.As")
	}
}

func TestUnwrapReachesCause(t *testing.T) {
	img := &ImageIOError{Path: "in.png", Cause: io.ErrUnexpectedEOF}
	if !errors.Is(img, io.ErrUnexpectedEOF) {
		t.Error("errors.Is did not reach the wrapped cause")
	}
}
