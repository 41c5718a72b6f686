package io

import (
	"errors"

	"github.com/lmcsim/lmc/translate"
)

var f = translate.From

var (
	// Device errors
	ErrDeviceFull = errors.New(f("device full"))
)
