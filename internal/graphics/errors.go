package graphics

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// MaxTextureUnits is the number of sampler slots a Program may address.
const MaxTextureUnits = 32

var (
	ErrFramebufferIncomplete = errors.New("graphics: framebuffer incomplete")
	ErrTextureUnit           = errors.New("graphics: texture unit out of range")
	ErrInvalidSize           = errors.New("graphics: invalid size")
	ErrAllocation            = errors.New("graphics: handle allocation failed")
)

// checkGL drains the GL error queue and reports the first error, tagged with op.
func checkGL(op string) error {
	code := gl.GetError()
	if code == gl.NO_ERROR {
		return nil
	}
	for gl.GetError() != gl.NO_ERROR {
	}
	return fmt.Errorf("%s: gl error 0x%X", op, code)
}

// fail logs a resource construction failure and returns err unchanged.
func fail(kind string, err error) error {
	slog.Error("failed to create "+kind, "error", err)
	return err
}

func checkUnit(unit int) error {
	if unit < 0 || unit >= MaxTextureUnits {
		return fmt.Errorf("%w: %d", ErrTextureUnit, unit)
	}
	return nil
}
