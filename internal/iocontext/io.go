// Package iocontext carries the command output streams on a context so
// commands can be run against buffers.
package iocontext

import (
	"context"
	"io"
	"os"
)

// IO holds the streams a command reads and writes.
type IO struct {
	Out    io.Writer
	ErrOut io.Writer
	In     io.Reader
}

// DefaultIO returns the process streams.
func DefaultIO() *IO {
	return &IO{Out: os.Stdout, ErrOut: os.Stderr, In: os.Stdin}
}

type ioKey struct{}

// WithIO adds streams to a context.
func WithIO(ctx context.Context, streams *IO) context.Context {
	return context.WithValue(ctx, ioKey{}, streams)
}

// GetIO returns the context's streams, defaulting to the process streams.
// Nil fields of a stored IO are filled from the defaults.
func GetIO(ctx context.Context) *IO {
	streams, ok := ctx.Value(ioKey{}).(*IO)
	if !ok || streams == nil {
		return DefaultIO()
	}
	out := *streams
	def := DefaultIO()
	if out.Out == nil {
		out.Out = def.Out
	}
	if out.ErrOut == nil {
		out.ErrOut = def.ErrOut
	}
	if out.In == nil {
		out.In = def.In
	}
	return &out
}
