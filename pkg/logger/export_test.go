package logger

import "io"

// NewWithWriter expone newWithWriter para los tests.
func NewWithWriter(cfg Config, out io.Writer) *Logger { return newWithWriter(cfg, out) }
