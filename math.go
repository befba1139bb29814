package amf

import (
	"fmt"

	"pkt.systems/amf/tex"
)

// Engine typesets TeX source into terminal text. Implementations are
// external collaborators and may fail or panic on hostile input;
// MathRenderer guards every call.
type Engine interface {
	Typeset(src string, display bool) (string, error)
}

// MathRenderer wraps an Engine behind a total contract: Render never
// panics and reports every engine failure as an error, so callers can
// fall back to the delimited source text with an error indicator.
type MathRenderer struct {
	engine Engine
}

// NewMathRenderer returns a renderer around engine. A nil engine
// selects the built-in best-effort typesetter.
func NewMathRenderer(engine Engine) *MathRenderer {
	if engine == nil {
		engine = tex.NewEngine()
	}
	return &MathRenderer{engine: engine}
}

// Render typesets src. display selects block layout over inline.
func (r *MathRenderer) Render(src string, display bool) (out string, err error) {
	defer func() {
		if p := recover(); p != nil {
			out, err = "", fmt.Errorf("math: engine panic: %v", p)
		}
	}()
	out, err = r.engine.Typeset(src, display)
	if err != nil {
		return "", fmt.Errorf("math: %w", err)
	}
	return out, nil
}
