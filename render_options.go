package amf

// RenderOption configures rendering behavior.
type RenderOption func(*renderConfig)

type renderConfig struct {
	osc8   bool
	think  bool
	engine Engine
}

func defaultRenderConfig() renderConfig {
	return renderConfig{think: true}
}

// WithOSC8 enables or disables OSC 8 hyperlinks.
func WithOSC8(enabled bool) RenderOption {
	return func(cfg *renderConfig) {
		cfg.osc8 = enabled
	}
}

// WithThink shows or hides think regions. They are shown by default.
func WithThink(enabled bool) RenderOption {
	return func(cfg *renderConfig) {
		cfg.think = enabled
	}
}

// WithMathEngine selects the typesetter math routes through. nil keeps
// the built-in engine.
func WithMathEngine(engine Engine) RenderOption {
	return func(cfg *renderConfig) {
		cfg.engine = engine
	}
}
