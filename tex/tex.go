// Package tex typesets a practical subset of TeX math notation into
// plain terminal text. It is a best-effort engine: recognized commands
// become their unicode forms, unknown commands render as their bare
// name, and only structurally broken input is rejected. It performs no
// I/O and executes nothing beyond typesetting.
package tex

import (
	"errors"
	"strings"
	"unicode/utf8"
)

var (
	ErrEmptyInput      = errors.New("empty input")
	ErrUnbalancedGroup = errors.New("unbalanced group")
)

// Engine is the built-in typesetter. The zero value is usable.
type Engine struct{}

// NewEngine returns a ready typesetter.
func NewEngine() *Engine {
	return &Engine{}
}

// Typeset renders src. display selects block layout, which honors \\
// line breaks and treats alignment markers as spacing. Errors mean the
// caller should show the original source instead.
func (e *Engine) Typeset(src string, display bool) (string, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return "", ErrEmptyInput
	}
	t := &typesetter{src: []rune(src), display: display}
	out, err := t.sequence(false)
	if err != nil {
		return "", err
	}
	return out, nil
}

type typesetter struct {
	src     []rune
	pos     int
	display bool
}

// sequence renders atoms until end of input or, inside a group, the
// closing brace.
func (t *typesetter) sequence(inGroup bool) (string, error) {
	var b strings.Builder
	for t.pos < len(t.src) {
		if t.src[t.pos] == '}' {
			if inGroup {
				return b.String(), nil
			}
			return "", ErrUnbalancedGroup
		}
		s, err := t.atom()
		if err != nil {
			return "", err
		}
		b.WriteString(s)
	}
	if inGroup {
		return "", ErrUnbalancedGroup
	}
	return b.String(), nil
}

func (t *typesetter) atom() (string, error) {
	switch c := t.src[t.pos]; c {
	case '\\':
		return t.command()
	case '{':
		return t.group()
	case '^':
		t.pos++
		arg, err := t.argument()
		if err != nil {
			return "", err
		}
		return scriptForm(arg, supRunes, "^"), nil
	case '_':
		t.pos++
		arg, err := t.argument()
		if err != nil {
			return "", err
		}
		return scriptForm(arg, subRunes, "_"), nil
	case '&':
		t.pos++
		if t.display {
			return "  ", nil
		}
		return "&", nil
	case '~':
		t.pos++
		return " ", nil
	default:
		t.pos++
		return string(c), nil
	}
}

// group consumes a brace-delimited group and renders its interior.
func (t *typesetter) group() (string, error) {
	t.pos++
	out, err := t.sequence(true)
	if err != nil {
		return "", err
	}
	t.pos++
	return out, nil
}

// argument is the single atom following a script marker or command:
// a group, a command, or one rune.
func (t *typesetter) argument() (string, error) {
	t.skipSpaces()
	if t.pos >= len(t.src) {
		return "", nil
	}
	switch t.src[t.pos] {
	case '{':
		return t.group()
	case '\\':
		return t.command()
	default:
		c := t.src[t.pos]
		t.pos++
		return string(c), nil
	}
}

func (t *typesetter) skipSpaces() {
	for t.pos < len(t.src) && t.src[t.pos] == ' ' {
		t.pos++
	}
}

func (t *typesetter) command() (string, error) {
	t.pos++
	if t.pos >= len(t.src) {
		return "\\", nil
	}
	c := t.src[t.pos]
	if !isLetter(c) {
		t.pos++
		switch c {
		case '\\':
			if t.display {
				return "\n", nil
			}
			return " ", nil
		case ',', ':', ';', ' ':
			return " ", nil
		case '!':
			return "", nil
		default:
			return string(c), nil
		}
	}
	start := t.pos
	for t.pos < len(t.src) && isLetter(t.src[t.pos]) {
		t.pos++
	}
	name := string(t.src[start:t.pos])
	switch name {
	case "frac", "dfrac", "tfrac":
		num, err := t.argument()
		if err != nil {
			return "", err
		}
		den, err := t.argument()
		if err != nil {
			return "", err
		}
		return wrapTerm(num) + "/" + wrapTerm(den), nil
	case "sqrt":
		return t.root()
	case "text", "textrm", "textbf", "textit", "mathrm", "mathbf",
		"mathit", "mathsf", "mathtt", "mathcal", "operatorname":
		return t.argument()
	case "left", "right":
		return t.delimiter()
	case "begin", "end":
		if _, err := t.argument(); err != nil {
			return "", err
		}
		return "", nil
	case "quad":
		return "  ", nil
	case "qquad":
		return "    ", nil
	}
	if sym, ok := symbols[name]; ok {
		return sym, nil
	}
	return name, nil
}

// root renders \sqrt with an optional [n] index.
func (t *typesetter) root() (string, error) {
	t.skipSpaces()
	index := ""
	if t.pos < len(t.src) && t.src[t.pos] == '[' {
		t.pos++
		start := t.pos
		for t.pos < len(t.src) && t.src[t.pos] != ']' {
			t.pos++
		}
		index = string(t.src[start:t.pos])
		if t.pos < len(t.src) {
			t.pos++
		}
	}
	body, err := t.argument()
	if err != nil {
		return "", err
	}
	radical := "√" + wrapTerm(body)
	if index == "" {
		return radical, nil
	}
	if sup, ok := mapRunes(index, supRunes); ok {
		return sup + radical, nil
	}
	return "[" + index + "]" + radical, nil
}

// delimiter consumes the token after \left or \right. The null
// delimiter "." renders as nothing.
func (t *typesetter) delimiter() (string, error) {
	t.skipSpaces()
	if t.pos >= len(t.src) {
		return "", nil
	}
	if t.src[t.pos] == '\\' {
		return t.command()
	}
	c := t.src[t.pos]
	t.pos++
	if c == '.' {
		return "", nil
	}
	return string(c), nil
}

func isLetter(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// wrapTerm parenthesizes multi-rune terms so fractions and roots keep
// their grouping in linear form.
func wrapTerm(s string) string {
	if utf8.RuneCountInString(s) <= 1 {
		return s
	}
	return "(" + s + ")"
}

// scriptForm maps a super- or subscript body rune by rune, falling back
// to marker notation when any rune has no script form.
func scriptForm(body string, m map[rune]rune, marker string) string {
	if body == "" {
		return ""
	}
	if mapped, ok := mapRunes(body, m); ok {
		return mapped
	}
	if utf8.RuneCountInString(body) == 1 {
		return marker + body
	}
	return marker + "(" + body + ")"
}

func mapRunes(s string, m map[rune]rune) (string, bool) {
	var b strings.Builder
	for _, r := range s {
		mr, ok := m[r]
		if !ok {
			return "", false
		}
		b.WriteRune(mr)
	}
	return b.String(), true
}

var supRunes = map[rune]rune{
	'0': '⁰', '1': '¹', '2': '²', '3': '³',
	'4': '⁴', '5': '⁵', '6': '⁶', '7': '⁷',
	'8': '⁸', '9': '⁹',
	'+': '⁺', '-': '⁻', '=': '⁼',
	'(': '⁽', ')': '⁾',
	'i': 'ⁱ', 'n': 'ⁿ',
}

var subRunes = map[rune]rune{
	'0': '₀', '1': '₁', '2': '₂', '3': '₃',
	'4': '₄', '5': '₅', '6': '₆', '7': '₇',
	'8': '₈', '9': '₉',
	'+': '₊', '-': '₋', '=': '₌',
	'(': '₍', ')': '₎',
	'a': 'ₐ', 'e': 'ₑ', 'h': 'ₕ', 'i': 'ᵢ',
	'j': 'ⱼ', 'k': 'ₖ', 'l': 'ₗ', 'm': 'ₘ',
	'n': 'ₙ', 'o': 'ₒ', 'p': 'ₚ', 'r': 'ᵣ',
	's': 'ₛ', 't': 'ₜ', 'u': 'ᵤ', 'v': 'ᵥ',
	'x': 'ₓ',
}

var symbols = map[string]string{
	"alpha": "α", "beta": "β", "gamma": "γ",
	"delta": "δ", "epsilon": "ε", "varepsilon": "ε",
	"zeta": "ζ", "eta": "η", "theta": "θ",
	"vartheta": "ϑ", "iota": "ι", "kappa": "κ",
	"lambda": "λ", "mu": "μ", "nu": "ν",
	"xi": "ξ", "pi": "π", "rho": "ρ",
	"sigma": "σ", "tau": "τ", "upsilon": "υ",
	"phi": "φ", "varphi": "φ", "chi": "χ",
	"psi": "ψ", "omega": "ω",
	"Gamma": "Γ", "Delta": "Δ", "Theta": "Θ",
	"Lambda": "Λ", "Xi": "Ξ", "Pi": "Π",
	"Sigma": "Σ", "Upsilon": "Υ", "Phi": "Φ",
	"Psi": "Ψ", "Omega": "Ω",

	"times": "×", "div": "÷", "cdot": "⋅",
	"pm": "±", "mp": "∓", "ast": "∗",
	"le": "≤", "leq": "≤", "ge": "≥", "geq": "≥",
	"ne": "≠", "neq": "≠", "approx": "≈",
	"equiv": "≡", "sim": "∼", "simeq": "≃",
	"propto": "∝", "ll": "≪", "gg": "≫",

	"to": "→", "rightarrow": "→", "leftarrow": "←",
	"leftrightarrow": "↔", "Rightarrow": "⇒",
	"Leftarrow": "⇐", "Leftrightarrow": "⇔",
	"mapsto": "↦", "uparrow": "↑", "downarrow": "↓",

	"sum": "∑", "prod": "∏", "int": "∫",
	"oint": "∮", "partial": "∂", "nabla": "∇",
	"infty": "∞", "emptyset": "∅", "varnothing": "∅",

	"in": "∈", "notin": "∉", "ni": "∋",
	"subset": "⊂", "supset": "⊃", "subseteq": "⊆",
	"supseteq": "⊇", "cup": "∪", "cap": "∩",
	"setminus": "∖", "forall": "∀", "exists": "∃",
	"nexists": "∄", "land": "∧", "lor": "∨",
	"neg": "¬", "lnot": "¬", "implies": "⇒",
	"iff": "⇔",

	"ldots": "…", "cdots": "⋯", "dots": "…",
	"vdots": "⋮", "ddots": "⋱",
	"prime": "′", "degree": "°", "circ": "∘",
	"bullet": "•", "star": "⋆", "oplus": "⊕",
	"otimes": "⊗", "perp": "⊥", "parallel": "∥",
	"angle": "∠", "triangle": "△", "hbar": "ℏ",
	"ell": "ℓ", "Re": "ℜ", "Im": "ℑ",
	"aleph": "ℵ",

	"sin": "sin", "cos": "cos", "tan": "tan", "cot": "cot",
	"sec": "sec", "csc": "csc", "log": "log", "ln": "ln",
	"lg": "lg", "exp": "exp", "lim": "lim", "sup": "sup",
	"inf": "inf", "max": "max", "min": "min", "det": "det",
	"dim": "dim", "mod": "mod", "gcd": "gcd", "arg": "arg",
}
