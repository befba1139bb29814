// Package palette defines the raw ANSI sequences themes are built
// from. Colors use the 256-color space so palettes degrade sanely on
// terminals without truecolor.
package palette

import "strconv"

// Attribute prefixes composed into styles.
const (
	Reset         = "\x1b[0m"
	Bold          = "\x1b[1m"
	Dim           = "\x1b[2m"
	Italic        = "\x1b[3m"
	Underline     = "\x1b[4m"
	Strikethrough = "\x1b[9m"
)

// Palette holds per-concern color prefixes. Empty fields inherit the
// terminal foreground. Attributes such as bold for strong emphasis are
// layered on by the theme, not stored here, except in heading colors
// where weight is part of the look.
type Palette struct {
	Text          string
	H1            string
	H2            string
	H3            string
	H4            string
	H5            string
	H6            string
	Emphasis      string
	Strong        string
	Strike        string
	CodeInline    string
	CodeBlock     string
	Quote         string
	ListMarker    string
	LinkText      string
	LinkURL       string
	ThematicBreak string
	Math          string
	MathError     string
	Think         string
	ThinkBody     string
	Search        string
	SearchDone    string
}

func fg(n int) string {
	return "\x1b[38;5;" + strconv.Itoa(n) + "m"
}

// PaletteDefault is tuned for dark terminals with a warm heading ramp.
var PaletteDefault = Palette{
	H1:            Bold + fg(214),
	H2:            Bold + fg(220),
	H3:            Bold + fg(149),
	H4:            Bold + fg(117),
	H5:            Bold + fg(183),
	H6:            Bold + fg(246),
	Strike:        fg(245),
	CodeInline:    fg(156),
	CodeBlock:     fg(151),
	Quote:         fg(109),
	ListMarker:    fg(214),
	LinkText:      fg(75),
	LinkURL:       fg(244),
	ThematicBreak: fg(240),
	Math:          fg(222),
	MathError:     fg(203),
	Think:         fg(245),
	ThinkBody:     fg(245),
	Search:        fg(117),
	SearchDone:    fg(114),
}

// PaletteMono carries no colors at all; themes built on it style with
// attributes only. Used when color output is off.
var PaletteMono = Palette{}

var PaletteDracula = Palette{
	H1:            Bold + fg(212),
	H2:            Bold + fg(141),
	H3:            Bold + fg(117),
	H4:            Bold + fg(84),
	H5:            Bold + fg(228),
	H6:            Bold + fg(103),
	Strike:        fg(103),
	CodeInline:    fg(84),
	CodeBlock:     fg(228),
	Quote:         fg(103),
	ListMarker:    fg(141),
	LinkText:      fg(117),
	LinkURL:       fg(61),
	ThematicBreak: fg(61),
	Math:          fg(228),
	MathError:     fg(203),
	Think:         fg(103),
	ThinkBody:     fg(103),
	Search:        fg(117),
	SearchDone:    fg(84),
}

var PaletteGruvbox = Palette{
	H1:            Bold + fg(208),
	H2:            Bold + fg(214),
	H3:            Bold + fg(142),
	H4:            Bold + fg(108),
	H5:            Bold + fg(175),
	H6:            Bold + fg(245),
	Strike:        fg(245),
	CodeInline:    fg(142),
	CodeBlock:     fg(108),
	Quote:         fg(245),
	ListMarker:    fg(208),
	LinkText:      fg(109),
	LinkURL:       fg(245),
	ThematicBreak: fg(241),
	Math:          fg(214),
	MathError:     fg(167),
	Think:         fg(245),
	ThinkBody:     fg(245),
	Search:        fg(109),
	SearchDone:    fg(142),
}

var PaletteNord = Palette{
	H1:            Bold + fg(111),
	H2:            Bold + fg(110),
	H3:            Bold + fg(109),
	H4:            Bold + fg(152),
	H5:            Bold + fg(139),
	H6:            Bold + fg(245),
	Strike:        fg(60),
	CodeInline:    fg(108),
	CodeBlock:     fg(152),
	Quote:         fg(60),
	ListMarker:    fg(110),
	LinkText:      fg(111),
	LinkURL:       fg(60),
	ThematicBreak: fg(59),
	Math:          fg(222),
	MathError:     fg(131),
	Think:         fg(60),
	ThinkBody:     fg(60),
	Search:        fg(110),
	SearchDone:    fg(108),
}

var PaletteSolarizedDark = Palette{
	H1:            Bold + fg(166),
	H2:            Bold + fg(136),
	H3:            Bold + fg(64),
	H4:            Bold + fg(37),
	H5:            Bold + fg(61),
	H6:            Bold + fg(244),
	Strike:        fg(240),
	CodeInline:    fg(37),
	CodeBlock:     fg(64),
	Quote:         fg(240),
	ListMarker:    fg(166),
	LinkText:      fg(33),
	LinkURL:       fg(240),
	ThematicBreak: fg(240),
	Math:          fg(136),
	MathError:     fg(160),
	Think:         fg(240),
	ThinkBody:     fg(244),
	Search:        fg(33),
	SearchDone:    fg(64),
}

// PaletteGithubLight targets light backgrounds.
var PaletteGithubLight = Palette{
	H1:            Bold + fg(24),
	H2:            Bold + fg(25),
	H3:            Bold + fg(26),
	H4:            Bold + fg(31),
	H5:            Bold + fg(61),
	H6:            Bold + fg(243),
	Strike:        fg(246),
	CodeInline:    fg(88),
	CodeBlock:     fg(235),
	Quote:         fg(243),
	ListMarker:    fg(26),
	LinkText:      fg(26),
	LinkURL:       fg(246),
	ThematicBreak: fg(250),
	Math:          fg(94),
	MathError:     fg(124),
	Think:         fg(243),
	ThinkBody:     fg(243),
	Search:        fg(26),
	SearchDone:    fg(28),
}

var PaletteTokyoNight = Palette{
	H1:            Bold + fg(141),
	H2:            Bold + fg(111),
	H3:            Bold + fg(117),
	H4:            Bold + fg(115),
	H5:            Bold + fg(179),
	H6:            Bold + fg(60),
	Strike:        fg(60),
	CodeInline:    fg(115),
	CodeBlock:     fg(117),
	Quote:         fg(60),
	ListMarker:    fg(141),
	LinkText:      fg(111),
	LinkURL:       fg(60),
	ThematicBreak: fg(60),
	Math:          fg(179),
	MathError:     fg(210),
	Think:         fg(60),
	ThinkBody:     fg(60),
	Search:        fg(111),
	SearchDone:    fg(115),
}
