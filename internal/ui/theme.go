package ui

import (
	"github.com/gdamore/tcell/v2"
)

// BrowseTheme defines the color scheme for the interactive browser.
var BrowseTheme = struct {
	Primary tcell.Color
	Success tcell.Color
	Warning tcell.Color
	Error   tcell.Color

	Text    tcell.Color
	TextDim tcell.Color

	Background tcell.Color

	Border      tcell.Color
	BorderFocus tcell.Color
	Header      tcell.Color
	Selection   tcell.Color
}{
	Primary: tcell.ColorBlue,
	Success: tcell.ColorGreen,
	Warning: tcell.ColorYellow,
	Error:   tcell.ColorRed,

	Text:    tcell.ColorWhite,
	TextDim: tcell.ColorGray,

	Background: tcell.ColorBlack,

	Border:      tcell.ColorGray,
	BorderFocus: tcell.ColorBlue,
	Header:      tcell.ColorYellow,
	Selection:   tcell.ColorTeal,
}
