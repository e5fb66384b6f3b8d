package render

import "github.com/gdamore/tcell/v2"

// ColorTheme defines application colors.
type ColorTheme struct {
	Background    tcell.Color
	Foreground    tcell.Color
	InfoFg        tcell.Color
	PlaceholderFg tcell.Color
	CaretBg       tcell.Color
	CaretFg       tcell.Color
	SelectionBg   tcell.Color
	SelectionFg   tcell.Color
	DirectoryFg   tcell.Color
	FileFg        tcell.Color
	HiddenFg      tcell.Color
	MatchFg       tcell.Color
	AddProjectFg  tcell.Color
	FooterBg      tcell.Color
	FooterFg      tcell.Color
	SuccessBg     tcell.Color
	SuccessFg     tcell.Color
	ErrorBg       tcell.Color
	ErrorFg       tcell.Color
}

// GetColorTheme returns the default color scheme.
func GetColorTheme() ColorTheme {
	return ColorTheme{
		Background:    tcell.ColorDefault,
		Foreground:    tcell.ColorDefault,
		InfoFg:        tcell.ColorLightSlateGray,
		PlaceholderFg: tcell.ColorLightSlateGray,
		CaretBg:       tcell.Color33,
		CaretFg:       tcell.ColorWhite,
		SelectionBg:   tcell.Color33,
		SelectionFg:   tcell.ColorWhite,
		DirectoryFg:   tcell.Color33,
		FileFg:        tcell.ColorDefault,
		HiddenFg:      tcell.ColorLightSlateGray,
		MatchFg:       tcell.Color214, // amber for matched characters
		AddProjectFg:  tcell.Color70,
		FooterBg:      tcell.ColorDefault,
		FooterFg:      tcell.ColorDefault,
		SuccessBg:     tcell.ColorGreen,
		SuccessFg:     tcell.ColorBlack,
		ErrorBg:       tcell.ColorMaroon,
		ErrorFg:       tcell.ColorWhite,
	}
}
