package ui

// ANSI color and style constants for CLI output
const (
	ColorReset = "\033[0m"
	ColorBold  = "\033[1m"
	ColorDim   = "\033[2m"

	ColorCyan   = "\033[36m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorWhite  = "\033[97m"
	ColorRed    = "\033[31m"
)

// Enabled turns styling on or off, e.g. for JSON logs or non-terminal output
var Enabled = true

func style(code, s string) string {
	if !Enabled {
		return s
	}
	return code + s + ColorReset
}

// Title styles a command name heading
func Title(s string) string {
	return style(ColorBold+ColorCyan, s)
}

// Section styles a help section heading
func Section(s string) string {
	return style(ColorBold+ColorWhite, s)
}

func Bold(s string) string {
	return style(ColorBold, s)
}

func Success(s string) string {
	return style(ColorGreen, s)
}

func Info(s string) string {
	return style(ColorDim+ColorYellow, s)
}

func Warn(s string) string {
	return style(ColorYellow, s)
}

func Error(s string) string {
	return style(ColorRed, s)
}
