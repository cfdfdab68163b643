package core

// Color is a foreground color for a raster cell.
// Holds any lipgloss-compatible color string: an ANSI index ("14") or a hex
// value ("#00ff9d"). The empty string means the terminal default.
type Color string

// Predefined colors for engine chrome and game elements.
const (
	ColorDefault       Color = ""
	ColorRed           Color = "1"
	ColorGreen         Color = "2"
	ColorYellow        Color = "3"
	ColorBlue          Color = "4"
	ColorMagenta       Color = "5"
	ColorCyan          Color = "6"
	ColorWhite         Color = "7"
	ColorBrightRed     Color = "9"
	ColorBrightGreen   Color = "10"
	ColorBrightYellow  Color = "11"
	ColorBrightBlue    Color = "12"
	ColorBrightMagenta Color = "13"
	ColorBrightCyan    Color = "14"
	ColorBrightWhite   Color = "15"
	ColorOrange        Color = "208"
	ColorGray          Color = "245"
	ColorDimGray       Color = "238"
)

// Accent palette shared by the hero variants.
const (
	ColorIcyBlue   Color = "#7fdbff"
	ColorSteelBlue Color = "#4682b4"
	ColorBaseWhite Color = "#f5f7fa"
	ColorNeonMint  Color = "#00ff9d"
)
