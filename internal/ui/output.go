package ui

import "fmt"

// PrintSuccess prints a success message.
func PrintSuccess(msg string) {
	fmt.Printf("%s%s%s %s%s\n", ColorGreen, SymbolCheck, ColorReset, msg, ColorReset)
}

// ErrorLine formats msg the way PrintError shows it.
func ErrorLine(msg string) string {
	return fmt.Sprintf("%s%s%s %s%s", ColorRed, SymbolCross, ColorReset, msg, ColorReset)
}

// PrintError prints an error message.
func PrintError(msg string) {
	fmt.Println(ErrorLine(msg))
}

// PrintInfo prints an info message.
func PrintInfo(msg string) {
	fmt.Printf("%s%s%s %s%s\n", ColorBlue, SymbolInfo, ColorReset, msg, ColorReset)
}

// WarningLine formats msg the way PrintWarning shows it.
func WarningLine(msg string) string {
	return fmt.Sprintf("%s%s%s %s%s", ColorYellow, SymbolWarning, ColorReset, msg, ColorReset)
}

// PrintWarning prints a warning message.
func PrintWarning(msg string) {
	fmt.Println(WarningLine(msg))
}

// PrintDownload prints a download message.
func PrintDownload(msg string) {
	fmt.Printf("%s%s%s %s%s\n", ColorCyan, SymbolDownload, ColorReset, msg, ColorReset)
}

// PrintProcessLine forwards one line of external-process output. Lines from
// the error stream are rendered in red.
func PrintProcessLine(line string, isErr bool) {
	if isErr {
		fmt.Printf("%s%s%s\n", ColorRed, line, ColorReset)
		return
	}
	fmt.Println(line)
}

// DescribeToggle returns the coloured enabled/disabled label for a setting.
func DescribeToggle(enabled bool) string {
	if enabled {
		return ColorGreen + "Enabled" + ColorReset
	}
	return ColorRed + "Disabled" + ColorReset
}
