package ui

// Color accessor functions return the escape code for the corresponding
// category of the active theme. They are used by the CLI layer so that
// callers never hold a stale theme across an InitTheme call.

// ColorPrimary returns the primary accent color code.
func ColorPrimary() string { return GetCurrentTheme().Primary }

// ColorSecondary returns the secondary color code.
func ColorSecondary() string { return GetCurrentTheme().Secondary }

// ColorGreen returns the success color code.
func ColorGreen() string { return GetCurrentTheme().Success }

// ColorYellow returns the warning color code.
func ColorYellow() string { return GetCurrentTheme().Warning }

// ColorRed returns the error color code.
func ColorRed() string { return GetCurrentTheme().Error }

// ColorCyan returns the info color code.
func ColorCyan() string { return GetCurrentTheme().Info }

// Bold returns the bold text code.
func Bold() string { return GetCurrentTheme().Bold }

// ColorReset returns the reset code.
func ColorReset() string { return GetCurrentTheme().Reset }
