package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/shipboard/schema"
)

// Coverage label constants.
const (
	TrackedValue   = "Tracked"   // Tracked value
	PartialValue   = "Partial"   // Partial value
	UntrackedValue = "Untracked" // Untracked value
)

// Color variables for console output.
var (
	CriticalColor = color.New(color.FgRed, color.Bold)     // CriticalColor represents standard danger.
	HighColor     = color.New(color.FgMagenta, color.Bold) // HighColor represents strong, distinct warning.
	MediumColor   = color.New(color.FgYellow)              // MediumColor represents standard caution, not bold.
	LowColor      = color.New(color.FgCyan)                // LowColor represents informational / low-priority signal.
	GoodColor     = color.New(color.FgGreen)               // GoodColor represents a healthy state.
)

// GetPlainCoverageLabel returns a plain text label for a coverage percentage.
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainCoverageLabel(pct int) string {
	switch {
	case pct >= 80:
		return TrackedValue
	case pct >= 50:
		return PartialValue
	default:
		return UntrackedValue
	}
}

// GetColorCoverageLabel returns a colored coverage label for console output (table).
func GetColorCoverageLabel(pct int) string {
	text := GetPlainCoverageLabel(pct)

	switch text {
	case TrackedValue:
		return GoodColor.Sprint(text)
	case PartialValue:
		return MediumColor.Sprint(text)
	default:
		return CriticalColor.Sprint(text)
	}
}

// GetColorSeverityLabel returns a colored severity label for console output (table).
func GetColorSeverityLabel(severity schema.Severity) string {
	text := string(severity)

	switch severity {
	case schema.CriticalSeverity:
		return CriticalColor.Sprint(text)
	case schema.HighSeverity:
		return HighColor.Sprint(text)
	case schema.MediumSeverity:
		return MediumColor.Sprint(text)
	default:
		return LowColor.Sprint(text)
	}
}

// GetColorOwnerLabel highlights shared ownership, which signals a low bus factor risk
// of a different kind than single ownership.
func GetColorOwnerLabel(owner string) string {
	if owner == schema.SharedOwner {
		return MediumColor.Sprint(owner)
	}
	return HighColor.Sprint(owner)
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	Logger.WithError(err).Fatal(msg)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	Logger.WithError(err).Warn(msg)
}

// GetPrefsDBFilePath returns the path to the SQLite DB file for preferences storage.
func GetPrefsDBFilePath() string {
	return homeFile(".shipboard_prefs.db")
}

// GetPrefsBoltFilePath returns the path to the bbolt file for preferences storage.
func GetPrefsBoltFilePath() string {
	return homeFile(".shipboard_prefs.bolt")
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for snapshot history.
func GetHistoryDBFilePath() string {
	return homeFile(".shipboard_history.db")
}

func homeFile(name string) string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return name
	}
	return filepath.Join(homeDir, name)
}

// TruncateText truncates a name to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 so there is room for the "..." and at least one character.
func TruncateText(text string, maxWidth int) string {
	runes := []rune(text)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return text
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
