package main

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// appDataDir returns an operating system specific directory to be used
// for storing application data for an application, following the
// per-OS conventions (%LOCALAPPDATA% on Windows, ~/Library/Application
// Support on macOS, ~/.appName on Unix). This is the
// same helper carried by every btcsuite-family CLI tool.
func appDataDir(appName string, roaming bool) string {
	if appName == "" || appName == "." {
		return "."
	}

	appName = strings.TrimPrefix(appName, ".")
	appNameUpper := strings.ToUpper(appName[:1]) + appName[1:]
	appNameLower := strings.ToLower(appName[:1]) + appName[1:]

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	switch runtime.GOOS {
	case "windows":
		appData := os.Getenv("LOCALAPPDATA")
		if roaming {
			appData = os.Getenv("APPDATA")
		}
		if appData == "" {
			return filepath.Join(homeDir, appNameUpper)
		}
		return filepath.Join(appData, appNameUpper)

	case "darwin":
		if homeDir == "." {
			return "." + appNameLower
		}
		return filepath.Join(homeDir, "Library", "Application Support", appNameUpper)

	case "plan9":
		if homeDir == "." {
			return "." + appNameLower
		}
		return filepath.Join(homeDir, appNameLower)

	default:
		if homeDir == "." {
			return "." + appNameLower
		}
		return filepath.Join(homeDir, "."+appNameLower)
	}
}
