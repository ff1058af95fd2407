// Package config provides the settings for imgresize.
//
// This package handles:
//   - Default configuration values
//   - Validation of settings before a run starts
//   - Conversion to the menu and retry values used by other packages
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// Recognizes jpg, JPG, jpeg, JPEG, png and PNG
//	// Menu: 1a resizes by percentage, 1b to a fixed width and height
//	// Images below 3 megapixels are left alone in percentage mode
//
// Settings are built in code only. There is no configuration file,
// flag or environment variable layer.
//
// # Configuration Options
//
// Settings includes options for:
//   - Recognized image extensions
//   - Menu option aliases
//   - Retry limits per prompt type
//   - Size guard threshold
//   - Resampling filter and JPEG quality
//   - Output file naming
package config
