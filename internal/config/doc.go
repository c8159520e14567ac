// Package config provides configuration management for ytbatch.
//
// This package handles:
//   - Default configuration values
//   - Loading settings from a YAML or JSON file with viper
//   - YTBATCH_* environment overrides
//   - Validation before any download starts
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// Downloads to ./downloads
//	// 5 parallel downloads
//	// Audio transcoded to mp3 at quality 192
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/ytbatch.yaml")
//	if err != nil {
//	    // invalid file or failed validation
//	}
//
// A missing file is not an error; defaults (plus environment) are used.
//
// # Environment
//
// Every key can be overridden with an upper-cased YTBATCH_ variable:
//
//	YTBATCH_MAX_PARALLEL_DOWNLOADS=8 ytbatch batch --file urls.txt
package config
