// SPDX-License-Identifier: MPL-2.0

// Package config loads taosrelease settings using Viper with CUE as the file
// format.
//
// The file is taosrelease.cue in the source root, or the path given with
// --config. It is validated against the embedded #Config schema
// (config_schema.cue) and merged over the defaults, so every key is optional
// and a missing file simply yields DefaultConfig.
package config
