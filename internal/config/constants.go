package config

import "time"

// Base application details
const AppName = "gitlapse"
const ConfigDirName = "gitlapse"
const ThemesDirName = "themes"
const DefaultConfigFileName = "config.toml"
const DefaultLogFileName = "gitlapse.log"

// Playback defaults
const DefaultSpeedMs = 30       // Base per-character typing speed
const DefaultTargetFPS = 120    // Frame governor target
const DefaultDialogSpeed = 2.0  // Dialog typing multiplier applied before jitter
const DefaultOrder = "random"   // random | asc | desc

// Playback order values.
const (
	OrderRandom = "random"
	OrderAsc    = "asc"
	OrderDesc   = "desc"
)

// Cursor blink interval for the simulated editor/terminal cursors.
const CursorBlinkInterval = 500 * time.Millisecond

// Delay between finishing one commit and loading the next, expressed as a
// multiple of the per-character speed.
const NextCommitDelayFactor = 100
