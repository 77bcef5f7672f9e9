// internal/event/event.go
package event

// Type identifies the kind of event.
type Type int

const (
	TypeUnknown Type = iota

	// Playback lifecycle
	TypeCommitLoaded     // Fired when a commit's step stream starts playing
	TypePlaybackFinished // Fired when the step stream is exhausted
	TypeWaitingForNext   // Fired while idling between commits

	// Application lifecycle
	TypeAppReady
	TypeAppQuit

	TypeThemeChanged
)

// Event is the structure passed through the event bus.
type Event struct {
	Type Type
	Data interface{}
}

// CommitLoadedData identifies the commit that just started playing.
type CommitLoadedData struct {
	Hash    string
	Summary string
}

// PlaybackFinishedData identifies the commit that finished playing.
type PlaybackFinishedData struct {
	Hash string
}

// ThemeChangedData names the newly active theme.
type ThemeChangedData struct {
	Name string
}
