package domain

// PlaybackState is a snapshot of one mounted player. ProgressFraction is in
// [0,1]; it stays at its last value until the element reports a positive
// duration.
type PlaybackState struct {
	VideoID          VideoID `json:"video_id"`
	Playing          bool    `json:"playing"`
	Muted            bool    `json:"muted"`
	Loading          bool    `json:"loading"`
	ControlsVisible  bool    `json:"controls_visible"`
	ProgressFraction float64 `json:"progress_fraction"`
	DurationSeconds  float64 `json:"duration_seconds"`
}
