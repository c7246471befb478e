package ipc

// WallpaperRequest is the POST /wallpaper payload. Exactly one of Path,
// Color or URL must be set; an empty Outputs list addresses every output.
type WallpaperRequest struct {
	Outputs []string `json:"outputs,omitempty"`
	Path    string   `json:"path,omitempty"`
	Color   string   `json:"color,omitempty"`
	URL     string   `json:"url,omitempty"`
	Resize  string   `json:"resize,omitempty"`

	Transition *TransitionOverride `json:"transition,omitempty"`
}

// TransitionOverride carries per-request transition settings; unset fields
// fall back to the daemon's configured defaults.
type TransitionOverride struct {
	Type     string   `json:"type,omitempty"`
	Duration *uint64  `json:"duration_ms,omitempty"`
	FPS      *uint64  `json:"fps,omitempty"`
	Bezier   string   `json:"bezier,omitempty"`
	Enabled  []string `json:"enabled,omitempty"`
}

type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Version string `json:"version"`
	PID     int    `json:"pid"`
	Socket  string `json:"socket"`
	Config  string `json:"config"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
