package models

import "time"

// LaunchRecord is a single viewer hand-off as stored in the history database.
type LaunchRecord struct {
	ID           int64     `json:"id"` // Database ID
	Ts           time.Time `json:"ts"`
	Hostname     string    `json:"hostname"`
	User         string    `json:"user"`
	Mode         string    `json:"mode"`
	ViewerPath   string    `json:"viewer_path"`
	PosterPath   string    `json:"poster_path,omitempty"` // empty for timed-loop launches
	CacheRefresh int       `json:"cache_refresh"`
	DisplayTime  int       `json:"display_time"`
}

type ModuleStatus struct {
	Name   string `json:"name"`
	OK     bool   `json:"ok"`
	Detail string `json:"detail,omitempty"`
}

// RuntimeStatus describes the Python runtime the viewer needs.
type RuntimeStatus struct {
	Interpreter string         `json:"interpreter"`
	Version     string         `json:"version"`
	Modules     []ModuleStatus `json:"modules"`
}
