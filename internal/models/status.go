package models

import "time"

type LoadState string

const (
	LoadStateIdle    LoadState = "idle"
	LoadStateLoading LoadState = "loading"
	LoadStateLoaded  LoadState = "loaded"
	LoadStateFailed  LoadState = "failed"
)

// Status is the user-visible load indicator of one dashboard.
type Status struct {
	State     LoadState `json:"state"`
	Detail    string    `json:"detail,omitempty"`
	FileName  string    `json:"file_name,omitempty"`
	Rows      int       `json:"rows"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (status Status) Failed() bool {
	return status.State == LoadStateFailed
}
