// Package trigger exposes the daemon's actions on a local Unix socket
// so hotkey daemons and scripts can invoke them.
package trigger

import (
	"encoding/json"
	"fmt"
)

// Command names that are not player actions. Action commands use the
// action name itself, e.g. "togglePlayPause" or "skipAlbum".
const (
	CmdVolumeGet    = "volumeGet"
	CmdVolumeSet    = "volumeSet"
	CmdVolumeAdjust = "volumeAdjust"
	CmdGetConfig    = "getConfig"
	CmdSetConfig    = "setConfig"
)

// Request is one newline-delimited JSON command from a client.
type Request struct {
	Cmd  string          `json:"cmd"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Response is the server's answer to a single request.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// VolumeRequest is the data for a volumeSet command.
type VolumeRequest struct {
	Level int `json:"level"`
}

// VolumeAdjustRequest is the data for a volumeAdjust command.
type VolumeAdjustRequest struct {
	Delta int `json:"delta"`
}

// VolumeResponse reports the level actually applied after clamping.
type VolumeResponse struct {
	Level int `json:"level"`
}

// TrackResponse carries the rendered now-playing line.
type TrackResponse struct {
	Line string `json:"line"`
}

// ConfigRequest is the data for a setConfig command. Only the fields
// present in the request are changed.
type ConfigRequest struct {
	AlertDurationSeconds *int    `json:"alertDurationSeconds,omitempty"`
	TrackFormat          *string `json:"trackFormat,omitempty"`
	MaxSkipAttempts      *int    `json:"maxSkipAttempts,omitempty"`
}

// ConfigResponse is the response to getConfig and setConfig.
type ConfigResponse struct {
	AlertDurationSeconds int    `json:"alertDurationSeconds"`
	TrackFormat          string `json:"trackFormat"`
	MaxSkipAttempts      int    `json:"maxSkipAttempts"`
	ProbeDelayMS         int    `json:"probeDelayMs"`
	VolumeStep           int    `json:"volumeStep"`
}

// DecodeRequest decodes a request from JSON
func DecodeRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to decode request: %w", err)
	}
	return &req, nil
}

// DecodeResponse decodes a response from JSON
func DecodeResponse(data []byte) (*Response, error) {
	var resp Response
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &resp, nil
}

// NewSuccessResponse creates a successful response
func NewSuccessResponse(data any) (*Response, error) {
	var rawData json.RawMessage
	if data != nil {
		var err error
		rawData, err = json.Marshal(data)
		if err != nil {
			return nil, err
		}
	}
	return &Response{
		Success: true,
		Data:    rawData,
	}, nil
}

// NewErrorResponse creates an error response
func NewErrorResponse(err string) *Response {
	return &Response{
		Success: false,
		Error:   err,
	}
}
