// Copyright (c) 2025 Lazycat Apps
// Licensed under the MIT License. See LICENSE file in the project root for details.

package models

import "time"

// GateState represents the current state of a download countdown.
type GateState string

const (
	GateStateCounting    GateState = "counting"    // Countdown in progress
	GateStateRedirecting GateState = "redirecting" // Countdown reached zero, hand-off in progress
	GateStateOpened      GateState = "opened"      // Hand-off done, terminal
	GateStateCancelled   GateState = "cancelled"   // Cancelled before hand-off, terminal
)

// Terminal reports whether no further transitions can happen.
func (s GateState) Terminal() bool {
	return s == GateStateOpened || s == GateStateCancelled
}

// Resolution is a (software, part) pair resolved to a concrete download artifact.
type Resolution struct {
	Software       *SoftwareItem `json:"-"`
	SoftwareID     string        `json:"softwareId"`
	SoftwareName   string        `json:"softwareName"`
	VersionName    string        `json:"versionName"`
	Part           int           `json:"part"`
	Size           string        `json:"size"`
	Link           string        `json:"-"` // Exposed through the session only after hand-off
	IsSplitArchive bool          `json:"isSplitArchive"`
	TotalParts     int           `json:"totalParts"`
}

// GateSnapshot is a point-in-time view of a countdown.
type GateSnapshot struct {
	State     GateState `json:"state"`
	Remaining int       `json:"remaining"`
	Total     int       `json:"total"`
	Progress  float64   `json:"progress"`  // (total - remaining) / total, display only
	HandedOff bool      `json:"handedOff"` // Whether the hand-off has fired
}

// Gate event types sent over the session event stream.
const (
	GateEventTick    = "tick"
	GateEventHandoff = "handoff"
)

// GateEvent is one message on a gate session event stream.
type GateEvent struct {
	Type     string       `json:"type"`
	Snapshot GateSnapshot `json:"snapshot"`
	Link     string       `json:"link,omitempty"` // Only set on hand-off
}

// GateSessionResponse describes a gate session to API clients.
type GateSessionResponse struct {
	ID         string       `json:"id"`
	Resolution *Resolution  `json:"resolution"`
	Snapshot   GateSnapshot `json:"snapshot"`
	Link       string       `json:"link,omitempty"` // Only exposed once handed off
	CreatedAt  time.Time    `json:"createdAt"`
	ExpiresAt  time.Time    `json:"expiresAt"`
}
