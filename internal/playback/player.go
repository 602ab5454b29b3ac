// Package playback tracks requested playback intent. The daemon records
// what callers asked for; no audio pipeline is attached yet, so the
// player is the authoritative answer to "what should be playing".
package playback

import "sync"

// State is the requested playback state.
type State string

const (
	StateIdle    State = "idle"
	StatePlaying State = "playing"
	StatePaused  State = "paused"
)

// Volume bounds in percent. SetVolume clamps into this range.
const (
	MinVolumePercent     = 0
	MaxVolumePercent     = 200
	DefaultVolumePercent = 100
)

// Track describes the media a caller asked to play.
type Track struct {
	Title     string
	SourceURL string
}

// Status is a point-in-time snapshot of the player.
type Status struct {
	State         State
	Track         Track
	VolumePercent int
}

// Player is a mutex-guarded playback intent machine. The zero value is
// not usable; construct with NewPlayer.
type Player struct {
	mu     sync.Mutex
	state  State
	track  Track
	volume int
}

// NewPlayer returns an idle player at the default volume.
func NewPlayer() *Player {
	return &Player{
		state:  StateIdle,
		volume: DefaultVolumePercent,
	}
}

// Play records a new track and moves to playing. Calling Play while
// already playing replaces the current track.
func (p *Player) Play(track Track) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.track = track
	p.state = StatePlaying
}

// Pause moves playing to paused. Any other state is left untouched.
func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == StatePlaying {
		p.state = StatePaused
	}
}

// Resume moves paused back to playing. Any other state is left
// untouched.
func (p *Player) Resume() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == StatePaused {
		p.state = StatePlaying
	}
}

// Stop clears the current track and returns to idle. Volume is
// preserved across stops.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = StateIdle
	p.track = Track{}
}

// SetVolume clamps percent into [MinVolumePercent, MaxVolumePercent],
// stores it, and returns the applied value.
func (p *Player) SetVolume(percent int) int {
	applied := clampVolume(percent)
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volume = applied
	return applied
}

// Status returns a snapshot of the current intent.
func (p *Player) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Status{
		State:         p.state,
		Track:         p.track,
		VolumePercent: p.volume,
	}
}

func clampVolume(percent int) int {
	if percent < MinVolumePercent {
		return MinVolumePercent
	}
	if percent > MaxVolumePercent {
		return MaxVolumePercent
	}
	return percent
}
