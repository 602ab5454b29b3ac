package playback

import "testing"

func TestNewPlayerStartsIdleAtDefaultVolume(t *testing.T) {
	player := NewPlayer()
	status := player.Status()
	if status.State != StateIdle {
		t.Fatalf("state = %q, want %q", status.State, StateIdle)
	}
	if status.VolumePercent != DefaultVolumePercent {
		t.Fatalf("volume = %d, want %d", status.VolumePercent, DefaultVolumePercent)
	}
	if status.Track != (Track{}) {
		t.Fatalf("track = %+v, want empty", status.Track)
	}
}

func TestPlayReplacesCurrentTrack(t *testing.T) {
	player := NewPlayer()
	player.Play(Track{Title: "first", SourceURL: "https://example.com/first"})
	player.Play(Track{Title: "second", SourceURL: "https://example.com/second"})

	status := player.Status()
	if status.State != StatePlaying {
		t.Fatalf("state = %q, want %q", status.State, StatePlaying)
	}
	if status.Track.Title != "second" || status.Track.SourceURL != "https://example.com/second" {
		t.Fatalf("track = %+v, want second", status.Track)
	}
}

func TestPauseOnlyAffectsPlaying(t *testing.T) {
	player := NewPlayer()

	player.Pause()
	if got := player.Status().State; got != StateIdle {
		t.Fatalf("pause while idle moved state to %q", got)
	}

	player.Play(Track{Title: "song"})
	player.Pause()
	if got := player.Status().State; got != StatePaused {
		t.Fatalf("pause while playing = %q, want %q", got, StatePaused)
	}

	player.Pause()
	if got := player.Status().State; got != StatePaused {
		t.Fatalf("second pause moved state to %q", got)
	}
}

func TestResumeOnlyAffectsPaused(t *testing.T) {
	player := NewPlayer()

	player.Resume()
	if got := player.Status().State; got != StateIdle {
		t.Fatalf("resume while idle moved state to %q", got)
	}

	player.Play(Track{Title: "song"})
	player.Resume()
	if got := player.Status().State; got != StatePlaying {
		t.Fatalf("resume while playing = %q, want %q", got, StatePlaying)
	}

	player.Pause()
	player.Resume()
	if got := player.Status().State; got != StatePlaying {
		t.Fatalf("resume after pause = %q, want %q", got, StatePlaying)
	}
}

func TestStopClearsTrackAndKeepsVolume(t *testing.T) {
	player := NewPlayer()
	player.Play(Track{Title: "song", SourceURL: "https://example.com/song"})
	player.SetVolume(150)
	player.Stop()

	status := player.Status()
	if status.State != StateIdle {
		t.Fatalf("state after stop = %q, want %q", status.State, StateIdle)
	}
	if status.Track != (Track{}) {
		t.Fatalf("track after stop = %+v, want empty", status.Track)
	}
	if status.VolumePercent != 150 {
		t.Fatalf("volume after stop = %d, want 150", status.VolumePercent)
	}
}

func TestStopWhileIdleIsHarmless(t *testing.T) {
	player := NewPlayer()
	player.Stop()
	player.Stop()
	if got := player.Status().State; got != StateIdle {
		t.Fatalf("state = %q, want %q", got, StateIdle)
	}
}

func TestSetVolumeClamps(t *testing.T) {
	cases := []struct {
		requested int
		want      int
	}{
		{-5, 0},
		{0, 0},
		{1, 1},
		{100, 100},
		{200, 200},
		{201, 200},
		{10000, 200},
	}

	player := NewPlayer()
	for _, tc := range cases {
		if applied := player.SetVolume(tc.requested); applied != tc.want {
			t.Fatalf("SetVolume(%d) = %d, want %d", tc.requested, applied, tc.want)
		}
		if got := player.Status().VolumePercent; got != tc.want {
			t.Fatalf("volume after SetVolume(%d) = %d, want %d", tc.requested, got, tc.want)
		}
	}
}

func TestVolumeAdjustableInAnyState(t *testing.T) {
	player := NewPlayer()
	if applied := player.SetVolume(30); applied != 30 {
		t.Fatalf("volume while idle = %d, want 30", applied)
	}
	player.Play(Track{Title: "song"})
	player.Pause()
	if applied := player.SetVolume(70); applied != 70 {
		t.Fatalf("volume while paused = %d, want 70", applied)
	}
	if got := player.Status().State; got != StatePaused {
		t.Fatalf("SetVolume changed state to %q", got)
	}
}
