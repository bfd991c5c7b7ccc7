package session

// Track is one entry in the workout playlist.
type Track struct {
	Title    string
	Artist   string
	Duration string
}

// Playlist is the music tab's player state. Playback itself happens outside
// the process; this only tracks what the UI shows.
type Playlist struct {
	tracks  []Track
	current int
	playing bool
	notice  string
}

func defaultPlaylist() Playlist {
	return Playlist{
		tracks: []Track{
			{Title: "Warmup Voltage", Artist: "Iron Cadence", Duration: "3:12"},
			{Title: "Last Set Standing", Artist: "Rep Count", Duration: "4:01"},
			{Title: "Chalk Dust", Artist: "The Spotters", Duration: "2:47"},
			{Title: "Negative Split", Artist: "Tempo Run", Duration: "3:38"},
			{Title: "Cooldown Protocol", Artist: "Iron Cadence", Duration: "5:20"},
		},
	}
}

// Tracks returns the playlist entries in order.
func (p *Playlist) Tracks() []Track {
	return p.tracks
}

// Current returns the index of the selected track.
func (p *Playlist) Current() int {
	return p.current
}

// Playing reports whether playback is running.
func (p *Playlist) Playing() bool {
	return p.playing
}

// PlayPause toggles playback and clears any stale notice.
func (p *Playlist) PlayPause() {
	p.playing = !p.playing
	p.notice = ""
}

// NextTrack advances to the next track, wrapping at the end.
func (p *Playlist) NextTrack() {
	if len(p.tracks) == 0 {
		return
	}
	p.current = (p.current + 1) % len(p.tracks)
}

// PrevTrack moves to the previous track, wrapping at the start.
func (p *Playlist) PrevTrack() {
	if len(p.tracks) == 0 {
		return
	}
	p.current = (p.current - 1 + len(p.tracks)) % len(p.tracks)
}

// PlaybackFailed stops playback and records a user-visible notice.
func (p *Playlist) PlaybackFailed(reason string) {
	p.playing = false
	if reason == "" {
		reason = "playback failed"
	}
	p.notice = reason
}

// Notice returns the current player notice, empty when none.
func (p *Playlist) Notice() string {
	return p.notice
}
