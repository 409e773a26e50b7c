//go:build headless

package playback

import (
	"io"
	"log/slog"
	"sync"
)

// Player is a device-free stand-in that never pulls audio.
type Player struct {
	log     *slog.Logger
	playing bool
	mutex   sync.Mutex
}

// NewPlayer returns a headless player.
func NewPlayer(sampleRate, channels int, log *slog.Logger) (*Player, error) {
	if log == nil {
		log = slog.Default()
	}
	log.Debug("headless audio", "sampleRate", sampleRate, "channels", channels)
	return &Player{log: log}, nil
}

// Play marks the player as playing.
func (p *Player) Play(io.Reader) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.playing = true
}

// IsPlaying reports whether Play was called.
func (p *Player) IsPlaying() bool {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.playing
}

// Err always returns nil.
func (p *Player) Err() error { return nil }

// Close stops the player.
func (p *Player) Close() error {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.playing = false
	return nil
}
