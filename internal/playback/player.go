//go:build !headless

package playback

import (
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

const deviceBuffer = 20 * time.Millisecond

// Player owns the audio device. Its mutex only guards control operations;
// the device reads the stream without locking.
type Player struct {
	ctx    *oto.Context
	player *oto.Player
	log    *slog.Logger
	mutex  sync.Mutex
}

// NewPlayer opens the default output device for float32 interleaved audio.
func NewPlayer(sampleRate, channels int, log *slog.Logger) (*Player, error) {
	if log == nil {
		log = slog.Default()
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatFloat32LE,
		BufferSize:   deviceBuffer,
	})
	if err != nil {
		return nil, err
	}
	<-ready

	log.Debug("audio device ready", "sampleRate", sampleRate, "channels", channels, "buffer", deviceBuffer)
	return &Player{ctx: ctx, log: log}, nil
}

// Play starts pulling audio from r, replacing any previous source.
func (p *Player) Play(r io.Reader) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.player != nil {
		_ = p.player.Close()
	}
	p.player = p.ctx.NewPlayer(r)
	p.player.Play()
	p.log.Info("playback started")
}

// IsPlaying reports whether audio is being pulled.
func (p *Player) IsPlaying() bool {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.player != nil && p.player.IsPlaying()
}

// Err returns the error that stopped playback, if any.
func (p *Player) Err() error {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	if p.player == nil {
		return nil
	}
	return p.player.Err()
}

// Close stops playback and releases the player.
func (p *Player) Close() error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.player == nil {
		return nil
	}
	err := p.player.Close()
	p.player = nil
	p.log.Info("playback stopped")
	return err
}
