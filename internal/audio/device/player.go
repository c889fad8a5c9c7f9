// Package device plays PCM cues on the default output.
package device

import (
	"bytes"
	"time"

	"github.com/hajimehoshi/oto/v2"

	"wasmsnake/internal/audio"
)

type Player struct {
	ctx    *oto.Context
	ready  chan struct{}
	volume float64
}

// New opens the output device. Playback requests made before the device is
// ready are dropped.
func New(volume float64) (*Player, error) {
	ctx, ready, err := oto.NewContext(audio.SampleRate, audio.ChannelCount, oto.FormatFloat32LE)
	if err != nil {
		return nil, err
	}
	return &Player{ctx: ctx, ready: ready, volume: volume}, nil
}

// Play starts samples in the background and returns immediately.
func (p *Player) Play(samples []byte) {
	if p == nil || len(samples) == 0 || p.volume <= 0 {
		return
	}
	select {
	case <-p.ready:
	default:
		return
	}
	go func() {
		player := p.ctx.NewPlayer(bytes.NewReader(samples))
		player.SetVolume(p.volume)
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		player.Close()
	}()
}
