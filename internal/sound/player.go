package sound

import (
	"bytes"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/hammamikhairi/ottobrew/internal/domain"
	"github.com/hammamikhairi/ottobrew/internal/logger"
)

// Compile-time interface check.
var _ domain.SoundPlayer = (*Player)(nil)

// Player plays cues through the system audio device via oto.
type Player struct {
	ctx    *oto.Context
	log    *logger.Logger
	volume float64

	mu     sync.Mutex
	cache  map[domain.Cue][]byte
	active map[*oto.Player]struct{}
}

// NewPlayer initializes the system audio context. Returns an error if the
// audio device is unavailable.
func NewPlayer(volume float64, log *logger.Logger) (*Player, error) {
	op := &oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: ChannelCount,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-readyChan

	log.Debug("audio player initialized (rate=%d, channels=%d)", SampleRate, ChannelCount)
	return &Player{
		ctx:    ctx,
		log:    log,
		volume: volume,
		cache:  make(map[domain.Cue][]byte),
		active: make(map[*oto.Player]struct{}),
	}, nil
}

// Play starts a cue and returns immediately. Cues may overlap.
func (p *Player) Play(cue domain.Cue) {
	pcm := p.pcm(cue)
	if len(pcm) == 0 {
		return
	}

	player := p.ctx.NewPlayer(bytes.NewReader(pcm))

	p.mu.Lock()
	p.active[player] = struct{}{}
	p.mu.Unlock()

	player.Play()
	p.log.Debug("audio player: playing %s (%d bytes)", cue, len(pcm))

	go p.reap(player)
}

// Stop interrupts every cue that is still playing. Safe to call
// concurrently and when nothing is playing.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for player := range p.active {
		player.Pause()
	}
	if len(p.active) > 0 {
		p.log.Debug("audio player: interrupted %d cue(s)", len(p.active))
	}
}

// reap waits for a player to finish or be paused, then releases it.
func (p *Player) reap(player *oto.Player) {
	for player.IsPlaying() {
		time.Sleep(10 * time.Millisecond)
	}

	p.mu.Lock()
	delete(p.active, player)
	p.mu.Unlock()

	if err := player.Close(); err != nil {
		p.log.Warn("audio player: closing: %v", err)
	}
}

// pcm returns the rendered cue, synthesizing it on first use.
func (p *Player) pcm(cue domain.Cue) []byte {
	p.mu.Lock()
	defer p.mu.Unlock()

	if data, ok := p.cache[cue]; ok {
		return data
	}
	data := Synthesize(cue, p.volume)
	p.cache[cue] = data
	return data
}
