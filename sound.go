package orbit

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"go.uber.org/zap"
)

// Tone is a short feedback sound.
type Tone uint8

const (
	ToneHover    Tone = iota // pointer enters a card
	ToneClick                // a card is selected or opened
	ToneRotation             // chime during ambient rotation
)

var toneNames = [...]string{
	ToneHover:    "hover",
	ToneClick:    "click",
	ToneRotation: "rotation",
}

// String returns the lower-case name of the tone.
func (t Tone) String() string {
	if int(t) < len(toneNames) {
		return toneNames[t]
	}
	return fmt.Sprintf("Tone(%d)", uint8(t))
}

// toneFrequency is the pitch of each tone in Hz.
var toneFrequency = [...]float64{
	ToneHover:    800,
	ToneClick:    1200,
	ToneRotation: 400,
}

const (
	toneLength = 100 * time.Millisecond

	hoverVolume    = 0.2
	selectVolume   = 0.5
	navigateVolume = 0.4
	rotationVolume = 0.05

	// rotationToneInterval is the ambient rotation time between chimes.
	rotationToneInterval = 30 * time.Second
)

// TonePlayer plays a tone at a volume in [0, 1].
type TonePlayer interface {
	PlayTone(t Tone, volume float64) error
}

// SoundManager turns view events into feedback tones: a hover tone when the
// pointer enters a card, a click tone on select or navigate and a quiet
// chime every so often while the collection rotates on its own. A tone
// plays at most once per tick. Without a player it does nothing.
type SoundManager struct {
	player   TonePlayer
	logger   *zap.Logger
	enabled  bool
	last     [len(toneNames)]uint64 // tick+1 of the last play
	rotation time.Duration
}

// NewSoundManager creates a sound manager on player. player may be nil.
func NewSoundManager(player TonePlayer, enabled bool, logger *zap.Logger) *SoundManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SoundManager{player: player, logger: logger, enabled: enabled}
}

// Enabled reports whether tones are played.
func (s *SoundManager) Enabled() bool { return s.enabled && s.player != nil }

// SetEnabled turns tones on or off.
func (s *SoundManager) SetEnabled(enabled bool) {
	s.enabled = enabled
	if !enabled {
		s.rotation = 0
	}
}

// Event plays the tone for evt, if it has one.
func (s *SoundManager) Event(evt ViewEvent) {
	switch evt.Type {
	case EventHoverEnter:
		s.play(ToneHover, hoverVolume, evt.Tick)
	case EventSelect:
		s.play(ToneClick, selectVolume, evt.Tick)
	case EventNavigate:
		s.play(ToneClick, navigateVolume, evt.Tick)
	}
}

// Update advances the rotation chime by dt seconds. rotating reports
// whether ambient rotation ran this tick.
func (s *SoundManager) Update(dt float64, rotating bool, tick uint64) {
	if !rotating || !s.Enabled() {
		return
	}
	s.rotation += time.Duration(dt * float64(time.Second))
	if s.rotation >= rotationToneInterval {
		s.rotation -= rotationToneInterval
		s.play(ToneRotation, rotationVolume, tick)
	}
}

func (s *SoundManager) play(t Tone, volume float64, tick uint64) {
	if !s.Enabled() || s.last[t] == tick+1 {
		return
	}
	s.last[t] = tick + 1
	if err := s.player.PlayTone(t, volume); err != nil {
		s.logger.Warn("tone playback failed", zap.Stringer("tone", t), zap.Error(err))
	}
}

// Close releases the player when it holds audio resources.
func (s *SoundManager) Close() error {
	s.enabled = false
	if c, ok := s.player.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// AudioTonePlayer plays synthesized tones through the Ebitengine audio
// context. Each tone keeps one player that is rewound on every play.
type AudioTonePlayer struct {
	ctx     *audio.Context
	players [len(toneNames)]*audio.Player
}

// NewAudioTonePlayer returns a tone player on the current audio context,
// creating one at sampleRate when none exists. sampleRate <= 0 means 44100.
func NewAudioTonePlayer(sampleRate int) *AudioTonePlayer {
	ctx := audio.CurrentContext()
	if ctx == nil {
		if sampleRate <= 0 {
			sampleRate = 44100
		}
		ctx = audio.NewContext(sampleRate)
	}
	return &AudioTonePlayer{ctx: ctx}
}

// PlayTone starts t from the beginning at volume.
func (p *AudioTonePlayer) PlayTone(t Tone, volume float64) error {
	if int(t) >= len(p.players) {
		return fmt.Errorf("orbit: unknown tone %v", t)
	}
	pl := p.players[t]
	if pl == nil {
		pl = p.ctx.NewPlayerF32FromBytes(synthTone(toneFrequency[t], toneLength, p.ctx.SampleRate()))
		p.players[t] = pl
	}
	pl.SetVolume(volume)
	if err := pl.Rewind(); err != nil {
		return err
	}
	pl.Play()
	return nil
}

// Close closes every tone player.
func (p *AudioTonePlayer) Close() error {
	var errs []error
	for i, pl := range p.players {
		if pl == nil {
			continue
		}
		errs = append(errs, pl.Close())
		p.players[i] = nil
	}
	return errors.Join(errs...)
}

// synthTone renders a decaying sine as interleaved stereo 32-bit float
// little-endian PCM.
func synthTone(freq float64, d time.Duration, sampleRate int) []byte {
	n := int(d.Seconds() * float64(sampleRate))
	buf := make([]byte, n*8)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(sampleRate)
		bits := math.Float32bits(float32(math.Sin(2*math.Pi*freq*t) * math.Exp(-2*t)))
		binary.LittleEndian.PutUint32(buf[i*8:], bits)
		binary.LittleEndian.PutUint32(buf[i*8+4:], bits)
	}
	return buf
}
