package engine

import (
	"errors"
	"io"
	"log"
	"sync"
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"feed-frame/pkg/playback"
)

// keepUpWindow is the number of decoded frames after which playback is
// considered unlikely to stall.
const keepUpWindow = 8

// Player is a looping video engine backed by ffmpeg decode and an SDL
// streaming texture. Load opens the media off the render loop; texture work
// happens on the render loop in Update, because SDL rendering is not safe
// from other goroutines.
type Player struct {
	mu  sync.Mutex
	gen uint64

	locator  string
	dec      *videoDecoder
	pending  []byte // first decoded frame awaiting texture upload
	renderer *sdl.Renderer
	texture  *sdl.Texture

	itemReady   bool
	engineReady bool
	keepUp      bool
	failed      bool

	playing     bool
	decodeAhead bool // buffer frames while paused
	decoded     int

	accumulator float64
	lastUpdate  time.Time
}

var _ playback.Engine = (*Player)(nil)

// NewPlayer creates an idle player. SetRenderer must be called before frames
// can reach the screen.
func NewPlayer() *Player {
	return &Player{}
}

// SetRenderer attaches the SDL renderer used for texture creation and upload.
func (p *Player) SetRenderer(renderer *sdl.Renderer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.renderer = renderer
}

// Load tears down any current item and opens the new one in the background.
// Status flags reset immediately so stale readiness never leaks across items.
func (p *Player) Load(locator string) {
	p.mu.Lock()
	p.gen++
	gen := p.gen

	if p.dec != nil {
		p.dec.close()
		p.dec = nil
	}
	if p.texture != nil {
		p.texture.Destroy()
		p.texture = nil
	}
	p.locator = locator
	p.pending = nil
	p.itemReady = false
	p.engineReady = false
	p.keepUp = false
	p.failed = false
	p.playing = false
	p.decodeAhead = false
	p.decoded = 0
	p.accumulator = 0
	p.lastUpdate = time.Time{}
	p.mu.Unlock()

	go func() {
		dec, err := openDecoder(locator)

		p.mu.Lock()
		defer p.mu.Unlock()
		if p.gen != gen {
			// A newer Load superseded this one.
			if dec != nil {
				dec.close()
			}
			return
		}
		if err != nil {
			log.Printf("Player.Load: open failed | locator=%s err=%v", locator, err)
			p.failed = true
			return
		}
		p.itemReady = true

		// Decode the first frame here so the render loop only has to upload.
		data, err := dec.nextFrame()
		if err != nil {
			log.Printf("Player.Load: first frame failed | locator=%s err=%v", locator, err)
			dec.close()
			p.failed = true
			return
		}
		p.dec = dec
		p.pending = data
		p.decoded = 1
	}()
}

// Play starts frame advancement on subsequent Update calls.
func (p *Player) Play() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.playing = true
	p.lastUpdate = time.Time{}
}

// Pause freezes playback on the current frame.
func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.playing = false
}

// Preroll asks the player to buffer ahead while paused so that a later Play
// starts without a stall.
func (p *Player) Preroll() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.decodeAhead = true
}

// Status reports the current readiness flags.
func (p *Player) Status() playback.Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return playback.Status{
		ItemReady:      p.itemReady,
		EngineReady:    p.engineReady,
		LikelyToKeepUp: p.keepUp,
		Failed:         p.failed,
	}
}

// Update advances the player by one render-loop tick: attaches a freshly
// decoded item to a texture, then steps frames at the media's native rate.
// Must be called from the render loop.
func (p *Player) Update() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.attachLocked()
	if p.dec == nil || p.failed {
		return
	}

	if !p.playing {
		// Preroll path: keep decoding up to the keep-up window while paused.
		if p.decodeAhead && p.decoded < keepUpWindow {
			p.stepLocked(1)
		}
		return
	}

	now := time.Now()
	if p.lastUpdate.IsZero() {
		p.lastUpdate = now
	}
	p.accumulator += now.Sub(p.lastUpdate).Seconds() * p.dec.fps
	p.lastUpdate = now

	steps := int(p.accumulator)
	if steps == 0 {
		return
	}
	p.accumulator -= float64(steps)
	// Never try to catch up by more than a few frames after a long stall.
	if steps > 4 {
		steps = 4
	}
	p.stepLocked(steps)
}

// attachLocked uploads the first decoded frame to a new streaming texture.
// EngineReady flips only after this completes.
func (p *Player) attachLocked() {
	if p.texture != nil || p.pending == nil || p.renderer == nil || p.dec == nil {
		return
	}

	texture, err := p.renderer.CreateTexture(
		sdl.PIXELFORMAT_ABGR8888,
		sdl.TEXTUREACCESS_STREAMING,
		int32(p.dec.width),
		int32(p.dec.height),
	)
	if err != nil {
		log.Printf("Player.attach: texture creation failed | locator=%s err=%v", p.locator, err)
		p.failed = true
		return
	}
	p.texture = texture
	if err := p.uploadLocked(p.pending); err != nil {
		p.failed = true
		return
	}
	p.pending = nil
	p.engineReady = true
}

// stepLocked decodes and uploads up to steps frames, rewinding at end of
// stream so the item loops seamlessly.
func (p *Player) stepLocked(steps int) {
	rewound := false
	for i := 0; i < steps; i++ {
		data, err := p.dec.nextFrame()
		if errors.Is(err, io.EOF) {
			if rewound {
				// Rewind produced no frame either: the stream is unusable.
				log.Printf("Player.step: empty stream after rewind | locator=%s", p.locator)
				p.failed = true
				return
			}
			if err := p.dec.rewind(); err != nil {
				log.Printf("Player.step: rewind failed | locator=%s err=%v", p.locator, err)
				p.failed = true
				return
			}
			rewound = true
			i--
			continue
		}
		if err != nil {
			log.Printf("Player.step: decode failed | locator=%s err=%v", p.locator, err)
			p.failed = true
			return
		}
		rewound = false
		if err := p.uploadLocked(data); err != nil {
			p.failed = true
			return
		}
		p.decoded++
	}
	if p.decoded >= keepUpWindow {
		p.keepUp = true
	}
}

func (p *Player) uploadLocked(data []byte) error {
	if err := p.texture.Update(nil, data, p.dec.width*4); err != nil {
		log.Printf("Player.upload: texture update failed | locator=%s err=%v", p.locator, err)
		return err
	}
	return nil
}

// Draw renders the current frame letterboxed into a w x h viewport. A player
// without an attached texture draws nothing.
func (p *Player) Draw(renderer *sdl.Renderer, w, h int32) {
	p.mu.Lock()
	texture := p.texture
	var srcW, srcH int32
	if p.dec != nil {
		srcW = int32(p.dec.width)
		srcH = int32(p.dec.height)
	}
	p.mu.Unlock()

	if texture == nil || srcW == 0 || srcH == 0 {
		return
	}

	scale := float64(w) / float64(srcW)
	if s := float64(h) / float64(srcH); s < scale {
		scale = s
	}
	dstW := int32(float64(srcW) * scale)
	dstH := int32(float64(srcH) * scale)
	dst := sdl.Rect{
		X: (w - dstW) / 2,
		Y: (h - dstH) / 2,
		W: dstW,
		H: dstH,
	}
	renderer.Copy(texture, nil, &dst)
}

// Close releases the decoder and texture. The player is unusable afterwards.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gen++
	if p.dec != nil {
		p.dec.close()
		p.dec = nil
	}
	if p.texture != nil {
		p.texture.Destroy()
		p.texture = nil
	}
}
