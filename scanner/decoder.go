package scanner

import (
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/princekenny23/primepos-sub004/models"
)

// Settings configures the keyboard-wedge decoder. All fields can be changed
// live through Apply.
type Settings struct {
	MinLength       int           `json:"min_length" validate:"gte=1"`
	SuffixKey       string        `json:"suffix_key" validate:"required"`
	InterKeyTimeout time.Duration `json:"inter_key_timeout" validate:"gt=0"`
	Enabled         bool          `json:"enabled"`
}

// SettingsPatch carries a partial live reconfiguration; nil fields keep
// their current value.
type SettingsPatch struct {
	MinLength       *int           `json:"min_length,omitempty"`
	SuffixKey       *string        `json:"suffix_key,omitempty"`
	InterKeyTimeout *time.Duration `json:"inter_key_timeout_ms,omitempty"`
	Enabled         *bool          `json:"enabled,omitempty"`
}

var validate = validator.New()

// Decoder turns a raw key-event stream into discrete scan events. It relies
// on the keyboard-wedge convention: a scanner emits a fast character burst,
// optionally terminated by a suffix key, while a human types with gaps far
// longer than InterKeyTimeout. The decoder only observes the stream; it
// never consumes focus or suppresses key behavior.
type Decoder struct {
	mu      sync.Mutex
	cfg     Settings
	buf     strings.Builder
	lastKey time.Time
	idle    *time.Timer

	subs    map[int]func(models.ScanEvent)
	nextSub int

	log *zap.Logger
}

func NewDecoder(cfg Settings, log *zap.Logger) (*Decoder, error) {
	if err := validate.Struct(cfg); err != nil {
		return nil, err
	}
	return &Decoder{
		cfg:  cfg,
		subs: make(map[int]func(models.ScanEvent)),
		log:  log,
	}, nil
}

// Subscribe registers a listener for completed scans and returns its
// unsubscribe function. Emission is a broadcast: listeners never see each
// other and never couple to the decoder.
func (d *Decoder) Subscribe(fn func(models.ScanEvent)) func() {
	d.mu.Lock()
	defer d.mu.Unlock()
	id := d.nextSub
	d.nextSub++
	d.subs[id] = fn
	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		delete(d.subs, id)
	}
}

// Apply merges a partial settings update live. Invalid combinations are
// rejected without touching the current configuration.
func (d *Decoder) Apply(patch SettingsPatch) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	next := d.cfg
	if patch.MinLength != nil {
		next.MinLength = *patch.MinLength
	}
	if patch.SuffixKey != nil {
		next.SuffixKey = *patch.SuffixKey
	}
	if patch.InterKeyTimeout != nil {
		next.InterKeyTimeout = *patch.InterKeyTimeout
	}
	if patch.Enabled != nil {
		next.Enabled = *patch.Enabled
	}
	if err := validate.Struct(next); err != nil {
		return err
	}
	d.cfg = next
	return nil
}

func (d *Decoder) Config() Settings {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cfg
}

// HandleKey feeds one raw key event into the decoder. A zero timestamp means
// "now". Keys arriving after a gap longer than InterKeyTimeout start a fresh
// buffer; a human cannot type as fast as a scanner, so the gap marks
// unrelated input.
func (d *Decoder) HandleKey(ev models.KeyEvent) {
	d.mu.Lock()

	if !d.cfg.Enabled {
		d.mu.Unlock()
		return
	}

	now := ev.Timestamp
	if now.IsZero() {
		now = time.Now()
	}

	key := ev.Key
	// Numeric-keypad Enter behaves as the terminator too.
	if key == "NumpadEnter" {
		key = "Enter"
	}

	if key == d.cfg.SuffixKey {
		code, subs := d.finalizeLocked()
		d.mu.Unlock()
		d.emit(code, subs)
		return
	}

	// Multi-character named keys (Shift, F1, ...) are not scanner output.
	if len([]rune(key)) != 1 {
		d.mu.Unlock()
		return
	}

	if !d.lastKey.IsZero() && now.Sub(d.lastKey) > d.cfg.InterKeyTimeout {
		d.buf.Reset()
	}
	d.buf.WriteString(key)
	d.lastKey = now
	d.armIdleLocked()
	d.mu.Unlock()
}

// armIdleLocked (re)starts the idle timer that finalizes a suffix-less burst.
func (d *Decoder) armIdleLocked() {
	if d.idle != nil {
		d.idle.Stop()
	}
	d.idle = time.AfterFunc(d.cfg.InterKeyTimeout, func() {
		d.mu.Lock()
		code, subs := d.finalizeLocked()
		d.mu.Unlock()
		d.emit(code, subs)
	})
}

// finalizeLocked drains the buffer. Sub-minLength content is ordinary typing
// and is dropped silently; it is not an error.
func (d *Decoder) finalizeLocked() (string, []func(models.ScanEvent)) {
	if d.idle != nil {
		d.idle.Stop()
		d.idle = nil
	}
	code := strings.TrimSpace(d.buf.String())
	d.buf.Reset()
	d.lastKey = time.Time{}

	if len(code) < d.cfg.MinLength {
		return "", nil
	}
	subs := make([]func(models.ScanEvent), 0, len(d.subs))
	for _, fn := range d.subs {
		subs = append(subs, fn)
	}
	return code, subs
}

// emit broadcasts outside the lock so a listener can safely call back into
// the decoder.
func (d *Decoder) emit(code string, subs []func(models.ScanEvent)) {
	if code == "" {
		return
	}
	if d.log != nil {
		d.log.Debug("scan decoded", zap.String("code", code))
	}
	ev := models.ScanEvent{Code: code, Source: models.ScanSourceScanner}
	for _, fn := range subs {
		fn(ev)
	}
}
