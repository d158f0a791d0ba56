package scanner_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/princekenny23/primepos-sub004/models"
	"github.com/princekenny23/primepos-sub004/scanner"
)

func testSettings() scanner.Settings {
	return scanner.Settings{
		MinLength:       3,
		SuffixKey:       "Enter",
		InterKeyTimeout: 60 * time.Millisecond,
		Enabled:         true,
	}
}

func newDecoder(t *testing.T) (*scanner.Decoder, *[]models.ScanEvent) {
	t.Helper()
	d, err := scanner.NewDecoder(testSettings(), nil)
	require.NoError(t, err)

	var events []models.ScanEvent
	d.Subscribe(func(ev models.ScanEvent) {
		events = append(events, ev)
	})
	return d, &events
}

// feed sends keys spaced 1ms apart, scanner-fast.
func feed(d *scanner.Decoder, start time.Time, keys ...string) time.Time {
	ts := start
	for _, k := range keys {
		d.HandleKey(models.KeyEvent{Key: k, Timestamp: ts})
		ts = ts.Add(time.Millisecond)
	}
	return ts
}

func TestDecoder_FastBurstWithSuffix(t *testing.T) {
	d, events := newDecoder(t)

	feed(d, time.Now(), "1", "2", "3", "4", "5", "Enter")

	require.Len(t, *events, 1)
	assert.Equal(t, "12345", (*events)[0].Code)
	assert.Equal(t, models.ScanSourceScanner, (*events)[0].Source)
}

func TestDecoder_NumpadEnterNormalizes(t *testing.T) {
	d, events := newDecoder(t)

	feed(d, time.Now(), "9", "8", "7", "NumpadEnter")

	require.Len(t, *events, 1)
	assert.Equal(t, "987", (*events)[0].Code)
}

func TestDecoder_GapDiscardsBuffer(t *testing.T) {
	d, events := newDecoder(t)

	ts := feed(d, time.Now(), "A", "B", "C")
	// A human-scale pause, then unrelated input. The old buffer must never
	// be concatenated with it.
	ts = ts.Add(500 * time.Millisecond)
	d.HandleKey(models.KeyEvent{Key: "X", Timestamp: ts})
	d.HandleKey(models.KeyEvent{Key: "Y", Timestamp: ts.Add(time.Millisecond)})
	d.HandleKey(models.KeyEvent{Key: "Z", Timestamp: ts.Add(2 * time.Millisecond)})
	d.HandleKey(models.KeyEvent{Key: "Enter", Timestamp: ts.Add(3 * time.Millisecond)})

	require.Len(t, *events, 1)
	assert.Equal(t, "XYZ", (*events)[0].Code)
}

func TestDecoder_ShortBufferDroppedSilently(t *testing.T) {
	d, events := newDecoder(t)

	feed(d, time.Now(), "1", "2", "Enter")

	assert.Empty(t, *events)
}

func TestDecoder_NamedKeysIgnored(t *testing.T) {
	d, events := newDecoder(t)

	feed(d, time.Now(), "Shift", "1", "F1", "2", "ArrowLeft", "3", "Enter")

	require.Len(t, *events, 1)
	assert.Equal(t, "123", (*events)[0].Code)
}

func TestDecoder_IdleTimeoutFinalizesWithoutSuffix(t *testing.T) {
	cfg := testSettings()
	cfg.InterKeyTimeout = 10 * time.Millisecond
	d, err := scanner.NewDecoder(cfg, nil)
	require.NoError(t, err)

	ch := make(chan models.ScanEvent, 1)
	d.Subscribe(func(ev models.ScanEvent) { ch <- ev })

	now := time.Now()
	d.HandleKey(models.KeyEvent{Key: "7", Timestamp: now})
	d.HandleKey(models.KeyEvent{Key: "8", Timestamp: now.Add(time.Millisecond)})
	d.HandleKey(models.KeyEvent{Key: "9", Timestamp: now.Add(2 * time.Millisecond)})

	select {
	case ev := <-ch:
		assert.Equal(t, "789", ev.Code)
	case <-time.After(time.Second):
		t.Fatal("expected idle flush to emit a scan")
	}
}

func TestDecoder_Unsubscribe(t *testing.T) {
	d, err := scanner.NewDecoder(testSettings(), nil)
	require.NoError(t, err)

	var got int
	unsubscribe := d.Subscribe(func(models.ScanEvent) { got++ })
	unsubscribe()

	feed(d, time.Now(), "1", "2", "3", "Enter")
	assert.Zero(t, got)
}

func TestDecoder_DisabledIgnoresKeys(t *testing.T) {
	d, events := newDecoder(t)
	off := false
	require.NoError(t, d.Apply(scanner.SettingsPatch{Enabled: &off}))

	feed(d, time.Now(), "1", "2", "3", "Enter")
	assert.Empty(t, *events)
}

func TestDecoder_LiveReconfiguration(t *testing.T) {
	d, events := newDecoder(t)

	minLen := 5
	require.NoError(t, d.Apply(scanner.SettingsPatch{MinLength: &minLen}))

	feed(d, time.Now(), "1", "2", "3", "Enter")
	assert.Empty(t, *events, "below new min length")

	feed(d, time.Now(), "1", "2", "3", "4", "5", "Enter")
	require.Len(t, *events, 1)
	assert.Equal(t, "12345", (*events)[0].Code)
}

func TestDecoder_InvalidSettingsRejected(t *testing.T) {
	d, _ := newDecoder(t)

	bad := 0
	err := d.Apply(scanner.SettingsPatch{MinLength: &bad})
	assert.Error(t, err)
	assert.Equal(t, 3, d.Config().MinLength, "config unchanged after rejected patch")
}
