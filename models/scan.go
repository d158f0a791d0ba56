package models

import "time"

// KeyEvent is one raw key press forwarded from the terminal. Key follows the
// browser KeyboardEvent.key convention: single characters for printable keys,
// names like "Enter" or "Shift" for the rest.
type KeyEvent struct {
	Key       string    `json:"key"`
	Timestamp time.Time `json:"timestamp"`
}

// ScanEvent is one completed barcode scan decoded from the key stream.
type ScanEvent struct {
	Code   string `json:"code"`
	Source string `json:"source"`
}

// ScanSourceScanner marks events produced by the keyboard-wedge decoder.
const ScanSourceScanner = "scanner"
