package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/princekenny23/primepos-sub004/middleware"
	"github.com/princekenny23/primepos-sub004/models"
	"github.com/princekenny23/primepos-sub004/scanner"
)

type ScanController struct{}

func NewScanController() *ScanController {
	return &ScanController{}
}

type keyEventRequest struct {
	Key         string `json:"key" binding:"required"`
	TimestampMs int64  `json:"timestamp_ms"`
}

type postKeysRequest struct {
	Events []keyEventRequest `json:"events" binding:"required,min=1,dive"`
}

// PostKeys feeds a batch of raw key events from the terminal into the
// decoder. Completed scans fan out to the decoder's subscribers; the
// endpoint itself only acknowledges receipt.
func (sc *ScanController) PostKeys(c *gin.Context) {
	s := middleware.TerminalSession(c)

	var req postKeysRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	for _, ev := range req.Events {
		var ts time.Time
		if ev.TimestampMs > 0 {
			ts = time.UnixMilli(ev.TimestampMs)
		}
		s.Decoder.HandleKey(models.KeyEvent{Key: ev.Key, Timestamp: ts})
	}
	c.JSON(http.StatusAccepted, gin.H{"received": len(req.Events)})
}

type settingsRequest struct {
	MinLength         *int    `json:"min_length,omitempty"`
	SuffixKey         *string `json:"suffix_key,omitempty"`
	InterKeyTimeoutMs *int    `json:"inter_key_timeout_ms,omitempty"`
	Enabled           *bool   `json:"enabled,omitempty"`
}

// UpdateSettings applies a live, partial decoder reconfiguration.
func (sc *ScanController) UpdateSettings(c *gin.Context) {
	s := middleware.TerminalSession(c)

	var req settingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	patch := scanner.SettingsPatch{
		MinLength: req.MinLength,
		SuffixKey: req.SuffixKey,
		Enabled:   req.Enabled,
	}
	if req.InterKeyTimeoutMs != nil {
		d := time.Duration(*req.InterKeyTimeoutMs) * time.Millisecond
		patch.InterKeyTimeout = &d
	}

	if err := s.Decoder.Apply(patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid scanner settings"})
		return
	}
	c.JSON(http.StatusOK, s.Decoder.Config())
}
