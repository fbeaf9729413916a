// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

package chat

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/zeebo/blake3"

	"github.com/parley-im/parley/api"
)

// FetchFunc fetches a conversation's full message page. The backend
// returns the page newest-first; the Syncer reverses it once before
// storing. The destination (friend or group) is bound by the caller.
type FetchFunc func(ctx context.Context) ([]api.RawMessage, error)

// SendFunc submits outgoing text to the conversation's destination and
// returns the backend's immediate record, which may lack a durable id.
type SendFunc func(ctx context.Context, content string) (api.RawMessage, error)

// SyncerConfig holds configuration for creating a Syncer.
type SyncerConfig struct {
	// Fetch retrieves the conversation's message page.
	Fetch FetchFunc
	// Send submits an outgoing message. Optional; a Syncer without
	// Send is read-only.
	Send SendFunc
	// Normalizer converts wire records for this conversation. Its
	// identity must be resolved — an unresolved identity is a
	// precondition failure, not a runtime degradation.
	Normalizer *Normalizer
	// Interval is the fixed re-fetch interval. Default: 3s.
	Interval time.Duration
	// Logger is used for structured logging. If nil, slog.Default()
	// is used. Poll failures are logged here and never surface to the
	// conversation view.
	Logger *slog.Logger
}

// Syncer maintains a conversation's display list by polling the
// backend on a fixed interval. Each successful fetch replaces the list
// wholesale; optimistic sends are carried across replacements until
// the backend's copy appears (matched by correlation key).
//
// Snapshots are delivered on Updates. The channel coalesces: a slow
// consumer sees the latest snapshot, not every intermediate one.
//
// Run executes the loop; fetches are sequential, so a slow fetch
// delays the next tick rather than overlapping it.
type Syncer struct {
	fetch      FetchFunc
	send       SendFunc
	normalizer *Normalizer
	interval   time.Duration
	logger     *slog.Logger

	mu       sync.Mutex
	messages []DisplayMessage
	pending  []pendingSend

	updates chan []DisplayMessage
}

// pendingSend is an optimistic append awaiting its authoritative copy.
type pendingSend struct {
	key     [32]byte
	display DisplayMessage
}

// correlationKey tags an outgoing message so the poll that returns its
// persisted copy can be recognized. Sender and content identify the
// send; the backend echoes both verbatim.
func correlationKey(senderID, content string) [32]byte {
	payload := make([]byte, 0, len(senderID)+1+len(content))
	payload = append(payload, senderID...)
	payload = append(payload, 0)
	payload = append(payload, content...)
	return blake3.Sum256(payload)
}

// NewSyncer creates a Syncer. The normalizer's identity must already
// be resolved; callers gate construction on identity availability
// rather than letting an unattributed loop run.
func NewSyncer(config SyncerConfig) (*Syncer, error) {
	if config.Fetch == nil {
		return nil, fmt.Errorf("chat: Fetch is required")
	}
	if config.Normalizer == nil {
		return nil, fmt.Errorf("chat: Normalizer is required")
	}
	if config.Normalizer.selfID == "" {
		return nil, fmt.Errorf("chat: identity not resolved")
	}

	interval := config.Interval
	if interval <= 0 {
		interval = 3 * time.Second
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Syncer{
		fetch:      config.Fetch,
		send:       config.Send,
		normalizer: config.Normalizer,
		interval:   interval,
		logger:     logger,
		updates:    make(chan []DisplayMessage, 1),
	}, nil
}

// Updates returns the snapshot channel. Each value is a fresh slice
// ordered oldest-first; the consumer owns it.
func (s *Syncer) Updates() <-chan []DisplayMessage {
	return s.updates
}

// Messages returns a copy of the current display list, oldest-first.
func (s *Syncer) Messages() []DisplayMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]DisplayMessage(nil), s.messages...)
}

// Run executes the synchronization loop: an immediate fetch, then one
// fetch per interval tick until ctx is cancelled. A failed fetch is
// logged and leaves the current list untouched; the loop continues on
// schedule. Returns ctx.Err() on cancellation.
func (s *Syncer) Run(ctx context.Context) error {
	s.poll(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.poll(ctx)
		}
	}
}

// poll fetches the page, normalizes it, reconciles pending sends, and
// publishes the new snapshot.
func (s *Syncer) poll(ctx context.Context) {
	page, err := s.fetch(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		// Background polling failures are invisible to the user; the
		// next tick retries.
		s.logger.Debug("poll failed", "error", err)
		return
	}

	// The backend returns newest-first; the view wants oldest-first.
	// Reverse exactly once, here.
	normalized := make([]DisplayMessage, 0, len(page))
	for index := len(page) - 1; index >= 0; index-- {
		normalized = append(normalized, s.normalizer.Normalize(page[index]))
	}

	s.mu.Lock()
	s.reconcileLocked(page, &normalized)
	s.messages = normalized
	snapshot := append([]DisplayMessage(nil), s.messages...)
	s.mu.Unlock()

	s.publish(snapshot)
}

// reconcileLocked consumes pending sends whose persisted copy appears
// in the fetched page, then re-appends the rest so an in-flight send
// survives the wholesale replacement. Called with s.mu held.
func (s *Syncer) reconcileLocked(page []api.RawMessage, normalized *[]DisplayMessage) {
	if len(s.pending) == 0 {
		return
	}

	// Count key occurrences so two identical in-flight sends need two
	// persisted copies before both pending entries are consumed.
	persisted := make(map[[32]byte]int, len(page))
	for _, raw := range page {
		persisted[correlationKey(raw.SenderID, raw.Content)]++
	}

	remaining := s.pending[:0]
	for _, pendingEntry := range s.pending {
		if persisted[pendingEntry.key] > 0 {
			persisted[pendingEntry.key]--
			continue
		}
		remaining = append(remaining, pendingEntry)
	}
	s.pending = remaining

	for _, pendingEntry := range s.pending {
		*normalized = append(*normalized, pendingEntry.display)
	}
}

// Send submits outgoing text and, on success, appends the normalized
// record to the display list (optimistic append: the backend's
// immediate response may lack a durable id, so the appended record
// carries a temporary id and a correlation key until a poll returns
// the persisted copy). On failure the list is unchanged and the error
// is returned for the caller to surface; no automatic retry.
func (s *Syncer) Send(ctx context.Context, content string) error {
	if s.send == nil {
		return fmt.Errorf("chat: conversation is read-only")
	}
	if content == "" {
		return fmt.Errorf("chat: message content is empty")
	}

	confirmed, err := s.send(ctx, content)
	if err != nil {
		return fmt.Errorf("chat: send failed: %w", err)
	}

	// Attribute the echo to the signed-in user and force a temporary
	// id — the immediate response's id, if any, is not authoritative.
	confirmed.SenderID = s.normalizer.selfID
	confirmed.ID = ""
	if confirmed.Content == "" {
		confirmed.Content = content
	}
	display := s.normalizer.Normalize(confirmed)

	s.mu.Lock()
	s.pending = append(s.pending, pendingSend{
		key:     correlationKey(s.normalizer.selfID, confirmed.Content),
		display: display,
	})
	s.messages = append(s.messages, display)
	snapshot := append([]DisplayMessage(nil), s.messages...)
	s.mu.Unlock()

	s.publish(snapshot)
	return nil
}

// publish delivers a snapshot, replacing any undelivered one.
func (s *Syncer) publish(snapshot []DisplayMessage) {
	for {
		select {
		case s.updates <- snapshot:
			return
		default:
		}
		select {
		case <-s.updates:
		default:
		}
	}
}
