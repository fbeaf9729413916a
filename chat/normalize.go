// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

package chat

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/parley-im/parley/api"
)

// SelfName is the display name for the signed-in user's own messages.
const SelfName = "You"

// UnknownName is the display name for a group sender who is neither a
// known member nor carries a senderName on the wire.
const UnknownName = "Unknown User"

// Author identifies a message's sender for rendering.
type Author struct {
	// ID is the sender's user id.
	ID string
	// DisplayName is "You" exactly when ID is the current identity;
	// otherwise the resolved counterparty name.
	DisplayName string
}

// DisplayMessage is the normalized, render-ready message record.
type DisplayMessage struct {
	// ID is the wire id when the backend assigned one, else a
	// temporary id unique within this process run.
	ID string
	// Text is the message body. Empty content normalizes to "".
	Text string
	// CreatedAt is the decoded timestamp, or the normalization time
	// when the wire record carried none.
	CreatedAt time.Time
	// Author is the resolved sender.
	Author Author
}

// TempID synthesizes a temporary message identifier from the current
// time and a random suffix. Unique within a process run; not stable
// across restarts — polls replace temporary ids with backend ids.
func TempID() string {
	return fmt.Sprintf("temp-%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}

// Normalizer converts RawMessage records into DisplayMessages for one
// conversation. The zero value is not usable; construct with
// NewDirectNormalizer or NewGroupNormalizer.
type Normalizer struct {
	selfID     string
	friendName string
	group      *api.GroupDetails

	// now is overridable for tests; defaults to time.Now.
	now func() time.Time
}

// NewDirectNormalizer creates a Normalizer for a one-to-one
// conversation. friendName is the counterparty's display name from the
// chat context.
func NewDirectNormalizer(selfID, friendName string) *Normalizer {
	return &Normalizer{selfID: selfID, friendName: friendName, now: time.Now}
}

// NewGroupNormalizer creates a Normalizer for a group conversation.
// Sender names resolve against the membership snapshot; the snapshot
// is not refreshed while the conversation is open.
func NewGroupNormalizer(selfID string, details *api.GroupDetails) *Normalizer {
	return &Normalizer{selfID: selfID, group: details, now: time.Now}
}

// Normalize produces the display record for a wire record. It never
// fails: malformed fields degrade to safe defaults (empty text,
// current time, unknown-sender label).
func (n *Normalizer) Normalize(raw api.RawMessage) DisplayMessage {
	id := string(raw.ID)
	if id == "" {
		id = TempID()
	}

	createdAt := raw.Timestamp.Time
	if createdAt.IsZero() {
		createdAt = n.now()
	}

	return DisplayMessage{
		ID:        id,
		Text:      raw.Content,
		CreatedAt: createdAt,
		Author: Author{
			ID:          raw.SenderID,
			DisplayName: n.resolveName(raw),
		},
	}
}

func (n *Normalizer) resolveName(raw api.RawMessage) string {
	if raw.SenderID == n.selfID {
		return SelfName
	}
	if n.group != nil {
		if member, ok := n.group.MemberByID(raw.SenderID); ok {
			return member.DisplayName()
		}
		if raw.SenderName != "" {
			return raw.SenderName
		}
		return UnknownName
	}
	if n.friendName != "" {
		return n.friendName
	}
	return UnknownName
}
