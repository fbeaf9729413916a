// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"
)

// User is a user record as returned by the backend.
type User struct {
	UserID    string `json:"userId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// DisplayName returns "First Last" for list rendering.
func (u User) DisplayName() string {
	switch {
	case u.FirstName == "" && u.LastName == "":
		return u.Email
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}

// FriendRequest is a pending or sent friend request. The backend
// returns the counterparty's user record plus request metadata.
type FriendRequest struct {
	User
	Status string `json:"status,omitempty"`
}

// Group is a group's summary record.
type Group struct {
	GroupID   string   `json:"groupId"`
	GroupName string   `json:"groupName"`
	CreatedAt WireTime `json:"createdAt,omitempty"`
	UpdatedAt WireTime `json:"updatedAt,omitempty"`
	CreatedBy string   `json:"createdBy,omitempty"`
}

// GroupDetails is a group's membership snapshot, fetched once when a
// group view opens and carried by reference into group chat. It is not
// refreshed by the synchronization loop, so it can go stale if
// membership changes mid-conversation.
type GroupDetails struct {
	AdminName string `json:"adminName"`
	Group     Group  `json:"group"`
	Members   []User `json:"members"`
}

// MemberByID looks up a member by user id. Returns the zero User and
// false when no member matches.
func (d *GroupDetails) MemberByID(userID string) (User, bool) {
	if d == nil {
		return User{}, false
	}
	for _, member := range d.Members {
		if member.UserID == userID {
			return member, true
		}
	}
	return User{}, false
}

// RawMessage is a message record as received from the backend. ID is
// empty for records the backend has not yet persisted (the immediate
// response to a send). SenderName is populated only for group messages
// and only by some backend versions.
type RawMessage struct {
	ID         MessageID `json:"id,omitempty"`
	Content    string    `json:"content"`
	SenderID   string    `json:"senderId"`
	Timestamp  WireTime  `json:"timestamp,omitempty"`
	SenderName string    `json:"senderName,omitempty"`
}

// MessageID accepts a message id encoded as either a JSON string or a
// JSON number and holds the stringified form. Empty means the backend
// has not assigned a durable id yet.
type MessageID string

func (id *MessageID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var value string
		if err := json.Unmarshal(data, &value); err != nil {
			return err
		}
		*id = MessageID(value)
		return nil
	}
	// Numeric id: keep the literal digits.
	*id = MessageID(data)
	return nil
}

func (id MessageID) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(id))
}

// WireTime decodes the backend's three timestamp encodings: an RFC3339
// string, an epoch-millisecond number, or the Mongo-derived wrapped
// form {"$numberLong": "1700000000000"}. Anything unparseable decodes
// to the zero time instead of an error — the normalizer substitutes
// the current time for zero values, and a bad timestamp must never
// fail a whole message page.
type WireTime struct {
	time.Time
}

func (t *WireTime) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	t.Time = time.Time{}

	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	switch data[0] {
	case '{':
		var wrapped struct {
			NumberLong string `json:"$numberLong"`
		}
		if err := json.Unmarshal(data, &wrapped); err != nil {
			return nil
		}
		millis, err := strconv.ParseInt(wrapped.NumberLong, 10, 64)
		if err != nil {
			return nil
		}
		t.Time = time.UnixMilli(millis).UTC()
	case '"':
		var value string
		if err := json.Unmarshal(data, &value); err != nil {
			return nil
		}
		if parsed, err := time.Parse(time.RFC3339, value); err == nil {
			t.Time = parsed
		} else if millis, err := strconv.ParseInt(value, 10, 64); err == nil {
			t.Time = time.UnixMilli(millis).UTC()
		}
	default:
		millis, err := strconv.ParseInt(string(data), 10, 64)
		if err != nil {
			return nil
		}
		t.Time = time.UnixMilli(millis).UTC()
	}
	return nil
}

func (t WireTime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(time.RFC3339))
}
