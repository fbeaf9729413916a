// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/parley-im/parley/lib/secret"
)

// Session is an authenticated backend session. It wraps a Client with
// a bearer token for the authenticated API surface. Sessions are
// lightweight; the token lives in a secret.Buffer (mmap-backed, locked
// against swap) and the caller must Close the Session when done.
type Session struct {
	client *Client
	token  *secret.Buffer
	userID string
}

// UserID returns the signed-in user's identity, as derived from the
// token's subject claim. Immutable for the lifetime of the session.
func (s *Session) UserID() string {
	return s.userID
}

// Token returns the bearer token as a heap string. Use only at
// persistence boundaries (writing the session file).
func (s *Session) Token() string {
	return s.token.String()
}

// Close releases the token memory (zeros, unlocks, unmaps).
// Idempotent.
func (s *Session) Close() error {
	if s.token != nil {
		return s.token.Close()
	}
	return nil
}

// Friends returns the signed-in user's friends.
func (s *Session) Friends(ctx context.Context) ([]User, error) {
	body, err := s.client.doRequest(ctx, http.MethodGet, "/friends", s.token, nil)
	if err != nil {
		return nil, fmt.Errorf("api: listing friends: %w", err)
	}
	return decodePayload[[]User](body)
}

// AddFriend sends a friend request to the user with the given email.
func (s *Session) AddFriend(ctx context.Context, email string) error {
	if email == "" {
		return fmt.Errorf("api: email is required")
	}
	_, err := s.client.doRequest(ctx, http.MethodPost, "/friends/add", s.token, map[string]string{"email": email})
	if err != nil {
		return fmt.Errorf("api: adding friend %q: %w", email, err)
	}
	return nil
}

// PendingRequests returns friend requests received by the signed-in
// user that have not been accepted yet.
func (s *Session) PendingRequests(ctx context.Context) ([]FriendRequest, error) {
	body, err := s.client.doRequest(ctx, http.MethodGet, "/friends/pending", s.token, nil)
	if err != nil {
		return nil, fmt.Errorf("api: listing pending requests: %w", err)
	}
	return decodePayload[[]FriendRequest](body)
}

// SentRequests returns friend requests the signed-in user has sent
// that are still pending.
func (s *Session) SentRequests(ctx context.Context) ([]FriendRequest, error) {
	body, err := s.client.doRequest(ctx, http.MethodGet, "/friends/sent", s.token, nil)
	if err != nil {
		return nil, fmt.Errorf("api: listing sent requests: %w", err)
	}
	return decodePayload[[]FriendRequest](body)
}

// AcceptFriend accepts a pending friend request from the given email.
func (s *Session) AcceptFriend(ctx context.Context, email string) error {
	if email == "" {
		return fmt.Errorf("api: email is required")
	}
	_, err := s.client.doRequest(ctx, http.MethodPost, "/friends/accept", s.token, map[string]string{"email": email})
	if err != nil {
		return fmt.Errorf("api: accepting friend %q: %w", email, err)
	}
	return nil
}

// Messages returns the one-to-one message history with the given
// friend. The backend returns the page newest-first.
func (s *Session) Messages(ctx context.Context, friendID string) ([]RawMessage, error) {
	if friendID == "" {
		return nil, fmt.Errorf("api: friendID is required")
	}
	path := "/messages?friendId=" + url.QueryEscape(friendID)
	body, err := s.client.doRequest(ctx, http.MethodGet, path, s.token, nil)
	if err != nil {
		return nil, fmt.Errorf("api: listing messages with %s: %w", friendID, err)
	}
	return decodePayload[[]RawMessage](body)
}

// SendMessage sends a one-to-one message. The returned record is the
// backend's immediate response, which may lack a durable id.
func (s *Session) SendMessage(ctx context.Context, recipientID, content string) (RawMessage, error) {
	if recipientID == "" {
		return RawMessage{}, fmt.Errorf("api: recipientID is required")
	}
	request := map[string]string{"recipientId": recipientID, "content": content}
	body, err := s.client.doRequest(ctx, http.MethodPost, "/messages/send", s.token, request)
	if err != nil {
		return RawMessage{}, fmt.Errorf("api: sending message to %s: %w", recipientID, err)
	}
	return decodePayload[RawMessage](body)
}

// Groups returns the groups the signed-in user belongs to.
func (s *Session) Groups(ctx context.Context) ([]Group, error) {
	body, err := s.client.doRequest(ctx, http.MethodGet, "/groups", s.token, nil)
	if err != nil {
		return nil, fmt.Errorf("api: listing groups: %w", err)
	}
	return decodePayload[[]Group](body)
}

// CreateGroup creates a group with the given name and member user ids.
func (s *Session) CreateGroup(ctx context.Context, groupName string, memberIDs []string) (Group, error) {
	if groupName == "" {
		return Group{}, fmt.Errorf("api: group name is required")
	}
	request := map[string]any{"groupName": groupName, "memberIds": memberIDs}
	body, err := s.client.doRequest(ctx, http.MethodPost, "/groups/create", s.token, request)
	if err != nil {
		return Group{}, fmt.Errorf("api: creating group %q: %w", groupName, err)
	}
	group, err := decodePayload[Group](body)
	if err != nil {
		return Group{}, err
	}

	s.client.logger.Info("created group",
		"group_id", group.GroupID,
		"group_name", group.GroupName,
	)
	return group, nil
}

// GroupDetails fetches a group's membership snapshot. Fetched once per
// group view; group chat resolves sender names against this snapshot
// without refreshing it.
func (s *Session) GroupDetails(ctx context.Context, groupID string) (*GroupDetails, error) {
	if groupID == "" {
		return nil, fmt.Errorf("api: groupID is required")
	}
	path := "/groups/details/" + url.PathEscape(groupID)
	body, err := s.client.doRequest(ctx, http.MethodGet, path, s.token, nil)
	if err != nil {
		return nil, fmt.Errorf("api: fetching group details for %s: %w", groupID, err)
	}
	details, err := decodePayload[GroupDetails](body)
	if err != nil {
		return nil, err
	}
	return &details, nil
}

// GroupMessages returns the message history of a group. The backend
// returns the page newest-first.
func (s *Session) GroupMessages(ctx context.Context, groupID string) ([]RawMessage, error) {
	if groupID == "" {
		return nil, fmt.Errorf("api: groupID is required")
	}
	path := "/groups/" + url.PathEscape(groupID) + "/messages"
	body, err := s.client.doRequest(ctx, http.MethodGet, path, s.token, nil)
	if err != nil {
		return nil, fmt.Errorf("api: listing group messages for %s: %w", groupID, err)
	}
	return decodePayload[[]RawMessage](body)
}

// SendGroupMessage sends a message to a group. The returned record is
// the backend's immediate response, which may lack a durable id.
func (s *Session) SendGroupMessage(ctx context.Context, groupID, content string) (RawMessage, error) {
	if groupID == "" {
		return RawMessage{}, fmt.Errorf("api: groupID is required")
	}
	path := "/groups/" + url.PathEscape(groupID) + "/send"
	request := map[string]string{"recipientId": groupID, "content": content}
	body, err := s.client.doRequest(ctx, http.MethodPost, path, s.token, request)
	if err != nil {
		return RawMessage{}, fmt.Errorf("api: sending group message to %s: %w", groupID, err)
	}
	return decodePayload[RawMessage](body)
}
