// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"
)

// testSession creates a Session against an httptest backend, asserting
// that every request carries the bearer token.
func testSession(t *testing.T, handler http.HandlerFunc) *Session {
	t.Helper()
	client := testClient(t, func(writer http.ResponseWriter, request *http.Request) {
		if got := request.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Errorf("Authorization = %q, want bearer token", got)
		}
		handler(writer, request)
	})

	session, err := client.SessionFromToken("me", "tok-123")
	if err != nil {
		t.Fatalf("SessionFromToken failed: %v", err)
	}
	t.Cleanup(func() { session.Close() })
	return session
}

func TestFriends(t *testing.T) {
	t.Run("enveloped list", func(t *testing.T) {
		session := testSession(t, func(writer http.ResponseWriter, request *http.Request) {
			if request.URL.Path != "/friends" {
				t.Errorf("unexpected path: %s", request.URL.Path)
			}
			json.NewEncoder(writer).Encode(map[string]any{
				"data": []map[string]string{
					{"userId": "friend1", "firstName": "Sam", "lastName": "Reed", "email": "sam@example.com"},
				},
			})
		})

		friends, err := session.Friends(context.Background())
		if err != nil {
			t.Fatalf("Friends failed: %v", err)
		}
		if len(friends) != 1 || friends[0].UserID != "friend1" {
			t.Fatalf("friends = %+v", friends)
		}
		if got := friends[0].DisplayName(); got != "Sam Reed" {
			t.Errorf("display name = %q", got)
		}
	})

	t.Run("bare list", func(t *testing.T) {
		session := testSession(t, func(writer http.ResponseWriter, request *http.Request) {
			json.NewEncoder(writer).Encode([]map[string]string{
				{"userId": "friend2", "firstName": "Ada", "lastName": "L", "email": "ada@example.com"},
			})
		})

		friends, err := session.Friends(context.Background())
		if err != nil {
			t.Fatalf("Friends failed: %v", err)
		}
		if len(friends) != 1 || friends[0].UserID != "friend2" {
			t.Fatalf("friends = %+v", friends)
		}
	})

	t.Run("envelope without data", func(t *testing.T) {
		session := testSession(t, func(writer http.ResponseWriter, request *http.Request) {
			json.NewEncoder(writer).Encode(map[string]any{"success": true})
		})

		if _, err := session.Friends(context.Background()); err == nil {
			t.Fatal("expected error for envelope without data")
		}
	})
}

func TestMessages(t *testing.T) {
	t.Run("query parameter", func(t *testing.T) {
		session := testSession(t, func(writer http.ResponseWriter, request *http.Request) {
			if request.URL.Path != "/messages" {
				t.Errorf("unexpected path: %s", request.URL.Path)
			}
			if got := request.URL.Query().Get("friendId"); got != "friend1" {
				t.Errorf("friendId = %q", got)
			}
			json.NewEncoder(writer).Encode(map[string]any{
				"data": []map[string]any{
					{"id": "5", "content": "hi", "senderId": "friend1", "timestamp": "2024-01-01T00:00:00Z"},
				},
			})
		})

		messages, err := session.Messages(context.Background(), "friend1")
		if err != nil {
			t.Fatalf("Messages failed: %v", err)
		}
		if len(messages) != 1 {
			t.Fatalf("got %d messages", len(messages))
		}
		if string(messages[0].ID) != "5" || messages[0].Content != "hi" {
			t.Errorf("message = %+v", messages[0])
		}
		want := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		if !messages[0].Timestamp.Equal(want) {
			t.Errorf("timestamp = %s, want %s", messages[0].Timestamp, want)
		}
	})

	t.Run("empty history", func(t *testing.T) {
		session := testSession(t, func(writer http.ResponseWriter, request *http.Request) {
			json.NewEncoder(writer).Encode(map[string]any{"data": []any{}})
		})

		messages, err := session.Messages(context.Background(), "friend1")
		if err != nil {
			t.Fatalf("Messages failed: %v", err)
		}
		if len(messages) != 0 {
			t.Errorf("got %d messages, want 0", len(messages))
		}
	})

	t.Run("missing friend id", func(t *testing.T) {
		session := testSession(t, func(writer http.ResponseWriter, request *http.Request) {
			t.Error("no request expected")
		})
		if _, err := session.Messages(context.Background(), ""); err == nil {
			t.Fatal("expected error for empty friend id")
		}
	})
}

func TestSendMessage(t *testing.T) {
	session := testSession(t, func(writer http.ResponseWriter, request *http.Request) {
		if request.URL.Path != "/messages/send" {
			t.Errorf("unexpected path: %s", request.URL.Path)
		}
		var body map[string]string
		if err := json.NewDecoder(request.Body).Decode(&body); err != nil {
			t.Fatalf("decoding request body: %v", err)
		}
		if body["recipientId"] != "friend1" || body["content"] != "hello" {
			t.Errorf("body = %v", body)
		}
		json.NewEncoder(writer).Encode(map[string]any{
			"data": map[string]any{"content": "hello", "senderId": "me"},
		})
	})

	sent, err := session.SendMessage(context.Background(), "friend1", "hello")
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}
	if sent.Content != "hello" {
		t.Errorf("sent = %+v", sent)
	}
	if sent.ID != "" {
		t.Errorf("immediate response should have no durable id, got %q", sent.ID)
	}
}

func TestGroups(t *testing.T) {
	t.Run("list and details", func(t *testing.T) {
		session := testSession(t, func(writer http.ResponseWriter, request *http.Request) {
			switch request.URL.Path {
			case "/groups":
				json.NewEncoder(writer).Encode(map[string]any{
					"data": []map[string]any{{"groupId": "g1", "groupName": "Climbing"}},
				})
			case "/groups/details/g1":
				json.NewEncoder(writer).Encode(map[string]any{
					"data": map[string]any{
						"adminName": "Sam Reed",
						"group":     map[string]any{"groupId": "g1", "groupName": "Climbing"},
						"members": []map[string]string{
							{"userId": "u1", "firstName": "Sam", "lastName": "Reed"},
						},
					},
				})
			default:
				t.Errorf("unexpected path: %s", request.URL.Path)
				writer.WriteHeader(http.StatusNotFound)
			}
		})

		groups, err := session.Groups(context.Background())
		if err != nil {
			t.Fatalf("Groups failed: %v", err)
		}
		if len(groups) != 1 || groups[0].GroupID != "g1" {
			t.Fatalf("groups = %+v", groups)
		}

		details, err := session.GroupDetails(context.Background(), "g1")
		if err != nil {
			t.Fatalf("GroupDetails failed: %v", err)
		}
		if details.AdminName != "Sam Reed" || len(details.Members) != 1 {
			t.Errorf("details = %+v", details)
		}
		member, ok := details.MemberByID("u1")
		if !ok || member.FirstName != "Sam" {
			t.Errorf("MemberByID = %+v, %v", member, ok)
		}
		if _, ok := details.MemberByID("stranger"); ok {
			t.Error("MemberByID matched a non-member")
		}
	})

	t.Run("create group", func(t *testing.T) {
		session := testSession(t, func(writer http.ResponseWriter, request *http.Request) {
			if request.URL.Path != "/groups/create" {
				t.Errorf("unexpected path: %s", request.URL.Path)
			}
			var body struct {
				GroupName string   `json:"groupName"`
				MemberIDs []string `json:"memberIds"`
			}
			if err := json.NewDecoder(request.Body).Decode(&body); err != nil {
				t.Fatalf("decoding request body: %v", err)
			}
			if body.GroupName != "Climbing" || len(body.MemberIDs) != 2 {
				t.Errorf("body = %+v", body)
			}
			json.NewEncoder(writer).Encode(map[string]any{
				"data": map[string]any{"groupId": "g9", "groupName": "Climbing"},
			})
		})

		group, err := session.CreateGroup(context.Background(), "Climbing", []string{"u1", "u2"})
		if err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}
		if group.GroupID != "g9" {
			t.Errorf("group = %+v", group)
		}
	})

	t.Run("group send path", func(t *testing.T) {
		session := testSession(t, func(writer http.ResponseWriter, request *http.Request) {
			if request.URL.Path != "/groups/g1/send" {
				t.Errorf("unexpected path: %s", request.URL.Path)
			}
			json.NewEncoder(writer).Encode(map[string]any{
				"data": map[string]any{"content": "yo", "senderId": "me"},
			})
		})

		if _, err := session.SendGroupMessage(context.Background(), "g1", "yo"); err != nil {
			t.Fatalf("SendGroupMessage failed: %v", err)
		}
	})
}
