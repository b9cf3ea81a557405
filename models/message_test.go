package models

import (
	"strings"
	"testing"
)

func TestCreateMessageRequestDefaultsAuthor(t *testing.T) {
	req := &CreateMessageRequest{Text: "  hello  "}
	if err := req.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if req.Author != "Anonymous" {
		t.Fatalf("expected Anonymous author, got %q", req.Author)
	}
	if req.Text != "hello" {
		t.Fatalf("expected trimmed text, got %q", req.Text)
	}
}

func TestCreateMessageRequestRequiresContent(t *testing.T) {
	req := &CreateMessageRequest{Author: "mina", MediaURLs: []string{"   "}}
	if err := req.Validate(); err == nil {
		t.Fatal("expected error for message without text or media")
	}
}

func TestCreateMessageRequestMediaOnlyIsValid(t *testing.T) {
	req := &CreateMessageRequest{MediaURLs: []string{" /uploads/a.png "}}
	if err := req.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if len(req.MediaURLs) != 1 || req.MediaURLs[0] != "/uploads/a.png" {
		t.Fatalf("expected trimmed media urls, got %+v", req.MediaURLs)
	}
}

func TestCreateMessageRequestTextTooLong(t *testing.T) {
	req := &CreateMessageRequest{Text: strings.Repeat("a", 2001)}
	if err := req.Validate(); err == nil {
		t.Fatal("expected error for text over 2000 characters")
	}
}

func TestChannelKeysAreDisjoint(t *testing.T) {
	if ChatKey("Music") == RoomKey("Music") {
		t.Fatal("chat and room keys must never collide")
	}

	category, roomID := SplitKey(ChatKey("Music"))
	if category != "Music" || roomID != "" {
		t.Fatalf("SplitKey(chat) = %q, %q", category, roomID)
	}

	category, roomID = SplitKey(RoomKey("abc"))
	if category != "" || roomID != "abc" {
		t.Fatalf("SplitKey(room) = %q, %q", category, roomID)
	}
}

func TestChatKeyDefaultsEmptyCategory(t *testing.T) {
	if ChatKey("") != ChatKey(DefaultCategory) {
		t.Fatal("empty category must map to the default channel")
	}
}
