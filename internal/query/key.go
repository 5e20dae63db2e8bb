// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package query

import (
	"encoding/json"
	"fmt"
)

// Tag names a query operation. Invalidation by tag affects every key with
// that tag regardless of its parameters.
type Tag string

const (
	TagNotesCount Tag = "notes-count"
	TagNotes      Tag = "notes"
	TagNote       Tag = "note"
)

// Key identifies one cached query result: an operation tag plus its
// parameter tuple. Keys are comparable; two keys are the same query only if
// every field matches.
type Key struct {
	Tag   Tag    `json:"tag"`
	Skip  int    `json:"skip,omitempty"`
	Limit int    `json:"limit,omitempty"`
	ID    string `json:"id,omitempty"`
}

// NotesCountKey is the key of the notes-count query.
func NotesCountKey() Key {
	return Key{Tag: TagNotesCount}
}

// NotesKey is the key of one page of the notes list.
func NotesKey(skip, limit int) Key {
	return Key{Tag: TagNotes, Skip: skip, Limit: limit}
}

// NoteKey is the key of the by-id query for id.
func NoteKey(id string) Key {
	return Key{Tag: TagNote, ID: id}
}

func (k Key) String() string {
	switch k.Tag {
	case TagNotes:
		return fmt.Sprintf("%s(skip=%d,limit=%d)", k.Tag, k.Skip, k.Limit)
	case TagNote:
		return fmt.Sprintf("%s(%q)", k.Tag, k.ID)
	default:
		return string(k.Tag)
	}
}

// storeKey is the byte form used by the underlying store. JSON keeps the
// fields delimited, so no two distinct keys share an encoding.
func (k Key) storeKey() []byte {
	b, _ := json.Marshal(k)
	return b
}
