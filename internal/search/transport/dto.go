package transport

import (
	"time"

	"github.com/google/uuid"
)

// ContentType identifies one of the five searchable entity kinds.
type ContentType string

const (
	ContentTypeNote     ContentType = "note"
	ContentTypeTodoList ContentType = "todoList"
	ContentTypeList     ContentType = "list"
	ContentTypeTodoItem ContentType = "todoItem"
	ContentTypeListItem ContentType = "listItem"
)

// AllContentTypes returns every searchable content type.
func AllContentTypes() []ContentType {
	return []ContentType{
		ContentTypeNote,
		ContentTypeTodoList,
		ContentTypeList,
		ContentTypeTodoItem,
		ContentTypeListItem,
	}
}

// Valid reports whether the value is a known content type.
func (t ContentType) Valid() bool {
	switch t {
	case ContentTypeNote, ContentTypeTodoList, ContentTypeList, ContentTypeTodoItem, ContentTypeListItem:
		return true
	}
	return false
}

// IsChild reports whether results of this type belong to a parent container
// whose id and name must be attached as context.
func (t ContentType) IsChild() bool {
	return t == ContentTypeTodoItem || t == ContentTypeListItem
}

// SearchRequest is a search query as received from a client.
//
// ContentTypes distinguishes "no filter" (nil) from "filter to nothing"
// (non-nil and empty): the former searches every table, the latter none.
type SearchRequest struct {
	Text           string        `json:"text"`
	SpaceID        string        `json:"spaceId"`
	ContentTypes   []ContentType `json:"contentTypes,omitempty"`
	Tags           []string      `json:"tags,omitempty"`
	IncludeContent bool          `json:"includeContent,omitempty"`
}

// SearchResultResponse is one merged search hit in API responses.
// For child types (todoItem, listItem), Subtitle carries the parent
// container's name and ParentID its identifier.
type SearchResultResponse struct {
	ID         uuid.UUID   `json:"id"`
	Type       ContentType `json:"type"`
	Title      string      `json:"title"`
	Preview    string      `json:"preview"`
	Subtitle   *string     `json:"subtitle,omitempty"`
	Tags       []string    `json:"tags"`
	UpdatedAt  time.Time   `json:"updatedAt"`
	Content    *string     `json:"content,omitempty"`
	ParentID   *uuid.UUID  `json:"parentId,omitempty"`
	ParentName *string     `json:"parentName,omitempty"`
}

// SearchResponse wraps a merged result list.
type SearchResponse struct {
	Items []SearchResultResponse `json:"items"`
	Total int                    `json:"total"`
}

// SessionResponse identifies a live search session.
type SessionResponse struct {
	SessionID uuid.UUID `json:"sessionId"`
}
