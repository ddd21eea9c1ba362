//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const maxNoticeTitleLen = 255

// NoticeType is the display severity of a notice.
type NoticeType string

const (
	NoticeTypeInfo    NoticeType = "info"
	NoticeTypeWarning NoticeType = "warning"
	NoticeTypeAlert   NoticeType = "alert"
)

// Valid reports whether the notice type is supported.
func (t NoticeType) Valid() bool {
	switch t {
	case NoticeTypeInfo, NoticeTypeWarning, NoticeTypeAlert:
		return true
	default:
		return false
	}
}

// normalizeNoticeType trims and lowercases the input, defaulting to info when empty.
func normalizeNoticeType(t NoticeType) NoticeType {
	normalized := NoticeType(strings.ToLower(strings.TrimSpace(string(t))))
	if normalized == "" {
		return NoticeTypeInfo
	}
	return normalized
}

// Notice is a board entry published by an administrator.
type Notice struct {
	ID        string     `json:"id"         db:"id"`
	Title     string     `json:"title"      db:"title"`
	Message   string     `json:"message"    db:"message"`
	Type      NoticeType `json:"type"       db:"type"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}

// CreateNoticeRequest represents parameters to create a Notice.
type CreateNoticeRequest struct {
	Title   string     `json:"title"`
	Message string     `json:"message"`
	Type    NoticeType `json:"type,omitempty"`
}

// UpdateNoticeRequest represents parameters to update a Notice.
type UpdateNoticeRequest struct {
	Title   *string     `json:"title,omitempty"`
	Message *string     `json:"message,omitempty"`
	Type    *NoticeType `json:"type,omitempty"`
}

// Validate validates CreateNoticeRequest and normalizes its type.
func (r *CreateNoticeRequest) Validate() error {
	title := strings.TrimSpace(r.Title)
	if title == "" {
		return errors.New("title is required and cannot be empty")
	}
	if utf8.RuneCountInString(title) > maxNoticeTitleLen {
		return errors.New("title cannot exceed 255 characters")
	}
	if strings.TrimSpace(r.Message) == "" {
		return errors.New("message is required")
	}
	r.Type = normalizeNoticeType(r.Type)
	if !r.Type.Valid() {
		return errors.New("type must be one of info, warning, alert")
	}
	return nil
}

// Validate validates UpdateNoticeRequest.
func (r *UpdateNoticeRequest) Validate() error {
	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		return errors.New("title cannot be empty")
	}
	if r.Message != nil && strings.TrimSpace(*r.Message) == "" {
		return errors.New("message cannot be empty")
	}
	if r.Type != nil {
		normalized := normalizeNoticeType(*r.Type)
		if !normalized.Valid() {
			return errors.New("type must be one of info, warning, alert")
		}
		*r.Type = normalized
	}
	return nil
}
