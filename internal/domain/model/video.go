//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const maxVideoTitleLen = 255

// VideoCategory identifies one of the fixed route categories a video belongs to.
type VideoCategory string

const (
	VideoCategoryInicio           VideoCategory = "inicio"
	VideoCategoryPerfil           VideoCategory = "perfil"
	VideoCategoryFioMaquina       VideoCategory = "fio-maquina"
	VideoCategoryChapasGrossas    VideoCategory = "chapas-grossas"
	VideoCategoryFerrovia         VideoCategory = "ferrovia"
	VideoCategoryPlacaBlocoTarugo VideoCategory = "placa-bloco-tarugo"
)

// Valid reports whether the category is one of the fixed route categories.
func (c VideoCategory) Valid() bool {
	switch c {
	case VideoCategoryInicio, VideoCategoryPerfil, VideoCategoryFioMaquina,
		VideoCategoryChapasGrossas, VideoCategoryFerrovia, VideoCategoryPlacaBlocoTarugo:
		return true
	default:
		return false
	}
}

// ParseVideoCategory normalizes a category string and reports whether it is supported.
func ParseVideoCategory(value string) (VideoCategory, bool) {
	c := VideoCategory(strings.ToLower(strings.TrimSpace(value)))
	if c.Valid() {
		return c, true
	}
	return "", false
}

// VideoRoute is an instructional route video entry. The access core treats
// these as opaque display payloads; only the catalog CRUD interprets them.
type VideoRoute struct {
	ID          string        `json:"id"          db:"id"`
	Title       string        `json:"title"       db:"title"`
	Description string        `json:"description" db:"description"`
	VideoURL    string        `json:"video_url"   db:"video_url"`
	Thumbnail   string        `json:"thumbnail"   db:"thumbnail"`
	CategoryID  VideoCategory `json:"category_id" db:"category_id"`
	Duration    string        `json:"duration"    db:"duration"`
	CreatedAt   time.Time     `json:"created_at"  db:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"  db:"updated_at"`
}

// CreateVideoRequest represents parameters to create a VideoRoute.
type CreateVideoRequest struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	VideoURL    string        `json:"video_url"`
	Thumbnail   string        `json:"thumbnail"`
	CategoryID  VideoCategory `json:"category_id"`
	Duration    string        `json:"duration"`
}

// UpdateVideoRequest represents parameters to update a VideoRoute.
type UpdateVideoRequest struct {
	Title       *string        `json:"title,omitempty"`
	Description *string        `json:"description,omitempty"`
	VideoURL    *string        `json:"video_url,omitempty"`
	Thumbnail   *string        `json:"thumbnail,omitempty"`
	CategoryID  *VideoCategory `json:"category_id,omitempty"`
	Duration    *string        `json:"duration,omitempty"`
}

// Validate validates CreateVideoRequest.
func (r *CreateVideoRequest) Validate() error {
	title := strings.TrimSpace(r.Title)
	if title == "" {
		return errors.New("title is required and cannot be empty")
	}
	if utf8.RuneCountInString(title) > maxVideoTitleLen {
		return errors.New("title cannot exceed 255 characters")
	}
	if strings.TrimSpace(r.VideoURL) == "" {
		return errors.New("video_url is required")
	}
	if !r.CategoryID.Valid() {
		return errors.New("category_id must be one of the route categories")
	}
	return nil
}

// Validate validates UpdateVideoRequest.
func (r *UpdateVideoRequest) Validate() error {
	if r.Title != nil {
		title := strings.TrimSpace(*r.Title)
		if title == "" {
			return errors.New("title cannot be empty")
		}
		if utf8.RuneCountInString(title) > maxVideoTitleLen {
			return errors.New("title cannot exceed 255 characters")
		}
	}
	if r.VideoURL != nil && strings.TrimSpace(*r.VideoURL) == "" {
		return errors.New("video_url cannot be empty")
	}
	if r.CategoryID != nil && !r.CategoryID.Valid() {
		return errors.New("category_id must be one of the route categories")
	}
	return nil
}
