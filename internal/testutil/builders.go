// Package testutil provides testing utilities and helpers for the route video portal.
package testutil

import (
	"time"

	"github.com/srl-logistica/rotaportal/internal/domain/model"
)

// VideoRequestBuilder provides a fluent interface for building CreateVideoRequest objects for testing.
type VideoRequestBuilder struct {
	req *model.CreateVideoRequest
}

// NewVideoRequest creates a new VideoRequestBuilder with sensible defaults.
func NewVideoRequest() *VideoRequestBuilder {
	return &VideoRequestBuilder{
		req: &model.CreateVideoRequest{
			Title:       "Rota de teste",
			Description: "Percurso usado nos testes",
			VideoURL:    "https://example.com/videos/test.mp4",
			Thumbnail:   "https://example.com/thumbs/test.jpg",
			CategoryID:  model.VideoCategoryInicio,
			Duration:    "4:20",
		},
	}
}

// WithTitle sets the video title.
func (b *VideoRequestBuilder) WithTitle(title string) *VideoRequestBuilder {
	b.req.Title = title
	return b
}

// WithDescription sets the video description.
func (b *VideoRequestBuilder) WithDescription(description string) *VideoRequestBuilder {
	b.req.Description = description
	return b
}

// WithVideoURL sets the playback URL.
func (b *VideoRequestBuilder) WithVideoURL(u string) *VideoRequestBuilder {
	b.req.VideoURL = u
	return b
}

// WithCategory sets the route category.
func (b *VideoRequestBuilder) WithCategory(c model.VideoCategory) *VideoRequestBuilder {
	b.req.CategoryID = c
	return b
}

// WithDuration sets the display duration.
func (b *VideoRequestBuilder) WithDuration(d string) *VideoRequestBuilder {
	b.req.Duration = d
	return b
}

// Build returns the constructed request.
func (b *VideoRequestBuilder) Build() *model.CreateVideoRequest {
	req := *b.req
	return &req
}

// NoticeRequestBuilder provides a fluent interface for building CreateNoticeRequest objects for testing.
type NoticeRequestBuilder struct {
	req *model.CreateNoticeRequest
}

// NewNoticeRequest creates a new NoticeRequestBuilder with sensible defaults.
func NewNoticeRequest() *NoticeRequestBuilder {
	return &NoticeRequestBuilder{
		req: &model.CreateNoticeRequest{
			Title:   "Aviso de teste",
			Message: "Mensagem usada nos testes",
			Type:    model.NoticeTypeInfo,
		},
	}
}

// WithTitle sets the notice title.
func (b *NoticeRequestBuilder) WithTitle(title string) *NoticeRequestBuilder {
	b.req.Title = title
	return b
}

// WithMessage sets the notice body.
func (b *NoticeRequestBuilder) WithMessage(message string) *NoticeRequestBuilder {
	b.req.Message = message
	return b
}

// WithType sets the notice severity.
func (b *NoticeRequestBuilder) WithType(t model.NoticeType) *NoticeRequestBuilder {
	b.req.Type = t
	return b
}

// Build returns the constructed request.
func (b *NoticeRequestBuilder) Build() *model.CreateNoticeRequest {
	req := *b.req
	return &req
}

// VoucherBuilder constructs voucher rows for seeding test scenarios.
type VoucherBuilder struct {
	v model.Voucher
}

// NewVoucher creates a new VoucherBuilder with sensible defaults.
func NewVoucher(code string) *VoucherBuilder {
	now := TestTime()
	return &VoucherBuilder{
		v: model.Voucher{
			Code:      code,
			CreatedAt: now,
			ExpiresAt: now.Add(6 * time.Hour),
		},
	}
}

// CreatedAt sets the issuance timestamp.
func (b *VoucherBuilder) CreatedAt(t time.Time) *VoucherBuilder {
	b.v.CreatedAt = t
	return b
}

// ExpiresAt sets the issuance shelf-life timestamp.
func (b *VoucherBuilder) ExpiresAt(t time.Time) *VoucherBuilder {
	b.v.ExpiresAt = t
	return b
}

// Build returns the constructed voucher.
func (b *VoucherBuilder) Build() model.Voucher {
	return b.v
}
