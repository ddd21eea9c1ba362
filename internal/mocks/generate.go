// Package mocks provides mock implementations for testing the access-gate services.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for our repository interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockRepo := mocks.NewMockVoucherRepository(ctrl)
//	mockRepo.EXPECT().Burn(gomock.Any(), gomock.Any()).Return(voucher, nil)
package mocks

// Generate mock for VoucherRepository interface from internal/core package.
// This creates MockVoucherRepository with methods for all VoucherRepository interface methods:
// Insert, Burn, Delete, List
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=voucher_repository_mock.go github.com/srl-logistica/rotaportal/internal/core VoucherRepository

// Generate mock for VideoRepository interface from internal/core package.
// This creates MockVideoRepository with methods for all VideoRepository interface methods:
// Create, GetByID, List, Update, Delete
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=video_repository_mock.go github.com/srl-logistica/rotaportal/internal/core VideoRepository

// Generate mock for NoticeRepository interface from internal/core package.
// This creates MockNoticeRepository with methods for all NoticeRepository interface methods:
// Create, List, Update, Delete
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=notice_repository_mock.go github.com/srl-logistica/rotaportal/internal/core NoticeRepository
