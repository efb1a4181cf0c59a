// Package mocks provides mock implementations of core interfaces for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"buzzy/internal/types"
)

// MockBlobStore is a mock implementation of types.BlobStore
type MockBlobStore struct {
	mock.Mock
}

func (m *MockBlobStore) Download(ctx context.Context, bucket, fileId string) ([]byte, error) {
	args := m.Called(ctx, bucket, fileId)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockBlobStore) Upload(ctx context.Context, bucket, fileId, path, fileName string) (string, error) {
	args := m.Called(ctx, bucket, fileId, path, fileName)
	return args.String(0), args.Error(1)
}

func (m *MockBlobStore) Delete(ctx context.Context, bucket, fileId string) error {
	args := m.Called(ctx, bucket, fileId)
	return args.Error(0)
}

// MockDocumentStore is a mock implementation of types.DocumentStore
type MockDocumentStore struct {
	mock.Mock
}

func (m *MockDocumentStore) GetDocument(ctx context.Context, db, collection, id string) (map[string]any, error) {
	args := m.Called(ctx, db, collection, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]any), args.Error(1)
}

func (m *MockDocumentStore) CreateDocument(ctx context.Context, db, collection, id string, fields map[string]any) (map[string]any, error) {
	args := m.Called(ctx, db, collection, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]any), args.Error(1)
}

func (m *MockDocumentStore) UpdateDocument(ctx context.Context, db, collection, id string, fields map[string]any) (map[string]any, error) {
	args := m.Called(ctx, db, collection, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]any), args.Error(1)
}

// MockMailer is a mock implementation of types.Mailer
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendEmail(ctx context.Context, msg types.EmailMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// MockChatCompleter is a mock implementation of types.ChatCompleter
type MockChatCompleter struct {
	mock.Mock
}

func (m *MockChatCompleter) ChatCompletion(prompt string) (string, error) {
	args := m.Called(prompt)
	return args.String(0), args.Error(1)
}

// MockMediaExtractor is a mock implementation of types.MediaExtractor
type MockMediaExtractor struct {
	mock.Mock
}

func (m *MockMediaExtractor) ExtractPlain(ctx context.Context, sourcePath string, startMs, durationMs int64, destPath string) error {
	args := m.Called(ctx, sourcePath, startMs, durationMs, destPath)
	return args.Error(0)
}

func (m *MockMediaExtractor) ExtractWithCaptions(ctx context.Context, sourcePath string, startMs, durationMs int64, destPath string, entries []types.SubtitleEntry, dims types.VideoDimensions) error {
	args := m.Called(ctx, sourcePath, startMs, durationMs, destPath, entries, dims)
	return args.Error(0)
}

func (m *MockMediaExtractor) GenerateThumbnail(ctx context.Context, sourcePath, destPath, timestamp string) error {
	args := m.Called(ctx, sourcePath, destPath, timestamp)
	return args.Error(0)
}

func (m *MockMediaExtractor) Probe(ctx context.Context, sourcePath string) (types.VideoDimensions, error) {
	args := m.Called(ctx, sourcePath)
	return args.Get(0).(types.VideoDimensions), args.Error(1)
}
