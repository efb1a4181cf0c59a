package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"buzzy/internal/types"
)

func TestProcessClipsFailureIsolation(t *testing.T) {
	svc, m := newMockedService()
	tempDir := t.TempDir()

	windows := []types.ClipWindow{
		{Start: 0, End: 5000},
		{Start: 5000, End: 10000},
		{Start: 20000, End: 15000}, // end before start, skipped
		{Start: 30000, End: 40000},
		{Start: 50000, End: 55000},
	}

	m.extractor.On("ExtractPlain", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(writeDest(4)).Return(nil)
	m.extractor.On("GenerateThumbnail", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("thumb failed"))
	m.blob.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("stored-file", nil)
	m.docs.On("CreateDocument", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(map[string]any{}, nil)

	doc := types.TranscriptDoc{Id: "tr1", VideoId: "vid1", UserId: "user1"}
	ids := svc.processClips(context.Background(), windows, doc, "/tmp/source.mp4", types.VideoDimensions{Width: 1920, Height: 1080}, nil, tempDir)

	assert.Len(t, ids, 4)
	m.extractor.AssertNumberOfCalls(t, "ExtractPlain", 4)
	m.docs.AssertNumberOfCalls(t, "CreateDocument", 4)
}

func TestProcessClipsExtractionFailureDoesNotAbortBatch(t *testing.T) {
	svc, m := newMockedService()
	tempDir := t.TempDir()

	windows := []types.ClipWindow{
		{Start: 0, End: 5000},
		{Start: 10000, End: 15000},
	}

	m.extractor.On("ExtractPlain", mock.Anything, mock.Anything, int64(0), mock.Anything, mock.Anything).
		Return(errors.New("exit status 1"))
	m.extractor.On("ExtractPlain", mock.Anything, mock.Anything, int64(10000), mock.Anything, mock.Anything).
		Run(writeDest(4)).Return(nil)
	m.extractor.On("GenerateThumbnail", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("thumb failed"))
	m.blob.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("stored-file", nil)
	m.docs.On("CreateDocument", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(map[string]any{}, nil)

	doc := types.TranscriptDoc{Id: "tr1", VideoId: "vid1", UserId: "user1"}
	ids := svc.processClips(context.Background(), windows, doc, "/tmp/source.mp4", types.VideoDimensions{Width: 1920, Height: 1080}, nil, tempDir)

	assert.Len(t, ids, 1)
}

func TestProcessClipsCaptionFallbackToPlain(t *testing.T) {
	svc, m := newMockedService()
	tempDir := t.TempDir()

	entries := []types.SubtitleEntry{
		{Index: 1, Start: 0, End: 2000, Lines: []string{"hello there"}},
		{Index: 2, Start: 2000, End: 4000, Lines: []string{"second line"}},
	}
	windows := []types.ClipWindow{{Start: 0, End: 5000}}

	m.extractor.On("ExtractWithCaptions", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("drawtext filter failed"))
	m.extractor.On("ExtractPlain", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(writeDest(4)).Return(nil)
	m.extractor.On("GenerateThumbnail", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("thumb failed"))
	m.blob.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("stored-file", nil)
	m.docs.On("CreateDocument", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(map[string]any{}, nil)

	doc := types.TranscriptDoc{Id: "tr1", VideoId: "vid1", UserId: "user1"}
	ids := svc.processClips(context.Background(), windows, doc, "/tmp/source.mp4", types.VideoDimensions{Width: 1080, Height: 1920}, entries, tempDir)

	require.Len(t, ids, 1)
	m.extractor.AssertCalled(t, "ExtractPlain", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestProcessClipsCaptionSuccessSkipsPlain(t *testing.T) {
	svc, m := newMockedService()
	tempDir := t.TempDir()

	entries := []types.SubtitleEntry{
		{Index: 1, Start: 1000, End: 3000, Lines: []string{"caption"}},
	}
	windows := []types.ClipWindow{{Start: 0, End: 5000}}

	m.extractor.On("ExtractWithCaptions", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(writeDest(4)).Return(nil)
	m.extractor.On("GenerateThumbnail", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("thumb failed"))
	m.blob.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("stored-file", nil)
	m.docs.On("CreateDocument", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(map[string]any{}, nil)

	doc := types.TranscriptDoc{Id: "tr1", VideoId: "vid1", UserId: "user1"}
	ids := svc.processClips(context.Background(), windows, doc, "/tmp/source.mp4", types.VideoDimensions{Width: 1080, Height: 1920}, entries, tempDir)

	require.Len(t, ids, 1)
	m.extractor.AssertNotCalled(t, "ExtractPlain", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestProcessClipsCleansWindowTempFiles(t *testing.T) {
	svc, m := newMockedService()
	tempDir := t.TempDir()

	windows := []types.ClipWindow{{Start: 0, End: 5000}}

	m.extractor.On("ExtractPlain", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(writeDest(4)).Return(nil)
	m.extractor.On("GenerateThumbnail", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(writeDest(2)).Return(nil)
	m.blob.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("stored-file", nil)
	m.docs.On("CreateDocument", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(map[string]any{}, nil)

	doc := types.TranscriptDoc{Id: "tr1", VideoId: "vid1", UserId: "user1"}
	ids := svc.processClips(context.Background(), windows, doc, "/tmp/source.mp4", types.VideoDimensions{Width: 1920, Height: 1080}, nil, tempDir)
	require.Len(t, ids, 1)

	remaining, err := os.ReadDir(tempDir)
	require.NoError(t, err)
	for _, entry := range remaining {
		assert.Fail(t, "temp file left behind", filepath.Join(tempDir, entry.Name()))
	}
}

func TestProcessClipsUploadFailureSkipsDocument(t *testing.T) {
	svc, m := newMockedService()
	tempDir := t.TempDir()

	windows := []types.ClipWindow{{Start: 0, End: 5000}}

	m.extractor.On("ExtractPlain", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(writeDest(4)).Return(nil)
	m.extractor.On("GenerateThumbnail", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("thumb failed"))
	m.blob.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("storage unavailable"))

	doc := types.TranscriptDoc{Id: "tr1", VideoId: "vid1", UserId: "user1"}
	ids := svc.processClips(context.Background(), windows, doc, "/tmp/source.mp4", types.VideoDimensions{Width: 1920, Height: 1080}, nil, tempDir)

	assert.Empty(t, ids)
	m.docs.AssertNotCalled(t, "CreateDocument", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
