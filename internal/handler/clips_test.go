package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"buzzy/internal/dto"
	"buzzy/internal/mocks"
	"buzzy/internal/response"
	"buzzy/internal/service"
	"buzzy/internal/types"
	"buzzy/log"
	apperrors "buzzy/pkg/errors"
)

func init() {
	log.InitLogger()
}

func buildClipsRouter(svc *service.Service) *gin.Engine {
	router := gin.New()
	h := NewHandler(svc, nil, nil)
	router.GET("/ping", func(c *gin.Context) { c.String(200, "Pong") })
	router.POST("/api/clips/process", h.ProcessClips)
	router.POST("/api/clips/enqueue", h.EnqueueClips)
	router.POST("/api/clips/analyze", h.AnalyzeTranscript)
	return router
}

func TestPing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := buildClipsRouter(&service.Service{})

	req, _ := http.NewRequest("GET", "/ping", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Pong", w.Body.String())
}

func TestProcessClips_InvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := buildClipsRouter(&service.Service{})

	req, _ := http.NewRequest("POST", "/api/clips/process", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var res response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, int32(apperrors.CodeInvalidParams), res.Error)
}

func TestProcessClips_ReturnsResultVerbatim(t *testing.T) {
	gin.SetMode(gin.TestMode)
	// An empty payload skips before any infrastructure is touched, so a bare
	// service is enough.
	router := buildClipsRouter(&service.Service{})

	req, _ := http.NewRequest("POST", "/api/clips/process", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var result dto.ProcessJobResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.False(t, result.Success)
	assert.Equal(t, "No document found", result.Message)
}

func TestEnqueueClips_QueueDisabled(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := buildClipsRouter(&service.Service{})

	req, _ := http.NewRequest("POST", "/api/clips/enqueue", strings.NewReader(`{"$id":"tr1","videoId":"vid1"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var res response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.NotEqual(t, int32(0), res.Error)
}

func TestAnalyzeTranscript_Endpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)

	chat := new(mocks.MockChatCompleter)
	chat.On("ChatCompletion", mock.Anything).
		Return(`[{"startText":"Hello world this is the start.","endText":"And that wraps it up for today.","text":"hook"}]`, nil)
	router := buildClipsRouter(&service.Service{ChatCompleter: chat})

	body := dto.AnalyzeTranscriptReq{
		VideoId: "vid1",
		Sentences: []types.SentimentSentence{
			{Text: "Hello world this is the start.", Start: 0, End: 2000},
			{Text: "And that wraps it up for today.", Start: 2000, End: 5000},
		},
	}
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req, _ := http.NewRequest("POST", "/api/clips/analyze", strings.NewReader(string(data)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var res struct {
		Error int32                        `json:"error"`
		Msg   string                       `json:"msg"`
		Data  dto.AnalyzeTranscriptResData `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, int32(0), res.Error)
	require.Len(t, res.Data.Clips, 1)
	assert.Equal(t, int64(0), res.Data.Clips[0].Start)
	assert.Equal(t, int64(5000), res.Data.Clips[0].End)
}

func TestGetJob_Endpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewHandler(&service.Service{}, nil, nil)
	router.GET("/api/jobs/:runId", h.GetJob)

	// No database configured, the lookup error surfaces as an envelope error.
	req, _ := http.NewRequest("GET", "/api/jobs/missing", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var res response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.NotEqual(t, int32(0), res.Error)
}

func TestAnalyzeTranscript_MissingSentences(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := buildClipsRouter(&service.Service{})

	req, _ := http.NewRequest("POST", "/api/clips/analyze", strings.NewReader(`{"videoId":"vid1"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var res response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, int32(apperrors.CodeInvalidParams), res.Error)
}
