package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"termdraft-backend/models"
	"termdraft-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPoints struct {
	reduceErr error
	reduces   int
	adds      int
}

func (s *stubPoints) Reduce(context.Context, string, int) error {
	s.reduces++
	return s.reduceErr
}

func (s *stubPoints) Add(context.Context, string, int) error {
	s.adds++
	return nil
}

type stubTerms struct {
	record *models.TermRecord
	err    error
}

func (s *stubTerms) CreateTerm(context.Context, models.GeneratedDraft, string) (*models.TermRecord, error) {
	return s.record, s.err
}

type stubChunks struct{}

func (stubChunks) CategoryExists(context.Context, models.Category) (bool, error) {
	return true, nil
}

func (stubChunks) SearchByCategory(context.Context, []float64, models.Category, int) ([]models.TermChunk, error) {
	return []models.TermChunk{{Text: "참고 조항"}}, nil
}

type stubEmbedder struct{}

func (stubEmbedder) EmbedQuery(context.Context, string) ([]float64, error) {
	return make([]float64, 768), nil
}

type stubGenerator struct {
	out string
	err error
}

func (s *stubGenerator) Generate(context.Context, string, float64) (string, error) {
	return s.out, s.err
}

func newTestRouter(points service.PointsAPI, terms service.TermsAPI, gen service.Generator) *gin.Engine {
	gin.SetMode(gin.TestMode)

	generationService := service.NewGenerationService(
		service.WithChunkSearcher(stubChunks{}),
		service.WithEmbedder(stubEmbedder{}),
		service.WithGenerator(gen),
		service.WithPointsAPI(points),
		service.WithTermsAPI(terms),
	)
	annotationService := service.NewAnnotationService(service.AnnotationWithGenerator(gen))

	handler := NewTermHandler(generationService, annotationService, nil)

	router := gin.New()
	router.POST("/api/generate", handler.GenerateTerms)
	router.POST("/api/visualize", handler.VisualizeTerms)
	router.GET("/api/visualize/:id", handler.GetVisualization)
	return router
}

func doJSON(router *gin.Engine, method, path, body string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

const generateBody = `{
	"companyName": "무지개은행",
	"category": "deposit",
	"productName": "정기예금",
	"requirements": "중도해지 조건을 명시할 것",
	"effectiveDate": "2026-01-01"
}`

func TestGenerateTermsEndpoint(t *testing.T) {
	points := &stubPoints{}
	terms := &stubTerms{record: &models.TermRecord{
		ID:        "42",
		Title:     "정기예금 이용 약관",
		CreatedAt: time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC),
	}}
	gen := &stubGenerator{out: "제1조 (목적)\n생성된 본문.\n"}
	router := newTestRouter(points, terms, gen)

	w := doJSON(router, http.MethodPost, "/api/generate", generateBody,
		map[string]string{"X-Authenticated-User-Uid": "user-1"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"termId":"42"`)
	assert.Contains(t, w.Body.String(), `"createdAt":"2026-02-10"`)
	assert.Equal(t, 1, points.reduces)
}

func TestGenerateTermsEndpoint_MissingUserHeader(t *testing.T) {
	points := &stubPoints{}
	router := newTestRouter(points, &stubTerms{}, &stubGenerator{out: "x"})

	w := doJSON(router, http.MethodPost, "/api/generate", generateBody, nil)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "requester id")
	assert.Zero(t, points.reduces)
}

func TestGenerateTermsEndpoint_UnknownCategory(t *testing.T) {
	router := newTestRouter(&stubPoints{}, &stubTerms{}, &stubGenerator{out: "x"})
	body := strings.Replace(generateBody, "deposit", "life_insurance", 1)

	w := doJSON(router, http.MethodPost, "/api/generate", body,
		map[string]string{"X-Authenticated-User-Uid": "user-1"})

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateTermsEndpoint_PersistFailure(t *testing.T) {
	points := &stubPoints{}
	terms := &stubTerms{err: errors.New("term service rejected draft: status 500")}
	router := newTestRouter(points, terms, &stubGenerator{out: "본문"})

	w := doJSON(router, http.MethodPost, "/api/generate", generateBody,
		map[string]string{"X-Authenticated-User-Uid": "user-1"})

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "points refunded")
	assert.Equal(t, 1, points.adds)
}

func TestVisualizeTermsEndpoint(t *testing.T) {
	gen := &stubGenerator{out: `{"text": "", "entities": [{"text": "제N조", "label": "CLAUSE_ID", "start": 0, "end": 3}]}`}
	router := newTestRouter(&stubPoints{}, &stubTerms{}, gen)

	body := `{"text": "제1조 (목적)\n본문 첫째.\n제2조 (정의)\n본문 둘째.\n"}`
	w := doJSON(router, http.MethodPost, "/api/visualize", body, nil)

	require.Equal(t, http.StatusOK, w.Code)
	var result service.VisualizeResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 2, strings.Count(result.HTML, "<h3"))
	assert.Contains(t, result.HTML, "제1조 (목적)")
	assert.Contains(t, result.HTML, "제2조 (정의)")
	assert.NotEmpty(t, result.ArtifactID)
}

func TestVisualizeTermsEndpoint_MissingText(t *testing.T) {
	router := newTestRouter(&stubPoints{}, &stubTerms{}, &stubGenerator{out: "{}"})

	w := doJSON(router, http.MethodPost, "/api/visualize", `{}`, nil)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "text")
}

func TestVisualizeTermsEndpoint_NoClauses(t *testing.T) {
	router := newTestRouter(&stubPoints{}, &stubTerms{}, &stubGenerator{out: "{}"})

	w := doJSON(router, http.MethodPost, "/api/visualize", `{"text": "   "}`, nil)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "조항을 추출할 수 없습니다")
}

func TestGetVisualizationEndpoint_NotFound(t *testing.T) {
	router := newTestRouter(&stubPoints{}, &stubTerms{}, &stubGenerator{out: "{}"})

	w := doJSON(router, http.MethodGet, "/api/visualize/not-a-uuid", "", nil)

	require.Equal(t, http.StatusNotFound, w.Code)
}
