package handlers

import (
	"errors"
	"net/http"

	"termdraft-backend/models"
	"termdraft-backend/service"

	"github.com/gin-gonic/gin"
)

// requesterHeader carries the authenticated user id injected by the gateway
const requesterHeader = "X-Authenticated-User-Uid"

// TermHandler handles HTTP requests for term generation and visualization
type TermHandler struct {
	generationService *service.GenerationService
	annotationService *service.AnnotationService
	translateService  *service.TranslateService
}

// NewTermHandler creates a new term handler
func NewTermHandler(
	generationService *service.GenerationService,
	annotationService *service.AnnotationService,
	translateService *service.TranslateService,
) *TermHandler {
	return &TermHandler{
		generationService: generationService,
		annotationService: annotationService,
		translateService:  translateService,
	}
}

// GenerateTermsRequest is the request body for POST /api/generate
type GenerateTermsRequest struct {
	CompanyName   string `json:"companyName"`
	Category      string `json:"category"`
	ProductName   string `json:"productName"`
	Requirements  string `json:"requirements"`
	EffectiveDate string `json:"effectiveDate"`
}

// GenerateTerms handles POST /api/generate
func (h *TermHandler) GenerateTerms(c *gin.Context) {
	var req GenerateTermsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "요청 데이터가 없습니다."})
		return
	}

	draftReq := models.DraftRequest{
		CompanyName:   req.CompanyName,
		Category:      req.Category,
		ProductName:   req.ProductName,
		Requirements:  req.Requirements,
		EffectiveDate: req.EffectiveDate,
		RequesterID:   c.GetHeader(requesterHeader),
	}

	result, err := h.generationService.GenerateTerms(c.Request.Context(), draftReq)
	if err != nil {
		c.JSON(generateStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// generateStatus maps saga failures onto HTTP statuses. Validation and
// category errors are client errors; everything downstream of the debit is
// a server error.
func generateStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrCategoryNotFound):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// VisualizeTermsRequest is the request body for POST /api/visualize
type VisualizeTermsRequest struct {
	Text string `json:"text"`
}

// VisualizeTerms handles POST /api/visualize
func (h *TermHandler) VisualizeTerms(c *gin.Context) {
	var req VisualizeTermsRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "요청 데이터에 'text' 필드가 없습니다."})
		return
	}

	result, err := h.annotationService.Visualize(c.Request.Context(), req.Text)
	if err != nil {
		if errors.Is(err, service.ErrNoClauses) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "텍스트에서 조항을 추출할 수 없습니다."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetVisualization handles GET /api/visualize/:id, serving a previously
// archived annotation document
func (h *TermHandler) GetVisualization(c *gin.Context) {
	html, err := h.annotationService.FetchArtifact(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "시각화 결과를 찾을 수 없습니다."})
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// TranslateTermsRequest is the request body for POST /api/translate
type TranslateTermsRequest struct {
	Text           string `json:"text"`
	TargetLanguage string `json:"targetLanguage"`
}

// TranslateTerms handles POST /api/translate
func (h *TermHandler) TranslateTerms(c *gin.Context) {
	var req TranslateTermsRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Text == "" || req.TargetLanguage == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text와 targetLanguage 필드가 필요합니다."})
		return
	}

	translated, err := h.translateService.Translate(c.Request.Context(), req.Text, req.TargetLanguage)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"translatedText": translated})
}
