package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/sentences/internal/entities"
	"github.com/mrlokans/sentences/internal/services"
)

// SentenceManager defines the sentence operations used by the HTTP layer.
type SentenceManager interface {
	Create(ctx context.Context, input services.CreateSentenceInput) (string, error)
	GetByID(ctx context.Context, id string) (*entities.Sentence, error)
	List(ctx context.Context, afterID string) ([]entities.Sentence, error)
	UpdateContent(ctx context.Context, id, content string) error
	UpdateStructure(ctx context.Context, id, markup string) error
	UpdateLanguage(ctx context.Context, id, languageCode string) error
}

// SentenceRequest is the body of POST /sentences.
type SentenceRequest struct {
	ID        *string `json:"id"`
	Text      string  `json:"text"`
	ISO6393   string  `json:"iso639_3"`
	Structure *string `json:"structure"`
}

// SentenceResponse is the public representation of a sentence.
type SentenceResponse struct {
	ID        *string `json:"id"`
	Text      string  `json:"text"`
	ISO6393   string  `json:"iso639_3"`
	Structure *string `json:"structure"`
}

// CreatedResponse is returned after a sentence is created.
type CreatedResponse struct {
	ID string `json:"id"`
}

func newSentenceResponse(s *entities.Sentence) SentenceResponse {
	resp := SentenceResponse{
		Text:      s.Content,
		ISO6393:   s.LanguageCode(),
		Structure: s.Structure,
	}
	if s.ID != "" {
		id := s.ID
		resp.ID = &id
	}
	return resp
}

func newSentenceResponses(list []entities.Sentence) []SentenceResponse {
	resp := make([]SentenceResponse, 0, len(list))
	for i := range list {
		resp = append(resp, newSentenceResponse(&list[i]))
	}
	return resp
}

type SentencesController struct {
	sentences SentenceManager
}

func NewSentencesController(sentences SentenceManager) *SentencesController {
	return &SentencesController{sentences: sentences}
}

// CreateSentence adds a sentence
// POST /sentences
func (sc *SentencesController) CreateSentence(c *gin.Context) {
	var req SentenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid sentence JSON: "+err.Error(), "invalid_body")
		return
	}

	id, err := sc.sentences.Create(c.Request.Context(), services.CreateSentenceInput{
		ID:           req.ID,
		Content:      req.Text,
		LanguageCode: req.ISO6393,
		Structure:    req.Structure,
	})
	if err != nil {
		respondServiceError(c, err, "create sentence")
		return
	}

	c.Header("Location", "/sentences/"+id)
	respondCreated(c, CreatedResponse{ID: id})
}

// ListSentences returns one page of sentences, starting at the optional cursor
// GET /sentences?id=<cursor>
func (sc *SentencesController) ListSentences(c *gin.Context) {
	list, err := sc.sentences.List(c.Request.Context(), c.Query("id"))
	if err != nil {
		respondServiceError(c, err, "list sentences")
		return
	}
	c.JSON(http.StatusOK, newSentenceResponses(list))
}

// GetSentence returns a single sentence
// GET /sentences/:id
func (sc *SentencesController) GetSentence(c *gin.Context) {
	sentence, err := sc.sentences.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "get sentence")
		return
	}
	c.JSON(http.StatusOK, newSentenceResponse(sentence))
}

// UpdateText replaces the text of a sentence
// PUT /sentences/:id/text
func (sc *SentencesController) UpdateText(c *gin.Context) {
	text, ok := readPlainBody(c)
	if !ok {
		return
	}

	if err := sc.sentences.UpdateContent(c.Request.Context(), c.Param("id"), text); err != nil {
		respondServiceError(c, err, "update sentence text")
		return
	}
	respondNoContent(c)
}

// UpdateStructure replaces the structure of a sentence
// PUT /sentences/:id/structure
func (sc *SentencesController) UpdateStructure(c *gin.Context) {
	markup, ok := readPlainBody(c)
	if !ok {
		return
	}

	if err := sc.sentences.UpdateStructure(c.Request.Context(), c.Param("id"), markup); err != nil {
		respondServiceError(c, err, "update sentence structure")
		return
	}
	respondNoContent(c)
}

// UpdateLanguage moves a sentence to another language
// PUT /sentences/:id/language
func (sc *SentencesController) UpdateLanguage(c *gin.Context) {
	code, ok := readPlainBody(c)
	if !ok {
		return
	}

	if err := sc.sentences.UpdateLanguage(c.Request.Context(), c.Param("id"), code); err != nil {
		respondServiceError(c, err, "update sentence language")
		return
	}
	respondNoContent(c)
}
