package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/sentences/internal/entities"
	"github.com/mrlokans/sentences/internal/services"
)

// LanguageManager defines the language operations used by the HTTP layer.
type LanguageManager interface {
	Create(ctx context.Context, code string) (*entities.Language, error)
	Get(ctx context.Context, code string) (*entities.Language, error)
	List(ctx context.Context) ([]entities.Language, error)
	GetSentencesByLanguage(ctx context.Context, code string) ([]entities.Sentence, error)
}

// LanguageResponse is the public representation of a language.
type LanguageResponse struct {
	ID      uint   `json:"id"`
	ISO6393 string `json:"iso639_3"`
}

type LanguagesController struct {
	languages LanguageManager
}

func NewLanguagesController(languages LanguageManager) *LanguagesController {
	return &LanguagesController{languages: languages}
}

// CreateLanguage registers a language from a plain-text ISO 639-3 code
// POST /languages
func (lc *LanguagesController) CreateLanguage(c *gin.Context) {
	code, ok := readPlainBody(c)
	if !ok {
		return
	}

	language, err := lc.languages.Create(c.Request.Context(), code)
	if err != nil {
		respondServiceError(c, err, "create language")
		return
	}

	respondCreated(c, LanguageResponse{ID: language.ID, ISO6393: language.ISO6393})
}

// ListLanguages returns every registered language
// GET /languages
func (lc *LanguagesController) ListLanguages(c *gin.Context) {
	list, err := lc.languages.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "list languages")
		return
	}

	response := make([]LanguageResponse, 0, len(list))
	for _, language := range list {
		response = append(response, LanguageResponse{ID: language.ID, ISO6393: language.ISO6393})
	}
	c.JSON(http.StatusOK, response)
}

// GetLanguage returns a single language
// GET /languages/:code
func (lc *LanguagesController) GetLanguage(c *gin.Context) {
	language, err := lc.languages.Get(c.Request.Context(), c.Param("code"))
	if errors.Is(err, services.ErrLanguageNotFound) {
		respondNotFound(c, "language")
		return
	}
	if err != nil {
		respondServiceError(c, err, "get language")
		return
	}
	c.JSON(http.StatusOK, LanguageResponse{ID: language.ID, ISO6393: language.ISO6393})
}

// GetSentences returns the sentences of a language, empty for unknown codes
// GET /languages/:code/sentences
func (lc *LanguagesController) GetSentences(c *gin.Context) {
	list, err := lc.languages.GetSentencesByLanguage(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondServiceError(c, err, "get sentences by language")
		return
	}
	c.JSON(http.StatusOK, newSentenceResponses(list))
}
