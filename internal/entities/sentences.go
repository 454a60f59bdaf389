package entities

import "time"

// Language is an ISO 639-3 language sentences can be written in.
// Codes are immutable once created.
type Language struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ISO6393   string    `gorm:"column:iso639_3;uniqueIndex;size:3;not null;check:chk_language_code_length,length(iso639_3) = 3" json:"iso639_3"`
	CreatedAt time.Time `json:"created_at"`
}

func (Language) TableName() string {
	return "languages"
}

// Sentence is a piece of text in a given language, optionally annotated with
// an XML structure whose flattened text equals Content.
type Sentence struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	LanguageID *uint     `gorm:"uniqueIndex:idx_sentences_language_content,priority:1" json:"-"`
	Language   *Language `gorm:"foreignKey:LanguageID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
	AddedAt    time.Time `gorm:"autoCreateTime;index" json:"added_at"`
	Content    string    `gorm:"type:text;not null;uniqueIndex:idx_sentences_language_content,priority:2" json:"text"`
	Structure  *string   `gorm:"type:text" json:"structure"`
}

func (Sentence) TableName() string {
	return "sentences"
}

// LanguageCode returns the ISO 639-3 code of the preloaded language, or an
// empty string when the language was not loaded or has been removed.
func (s Sentence) LanguageCode() string {
	if s.Language == nil {
		return ""
	}
	return s.Language.ISO6393
}
