package models

import "fmt"

// Kind identifies which generation task a request is asking for.
type Kind string

const (
	KindGame    Kind = "game"
	KindQuiz    Kind = "quiz"
	KindExplain Kind = "explain"
)

// Valid reports whether k is one of the supported generation kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindGame, KindQuiz, KindExplain:
		return true
	}
	return false
}

func (k Kind) String() string { return string(k) }

// GenerationRequest carries the user parameters for one generation call.
// It is built from the HTTP request body and never mutated afterwards.
type GenerationRequest struct {
	Kind          Kind
	Age           int
	Subject       string
	Topic         string // quiz prompts ignore this
	Accessibility string
}

// Validate checks that the request names a supported kind.
func (r GenerationRequest) Validate() error {
	if !r.Kind.Valid() {
		return fmt.Errorf("unsupported generation kind %q", r.Kind)
	}
	return nil
}

// GamePayload is the object shape the model must return for game requests.
// HTMLCode carries the complete self-contained game document.
type GamePayload struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Instructions  string   `json:"instructions"`
	LearningGoals []string `json:"learningGoals"`
	Achievements  []string `json:"achievements"`
	HTMLCode      string   `json:"htmlCode"`
}

// QuizQuestion is one element of the array shape returned for quiz requests.
type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

// Explanation is the object shape returned for explain requests.
type Explanation struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	FunFact string `json:"funFact"`
}
