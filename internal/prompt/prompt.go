// Package prompt builds the natural-language instructions sent to the
// hosted generation backend. One fixed template per request kind; the
// output is fully determined by the request fields.
package prompt

import (
	"fmt"

	"github.com/saiisback/empower/internal/models"
)

// Builder renders generation prompts. It holds no state; a single value
// is shared by all requests.
type Builder struct{}

func NewBuilder() *Builder { return &Builder{} }

// Build returns the prompt string for the given request. It is total:
// every valid kind maps to exactly one template, and identical requests
// always produce identical prompts.
func (b *Builder) Build(req models.GenerationRequest) string {
	switch req.Kind {
	case models.KindGame:
		return b.gamePrompt(req)
	case models.KindQuiz:
		return b.quizPrompt(req)
	case models.KindExplain:
		return b.explainPrompt(req)
	default:
		// Validate() runs before the pipeline; this keeps Build total anyway.
		return b.explainPrompt(req)
	}
}

func (b *Builder) gamePrompt(req models.GenerationRequest) string {
	return fmt.Sprintf(gameTemplate, req.Age, req.Topic, req.Subject, req.Accessibility)
}

func (b *Builder) quizPrompt(req models.GenerationRequest) string {
	return fmt.Sprintf(quizTemplate, req.Subject, req.Age)
}

func (b *Builder) explainPrompt(req models.GenerationRequest) string {
	return fmt.Sprintf(explainTemplate, req.Topic, req.Age)
}

const gameTemplate = `You are an expert game developer who specializes in creating fun, educational, and accessible web-based mini-games for children.

Your task is to generate a complete, self-contained HTML file for a mini-game based on the user's request.

**User Request:**
- **Age:** %d
- **Topic:** "%s"
- **Subject:** "%s"
- **Disability considerations:** "%s"

**Game Requirements:**
1.  **Single HTML File:** The entire game (HTML, CSS, JavaScript) must be in one file. Do not use external libraries unless via a CDN link.
2.  **Dynamic & Creative:** DO NOT use a fixed template. Create a unique game mechanic suitable for the topic. Examples of mechanics:
    - A **drag-and-drop** game to sort animals into habitats.
    - A **matching-pairs** game to link words to pictures.
    - A **"whack-a-mole"** style game to identify correct answers.
    - A **sequencing** game to order the steps of photosynthesis.
    - A simple **click-to-collect** game.
3.  **Age-Appropriate:**
    - For ages 3-6: Use large clickable elements, bright colors, simple instructions, and focus on visual/auditory feedback.
    - For ages 7-10: Introduce slightly more complex rules, points, and text.
    - For ages 11+: Can include more complex logic, timers, and detailed explanations.
4.  **Accessibility:**
    - If disability is 'visual', use high-contrast colors (e.g., black/white/yellow), large font sizes (minimum 24px), and ARIA labels.
    - If disability is 'motor', ensure all targets are large and easy to click or drag. Avoid fast-timed events.
    - If disability is 'adhd', use engaging visuals, clear goals, and frequent, positive feedback to maintain focus.
5.  **Communication with Parent App:** The game runs in an iframe. The JavaScript inside the game MUST communicate events back to the parent application using window.parent.postMessage.
    - **Required Messages:**
      - When the score changes: window.parent.postMessage({ type: 'scoreUpdate', payload: { score: newScore } }, '*');
      - When an achievement is unlocked: window.parent.postMessage({ type: 'achievement', payload: { title: 'Achievement Name' } }, '*');
      - When the game is won/completed: window.parent.postMessage({ type: 'gameEnd', payload: { finalScore: score } }, '*');
6.  **Fun Factor:** The game must be visually appealing, with fun sound effects (optional, if you can find a way), animations, and positive reinforcement (e.g., "Great Job!", "Awesome!").

**Output Format:**
Return a single, clean JSON object. DO NOT add any text before or after the JSON.

` + "```json" + `
{
    "title": "A fun and engaging title for the game",
    "description": "A brief, one-sentence description of the game's goal.",
    "instructions": "Simple, step-by-step instructions on how to play.",
    "learningGoals": [
        "Identify the planets in the solar system.",
        "Learn the order of the planets from the sun."
    ],
    "achievements": [
        "First Correct Answer!",
        "Solar System Explorer",
        "Galaxy Champion"
    ],
    "htmlCode": ""
}
` + "```" + `

Now, create the game based on the user's request.`

const quizTemplate = `Create 5 fun, interactive quiz questions about %s for %d-year-old children.
Return JSON array format:
[
    {"question": "Fun question with emojis 🎈", "options": ["Option A 🌟", "Option B 🎯", "Option C 🎨"], "correctAnswer": 0, "explanation": "Simple explanation"}
]`

const explainTemplate = `Create a simple, engaging explanation about %s for %d-year-old children.
Return JSON format:
{"title": "✨ Title", "content": "Simple explanation with emojis", "funFact": "Cool fact!"}`
