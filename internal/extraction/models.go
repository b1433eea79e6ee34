package extraction

// Chat-completions wire format for the external extraction endpoint.

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type Choice struct {
	Message ChatMessage `json:"message"`
}

type ChatCompletionResponse struct {
	Choices []Choice `json:"choices"`
}

// NotAvailable is the sentinel the extraction prompt mandates for fields the
// model cannot determine. It is never omitted, so downstream merging can
// distinguish "unknown" from "absent".
const NotAvailable = "N/A"

// CandidateData is the structured payload parsed from the model reply.
type CandidateData struct {
	Email      string           `json:"email"`
	Phone      string           `json:"phone"`
	FirstName  string           `json:"firstName"`
	LastName   string           `json:"lastName"`
	Address    string           `json:"address"`
	Education  []EducationData  `json:"education"`
	Experience []ExperienceData `json:"experience"`
	Skills     []SkillData      `json:"skills"`
	Languages  []LanguageData   `json:"languages"`
}

type EducationData struct {
	Level       string `json:"level"`
	Institution string `json:"institution"`
	Period      string `json:"period"`
}

type ExperienceData struct {
	Title   string `json:"title"`
	Company string `json:"company"`
	Period  string `json:"period"`
}

type SkillData struct {
	Name string `json:"name"`
}

type LanguageData struct {
	Language string `json:"language"`
	Level    string `json:"level"`
}
