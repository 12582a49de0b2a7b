package config

type ProviderInfo struct {
	ID           string
	Name         string
	Description  string
	NeedsAPIKey  bool
	EnvKeys      []string
	SignupURL    string
	Models       []string
	DefaultModel string
}

var Providers = []ProviderInfo{
	{
		ID:           "gemini",
		Name:         "Gemini",
		Description:  "Google, structured output",
		NeedsAPIKey:  true,
		EnvKeys:      []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"},
		SignupURL:    "https://aistudio.google.com/app/apikey",
		Models:       []string{"gemini-2.5-flash", "gemini-2.5-pro"},
		DefaultModel: "gemini-2.5-flash",
	},
	{
		ID:           "ollama",
		Name:         "Ollama",
		Description:  "Local, free, private",
		NeedsAPIKey:  false,
		Models:       []string{"llama3.1:8b", "llama3.1:70b", "qwen2.5:7b", "mistral:7b"},
		DefaultModel: "llama3.1:8b",
	},
	{
		ID:           "groq",
		Name:         "Groq",
		Description:  "Very fast, cheap",
		NeedsAPIKey:  true,
		EnvKeys:      []string{"GROQ_API_KEY"},
		SignupURL:    "https://console.groq.com/keys",
		Models:       []string{"llama-3.1-70b-versatile", "llama-3.1-8b-instant", "mixtral-8x7b-32768"},
		DefaultModel: "llama-3.1-70b-versatile",
	},
	{
		ID:           "openai",
		Name:         "OpenAI",
		Description:  "GPT-4o, most capable",
		NeedsAPIKey:  true,
		EnvKeys:      []string{"OPENAI_API_KEY"},
		SignupURL:    "https://platform.openai.com/api-keys",
		Models:       []string{"gpt-4o", "gpt-4o-mini", "gpt-4-turbo"},
		DefaultModel: "gpt-4o-mini",
	},
	{
		ID:           "anthropic",
		Name:         "Anthropic",
		Description:  "Claude, great writing",
		NeedsAPIKey:  true,
		EnvKeys:      []string{"ANTHROPIC_API_KEY"},
		SignupURL:    "https://console.anthropic.com/",
		Models:       []string{"claude-3-5-sonnet-20241022", "claude-3-5-haiku-20241022"},
		DefaultModel: "claude-3-5-sonnet-20241022",
	},
	{
		ID:           "openrouter",
		Name:         "OpenRouter",
		Description:  "Access all models",
		NeedsAPIKey:  true,
		EnvKeys:      []string{"OPENROUTER_API_KEY"},
		SignupURL:    "https://openrouter.ai/keys",
		Models:       []string{"anthropic/claude-3.5-sonnet", "openai/gpt-4o", "google/gemini-2.5-flash"},
		DefaultModel: "google/gemini-2.5-flash",
	},
}

func GetProvider(id string) *ProviderInfo {
	for _, p := range Providers {
		if p.ID == id {
			return &p
		}
	}
	return nil
}
