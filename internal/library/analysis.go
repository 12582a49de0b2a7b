package library

// PoetryAnalysis is the structured reading of a poem.
type PoetryAnalysis struct {
	Tone      string   `json:"tone"`
	Themes    []string `json:"themes"`
	Structure string   `json:"structure"`
	Critique  string   `json:"critique"`
}

// Empty reports whether no field carries any content.
func (a *PoetryAnalysis) Empty() bool {
	if a == nil {
		return true
	}
	return a.Tone == "" && len(a.Themes) == 0 && a.Structure == "" && a.Critique == ""
}
