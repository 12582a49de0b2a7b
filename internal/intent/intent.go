package intent

// Kind is what the reader asked for
type Kind int

const (
	KindUnknown Kind = iota
	KindChat
	KindMood
	KindPoem
	KindNavigate
	KindHelp
	KindSettings
	KindQuit
)

func (k Kind) String() string {
	switch k {
	case KindChat:
		return "chat"
	case KindMood:
		return "mood"
	case KindPoem:
		return "poem"
	case KindNavigate:
		return "navigate"
	case KindHelp:
		return "help"
	case KindSettings:
		return "settings"
	case KindQuit:
		return "quit"
	}
	return "unknown"
}

// Destinations for KindNavigate
const (
	ViewHome    = "home"
	ViewShop    = "shop"
	ViewCurator = "curator"
	ViewStudio  = "studio"
)

// Intent is one parsed command-bar line
type Intent struct {
	Kind Kind

	// Argument text: the chat message, mood phrase or poem
	Text string

	// Target view for KindNavigate
	View string

	// The command word as typed, without the slash
	Command string

	// The trimmed input line
	Raw string
}
