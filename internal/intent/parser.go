package intent

import (
	"strings"
)

var commands = map[string]Intent{
	"mood":      {Kind: KindMood},
	"recommend": {Kind: KindMood},
	"poem":      {Kind: KindPoem},
	"analyze":   {Kind: KindPoem},
	"home":      {Kind: KindNavigate, View: ViewHome},
	"shop":      {Kind: KindNavigate, View: ViewShop},
	"curator":   {Kind: KindNavigate, View: ViewCurator},
	"chat":      {Kind: KindNavigate, View: ViewCurator},
	"studio":    {Kind: KindNavigate, View: ViewStudio},
	"help":      {Kind: KindHelp},
	"?":         {Kind: KindHelp},
	"settings":  {Kind: KindSettings},
	"config":    {Kind: KindSettings},
	"quit":      {Kind: KindQuit},
	"exit":      {Kind: KindQuit},
	"q":         {Kind: KindQuit},
}

// Parse classifies a command-bar line. Plain text is chat; a leading slash
// selects a command. Returns nil for blank input.
func Parse(input string) *Intent {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return nil
	}

	if !strings.HasPrefix(raw, "/") {
		return &Intent{Kind: KindChat, Text: raw, Raw: raw}
	}

	word, rest, _ := strings.Cut(raw[1:], " ")
	if i := strings.IndexAny(word, "\t\n"); i >= 0 {
		rest = word[i+1:] + " " + rest
		word = word[:i]
	}
	word = strings.ToLower(word)

	in, ok := commands[word]
	if !ok {
		return &Intent{Kind: KindUnknown, Command: word, Raw: raw}
	}
	in.Command = word
	in.Raw = raw
	if in.Kind == KindPoem {
		// keep the poem's line breaks
		in.Text = strings.TrimSpace(rest)
	} else {
		in.Text = strings.Join(strings.Fields(rest), " ")
	}
	return &in
}
