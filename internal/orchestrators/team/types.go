package team

// Member is one assembled roster entry. It is built by Roster.AddMember
// and never modified afterwards.
type Member struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	SpriteURL string   `json:"sprite_url"`
	CryURL    string   `json:"cry_url,omitempty"`
	Moves     []string `json:"moves"`
}

// HasCry reports whether the member has cry audio
func (m *Member) HasCry() bool {
	return m.CryURL != ""
}
