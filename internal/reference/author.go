package reference

import "strings"

// Author represents a person name split into its BibTeX parts.
type Author struct {
	First string `json:"first,omitempty"` // Given and middle names
	Von   string `json:"von,omitempty"`   // Lower-case particles: von, van der, de la
	Last  string `json:"last"`            // Family name
	Jr    string `json:"jr,omitempty"`    // Lineage: Jr., III
}

// String renders the name as "von Last, Jr, First", omitting empty parts.
func (a Author) String() string {
	vonLast := strings.TrimSpace(strings.Join([]string{a.Von, a.Last}, " "))
	var parts []string
	for _, p := range []string{vonLast, a.Jr, a.First} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

