package bot

import (
	"fmt"
	"strings"
)

const (
	// customIDSeparator is the character used to separate parts
	customIDSeparator = ":"

	// maxCustomIDLength is Discord's limit for custom IDs
	maxCustomIDLength = 100
)

// CustomID is a structured component identifier: a domain routing to a
// component handler, an action within it, and any extra arguments.
type CustomID struct {
	Domain string
	Action string
	Args   []string
}

// NewCustomID creates a new CustomID.
func NewCustomID(domain, action string, args ...string) *CustomID {
	return &CustomID{
		Domain: domain,
		Action: action,
		Args:   args,
	}
}

// Encode converts the CustomID to its wire form.
func (c *CustomID) Encode() (string, error) {
	if c.Domain == "" || c.Action == "" {
		return "", fmt.Errorf("custom id needs a domain and an action")
	}

	parts := append([]string{c.Domain, c.Action}, c.Args...)
	encoded := strings.Join(parts, customIDSeparator)

	if len(encoded) > maxCustomIDLength {
		return "", fmt.Errorf("custom id exceeds %d characters: %s", maxCustomIDLength, encoded)
	}
	return encoded, nil
}

// ParseCustomID parses a wire custom id back into its parts.
func ParseCustomID(raw string) (*CustomID, error) {
	parts := strings.Split(raw, customIDSeparator)
	if len(parts) < 2 {
		return nil, fmt.Errorf("invalid custom id: %s", raw)
	}

	return &CustomID{
		Domain: parts[0],
		Action: parts[1],
		Args:   parts[2:],
	}, nil
}

// Arg returns the i-th argument or an empty string.
func (c *CustomID) Arg(i int) string {
	if i < 0 || i >= len(c.Args) {
		return ""
	}
	return c.Args[i]
}
