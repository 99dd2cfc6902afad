package progress

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/abhisek/playarcade/internal/store"
)

// Profile is the player's badge shelf.
type Profile struct {
	Name   string   `json:"name,omitempty"`
	XP     int      `json:"xp"`
	Badges []string `json:"badges"`
}

// HasBadge reports whether the profile already holds badge id.
func (p Profile) HasBadge(id string) bool {
	return slices.Contains(p.Badges, id)
}

// LoadProfile reads the profile. Absent or malformed data yields an empty
// profile; only store errors are returned.
func LoadProfile(ctx context.Context, kv store.KV) (Profile, error) {
	raw, ok, err := kv.Get(ctx, KeyProfile)
	if err != nil {
		return Profile{}, fmt.Errorf("read profile: %w", err)
	}
	var p Profile
	if ok {
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			p = Profile{}
		}
	}
	return p, nil
}

// SaveProfile writes the profile.
func SaveProfile(ctx context.Context, kv store.KV, p Profile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	return kv.Set(ctx, KeyProfile, string(data))
}

// DefaultStudentName is shown until a name is entered.
const DefaultStudentName = "Student"

// LookupStudentName returns the name captured at login. ok is false until
// one has been stored.
func LookupStudentName(ctx context.Context, kv store.KV) (name string, ok bool) {
	v, ok, err := kv.Get(ctx, KeyStudentName)
	if err != nil || !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return v, true
}

// StudentName returns the stored name for display, or DefaultStudentName.
func StudentName(ctx context.Context, kv store.KV) string {
	if name, ok := LookupStudentName(ctx, kv); ok {
		return name
	}
	return DefaultStudentName
}

// SetStudentName stores the name entered at login.
func SetStudentName(ctx context.Context, kv store.KV, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("name must not be empty")
	}
	return kv.Set(ctx, KeyStudentName, name)
}
