package permissions

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
)

// Level orders the permission tiers; lower values carry more power. Banned
// sorts above every tier so it never satisfies a requirement.
type Level int

const (
	LevelOwner    Level = 1
	LevelSubOwner Level = 2
	LevelAdmin    Level = 3
	LevelEveryone Level = 4
	LevelBanned   Level = 9
)

// Snapshot is the read-only permission configuration captured at startup.
type Snapshot struct {
	Owners    []string
	SubOwners []string
}

// RoleResolver looks up guild roles, typically backed by the gateway state
// cache.
type RoleResolver interface {
	Role(guildID, roleID string) (*discordgo.Role, error)
}

// Service answers permission questions for interaction handlers. Owner and
// sub-owner lists come from the injected snapshot, admin status from
// resolved guild roles, and bans from the blacklist repository.
type Service struct {
	snapshot  Snapshot
	roles     RoleResolver
	blacklist Repository
}

// NewService creates a permission service.
func NewService(snapshot Snapshot, roles RoleResolver, blacklist Repository) *Service {
	return &Service{
		snapshot:  snapshot,
		roles:     roles,
		blacklist: blacklist,
	}
}

// IsOwner reports whether the user is in the owner list.
func (s *Service) IsOwner(userID string) bool {
	for _, id := range s.snapshot.Owners {
		if id == userID {
			return true
		}
	}
	return false
}

// IsSubOwner reports whether the user is in the sub-owner list.
func (s *Service) IsSubOwner(userID string) bool {
	for _, id := range s.snapshot.SubOwners {
		if id == userID {
			return true
		}
	}
	return false
}

// IsAdmin reports whether any of the member's resolved roles carries the
// administrator permission.
func (s *Service) IsAdmin(guildID string, member *discordgo.Member) bool {
	if member == nil || s.roles == nil {
		return false
	}

	for _, roleID := range member.Roles {
		role, err := s.roles.Role(guildID, roleID)
		if err != nil {
			continue
		}
		if role.Permissions&discordgo.PermissionAdministrator != 0 {
			return true
		}
	}
	return false
}

// IsBanned reports whether the user is on the blacklist.
func (s *Service) IsBanned(ctx context.Context, userID string) (bool, error) {
	return s.blacklist.IsBanned(ctx, userID)
}

// Check resolves the permission level of an invoker. Member may be nil for
// interactions outside a guild.
func (s *Service) Check(ctx context.Context, guildID string, member *discordgo.Member, user *discordgo.User) (Level, error) {
	userID := ""
	if user != nil {
		userID = user.ID
	}

	switch {
	case s.IsOwner(userID):
		return LevelOwner, nil
	case s.IsSubOwner(userID):
		return LevelSubOwner, nil
	case s.IsAdmin(guildID, member):
		return LevelAdmin, nil
	}

	banned, err := s.IsBanned(ctx, userID)
	if err != nil {
		return LevelEveryone, err
	}
	if banned {
		return LevelBanned, nil
	}
	return LevelEveryone, nil
}

// Allow reports whether the invoker's level satisfies the required one.
func (s *Service) Allow(ctx context.Context, required Level, guildID string, member *discordgo.Member, user *discordgo.User) (bool, error) {
	level, err := s.Check(ctx, guildID, member, user)
	if err != nil {
		return false, err
	}
	return level <= required, nil
}

// Ban adds a user to the blacklist and returns the stored entry.
func (s *Service) Ban(ctx context.Context, userID, reason string) (*Ban, error) {
	ban := &Ban{
		ID:     uuid.New().String(),
		UserID: userID,
		Reason: reason,
	}
	if err := s.blacklist.Ban(ctx, ban); err != nil {
		return nil, err
	}
	return ban, nil
}

// Unban removes a user from the blacklist.
func (s *Service) Unban(ctx context.Context, userID string) error {
	return s.blacklist.Unban(ctx, userID)
}

// Bans lists every blacklist entry.
func (s *Service) Bans(ctx context.Context) ([]*Ban, error) {
	return s.blacklist.ListBans(ctx)
}
