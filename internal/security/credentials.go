// Package security holds admin credential verification and the server-side
// login session store.
package security

import (
	"strings"

	"github.com/NeLsOnxX33/ai-chatbot-copilot/internal/config"
	"github.com/NeLsOnxX33/ai-chatbot-copilot/internal/domain"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// CredentialProvider verifies admin credentials. Implementations decide
// where the roster lives; handlers only see this interface.
type CredentialProvider interface {
	// Verify matches username case-insensitively and checks the password.
	// Returns the admin account on success.
	Verify(username, password string) (*domain.AdminUser, bool)
	// Lookup returns the account for a username without checking a
	// password. Used to validate the username cookie.
	Lookup(username string) (*domain.AdminUser, bool)
}

// StaticProvider is a CredentialProvider over the configured roster.
// Passwords are bcrypt-hashed at construction so only hashes are retained.
type StaticProvider struct {
	users map[string]*domain.AdminUser
}

// NewStaticProvider builds a provider from the configured admin accounts
func NewStaticProvider(accounts []config.AdminAccount) (*StaticProvider, error) {
	users := make(map[string]*domain.AdminUser, len(accounts))
	for _, acc := range accounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(acc.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		username := strings.ToLower(strings.TrimSpace(acc.Username))
		users[username] = &domain.AdminUser{
			Username:     username,
			PasswordHash: string(hash),
			Role:         acc.Role,
			Name:         acc.Name,
			Permissions:  acc.Permissions,
		}
	}
	log.Info().Int("accounts", len(users)).Msg("Admin credential provider initialized")
	return &StaticProvider{users: users}, nil
}

// Verify implements CredentialProvider
func (p *StaticProvider) Verify(username, password string) (*domain.AdminUser, bool) {
	user, ok := p.Lookup(username)
	if !ok {
		return nil, false
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, false
	}
	return user, true
}

// Lookup implements CredentialProvider
func (p *StaticProvider) Lookup(username string) (*domain.AdminUser, bool) {
	user, ok := p.users[strings.ToLower(strings.TrimSpace(username))]
	return user, ok
}
