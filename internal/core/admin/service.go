// Package admin holds the single authorization principal of the system:
// whoever knows the admin password. There are no users, roles or per-post
// ownership.
package admin

// Service checks supplied credentials against the admin secret injected at
// startup. The secret is never read from the environment here.
type Service struct {
	adminPassword string
}

// NewService creates a new admin credential service.
func NewService(adminPassword string) *Service {
	return &Service{adminPassword: adminPassword}
}

// Login reports whether password matches the configured admin secret.
func (s *Service) Login(password string) bool {
	return password == s.adminPassword
}
