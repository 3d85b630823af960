package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"

	"trenddrop/internal/models"
)

// CredentialKey is the Locals key holding the caller's *models.Credential.
const CredentialKey = "credential"

// RequireCredential rejects requests without an Authorization header.
// Presence is all that is checked; the token is not verified. The parsed
// header is stored in Locals for handlers.
func RequireCredential(c fiber.Ctx) error {
	cred, ok := ParseCredential(c.Get(fiber.HeaderAuthorization))
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"ok":    false,
			"error": "unauthorized",
		})
	}

	c.Locals(CredentialKey, cred)
	return c.Next()
}

// ParseCredential splits an Authorization header into scheme and token.
// A header without a space is kept whole as the token.
func ParseCredential(header string) (*models.Credential, bool) {
	header = strings.TrimSpace(header)
	if header == "" {
		return nil, false
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found {
		return &models.Credential{Token: header}, true
	}
	return &models.Credential{Scheme: scheme, Token: strings.TrimSpace(token)}, true
}

// GetCredential returns the credential stored by RequireCredential, if any.
func GetCredential(c fiber.Ctx) *models.Credential {
	cred, _ := c.Locals(CredentialKey).(*models.Credential)
	return cred
}
