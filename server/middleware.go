package vetlinkserver

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	accountdomain "github.com/vetlink/vetlink-api/internal/domains/accounts/domain"
	accountports "github.com/vetlink/vetlink-api/internal/domains/accounts/ports"
	appointmentdomain "github.com/vetlink/vetlink-api/internal/domains/appointments/domain"
)

const authUserKey = "auth.user"

// SessionMiddleware resolves the Authorization bearer token to an account and
// stores it on the request context. Requests without a token pass through;
// handlers that need an actor fall back to the request body.
func SessionMiddleware(accounts accountports.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if accounts == nil {
			c.Next()
			return
		}
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.Next()
			return
		}
		user, err := accounts.Authenticate(c.Request.Context(), token)
		if err == nil && user != nil {
			c.Set(authUserKey, user)
		}
		c.Next()
	}
}

func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return header
}

// authenticatedUser returns the account resolved by SessionMiddleware.
func authenticatedUser(c *gin.Context) (*accountdomain.User, bool) {
	value, ok := c.Get(authUserKey)
	if !ok {
		return nil, false
	}
	user, ok := value.(*accountdomain.User)
	return user, ok && user != nil
}

// resolveActor determines which negotiation role performs a transition. An
// authenticated session wins over the body-supplied role; super admins must
// state which side they act for.
func resolveActor(c *gin.Context, bodyActor string) (appointmentdomain.Actor, error) {
	if user, ok := authenticatedUser(c); ok {
		switch user.Role {
		case accountdomain.RoleVet:
			return appointmentdomain.ActorVet, nil
		case accountdomain.RolePetOwner:
			return appointmentdomain.ActorPetOwner, nil
		case accountdomain.RoleSuperAdmin:
			return appointmentdomain.ParseActor(strings.TrimSpace(bodyActor))
		}
	}
	if strings.TrimSpace(bodyActor) == "" {
		return "", errors.New("acting role is required")
	}
	return appointmentdomain.ParseActor(strings.TrimSpace(bodyActor))
}
