package statictoken

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"fmt"
	"strings"

	"github.com/riskibarqy/soccer-academy/internal/domain/user"
	"github.com/riskibarqy/soccer-academy/internal/platform/logging"
	"github.com/riskibarqy/soccer-academy/internal/usecase"
)

const adminUserID = "admin"

// Verifier accepts a single configured bearer token and maps it to the
// admin principal.
type Verifier struct {
	tokenHash [sha256.Size]byte
	enabled   bool
	logger    *logging.Logger
}

func NewVerifier(adminToken string, logger *logging.Logger) *Verifier {
	if logger == nil {
		logger = logging.Default()
	}

	adminToken = strings.TrimSpace(adminToken)
	return &Verifier{
		tokenHash: sha256.Sum256([]byte(adminToken)),
		enabled:   adminToken != "",
		logger:    logger,
	}
}

func (v *Verifier) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}
	if !v.enabled {
		v.logger.WarnContext(ctx, "admin token rejected", "reason", "ADMIN_API_TOKEN not configured")
		return user.Principal{}, fmt.Errorf("%w: invalid token", usecase.ErrUnauthorized)
	}

	got := sha256.Sum256([]byte(token))
	if subtle.ConstantTimeCompare(got[:], v.tokenHash[:]) != 1 {
		return user.Principal{}, fmt.Errorf("%w: invalid token", usecase.ErrUnauthorized)
	}

	return user.Principal{
		UserID: adminUserID,
		Roles:  []string{user.RoleAdmin},
	}, nil
}
