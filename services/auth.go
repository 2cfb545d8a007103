package services

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/econosfera/econ_api/dto"
	"github.com/econosfera/econ_api/model"
	"github.com/econosfera/econ_api/shared"

	"github.com/alphabatem/common/context"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// AuthService owns registration, credential sign-in, the federated sign-in
// hook and the fiber auth middleware. Actual federated token verification
// happens upstream at the identity provider; only its verified result
// reaches this service.
type AuthService struct {
	context.DefaultService

	sqlSvc *PostgresService
	jwtSvc *JWTService
}

const AUTH_SVC = "auth_svc"

func (svc AuthService) Id() string {
	return AUTH_SVC
}

func (svc *AuthService) Configure(ctx *context.Context) error {
	svc.sqlSvc = ctx.Service(POSTGRES_SVC).(*PostgresService)
	svc.jwtSvc = ctx.Service(JWT_SVC).(*JWTService)
	return svc.DefaultService.Configure(ctx)
}

func (svc *AuthService) Start() error {
	return nil
}

// ==================== REGISTRATION ====================

func (svc *AuthService) Register(req dto.RegisterRequest) (*dto.RegisterResponse, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, err
	}

	account := &model.Account{
		Email:        req.Email,
		Username:     req.Username,
		Password:     string(hashedPassword),
		AuthProvider: shared.AuthProviderLocal,
		Role:         shared.RoleUser,
		Plan:         shared.PlanFree,
	}

	created, err := svc.sqlSvc.CreateAccount(account)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{"user_id": created.ID}).Info("Account registered")

	return &dto.RegisterResponse{
		UserID:  created.ID,
		Credits: created.Credits,
	}, nil
}

// ==================== CREDENTIAL SIGN-IN ====================

// Login verifies an email-or-username + password pair. Unknown accounts,
// federated-only accounts without a stored hash, and hash mismatches all
// yield the same InvalidCredentials error.
func (svc *AuthService) Login(req dto.LoginRequest) (*dto.LoginResponse, error) {
	account, err := svc.sqlSvc.GetAccountByEmailOrUsername(req.EmailOrUsername)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewInvalidCredentialsError()
		}
		return nil, svc.sqlSvc.HandleError(err)
	}

	if account.Password == "" {
		return nil, shared.NewInvalidCredentialsError()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(req.Password)); err != nil {
		return nil, shared.NewInvalidCredentialsError()
	}

	if err := svc.sqlSvc.UpdateLastLogin(account.ID); err != nil {
		log.WithError(err).WithField("user_id", account.ID).Warn("Failed to update last login")
	}

	pair, err := svc.jwtSvc.GenerateTokenPair(account.ID, account.Role)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken: pair.AccessToken,
		ExpiresIn:   pair.ExpiresIn,
		User:        svc.accountInfo(account),
	}, nil
}

// ==================== FEDERATED SIGN-IN ====================

// FederatedSignIn upserts the account for a provider-verified identity.
// First sign-in creates the account with the initial credit grant and no
// password hash; later sign-ins return the existing account.
func (svc *AuthService) FederatedSignIn(req dto.FederatedSignInRequest) (*dto.LoginResponse, error) {
	account, err := svc.sqlSvc.GetAccountByEmail(req.Email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, svc.sqlSvc.HandleError(err)
		}

		account, err = svc.sqlSvc.CreateAccount(&model.Account{
			Email:        req.Email,
			Username:     svc.federatedUsername(req.Email),
			AuthProvider: req.Provider,
			Role:         shared.RoleUser,
			Plan:         shared.PlanFree,
		})
		if err != nil {
			return nil, err
		}
		log.WithFields(log.Fields{"user_id": account.ID, "provider": req.Provider}).Info("Federated account created")
	}

	if err := svc.sqlSvc.UpdateLastLogin(account.ID); err != nil {
		log.WithError(err).WithField("user_id", account.ID).Warn("Failed to update last login")
	}

	pair, err := svc.jwtSvc.GenerateTokenPair(account.ID, account.Role)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken: pair.AccessToken,
		ExpiresIn:   pair.ExpiresIn,
		User:        svc.accountInfo(account),
	}, nil
}

// federatedUsername derives a handle from the email local part. A handle
// already taken gets a uuid suffix; the check is a pre-create lookup, so a
// concurrent create claiming the same handle still fails as a duplicate.
func (svc *AuthService) federatedUsername(email string) string {
	local := email
	for i, r := range email {
		if r == '@' {
			local = email[:i]
			break
		}
	}

	if _, err := svc.sqlSvc.GetAccountByEmailOrUsername(local); err == nil {
		id, _ := uuid.NewV7()
		return local + "_" + id.String()[:8]
	}
	return local
}

func (svc *AuthService) accountInfo(account *model.Account) dto.AccountInfo {
	return dto.AccountInfo{
		ID:          account.ID,
		Username:    account.Username,
		Email:       account.Email,
		Role:        account.Role,
		Plan:        account.Plan,
		Credits:     account.Credits,
		CreatedAt:   account.CreatedAt,
		LastLoginAt: account.LastLoginAt,
	}
}

// ==================== MIDDLEWARE ====================

func (svc *AuthService) RequiredAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := svc.jwtSvc.ExtractTokenFromHeader(c.Get("Authorization"))
		if err != nil {
			return shared.ResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", err.Error())
		}

		userID, role, err := svc.jwtSvc.VerifyJWTToken(token)
		if err != nil {
			return shared.ResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", "Invalid JWT token")
		}
		if userID == "" {
			return shared.ResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", "Invalid user ID in token")
		}

		c.Locals(shared.UserID, userID)
		c.Locals(shared.Role, role)
		return c.Next()
	}
}

// OptionalAuth resolves the account when a valid token is present and lets
// anonymous requests pass through untouched. Used by the export endpoint's
// anonymous branch.
func (svc *AuthService) OptionalAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := svc.jwtSvc.ExtractTokenFromHeader(c.Get("Authorization"))
		if err != nil {
			return c.Next()
		}

		userID, role, err := svc.jwtSvc.VerifyJWTToken(token)
		if err != nil || userID == "" {
			return c.Next()
		}

		c.Locals(shared.UserID, userID)
		c.Locals(shared.Role, role)
		return c.Next()
	}
}

func (svc *AuthService) RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		currentRole, _ := c.Locals(shared.Role).(string)
		if currentRole != role {
			return shared.ResponseForbidden(c)
		}
		return c.Next()
	}
}
