package middleware

import (
	"context"
	"errors"
	"net/http"
	"slices"

	"tourdesk/config"
	"tourdesk/infras/jwt"
	"tourdesk/infras/otel"
	"tourdesk/permissions"
	"tourdesk/shared/constant"
	"tourdesk/shared/failure"
	"tourdesk/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type trustedKey struct{}

// Auth identifies the caller of a request.
type Auth interface {
	Auth(http.Handler) http.Handler
	APIKey(http.Handler) http.Handler
}

// Role restricts endpoints to the roles listed in the permissions file.
type Role interface {
	RBAC(http.Handler) http.Handler
}

type AuthRole interface {
	Auth
	Role
}

type authRoleImpl struct {
	jwtService jwt.JWT
	otel       otel.Otel
	permission *permissions.PermissionData
	cfg        *config.Config
}

func NewAuthRoleMiddleware(jwtService jwt.JWT, otel otel.Otel, permissions *permissions.PermissionData, cfg *config.Config) AuthRole {
	return &authRoleImpl{
		jwtService: jwtService,
		otel:       otel,
		permission: permissions,
		cfg:        cfg,
	}
}

// route returns the permission entry of the chi route matching r.
func (m *authRoleImpl) route(r *http.Request) (string, permissions.Permission) {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil || m.permission == nil {
		return r.URL.Path, permissions.Permission{}
	}

	path := rctx.Routes.Find(chi.NewRouteContext(), r.Method, r.URL.Path)

	return path, m.permission.FindPermissions(path, r.Method)
}

func trusted(ctx context.Context) bool {
	ok, _ := ctx.Value(trustedKey{}).(bool)

	return ok
}

// Auth validates the bearer token and stores the staff identity in the request context.
// Requests already trusted through APIKey and routes marked skip pass through.
func (m *authRoleImpl) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, scope := m.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, "auth.middleware")

		path, permission := m.route(r)
		if trusted(ctx) || permission.Skip {
			scope.End()
			next.ServeHTTP(w, r)

			return
		}

		scope.SetAttributes(map[string]any{
			"middleware.type": "auth",
			"http.path":       path,
			"http.method":     r.Method,
		})

		deny := func(message string) {
			err := failure.Unauthorized(message)
			scope.TraceError(err)
			scope.End()

			response.WithError(w, err)
		}

		tokenString, err := jwt.ExtractTokenFromHeader(r.Header.Get(constant.RequestHeaderAuthorization))
		if err != nil {
			deny(err.Error())

			return
		}

		claims, err := m.jwtService.ValidateToken(ctx, tokenString, jwt.AccessToken)
		if err != nil {
			switch {
			case errors.Is(err, jwt.ErrExpiredToken):
				deny("Token has expired")
			case errors.Is(err, jwt.ErrInvalidClaim):
				deny("Invalid token claims")
			default:
				deny("Invalid token")
			}

			return
		}

		if claims.UserID == constant.Empty {
			log.Error().Str("token", claims.TokenID).Msg("token has no user id")
			deny("Invalid token claims")

			return
		}

		ctx = context.WithValue(ctx, constant.ContextKeyUserID, claims.UserID)
		ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, claims.Email)
		ctx = context.WithValue(ctx, constant.ContextKeyUserRole, claims.Role)
		ctx = context.WithValue(ctx, constant.ContextKeyTokenID, claims.TokenID)

		scope.End()

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RBAC checks the role set by Auth against the roles allowed for the route. Routes
// without an entry are open to every authenticated caller.
func (m *authRoleImpl) RBAC(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, scope := m.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, "rbac.middleware")
		defer scope.End()

		if trusted(ctx) || (m.permission != nil && m.permission.Skip) {
			next.ServeHTTP(w, r)

			return
		}

		if m.permission == nil {
			response.WithError(w, failure.ForbiddenError)

			return
		}

		_, permission := m.route(r)
		role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

		if !permission.Skip && len(permission.Permissions) > 0 && !slices.Contains(permission.Permissions, role) {
			scope.TraceError(failure.ForbiddenError)
			scope.SetAttributes(map[string]any{
				"user_role":     role,
				"allowed_roles": permission.Permissions,
			})

			response.WithError(w, failure.ForbiddenError)

			return
		}

		next.ServeHTTP(w, r)
	})
}

// APIKey trusts internal callers that present the configured key, such as the archive
// worker or the booking site. A wrong key is rejected; no key falls through to Auth.
func (m *authRoleImpl) APIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, scope := m.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, "api_key.middleware")

		apiKey := r.Header.Get(constant.RequestHeaderAPIKey)
		if apiKey == constant.Empty {
			scope.SetAttribute("http.source", "client")
			scope.End()
			next.ServeHTTP(w, r)

			return
		}

		scope.SetAttribute("http.source", "internal")

		if m.cfg.App.APIKey == constant.Empty || apiKey != m.cfg.App.APIKey {
			scope.TraceError(failure.ForbiddenError)
			scope.End()

			response.WithError(w, failure.ForbiddenError)

			return
		}

		ctx = context.WithValue(ctx, constant.ContextKeyUserID, "system")
		ctx = context.WithValue(ctx, trustedKey{}, true)

		scope.End()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
