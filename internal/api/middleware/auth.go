package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/m04kA/SMC-SlotInventory/internal/api/handlers"
)

const (
	bearerPrefix = "Bearer "
	// браузер не умеет ставить заголовки при апгрейде до websocket
	accessTokenParam = "access_token"
)

var (
	ErrMissingToken = errors.New("middleware: missing bearer token")
	ErrInvalidToken = errors.New("middleware: invalid token")
)

// Claims токен внешнего провайдера аутентификации
type Claims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// HasAnyRole проверяет, что в токене есть хотя бы одна из ролей
func (c *Claims) HasAnyRole(roles ...string) bool {
	for _, have := range c.Roles {
		for _, want := range roles {
			if have == want {
				return true
			}
		}
	}
	return false
}

// AuthConfig параметры проверки токена
type AuthConfig struct {
	Secret []byte
	Issuer string
	// Roles роли, с которыми разрешен доступ
	Roles []string
}

// Auth пропускает только запросы с валидным HS256 токеном и одной из разрешенных ролей
// Subject токена кладется в контекст и в заголовок X-User-ID
func Auth(cfg AuthConfig, logger Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := parseClaims(r, cfg)
			if err != nil {
				logger.Warn("Auth: rejected %s %s: %v", r.Method, r.URL.Path, err)
				handlers.RespondUnauthorized(w)
				return
			}

			if !claims.HasAnyRole(cfg.Roles...) {
				logger.Warn("Auth: user %s has none of roles %v for %s %s", claims.Subject, cfg.Roles, r.Method, r.URL.Path)
				handlers.RespondForbidden(w)
				return
			}

			r.Header.Set(HeaderUserID, claims.Subject)
			next.ServeHTTP(w, r.WithContext(withUserID(r.Context(), claims.Subject)))
		})
	}
}

func parseClaims(r *http.Request, cfg AuthConfig) (*Claims, error) {
	raw, err := bearerToken(r)
	if err != nil {
		return nil, err
	}

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return cfg.Secret, nil
	}, opts...)
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, bearerPrefix) && len(header) > len(bearerPrefix) {
		return strings.TrimPrefix(header, bearerPrefix), nil
	}
	if websocket.IsWebSocketUpgrade(r) {
		if token := r.URL.Query().Get(accessTokenParam); token != "" {
			return token, nil
		}
	}
	return "", ErrMissingToken
}
