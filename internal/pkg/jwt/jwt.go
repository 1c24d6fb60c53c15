package jwt

import (
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Service verifies access tokens issued by the external identity provider.
// This backend never issues login tokens itself; GenerateToken exists for
// service-to-service tokens and test fixtures.
type Service interface {
	JWTAuth() *jwtauth.JWTAuth
	GenerateToken(claims map[string]interface{}, ttl time.Duration) (string, error)
	EmployeeID(token jwt.Token) (string, bool)
}

type JWTService struct {
	secretKey string
	tokenAuth *jwtauth.JWTAuth
}

func NewJWTService(secretKey string) Service {
	return &JWTService{
		secretKey: secretKey,
		tokenAuth: jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateToken(claims map[string]interface{}, ttl time.Duration) (string, error) {
	payload := make(map[string]interface{}, len(claims)+1)
	for k, v := range claims {
		payload[k] = v
	}
	payload["exp"] = time.Now().Add(ttl).Unix()

	_, tokenString, err := j.tokenAuth.Encode(payload)
	return tokenString, err
}

// EmployeeID extracts the employee_id claim from a verified token.
func (j *JWTService) EmployeeID(token jwt.Token) (string, bool) {
	raw, ok := token.Get("employee_id")
	if !ok {
		return "", false
	}
	id, ok := raw.(string)
	return id, ok && id != ""
}
