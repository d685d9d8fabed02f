package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims incluye los claims estándar JWT más la lista de roles del usuario.
// El subject es el ID del usuario. Los roles viajan en el token por compatibilidad
// con clientes existentes, pero el middleware de auth siempre re-resuelve los roles
// desde la base de datos: un rol revocado deja de valer antes de que expire el token.
type Claims struct {
	jwt.RegisteredClaims
	Roles []string `json:"roles"`
}

// Generate genera un token JWT firmado (HS256) con el usuario como subject y sus roles.
// La ventana de validez por defecto del sistema es de 8 horas (480 minutos, vía config).
func Generate(secret, userID string, roles []string, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		Roles: roles,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida el token y devuelve el ID de usuario (subject) y los roles embebidos.
// Cualquier fallo (malformado, expirado, firma incorrecta) retorna un único error opaco:
// el llamador no debe poder distinguir la causa.
func Parse(secret, tokenString string) (userID string, roles []string, err error) {
	if secret == "" {
		return "", nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", nil, fmt.Errorf("jwt: token inválido")
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", nil, fmt.Errorf("jwt: token inválido")
	}
	return claims.Subject, claims.Roles, nil
}
