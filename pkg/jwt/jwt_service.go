package jwt

import (
	"errors"
	"fmt"
	"log"
	"time"

	"generosity-backend/domain"
	"generosity-backend/internal/utils"

	"github.com/golang-jwt/jwt/v4"
)

type (
	JWTService interface {
		GenerateAccessToken(userID string, role string) string
		GenerateRefreshToken(userID string, role string) string
		ValidateToken(token string) (*jwt.Token, error)
		GetUserIDByToken(token string) (string, string, error)
		GetUserIDByRefreshToken(token string) (string, string, error)
	}

	jwtUserClaim struct {
		UserID    string `json:"user_id"`
		Role      string `json:"role"`
		TokenType string `json:"token_type"`
		jwt.RegisteredClaims
	}

	jwtService struct {
		secretKey string
		issuer    string
	}
)

const (
	accessTokenDuration  = time.Minute * 120
	refreshTokenDuration = time.Hour * 24 * 7

	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

func getSecretKey() string {
	utils.LoadConfig()
	return utils.GetConfig("JWT_SECRET")
}

func NewJWTService() JWTService {
	return &jwtService{
		secretKey: getSecretKey(),
		issuer:    "GENEROSITY",
	}
}

func (j *jwtService) generateToken(userID, role, tokenType string, duration time.Duration) string {
	claims := jwtUserClaim{
		userID,
		role,
		tokenType,
		jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(duration)),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tx, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		log.Println(err)
	}
	return tx
}

func (j *jwtService) GenerateAccessToken(userID string, role string) string {
	return j.generateToken(userID, role, tokenTypeAccess, accessTokenDuration)
}

func (j *jwtService) GenerateRefreshToken(userID string, role string) string {
	return j.generateToken(userID, role, tokenTypeRefresh, refreshTokenDuration)
}

func (j *jwtService) parseToken(t_ *jwt.Token) (any, error) {
	if _, ok := t_.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t_.Header["alg"])
	}
	return []byte(j.secretKey), nil
}

func (j *jwtService) ValidateToken(token string) (*jwt.Token, error) {
	return jwt.ParseWithClaims(token, &jwtUserClaim{}, j.parseToken)
}

func (j *jwtService) getUserIDByToken(token string, wantType string) (string, string, error) {
	t_Token, err := j.ValidateToken(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", "", domain.ErrTokenExpired
		}
		return "", "", domain.ErrTokenInvalid
	}
	if !t_Token.Valid {
		return "", "", domain.ErrTokenInvalid
	}

	claims := t_Token.Claims.(*jwtUserClaim)
	if claims.TokenType != wantType {
		return "", "", domain.ErrTokenInvalid
	}

	return claims.UserID, claims.Role, nil
}

func (j *jwtService) GetUserIDByToken(token string) (string, string, error) {
	return j.getUserIDByToken(token, tokenTypeAccess)
}

func (j *jwtService) GetUserIDByRefreshToken(token string) (string, string, error) {
	return j.getUserIDByToken(token, tokenTypeRefresh)
}
