// Copyright (c) 2026 Foodgram. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec verifies identity tokens issued by the external identity provider
// and exposes the resulting [Principal].
//
// Token issuance lives outside this service; only the RS256 public key is loaded.
package sec

import (
	"crypto/rsa"
	"fmt"
	"os"

	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims is the payload of an access token.
//
// Claim names are abbreviated to keep the token small.
type AuthClaims struct {
	jwt.RegisteredClaims

	UserID   string `json:"uid"`
	Username string `json:"unm"`
	Email    string `json:"eml"`
	Role     string `json:"rol"`
}

// Principal converts the claims into the request identity.
func (claims *AuthClaims) Principal() *Principal {
	role := UserRole(claims.Role)
	if role == "" {
		role = RoleMember
	}
	return &Principal{
		UserID:   claims.UserID,
		Username: claims.Username,
		Email:    claims.Email,
		Role:     role,
	}
}

// TokenVerifier checks RS256 tokens against a public key.
type TokenVerifier struct {
	publicKey *rsa.PublicKey
	issuer    string
}

// NewTokenVerifier reads the PEM public key at publicKeyPath.
//
// An empty issuer disables the 'iss' check.
func NewTokenVerifier(publicKeyPath, issuer string) (*TokenVerifier, error) {
	publicKeyData, err := os.ReadFile(publicKeyPath)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to read public key from %s: %w", publicKeyPath, err)
	}

	publicKey, err := jwt.ParseRSAPublicKeyFromPEM(publicKeyData)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to parse public key: %w", err)
	}

	return NewTokenVerifierFromKey(publicKey, issuer), nil
}

// NewTokenVerifierFromKey builds a verifier around an already parsed key.
func NewTokenVerifierFromKey(publicKey *rsa.PublicKey, issuer string) *TokenVerifier {
	return &TokenVerifier{publicKey: publicKey, issuer: issuer}
}

// VerifyToken checks the signature and validity of a JWT string.
func (verifier *TokenVerifier) VerifyToken(tokenString string) (*AuthClaims, error) {
	options := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()})}
	if verifier.issuer != "" {
		options = append(options, jwt.WithIssuer(verifier.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		return verifier.publicKey, nil
	}, options...)
	if err != nil {
		return nil, fmt.Errorf("sec: invalid token: %w", err)
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("sec: invalid token claims")
	}

	if claims.UserID == "" {
		return nil, fmt.Errorf("sec: token has no subject")
	}

	return claims, nil
}
