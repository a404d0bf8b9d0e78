// Dev helper: generates an RSA keypair plus a signed access token so the
// server can be run locally without an external identity provider. The
// printed public key goes into JWT_PUBLIC_KEY.
package main

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"flag"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
)

func main() {
	user := flag.String("user", "user_dev", "user id to embed in the token")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		panic(err)
	}

	pubDer, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		panic(err)
	}
	pubPem := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDer})

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{
		"sub":   "access",
		"scope": "basic",
		"user":  *user,
		"exp":   time.Now().Add(*ttl).Unix(),
	})

	signed, err := token.SignedString(key)
	if err != nil {
		panic(err)
	}

	fmt.Println("JWT_PUBLIC_KEY=" + base64.URLEncoding.EncodeToString(pubPem))
	fmt.Println()
	fmt.Println("Authorization: Bearer " + signed)
}
