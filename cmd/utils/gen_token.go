// Command gen_token mints a local HS256 bearer token for an actor id, for
// exercising the API without the Google identity provider.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"findmymechanic-service/internal/infrastructure/identity"
)

func main() {
	actor := flag.String("actor", "", "actor id to put in the token subject")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	issuer := flag.String("issuer", "findmymechanic", "token issuer")
	flag.Parse()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" || *actor == "" {
		log.Fatal("JWT_SECRET env var and -actor flag are required")
	}

	tm := identity.NewTokenManager(secret, *issuer)
	token, err := tm.GenerateToken(*actor, *ttl)
	if err != nil {
		log.Fatalf("generate token: %v", err)
	}

	fmt.Printf("\nBearer token for %s (valid %s):\n%s\n\n", *actor, *ttl, token)
}
