package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/mailbeacon/mailbeacon/pkg/crypto"
)

// hmac computes a Mailgun-style webhook signature for a timestamp and token.
// Useful for crafting test webhooks against a running server:
//
//	hmac -key whsec -timestamp 1700000000 -token abc123
func main() {
	key := flag.String("key", "", "webhook signing key")
	timestamp := flag.String("timestamp", "", "unix timestamp (defaults to now)")
	token := flag.String("token", "", "random token (defaults to a fresh uuid)")
	flag.Parse()

	if *key == "" {
		fmt.Fprintln(os.Stderr, "error: -key is required")
		flag.Usage()
		os.Exit(1)
	}

	ts := *timestamp
	if ts == "" {
		ts = strconv.FormatInt(time.Now().Unix(), 10)
	}

	tok := *token
	if tok == "" {
		tok = uuid.New().String()
	}

	signature := crypto.ComputeHMAC256([]byte(ts+tok), *key)

	fmt.Printf("timestamp: %s\n", ts)
	fmt.Printf("token:     %s\n", tok)
	fmt.Printf("signature: %s\n", signature)
}
