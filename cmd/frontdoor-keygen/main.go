package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"flag"
	"fmt"
	"os"
)

func main() {
	var (
		keyBytes = flag.Int("master-key-bytes", 32, "master key length in bytes (minimum 32)")
		signing  = flag.Bool("signing-keys", true, "also generate an ed25519 certificate keypair")
	)
	flag.Parse()

	if *keyBytes < 32 {
		fmt.Fprintln(os.Stderr, "master-key-bytes must be at least 32")
		os.Exit(2)
	}

	masterKey := make([]byte, *keyBytes)
	if _, err := rand.Read(masterKey); err != nil {
		fmt.Fprintf(os.Stderr, "master key: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("FRONTDOOR_MASTER_KEY=%s\n", base64.StdEncoding.EncodeToString(masterKey))

	if !*signing {
		return
	}

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		fmt.Fprintf(os.Stderr, "signing keys: %v\n", err)
		os.Exit(1)
	}

	privDER, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "marshal private key: %v\n", err)
		os.Exit(1)
	}
	pubDER, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		fmt.Fprintf(os.Stderr, "marshal public key: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	_ = pem.Encode(os.Stdout, &pem.Block{Type: "PRIVATE KEY", Bytes: privDER})
	fmt.Println()
	_ = pem.Encode(os.Stdout, &pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})
}
