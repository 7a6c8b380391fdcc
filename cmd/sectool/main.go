// Command sectool is a thin demonstration wrapper around the secpcurves
// engine: it has no persisted state, no config files, and no environment
// variables of its own. It lives in cmd/ so the core package tree stays
// free of CLI concerns.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"os"

	"secpcurves.dev/secpcurves"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "pubkey":
		runPubkey(os.Args[2:])
	case "sign":
		runSign(os.Args[2:])
	case "verify":
		runVerify(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: sectool <pubkey|sign|verify> [flags]")
}

func runPubkey(args []string) {
	fs := flag.NewFlagSet("pubkey", flag.ExitOnError)
	curveName := fs.String("curve", "secp256k1", "curve name")
	skHex := fs.String("sk", "", "secret scalar, hex")
	fs.Parse(args)

	c, err := secpcurves.New(*curveName)
	if err != nil {
		log.Fatalf("sectool: %v", err)
	}
	sk, err := hex.DecodeString(*skHex)
	if err != nil {
		log.Fatalf("sectool: invalid -sk: %v", err)
	}

	qx := make([]byte, c.CoordByteLength())
	qy := make([]byte, c.CoordByteLength())
	if err := c.PublicKey(qx, qy, sk); err != nil {
		log.Fatalf("sectool: %v", err)
	}
	fmt.Printf("Qx=%s\nQy=%s\n", hex.EncodeToString(qx), hex.EncodeToString(qy))
}

func runSign(args []string) {
	fs := flag.NewFlagSet("sign", flag.ExitOnError)
	curveName := fs.String("curve", "secp256k1", "curve name")
	hHex := fs.String("h", "", "digest, hex")
	kHex := fs.String("k", "", "ephemeral scalar, hex")
	dHex := fs.String("d", "", "secret scalar, hex")
	fs.Parse(args)

	c, err := secpcurves.New(*curveName)
	if err != nil {
		log.Fatalf("sectool: %v", err)
	}
	h, err1 := hex.DecodeString(*hHex)
	k, err2 := hex.DecodeString(*kHex)
	d, err3 := hex.DecodeString(*dHex)
	if err1 != nil || err2 != nil || err3 != nil {
		log.Fatalf("sectool: invalid hex input")
	}

	r := make([]byte, c.PrimeByteLength())
	s := make([]byte, c.PrimeByteLength())
	if err := c.Sign(r, s, h, k, d); err != nil {
		log.Fatalf("sectool: %v", err)
	}
	fmt.Printf("r=%s\ns=%s\n", hex.EncodeToString(r), hex.EncodeToString(s))
}

func runVerify(args []string) {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	curveName := fs.String("curve", "secp256k1", "curve name")
	hHex := fs.String("h", "", "digest, hex")
	rHex := fs.String("r", "", "signature r, hex")
	sHex := fs.String("s", "", "signature s, hex")
	qxHex := fs.String("qx", "", "public key x, hex")
	qyHex := fs.String("qy", "", "public key y, hex")
	strict := fs.Bool("strict", false, "apply defense-in-depth range/curve checks")
	fs.Parse(args)

	c, err := secpcurves.New(*curveName)
	if err != nil {
		log.Fatalf("sectool: %v", err)
	}
	h, _ := hex.DecodeString(*hHex)
	r, _ := hex.DecodeString(*rHex)
	s, _ := hex.DecodeString(*sHex)
	qx, _ := hex.DecodeString(*qxHex)
	qy, _ := hex.DecodeString(*qyHex)

	var status int32
	if *strict {
		status = c.VerifyStrict(r, s, h, qx, qy)
	} else {
		status = c.Verify(r, s, h, qx, qy)
	}
	if status == -1 {
		fmt.Println("valid")
	} else {
		fmt.Println("invalid")
		os.Exit(1)
	}
}
