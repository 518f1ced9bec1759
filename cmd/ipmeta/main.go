package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	ipmeta "github.com/ipmeta/ipmeta-go"
	"github.com/ipmeta/ipmeta-go/internal/config"
)

// One-shot lookup tool.
// Usage: ipmeta [-token <token>] [-countries <file>] [ip]
// With no ip argument it reports the caller's own address.
func main() {
	appConfig := config.Load()

	token := flag.String("token", appConfig.AccessToken, "API access token (defaults to IPMETA_TOKEN)")
	countriesFile := flag.String("countries", "", "path to a countries JSON file (defaults to the bundled dataset)")
	timeout := flag.Duration("timeout", appConfig.RequestTimeout, "request timeout")
	flag.Parse()

	key := ipmeta.Self()
	if flag.NArg() > 0 {
		key = ipmeta.Address(flag.Arg(0))
	}

	handler, err := ipmeta.New(*token,
		ipmeta.WithCountriesFile(*countriesFile),
		ipmeta.WithRequestOptions(ipmeta.RequestOptions{
			Timeout: *timeout,
			BaseURL: appConfig.BaseURL,
		}),
	)
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}

	details, err := handler.GetDetails(context.Background(), key)
	if err != nil {
		if errors.Is(err, ipmeta.ErrQuotaExceeded) {
			log.Fatal("Request quota exceeded, try again later or configure a token")
		}
		log.Fatalf("Lookup failed: %v", err)
	}

	out, err := json.MarshalIndent(details.All(), "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode result: %v", err)
	}
	fmt.Fprintln(os.Stdout, string(out))
}
