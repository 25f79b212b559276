// Command healthcheck probes the user directory server's liveness endpoint.
// It is intended as a container HEALTHCHECK binary: exit code 0 means the
// server answered 200 OK within the timeout, any other outcome exits 1.
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
)

func main() {
	var address string
	var timeout time.Duration

	flag.StringVar(&address, "a", "localhost:8080", "Server address host:port")
	flag.DurationVar(&timeout, "timeout", 3*time.Second, "Probe timeout")
	flag.Parse()

	client := resty.New().
		SetBaseURL("http://" + address).
		SetTimeout(timeout)

	resp, err := client.R().Get("/api/health")
	if err != nil {
		fmt.Fprintf(os.Stderr, "healthcheck failed: %v\n", err)
		os.Exit(1)
	}

	if resp.StatusCode() != http.StatusOK {
		fmt.Fprintf(os.Stderr, "healthcheck failed: status %d\n", resp.StatusCode())
		os.Exit(1)
	}

	os.Exit(0)
}
