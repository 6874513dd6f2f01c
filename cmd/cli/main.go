package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"a11ydash/internal/export"
	"a11ydash/internal/issue"
)

const defaultBaseURL = "http://localhost:8080"

func main() {
	global := flag.NewFlagSet("a11ydash", flag.ExitOnError)
	baseURL := global.String("api", envOr("A11YDASH_API", defaultBaseURL), "API base URL")
	if err := global.Parse(os.Args[1:]); err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	args := global.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	ctx := context.Background()
	cmd := args[0]
	sub := ""
	rest := []string{}
	if len(args) > 1 {
		sub = args[1]
		rest = args[2:]
	}

	api := &apiClient{
		http:    &http.Client{Timeout: 15 * time.Second},
		baseURL: *baseURL,
	}

	switch cmd {
	case "overview":
		handleOverview(ctx, api)
	case "touchpoints":
		handleTouchpoints(ctx, api, sub, rest)
	case "issues":
		handleIssues(ctx, api, sub, rest)
	case "wcag":
		handleWCAG(sub, rest)
	default:
		printUsage()
		os.Exit(1)
	}
}

func handleOverview(ctx context.Context, api *apiClient) {
	var resp overviewResponse
	if err := api.doJSON(ctx, http.MethodGet, "/overview", nil, &resp); err != nil {
		log.Fatalf("overview failed: %v", err)
	}
	for _, item := range resp.Items {
		fmt.Printf("%-20s %d\n", item.Label, item.Value)
	}
	printTally("Segnalazioni per sezione", resp.BySection)
	printTally("Segnalazioni per tipologia", resp.ByType)
	printTally("WCAG più violati", resp.ByWCAG)
}

func handleTouchpoints(ctx context.Context, api *apiClient, sub string, args []string) {
	fs := flag.NewFlagSet("touchpoints "+sub, flag.ExitOnError)
	query := fs.String("q", "", "search section or URL")
	status := fs.String("status", "", "test status filter")
	sortField := fs.String("sort", "", "section or issueCount")
	dir := fs.String("dir", "", "asc or desc")

	switch sub {
	case "list":
		_ = fs.Parse(args)

		var resp touchpointListResponse
		endpoint := withQuery("/touchpoints", map[string]string{"q": *query, "status": *status, "sort": *sortField, "dir": *dir})
		if err := api.doJSON(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
			log.Fatalf("list failed: %v", err)
		}
		if resp.Message != "" {
			fmt.Println(resp.Message)
			return
		}
		printJSON(resp.Items)
	case "export":
		out := fs.String("out", export.Filename, "output CSV path")
		_ = fs.Parse(args)

		endpoint := withQuery("/touchpoints/export.csv", map[string]string{"q": *query, "status": *status, "sort": *sortField, "dir": *dir})
		body, err := api.do(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			log.Fatalf("export failed: %v", err)
		}
		if err := os.WriteFile(*out, body, 0o644); err != nil {
			log.Fatalf("write csv failed: %v", err)
		}
		log.Printf("exported touchpoints to %s", *out)
	default:
		log.Fatal("usage: a11ydash touchpoints <list|export>")
	}
}

func handleIssues(ctx context.Context, api *apiClient, sub string, args []string) {
	switch sub {
	case "list":
		fs := flag.NewFlagSet("issues list", flag.ExitOnError)
		tp := fs.String("touchpoint", "", "touchpoint id")
		query := fs.String("q", "", "search description, resolution or criterion")
		status := fs.String("status", "", "status filter")
		typ := fs.String("type", "", "type filter")
		wcag := fs.String("wcag", "", "WCAG criterion prefix")
		_ = fs.Parse(args)
		if *tp == "" {
			log.Fatal("touchpoint id is required")
		}

		var resp issueListResponse
		endpoint := withQuery("/touchpoints/"+url.PathEscape(*tp)+"/issues",
			map[string]string{"q": *query, "status": *status, "type": *typ, "wcag": *wcag})
		if err := api.doJSON(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
			log.Fatalf("list failed: %v", err)
		}
		if resp.Message != "" {
			fmt.Println(resp.Message)
			return
		}
		printJSON(resp.Items)
	case "show", "resolve":
		method, endpoint, err := issueRequest(sub, args)
		if err != nil {
			log.Fatal(err)
		}
		var resp map[string]any
		if err := api.doJSON(ctx, method, endpoint, nil, &resp); err != nil {
			log.Fatalf("%s failed: %v", sub, err)
		}
		printJSON(resp)
	default:
		log.Fatal("usage: a11ydash issues <list|show|resolve>")
	}
}

// issueRequest parses the flags of issues show|resolve. Id 0 is a real id
// (records whose id could not be parsed), so only a missing -id is rejected.
func issueRequest(sub string, args []string) (method, endpoint string, err error) {
	fs := flag.NewFlagSet("issues "+sub, flag.ContinueOnError)
	id := fs.Int("id", 0, "issue id")
	if err := fs.Parse(args); err != nil {
		return "", "", err
	}
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "id" {
			set = true
		}
	})
	if !set {
		return "", "", errors.New("issue id is required")
	}

	endpoint = "/issues/" + strconv.Itoa(*id)
	if sub == "resolve" {
		return http.MethodPost, endpoint + "/resolve", nil
	}
	return http.MethodGet, endpoint, nil
}

// handleWCAG builds the link locally; no server is needed.
func handleWCAG(sub string, args []string) {
	if sub != "link" {
		log.Fatal("usage: a11ydash wcag link -criterion <code>")
	}
	fs := flag.NewFlagSet("wcag link", flag.ExitOnError)
	criterion := fs.String("criterion", "", `criterion code or text, e.g. "1.4.3"`)
	_ = fs.Parse(args)

	link := issue.Link(*criterion)
	if link == "" {
		log.Fatal("criterion is required")
	}
	fmt.Println(link)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func printUsage() {
	fmt.Println("a11ydash [-api URL] <command> [subcommand] [flags]")
	fmt.Println("commands:")
	fmt.Println("  overview")
	fmt.Println("  touchpoints list|export")
	fmt.Println("  issues list|show|resolve")
	fmt.Println("  wcag link")
}
