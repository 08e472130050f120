// Package main provides the parts search CLI client.
// It talks to a running parts-search-server over HTTP.
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/partsearch/parts-search/internal/search"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "parts-search [query]",
		Short: "Auto parts catalog search client",
		Long: `parts-search queries a running parts-search-server.

With a query argument it runs one search and prints the results.
With --batch it runs every line of the file as a query.
Without arguments it starts an interactive prompt.

Examples:
  parts-search "фильтр масляный тойота"
  parts-search W914/2
  parts-search --batch queries.txt
  parts-search --server http://search.internal:8080`,
		Args:         cobra.MaximumNArgs(1),
		RunE:         run,
		SilenceUsage: true,
	}

	rootCmd.Flags().StringP("server", "s", "http://localhost:8080", "server URL")
	rootCmd.Flags().StringP("batch", "b", "", "file with one query per line")
	rootCmd.Flags().Bool("json", false, "print raw JSON responses")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("parts-search %s\n", version)
			fmt.Printf("  commit: %s\n", commit)
			fmt.Printf("  built:  %s\n", date)
		},
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	serverURL, _ := cmd.Flags().GetString("server")
	batchPath, _ := cmd.Flags().GetString("batch")
	rawJSON, _ := cmd.Flags().GetBool("json")

	client := &client{
		base:    strings.TrimRight(serverURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		rawJSON: rawJSON,
	}

	switch {
	case batchPath != "":
		return client.runBatch(batchPath)
	case len(args) == 1:
		return client.runQuery(args[0])
	default:
		return client.runInteractive()
	}
}

type client struct {
	base    string
	http    *http.Client
	rawJSON bool
}

func (c *client) runQuery(query string) error {
	resp, raw, err := c.search(query)
	if err != nil {
		return err
	}
	c.print(resp, raw)
	return nil
}

func (c *client) runBatch(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening batch file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		query := strings.TrimSpace(scanner.Text())
		if query == "" || strings.HasPrefix(query, "#") {
			continue
		}
		fmt.Printf("=== %s\n", query)
		resp, raw, err := c.search(query)
		if err != nil {
			fmt.Printf("  error: %v\n", err)
			continue
		}
		c.print(resp, raw)
	}
	return scanner.Err()
}

func (c *client) runInteractive() error {
	fmt.Printf("parts-search %s, server %s\n", version, c.base)
	fmt.Println("Type a query, or 'exit' to quit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}
		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			continue
		}
		if query == "exit" || query == "quit" {
			return nil
		}
		resp, raw, err := c.search(query)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			continue
		}
		c.print(resp, raw)
	}
}

func (c *client) search(query string) (*search.Response, []byte, error) {
	endpoint := c.base + "/search?q=" + url.QueryEscape(query)
	httpResp, err := c.http.Get(endpoint)
	if err != nil {
		return nil, nil, fmt.Errorf("requesting %s: %w", c.base, err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("reading response: %w", err)
	}
	if httpResp.StatusCode != http.StatusOK {
		var errResp struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &errResp) == nil && errResp.Error != "" {
			return nil, nil, fmt.Errorf("server: %s", errResp.Error)
		}
		return nil, nil, fmt.Errorf("server returned %s", httpResp.Status)
	}

	var resp search.Response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, nil, fmt.Errorf("decoding response: %w", err)
	}
	return &resp, body, nil
}

func (c *client) print(resp *search.Response, raw []byte) {
	if c.rawJSON {
		fmt.Println(string(raw))
		return
	}

	fmt.Printf("%s · %d results · %.1f ms\n", resp.Classification, len(resp.Results), resp.TookMs)
	if len(resp.Results) == 0 {
		fmt.Println("  nothing found")
		return
	}
	for i, r := range resp.Results {
		fmt.Printf("%3d. %-20s %-16s %s\n", i+1, r.Manufacturer, r.ProductCode, r.Title)
	}
}
