package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

var (
	backendURL = flag.String("url", "http://localhost:8080", "relay base URL")
	dataDir    = flag.String("data", filepath.Join(".", "data"), "directory with images")
	prompt     = flag.String("prompt", "Describe this image. What do you see?", "prompt sent with every image")

	routes = []string{"/api/gemini", "/gemini"}
)

func main() {
	flag.Parse()
	ctx := context.Background()

	images, err := os.ReadDir(*dataDir)
	if err != nil {
		log.Fatalf("read data dir: %v", err)
	}

	var results []BenchResult
	for _, route := range routes {
		for _, image := range images {
			if image.IsDir() {
				continue
			}
			res := benchmarkImage(ctx, route, filepath.Join(*dataDir, image.Name()))

			if res.Err != nil {
				log.Println("ERR:", res.Route, res.File, res.Err)
			} else {
				log.Printf("OK %s %s %v", res.Route, res.File, res.Duration)
			}

			results = append(results, res)
		}
	}

	printMarkdown(results)
}

func benchmarkImage(ctx context.Context, route, filePath string) BenchResult {
	fileRaw, err := os.ReadFile(filePath)
	if err != nil {
		return BenchResult{File: filePath, Route: route, Err: err}
	}

	req := GenerateRequest{Prompt: *prompt}
	if mimeType := mime.TypeByExtension(filepath.Ext(filePath)); mimeType != "" {
		req.Image = &InlineImage{
			Data:     base64.StdEncoding.EncodeToString(fileRaw),
			MimeType: mimeType,
		}
	}

	start := time.Now()
	status, err := send(ctx, *backendURL+route, req)

	return BenchResult{
		File:     filepath.Base(filePath),
		Route:    route,
		Duration: time.Since(start),
		Status:   status,
		Err:      err,
		Size:     int64(len(fileRaw)),
	}
}

func send[T any](ctx context.Context, endpoint string, req T) (int, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return 0, fmt.Errorf("marshal req: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(httpReq)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, err
	}

	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, fmt.Errorf("bad status %d: %s",
			resp.StatusCode,
			strings.TrimSpace(string(b)),
		)
	}
	return resp.StatusCode, nil
}

func aggregate(results []BenchResult) map[string]Agg {
	m := map[string]Agg{}
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		a := m[r.Route]
		a.Count++
		a.TotalBytes += r.Size
		a.Total += r.Duration
		m[r.Route] = a
	}
	return m
}

func printMarkdown(results []BenchResult) {
	fmt.Println("\n## Benchmark Results")
	fmt.Println()
	fmt.Println("| Route | Requests | Avg Time | Total Time | Avg File Size |")
	fmt.Println("|-------|----------|----------|------------|---------------|")

	agg := aggregate(results)

	keys := make([]string, 0, len(agg))
	for route := range agg {
		keys = append(keys, route)
	}
	sort.Strings(keys)

	var (
		totalCount    int
		totalDuration time.Duration
		totalBytes    int64
	)

	for _, route := range keys {
		a := agg[route]
		avg := a.Total / time.Duration(a.Count)
		avgSize := a.TotalBytes / int64(a.Count)
		fmt.Printf("| %s | %d | %v | %v | %s |\n",
			route,
			a.Count,
			avg.Round(time.Millisecond),
			a.Total.Round(time.Millisecond),
			humanBytes(avgSize),
		)
		totalCount += a.Count
		totalDuration += a.Total
		totalBytes += a.TotalBytes
	}

	if totalCount > 0 {
		mean := totalDuration / time.Duration(totalCount)
		avgSize := totalBytes / int64(totalCount)
		fmt.Printf("| **ALL** | %d | %v | %v | %s |\n",
			totalCount,
			mean.Round(time.Millisecond),
			totalDuration.Round(time.Millisecond),
			humanBytes(avgSize),
		)
	}
}

func humanBytes(size int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)
	switch {
	case size >= GB:
		return fmt.Sprintf("%.2f GB", float64(size)/GB)
	case size >= MB:
		return fmt.Sprintf("%.2f MB", float64(size)/MB)
	case size >= KB:
		return fmt.Sprintf("%.2f KB", float64(size)/KB)
	default:
		return fmt.Sprintf("%d B", size)
	}
}
