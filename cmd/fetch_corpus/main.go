// Command fetch_corpus downloads a public domain training corpus into
// testdata/corpus, stripping the Project Gutenberg header and license.
package main

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
)

var files = map[string]string{
	"war-and-peace.txt": "https://www.gutenberg.org/cache/epub/2600/pg2600.txt",
}

var (
	startMarker = []byte("*** START OF")
	endMarker   = []byte("*** END OF")
)

func download(url string) ([]byte, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: unexpected status %s", url, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("download %s: got 0 bytes", url)
	}
	return body, nil
}

// stripGutenberg returns the text between the START and END marker lines.
// Text without markers is returned unchanged.
func stripGutenberg(text []byte) []byte {
	if i := bytes.Index(text, startMarker); i >= 0 {
		if nl := bytes.IndexByte(text[i:], '\n'); nl >= 0 {
			text = text[i+nl+1:]
		}
	}
	if i := bytes.Index(text, endMarker); i >= 0 {
		text = text[:i]
	}
	return bytes.TrimSpace(text)
}

func main() {
	targetDir := filepath.Join("testdata", "corpus")

	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "mkdir %s: %v\n", targetDir, err)
		os.Exit(1)
	}

	for name, url := range files {
		destPath := filepath.Join(targetDir, name)
		fmt.Printf("-> downloading %s\n", name)

		body, err := download(url)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error downloading %s: %v\n", name, err)
			os.Exit(1)
		}
		if err := os.WriteFile(destPath, stripGutenberg(body), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "write %s: %v\n", destPath, err)
			os.Exit(1)
		}
	}

	fmt.Println("done. files in testdata/corpus/")
}
