// Package storage persists catalogue summaries as a JSONL snapshot and an
// ephemeral SQLite index built from it.
package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
)

// MaxJSONLLineCapacity is the maximum buffer size for reading JSONL lines (1MB per line).
const MaxJSONLLineCapacity = 1024 * 1024

// ReadAll reads all articles from a JSONL file. A missing file yields no articles.
func ReadAll(path string) ([]Article, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening articles file: %w", err)
	}
	defer f.Close()

	var articles []Article
	scanner := bufio.NewScanner(f)
	buf := make([]byte, MaxJSONLLineCapacity)
	scanner.Buffer(buf, MaxJSONLLineCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var a Article
		if err := json.Unmarshal(line, &a); err != nil {
			return nil, fmt.Errorf("parsing line %d: %w", lineNum, err)
		}
		articles = append(articles, a)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading articles file: %w", err)
	}

	return articles, nil
}

// WriteAll writes all articles to a JSONL file, replacing existing content.
func WriteAll(path string, articles []Article) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating articles file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for i, a := range articles {
		data, err := json.Marshal(a)
		if err != nil {
			return fmt.Errorf("encoding article %d: %w", i, err)
		}
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("writing article %d: %w", i, err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return fmt.Errorf("writing newline: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing articles file: %w", err)
	}
	return f.Close()
}

// FindByKey searches for an article by key.
func FindByKey(articles []Article, key string) (int, bool) {
	for i, a := range articles {
		if a.Key == key {
			return i, true
		}
	}
	return -1, false
}
