// Seeds a container snapshot database from a plain-text listing so a
// reorder can be previewed without a live service. Listing format, one
// entry per line:
//
//	item <name>
//	folder <name>
//	end
//	placeholder
//
// Blank lines and lines starting with # are skipped.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/llehouerou/crate/internal/container"
)

func main() {
	dbPath := flag.String("db", "", "path to the container snapshot database")
	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatalf("usage: mkcontainer [-db path] <listing file>")
	}
	listingPath := flag.Arg(0)

	entries, err := parseListing(listingPath)
	if err != nil {
		log.Fatalf("Failed to parse %s: %v", listingPath, err)
	}
	log.Printf("Parsed %d entries from %s", len(entries), listingPath)

	snap, err := container.OpenSnapshot(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open snapshot: %v", err)
	}
	defer snap.Close()

	if err := snap.Replace(entries); err != nil {
		log.Fatalf("Failed to seed snapshot: %v", err)
	}
	log.Printf("Snapshot seeded with %d entries", snap.Count())
}

func parseListing(path string) ([]container.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var entries []container.Entry
	depth := 0
	lineNo := 0

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		verb, rest, _ := strings.Cut(line, " ")
		rest = strings.TrimSpace(rest)

		switch verb {
		case "item":
			if rest == "" {
				return nil, fmt.Errorf("line %d: item needs a name", lineNo)
			}
			entries = append(entries, container.Item(rest))
		case "folder":
			if rest == "" {
				return nil, fmt.Errorf("line %d: folder needs a name", lineNo)
			}
			entries = append(entries, container.FolderStart(rest))
			depth++
		case "end":
			if depth == 0 {
				return nil, fmt.Errorf("line %d: end without open folder", lineNo)
			}
			entries = append(entries, container.FolderEnd())
			depth--
		case "placeholder":
			entries = append(entries, container.Placeholder())
		default:
			return nil, fmt.Errorf("line %d: unknown entry %q", lineNo, verb)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if depth > 0 {
		return nil, fmt.Errorf("%d folders left open at end of listing", depth)
	}
	return entries, nil
}
