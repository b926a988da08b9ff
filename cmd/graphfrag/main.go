package main

import (
	"fmt"
	"log"
	"os"

	"github.com/richinsley/shaderlive/graph"
)

const usage = "usage: graphfrag <graph.yaml> [out.frag]"

func emit(in string) (string, error) {
	f, err := os.Open(in)
	if err != nil {
		return "", err
	}
	defer f.Close()

	g, root, err := graph.Decode(f)
	if err != nil {
		return "", fmt.Errorf("%s: %w", in, err)
	}
	return g.EmitFragment(root)
}

func main() {
	if len(os.Args) < 2 || len(os.Args) > 3 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	text, err := emit(os.Args[1])
	if err != nil {
		log.Fatalf("Failed to emit fragment: %v", err)
	}

	if len(os.Args) == 2 {
		fmt.Print(text)
		return
	}
	// the harness may read the file mid-write; replace it in one step
	out := os.Args[2]
	tmp := out + ".tmp"
	if err := os.WriteFile(tmp, []byte(text), 0o644); err != nil {
		log.Fatalf("Failed to write %s: %v", tmp, err)
	}
	if err := os.Rename(tmp, out); err != nil {
		log.Fatalf("Failed to replace %s: %v", out, err)
	}
	log.Printf("Wrote %s", out)
}
