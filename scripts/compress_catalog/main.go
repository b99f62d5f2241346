package main

import (
	"compress/gzip"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"quickbite/internal/catalog"

	"github.com/rs/zerolog"
)

// compress_catalog validates a catalogue file and writes a gzipped copy next to
// it, ready to upload under the S3 catalogue prefix.
func main() {
	src := flag.String("src", "data/recipes.json", "catalogue file to compress")
	flag.Parse()

	// Refuse to publish a catalogue the API would reject at startup
	loader := catalog.NewFileLoader(zerolog.Nop())
	recipes, err := loader.Load(context.Background(), *src)
	if err != nil {
		log.Fatalf("Invalid catalogue %s: %v", *src, err)
	}
	for i := range recipes {
		if err := recipes[i].Validate(); err != nil {
			log.Fatalf("Invalid catalogue %s: %v", *src, err)
		}
	}

	dst := *src + ".gz"
	if err := compressFile(*src, dst); err != nil {
		log.Fatalf("Failed to compress %s: %v", *src, err)
	}

	fmt.Printf("Created %s with %d recipes\n", filepath.Clean(dst), len(recipes))
}

func compressFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	gzWriter := gzip.NewWriter(out)
	gzWriter.Name = filepath.Base(src)

	if _, err := io.Copy(gzWriter, in); err != nil {
		return err
	}
	if err := gzWriter.Close(); err != nil {
		return err
	}
	return out.Close()
}
