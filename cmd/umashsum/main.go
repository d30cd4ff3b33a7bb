// Copyright (C) 2024 The Umash-Go Authors.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Command umashsum computes umash fingerprints of files or stdin, the way
// sha256sum computes digests: one fingerprint per input, printed as hex or
// as a UUID-shaped 128-bit identifier.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	gzip "github.com/klauspost/compress/gzip"
	"sigs.k8s.io/yaml"

	umash "github.com/dgryski/go-umash"
	"github.com/dgryski/go-umash/ints"
)

// config is the optional YAML config file layout; flags override it.
// sigs.k8s.io/yaml converts YAML to JSON before unmarshalling, so JSON tags
// drive the field names, matching the teacher's own config-loading
// convention.
type config struct {
	KeyPath string `json:"key"`
	Seed    uint64 `json:"seed"`
	Format  string `json:"format"`
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("umashsum: ")

	var (
		dashConfig = flag.String("config", "", "path to a YAML config file (key, seed, format)")
		dashKey    = flag.String("key", "", "path to a prepared key file (see -genkey)")
		dashGenKey = flag.Bool("genkey", false, "generate a new prepared key at -key and exit")
		dashSeed   = flag.Uint64("seed", 0, "64-bit seed")
		dashFormat = flag.String("format", "hex", "output format: hex or uuid")
		dashGzip   = flag.Bool("gzip", false, "force gzip decompression regardless of file suffix")
		dashVerbos = flag.Bool("v", false, "log the PH block count of each uncompressed input")
	)
	flag.Parse()

	cfg := config{KeyPath: *dashKey, Seed: *dashSeed, Format: *dashFormat}
	if *dashConfig != "" {
		if err := loadConfig(*dashConfig, &cfg); err != nil {
			log.Fatal(err)
		}
	}
	// Explicit flags win over the config file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "key":
			cfg.KeyPath = *dashKey
		case "seed":
			cfg.Seed = *dashSeed
		case "format":
			cfg.Format = *dashFormat
		}
	})

	if *dashGenKey {
		if cfg.KeyPath == "" {
			log.Fatal("-genkey requires -key (or a config file's \"key\")")
		}
		if err := genKey(cfg.KeyPath); err != nil {
			log.Fatal(err)
		}
		return
	}

	if cfg.KeyPath == "" {
		log.Fatal("missing -key (generate one with -genkey)")
	}
	params, err := loadParams(cfg.KeyPath)
	if err != nil {
		log.Fatal(err)
	}

	args := flag.Args()
	if len(args) == 0 {
		args = []string{"-"}
	}

	status := 0
	for _, path := range args {
		if err := sumOne(params, cfg, path, *dashGzip, *dashVerbos); err != nil {
			log.Print(err)
			status = 1
		}
	}
	os.Exit(status)
}

func loadConfig(path string, cfg *config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

func loadParams(path string) (*umash.Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading key %s: %w", path, err)
	}
	var p umash.Params
	if err := p.UnmarshalBinary(data); err != nil {
		return nil, fmt.Errorf("decoding key %s: %w", path, err)
	}
	return &p, nil
}

// genKey draws raw key material from crypto/rand and calls umash.Prepare,
// retrying on the (astronomically unlikely) pool-exhaustion failure with
// fresh randomness, then writes the prepared key to path.
func genKey(path string) error {
	for attempt := 0; attempt < 8; attempt++ {
		var raw umash.RawParams
		if err := ints.RandomFillSlice(raw.Poly[0][:]); err != nil {
			return fmt.Errorf("reading randomness: %w", err)
		}
		if err := ints.RandomFillSlice(raw.Poly[1][:]); err != nil {
			return fmt.Errorf("reading randomness: %w", err)
		}
		if err := ints.RandomFillSlice(raw.Noise[:]); err != nil {
			return fmt.Errorf("reading randomness: %w", err)
		}

		params, ok := umash.Prepare(raw)
		if !ok {
			continue
		}
		buf, err := params.MarshalBinary()
		if err != nil {
			return fmt.Errorf("encoding key: %w", err)
		}
		if err := os.WriteFile(path, buf, 0o600); err != nil {
			return fmt.Errorf("writing key %s: %w", path, err)
		}
		return nil
	}
	return fmt.Errorf("could not prepare a key after %d attempts of fresh randomness", 8)
}

func sumOne(params *umash.Params, cfg config, path string, forceGzip, verbose bool) error {
	var r io.Reader
	if path == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("opening %s: %w", path, err)
		}
		defer f.Close()
		r = f

		if verbose && !forceGzip && !strings.HasSuffix(path, ".gz") {
			if info, err := f.Stat(); err == nil {
				blocks := ints.ChunkCount(uint(info.Size()), uint(umash.BlockSize))
				log.Printf("%s: %d bytes, %d PH blocks", path, info.Size(), blocks)
			}
		}
	}

	if forceGzip || strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(r)
		if err != nil {
			return fmt.Errorf("opening gzip stream %s: %w", path, err)
		}
		defer gz.Close()
		r = gz
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	fp := umash.Fingerprint(params, cfg.Seed, data)
	switch cfg.Format {
	case "uuid":
		fmt.Printf("%s  %s\n", fp.UUID(), path)
	default:
		fmt.Printf("%016x%016x  %s\n", fp.Low, fp.High, path)
	}
	return nil
}
