package listinggen

import (
	"bufio"
	"context"
	crand "crypto/rand"
	"encoding/binary"
	"encoding/csv"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/okian/rentyield/pkg/logger"
)

// row is one generated listing.
type row struct {
	id      int
	address string
	suburb  string
	price   int
	gla     int
	income  int
}

func (r row) record() []string {
	return []string{
		strconv.Itoa(r.id),
		r.address,
		r.suburb,
		strconv.Itoa(r.price),
		strconv.Itoa(r.gla),
		strconv.Itoa(r.income),
	}
}

// generator draws listings from a seeded source so runs are reproducible.
type generator struct {
	rnd *rand.Rand
}

func newGenerator(seed uint64) *generator {
	return &generator{rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// intRange returns a value in [lo, hi].
func (g *generator) intRange(lo, hi int) int {
	return lo + g.rnd.IntN(hi-lo+1)
}

func (g *generator) next(id int) row {
	suburb := Suburbs[g.rnd.IntN(len(Suburbs))]
	price := g.intRange(minPrice, maxPrice)
	gla := g.intRange(minGLA, maxGLA)
	// Income keeps the gross yield between 3% and 12%.
	rate := minYieldRate + g.rnd.Float64()*(maxYieldRate-minYieldRate)
	income := int(float64(price) * rate)
	address := fmt.Sprintf("%d %s Rd", g.intRange(minStreetNo, maxStreetNo), streets[g.rnd.IntN(len(streets))])

	return row{id: id, address: address, suburb: suburb, price: price, gla: gla, income: income}
}

// randomSeed returns a seed from crypto/rand.
func randomSeed() (uint64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

// Generate writes config.NumRows listings with ids 1..N to config.OutputFile.
func Generate(ctx context.Context, config *Config) (Stats, error) {
	start := time.Now()
	if config.NumRows < 0 {
		return Stats{}, fmt.Errorf("number of rows must not be negative: %d", config.NumRows)
	}

	seed := config.Seed
	if seed == 0 {
		s, err := randomSeed()
		if err != nil {
			return Stats{}, fmt.Errorf("failed to draw seed: %w", err)
		}
		seed = s
	}

	logger.Get().Info(ctx, "generating listings",
		logger.Int("rows", config.NumRows),
		logger.String("output", config.OutputFile),
		logger.Uint64("seed", seed),
	)

	if err := os.MkdirAll(filepath.Dir(config.OutputFile), directoryPermission); err != nil {
		return Stats{}, fmt.Errorf("failed to create output directory: %w", err)
	}
	file, err := os.OpenFile(config.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePermission)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	buf := bufio.NewWriter(file)
	w := csv.NewWriter(buf)
	if err := w.Write(Header); err != nil {
		return Stats{}, fmt.Errorf("failed to write header: %w", err)
	}

	gen := newGenerator(seed)
	for i := 1; i <= config.NumRows; i++ {
		if err := w.Write(gen.next(i).record()); err != nil {
			return Stats{}, fmt.Errorf("failed to write row %d: %w", i, err)
		}
		if config.ProgressEvery > 0 && i%config.ProgressEvery == 0 {
			if err := ctx.Err(); err != nil {
				return Stats{}, fmt.Errorf("generation interrupted after %d rows: %w", i, err)
			}
			logger.Get().Info(ctx, "progress", logger.Int("rowsWritten", i))
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return Stats{}, fmt.Errorf("failed to flush rows: %w", err)
	}
	if err := buf.Flush(); err != nil {
		return Stats{}, fmt.Errorf("failed to flush file: %w", err)
	}
	if err := file.Close(); err != nil {
		return Stats{}, fmt.Errorf("failed to close output file: %w", err)
	}

	stats := Stats{
		RowsWritten: config.NumRows,
		Seed:        seed,
		OutputFile:  config.OutputFile,
		Duration:    time.Since(start),
	}
	logger.Get().Info(ctx, "listings written",
		logger.Int("rows", stats.RowsWritten),
		logger.String("output", stats.OutputFile),
		logger.Duration("duration", stats.Duration),
	)
	return stats, nil
}
