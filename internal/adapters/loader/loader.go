package loader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/okian/rentyield/internal/domain/model"
	"github.com/okian/rentyield/internal/domain/number"
	"github.com/okian/rentyield/pkg/logger"
)

// Column names of the listings table.
const (
	ColListingID         = "ListingId"
	ColAddress           = "Address"
	ColSuburb            = "Suburb"
	ColPrice             = "Price"
	ColGrossLettableArea = "GrossLettableArea"
	ColNetAnnualIncome   = "NetAnnualIncome"
)

const (
	xlsxExt = ".xlsx"
	bom     = "\uFEFF"
)

// requiredColumns must all be present in the header. Address is optional.
var requiredColumns = []string{ //nolint:gochecknoglobals // fixed schema
	ColListingID,
	ColSuburb,
	ColPrice,
	ColGrossLettableArea,
	ColNetAnnualIncome,
}

// columnTypes pins gota's parsing per column so numeric cells never fall back to
// strings through type detection.
var columnTypes = map[string]series.Type{ //nolint:gochecknoglobals // fixed schema
	ColListingID:         series.Int,
	ColAddress:           series.String,
	ColSuburb:            series.String,
	ColPrice:             series.Float,
	ColGrossLettableArea: series.Float,
	ColNetAnnualIncome:   series.Float,
}

// missingMarkers are cell values read as "no value".
var missingMarkers = []string{"", "NA", "NaN"} //nolint:gochecknoglobals // fixed schema

// Source loads listings from a path.
type Source interface {
	Load(ctx context.Context, path string) ([]model.Listing, error)
}

// Loader reads CSV and XLSX listing tables through a gota DataFrame.
type Loader struct {
	logger logger.Logger
	sheet  string
}

// New creates a Loader.
func New(opts ...Option) *Loader {
	l := &Loader{
		logger: logger.Discard(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads the table at path. Paths ending in .xlsx are read as workbooks,
// everything else as comma-separated text. Rows keep their input order.
//
// It returns ErrNotFound when path is not a readable regular file and ErrLoad
// (or ErrMissingColumns) when the content is not a listings table. A header-only
// table yields no listings and no error.
func (l *Loader) Load(ctx context.Context, path string) ([]model.Listing, error) {
	records, err := l.readRecords(path)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	listings, err := fromRecords(records)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	l.logger.Debug(ctx, "listings table parsed",
		logger.String("path", path),
		logger.Int("rows", len(listings)),
		logger.Int("columns", len(records[0])),
	)
	return listings, nil
}

func (l *Loader) readRecords(path string) ([][]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s is not a regular file", ErrNotFound, path)
	}

	if strings.EqualFold(filepath.Ext(path), xlsxExt) {
		return readXLSX(path, l.sheet)
	}
	return readCSV(path)
}

// fromRecords converts header + data records into listings.
func fromRecords(records [][]string) ([]model.Listing, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no header row", ErrLoad)
	}

	header := make([]string, len(records[0]))
	copy(header, records[0])
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], bom)
	}
	if err := checkHeader(header); err != nil {
		return nil, err
	}

	if len(records) == 1 {
		return []model.Listing{}, nil
	}

	rows := make([][]string, len(records))
	rows[0] = header
	copy(rows[1:], records[1:])

	df := dataframe.LoadRecords(rows,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(missingMarkers),
		dataframe.WithTypes(columnTypes),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, df.Err)
	}
	return toListings(df, hasColumn(header, ColAddress)), nil
}

func checkHeader(header []string) error {
	seen := make(map[string]int, len(header))
	for _, name := range header {
		seen[name]++
	}

	var missing []string
	for _, name := range requiredColumns {
		switch seen[name] {
		case 0:
			missing = append(missing, name)
		case 1:
		default:
			return fmt.Errorf("%w: duplicate column %q", ErrLoad, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}
	return nil
}

func hasColumn(header []string, name string) bool {
	for _, h := range header {
		if h == name {
			return true
		}
	}
	return false
}

func toListings(df dataframe.DataFrame, withAddress bool) []model.Listing {
	ids := df.Col(ColListingID)
	suburbs := df.Col(ColSuburb)
	prices := df.Col(ColPrice).Float()
	areas := df.Col(ColGrossLettableArea).Float()
	incomes := df.Col(ColNetAnnualIncome).Float()

	var addresses series.Series
	if withAddress {
		addresses = df.Col(ColAddress)
	}

	listings := make([]model.Listing, df.Nrow())
	for i := range listings {
		l := model.Listing{
			Suburb:            text(suburbs.Elem(i)),
			Price:             number.Of(prices[i]),
			GrossLettableArea: number.Of(areas[i]),
			NetAnnualIncome:   number.Of(incomes[i]),
		}
		if id := ids.Elem(i); !id.IsNA() {
			if v, err := id.Int(); err == nil {
				l.ListingID, l.HasID = int64(v), true
			}
		}
		if withAddress {
			l.Address = text(addresses.Elem(i))
		}
		listings[i] = l
	}
	return listings
}

// text returns a string cell, or "" for a missing one.
func text(e series.Element) string {
	if e.IsNA() {
		return ""
	}
	return e.String()
}
