package listinggen

// Defaults used by the generate-listings command.
const (
	DefaultNumRows       = 1_000_000
	DefaultOutputFile    = "data/listings.csv"
	DefaultProgressEvery = 100_000
)

// Value ranges of generated listings. Bounds are inclusive.
const (
	minPrice     = 1_500_000
	maxPrice     = 15_000_000
	minGLA       = 80
	maxGLA       = 1000
	minYieldRate = 0.03
	maxYieldRate = 0.12
	minStreetNo  = 1
	maxStreetNo  = 200
)

// File permission constants.
const (
	directoryPermission = 0o750
	filePermission      = 0o644
)

// Suburbs are the Cape Town suburbs listings are spread over.
var Suburbs = []string{ //nolint:gochecknoglobals // fixed data set
	"Woodstock", "Salt River", "Observatory", "Mowbray", "Rondebosch",
	"Claremont", "Kenilworth", "Wynberg", "Plumstead", "Diep River",
	"Constantia", "Sea Point", "Green Point", "Camps Bay", "City Bowl",
}

var streets = []string{"Main", "Victoria", "Long"} //nolint:gochecknoglobals // fixed data set

// Header is the column row written first.
var Header = []string{"ListingId", "Address", "Suburb", "Price", "GrossLettableArea", "NetAnnualIncome"} //nolint:gochecknoglobals // fixed schema
