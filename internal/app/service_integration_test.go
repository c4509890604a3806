package service_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/rentyield/internal/adapters/loader"
	service "github.com/okian/rentyield/internal/app"
)

const scenarioCSV = `ListingId,Address,Suburb,Price,GrossLettableArea,NetAnnualIncome
1,1 Main Rd,Goodwood,1000000,100,100000
2,2 Main Rd,Goodwood,1000000,100,100000
3,1 Ocean View,Clifton,10000000,300,500000
4,1 High St,Observatory,1000000,100,80000
`

const scenarioJSON = `{
    "topSuburbs": [
        {
            "name": "Goodwood",
            "averageYield": 10,
            "medianPricePerSqM": 10000,
            "stdDevYield": 0,
            "averagePricePerSqM": 10000,
            "propertyCount": 2
        },
        {
            "name": "Observatory",
            "averageYield": 8,
            "medianPricePerSqM": 10000,
            "stdDevYield": null,
            "averagePricePerSqM": 10000,
            "propertyCount": 1
        }
    ]
}
`

func TestServiceIntegration(t *testing.T) {
	Convey("Given a service reading and writing real files", t, func() {
		ctx := context.Background()
		dir := t.TempDir()
		in := filepath.Join(dir, "listings.csv")
		So(os.WriteFile(in, []byte(scenarioCSV), 0o600), ShouldBeNil)
		svc := service.New(service.WithMetrics(newMetrics()))

		Convey("When processing the reference table", func() {
			out := filepath.Join(dir, "reports", "report.json")
			_, err := svc.Run(ctx, in, out)

			Convey("Then the report file holds the ranked suburbs", func() {
				So(err, ShouldBeNil)
				data, readErr := os.ReadFile(out)
				So(readErr, ShouldBeNil)
				So(string(data), ShouldEqual, scenarioJSON)
			})
		})

		Convey("When processing the same table twice", func() {
			first := filepath.Join(dir, "first.json")
			second := filepath.Join(dir, "second.json")
			_, err1 := svc.Run(ctx, in, first)
			_, err2 := svc.Run(ctx, in, second)

			Convey("Then the outputs are byte-identical", func() {
				So(err1, ShouldBeNil)
				So(err2, ShouldBeNil)
				a, _ := os.ReadFile(first)
				b, _ := os.ReadFile(second)
				So(bytes.Equal(a, b), ShouldBeTrue)
			})
		})

		Convey("When the table has only a header", func() {
			empty := filepath.Join(dir, "empty.csv")
			So(os.WriteFile(empty, []byte("ListingId,Address,Suburb,Price,GrossLettableArea,NetAnnualIncome\n"), 0o600), ShouldBeNil)
			out := filepath.Join(dir, "empty.json")
			_, err := svc.Run(ctx, empty, out)

			Convey("Then an empty list is written", func() {
				So(err, ShouldBeNil)
				data, _ := os.ReadFile(out)
				So(string(data), ShouldEqual, "{\n    \"topSuburbs\": []\n}\n")
			})
		})

		Convey("When a single listing has a zero price", func() {
			zero := filepath.Join(dir, "zero.csv")
			So(os.WriteFile(zero, []byte("ListingId,Suburb,Price,GrossLettableArea,NetAnnualIncome\n1,Woodstock,0,100,50000\n"), 0o600), ShouldBeNil)
			out := filepath.Join(dir, "zero.json")
			_, err := svc.Run(ctx, zero, out)

			Convey("Then the suburb is reported with a null average yield", func() {
				So(err, ShouldBeNil)
				data, _ := os.ReadFile(out)
				So(string(data), ShouldContainSubstring, `"averageYield": null`)
				So(string(data), ShouldContainSubstring, `"stdDevYield": null`)
			})
		})

		Convey("When the input file does not exist", func() {
			out := filepath.Join(dir, "never.json")
			_, err := svc.Run(ctx, filepath.Join(dir, "missing.csv"), out)

			Convey("Then ErrNotFound is returned and no output is created", func() {
				So(errors.Is(err, loader.ErrNotFound), ShouldBeTrue)
				_, statErr := os.Stat(out)
				So(os.IsNotExist(statErr), ShouldBeTrue)
			})
		})

		Convey("When required columns are missing", func() {
			bad := filepath.Join(dir, "bad.csv")
			So(os.WriteFile(bad, []byte("ListingId,Suburb\n1,Goodwood\n"), 0o600), ShouldBeNil)
			_, err := svc.Run(ctx, bad, filepath.Join(dir, "bad.json"))
			So(errors.Is(err, loader.ErrMissingColumns), ShouldBeTrue)
		})
	})
}
