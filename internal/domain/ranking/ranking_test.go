package ranking_test

import (
	"testing"

	"github.com/okian/rentyield/internal/domain/model"
	"github.com/okian/rentyield/internal/domain/number"
	"github.com/okian/rentyield/internal/domain/ranking"
	"github.com/smartystreets/goconvey/convey"
)

func summary(name string, avg number.Value) model.SuburbSummary {
	return model.SuburbSummary{Name: name, AverageYield: avg, PropertyCount: 1}
}

func names(s []model.SuburbSummary) []string {
	out := make([]string, len(s))
	for i, v := range s {
		out[i] = v.Name
	}
	return out
}

func TestTopN(t *testing.T) {
	convey.Convey("Given suburb summaries", t, func() {
		convey.Convey("When ranking distinct yields", func() {
			in := []model.SuburbSummary{
				summary("Observatory", number.Of(8)),
				summary("Goodwood", number.Of(10)),
				summary("Mowbray", number.Of(9)),
			}
			out := ranking.TopN(in, ranking.DefaultTopN)

			convey.Convey("Then they are ordered by average yield descending", func() {
				convey.So(names(out), convey.ShouldResemble, []string{"Goodwood", "Mowbray", "Observatory"})
			})

			convey.Convey("Then the input is left untouched", func() {
				convey.So(in[0].Name, convey.ShouldEqual, "Observatory")
			})
		})

		convey.Convey("When yields tie", func() {
			out := ranking.TopN([]model.SuburbSummary{
				summary("Woodstock", number.Of(9)),
				summary("Salt River", number.Of(10)),
				summary("Wynberg", number.Of(9)),
				summary("Claremont", number.Of(9)),
			}, ranking.DefaultTopN)

			convey.Convey("Then first-occurrence order breaks the tie", func() {
				convey.So(names(out), convey.ShouldResemble, []string{"Salt River", "Woodstock", "Wynberg", "Claremont"})
			})
		})

		convey.Convey("When non-finite yields are present", func() {
			out := ranking.TopN([]model.SuburbSummary{
				summary("Undefined", number.Undef()),
				summary("Finite", number.Of(12)),
				summary("NegInf", number.Inf(-1)),
				summary("PosInf", number.Inf(1)),
			}, ranking.DefaultTopN)

			convey.Convey("Then +Inf leads and undefined trails", func() {
				convey.So(names(out), convey.ShouldResemble, []string{"PosInf", "Finite", "NegInf", "Undefined"})
			})
		})

		convey.Convey("When there are more than five suburbs", func() {
			in := make([]model.SuburbSummary, 0, 8)
			for i, name := range []string{"A", "B", "C", "D", "E", "F", "G", "H"} {
				in = append(in, summary(name, number.Of(float64(i))))
			}
			out := ranking.TopN(in, ranking.DefaultTopN)

			convey.Convey("Then only the top five are kept", func() {
				convey.So(names(out), convey.ShouldResemble, []string{"H", "G", "F", "E", "D"})
			})
		})

		convey.Convey("When there is nothing to rank", func() {
			out := ranking.TopN(nil, ranking.DefaultTopN)

			convey.Convey("Then an empty, non-nil slice is returned", func() {
				convey.So(out, convey.ShouldNotBeNil)
				convey.So(out, convey.ShouldBeEmpty)
			})
		})

		convey.Convey("When n is not positive", func() {
			out := ranking.TopN([]model.SuburbSummary{summary("A", number.Of(1))}, -1)
			convey.So(out, convey.ShouldBeEmpty)
		})
	})
}
