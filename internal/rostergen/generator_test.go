package rostergen_test

import (
	"context"
	"testing"

	record "github.com/classrank/classrank/internal/domain/record"
	roster "github.com/classrank/classrank/internal/roster"
	rostergen "github.com/classrank/classrank/internal/rostergen"
	. "github.com/smartystreets/goconvey/convey"
)

func TestGenerate(t *testing.T) {
	Convey("Given the roster generator", t, func() {
		Convey("When generating with explicit options", func() {
			r := rostergen.Generate(
				rostergen.WithClass("demo"),
				rostergen.WithStudents(50),
				rostergen.WithSubjects(4),
				rostergen.WithSeed(7),
			)

			Convey("Then the roster has the requested shape", func() {
				So(r.Class, ShouldEqual, "demo")
				So(r.Subjects, ShouldEqual, 4)
				So(len(r.Students), ShouldEqual, 50)
			})

			Convey("And every mark is within bounds", func() {
				for _, s := range r.Students {
					So(len(s.Marks), ShouldEqual, 4)
					for _, m := range s.Marks {
						So(m, ShouldBeBetweenOrEqual, record.MinValue, record.MaxValue)
					}
				}
			})

			Convey("And all registration keys are unique", func() {
				seen := make(map[string]bool, len(r.Students))
				for _, s := range r.Students {
					So(seen[s.Reg], ShouldBeFalse)
					seen[s.Reg] = true
				}
			})

			Convey("And the roster builds into a finalized store", func() {
				store, err := roster.Build(context.Background(), r)
				So(err, ShouldBeNil)
				So(store.Finalized(), ShouldBeTrue)
				So(store.Size(context.Background()), ShouldEqual, 50)
			})
		})

		Convey("When generating with defaults", func() {
			r := rostergen.Generate()
			So(len(r.Students), ShouldEqual, 30)
			So(r.Subjects, ShouldEqual, 5)
		})
	})
}
