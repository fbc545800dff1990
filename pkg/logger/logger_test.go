package logger

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLogger(t *testing.T) {
	Convey("Given an initialized global logger", t, func() {
		So(Init(), ShouldBeNil)
		ctx := context.Background()

		Convey("When logging at each level", func() {
			l := Get()

			Convey("Then no call panics", func() {
				So(func() {
					l.Debug(ctx, "debug message", String("k", "v"))
					l.Info(ctx, "info message", Int("n", 1))
					l.Warn(ctx, "warn message", Float64("f", 1.5))
					l.Error(ctx, "error message", Error(errors.New("boom")))
				}, ShouldNotPanic)
			})
		})

		Convey("When deriving a named logger", func() {
			So(Named("store"), ShouldNotBeNil)
		})

		Convey("When changing the level by string", func() {
			So(SetLevelString("debug"), ShouldBeNil)
			So(SetLevelString("WARN"), ShouldBeNil)
			So(SetLevelString(""), ShouldBeNil)
			So(SetLevelString("nope"), ShouldNotBeNil)
			SetLevel(slog.LevelInfo)
		})

		Convey("When syncing", func() {
			So(Sync(), ShouldBeNil)
		})
	})
}
