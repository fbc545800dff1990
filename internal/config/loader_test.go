package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults only", func(t *testing.T) {
		Convey("Given no file and no env overrides", t, func() {
			cfg, err := Load(ctx)
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":9080")
			So(cfg.SubjectCount, ShouldEqual, 5)
		})
	})

	t.Run("env overrides", func(t *testing.T) {
		t.Setenv("CLASSRANK_ADDR", ":7070")
		t.Setenv("CLASSRANK_ROSTER_PATH", "/tmp/class.yaml")
		t.Setenv("CLASSRANK_SUBJECT_COUNT", "3")

		Convey("Given CLASSRANK_ env vars", t, func() {
			cfg, err := Load(ctx)
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":7070")
			So(cfg.RosterPath, ShouldEqual, "/tmp/class.yaml")
			So(cfg.SubjectCount, ShouldEqual, 3)
		})
	})

	t.Run("file layer", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.yaml")
		content := "addr: \":6060\"\nmax_leaderboard_limit: 10\n"
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write config: %v", err)
		}
		t.Setenv("CLASSRANK_CONFIG", path)

		Convey("Given a YAML config file", t, func() {
			cfg, err := Load(ctx)
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":6060")
			So(cfg.MaxLeaderboardLimit, ShouldEqual, 10)
			// Untouched fields keep defaults.
			So(cfg.RosterPath, ShouldEqual, "roster.yaml")
		})
	})

	t.Run("env beats file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.yaml")
		if err := os.WriteFile(path, []byte("addr: \":6060\"\n"), 0o644); err != nil {
			t.Fatalf("write config: %v", err)
		}
		t.Setenv("CLASSRANK_CONFIG", path)
		t.Setenv("CLASSRANK_ADDR", ":5050")

		Convey("Given both file and env set addr", t, func() {
			cfg, err := Load(ctx)
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":5050")
		})
	})

	t.Run("invalid values", func(t *testing.T) {
		t.Setenv("CLASSRANK_SUBJECT_COUNT", "0")

		Convey("Given a non-positive subject count", t, func() {
			_, err := Load(ctx)
			So(errors.Is(err, ErrInvalidConfig), ShouldBeTrue)
		})
	})
}
