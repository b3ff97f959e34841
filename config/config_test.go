package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

const sampleYaml = `
kind: planner
def:
  domain: tsp
  strategy: random-tracked
  frontier: hybrid
  maxSeconds: 2.5
  randomSeed: 42
  dashboard:
    host: 0.0.0.0
    port: "9090"
`

func writeFixture(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "planner.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	Convey("Given a well-formed planner config file", t, func() {
		path := writeFixture(t, sampleYaml)

		Convey("Load populates every field from the Def envelope", func() {
			cfg, err := Load(path)
			So(err, ShouldBeNil)
			So(cfg.Domain, ShouldEqual, "tsp")
			So(cfg.Strategy, ShouldEqual, "random-tracked")
			So(cfg.Frontier, ShouldEqual, "hybrid")
			So(cfg.MaxSeconds, ShouldEqual, 2.5)
			So(cfg.RandomSeed, ShouldEqual, int64(42))
			So(cfg.DashboardAddr(), ShouldEqual, "0.0.0.0:9090")
		})
	})

	Convey("Given a missing config file", t, func() {
		Convey("Load returns an error, not a panic", func() {
			_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
			So(err, ShouldNotBeNil)
		})
	})

	Convey("Given a config file with malformed YAML", t, func() {
		path := writeFixture(t, "kind: [unterminated")

		Convey("Load surfaces a parse error", func() {
			_, err := Load(path)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestDefault(t *testing.T) {
	Convey("Default returns a usable, reproducible baseline config", t, func() {
		cfg := Default()
		So(cfg.Domain, ShouldEqual, "blocksworld")
		So(cfg.Strategy, ShouldEqual, "dfs")
		So(cfg.RandomSeed, ShouldNotEqual, 0)
	})
}

func TestWithDeadline(t *testing.T) {
	Convey("Given a config with an explicit deadline duration", t, func() {
		cfg := Default()
		cfg.Deadline = map[string]string{"duration": "10ms"}

		Convey("WithDeadline produces a context that expires around that duration", func() {
			ctx, cancel, err := cfg.WithDeadline(context.Background())
			defer cancel()
			So(err, ShouldBeNil)
			deadline, ok := ctx.Deadline()
			So(ok, ShouldBeTrue)
			So(time.Until(deadline) <= 10*time.Millisecond, ShouldBeTrue)
		})
	})

	Convey("Given a config with only MaxSeconds set", t, func() {
		cfg := Default()
		cfg.Deadline = nil
		cfg.MaxSeconds = 1

		Convey("WithDeadline falls back to a MaxSeconds-based timeout", func() {
			ctx, cancel, err := cfg.WithDeadline(context.Background())
			defer cancel()
			So(err, ShouldBeNil)
			_, ok := ctx.Deadline()
			So(ok, ShouldBeTrue)
		})
	})

	Convey("Given an invalid deadline duration string", t, func() {
		cfg := Default()
		cfg.Deadline = map[string]string{"duration": "not-a-duration"}

		Convey("WithDeadline returns an error", func() {
			_, _, err := cfg.WithDeadline(context.Background())
			So(err, ShouldNotBeNil)
		})
	})
}
