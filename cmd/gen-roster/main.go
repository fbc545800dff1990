// Command gen-roster writes a randomized class roster YAML file for demos
// and load testing.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/classrank/classrank/internal/roster"
	"github.com/classrank/classrank/internal/rostergen"
)

func main() {
	var (
		out      = flag.String("out", "roster.yaml", "output roster file")
		class    = flag.String("class", "generated", "class name")
		students = flag.Int("students", 30, "number of students")
		subjects = flag.Int("subjects", 5, "subjects per student")
		seed     = flag.Int64("seed", 42, "random seed for reproducible marks")
	)
	flag.Parse()

	if *students <= 0 || *subjects <= 0 {
		os.Stderr.WriteString("students and subjects must be positive\n")
		os.Exit(2)
	}

	r := rostergen.Generate(
		rostergen.WithClass(*class),
		rostergen.WithStudents(*students),
		rostergen.WithSubjects(*subjects),
		rostergen.WithSeed(*seed),
	)

	if err := roster.Save(*out, r); err != nil {
		os.Stderr.WriteString("write roster: " + err.Error() + "\n")
		os.Exit(1)
	}

	cfg := &rostergen.Config{Students: *students, Subjects: *subjects, Seed: *seed}
	fmt.Printf("wrote %s: %s\n", *out, rostergen.Describe(cfg))
}
