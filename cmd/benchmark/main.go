package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/samber/lo"

	"github.com/limaJavier/coursetable/pkg/catalog"
	"github.com/limaJavier/coursetable/pkg/model"
)

const (
	resultsFile           = "benchmark_results.csv"
	semester              = "Fall"
	maxCandidates         = 500_000
	MB            float32 = 1024 * 1024
)

type StrategyType int

const (
	sequential StrategyType = iota
	parallel
)

type ResultType int

const (
	complete ResultType = iota
	capped
)

var (
	strategyTypes = map[StrategyType]string{
		sequential: "sequential",
		parallel:   "parallel",
	}
	resultTypes = map[ResultType]string{
		complete: "complete",
		capped:   "capped",
	}
)

type TestMetadata struct {
	Name              string
	Courses           int
	SectionsPerCourse int
	LabsPerSection    int
	Seed              uint64
}

type CombinatorMetadata struct {
	Strategy StrategyType
	Workers  int
}

type BenchmarkResult struct {
	Combinator CombinatorMetadata
	Test       TestMetadata
	Duration   int64 // Microseconds
	Memory     float32
	Timetables int
	Result     ResultType
}

func main() {
	tests := getTests()
	combinators := getCombinators()
	results := make([]BenchmarkResult, 0, len(tests)*len(combinators))

	for _, test := range tests {
		repository := catalog.NewMemoryRepository(syntheticCatalog(test))
		for _, combinator := range combinators {
			fmt.Printf("Benchmarking test \"%v\" with strategy \"%v\" and %v workers\n", test.Name, strategyTypes[combinator.Strategy], combinator.Workers)

			result, err := measure(context.Background(), repository, combinator, test)
			if err != nil {
				log.Fatalf("an error occurred at test \"%v\" using strategy \"%v\": %v", test.Name, strategyTypes[combinator.Strategy], err)
			}
			results = append(results, result)
		}
	}

	file, err := os.Create(resultsFile)
	if err != nil {
		log.Panicf("cannot create CSV file: %v", err)
	}
	defer file.Close()

	if err := toCsv(file, results); err != nil {
		log.Panicf("cannot write CSV file: %v", err)
	}
}

func getTests() []TestMetadata {
	shapes := [][3]int{{3, 4, 0}, {4, 6, 2}, {5, 6, 3}, {6, 8, 3}, {7, 8, 4}}
	return lo.Map(shapes, func(shape [3]int, i int) TestMetadata {
		return TestMetadata{
			Name:              fmt.Sprintf("%dx%dx%d", shape[0], shape[1], shape[2]),
			Courses:           shape[0],
			SectionsPerCourse: shape[1],
			LabsPerSection:    shape[2],
			Seed:              uint64(i + 1),
		}
	})
}

func getCombinators() []CombinatorMetadata {
	return []CombinatorMetadata{
		{Strategy: sequential, Workers: 1},
		{Strategy: parallel, Workers: 2},
		{Strategy: parallel, Workers: 4},
		{Strategy: parallel, Workers: runtime.GOMAXPROCS(0)},
	}
}

func (metadata CombinatorMetadata) build() model.Combinator {
	if metadata.Strategy == parallel {
		return model.NewParallelCombinator(metadata.Workers, maxCandidates)
	}
	return model.NewSequentialCombinator(maxCandidates)
}

// syntheticCatalog lays out the sections of test.Courses courses with pseudo-random meetings. Equal seeds give equal catalogs
func syntheticCatalog(test TestMetadata) []catalog.Record {
	random := rand.New(rand.NewPCG(test.Seed, test.Seed))
	records := make([]catalog.Record, 0, test.Courses*test.SectionsPerCourse*(1+test.LabsPerSection))

	registrationNumber := 10000
	record := func(code string, length int, parity model.Parity) catalog.Record {
		registrationNumber++
		startTime := 480 + 5*random.IntN((1260-480-length)/5)
		result := catalog.Record{
			RegistrationNumber: registrationNumber,
			Code:               code,
			Title:              "Synthetic",
			Semester:           semester,
			FirstDay:           1 + random.IntN(5),
			WeekFrequency:      int(parity),
			StartTime:          startTime,
			EndTime:            startTime + length,
		}
		if random.IntN(2) == 0 {
			second := 1 + (result.FirstDay+random.IntN(4))%5
			result.SecondDay = &second
		}
		return result
	}

	for course := range test.Courses {
		for section := range test.SectionsPerCourse {
			label := string(rune('A' + section))
			records = append(records, record(fmt.Sprintf("BNCH %d %v", 1000+course, label), 80, model.Weekly))
			for lab := range test.LabsPerSection {
				parity := model.Parity(random.IntN(3))
				records = append(records, record(fmt.Sprintf("BNCH %d %v%d", 1000+course, label, lab+1), 110, parity))
			}
		}
	}
	return records
}

func measure(ctx context.Context, repository model.SectionRepository, metadata CombinatorMetadata, test TestMetadata) (BenchmarkResult, error) {
	courses := lo.Times(test.Courses, func(i int) model.CourseRequest {
		return model.CourseRequest{Code: fmt.Sprintf("BNCH %d", 1000+i), Semester: semester}
	})
	generator := model.NewGenerator(repository, metadata.build(), nil)

	runtime.GC()
	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	start := time.Now()

	result, err := generator.GenerateTimetables(ctx, courses, model.NewTimetable())

	duration := time.Since(start)
	runtime.ReadMemStats(&after)

	benchmark := BenchmarkResult{
		Combinator: metadata,
		Test:       test,
		Duration:   duration.Microseconds(),
		Memory:     float32(after.TotalAlloc-before.TotalAlloc) / MB,
		Timetables: len(result.Timetables),
		Result:     complete,
	}
	if errors.Is(err, model.ErrCandidateLimit) {
		benchmark.Result = capped
	} else if err != nil {
		return BenchmarkResult{}, err
	}
	return benchmark, nil
}

func toCsv(w io.Writer, results []BenchmarkResult) error {
	writer := csv.NewWriter(w)

	header := []string{"Strategy", "Workers", "Test", "Courses", "SectionsPerCourse", "LabsPerSection", "Duration(us)", "Allocated(MB)", "Timetables", "Result"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("cannot write CSV header: %w", err)
	}

	for _, result := range results {
		record := []string{
			strategyTypes[result.Combinator.Strategy],
			fmt.Sprintf("%d", result.Combinator.Workers),
			result.Test.Name,
			fmt.Sprintf("%d", result.Test.Courses),
			fmt.Sprintf("%d", result.Test.SectionsPerCourse),
			fmt.Sprintf("%d", result.Test.LabsPerSection),
			fmt.Sprintf("%d", result.Duration),
			fmt.Sprintf("%.1f", result.Memory),
			fmt.Sprintf("%d", result.Timetables),
			resultTypes[result.Result],
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("cannot write CSV record: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
