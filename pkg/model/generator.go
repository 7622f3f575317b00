package model

import (
	"context"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

type CourseRequest struct {
	Code          string `mapstructure:"code" json:"code"`
	Semester      string `mapstructure:"semester" json:"semester"`
	IncludeFilter string `mapstructure:"includeFilter" json:"include_filter"` // Regular expression over section labels; empty includes every section
}

// SectionRepository supplies the eligible sections of a course for a semester
type SectionRepository interface {
	FetchSections(ctx context.Context, code, semester, includeFilter string) ([]Section, error)
}

type Result struct {
	Timetables []Timetable
	Warnings   []ClassificationWarning
}

type Generator interface {
	// Builds every conflict-free timetable with one block per requested course that avoids the blocked timetable.
	// An empty result is not an error
	GenerateTimetables(ctx context.Context, courses []CourseRequest, blocked Timetable) (Result, error)
}

type generatorImplementation struct {
	repository SectionRepository
	combinator Combinator
	logger     *zap.Logger
}

func NewGenerator(repository SectionRepository, combinator Combinator, logger *zap.Logger) Generator {
	if combinator == nil {
		combinator = NewSequentialCombinator(0)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &generatorImplementation{
		repository: repository,
		combinator: combinator,
		logger:     logger,
	}
}

func (generator *generatorImplementation) GenerateTimetables(ctx context.Context, courses []CourseRequest, blocked Timetable) (Result, error) {
	logger := generator.logger.With(zap.String("request_id", uuid.NewString()))
	logger.Debug("generating timetables",
		zap.Strings("courses", lo.Map(courses, func(course CourseRequest, _ int) string { return course.Code })),
		zap.Int("blocked", blocked.Len()),
	)

	//** Fetch every course's sections before enumerating
	courseSections := make([][]Section, 0, len(courses))
	for _, course := range courses {
		sections, err := generator.repository.FetchSections(ctx, course.Code, course.Semester, course.IncludeFilter)
		if err != nil {
			logger.Error("cannot fetch sections", zap.String("course", course.Code), zap.Error(err))
			return Result{}, err
		}
		courseSections = append(courseSections, sections)
	}

	//** Classify sections into blocks
	result := Result{Warnings: []ClassificationWarning{}}
	courseBlocks := make([][]Block, 0, len(courses))
	for i, course := range courses {
		blocks, warnings := BuildBlocks(course.Code, courseSections[i], blocked)
		for _, warning := range warnings {
			logger.Warn("section skipped", zap.String("course", course.Code), zap.String("section", warning.Section.Code), zap.String("reason", warning.Reason))
		}
		logger.Debug("course classified",
			zap.String("course", course.Code),
			zap.Int("sections", len(courseSections[i])),
			zap.Int("blocks", len(blocks)),
		)

		result.Warnings = append(result.Warnings, warnings...)
		courseBlocks = append(courseBlocks, blocks)
	}

	//** Combine
	timetables, err := generator.combinator.Enumerate(ctx, courseBlocks)
	if err != nil {
		logger.Error("cannot enumerate timetables", zap.Error(err))
		return Result{}, err
	}
	result.Timetables = timetables

	logger.Info("timetables generated",
		zap.Int("courses", len(courses)),
		zap.Int("timetables", len(timetables)),
		zap.Int("warnings", len(result.Warnings)),
	)
	return result, nil
}
