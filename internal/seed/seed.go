// Package seed fills an empty database with demonstration records.
package seed

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/rs/zerolog"
	"github.com/yigit/ssis/internal/app/models"
	"github.com/yigit/ssis/internal/pkg/dberrors"
)

// CollegeCreator inserts colleges
type CollegeCreator interface {
	Create(ctx context.Context, college *models.College) (*models.College, error)
}

// ProgramCreator inserts programs
type ProgramCreator interface {
	Create(ctx context.Context, program *models.Program) (*models.Program, error)
}

// StudentCreator inserts students
type StudentCreator interface {
	Create(ctx context.Context, student *models.Student) (*models.Student, error)
}

// Seeder creates default colleges, programs and random students.
// Records that already exist are left untouched.
type Seeder struct {
	colleges CollegeCreator
	programs ProgramCreator
	students StudentCreator
	rng      *rand.Rand
	logger   zerolog.Logger
}

// NewSeeder creates a Seeder
func NewSeeder(colleges CollegeCreator, programs ProgramCreator, students StudentCreator, logger zerolog.Logger) *Seeder {
	return &Seeder{
		colleges: colleges,
		programs: programs,
		students: students,
		rng:      rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		logger:   logger,
	}
}

type defaultCollege struct {
	code     string
	name     string
	programs [][2]string
}

var defaultColleges = []defaultCollege{
	{"CCS", "College of Computer Studies", [][2]string{
		{"BSCS", "Bachelor of Science in Computer Science"},
		{"BSIT", "Bachelor of Science in Information Technology"},
		{"BSIS", "Bachelor of Science in Information Systems"},
	}},
	{"COE", "College of Engineering", [][2]string{
		{"BSCE", "Bachelor of Science in Civil Engineering"},
		{"BSEE", "Bachelor of Science in Electrical Engineering"},
		{"BSME", "Bachelor of Science in Mechanical Engineering"},
	}},
	{"CSM", "College of Science and Mathematics", [][2]string{
		{"BSMATH", "Bachelor of Science in Mathematics"},
		{"BSBIO", "Bachelor of Science in Biology"},
		{"BSPHYS", "Bachelor of Science in Physics"},
	}},
	{"CBAA", "College of Business Administration and Accountancy", [][2]string{
		{"BSA", "Bachelor of Science in Accountancy"},
		{"BSBA", "Bachelor of Science in Business Administration"},
	}},
}

var (
	firstNames = []string{"Juan", "Maria", "Jose", "Ana", "Mark", "Grace", "Paolo", "Liza", "Carlo", "Bea", "Miguel", "Rica"}
	lastNames  = []string{"Dela Cruz", "Santos", "Reyes", "Garcia", "Mendoza", "Bautista", "Villanueva", "Ramos", "Aquino", "Castillo"}
	genders    = []string{"Male", "Female", "Other"}
)

// Run inserts the default records plus count random students. Failures are
// collected and returned together; one bad record never stops the rest.
func (s *Seeder) Run(ctx context.Context, count int) error {
	s.logger.Info().Int("students", count).Msg("Seeding default data...")

	var finalErr error
	var courses []string

	for _, c := range defaultColleges {
		_, err := s.colleges.Create(ctx, &models.College{Code: c.code, Name: c.name})
		if err != nil && !dberrors.IsUniqueViolation(err) {
			s.logger.Error().Err(err).Str("code", c.code).Msg("Error creating college")
			finalErr = errors.Join(finalErr, fmt.Errorf("college %s: %w", c.code, err))
			continue
		}

		collegeCode := c.code
		for _, p := range c.programs {
			_, err := s.programs.Create(ctx, &models.Program{Code: p[0], Name: p[1], CollegeCode: &collegeCode})
			if err != nil && !dberrors.IsUniqueViolation(err) {
				s.logger.Error().Err(err).Str("code", p[0]).Msg("Error creating program")
				finalErr = errors.Join(finalErr, fmt.Errorf("program %s: %w", p[0], err))
				continue
			}
			courses = append(courses, p[0])
		}
	}

	if len(courses) == 0 {
		return finalErr
	}

	created := 0
	for i := 1; i <= count; i++ {
		student := s.randomStudent(i, courses)
		_, err := s.students.Create(ctx, student)
		if err != nil {
			if dberrors.IsUniqueViolation(err) {
				continue
			}
			s.logger.Error().Err(err).Str("idNo", student.IDNo).Msg("Error creating student")
			finalErr = errors.Join(finalErr, fmt.Errorf("student %s: %w", student.IDNo, err))
			continue
		}
		created++
	}

	s.logger.Info().Int("created", created).Msg("Seeding finished")
	return finalErr
}

func (s *Seeder) randomStudent(seq int, courses []string) *models.Student {
	course := courses[s.rng.IntN(len(courses))]
	return &models.Student{
		IDNo:      fmt.Sprintf("2023-%04d", seq),
		FirstName: firstNames[s.rng.IntN(len(firstNames))],
		LastName:  lastNames[s.rng.IntN(len(lastNames))],
		Course:    &course,
		Year:      s.rng.IntN(4) + 1,
		Gender:    genders[s.rng.IntN(len(genders))],
	}
}
