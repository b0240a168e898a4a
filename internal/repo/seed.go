package repo

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/votabienperu/comparador/internal/domain"
)

// Fixture is the YAML document accepted by Seed. Sections are optional and
// are written in dependency order.
type Fixture struct {
	Persons           []domain.Person             `yaml:"persons"`
	Parties           []domain.Party              `yaml:"parties"`
	Districts         []domain.District           `yaml:"districts"`
	Groups            []domain.ParliamentaryGroup `yaml:"groups"`
	Processes         []domain.ElectoralProcess   `yaml:"processes"`
	Legislators       []domain.Legislator         `yaml:"legislators"`
	Memberships       []domain.GroupMembership    `yaml:"memberships"`
	Candidates        []domain.Candidate          `yaml:"candidates"`
	LegislatorMetrics []domain.LegislatorMetrics  `yaml:"legislator_metrics"`
	CandidateMetrics  []domain.CandidateMetrics   `yaml:"candidate_metrics"`
}

// SeedCounts reports how many rows of each section were written.
type SeedCounts struct {
	Persons, Legislators, Candidates, Metrics int
}

// DecodeFixture parses a fixture strictly: unknown keys are rejected.
func DecodeFixture(r io.Reader) (*Fixture, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var fx Fixture
	if err := dec.Decode(&fx); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	return &fx, nil
}

// Seed decodes a YAML fixture from r and upserts it; see SeedFixture.
func Seed(ctx context.Context, db *gorm.DB, r io.Reader) (SeedCounts, error) {
	fx, err := DecodeFixture(r)
	if err != nil {
		return SeedCounts{}, err
	}
	return SeedFixture(ctx, db, fx)
}

// SeedFixture upserts every row of fx in a single transaction, so loading the same
// fixture twice leaves the database unchanged. Memberships without an id get
// one derived from legislator, group and start date.
func SeedFixture(ctx context.Context, db *gorm.DB, fx *Fixture) (SeedCounts, error) {
	var counts SeedCounts
	if fx == nil {
		return counts, nil
	}
	for i := range fx.Memberships {
		if fx.Memberships[i].ID == "" {
			m := fx.Memberships[i]
			key := m.LegislatorID + "|" + m.GroupID + "|" + m.StartDate.String()
			fx.Memberships[i].ID = uuid.NewSHA1(uuid.NameSpaceURL, []byte(key)).String()
		}
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, batch := range []struct {
			name string
			rows any
			n    int
		}{
			{"persons", &fx.Persons, len(fx.Persons)},
			{"parties", &fx.Parties, len(fx.Parties)},
			{"districts", &fx.Districts, len(fx.Districts)},
			{"groups", &fx.Groups, len(fx.Groups)},
			{"processes", &fx.Processes, len(fx.Processes)},
			{"legislators", &fx.Legislators, len(fx.Legislators)},
			{"memberships", &fx.Memberships, len(fx.Memberships)},
			{"candidates", &fx.Candidates, len(fx.Candidates)},
			{"legislator_metrics", &fx.LegislatorMetrics, len(fx.LegislatorMetrics)},
			{"candidate_metrics", &fx.CandidateMetrics, len(fx.CandidateMetrics)},
		} {
			if batch.n == 0 {
				continue
			}
			err := tx.Omit(clause.Associations).
				Clauses(clause.OnConflict{UpdateAll: true}).
				Create(batch.rows).Error
			if err != nil {
				return fmt.Errorf("seed %s: %w", batch.name, err)
			}
		}
		return nil
	})
	if err != nil {
		return SeedCounts{}, err
	}

	counts.Persons = len(fx.Persons)
	counts.Legislators = len(fx.Legislators)
	counts.Candidates = len(fx.Candidates)
	counts.Metrics = len(fx.LegislatorMetrics) + len(fx.CandidateMetrics)
	return counts, nil
}

// SeedFile loads the fixture at path and seeds it.
func SeedFile(ctx context.Context, db *gorm.DB, path string) (SeedCounts, error) {
	f, err := os.Open(path)
	if err != nil {
		return SeedCounts{}, err
	}
	defer f.Close()

	return Seed(ctx, db, f)
}
