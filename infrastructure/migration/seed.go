package migration

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/crm-api/infrastructure/database/postgres"
	"github.com/vfg2006/crm-api/infrastructure/repository"
	"github.com/vfg2006/crm-api/internal/domain"
	"gopkg.in/yaml.v3"
)

type SeedData struct {
	Pipelines []SeedPipeline `yaml:"pipelines"`
}

type SeedPipeline struct {
	Name    string      `yaml:"name"`
	Default bool        `yaml:"default"`
	Stages  []SeedStage `yaml:"stages"`
}

type SeedStage struct {
	Name        string `yaml:"name"`
	Probability *int   `yaml:"probability"`
}

type SeedResult struct {
	Pipelines int
	Stages    int
}

// ParseSeed lê o YAML de seed; raw vazio usa o arquivo embutido
func ParseSeed(raw []byte) (*SeedData, error) {
	if len(raw) == 0 {
		raw = seedFile
	}

	data := &SeedData{}
	if err := yaml.Unmarshal(raw, data); err != nil {
		return nil, errors.Wrap(err, "seed: parse yaml")
	}

	for _, p := range data.Pipelines {
		if p.Name == "" {
			return nil, errors.New("seed: pipeline sem nome")
		}
		if len(p.Stages) == 0 {
			return nil, errors.Errorf("seed: pipeline %q sem estágios", p.Name)
		}
	}

	return data, nil
}

// Seed cria os pipelines e estágios dentro de uma única transação; pode ser executado várias vezes
func Seed(ctx context.Context, conn postgres.Conn, data *SeedData) (*SeedResult, error) {
	result := &SeedResult{}

	err := conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		result.Pipelines, result.Stages = 0, 0
		return seedWith(ctx, repository.NewPipelineRepository(tx), data, result)
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func seedWith(ctx context.Context, pipelines repository.PipelineRepository, data *SeedData, result *SeedResult) error {
	for _, p := range data.Pipelines {
		pipelineID, err := pipelines.PipelineIDByName(ctx, p.Name)
		if err != nil {
			return err
		}

		if pipelineID == "" {
			if pipelineID, err = pipelines.CreatePipeline(ctx, p.Name, p.Default); err != nil {
				return err
			}
			result.Pipelines++
			logrus.Infof("Seed: pipeline %q criado", p.Name)
		}

		for i, s := range p.Stages {
			_, err := pipelines.CreateStage(ctx, domain.Stage{
				PipelineID:  pipelineID,
				Name:        s.Name,
				OrderIndex:  i + 1,
				Probability: s.Probability,
			})
			if err != nil {
				return errors.Wrapf(err, "seed: estágio %q", s.Name)
			}
			result.Stages++
		}
	}

	return nil
}
