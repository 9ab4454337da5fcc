// Package packd serves scenario pack generation over HTTP and gRPC.
package packd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/radar-rrm/scenario-generator/internal/generator"
	"github.com/radar-rrm/scenario-generator/internal/pack"
	"github.com/radar-rrm/scenario-generator/pkg/config"
	"github.com/radar-rrm/scenario-generator/pkg/models"
	"github.com/radar-rrm/scenario-generator/pkg/utils"
)

var (
	// ErrTooLarge is returned when a request asks for more tasks than allowed
	ErrTooLarge = errors.New("pack too large")
	// ErrBadRequest is returned when a request cannot be decoded
	ErrBadRequest = errors.New("bad request")
)

// GenerateRequest is the body accepted by both transports: parameter
// overrides on top of the defaults plus generation options.
type GenerateRequest struct {
	config.ScenarioParams `yaml:",inline"`
	Seed                  int64 `json:"seed,omitempty" yaml:"seed,omitempty"`
	Pretty                bool  `json:"pretty,omitempty" yaml:"pretty,omitempty"`
}

// NewGenerateRequest returns a request carrying the default parameters
func NewGenerateRequest() GenerateRequest {
	return GenerateRequest{ScenarioParams: config.DefaultScenarioParams()}
}

// Options configures a Service
type Options struct {
	// MaxTasks caps scenario_count * task_count per request; zero means no cap
	MaxTasks uint64
	// Workers is the generator concurrency per request
	Workers int
}

// Service generates packs on behalf of the transports
type Service struct {
	opts Options
}

// NewService creates a new Service
func NewService(opts Options) *Service {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Service{opts: opts}
}

// Generate validates req and builds a pack. The seed actually used is
// returned alongside it.
func (s *Service) Generate(ctx context.Context, req GenerateRequest) (*models.ScenarioPack, int64, error) {
	params := req.ScenarioParams
	if err := params.Validate(); err != nil {
		return nil, 0, err
	}
	if s.opts.MaxTasks > 0 && params.TotalTasks() > s.opts.MaxTasks {
		return nil, 0, fmt.Errorf("%w: %d tasks requested, limit is %d", ErrTooLarge, params.TotalTasks(), s.opts.MaxTasks)
	}

	seed := req.Seed
	if seed == 0 {
		var err error
		if seed, err = utils.NewSeed(); err != nil {
			return nil, 0, err
		}
	}

	gen := generator.NewGenerator(seed).WithWorkers(s.opts.Workers)
	p, err := pack.Build(ctx, gen, params)
	if err != nil {
		return nil, 0, err
	}
	return p, seed, nil
}

// decodeJSONRequest decodes a JSON request body over the defaults
func decodeJSONRequest(data []byte) (GenerateRequest, error) {
	req := NewGenerateRequest()
	if len(bytes.TrimSpace(data)) == 0 {
		return req, nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return GenerateRequest{}, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	return req, nil
}

// decodeYAMLRequest decodes a YAML request body over the defaults
func decodeYAMLRequest(data []byte) (GenerateRequest, error) {
	req := NewGenerateRequest()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		return GenerateRequest{}, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	return req, nil
}
