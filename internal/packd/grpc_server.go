package packd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/radar-rrm/scenario-generator/internal/pack"
	"github.com/radar-rrm/scenario-generator/pkg/config"
	"github.com/radar-rrm/scenario-generator/pkg/logger"
	"github.com/radar-rrm/scenario-generator/pkg/utils"
)

const (
	// ServiceName is the fully qualified gRPC service name
	ServiceName = "scenariogen.v1.ScenarioService"
	// GeneratePackMethod is the full method path of GeneratePack
	GeneratePackMethod = "/" + ServiceName + "/GeneratePack"
	// SeedMetadataKey carries the seed used in the response header
	SeedMetadataKey = "x-scenario-seed"
)

// ScenarioServiceServer is the server API for the ScenarioService service.
// Requests and responses are google.protobuf.Struct values shaped like the
// HTTP request body and pack document.
type ScenarioServiceServer interface {
	GeneratePack(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterScenarioServiceServer registers srv on s
func RegisterScenarioServiceServer(s grpc.ServiceRegistrar, srv ScenarioServiceServer) {
	s.RegisterService(&scenarioServiceDesc, srv)
}

func generatePackHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ScenarioServiceServer).GeneratePack(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: GeneratePackMethod,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ScenarioServiceServer).GeneratePack(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

var scenarioServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ScenarioServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GeneratePack",
			Handler:    generatePackHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "scenariogen/v1/scenario.proto",
}

// ScenarioGRPCServer implements ScenarioServiceServer on top of a Service
type ScenarioGRPCServer struct {
	service *Service
}

// NewScenarioGRPCServer creates a new ScenarioGRPCServer
func NewScenarioGRPCServer(service *Service) *ScenarioGRPCServer {
	return &ScenarioGRPCServer{service: service}
}

func (s *ScenarioGRPCServer) GeneratePack(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	if v, ok := in.GetFields()["seed"]; ok {
		if n := v.GetNumberValue(); n > utils.MaxSeed || n < -utils.MaxSeed {
			return nil, status.Errorf(codes.InvalidArgument, "seed %g is outside +/-%d and cannot be represented exactly", n, int64(utils.MaxSeed))
		}
	}

	var body []byte
	if in != nil && len(in.GetFields()) > 0 {
		var err error
		if body, err = json.Marshal(in.AsMap()); err != nil {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
	}

	req, err := decodeJSONRequest(body)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	p, seed, err := s.service.Generate(ctx, req)
	if err != nil {
		return nil, status.Error(codeForError(err), err.Error())
	}

	var buf bytes.Buffer
	if err := pack.Encode(&buf, p, pack.EncodeOptions{Format: pack.FormatJSON}); err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	var doc map[string]any
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	out, err := structpb.NewStruct(doc)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}

	if err := grpc.SetHeader(ctx, metadata.Pairs(SeedMetadataKey, strconv.FormatInt(seed, 10))); err != nil {
		logger.Warn("failed to set seed header", "error", err)
	}
	logger.Info("pack served", "transport", "grpc", "pack_id", p.PackID.String(), "seed", seed)
	return out, nil
}

func codeForError(err error) codes.Code {
	switch {
	case errors.Is(err, config.ErrInvalidParams), errors.Is(err, ErrBadRequest):
		return codes.InvalidArgument
	case errors.Is(err, ErrTooLarge):
		return codes.ResourceExhausted
	case errors.Is(err, context.Canceled):
		return codes.Canceled
	case errors.Is(err, context.DeadlineExceeded):
		return codes.DeadlineExceeded
	default:
		return codes.Internal
	}
}
