package grpc_control

import (
	"context"
	"strings"

	datasource "token-scanner/src/data_source"
	"token-scanner/src/helpers"
	"token-scanner/src/interfaces"
	"token-scanner/src/logger"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "tokenscanner.v1.Scanner"

// ScannerServer is the server API for the Scanner service.
type ScannerServer interface {
	Analyze(ctx context.Context, req *AnalyzeRequest) (*AnalyzeResponse, error)
	ListSources(ctx context.Context, req *Empty) (*ListSourcesResponse, error)
}

// ControlService implements ScannerServer on top of the analysis facade.
type ControlService struct {
	Analyzer interfaces.IAnalyzer
	Sources  *datasource.MultiSourceManager
	Logger   *logger.Logger
}

var _ ScannerServer = (*ControlService)(nil)

// NewControlService creates a new instance of ControlService
func NewControlService(analyzer interfaces.IAnalyzer, sources *datasource.MultiSourceManager, log *logger.Logger) *ControlService {
	return &ControlService{
		Analyzer: analyzer,
		Sources:  sources,
		Logger:   log,
	}
}

// -----------------------------------------------------------------------------

func (s *ControlService) Analyze(ctx context.Context, req *AnalyzeRequest) (*AnalyzeResponse, error) {
	address := strings.TrimSpace(req.ContractAddress)
	if address == "" {
		return nil, status.Error(codes.InvalidArgument, "contract_address is required")
	}

	analysis, err := s.Analyzer.Analyze(ctx, address)
	if err != nil {
		if helpers.IsValidation(err) {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		s.Logger.Error("gRPC: Analyze failed for %s: %v", address, err)
		return nil, status.Error(codes.Internal, "failed to analyze contract")
	}

	return &AnalyzeResponse{
		Id:         analysis.ID,
		RugRisk:    analysis.Tier,
		TokenData:  analysis.Profile,
		Coverage:   analysis.Coverage,
		AnalyzedAt: analysis.AnalyzedAt.Unix(),
	}, nil
}

// -----------------------------------------------------------------------------

func (s *ControlService) ListSources(ctx context.Context, req *Empty) (*ListSourcesResponse, error) {
	if s.Sources == nil {
		return &ListSourcesResponse{}, nil
	}
	return &ListSourcesResponse{Sources: []*SourceStatus{
		{Name: s.Sources.Risk.Name(), Role: "risk"},
		{Name: s.Sources.Market.Name(), Role: "market"},
	}}, nil
}

// -----------------------------------------------------------------------------
// Service registration
// -----------------------------------------------------------------------------

func RegisterScannerServer(s grpc.ServiceRegistrar, srv ScannerServer) {
	s.RegisterService(&Scanner_ServiceDesc, srv)
}

func _Scanner_Analyze_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(AnalyzeRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ScannerServer).Analyze(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/Analyze"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ScannerServer).Analyze(ctx, req.(*AnalyzeRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Scanner_ListSources_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ScannerServer).ListSources(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/ListSources"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ScannerServer).ListSources(ctx, req.(*Empty))
	}
	return interceptor(ctx, in, info, handler)
}

// Scanner_ServiceDesc is the grpc.ServiceDesc for the Scanner service.
var Scanner_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ScannerServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Analyze", Handler: _Scanner_Analyze_Handler},
		{MethodName: "ListSources", Handler: _Scanner_ListSources_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "tokenscanner/v1/scanner",
}

// -----------------------------------------------------------------------------
// Client
// -----------------------------------------------------------------------------

type ScannerClient struct {
	cc grpc.ClientConnInterface
}

func NewScannerClient(cc grpc.ClientConnInterface) *ScannerClient {
	return &ScannerClient{cc: cc}
}

func (c *ScannerClient) Analyze(ctx context.Context, in *AnalyzeRequest, opts ...grpc.CallOption) (*AnalyzeResponse, error) {
	out := new(AnalyzeResponse)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/Analyze", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ScannerClient) ListSources(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ListSourcesResponse, error) {
	out := new(ListSourcesResponse)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/ListSources", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
