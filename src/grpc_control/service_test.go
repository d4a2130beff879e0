package grpc_control

import (
	"context"
	"errors"
	"io"
	"net"
	"testing"
	"time"

	datasource "token-scanner/src/data_source"
	"token-scanner/src/logger"
	"token-scanner/src/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

type fakeAnalyzer struct {
	err error
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, identifier string) (*models.Analysis, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.Analysis{
		ID:         "rpc-1",
		Identifier: identifier,
		Tier:       models.TierLow,
		Profile:    models.TokenProfile{Symbol: "SMPL", Price: decimal.RequireFromString("1.5"), RiskScore: 600},
		Coverage:   models.Coverage{RiskReport: true, MarketReport: true},
		AnalyzedAt: time.Unix(1700000000, 0),
	}, nil
}

type namedRisk struct{}

func (namedRisk) Name() string { return "rugcheck" }
func (namedRisk) FetchRiskReport(ctx context.Context, id string) models.Maybe[models.MRiskReport] {
	return models.None[models.MRiskReport](nil)
}

type namedMarket struct{}

func (namedMarket) Name() string { return "dexscreener" }
func (namedMarket) FetchMarketReport(ctx context.Context, id string) models.Maybe[models.MMarketReport] {
	return models.None[models.MMarketReport](nil)
}

func startService(t *testing.T, analyzer *fakeAnalyzer) *ScannerClient {
	t.Helper()
	log := logger.NewLogger(nil, "grpc")
	log.SetOutput(io.Discard)

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	sources := datasource.NewMultiSourceManager(namedRisk{}, namedMarket{}, log)
	RegisterScannerServer(srv, NewControlService(analyzer, sources, log))
	go srv.Serve(lis)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		conn.Close()
		srv.Stop()
	})
	return NewScannerClient(conn)
}

func TestAnalyze_OverGRPC(t *testing.T) {
	client := startService(t, &fakeAnalyzer{})

	resp, err := client.Analyze(context.Background(), &AnalyzeRequest{ContractAddress: " mint "})
	require.NoError(t, err)

	assert.Equal(t, "rpc-1", resp.Id)
	assert.Equal(t, models.TierLow, resp.RugRisk)
	assert.Equal(t, "SMPL", resp.TokenData.Symbol)
	assert.True(t, resp.TokenData.Price.Equal(decimal.RequireFromString("1.5")))
	assert.Equal(t, 600, resp.TokenData.RiskScore)
	assert.Equal(t, int64(1700000000), resp.AnalyzedAt)
}

func TestAnalyze_BlankAddressIsInvalidArgument(t *testing.T) {
	client := startService(t, &fakeAnalyzer{})

	_, err := client.Analyze(context.Background(), &AnalyzeRequest{ContractAddress: "  "})
	require.Error(t, err)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestAnalyze_FailureIsInternal(t *testing.T) {
	client := startService(t, &fakeAnalyzer{err: errors.New("down")})

	_, err := client.Analyze(context.Background(), &AnalyzeRequest{ContractAddress: "mint"})
	require.Error(t, err)
	assert.Equal(t, codes.Internal, status.Code(err))
}

func TestListSources(t *testing.T) {
	client := startService(t, &fakeAnalyzer{})

	resp, err := client.ListSources(context.Background(), &Empty{})
	require.NoError(t, err)
	require.Len(t, resp.Sources, 2)
	assert.Equal(t, "rugcheck", resp.Sources[0].Name)
	assert.Equal(t, "risk", resp.Sources[0].Role)
	assert.Equal(t, "dexscreener", resp.Sources[1].Name)
}
