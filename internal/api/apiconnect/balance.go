package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/internal/api"
)

// BalanceServiceName is the fully-qualified name of the BalanceService.
const BalanceServiceName = "splitledger.v1.BalanceService"

const (
	BalanceServiceGetBalancesProcedure         = "/splitledger.v1.BalanceService/GetBalances"
	BalanceServiceGetPairwiseBalancesProcedure = "/splitledger.v1.BalanceService/GetPairwiseBalances"
)

// BalanceServiceHandler reports balances computed from a group's expenses.
type BalanceServiceHandler interface {
	GetBalances(context.Context, *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error)
	GetPairwiseBalances(context.Context, *connect.Request[api.GetPairwiseBalancesRequest]) (*connect.Response[api.GetPairwiseBalancesResponse], error)
}

// NewBalanceServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewBalanceServiceHandler(svc BalanceServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + BalanceServiceName + "/", route{
		BalanceServiceGetBalancesProcedure:         unary(BalanceServiceGetBalancesProcedure, svc.GetBalances, opts),
		BalanceServiceGetPairwiseBalancesProcedure: unary(BalanceServiceGetPairwiseBalancesProcedure, svc.GetPairwiseBalances, opts),
	}
}

// BalanceServiceClient is a client for the BalanceService.
type BalanceServiceClient interface {
	GetBalances(context.Context, *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error)
	GetPairwiseBalances(context.Context, *connect.Request[api.GetPairwiseBalancesRequest]) (*connect.Response[api.GetPairwiseBalancesResponse], error)
}

type balanceServiceClient struct {
	getBalances *connect.Client[api.GetBalancesRequest, api.GetBalancesResponse]
	getPairwiseBalances*connect.Client[api.GetPairwiseBalancesRequest, api.GetPairwiseBalancesResponse]
}

// NewBalanceServiceClient constructs a client for the BalanceService. baseURL is the
// server root, e.g. http://localhost:8080.
func NewBalanceServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) BalanceServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &balanceServiceClient{
		getBalances:         newClient[api.GetBalancesRequest, api.GetBalancesResponse](httpClient, baseURL, BalanceServiceGetBalancesProcedure, opts),
		getPairwiseBalances: newClient[api.GetPairwiseBalancesRequest, api.GetPairwiseBalancesResponse](httpClient, baseURL, BalanceServiceGetPairwiseBalancesProcedure, opts),
	}
}

func (c *balanceServiceClient) GetBalances(ctx context.Context, req *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error) {
	return c.getBalances.CallUnary(ctx, req)
}

func (c *balanceServiceClient) GetPairwiseBalances(ctx context.Context, req *connect.Request[api.GetPairwiseBalancesRequest]) (*connect.Response[api.GetPairwiseBalancesResponse], error) {
	return c.getPairwiseBalances.CallUnary(ctx, req)
}
