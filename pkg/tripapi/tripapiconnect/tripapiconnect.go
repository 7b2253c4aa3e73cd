// Package tripapiconnect wires the tripledger.v1.TripService messages to Connect
// handlers and clients.
//
// Messages are plain Go structs, so both sides register Codec, a JSON codec under the
// "json" name. Clients built here always speak application/json.
package tripapiconnect

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/tripledger/pkg/tripapi"
)

// TripServiceName is the fully-qualified name of the TripService service.
const TripServiceName = "tripledger.v1.TripService"

// Procedure paths of the TripService RPCs.
const (
	TripServiceCreateTripProcedure        = "/tripledger.v1.TripService/CreateTrip"
	TripServiceListTripsProcedure         = "/tripledger.v1.TripService/ListTrips"
	TripServiceSelectTripProcedure        = "/tripledger.v1.TripService/SelectTrip"
	TripServiceGetTripProcedure           = "/tripledger.v1.TripService/GetTrip"
	TripServiceDeleteTripProcedure        = "/tripledger.v1.TripService/DeleteTrip"
	TripServiceSetCurrencyProcedure       = "/tripledger.v1.TripService/SetCurrency"
	TripServiceAddParticipantProcedure    = "/tripledger.v1.TripService/AddParticipant"
	TripServiceRemoveParticipantProcedure = "/tripledger.v1.TripService/RemoveParticipant"
	TripServiceAddExpenseProcedure        = "/tripledger.v1.TripService/AddExpense"
	TripServiceRemoveExpenseProcedure     = "/tripledger.v1.TripService/RemoveExpense"
	TripServiceGetBalancesProcedure       = "/tripledger.v1.TripService/GetBalances"
)

// Codec marshals messages with encoding/json.
type Codec struct{}

func (Codec) Name() string { return "json" }

func (Codec) Marshal(msg any) ([]byte, error) { return json.Marshal(msg) }

func (Codec) Unmarshal(data []byte, msg any) error { return json.Unmarshal(data, msg) }

// TripServiceHandler is implemented by the server side of TripService.
type TripServiceHandler interface {
	CreateTrip(context.Context, *connect.Request[tripapi.CreateTripRequest]) (*connect.Response[tripapi.TripResponse], error)
	ListTrips(context.Context, *connect.Request[tripapi.ListTripsRequest]) (*connect.Response[tripapi.ListTripsResponse], error)
	SelectTrip(context.Context, *connect.Request[tripapi.SelectTripRequest]) (*connect.Response[tripapi.TripResponse], error)
	GetTrip(context.Context, *connect.Request[tripapi.GetTripRequest]) (*connect.Response[tripapi.TripResponse], error)
	DeleteTrip(context.Context, *connect.Request[tripapi.DeleteTripRequest]) (*connect.Response[tripapi.DeleteTripResponse], error)
	SetCurrency(context.Context, *connect.Request[tripapi.SetCurrencyRequest]) (*connect.Response[tripapi.TripResponse], error)
	AddParticipant(context.Context, *connect.Request[tripapi.AddParticipantRequest]) (*connect.Response[tripapi.TripResponse], error)
	RemoveParticipant(context.Context, *connect.Request[tripapi.RemoveParticipantRequest]) (*connect.Response[tripapi.TripResponse], error)
	AddExpense(context.Context, *connect.Request[tripapi.AddExpenseRequest]) (*connect.Response[tripapi.TripResponse], error)
	RemoveExpense(context.Context, *connect.Request[tripapi.RemoveExpenseRequest]) (*connect.Response[tripapi.TripResponse], error)
	GetBalances(context.Context, *connect.Request[tripapi.GetBalancesRequest]) (*connect.Response[tripapi.GetBalancesResponse], error)
}

// NewTripServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewTripServiceHandler(svc TripServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...)
	readOnly := append(slices.Clone(opts), connect.WithIdempotency(connect.IdempotencyNoSideEffects))

	handlers := map[string]http.Handler{
		TripServiceCreateTripProcedure:        connect.NewUnaryHandler(TripServiceCreateTripProcedure, svc.CreateTrip, opts...),
		TripServiceListTripsProcedure:         connect.NewUnaryHandler(TripServiceListTripsProcedure, svc.ListTrips, readOnly...),
		TripServiceSelectTripProcedure:        connect.NewUnaryHandler(TripServiceSelectTripProcedure, svc.SelectTrip, opts...),
		TripServiceGetTripProcedure:           connect.NewUnaryHandler(TripServiceGetTripProcedure, svc.GetTrip, readOnly...),
		TripServiceDeleteTripProcedure:        connect.NewUnaryHandler(TripServiceDeleteTripProcedure, svc.DeleteTrip, opts...),
		TripServiceSetCurrencyProcedure:       connect.NewUnaryHandler(TripServiceSetCurrencyProcedure, svc.SetCurrency, opts...),
		TripServiceAddParticipantProcedure:    connect.NewUnaryHandler(TripServiceAddParticipantProcedure, svc.AddParticipant, opts...),
		TripServiceRemoveParticipantProcedure: connect.NewUnaryHandler(TripServiceRemoveParticipantProcedure, svc.RemoveParticipant, opts...),
		TripServiceAddExpenseProcedure:        connect.NewUnaryHandler(TripServiceAddExpenseProcedure, svc.AddExpense, opts...),
		TripServiceRemoveExpenseProcedure:     connect.NewUnaryHandler(TripServiceRemoveExpenseProcedure, svc.RemoveExpense, opts...),
		TripServiceGetBalancesProcedure:       connect.NewUnaryHandler(TripServiceGetBalancesProcedure, svc.GetBalances, readOnly...),
	}

	return "/" + TripServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h, ok := handlers[r.URL.Path]; ok {
			h.ServeHTTP(w, r)
			return
		}
		http.NotFound(w, r)
	})
}

// TripServiceClient is a client for TripService.
type TripServiceClient interface {
	CreateTrip(context.Context, *connect.Request[tripapi.CreateTripRequest]) (*connect.Response[tripapi.TripResponse], error)
	ListTrips(context.Context, *connect.Request[tripapi.ListTripsRequest]) (*connect.Response[tripapi.ListTripsResponse], error)
	SelectTrip(context.Context, *connect.Request[tripapi.SelectTripRequest]) (*connect.Response[tripapi.TripResponse], error)
	GetTrip(context.Context, *connect.Request[tripapi.GetTripRequest]) (*connect.Response[tripapi.TripResponse], error)
	DeleteTrip(context.Context, *connect.Request[tripapi.DeleteTripRequest]) (*connect.Response[tripapi.DeleteTripResponse], error)
	SetCurrency(context.Context, *connect.Request[tripapi.SetCurrencyRequest]) (*connect.Response[tripapi.TripResponse], error)
	AddParticipant(context.Context, *connect.Request[tripapi.AddParticipantRequest]) (*connect.Response[tripapi.TripResponse], error)
	RemoveParticipant(context.Context, *connect.Request[tripapi.RemoveParticipantRequest]) (*connect.Response[tripapi.TripResponse], error)
	AddExpense(context.Context, *connect.Request[tripapi.AddExpenseRequest]) (*connect.Response[tripapi.TripResponse], error)
	RemoveExpense(context.Context, *connect.Request[tripapi.RemoveExpenseRequest]) (*connect.Response[tripapi.TripResponse], error)
	GetBalances(context.Context, *connect.Request[tripapi.GetBalancesRequest]) (*connect.Response[tripapi.GetBalancesResponse], error)
}

// NewTripServiceClient constructs a client for TripService at baseURL
// (e.g. http://localhost:8080).
func NewTripServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) TripServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)
	return &tripServiceClient{
		createTrip:        connect.NewClient[tripapi.CreateTripRequest, tripapi.TripResponse](httpClient, baseURL+TripServiceCreateTripProcedure, opts...),
		listTrips:         connect.NewClient[tripapi.ListTripsRequest, tripapi.ListTripsResponse](httpClient, baseURL+TripServiceListTripsProcedure, opts...),
		selectTrip:        connect.NewClient[tripapi.SelectTripRequest, tripapi.TripResponse](httpClient, baseURL+TripServiceSelectTripProcedure, opts...),
		getTrip:           connect.NewClient[tripapi.GetTripRequest, tripapi.TripResponse](httpClient, baseURL+TripServiceGetTripProcedure, opts...),
		deleteTrip:        connect.NewClient[tripapi.DeleteTripRequest, tripapi.DeleteTripResponse](httpClient, baseURL+TripServiceDeleteTripProcedure, opts...),
		setCurrency:       connect.NewClient[tripapi.SetCurrencyRequest, tripapi.TripResponse](httpClient, baseURL+TripServiceSetCurrencyProcedure, opts...),
		addParticipant:    connect.NewClient[tripapi.AddParticipantRequest, tripapi.TripResponse](httpClient, baseURL+TripServiceAddParticipantProcedure, opts...),
		removeParticipant: connect.NewClient[tripapi.RemoveParticipantRequest, tripapi.TripResponse](httpClient, baseURL+TripServiceRemoveParticipantProcedure, opts...),
		addExpense:        connect.NewClient[tripapi.AddExpenseRequest, tripapi.TripResponse](httpClient, baseURL+TripServiceAddExpenseProcedure, opts...),
		removeExpense:     connect.NewClient[tripapi.RemoveExpenseRequest, tripapi.TripResponse](httpClient, baseURL+TripServiceRemoveExpenseProcedure, opts...),
		getBalances:       connect.NewClient[tripapi.GetBalancesRequest, tripapi.GetBalancesResponse](httpClient, baseURL+TripServiceGetBalancesProcedure, opts...),
	}
}

type tripServiceClient struct {
	createTrip        *connect.Client[tripapi.CreateTripRequest, tripapi.TripResponse]
	listTrips         *connect.Client[tripapi.ListTripsRequest, tripapi.ListTripsResponse]
	selectTrip        *connect.Client[tripapi.SelectTripRequest, tripapi.TripResponse]
	getTrip           *connect.Client[tripapi.GetTripRequest, tripapi.TripResponse]
	deleteTrip        *connect.Client[tripapi.DeleteTripRequest, tripapi.DeleteTripResponse]
	setCurrency       *connect.Client[tripapi.SetCurrencyRequest, tripapi.TripResponse]
	addParticipant    *connect.Client[tripapi.AddParticipantRequest, tripapi.TripResponse]
	removeParticipant *connect.Client[tripapi.RemoveParticipantRequest, tripapi.TripResponse]
	addExpense        *connect.Client[tripapi.AddExpenseRequest, tripapi.TripResponse]
	removeExpense     *connect.Client[tripapi.RemoveExpenseRequest, tripapi.TripResponse]
	getBalances       *connect.Client[tripapi.GetBalancesRequest, tripapi.GetBalancesResponse]
}

func (c *tripServiceClient) CreateTrip(ctx context.Context, req *connect.Request[tripapi.CreateTripRequest]) (*connect.Response[tripapi.TripResponse], error) {
	return c.createTrip.CallUnary(ctx, req)
}

func (c *tripServiceClient) ListTrips(ctx context.Context, req *connect.Request[tripapi.ListTripsRequest]) (*connect.Response[tripapi.ListTripsResponse], error) {
	return c.listTrips.CallUnary(ctx, req)
}

func (c *tripServiceClient) SelectTrip(ctx context.Context, req *connect.Request[tripapi.SelectTripRequest]) (*connect.Response[tripapi.TripResponse], error) {
	return c.selectTrip.CallUnary(ctx, req)
}

func (c *tripServiceClient) GetTrip(ctx context.Context, req *connect.Request[tripapi.GetTripRequest]) (*connect.Response[tripapi.TripResponse], error) {
	return c.getTrip.CallUnary(ctx, req)
}

func (c *tripServiceClient) DeleteTrip(ctx context.Context, req *connect.Request[tripapi.DeleteTripRequest]) (*connect.Response[tripapi.DeleteTripResponse], error) {
	return c.deleteTrip.CallUnary(ctx, req)
}

func (c *tripServiceClient) SetCurrency(ctx context.Context, req *connect.Request[tripapi.SetCurrencyRequest]) (*connect.Response[tripapi.TripResponse], error) {
	return c.setCurrency.CallUnary(ctx, req)
}

func (c *tripServiceClient) AddParticipant(ctx context.Context, req *connect.Request[tripapi.AddParticipantRequest]) (*connect.Response[tripapi.TripResponse], error) {
	return c.addParticipant.CallUnary(ctx, req)
}

func (c *tripServiceClient) RemoveParticipant(ctx context.Context, req *connect.Request[tripapi.RemoveParticipantRequest]) (*connect.Response[tripapi.TripResponse], error) {
	return c.removeParticipant.CallUnary(ctx, req)
}

func (c *tripServiceClient) AddExpense(ctx context.Context, req *connect.Request[tripapi.AddExpenseRequest]) (*connect.Response[tripapi.TripResponse], error) {
	return c.addExpense.CallUnary(ctx, req)
}

func (c *tripServiceClient) RemoveExpense(ctx context.Context, req *connect.Request[tripapi.RemoveExpenseRequest]) (*connect.Response[tripapi.TripResponse], error) {
	return c.removeExpense.CallUnary(ctx, req)
}

func (c *tripServiceClient) GetBalances(ctx context.Context, req *connect.Request[tripapi.GetBalancesRequest]) (*connect.Response[tripapi.GetBalancesResponse], error) {
	return c.getBalances.CallUnary(ctx, req)
}

// UnimplementedTripServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedTripServiceHandler struct{}

var errUnimplemented = errors.New("not implemented")

func (UnimplementedTripServiceHandler) CreateTrip(context.Context, *connect.Request[tripapi.CreateTripRequest]) (*connect.Response[tripapi.TripResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented)
}

func (UnimplementedTripServiceHandler) ListTrips(context.Context, *connect.Request[tripapi.ListTripsRequest]) (*connect.Response[tripapi.ListTripsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented)
}

func (UnimplementedTripServiceHandler) SelectTrip(context.Context, *connect.Request[tripapi.SelectTripRequest]) (*connect.Response[tripapi.TripResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented)
}

func (UnimplementedTripServiceHandler) GetTrip(context.Context, *connect.Request[tripapi.GetTripRequest]) (*connect.Response[tripapi.TripResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented)
}

func (UnimplementedTripServiceHandler) DeleteTrip(context.Context, *connect.Request[tripapi.DeleteTripRequest]) (*connect.Response[tripapi.DeleteTripResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented)
}

func (UnimplementedTripServiceHandler) SetCurrency(context.Context, *connect.Request[tripapi.SetCurrencyRequest]) (*connect.Response[tripapi.TripResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented)
}

func (UnimplementedTripServiceHandler) AddParticipant(context.Context, *connect.Request[tripapi.AddParticipantRequest]) (*connect.Response[tripapi.TripResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented)
}

func (UnimplementedTripServiceHandler) RemoveParticipant(context.Context, *connect.Request[tripapi.RemoveParticipantRequest]) (*connect.Response[tripapi.TripResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented)
}

func (UnimplementedTripServiceHandler) AddExpense(context.Context, *connect.Request[tripapi.AddExpenseRequest]) (*connect.Response[tripapi.TripResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented)
}

func (UnimplementedTripServiceHandler) RemoveExpense(context.Context, *connect.Request[tripapi.RemoveExpenseRequest]) (*connect.Response[tripapi.TripResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented)
}

func (UnimplementedTripServiceHandler) GetBalances(context.Context, *connect.Request[tripapi.GetBalancesRequest]) (*connect.Response[tripapi.GetBalancesResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented)
}
