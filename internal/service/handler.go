package service

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

// PlannerServiceName is the fully-qualified name of the planner service.
const PlannerServiceName = "fundplan.v1.PlannerService"

// Procedure paths of the planner service.
const (
	BuildGoalProcedure       = "/" + PlannerServiceName + "/BuildGoal"
	RequiredPaymentProcedure = "/" + PlannerServiceName + "/RequiredPayment"
	ApplySavingsProcedure    = "/" + PlannerServiceName + "/ApplySavings"
	AllocateProcedure        = "/" + PlannerServiceName + "/Allocate"
)

// NewPlannerServiceHandler builds an HTTP handler for every planner procedure.
// It returns the path prefix to mount the handler on.
func NewPlannerServiceHandler(svc *PlannerService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)

	mux := http.NewServeMux()
	mux.Handle(BuildGoalProcedure, connect.NewUnaryHandler(BuildGoalProcedure, svc.BuildGoal, opts...))
	mux.Handle(RequiredPaymentProcedure, connect.NewUnaryHandler(RequiredPaymentProcedure, svc.RequiredPayment, opts...))
	mux.Handle(ApplySavingsProcedure, connect.NewUnaryHandler(ApplySavingsProcedure, svc.ApplySavings, opts...))
	mux.Handle(AllocateProcedure, connect.NewUnaryHandler(AllocateProcedure, svc.Allocate, opts...))

	return "/" + PlannerServiceName + "/", mux
}

// PlannerServiceClient calls the planner service over Connect with the JSON codec.
type PlannerServiceClient struct {
	buildGoal       *connect.Client[BuildGoalRequest, BuildGoalResponse]
	requiredPayment *connect.Client[RequiredPaymentRequest, RequiredPaymentResponse]
	applySavings    *connect.Client[ApplySavingsRequest, ApplySavingsResponse]
	allocate        *connect.Client[AllocateRequest, AllocateResponse]
}

// NewPlannerServiceClient creates a client for the service at baseURL.
func NewPlannerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *PlannerServiceClient {
	opts = append([]connect.ClientOption{connect.WithCodec(jsonCodec{})}, opts...)
	return &PlannerServiceClient{
		buildGoal:       connect.NewClient[BuildGoalRequest, BuildGoalResponse](httpClient, baseURL+BuildGoalProcedure, opts...),
		requiredPayment: connect.NewClient[RequiredPaymentRequest, RequiredPaymentResponse](httpClient, baseURL+RequiredPaymentProcedure, opts...),
		applySavings:    connect.NewClient[ApplySavingsRequest, ApplySavingsResponse](httpClient, baseURL+ApplySavingsProcedure, opts...),
		allocate:        connect.NewClient[AllocateRequest, AllocateResponse](httpClient, baseURL+AllocateProcedure, opts...),
	}
}

func (c *PlannerServiceClient) BuildGoal(ctx context.Context, req *connect.Request[BuildGoalRequest]) (*connect.Response[BuildGoalResponse], error) {
	return c.buildGoal.CallUnary(ctx, req)
}

func (c *PlannerServiceClient) RequiredPayment(ctx context.Context, req *connect.Request[RequiredPaymentRequest]) (*connect.Response[RequiredPaymentResponse], error) {
	return c.requiredPayment.CallUnary(ctx, req)
}

func (c *PlannerServiceClient) ApplySavings(ctx context.Context, req *connect.Request[ApplySavingsRequest]) (*connect.Response[ApplySavingsResponse], error) {
	return c.applySavings.CallUnary(ctx, req)
}

func (c *PlannerServiceClient) Allocate(ctx context.Context, req *connect.Request[AllocateRequest]) (*connect.Response[AllocateResponse], error) {
	return c.allocate.CallUnary(ctx, req)
}
