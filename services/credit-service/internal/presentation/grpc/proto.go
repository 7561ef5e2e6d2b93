package grpc

// proto.go describes cliquealo.credit.v1.CreditService by hand. Messages are
// the application DTOs carried over the JSON codec registered in
// json_codec.go, so clients must dial with grpc.CallContentSubtype("json").

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/crisgp1/cliquealo.mx-sub002/services/credit-service/internal/application/dto"
)

const ServiceName = "cliquealo.credit.v1.CreditService"

// Fully qualified method names, as seen in grpc.UnaryServerInfo.FullMethod.
const (
	MethodSimulate                 = "/" + ServiceName + "/Simulate"
	MethodFindBestMatches          = "/" + ServiceName + "/FindBestMatches"
	MethodSubmitApplication        = "/" + ServiceName + "/SubmitApplication"
	MethodGetApplication           = "/" + ServiceName + "/GetApplication"
	MethodListMyApplications       = "/" + ServiceName + "/ListMyApplications"
	MethodListApplicationsByStatus = "/" + ServiceName + "/ListApplicationsByStatus"
	MethodStartReview              = "/" + ServiceName + "/StartReview"
	MethodApproveApplication       = "/" + ServiceName + "/ApproveApplication"
	MethodRejectApplication        = "/" + ServiceName + "/RejectApplication"
	MethodCancelApplication        = "/" + ServiceName + "/CancelApplication"
	MethodCreateLender             = "/" + ServiceName + "/CreateLender"
	MethodUpdateLender             = "/" + ServiceName + "/UpdateLender"
	MethodSetLenderActive          = "/" + ServiceName + "/SetLenderActive"
	MethodListLenders              = "/" + ServiceName + "/ListLenders"
)

// ListMyApplicationsRequest has no fields; the caller comes from the token.
type ListMyApplicationsRequest struct{}

// CreditServiceServer is the server API for CreditService.
type CreditServiceServer interface {
	Simulate(context.Context, *dto.SimulationRequest) (*dto.SimulationResponse, error)
	FindBestMatches(context.Context, *dto.SimulationRequest) (*dto.SimulationResponse, error)
	SubmitApplication(context.Context, *dto.SubmitApplicationRequest) (*dto.CreditApplicationResponse, error)
	GetApplication(context.Context, *dto.GetApplicationRequest) (*dto.CreditApplicationResponse, error)
	ListMyApplications(context.Context, *ListMyApplicationsRequest) (*dto.ListApplicationsResponse, error)
	ListApplicationsByStatus(context.Context, *dto.ListApplicationsByStatusRequest) (*dto.ListApplicationsResponse, error)
	StartReview(context.Context, *dto.ReviewRequest) (*dto.CreditApplicationResponse, error)
	ApproveApplication(context.Context, *dto.ReviewRequest) (*dto.CreditApplicationResponse, error)
	RejectApplication(context.Context, *dto.ReviewRequest) (*dto.CreditApplicationResponse, error)
	CancelApplication(context.Context, *dto.CancelApplicationRequest) (*dto.CreditApplicationResponse, error)
	CreateLender(context.Context, *dto.CreateLenderRequest) (*dto.LenderResponse, error)
	UpdateLender(context.Context, *dto.UpdateLenderRequest) (*dto.LenderResponse, error)
	SetLenderActive(context.Context, *dto.SetLenderActiveRequest) (*dto.LenderResponse, error)
	ListLenders(context.Context, *dto.ListLendersRequest) (*dto.ListLendersResponse, error)
	mustEmbedUnimplementedCreditServiceServer()
}

// UnimplementedCreditServiceServer provides forward-compatible default implementations.
type UnimplementedCreditServiceServer struct{}

func unimplemented(method string) error {
	return status.Errorf(codes.Unimplemented, "method %s not implemented", method)
}

func (UnimplementedCreditServiceServer) Simulate(context.Context, *dto.SimulationRequest) (*dto.SimulationResponse, error) {
	return nil, unimplemented("Simulate")
}
func (UnimplementedCreditServiceServer) FindBestMatches(context.Context, *dto.SimulationRequest) (*dto.SimulationResponse, error) {
	return nil, unimplemented("FindBestMatches")
}
func (UnimplementedCreditServiceServer) SubmitApplication(context.Context, *dto.SubmitApplicationRequest) (*dto.CreditApplicationResponse, error) {
	return nil, unimplemented("SubmitApplication")
}
func (UnimplementedCreditServiceServer) GetApplication(context.Context, *dto.GetApplicationRequest) (*dto.CreditApplicationResponse, error) {
	return nil, unimplemented("GetApplication")
}
func (UnimplementedCreditServiceServer) ListMyApplications(context.Context, *ListMyApplicationsRequest) (*dto.ListApplicationsResponse, error) {
	return nil, unimplemented("ListMyApplications")
}
func (UnimplementedCreditServiceServer) ListApplicationsByStatus(context.Context, *dto.ListApplicationsByStatusRequest) (*dto.ListApplicationsResponse, error) {
	return nil, unimplemented("ListApplicationsByStatus")
}
func (UnimplementedCreditServiceServer) StartReview(context.Context, *dto.ReviewRequest) (*dto.CreditApplicationResponse, error) {
	return nil, unimplemented("StartReview")
}
func (UnimplementedCreditServiceServer) ApproveApplication(context.Context, *dto.ReviewRequest) (*dto.CreditApplicationResponse, error) {
	return nil, unimplemented("ApproveApplication")
}
func (UnimplementedCreditServiceServer) RejectApplication(context.Context, *dto.ReviewRequest) (*dto.CreditApplicationResponse, error) {
	return nil, unimplemented("RejectApplication")
}
func (UnimplementedCreditServiceServer) CancelApplication(context.Context, *dto.CancelApplicationRequest) (*dto.CreditApplicationResponse, error) {
	return nil, unimplemented("CancelApplication")
}
func (UnimplementedCreditServiceServer) CreateLender(context.Context, *dto.CreateLenderRequest) (*dto.LenderResponse, error) {
	return nil, unimplemented("CreateLender")
}
func (UnimplementedCreditServiceServer) UpdateLender(context.Context, *dto.UpdateLenderRequest) (*dto.LenderResponse, error) {
	return nil, unimplemented("UpdateLender")
}
func (UnimplementedCreditServiceServer) SetLenderActive(context.Context, *dto.SetLenderActiveRequest) (*dto.LenderResponse, error) {
	return nil, unimplemented("SetLenderActive")
}
func (UnimplementedCreditServiceServer) ListLenders(context.Context, *dto.ListLendersRequest) (*dto.ListLendersResponse, error) {
	return nil, unimplemented("ListLenders")
}
func (UnimplementedCreditServiceServer) mustEmbedUnimplementedCreditServiceServer() {}

// RegisterCreditServiceServer registers srv with the gRPC server.
func RegisterCreditServiceServer(s grpclib.ServiceRegistrar, srv CreditServiceServer) {
	s.RegisterService(&creditServiceDesc, srv)
}

var creditServiceDesc = grpclib.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CreditServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		unary("Simulate", CreditServiceServer.Simulate),
		unary("FindBestMatches", CreditServiceServer.FindBestMatches),
		unary("SubmitApplication", CreditServiceServer.SubmitApplication),
		unary("GetApplication", CreditServiceServer.GetApplication),
		unary("ListMyApplications", CreditServiceServer.ListMyApplications),
		unary("ListApplicationsByStatus", CreditServiceServer.ListApplicationsByStatus),
		unary("StartReview", CreditServiceServer.StartReview),
		unary("ApproveApplication", CreditServiceServer.ApproveApplication),
		unary("RejectApplication", CreditServiceServer.RejectApplication),
		unary("CancelApplication", CreditServiceServer.CancelApplication),
		unary("CreateLender", CreditServiceServer.CreateLender),
		unary("UpdateLender", CreditServiceServer.UpdateLender),
		unary("SetLenderActive", CreditServiceServer.SetLenderActive),
		unary("ListLenders", CreditServiceServer.ListLenders),
	},
	Streams:  []grpclib.StreamDesc{},
	Metadata: "cliquealo/credit/v1/credit.proto",
}

// unary builds the method descriptor protoc-gen-go-grpc would emit for a
// unary RPC.
func unary[Req, Resp any](
	name string,
	call func(CreditServiceServer, context.Context, *Req) (*Resp, error),
) grpclib.MethodDesc {
	fullMethod := "/" + ServiceName + "/" + name
	return grpclib.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(CreditServiceServer), ctx, in)
			}
			info := &grpclib.UnaryServerInfo{
				Server:     srv,
				FullMethod: fullMethod,
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(CreditServiceServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}
